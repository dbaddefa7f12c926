package reports

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/meridian-erp/meridian-erp/internal/accounting/accounts"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestBuildTrialBalanceIdentity(t *testing.T) {
	activity := []AccountActivity{
		{AccountID: 1, Code: "121", Name: "Receivables", Type: accounts.AccountTypeAsset, Debit: dec("500.00"), Credit: dec("0")},
		{AccountID: 2, Code: "41", Name: "Rental Revenue", Type: accounts.AccountTypeRevenue, Debit: dec("0"), Credit: dec("500.00")},
		{AccountID: 3, Code: "51", Name: "Fuel Expense", Type: accounts.AccountTypeExpense, Debit: dec("120.00"), Credit: dec("20.00")},
		{AccountID: 4, Code: "21", Name: "Payables", Type: accounts.AccountTypeLiability, Debit: dec("0"), Credit: dec("100.00")},
	}

	tb := BuildTrialBalance(activity)
	if len(tb.Rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(tb.Rows))
	}
	if !tb.TotalDebitBalance.Equal(tb.TotalCreditBalance) {
		t.Fatalf("trial balance identity broken: debit %s credit %s", tb.TotalDebitBalance, tb.TotalCreditBalance)
	}
	if !tb.TotalDebit.Equal(dec("620.00")) {
		t.Fatalf("unexpected total debit: %s", tb.TotalDebit)
	}
	if !tb.TotalCredit.Equal(dec("620.00")) {
		t.Fatalf("unexpected total credit: %s", tb.TotalCredit)
	}
}

func TestBuildTrialBalanceOneSidedBalances(t *testing.T) {
	activity := []AccountActivity{
		{AccountID: 1, Code: "121", Type: accounts.AccountTypeAsset, Debit: dec("500.00"), Credit: dec("0")},
		{AccountID: 2, Code: "41", Type: accounts.AccountTypeRevenue, Debit: dec("0"), Credit: dec("500.00")},
	}

	tb := BuildTrialBalance(activity)
	if !tb.Rows[0].DebitBalance.Equal(dec("500.00")) || !tb.Rows[0].CreditBalance.IsZero() {
		t.Fatalf("account 121: expected debit balance 500, got debit %s credit %s", tb.Rows[0].DebitBalance, tb.Rows[0].CreditBalance)
	}
	if !tb.Rows[1].CreditBalance.Equal(dec("500.00")) || !tb.Rows[1].DebitBalance.IsZero() {
		t.Fatalf("account 41: expected credit balance 500, got debit %s credit %s", tb.Rows[1].DebitBalance, tb.Rows[1].CreditBalance)
	}
	if !tb.TotalDebitBalance.Equal(dec("500.00")) || !tb.TotalCreditBalance.Equal(dec("500.00")) {
		t.Fatalf("expected both totals 500, got %s / %s", tb.TotalDebitBalance, tb.TotalCreditBalance)
	}
}

func TestBuildTrialBalanceDropsFlatAccounts(t *testing.T) {
	activity := []AccountActivity{
		{AccountID: 1, Code: "10", Type: accounts.AccountTypeAsset},
		{AccountID: 2, Code: "121", Type: accounts.AccountTypeAsset, Debit: dec("50.00")},
		{AccountID: 3, Code: "41", Type: accounts.AccountTypeRevenue, Credit: dec("50.00")},
	}
	tb := BuildTrialBalance(activity)
	if len(tb.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(tb.Rows))
	}
}

func TestBuildBalanceSheetSignConvention(t *testing.T) {
	activity := []AccountActivity{
		{AccountID: 1, Code: "11", Name: "Cash", Type: accounts.AccountTypeAsset, Debit: dec("1000.00"), Credit: dec("200.00")},
		{AccountID: 2, Code: "21", Name: "Loans", Type: accounts.AccountTypeLiability, Debit: dec("50.00"), Credit: dec("550.00")},
		{AccountID: 3, Code: "31", Name: "Capital", Type: accounts.AccountTypeEquity, Debit: dec("0"), Credit: dec("300.00")},
		{AccountID: 4, Code: "41", Name: "Revenue", Type: accounts.AccountTypeRevenue, Credit: dec("999.00")},
	}

	bs := BuildBalanceSheet(activity)
	if !bs.Assets.Total.Equal(dec("800.00")) {
		t.Fatalf("expected assets 800, got %s", bs.Assets.Total)
	}
	if !bs.Liabilities.Total.Equal(dec("500.00")) {
		t.Fatalf("expected liabilities 500 (credit minus debit), got %s", bs.Liabilities.Total)
	}
	if !bs.Equity.Total.Equal(dec("300.00")) {
		t.Fatalf("expected equity 300, got %s", bs.Equity.Total)
	}
	if !bs.TotalLiabilitiesAndEquity.Equal(dec("800.00")) {
		t.Fatalf("expected L+E 800, got %s", bs.TotalLiabilitiesAndEquity)
	}
	if !bs.Difference.IsZero() {
		t.Fatalf("expected zero difference, got %s", bs.Difference)
	}
	// Revenue accounts never appear on the balance sheet.
	for _, section := range []BalanceSheetSection{bs.Assets, bs.Liabilities, bs.Equity} {
		for _, row := range section.Accounts {
			if row.Code == "41" {
				t.Fatal("revenue account leaked into balance sheet")
			}
		}
	}
}

func TestBuildBalanceSheetReportsImbalance(t *testing.T) {
	activity := []AccountActivity{
		{AccountID: 1, Code: "11", Type: accounts.AccountTypeAsset, Debit: dec("100.00")},
		{AccountID: 2, Code: "21", Type: accounts.AccountTypeLiability, Credit: dec("40.00")},
	}
	bs := BuildBalanceSheet(activity)
	if !bs.Difference.Equal(dec("60.00")) {
		t.Fatalf("expected difference 60, got %s", bs.Difference)
	}
}

func TestBuildIncomeStatement(t *testing.T) {
	activity := []AccountActivity{
		{AccountID: 1, Code: "41", Name: "Rental Revenue", Type: accounts.AccountTypeRevenue, Debit: dec("10.00"), Credit: dec("1210.00")},
		{AccountID: 2, Code: "51", Name: "Salaries", Type: accounts.AccountTypeExpense, Debit: dec("300.00")},
		{AccountID: 3, Code: "52", Name: "Transport", Type: accounts.AccountTypeExpense, Debit: dec("200.00")},
		{AccountID: 4, Code: "11", Name: "Cash", Type: accounts.AccountTypeAsset, Debit: dec("5000.00")},
	}

	is := BuildIncomeStatement(activity)
	if !is.Revenue.Total.Equal(dec("1200.00")) {
		t.Fatalf("expected revenue 1200, got %s", is.Revenue.Total)
	}
	if !is.Expense.Total.Equal(dec("500.00")) {
		t.Fatalf("expected expense 500, got %s", is.Expense.Total)
	}
	if !is.NetIncome.Equal(dec("700.00")) {
		t.Fatalf("expected net income 700, got %s", is.NetIncome)
	}
}

func TestBuildIncomeStatementNegativeNetIncome(t *testing.T) {
	activity := []AccountActivity{
		{AccountID: 1, Code: "41", Type: accounts.AccountTypeRevenue, Credit: dec("100.00")},
		{AccountID: 2, Code: "51", Type: accounts.AccountTypeExpense, Debit: dec("250.00")},
	}
	is := BuildIncomeStatement(activity)
	if !is.NetIncome.Equal(dec("-150.00")) {
		t.Fatalf("expected net income -150, got %s", is.NetIncome)
	}
}

func TestBuildAccountStatementRunningBalance(t *testing.T) {
	account := accounts.Account{ID: 1, Code: "121", Name: "Receivables", Type: accounts.AccountTypeAsset}
	day := func(d int) time.Time { return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC) }
	lines := []LedgerLine{
		{EntryNumber: "JE-000010", EntryDate: day(1), Debit: dec("500.00"), Credit: dec("0")},
		{EntryNumber: "JE-000011", EntryDate: day(5), Debit: dec("0"), Credit: dec("150.00")},
		{EntryNumber: "JE-000012", EntryDate: day(9), Debit: dec("25.50"), Credit: dec("0")},
	}

	st := BuildAccountStatement(account, dec("100.00"), lines)
	if !st.OpeningBalance.Equal(dec("100.00")) {
		t.Fatalf("unexpected opening: %s", st.OpeningBalance)
	}
	want := []string{"600", "450", "475.5"}
	for i, line := range st.Lines {
		if !line.RunningBalance.Equal(dec(want[i])) {
			t.Fatalf("line %d: expected running %s, got %s", i, want[i], line.RunningBalance)
		}
	}
	if !st.ClosingBalance.Equal(dec("475.5")) {
		t.Fatalf("unexpected closing: %s", st.ClosingBalance)
	}
}

func TestBuildAccountStatementCreditNatured(t *testing.T) {
	account := accounts.Account{ID: 2, Code: "41", Name: "Rental Revenue", Type: accounts.AccountTypeRevenue}
	lines := []LedgerLine{
		{EntryNumber: "JE-000001", EntryDate: time.Now(), Credit: dec("500.00")},
		{EntryNumber: "JE-000002", EntryDate: time.Now(), Debit: dec("120.00")},
	}

	st := BuildAccountStatement(account, decimal.Zero, lines)
	if !st.Lines[0].RunningBalance.Equal(dec("500.00")) {
		t.Fatalf("credit should grow a revenue balance, got %s", st.Lines[0].RunningBalance)
	}
	if !st.ClosingBalance.Equal(dec("380.00")) {
		t.Fatalf("unexpected closing: %s", st.ClosingBalance)
	}
}

func TestBuildAccountStatementNoActivity(t *testing.T) {
	account := accounts.Account{ID: 3, Code: "11", Type: accounts.AccountTypeAsset}
	st := BuildAccountStatement(account, dec("42.00"), nil)
	if !st.ClosingBalance.Equal(dec("42.00")) {
		t.Fatalf("closing should equal opening with no activity, got %s", st.ClosingBalance)
	}
}

func TestBuildGeneralLedgerTotals(t *testing.T) {
	lines := []LedgerLine{
		{Debit: dec("500.00")},
		{Credit: dec("500.00")},
		{Debit: dec("80.00")},
		{Credit: dec("80.00")},
	}
	gl := BuildGeneralLedger(lines)
	if !gl.TotalDebit.Equal(dec("580.00")) || !gl.TotalCredit.Equal(dec("580.00")) {
		t.Fatalf("unexpected totals: %s / %s", gl.TotalDebit, gl.TotalCredit)
	}
}
