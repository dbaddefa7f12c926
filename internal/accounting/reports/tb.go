package reports

import (
	"sort"

	"github.com/shopspring/decimal"
)

// TrialBalanceRow summarises one account: unsigned activity sums plus the
// one-sided balance excess. Exactly one of DebitBalance/CreditBalance is
// non-zero (or both are zero for a flat account).
type TrialBalanceRow struct {
	AccountID     int64           `json:"account_id"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	Type          string          `json:"type"`
	TotalDebit    decimal.Decimal `json:"total_debit"`
	TotalCredit   decimal.Decimal `json:"total_credit"`
	DebitBalance  decimal.Decimal `json:"debit_balance"`
	CreditBalance decimal.Decimal `json:"credit_balance"`
}

// TrialBalance is the full report. When every entry in range is posted and
// individually balanced, TotalDebitBalance equals TotalCreditBalance.
type TrialBalance struct {
	Rows               []TrialBalanceRow `json:"rows"`
	TotalDebit         decimal.Decimal   `json:"total_debit"`
	TotalCredit        decimal.Decimal   `json:"total_credit"`
	TotalDebitBalance  decimal.Decimal   `json:"total_debit_balance"`
	TotalCreditBalance decimal.Decimal   `json:"total_credit_balance"`
}

// BuildTrialBalance converts aggregated account activity into the trial
// balance. Accounts without activity are dropped; rows sort by code.
func BuildTrialBalance(activity []AccountActivity) TrialBalance {
	tb := TrialBalance{
		TotalDebit:         decimal.Zero,
		TotalCredit:        decimal.Zero,
		TotalDebitBalance:  decimal.Zero,
		TotalCreditBalance: decimal.Zero,
	}
	for _, acc := range activity {
		if acc.Debit.IsZero() && acc.Credit.IsZero() {
			continue
		}
		row := TrialBalanceRow{
			AccountID:     acc.AccountID,
			Code:          acc.Code,
			Name:          acc.Name,
			Type:          string(acc.Type),
			TotalDebit:    acc.Debit,
			TotalCredit:   acc.Credit,
			DebitBalance:  decimal.Zero,
			CreditBalance: decimal.Zero,
		}
		net := acc.Debit.Sub(acc.Credit)
		if net.IsPositive() {
			row.DebitBalance = net
		} else {
			row.CreditBalance = net.Neg()
		}
		tb.Rows = append(tb.Rows, row)
		tb.TotalDebit = tb.TotalDebit.Add(row.TotalDebit)
		tb.TotalCredit = tb.TotalCredit.Add(row.TotalCredit)
		tb.TotalDebitBalance = tb.TotalDebitBalance.Add(row.DebitBalance)
		tb.TotalCreditBalance = tb.TotalCreditBalance.Add(row.CreditBalance)
	}
	sort.Slice(tb.Rows, func(i, j int) bool { return tb.Rows[i].Code < tb.Rows[j].Code })
	return tb
}
