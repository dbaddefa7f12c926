package reports

import (
	"github.com/shopspring/decimal"

	"github.com/meridian-erp/meridian-erp/internal/accounting/accounts"
)

// StatementLine is one ledger line with the cumulative running balance after
// applying it.
type StatementLine struct {
	LedgerLine
	RunningBalance decimal.Decimal `json:"running_balance"`
}

// AccountStatement lists activity for one account: opening balance (posted
// activity strictly before the range), each line with a running balance, and
// the closing balance.
type AccountStatement struct {
	AccountID      int64           `json:"account_id"`
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	Type           string          `json:"type"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	Lines          []StatementLine `json:"lines"`
	ClosingBalance decimal.Decimal `json:"closing_balance"`
}

// BuildAccountStatement threads the running balance through the lines in
// order. The sign convention follows the account type, so a payment received
// grows an asset account and an invoice grows a revenue account alike.
func BuildAccountStatement(account accounts.Account, opening decimal.Decimal, lines []LedgerLine) AccountStatement {
	statement := AccountStatement{
		AccountID:      account.ID,
		Code:           account.Code,
		Name:           account.Name,
		Type:           string(account.Type),
		OpeningBalance: opening,
		ClosingBalance: opening,
	}
	running := opening
	for _, line := range lines {
		delta := line.Debit.Sub(line.Credit)
		if !account.Type.DebitNatured() {
			delta = line.Credit.Sub(line.Debit)
		}
		running = running.Add(delta)
		statement.Lines = append(statement.Lines, StatementLine{LedgerLine: line, RunningBalance: running})
	}
	statement.ClosingBalance = running
	return statement
}

// GeneralLedger is the chronological list of posted lines with grand totals.
type GeneralLedger struct {
	Lines       []LedgerLine    `json:"lines"`
	TotalDebit  decimal.Decimal `json:"total_debit"`
	TotalCredit decimal.Decimal `json:"total_credit"`
}

// BuildGeneralLedger wraps fetched lines with totals.
func BuildGeneralLedger(lines []LedgerLine) GeneralLedger {
	gl := GeneralLedger{Lines: lines, TotalDebit: decimal.Zero, TotalCredit: decimal.Zero}
	for _, line := range lines {
		gl.TotalDebit = gl.TotalDebit.Add(line.Debit)
		gl.TotalCredit = gl.TotalCredit.Add(line.Credit)
	}
	return gl
}
