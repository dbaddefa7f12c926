package reports

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/meridian-erp/meridian-erp/internal/accounting/accounts"
)

// AccountActivity models a general ledger account with aggregated unsigned
// debit/credit sums over posted lines for a report period.
type AccountActivity struct {
	AccountID int64                `json:"account_id"`
	Code      string               `json:"code"`
	Name      string               `json:"name"`
	Type      accounts.AccountType `json:"type"`
	Debit     decimal.Decimal      `json:"debit"`
	Credit    decimal.Decimal      `json:"credit"`
}

// SignedBalance applies the account type's sign convention: debit minus
// credit for ASSET/EXPENSE, credit minus debit for LIABILITY/EQUITY/REVENUE.
func (a AccountActivity) SignedBalance() decimal.Decimal {
	if a.Type.DebitNatured() {
		return a.Debit.Sub(a.Credit)
	}
	return a.Credit.Sub(a.Debit)
}

// LedgerLine is one posted journal line with its entry context, ordered
// chronologically for the general ledger and account statement views.
type LedgerLine struct {
	EntryID     int64           `json:"entry_id"`
	EntryNumber string          `json:"entry_number"`
	EntryDate   time.Time       `json:"entry_date"`
	AccountID   int64           `json:"account_id"`
	AccountCode string          `json:"account_code"`
	AccountName string          `json:"account_name"`
	Description string          `json:"description"`
	Memo        string          `json:"memo,omitempty"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// Period bounds a report. Either side may be nil for an open range.
type Period struct {
	From *time.Time
	To   *time.Time
}
