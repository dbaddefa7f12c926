package accounts

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType enumerates CoA categories.
type AccountType string

const (
	AccountTypeAsset     AccountType = "ASSET"
	AccountTypeLiability AccountType = "LIABILITY"
	AccountTypeEquity    AccountType = "EQUITY"
	AccountTypeRevenue   AccountType = "REVENUE"
	AccountTypeExpense   AccountType = "EXPENSE"
)

// Valid reports whether the type is a known category.
func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeEquity, AccountTypeRevenue, AccountTypeExpense:
		return true
	}
	return false
}

// DebitNatured reports whether the natural positive balance is debit-heavy.
func (t AccountType) DebitNatured() bool {
	return t == AccountTypeAsset || t == AccountTypeExpense
}

// Account models a chart of accounts node. Level is 1-based depth; a child's
// level is always parent.level + 1. Balance is derived from posted journal
// lines, never stored.
type Account struct {
	ID        int64       `json:"id"`
	Code      string      `json:"code"`
	Name      string      `json:"name"`
	Type      AccountType `json:"type"`
	ParentID  *int64      `json:"parent_id,omitempty"`
	IsActive  bool        `json:"is_active"`
	IsParent  bool        `json:"is_parent"`
	Level     int         `json:"level"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// Balance is the signed balance of one account over an optional date range.
// Debit and Credit are the unsigned sums; Amount carries the sign convention
// of the account type (debit-positive for ASSET/EXPENSE, credit-positive for
// LIABILITY/EQUITY/REVENUE).
type Balance struct {
	AccountID int64           `json:"account_id"`
	Code      string          `json:"code"`
	Type      AccountType     `json:"type"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	Amount    decimal.Decimal `json:"amount"`
}
