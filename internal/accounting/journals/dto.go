package journals

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/meridian-erp/meridian-erp/internal/accounting/shared"
)

// LineInput describes one journal line in a draft request.
type LineInput struct {
	AccountID int64           `json:"account_id"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	Memo      string          `json:"memo,omitempty"`
}

// DraftInput groups fields required to create or edit a draft journal entry.
type DraftInput struct {
	Date        time.Time   `json:"date"`
	Description string      `json:"description"`
	Reference   *Reference  `json:"reference,omitempty"`
	Lines       []LineInput `json:"lines"`
	ActorID     int64       `json:"-"`
}

// Validate enforces the shape invariants on a draft: at least two lines,
// each line carries exactly one non-negative side, and debits equal credits
// exactly at two decimal places. Account existence is checked by the service.
func (in DraftInput) Validate() error {
	if len(in.Lines) < 2 {
		return shared.ErrTooFewLines
	}
	if in.Reference != nil && !in.Reference.Valid() {
		return shared.ErrInvalidReference
	}
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, line := range in.Lines {
		if line.AccountID == 0 {
			return shared.ErrAccountNotFound
		}
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return shared.ErrNegativeAmount
		}
		hasDebit := line.Debit.IsPositive()
		hasCredit := line.Credit.IsPositive()
		if hasDebit && hasCredit {
			return shared.ErrBothSides
		}
		if !hasDebit && !hasCredit {
			return shared.ErrEmptyLine
		}
		totalDebit = totalDebit.Add(line.Debit.Round(2))
		totalCredit = totalCredit.Add(line.Credit.Round(2))
	}
	if !totalDebit.Equal(totalCredit) {
		return shared.ErrUnbalanced
	}
	return nil
}

// Totals returns the validated debit and credit sums rounded to two decimals.
func (in DraftInput) Totals() (debit, credit decimal.Decimal) {
	for _, line := range in.Lines {
		debit = debit.Add(line.Debit.Round(2))
		credit = credit.Add(line.Credit.Round(2))
	}
	return debit, credit
}

// Valid reports whether the reference carries a known kind and target.
func (r Reference) Valid() bool {
	return r.Type.Valid() && r.ID > 0
}

// ListFilter narrows List results.
type ListFilter struct {
	Status        *EntryStatus
	ReferenceType *ReferenceType
	DateFrom      *time.Time
	DateTo        *time.Time
	Limit         int
	Offset        int
}
