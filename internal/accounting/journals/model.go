package journals

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus enumerates the journal entry lifecycle.
type EntryStatus string

const (
	EntryStatusDraft     EntryStatus = "DRAFT"
	EntryStatusPosted    EntryStatus = "POSTED"
	EntryStatusCancelled EntryStatus = "CANCELLED"
)

// ReferenceType names the source document kind a journal entry was created for.
type ReferenceType string

const (
	ReferencePayment  ReferenceType = "PAYMENT"
	ReferenceContract ReferenceType = "CONTRACT"
	ReferenceSalary   ReferenceType = "SALARY"
	ReferencePurchase ReferenceType = "PURCHASE"
	ReferenceOther    ReferenceType = "OTHER"
)

// Valid reports whether the reference kind is known.
func (t ReferenceType) Valid() bool {
	switch t {
	case ReferencePayment, ReferenceContract, ReferenceSalary, ReferencePurchase, ReferenceOther:
		return true
	}
	return false
}

// Reference ties a journal entry to its source document.
type Reference struct {
	Type ReferenceType `json:"type"`
	ID   int64         `json:"id"`
}

// JournalEntry captures a balanced double-entry document.
//
// Entry numbers follow JE-NNNNNN, a global gap-free ascending sequence.
// While DRAFT the entry may be edited or deleted; POSTED is terminal and the
// lines and totals become immutable.
type JournalEntry struct {
	ID          int64           `json:"id"`
	EntryNumber string          `json:"entry_number"`
	EntryDate   time.Time       `json:"entry_date"`
	Description string          `json:"description"`
	Reference   *Reference      `json:"reference,omitempty"`
	Status      EntryStatus     `json:"status"`
	TotalDebit  decimal.Decimal `json:"total_debit"`
	TotalCredit decimal.Decimal `json:"total_credit"`
	CreatedBy   int64           `json:"created_by"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Lines       []JournalLine   `json:"lines,omitempty"`
}

// JournalLine stores a single debit or credit against an account. Exactly one
// of Debit/Credit is non-zero.
type JournalLine struct {
	ID        int64           `json:"id"`
	EntryID   int64           `json:"entry_id"`
	AccountID int64           `json:"account_id"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	Memo      string          `json:"memo,omitempty"`
}
