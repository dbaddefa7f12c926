package payments

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod enumerates how money came in.
type PaymentMethod string

const (
	MethodCash     PaymentMethod = "CASH"
	MethodTransfer PaymentMethod = "TRANSFER"
	MethodCheck    PaymentMethod = "CHECK"
)

// Valid reports whether the method is known.
func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodCash, MethodTransfer, MethodCheck:
		return true
	}
	return false
}

// Payment is one settlement against a contract. JournalEntryID links to the
// posted ledger entry that records it.
type Payment struct {
	ID             int64           `json:"id"`
	PaymentNumber  string          `json:"payment_number"`
	ContractID     int64           `json:"contract_id"`
	Amount         decimal.Decimal `json:"amount"`
	Method         PaymentMethod   `json:"method"`
	PaymentDate    time.Time       `json:"payment_date"`
	Notes          *string         `json:"notes,omitempty"`
	JournalEntryID *int64          `json:"journal_entry_id,omitempty"`
	CreatedBy      int64           `json:"created_by"`
	CreatedAt      time.Time       `json:"created_at"`
}
