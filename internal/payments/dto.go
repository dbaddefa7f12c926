package payments

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePaymentRequest records one incoming settlement against a contract.
type CreatePaymentRequest struct {
	ContractID  int64           `json:"contract_id" validate:"required,gt=0"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	Method      string          `json:"method" validate:"required,oneof=CASH TRANSFER CHECK"`
	PaymentDate time.Time       `json:"payment_date" validate:"required"`
	Notes       *string         `json:"notes,omitempty"`
}

// ListPaymentsRequest narrows payment listings.
type ListPaymentsRequest struct {
	ContractID *int64     `json:"contract_id,omitempty"`
	DateFrom   *time.Time `json:"date_from,omitempty"`
	DateTo     *time.Time `json:"date_to,omitempty"`
	Limit      int        `json:"limit" validate:"gte=0,lte=1000"`
	Offset     int        `json:"offset" validate:"gte=0"`
}
