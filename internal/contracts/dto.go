package contracts

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateContractLineReq describes one rental position in a request.
type CreateContractLineReq struct {
	ScaffoldID   int64           `json:"scaffold_id" validate:"required,gt=0"`
	StartDate    time.Time       `json:"start_date" validate:"required"`
	Duration     int             `json:"duration" validate:"required,gt=0"`
	DurationType string          `json:"duration_type" validate:"required,oneof=DAILY MONTHLY"`
	Quantity     int             `json:"quantity" validate:"required,gt=0"`
	Discount     decimal.Decimal `json:"discount"`
}

// CreateContractRequest carries fields for a new rental contract.
type CreateContractRequest struct {
	CustomerID    int64                   `json:"customer_id" validate:"required,gt=0"`
	StartDate     time.Time               `json:"start_date" validate:"required"`
	PaymentType   string                  `json:"payment_type" validate:"required,oneof=CASH INSTALLMENT MONTHLY QUARTERLY YEARLY"`
	TransportCost decimal.Decimal         `json:"transport_and_installation_cost"`
	TotalDiscount decimal.Decimal         `json:"total_discount"`
	Notes         *string                 `json:"notes,omitempty"`
	Lines         []CreateContractLineReq `json:"lines" validate:"required,min=1,dive"`
}

// UpdateContractRequest replaces lines and charge fields of an active
// contract. Nil fields keep their current values.
type UpdateContractRequest struct {
	TransportCost *decimal.Decimal         `json:"transport_and_installation_cost,omitempty"`
	TotalDiscount *decimal.Decimal         `json:"total_discount,omitempty"`
	Notes         *string                  `json:"notes,omitempty"`
	Lines         *[]CreateContractLineReq `json:"lines,omitempty" validate:"omitempty,min=1,dive"`
}

// ListContractsRequest narrows contract listings.
type ListContractsRequest struct {
	CustomerID *int64          `json:"customer_id,omitempty"`
	Status     *ContractStatus `json:"status,omitempty"`
	DateFrom   *time.Time      `json:"date_from,omitempty"`
	DateTo     *time.Time      `json:"date_to,omitempty"`
	Limit      int             `json:"limit" validate:"gte=0,lte=1000"`
	Offset     int             `json:"offset" validate:"gte=0"`
}
