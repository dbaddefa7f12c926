package contracts

import (
	"time"

	"github.com/shopspring/decimal"
)

// ContractStatus enumerates the contract lifecycle.
type ContractStatus string

const (
	ContractStatusActive    ContractStatus = "ACTIVE"
	ContractStatusExpired   ContractStatus = "EXPIRED"
	ContractStatusCancelled ContractStatus = "CANCELLED"
	ContractStatusCompleted ContractStatus = "COMPLETED"
)

// PaymentType enumerates how a contract is settled.
type PaymentType string

const (
	PaymentTypeCash        PaymentType = "CASH"
	PaymentTypeInstallment PaymentType = "INSTALLMENT"
	PaymentTypeMonthly     PaymentType = "MONTHLY"
	PaymentTypeQuarterly   PaymentType = "QUARTERLY"
	PaymentTypeYearly      PaymentType = "YEARLY"
)

// Valid reports whether the payment type is known.
func (t PaymentType) Valid() bool {
	switch t {
	case PaymentTypeCash, PaymentTypeInstallment, PaymentTypeMonthly, PaymentTypeQuarterly, PaymentTypeYearly:
		return true
	}
	return false
}

// DurationType selects the rate applied to a rental line.
type DurationType string

const (
	DurationDaily   DurationType = "DAILY"
	DurationMonthly DurationType = "MONTHLY"
)

// Contract is the rental agreement aggregate. Subtotal and Total are derived
// from the lines and recomputed whenever lines, discount, or transport cost
// change; they are stored for listing but the calculator is the source of
// truth.
type Contract struct {
	ID             int64           `json:"id"`
	ContractNumber string          `json:"contract_number"`
	CustomerID     int64           `json:"customer_id"`
	CreatedBy      int64           `json:"created_by"`
	StartDate      time.Time       `json:"start_date"`
	EndDate        time.Time       `json:"end_date"`
	Status         ContractStatus  `json:"status"`
	PaymentType    PaymentType     `json:"payment_type"`
	TransportCost  decimal.Decimal `json:"transport_and_installation_cost"`
	TotalDiscount  decimal.Decimal `json:"total_discount"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Total          decimal.Decimal `json:"total"`
	Notes          *string         `json:"notes,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	Lines          []ContractLine  `json:"lines,omitempty"`
}

// ContractLine is one scaffold rental position. Total follows the calculator:
// quantity x duration x rate minus discount, clamped to zero.
type ContractLine struct {
	ID           int64           `json:"id"`
	ContractID   int64           `json:"contract_id"`
	ScaffoldID   int64           `json:"scaffold_id"`
	StartDate    time.Time       `json:"start_date"`
	EndDate      time.Time       `json:"end_date"`
	Duration     int             `json:"duration"`
	DurationType DurationType    `json:"duration_type"`
	Quantity     int             `json:"quantity"`
	DailyRate    decimal.Decimal `json:"daily_rate"`
	MonthlyRate  decimal.Decimal `json:"monthly_rate"`
	Discount     decimal.Decimal `json:"discount"`
	Total        decimal.Decimal `json:"total"`
}

// Balance summarises how much of a contract has been settled.
type Balance struct {
	ContractID  int64           `json:"contract_id"`
	Total       decimal.Decimal `json:"total"`
	Paid        decimal.Decimal `json:"paid"`
	Outstanding decimal.Decimal `json:"outstanding"`
}
