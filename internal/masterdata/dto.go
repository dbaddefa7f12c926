package masterdata

import "github.com/shopspring/decimal"

// CreateCustomerRequest registers a new customer.
type CreateCustomerRequest struct {
	Name      string  `json:"name" validate:"required,min=2,max=150"`
	Phone     *string `json:"phone,omitempty" validate:"omitempty,max=30"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	Address   *string `json:"address,omitempty" validate:"omitempty,max=255"`
	TaxNumber *string `json:"tax_number,omitempty" validate:"omitempty,max=50"`
}

// UpdateCustomerRequest changes customer master data. Nil fields keep their
// current values.
type UpdateCustomerRequest struct {
	Name      *string `json:"name,omitempty" validate:"omitempty,min=2,max=150"`
	Phone     *string `json:"phone,omitempty" validate:"omitempty,max=30"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	Address   *string `json:"address,omitempty" validate:"omitempty,max=255"`
	TaxNumber *string `json:"tax_number,omitempty" validate:"omitempty,max=50"`
	IsActive  *bool   `json:"is_active,omitempty"`
}

// CreateSupplierRequest registers a new supplier.
type CreateSupplierRequest struct {
	Name    string  `json:"name" validate:"required,min=2,max=150"`
	Phone   *string `json:"phone,omitempty" validate:"omitempty,max=30"`
	Email   *string `json:"email,omitempty" validate:"omitempty,email"`
	Address *string `json:"address,omitempty" validate:"omitempty,max=255"`
}

// UpdateSupplierRequest changes supplier master data.
type UpdateSupplierRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=2,max=150"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,max=30"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Address  *string `json:"address,omitempty" validate:"omitempty,max=255"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// CreateScaffoldRequest registers a new rentable equipment type.
type CreateScaffoldRequest struct {
	Code          string          `json:"code" validate:"required,min=2,max=30"`
	Name          string          `json:"name" validate:"required,min=2,max=150"`
	Description   *string         `json:"description,omitempty" validate:"omitempty,max=500"`
	DailyRate     decimal.Decimal `json:"daily_rate" validate:"required"`
	MonthlyRate   decimal.Decimal `json:"monthly_rate" validate:"required"`
	QuantityTotal int             `json:"quantity_total" validate:"required,gt=0"`
}

// UpdateScaffoldRequest changes scaffold master data.
type UpdateScaffoldRequest struct {
	Name          *string          `json:"name,omitempty" validate:"omitempty,min=2,max=150"`
	Description   *string          `json:"description,omitempty" validate:"omitempty,max=500"`
	DailyRate     *decimal.Decimal `json:"daily_rate,omitempty"`
	MonthlyRate   *decimal.Decimal `json:"monthly_rate,omitempty"`
	QuantityTotal *int             `json:"quantity_total,omitempty" validate:"omitempty,gt=0"`
	IsActive      *bool            `json:"is_active,omitempty"`
}
