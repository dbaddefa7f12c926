package hr

import (
	"github.com/shopspring/decimal"
)

// CreateEmployeeRequest registers a new staff member.
type CreateEmployeeRequest struct {
	Name       string          `json:"name" validate:"required,min=2,max=150"`
	Position   string          `json:"position" validate:"required,min=2,max=100"`
	Phone      *string         `json:"phone,omitempty" validate:"omitempty,max=30"`
	BaseSalary decimal.Decimal `json:"base_salary" validate:"required"`
	HireDate   string          `json:"hire_date" validate:"required,datetime=2006-01-02"`
}

// UpdateEmployeeRequest changes employee master data. Nil fields keep their
// current values.
type UpdateEmployeeRequest struct {
	Name       *string          `json:"name,omitempty" validate:"omitempty,min=2,max=150"`
	Position   *string          `json:"position,omitempty" validate:"omitempty,min=2,max=100"`
	Phone      *string          `json:"phone,omitempty" validate:"omitempty,max=30"`
	BaseSalary *decimal.Decimal `json:"base_salary,omitempty"`
	IsActive   *bool            `json:"is_active,omitempty"`
}

// CreateSalaryRequest opens a payroll record for one employee and period.
type CreateSalaryRequest struct {
	EmployeeID int64           `json:"employee_id" validate:"required,gt=0"`
	Period     string          `json:"period" validate:"required,datetime=2006-01"`
	Allowances decimal.Decimal `json:"allowances"`
	Deductions decimal.Decimal `json:"deductions"`
}

// ListSalariesRequest narrows payroll listings.
type ListSalariesRequest struct {
	EmployeeID *int64        `json:"employee_id,omitempty"`
	Period     *string       `json:"period,omitempty"`
	Status     *SalaryStatus `json:"status,omitempty"`
	Limit      int           `json:"limit" validate:"gte=0,lte=1000"`
	Offset     int           `json:"offset" validate:"gte=0"`
}
