package hr

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee is one staff member on the payroll.
type Employee struct {
	ID         int64           `json:"id"`
	Name       string          `json:"name"`
	Position   string          `json:"position"`
	Phone      *string         `json:"phone,omitempty"`
	BaseSalary decimal.Decimal `json:"base_salary"`
	IsActive   bool            `json:"is_active"`
	HireDate   time.Time       `json:"hire_date"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// SalaryStatus tracks whether a payroll run has been settled.
type SalaryStatus string

const (
	SalaryStatusPending SalaryStatus = "PENDING"
	SalaryStatusPaid    SalaryStatus = "PAID"
)

// Salary is one payroll record for an employee and period. NetAmount is base
// plus allowances minus deductions, clamped to zero. Paying a salary posts a
// ledger entry and is terminal.
type Salary struct {
	ID             int64           `json:"id"`
	EmployeeID     int64           `json:"employee_id"`
	Period         string          `json:"period"`
	BaseAmount     decimal.Decimal `json:"base_amount"`
	Allowances     decimal.Decimal `json:"allowances"`
	Deductions     decimal.Decimal `json:"deductions"`
	NetAmount      decimal.Decimal `json:"net_amount"`
	Status         SalaryStatus    `json:"status"`
	PaidAt         *time.Time      `json:"paid_at,omitempty"`
	JournalEntryID *int64          `json:"journal_entry_id,omitempty"`
	CreatedBy      int64           `json:"created_by"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// NetSalary applies the payroll arithmetic: base + allowances - deductions,
// never below zero.
func NetSalary(base, allowances, deductions decimal.Decimal) decimal.Decimal {
	net := base.Add(allowances).Sub(deductions).Round(2)
	if net.IsNegative() {
		return decimal.Zero
	}
	return net
}
