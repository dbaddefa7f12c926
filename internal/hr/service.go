package hr

import (
	"context"
	"fmt"
	"time"

	"github.com/meridian-erp/meridian-erp/internal/accounting/journals"
	"github.com/meridian-erp/meridian-erp/internal/platform/httpx"
	internalShared "github.com/meridian-erp/meridian-erp/internal/shared"
)

var (
	// ErrSalaryAlreadyPaid rejects paying a salary twice.
	ErrSalaryAlreadyPaid = fmt.Errorf("%w: salary already paid", httpx.ErrState)
	// ErrEmployeeInactive rejects payroll for deactivated staff.
	ErrEmployeeInactive = fmt.Errorf("%w: employee is inactive", httpx.ErrState)
)

// PostingAccounts maps payroll onto the chart of accounts: salary expense on
// the debit side, cash on the credit side.
type PostingAccounts struct {
	SalaryExpenseAccountID int64
	CashAccountID          int64
}

// JournalPort posts the ledger entry recording a salary payment.
type JournalPort interface {
	CreateAndPost(ctx context.Context, in journals.DraftInput) (journals.JournalEntry, error)
}

// AuditPort records payroll lifecycle events.
type AuditPort interface {
	Record(ctx context.Context, log internalShared.AuditLog) error
}

type Service struct {
	employees EmployeeRepository
	salaries  SalaryRepository
	journal   JournalPort
	audit     AuditPort
	accounts  PostingAccounts
	now       func() time.Time
}

func NewService(employees EmployeeRepository, salaries SalaryRepository, journal JournalPort, audit AuditPort, accounts PostingAccounts) *Service {
	return &Service{employees: employees, salaries: salaries, journal: journal, audit: audit, accounts: accounts, now: time.Now}
}

// WithNow overrides the clock, for tests.
func (s *Service) WithNow(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

func (s *Service) CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (Employee, error) {
	hireDate, err := time.Parse("2006-01-02", req.HireDate)
	if err != nil {
		return Employee{}, fmt.Errorf("%w: hire_date must be YYYY-MM-DD", httpx.ErrValidation)
	}
	if req.BaseSalary.IsNegative() {
		return Employee{}, fmt.Errorf("%w: base salary cannot be negative", httpx.ErrValidation)
	}
	return s.employees.Create(ctx, Employee{
		Name:       req.Name,
		Position:   req.Position,
		Phone:      req.Phone,
		BaseSalary: req.BaseSalary.Round(2),
		IsActive:   true,
		HireDate:   hireDate,
	})
}

func (s *Service) UpdateEmployee(ctx context.Context, id int64, req UpdateEmployeeRequest) (Employee, error) {
	current, err := s.employees.Get(ctx, id)
	if err != nil {
		return Employee{}, err
	}
	if req.Name != nil {
		current.Name = *req.Name
	}
	if req.Position != nil {
		current.Position = *req.Position
	}
	if req.Phone != nil {
		current.Phone = req.Phone
	}
	if req.BaseSalary != nil {
		if req.BaseSalary.IsNegative() {
			return Employee{}, fmt.Errorf("%w: base salary cannot be negative", httpx.ErrValidation)
		}
		current.BaseSalary = req.BaseSalary.Round(2)
	}
	if req.IsActive != nil {
		current.IsActive = *req.IsActive
	}
	if err := s.employees.Update(ctx, current); err != nil {
		return Employee{}, err
	}
	return current, nil
}

func (s *Service) GetEmployee(ctx context.Context, id int64) (Employee, error) {
	return s.employees.Get(ctx, id)
}

func (s *Service) ListEmployees(ctx context.Context, activeOnly bool) ([]Employee, error) {
	return s.employees.List(ctx, activeOnly)
}

// CreateSalary opens a PENDING payroll record. The base amount snapshots the
// employee's current base salary so later raises do not rewrite history.
func (s *Service) CreateSalary(ctx context.Context, actorID int64, req CreateSalaryRequest) (Salary, error) {
	if req.Allowances.IsNegative() || req.Deductions.IsNegative() {
		return Salary{}, fmt.Errorf("%w: allowances and deductions cannot be negative", httpx.ErrValidation)
	}
	employee, err := s.employees.Get(ctx, req.EmployeeID)
	if err != nil {
		return Salary{}, err
	}
	if !employee.IsActive {
		return Salary{}, ErrEmployeeInactive
	}
	return s.salaries.Create(ctx, Salary{
		EmployeeID: req.EmployeeID,
		Period:     req.Period,
		BaseAmount: employee.BaseSalary,
		Allowances: req.Allowances.Round(2),
		Deductions: req.Deductions.Round(2),
		NetAmount:  NetSalary(employee.BaseSalary, req.Allowances, req.Deductions),
		Status:     SalaryStatusPending,
		CreatedBy:  actorID,
	})
}

// PaySalary settles a PENDING record: it posts a ledger entry debiting salary
// expense and crediting cash with a SALARY reference, then marks the record
// PAID. Paying is terminal.
func (s *Service) PaySalary(ctx context.Context, actorID, id int64) (Salary, error) {
	salary, err := s.salaries.Get(ctx, id)
	if err != nil {
		return Salary{}, err
	}
	if salary.Status != SalaryStatusPending {
		return Salary{}, ErrSalaryAlreadyPaid
	}
	employee, err := s.employees.Get(ctx, salary.EmployeeID)
	if err != nil {
		return Salary{}, err
	}

	memo := fmt.Sprintf("Salary %s %s", employee.Name, salary.Period)
	entry, err := s.journal.CreateAndPost(ctx, journals.DraftInput{
		Date:        s.now(),
		Description: memo,
		Reference:   &journals.Reference{Type: journals.ReferenceSalary, ID: salary.ID},
		Lines: []journals.LineInput{
			{AccountID: s.accounts.SalaryExpenseAccountID, Debit: salary.NetAmount, Memo: memo},
			{AccountID: s.accounts.CashAccountID, Credit: salary.NetAmount, Memo: memo},
		},
		ActorID: actorID,
	})
	if err != nil {
		return Salary{}, err
	}
	if err := s.salaries.MarkPaid(ctx, salary.ID, entry.ID); err != nil {
		return Salary{}, err
	}

	salary.Status = SalaryStatusPaid
	now := s.now()
	salary.PaidAt = &now
	salary.JournalEntryID = &entry.ID
	if s.audit != nil {
		_ = s.audit.Record(ctx, internalShared.AuditLog{
			ActorID:  actorID,
			Action:   "salary.pay",
			Entity:   "salary",
			EntityID: fmt.Sprintf("%d", salary.ID),
			Meta:     map[string]any{"period": salary.Period, "net": salary.NetAmount.String()},
			At:       now,
		})
	}
	return salary, nil
}

func (s *Service) GetSalary(ctx context.Context, id int64) (Salary, error) {
	return s.salaries.Get(ctx, id)
}

func (s *Service) ListSalaries(ctx context.Context, req ListSalariesRequest) ([]Salary, error) {
	return s.salaries.List(ctx, req)
}
