package hr

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-erp/meridian-erp/internal/accounting/journals"
	"github.com/meridian-erp/meridian-erp/internal/platform/httpx"
	internalShared "github.com/meridian-erp/meridian-erp/internal/shared"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type fakeEmployees struct {
	employees map[int64]*Employee
	nextID    int64
}

func newFakeEmployees() *fakeEmployees {
	return &fakeEmployees{employees: make(map[int64]*Employee), nextID: 1}
}

func (f *fakeEmployees) Create(ctx context.Context, e Employee) (Employee, error) {
	e.ID = f.nextID
	f.nextID++
	e.CreatedAt = time.Now()
	e.UpdatedAt = e.CreatedAt
	stored := e
	f.employees[e.ID] = &stored
	return e, nil
}

func (f *fakeEmployees) Update(ctx context.Context, e Employee) error {
	stored, ok := f.employees[e.ID]
	if !ok {
		return ErrEmployeeNotFound
	}
	*stored = e
	return nil
}

func (f *fakeEmployees) Get(ctx context.Context, id int64) (Employee, error) {
	e, ok := f.employees[id]
	if !ok {
		return Employee{}, ErrEmployeeNotFound
	}
	return *e, nil
}

func (f *fakeEmployees) List(ctx context.Context, activeOnly bool) ([]Employee, error) {
	var out []Employee
	for _, e := range f.employees {
		if activeOnly && !e.IsActive {
			continue
		}
		out = append(out, *e)
	}
	return out, nil
}

type fakeSalaries struct {
	salaries map[int64]*Salary
	nextID   int64
}

func newFakeSalaries() *fakeSalaries {
	return &fakeSalaries{salaries: make(map[int64]*Salary), nextID: 1}
}

func (f *fakeSalaries) Create(ctx context.Context, s Salary) (Salary, error) {
	for _, existing := range f.salaries {
		if existing.EmployeeID == s.EmployeeID && existing.Period == s.Period {
			return Salary{}, ErrDuplicateSalary
		}
	}
	s.ID = f.nextID
	f.nextID++
	s.CreatedAt = time.Now()
	s.UpdatedAt = s.CreatedAt
	stored := s
	f.salaries[s.ID] = &stored
	return s, nil
}

func (f *fakeSalaries) Get(ctx context.Context, id int64) (Salary, error) {
	s, ok := f.salaries[id]
	if !ok {
		return Salary{}, ErrSalaryNotFound
	}
	return *s, nil
}

func (f *fakeSalaries) List(ctx context.Context, req ListSalariesRequest) ([]Salary, error) {
	var out []Salary
	for _, s := range f.salaries {
		if req.Status != nil && s.Status != *req.Status {
			continue
		}
		out = append(out, *s)
	}
	return out, nil
}

func (f *fakeSalaries) MarkPaid(ctx context.Context, id, entryID int64) error {
	s, ok := f.salaries[id]
	if !ok || s.Status != SalaryStatusPending {
		return ErrSalaryNotFound
	}
	now := time.Now()
	s.Status = SalaryStatusPaid
	s.PaidAt = &now
	s.JournalEntryID = &entryID
	return nil
}

type fakeJournal struct {
	posted []journals.DraftInput
	nextID int64
}

func (f *fakeJournal) CreateAndPost(ctx context.Context, in journals.DraftInput) (journals.JournalEntry, error) {
	f.posted = append(f.posted, in)
	f.nextID++
	return journals.JournalEntry{ID: f.nextID, Status: journals.EntryStatusPosted}, nil
}

type fakeAudit struct {
	actions []string
}

func (f *fakeAudit) Record(ctx context.Context, log internalShared.AuditLog) error {
	f.actions = append(f.actions, log.Action)
	return nil
}

func newTestService(t *testing.T) (*Service, *fakeEmployees, *fakeSalaries, *fakeJournal) {
	t.Helper()
	employees := newFakeEmployees()
	salaries := newFakeSalaries()
	journal := &fakeJournal{}
	svc := NewService(employees, salaries, journal, &fakeAudit{}, PostingAccounts{
		SalaryExpenseAccountID: 51,
		CashAccountID:          121,
	})
	_, err := svc.CreateEmployee(context.Background(), CreateEmployeeRequest{
		Name:       "Sami Haddad",
		Position:   "Site Supervisor",
		BaseSalary: dec("1200"),
		HireDate:   "2023-02-01",
	})
	require.NoError(t, err)
	return svc, employees, salaries, journal
}

func TestNetSalary(t *testing.T) {
	assert.True(t, NetSalary(dec("1200"), dec("150"), dec("50")).Equal(dec("1300")))
	assert.True(t, NetSalary(dec("100"), dec("0"), dec("250")).IsZero())
}

func TestCreateSalarySnapshotsBase(t *testing.T) {
	svc, employees, _, _ := newTestService(t)

	salary, err := svc.CreateSalary(context.Background(), 1, CreateSalaryRequest{
		EmployeeID: 1,
		Period:     "2024-05",
		Allowances: dec("150"),
		Deductions: dec("50"),
	})
	require.NoError(t, err)
	assert.Equal(t, SalaryStatusPending, salary.Status)
	assert.True(t, salary.NetAmount.Equal(dec("1300")), "net %s", salary.NetAmount)

	// a raise after the payroll record exists must not change it
	employees.employees[1].BaseSalary = dec("2000")
	again, err := svc.GetSalary(context.Background(), salary.ID)
	require.NoError(t, err)
	assert.True(t, again.BaseAmount.Equal(dec("1200")))
}

func TestCreateSalaryRejectsDuplicatePeriod(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	req := CreateSalaryRequest{EmployeeID: 1, Period: "2024-05"}

	_, err := svc.CreateSalary(context.Background(), 1, req)
	require.NoError(t, err)
	_, err = svc.CreateSalary(context.Background(), 1, req)
	assert.ErrorIs(t, err, ErrDuplicateSalary)
}

func TestCreateSalaryRejectsInactiveEmployee(t *testing.T) {
	svc, employees, _, _ := newTestService(t)
	employees.employees[1].IsActive = false

	_, err := svc.CreateSalary(context.Background(), 1, CreateSalaryRequest{EmployeeID: 1, Period: "2024-05"})
	assert.ErrorIs(t, err, ErrEmployeeInactive)
}

func TestPaySalaryPostsLedgerEntry(t *testing.T) {
	svc, _, _, journal := newTestService(t)
	salary, err := svc.CreateSalary(context.Background(), 1, CreateSalaryRequest{
		EmployeeID: 1,
		Period:     "2024-05",
		Allowances: dec("100"),
	})
	require.NoError(t, err)

	paid, err := svc.PaySalary(context.Background(), 9, salary.ID)
	require.NoError(t, err)
	assert.Equal(t, SalaryStatusPaid, paid.Status)
	require.NotNil(t, paid.JournalEntryID)

	require.Len(t, journal.posted, 1)
	in := journal.posted[0]
	require.NotNil(t, in.Reference)
	assert.Equal(t, journals.ReferenceSalary, in.Reference.Type)
	assert.Equal(t, salary.ID, in.Reference.ID)
	require.Len(t, in.Lines, 2)
	assert.Equal(t, int64(51), in.Lines[0].AccountID)
	assert.True(t, in.Lines[0].Debit.Equal(dec("1300")))
	assert.Equal(t, int64(121), in.Lines[1].AccountID)
	assert.True(t, in.Lines[1].Credit.Equal(dec("1300")))
	assert.NoError(t, in.Validate())
}

func TestPaySalaryIsTerminal(t *testing.T) {
	svc, _, _, journal := newTestService(t)
	salary, err := svc.CreateSalary(context.Background(), 1, CreateSalaryRequest{EmployeeID: 1, Period: "2024-05"})
	require.NoError(t, err)

	_, err = svc.PaySalary(context.Background(), 1, salary.ID)
	require.NoError(t, err)
	_, err = svc.PaySalary(context.Background(), 1, salary.ID)
	assert.ErrorIs(t, err, ErrSalaryAlreadyPaid)
	assert.ErrorIs(t, err, httpx.ErrState)
	assert.Len(t, journal.posted, 1, "second attempt must not post again")
}
