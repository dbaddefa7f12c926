package hr

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridian-erp/meridian-erp/internal/platform/httpx"
)

var (
	// ErrEmployeeNotFound indicates a missing employee.
	ErrEmployeeNotFound = fmt.Errorf("%w: employee", httpx.ErrNotFound)
	// ErrSalaryNotFound indicates a missing payroll record.
	ErrSalaryNotFound = fmt.Errorf("%w: salary", httpx.ErrNotFound)
	// ErrDuplicateSalary indicates a second payroll record for the same
	// employee and period.
	ErrDuplicateSalary = fmt.Errorf("%w: salary already exists for period", httpx.ErrDuplicate)
)

// EmployeeRepository encapsulates DB operations for employees.
type EmployeeRepository interface {
	Create(ctx context.Context, e Employee) (Employee, error)
	Update(ctx context.Context, e Employee) error
	Get(ctx context.Context, id int64) (Employee, error)
	List(ctx context.Context, activeOnly bool) ([]Employee, error)
}

// SalaryRepository encapsulates DB operations for payroll records.
type SalaryRepository interface {
	Create(ctx context.Context, s Salary) (Salary, error)
	Get(ctx context.Context, id int64) (Salary, error)
	List(ctx context.Context, req ListSalariesRequest) ([]Salary, error)
	MarkPaid(ctx context.Context, id, entryID int64) error
}

type employeeRepository struct {
	db *pgxpool.Pool
}

func NewEmployeeRepository(db *pgxpool.Pool) EmployeeRepository {
	return &employeeRepository{db: db}
}

const employeeColumns = `id, name, position, phone, base_salary, is_active, hire_date, created_at, updated_at`

func scanEmployee(row pgx.Row) (Employee, error) {
	var e Employee
	err := row.Scan(&e.ID, &e.Name, &e.Position, &e.Phone, &e.BaseSalary, &e.IsActive, &e.HireDate, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

func (r *employeeRepository) Create(ctx context.Context, e Employee) (Employee, error) {
	row := r.db.QueryRow(ctx, `INSERT INTO employees (name, position, phone, base_salary, is_active, hire_date)
VALUES ($1,$2,$3,$4,$5,$6) RETURNING id, created_at, updated_at`,
		e.Name, e.Position, e.Phone, e.BaseSalary, e.IsActive, e.HireDate)
	if err := row.Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return Employee{}, err
	}
	return e, nil
}

func (r *employeeRepository) Update(ctx context.Context, e Employee) error {
	tag, err := r.db.Exec(ctx, `UPDATE employees
SET name=$2, position=$3, phone=$4, base_salary=$5, is_active=$6, updated_at=NOW()
WHERE id=$1`, e.ID, e.Name, e.Position, e.Phone, e.BaseSalary, e.IsActive)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrEmployeeNotFound
	}
	return nil
}

func (r *employeeRepository) Get(ctx context.Context, id int64) (Employee, error) {
	e, err := scanEmployee(r.db.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id=$1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Employee{}, ErrEmployeeNotFound
		}
		return Employee{}, err
	}
	return e, nil
}

func (r *employeeRepository) List(ctx context.Context, activeOnly bool) ([]Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees`
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY name ASC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

type salaryRepository struct {
	db *pgxpool.Pool
}

func NewSalaryRepository(db *pgxpool.Pool) SalaryRepository {
	return &salaryRepository{db: db}
}

const salaryColumns = `id, employee_id, period, base_amount, allowances, deductions, net_amount, status, paid_at, journal_entry_id, created_by, created_at, updated_at`

func scanSalary(row pgx.Row) (Salary, error) {
	var s Salary
	err := row.Scan(&s.ID, &s.EmployeeID, &s.Period, &s.BaseAmount, &s.Allowances, &s.Deductions,
		&s.NetAmount, &s.Status, &s.PaidAt, &s.JournalEntryID, &s.CreatedBy, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

func (r *salaryRepository) Create(ctx context.Context, s Salary) (Salary, error) {
	row := r.db.QueryRow(ctx, `INSERT INTO salaries (employee_id, period, base_amount, allowances, deductions, net_amount, status, created_by)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8) RETURNING id, created_at, updated_at`,
		s.EmployeeID, s.Period, s.BaseAmount, s.Allowances, s.Deductions, s.NetAmount, s.Status, s.CreatedBy)
	if err := row.Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Salary{}, ErrDuplicateSalary
		}
		return Salary{}, err
	}
	return s, nil
}

func (r *salaryRepository) Get(ctx context.Context, id int64) (Salary, error) {
	s, err := scanSalary(r.db.QueryRow(ctx, `SELECT `+salaryColumns+` FROM salaries WHERE id=$1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Salary{}, ErrSalaryNotFound
		}
		return Salary{}, err
	}
	return s, nil
}

func (r *salaryRepository) List(ctx context.Context, req ListSalariesRequest) ([]Salary, error) {
	query := `SELECT ` + salaryColumns + ` FROM salaries WHERE 1=1`
	args := []any{}
	if req.EmployeeID != nil {
		args = append(args, *req.EmployeeID)
		query += fmt.Sprintf(" AND employee_id=$%d", len(args))
	}
	if req.Period != nil {
		args = append(args, *req.Period)
		query += fmt.Sprintf(" AND period=$%d", len(args))
	}
	if req.Status != nil {
		args = append(args, *req.Status)
		query += fmt.Sprintf(" AND status=$%d", len(args))
	}
	query += " ORDER BY period DESC, employee_id ASC"
	if req.Limit > 0 {
		args = append(args, req.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if req.Offset > 0 {
		args = append(args, req.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Salary
	for rows.Next() {
		s, err := scanSalary(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// MarkPaid flips a PENDING salary to PAID and links the ledger entry. The
// WHERE guard makes the transition idempotence-safe under concurrency: a
// second attempt affects zero rows.
func (r *salaryRepository) MarkPaid(ctx context.Context, id, entryID int64) error {
	tag, err := r.db.Exec(ctx, `UPDATE salaries
SET status='PAID', paid_at=NOW(), journal_entry_id=$2, updated_at=NOW()
WHERE id=$1 AND status='PENDING'`, id, entryID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSalaryNotFound
	}
	return nil
}
