package masterdata

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
	// ErrCustomerNotFound indicates a missing customer.
	ErrCustomerNotFound = fmt.Errorf("%w: customer", httpx.ErrNotFound)
	// ErrSupplierNotFound indicates a missing supplier.
	ErrSupplierNotFound = fmt.Errorf("%w: supplier", httpx.ErrNotFound)
	// ErrScaffoldNotFound indicates a missing scaffold type.
	ErrScaffoldNotFound = fmt.Errorf("%w: scaffold", httpx.ErrNotFound)
	// ErrDuplicateScaffoldCode indicates a scaffold code collision.
	ErrDuplicateScaffoldCode = fmt.Errorf("%w: scaffold code already exists", httpx.ErrDuplicate)
)

// Repository encapsulates DB operations for master data entities.
type Repository interface {
	CreateCustomer(ctx context.Context, c Customer) (Customer, error)
	UpdateCustomer(ctx context.Context, c Customer) error
	GetCustomer(ctx context.Context, id int64) (Customer, error)
	ListCustomers(ctx context.Context, activeOnly bool) ([]Customer, error)

	CreateSupplier(ctx context.Context, s Supplier) (Supplier, error)
	UpdateSupplier(ctx context.Context, s Supplier) error
	GetSupplier(ctx context.Context, id int64) (Supplier, error)
	ListSuppliers(ctx context.Context, activeOnly bool) ([]Supplier, error)

	CreateScaffold(ctx context.Context, s Scaffold) (Scaffold, error)
	UpdateScaffold(ctx context.Context, s Scaffold) error
	GetScaffold(ctx context.Context, id int64) (Scaffold, error)
	ListScaffolds(ctx context.Context, activeOnly bool) ([]Scaffold, error)
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const customerColumns = `id, name, phone, email, address, tax_number, is_active, created_at, updated_at`

func scanCustomer(row pgx.Row) (Customer, error) {
	var c Customer
	err := row.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.Address, &c.TaxNumber, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (r *repository) CreateCustomer(ctx context.Context, c Customer) (Customer, error) {
	row := r.db.QueryRow(ctx, `INSERT INTO customers (name, phone, email, address, tax_number, is_active)
VALUES ($1,$2,$3,$4,$5,$6) RETURNING id, created_at, updated_at`,
		c.Name, c.Phone, c.Email, c.Address, c.TaxNumber, c.IsActive)
	if err := row.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return Customer{}, err
	}
	return c, nil
}

func (r *repository) UpdateCustomer(ctx context.Context, c Customer) error {
	tag, err := r.db.Exec(ctx, `UPDATE customers
SET name=$2, phone=$3, email=$4, address=$5, tax_number=$6, is_active=$7, updated_at=NOW()
WHERE id=$1`, c.ID, c.Name, c.Phone, c.Email, c.Address, c.TaxNumber, c.IsActive)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrCustomerNotFound
	}
	return nil
}

func (r *repository) GetCustomer(ctx context.Context, id int64) (Customer, error) {
	c, err := scanCustomer(r.db.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE id=$1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Customer{}, ErrCustomerNotFound
		}
		return Customer{}, err
	}
	return c, nil
}

func (r *repository) ListCustomers(ctx context.Context, activeOnly bool) ([]Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers`
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY name ASC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

const supplierColumns = `id, name, phone, email, address, is_active, created_at, updated_at`

func scanSupplier(row pgx.Row) (Supplier, error) {
	var s Supplier
	err := row.Scan(&s.ID, &s.Name, &s.Phone, &s.Email, &s.Address, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

func (r *repository) CreateSupplier(ctx context.Context, s Supplier) (Supplier, error) {
	row := r.db.QueryRow(ctx, `INSERT INTO suppliers (name, phone, email, address, is_active)
VALUES ($1,$2,$3,$4,$5) RETURNING id, created_at, updated_at`,
		s.Name, s.Phone, s.Email, s.Address, s.IsActive)
	if err := row.Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return Supplier{}, err
	}
	return s, nil
}

func (r *repository) UpdateSupplier(ctx context.Context, s Supplier) error {
	tag, err := r.db.Exec(ctx, `UPDATE suppliers
SET name=$2, phone=$3, email=$4, address=$5, is_active=$6, updated_at=NOW()
WHERE id=$1`, s.ID, s.Name, s.Phone, s.Email, s.Address, s.IsActive)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSupplierNotFound
	}
	return nil
}

func (r *repository) GetSupplier(ctx context.Context, id int64) (Supplier, error) {
	s, err := scanSupplier(r.db.QueryRow(ctx, `SELECT `+supplierColumns+` FROM suppliers WHERE id=$1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Supplier{}, ErrSupplierNotFound
		}
		return Supplier{}, err
	}
	return s, nil
}

func (r *repository) ListSuppliers(ctx context.Context, activeOnly bool) ([]Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers`
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY name ASC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Supplier
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

const scaffoldColumns = `id, code, name, description, daily_rate, monthly_rate, quantity_total, quantity_available, is_active, created_at, updated_at`

func scanScaffold(row pgx.Row) (Scaffold, error) {
	var s Scaffold
	err := row.Scan(&s.ID, &s.Code, &s.Name, &s.Description, &s.DailyRate, &s.MonthlyRate,
		&s.QuantityTotal, &s.QuantityAvailable, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

func (r *repository) CreateScaffold(ctx context.Context, s Scaffold) (Scaffold, error) {
	row := r.db.QueryRow(ctx, `INSERT INTO scaffolds (code, name, description, daily_rate, monthly_rate, quantity_total, quantity_available, is_active)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8) RETURNING id, created_at, updated_at`,
		s.Code, s.Name, s.Description, s.DailyRate, s.MonthlyRate, s.QuantityTotal, s.QuantityAvailable, s.IsActive)
	if err := row.Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Scaffold{}, ErrDuplicateScaffoldCode
		}
		return Scaffold{}, err
	}
	return s, nil
}

func (r *repository) UpdateScaffold(ctx context.Context, s Scaffold) error {
	tag, err := r.db.Exec(ctx, `UPDATE scaffolds
SET name=$2, description=$3, daily_rate=$4, monthly_rate=$5, quantity_total=$6, quantity_available=$7, is_active=$8, updated_at=NOW()
WHERE id=$1`, s.ID, s.Name, s.Description, s.DailyRate, s.MonthlyRate, s.QuantityTotal, s.QuantityAvailable, s.IsActive)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrScaffoldNotFound
	}
	return nil
}

func (r *repository) GetScaffold(ctx context.Context, id int64) (Scaffold, error) {
	s, err := scanScaffold(r.db.QueryRow(ctx, `SELECT `+scaffoldColumns+` FROM scaffolds WHERE id=$1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Scaffold{}, ErrScaffoldNotFound
		}
		return Scaffold{}, err
	}
	return s, nil
}

func (r *repository) ListScaffolds(ctx context.Context, activeOnly bool) ([]Scaffold, error) {
	query := `SELECT ` + scaffoldColumns + ` FROM scaffolds`
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY code ASC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Scaffold
	for rows.Next() {
		s, err := scanScaffold(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
