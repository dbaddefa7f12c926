package contracts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/meridian-erp/meridian-erp/internal/platform/db"
	"github.com/meridian-erp/meridian-erp/internal/platform/httpx"
)

// ErrContractNotFound indicates a missing contract.
var ErrContractNotFound = fmt.Errorf("%w: contract", httpx.ErrNotFound)

// Repository encapsulates DB operations for contracts and their lines.
type Repository interface {
	Create(ctx context.Context, c Contract) (int64, error)
	Update(ctx context.Context, c Contract) error
	UpdateStatus(ctx context.Context, id int64, status ContractStatus) error
	InsertLine(ctx context.Context, line ContractLine) error
	DeleteLines(ctx context.Context, contractID int64) error
	Get(ctx context.Context, id int64) (*Contract, error)
	List(ctx context.Context, req ListContractsRequest) ([]Contract, int, error)
	GenerateNumber(ctx context.Context, date time.Time) (string, error)
	PaidAmount(ctx context.Context, contractID int64) (decimal.Decimal, error)
	ExpireOverdue(ctx context.Context, asOf time.Time) (int64, error)
	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error
}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx, so the same methods
// serve inside and outside a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type repository struct {
	q    querier
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{q: pool, pool: pool}
}

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &repository{q: tx, pool: r.pool})
	})
}

const contractColumns = `id, contract_number, customer_id, created_by, start_date, end_date, status, payment_type, transport_cost, total_discount, subtotal, total, notes, created_at, updated_at`

func scanContract(row pgx.Row) (Contract, error) {
	var c Contract
	err := row.Scan(&c.ID, &c.ContractNumber, &c.CustomerID, &c.CreatedBy, &c.StartDate, &c.EndDate,
		&c.Status, &c.PaymentType, &c.TransportCost, &c.TotalDiscount, &c.Subtotal, &c.Total,
		&c.Notes, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (r *repository) Create(ctx context.Context, c Contract) (int64, error) {
	var id int64
	err := r.q.QueryRow(ctx, `INSERT INTO contracts (contract_number, customer_id, created_by, start_date, end_date, status, payment_type, transport_cost, total_discount, subtotal, total, notes)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12) RETURNING id`,
		c.ContractNumber, c.CustomerID, c.CreatedBy, c.StartDate, c.EndDate, c.Status, c.PaymentType,
		c.TransportCost, c.TotalDiscount, c.Subtotal, c.Total, c.Notes).Scan(&id)
	return id, err
}

func (r *repository) Update(ctx context.Context, c Contract) error {
	tag, err := r.q.Exec(ctx, `UPDATE contracts
SET end_date=$2, transport_cost=$3, total_discount=$4, subtotal=$5, total=$6, notes=$7, updated_at=NOW()
WHERE id=$1`, c.ID, c.EndDate, c.TransportCost, c.TotalDiscount, c.Subtotal, c.Total, c.Notes)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrContractNotFound
	}
	return nil
}

func (r *repository) UpdateStatus(ctx context.Context, id int64, status ContractStatus) error {
	tag, err := r.q.Exec(ctx, `UPDATE contracts SET status=$2, updated_at=NOW() WHERE id=$1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrContractNotFound
	}
	return nil
}

func (r *repository) InsertLine(ctx context.Context, line ContractLine) error {
	_, err := r.q.Exec(ctx, `INSERT INTO contract_equipments (contract_id, scaffold_id, start_date, end_date, duration, duration_type, quantity, daily_rate, monthly_rate, discount, total)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		line.ContractID, line.ScaffoldID, line.StartDate, line.EndDate, line.Duration, line.DurationType,
		line.Quantity, line.DailyRate, line.MonthlyRate, line.Discount, line.Total)
	return err
}

func (r *repository) DeleteLines(ctx context.Context, contractID int64) error {
	_, err := r.q.Exec(ctx, `DELETE FROM contract_equipments WHERE contract_id=$1`, contractID)
	return err
}

func (r *repository) Get(ctx context.Context, id int64) (*Contract, error) {
	c, err := scanContract(r.q.QueryRow(ctx, `SELECT `+contractColumns+` FROM contracts WHERE id=$1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrContractNotFound
		}
		return nil, err
	}
	rows, err := r.q.Query(ctx, `SELECT id, contract_id, scaffold_id, start_date, end_date, duration, duration_type, quantity, daily_rate, monthly_rate, discount, total
FROM contract_equipments WHERE contract_id=$1 ORDER BY id ASC`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var line ContractLine
		if err := rows.Scan(&line.ID, &line.ContractID, &line.ScaffoldID, &line.StartDate, &line.EndDate,
			&line.Duration, &line.DurationType, &line.Quantity, &line.DailyRate, &line.MonthlyRate,
			&line.Discount, &line.Total); err != nil {
			return nil, err
		}
		c.Lines = append(c.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) List(ctx context.Context, req ListContractsRequest) ([]Contract, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	if req.CustomerID != nil {
		args = append(args, *req.CustomerID)
		where += fmt.Sprintf(" AND customer_id=$%d", len(args))
	}
	if req.Status != nil {
		args = append(args, *req.Status)
		where += fmt.Sprintf(" AND status=$%d", len(args))
	}
	if req.DateFrom != nil {
		args = append(args, *req.DateFrom)
		where += fmt.Sprintf(" AND start_date >= $%d", len(args))
	}
	if req.DateTo != nil {
		args = append(args, *req.DateTo)
		where += fmt.Sprintf(" AND start_date <= $%d", len(args))
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM contracts`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + contractColumns + ` FROM contracts` + where + ` ORDER BY contract_number DESC`
	if req.Limit > 0 {
		args = append(args, req.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if req.Offset > 0 {
		args = append(args, req.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var contracts []Contract
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, 0, err
		}
		contracts = append(contracts, c)
	}
	return contracts, total, rows.Err()
}

// GenerateNumber produces CT-{YY}{MM}-{SEQ} scoped to the contract month.
func (r *repository) GenerateNumber(ctx context.Context, date time.Time) (string, error) {
	var count int64
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM contracts WHERE date_trunc('month', start_date) = date_trunc('month', $1::date)`, date).Scan(&count)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("CT-%s-%04d", date.Format("0601"), count+1), nil
}

func (r *repository) PaidAmount(ctx context.Context, contractID int64) (decimal.Decimal, error) {
	var paid decimal.Decimal
	err := r.q.QueryRow(ctx, `SELECT COALESCE(SUM(amount), 0) FROM payments WHERE contract_id=$1`, contractID).Scan(&paid)
	if err != nil {
		return decimal.Zero, err
	}
	return paid, nil
}

// ExpireOverdue flips past-end-date ACTIVE contracts to EXPIRED and returns
// how many changed.
func (r *repository) ExpireOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	tag, err := r.q.Exec(ctx, `UPDATE contracts SET status='EXPIRED', updated_at=NOW() WHERE status='ACTIVE' AND end_date < $1`, asOf)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
