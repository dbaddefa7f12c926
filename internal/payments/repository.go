package payments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridian-erp/meridian-erp/internal/platform/httpx"
)

// ErrPaymentNotFound indicates a missing payment.
var ErrPaymentNotFound = fmt.Errorf("%w: payment", httpx.ErrNotFound)

// Repository encapsulates DB operations for payments.
type Repository interface {
	Create(ctx context.Context, p Payment) (int64, error)
	SetJournalEntry(ctx context.Context, id, entryID int64) error
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (Payment, error)
	List(ctx context.Context, req ListPaymentsRequest) ([]Payment, int, error)
	GenerateNumber(ctx context.Context, date time.Time) (string, error)
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const paymentColumns = `id, payment_number, contract_id, amount, method, payment_date, notes, journal_entry_id, created_by, created_at`

func scanPayment(row pgx.Row) (Payment, error) {
	var p Payment
	err := row.Scan(&p.ID, &p.PaymentNumber, &p.ContractID, &p.Amount, &p.Method, &p.PaymentDate,
		&p.Notes, &p.JournalEntryID, &p.CreatedBy, &p.CreatedAt)
	return p, err
}

func (r *repository) Create(ctx context.Context, p Payment) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `INSERT INTO payments (payment_number, contract_id, amount, method, payment_date, notes, created_by)
VALUES ($1,$2,$3,$4,$5,$6,$7) RETURNING id`,
		p.PaymentNumber, p.ContractID, p.Amount, p.Method, p.PaymentDate, p.Notes, p.CreatedBy).Scan(&id)
	return id, err
}

func (r *repository) SetJournalEntry(ctx context.Context, id, entryID int64) error {
	tag, err := r.db.Exec(ctx, `UPDATE payments SET journal_entry_id=$2 WHERE id=$1`, id, entryID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPaymentNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM payments WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPaymentNotFound
	}
	return nil
}

func (r *repository) Get(ctx context.Context, id int64) (Payment, error) {
	p, err := scanPayment(r.db.QueryRow(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id=$1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Payment{}, ErrPaymentNotFound
		}
		return Payment{}, err
	}
	return p, nil
}

func (r *repository) List(ctx context.Context, req ListPaymentsRequest) ([]Payment, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	if req.ContractID != nil {
		args = append(args, *req.ContractID)
		where += fmt.Sprintf(" AND contract_id=$%d", len(args))
	}
	if req.DateFrom != nil {
		args = append(args, *req.DateFrom)
		where += fmt.Sprintf(" AND payment_date >= $%d", len(args))
	}
	if req.DateTo != nil {
		args = append(args, *req.DateTo)
		where += fmt.Sprintf(" AND payment_date <= $%d", len(args))
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM payments`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + paymentColumns + ` FROM payments` + where + ` ORDER BY payment_date DESC, id DESC`
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
		return nil, 0, err
	}
	defer rows.Close()
	var out []Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}
	return out, total, rows.Err()
}

// GenerateNumber produces PY-{YY}{MM}-{SEQ} scoped to the payment month.
func (r *repository) GenerateNumber(ctx context.Context, date time.Time) (string, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM payments WHERE date_trunc('month', payment_date) = date_trunc('month', $1::date)`, date).Scan(&count)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("PY-%s-%04d", date.Format("0601"), count+1), nil
}
