package reports

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Repository runs the aggregation queries behind the report builders. Only
// lines of POSTED entries are visible to any report.
type Repository interface {
	FetchAccountActivity(ctx context.Context, period Period) ([]AccountActivity, error)
	FetchLedgerLines(ctx context.Context, accountID *int64, period Period) ([]LedgerLine, error)
	FetchOpeningActivity(ctx context.Context, accountID int64, before time.Time) (debit, credit decimal.Decimal, err error)
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) FetchAccountActivity(ctx context.Context, period Period) ([]AccountActivity, error) {
	rows, err := r.db.Query(ctx, `SELECT a.id, a.code, a.name, a.type,
       COALESCE(SUM(l.debit), 0), COALESCE(SUM(l.credit), 0)
FROM accounts a
LEFT JOIN journal_lines l ON l.account_id = a.id
LEFT JOIN journal_entries e ON e.id = l.entry_id
  AND e.status = 'POSTED'
  AND ($1::date IS NULL OR e.entry_date >= $1)
  AND ($2::date IS NULL OR e.entry_date <= $2)
WHERE NOT a.is_parent
GROUP BY a.id, a.code, a.name, a.type
ORDER BY a.code`, period.From, period.To)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var activity []AccountActivity
	for rows.Next() {
		var a AccountActivity
		if err := rows.Scan(&a.AccountID, &a.Code, &a.Name, &a.Type, &a.Debit, &a.Credit); err != nil {
			return nil, err
		}
		activity = append(activity, a)
	}
	return activity, rows.Err()
}

func (r *repository) FetchLedgerLines(ctx context.Context, accountID *int64, period Period) ([]LedgerLine, error) {
	rows, err := r.db.Query(ctx, `SELECT l.entry_id, e.entry_number, e.entry_date, l.account_id, a.code, a.name, e.description, l.memo, l.debit, l.credit
FROM journal_lines l
JOIN journal_entries e ON e.id = l.entry_id
JOIN accounts a ON a.id = l.account_id
WHERE e.status = 'POSTED'
  AND ($1::bigint IS NULL OR l.account_id = $1)
  AND ($2::date IS NULL OR e.entry_date >= $2)
  AND ($3::date IS NULL OR e.entry_date <= $3)
ORDER BY e.entry_date ASC, e.entry_number ASC, l.id ASC`, accountID, period.From, period.To)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var lines []LedgerLine
	for rows.Next() {
		var line LedgerLine
		if err := rows.Scan(&line.EntryID, &line.EntryNumber, &line.EntryDate, &line.AccountID,
			&line.AccountCode, &line.AccountName, &line.Description, &line.Memo, &line.Debit, &line.Credit); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

// FetchOpeningActivity sums posted activity strictly before the given date.
func (r *repository) FetchOpeningActivity(ctx context.Context, accountID int64, before time.Time) (decimal.Decimal, decimal.Decimal, error) {
	var debit, credit decimal.Decimal
	err := r.db.QueryRow(ctx, `SELECT COALESCE(SUM(l.debit), 0), COALESCE(SUM(l.credit), 0)
FROM journal_lines l
JOIN journal_entries e ON e.id = l.entry_id
WHERE l.account_id = $1 AND e.status = 'POSTED' AND e.entry_date < $2`, accountID, before).Scan(&debit, &credit)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return debit, credit, nil
}
