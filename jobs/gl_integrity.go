package jobs

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// NewGLIntegrityHandler returns the handler that verifies every posted entry
// still sums to equal debits and credits, and that stored entry totals match
// their lines. Any violation fails the job so it alerts through the queue.
func NewGLIntegrityHandler(pool *pgxpool.Pool, logger *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		rows, err := pool.Query(ctx, `
SELECT e.id, e.entry_number, e.total_debit, e.total_credit,
       COALESCE(SUM(l.debit), 0) AS line_debit,
       COALESCE(SUM(l.credit), 0) AS line_credit
FROM journal_entries e
LEFT JOIN journal_lines l ON l.entry_id = e.id
WHERE e.status = 'POSTED'
GROUP BY e.id, e.entry_number, e.total_debit, e.total_credit`)
		if err != nil {
			return err
		}
		defer rows.Close()

		var violations int
		for rows.Next() {
			var (
				id                     int64
				number                 string
				totalDebit, totalCredit decimal.Decimal
				lineDebit, lineCredit  decimal.Decimal
			)
			if err := rows.Scan(&id, &number, &totalDebit, &totalCredit, &lineDebit, &lineCredit); err != nil {
				return err
			}
			if !lineDebit.Equal(lineCredit) {
				violations++
				logger.Error("unbalanced posted entry",
					slog.String("entry", number),
					slog.String("debit", lineDebit.String()),
					slog.String("credit", lineCredit.String()))
			}
			if !totalDebit.Equal(lineDebit) || !totalCredit.Equal(lineCredit) {
				violations++
				logger.Error("entry totals diverge from lines", slog.String("entry", number))
			}
		}
		if err := rows.Err(); err != nil {
			return err
		}
		if violations > 0 {
			return fmt.Errorf("ledger integrity: %d violation(s)", violations)
		}
		logger.Info("ledger integrity check passed")
		return nil
	}
}
