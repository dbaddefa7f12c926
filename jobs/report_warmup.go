package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/meridian-erp/meridian-erp/internal/accounting/reports"
)

// NewReportWarmupHandler precomputes the trial balance and income statement
// for the requested period so the first interactive request hits the cache.
// An empty payload warms the current month.
func NewReportWarmupHandler(service *reports.Service, logger *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload ReportWarmupPayload
		if len(t.Payload()) > 0 {
			if err := json.Unmarshal(t.Payload(), &payload); err != nil {
				return asynq.SkipRetry
			}
		}
		if payload.From.IsZero() || payload.To.IsZero() {
			now := time.Now().UTC()
			payload.From = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
			payload.To = payload.From.AddDate(0, 1, -1)
		}
		period := reports.Period{From: &payload.From, To: &payload.To}

		if _, err := service.TrialBalance(ctx, period, true); err != nil {
			logger.Error("trial balance warmup failed", slog.Any("error", err))
			return err
		}
		if _, err := service.IncomeStatement(ctx, period, true); err != nil {
			logger.Error("income statement warmup failed", slog.Any("error", err))
			return err
		}
		logger.Info("report warmup complete",
			slog.Time("from", payload.From), slog.Time("to", payload.To))
		return nil
	}
}
