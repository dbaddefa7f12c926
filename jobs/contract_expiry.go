package jobs

import (
	"context"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/meridian-erp/meridian-erp/internal/contracts"
)

// NewContractExpiryHandler returns the handler that expires overdue contracts.
func NewContractExpiryHandler(service *contracts.Service, logger *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		n, err := service.ExpireOverdue(ctx)
		if err != nil {
			logger.Error("contract expiry failed", slog.Any("error", err))
			return err
		}
		if n > 0 {
			logger.Info("contracts expired", slog.Int64("count", n))
		}
		return nil
	}
}
