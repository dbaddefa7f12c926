package jobs

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskContractExpiry flips overdue contracts to EXPIRED.
	TaskContractExpiry = "contracts:expire"
	// TaskGLIntegrity verifies posted ledger entries still balance.
	TaskGLIntegrity = "ledger:integrity"
	// TaskReportWarmup precomputes the current-month financial reports.
	TaskReportWarmup = "reports:warmup"
)

// ReportWarmupPayload selects the period to precompute.
type ReportWarmupPayload struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// NewContractExpiryTask constructs the contract expiry task.
func NewContractExpiryTask() *asynq.Task {
	return asynq.NewTask(TaskContractExpiry, nil)
}

// NewGLIntegrityTask constructs the ledger integrity task.
func NewGLIntegrityTask() *asynq.Task {
	return asynq.NewTask(TaskGLIntegrity, nil)
}

// NewReportWarmupTask constructs a warmup task for the given period.
func NewReportWarmupTask(payload ReportWarmupPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskReportWarmup, data), nil
}
