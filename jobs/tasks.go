// Package jobs hosts the background worker and its task definitions.
package jobs

import "github.com/hibiken/asynq"

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskBookingSnapshot rewrites the persisted ledger document.
	TaskBookingSnapshot = "booking:snapshot"
	// TaskBookingIntegrity scans persisted records for invariant violations.
	TaskBookingIntegrity = "booking:integrity"
)

// NewBookingSnapshotTask constructs the snapshot task. The task carries
// no payload; the worker owns its store handle.
func NewBookingSnapshotTask() *asynq.Task {
	return asynq.NewTask(TaskBookingSnapshot, nil)
}

// NewBookingIntegrityTask constructs the integrity-scan task.
func NewBookingIntegrityTask() *asynq.Task {
	return asynq.NewTask(TaskBookingIntegrity, nil)
}
