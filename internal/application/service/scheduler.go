package service

import (
	"context"
)

// SchedulerService defines the interface for process-level scheduling.
type SchedulerService interface {
	// InitializeSchedules re-creates the notifications of every stored
	// reminder and vaccine record on startup.
	InitializeSchedules(ctx context.Context) error
	// Stop stops the underlying scheduler.
	Stop()
}
