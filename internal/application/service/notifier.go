package service

import (
	"context"
	"time"

	"petagenda/internal/domain/trigger"
)

// NotificationPort defines the platform notification primitives the
// lifecycle services depend on.
type NotificationPort interface {
	// RequestPermission reports whether notifications may be scheduled.
	RequestPermission(ctx context.Context) bool
	// ScheduleAt requests a trigger and returns its handle.
	ScheduleAt(ctx context.Context, t trigger.Trigger) (string, error)
	// Cancel releases a previously returned handle.
	Cancel(ctx context.Context, handle string) error
}

// Clock returns the current instant.
type Clock func() time.Time

// IDGenerator returns a fresh entity identifier.
type IDGenerator func() string
