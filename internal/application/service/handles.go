package service

import (
	"context"
	"fmt"

	"petagenda/internal/domain/trigger"
	"petagenda/internal/pkg/logger"
)

// scheduleTriggers requests every trigger and returns the handles that were
// granted, or nil when there are none. Failures are logged per trigger and
// skipped; a denied permission schedules nothing.
func scheduleTriggers(ctx context.Context, port NotificationPort, triggers []trigger.Trigger, log logger.Logger) []string {
	if len(triggers) == 0 {
		return nil
	}
	if !port.RequestPermission(ctx) {
		log.Warn(fmt.Sprintf("Notification permission not granted, skipping %d trigger(s)", len(triggers)))
		return nil
	}
	var handles []string
	for _, t := range triggers {
		handle, err := port.ScheduleAt(ctx, t)
		if err != nil {
			log.Error(fmt.Sprintf("Failed to schedule %s notification for %s (%d days before)", t.Metadata.Kind, t.Metadata.EntityID, t.Metadata.DaysUntil), err)
			continue
		}
		handles = append(handles, handle)
	}
	log.Info(fmt.Sprintf("%d of %d notification(s) scheduled", len(handles), len(triggers)))
	return handles
}

// cancelHandles releases every handle once. Failures are logged and the
// remaining handles are still cancelled.
func cancelHandles(ctx context.Context, port NotificationPort, handles []string, log logger.Logger) {
	cancelled := 0
	for _, h := range handles {
		if err := port.Cancel(ctx, h); err != nil {
			log.Error(fmt.Sprintf("Failed to cancel notification %s", h), err)
			continue
		}
		cancelled++
	}
	if len(handles) > 0 {
		log.Info(fmt.Sprintf("%d of %d notification(s) cancelled", cancelled, len(handles)))
	}
}
