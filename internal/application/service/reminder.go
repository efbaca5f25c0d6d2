package service

import (
	"context"
	"petagenda/internal/application/dto"
	"petagenda/internal/domain/entity"
)

// ReminderService defines the interface for the reminder lifecycle.
type ReminderService interface {
	// CreateReminder validates the draft, schedules its notifications and
	// appends it to the reminders collection.
	CreateReminder(ctx context.Context, req dto.CreateReminderRequest) (*entity.Reminder, error)
	// UpdateReminder cancels the reminder's notifications, applies the patch
	// and schedules a fresh set.
	UpdateReminder(ctx context.Context, id string, req dto.UpdateReminderRequest) (*entity.Reminder, error)
	// DeleteReminder cancels the reminder's notifications and removes it.
	DeleteReminder(ctx context.Context, id string) error
	// GetReminder retrieves a reminder by its ID.
	GetReminder(ctx context.Context, id string) (*entity.Reminder, error)
	// ListReminders filters, searches and sorts the stored reminders.
	ListReminders(ctx context.Context, q dto.ReminderQuery) ([]*entity.Reminder, error)
	// DeleteRemindersByPet removes every reminder of a pet. Returns how many were removed.
	DeleteRemindersByPet(ctx context.Context, petID string) (int, error)
	// RescheduleAll recomputes the notifications of every stored reminder.
	RescheduleAll(ctx context.Context) (int, error)
}
