package entity

import (
	"petagenda/internal/domain/constant"
	"petagenda/internal/pkg/caldate"
)

// Reminder is a dated care task for a pet.
type Reminder struct {
	ID              string            `json:"id"`
	PetID           string            `json:"petId"`
	Category        constant.Category `json:"category"`
	Description     string            `json:"description"`
	Date            caldate.Date      `json:"date"`
	NotificationIDs []string          `json:"notificationIds,omitempty"` // Handles returned by the notification port
}

// Handles returns the stored notification handles.
func (r *Reminder) Handles() []string { return r.NotificationIDs }

// SetHandles replaces the stored notification handles.
func (r *Reminder) SetHandles(ids []string) { r.NotificationIDs = ids }
