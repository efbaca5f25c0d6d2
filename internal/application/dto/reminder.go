package dto

import (
	"petagenda/internal/domain/entity"
)

// CreateReminderRequest is the DTO for creating a new reminder.
type CreateReminderRequest struct {
	PetID       string `json:"petId"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Date        string `json:"date"` // DD/MM/YYYY
}

// UpdateReminderRequest is the DTO for editing a reminder. Nil fields keep
// their current value.
type UpdateReminderRequest struct {
	Category    *string `json:"category,omitempty"`
	Description *string `json:"description,omitempty"`
	Date        *string `json:"date,omitempty"`
}

// ReminderSort selects the ordering of ListReminders.
type ReminderSort string

const (
	SortDateAsc  ReminderSort = "date"
	SortDateDesc ReminderSort = "-date"
)

// ReminderQuery filters ListReminders. Empty fields match everything.
type ReminderQuery struct {
	PetID    string       `query:"petId"`
	Category string       `query:"category"`
	Search   string       `query:"q"`
	Sort     ReminderSort `query:"sort"`
}

// ReminderResponse is the DTO for sending reminder information to the client.
type ReminderResponse struct {
	ID              string   `json:"id"`
	PetID           string   `json:"petId"`
	Category        string   `json:"category"`
	Description     string   `json:"description"`
	Date            string   `json:"date"`
	NotificationIDs []string `json:"notificationIds"`
}

// ToReminderResponse converts an entity.Reminder to a ReminderResponse DTO.
func ToReminderResponse(r *entity.Reminder) ReminderResponse {
	ids := r.NotificationIDs
	if ids == nil {
		ids = []string{}
	}
	return ReminderResponse{
		ID:              r.ID,
		PetID:           r.PetID,
		Category:        r.Category.String(),
		Description:     r.Description,
		Date:            r.Date.String(),
		NotificationIDs: ids,
	}
}

// ToReminderResponseList converts a slice of entity.Reminder to a slice of ReminderResponse DTOs.
func ToReminderResponseList(reminders []*entity.Reminder) []ReminderResponse {
	list := make([]ReminderResponse, len(reminders))
	for i, r := range reminders {
		list[i] = ToReminderResponse(r)
	}
	return list
}
