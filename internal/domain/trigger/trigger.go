// Package trigger turns reminder and vaccine dates into notification
// triggers. Everything here is pure: the current instant is always passed in.
package trigger

import (
	"fmt"
	"time"

	"petagenda/internal/domain/constant"
	"petagenda/internal/pkg/caldate"
	appErrors "petagenda/internal/pkg/errors"
)

const (
	reminderHour = 9
	vaccineHour  = 10
)

// Priority is a delivery hint carried with each trigger.
type Priority string

const (
	PriorityHigh Priority = "high"
	PriorityMax  Priority = "max"
)

// Metadata identifies the entity a trigger belongs to.
type Metadata struct {
	EntityID  string               `json:"entityId"`
	Kind      constant.TriggerKind `json:"kind"`
	DaysUntil int                  `json:"daysUntil"`
}

// Trigger is one notification to request at a given instant.
type Trigger struct {
	At       time.Time
	Title    string
	Body     string
	Priority Priority
	Metadata Metadata
}

// ReminderSubject is the input for ComputeReminderTriggers.
type ReminderSubject struct {
	EntityID    string
	PetName     string
	Category    constant.Category
	Description string
	Date        caldate.Date
}

// VaccineSubject is the input for ComputeVaccineTriggers.
type VaccineSubject struct {
	EntityID    string
	PetName     string
	VaccineName string
	NextDueDate caldate.Date
}

// offset describes one trigger relative to the target date.
type offset struct {
	daysBefore int
	title      string
	priority   Priority
}

// ComputeReminderTriggers returns the "one day before" and "on the day"
// triggers at 09:00 local time (the location of now), keeping only those
// strictly after now.
func ComputeReminderTriggers(s ReminderSubject, now time.Time) ([]Trigger, error) {
	if s.Date.IsZero() {
		return nil, fmt.Errorf("%w: reminder date is required", appErrors.ErrValidation)
	}
	offsets := []offset{
		{daysBefore: 1, title: fmt.Sprintf("🔔 Reminder tomorrow: %s", s.PetName), priority: PriorityHigh},
		{daysBefore: 0, title: fmt.Sprintf("⏰ Today: %s", s.PetName), priority: PriorityMax},
	}
	body := fmt.Sprintf("%s: %s", s.Category, s.Description)
	return build(s.EntityID, constant.KindReminder, s.Date, reminderHour, body, offsets, now), nil
}

// ComputeVaccineTriggers returns the 7-day, 1-day and same-day booster
// triggers at 10:00 local time, keeping only those strictly after now.
func ComputeVaccineTriggers(s VaccineSubject, now time.Time) ([]Trigger, error) {
	if s.NextDueDate.IsZero() {
		return nil, fmt.Errorf("%w: booster date is required", appErrors.ErrValidation)
	}
	offsets := []offset{
		{daysBefore: 7, title: "💉 Vaccine booster in 7 days", priority: PriorityHigh},
		{daysBefore: 1, title: "💉 Vaccine booster tomorrow", priority: PriorityHigh},
		{daysBefore: 0, title: "💉 Vaccine booster TODAY", priority: PriorityMax},
	}
	body := fmt.Sprintf("%s - %s", s.PetName, s.VaccineName)
	return build(s.EntityID, constant.KindVaccine, s.NextDueDate, vaccineHour, body, offsets, now), nil
}

// build expects offsets ordered by decreasing daysBefore so the result is
// chronological.
func build(entityID string, kind constant.TriggerKind, target caldate.Date, hour int, body string, offsets []offset, now time.Time) []Trigger {
	triggers := make([]Trigger, 0, len(offsets))
	for _, o := range offsets {
		at := target.AddDays(-o.daysBefore).At(hour, now.Location())
		if !at.After(now) {
			continue
		}
		triggers = append(triggers, Trigger{
			At:       at,
			Title:    o.title,
			Body:     body,
			Priority: o.priority,
			Metadata: Metadata{EntityID: entityID, Kind: kind, DaysUntil: o.daysBefore},
		})
	}
	return triggers
}
