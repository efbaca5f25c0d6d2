package entity

import "petagenda/internal/pkg/caldate"

// VaccineRecord is one administered vaccine, with an optional booster date.
type VaccineRecord struct {
	ID               string        `json:"id"`
	PetID            string        `json:"petId"`
	VaccineName      string        `json:"vaccineName"`
	DateAdministered caldate.Date  `json:"dateAdministered"`
	NextDueDate      *caldate.Date `json:"nextDueDate,omitempty"`
	NotificationIDs  []string      `json:"notificationIds,omitempty"`
}

// HasBooster reports whether a next-due date is set.
func (v *VaccineRecord) HasBooster() bool {
	return v.NextDueDate != nil && !v.NextDueDate.IsZero()
}

func (v *VaccineRecord) Handles() []string { return v.NotificationIDs }

func (v *VaccineRecord) SetHandles(ids []string) { v.NotificationIDs = ids }
