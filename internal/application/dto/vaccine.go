package dto

import "petagenda/internal/domain/entity"

// CreateVaccineRecordRequest is the DTO for registering a vaccine.
type CreateVaccineRecordRequest struct {
	PetID            string `json:"petId"`
	VaccineName      string `json:"vaccineName"`
	DateAdministered string `json:"dateAdministered"`
	NextDueDate      string `json:"nextDueDate,omitempty"` // Optional booster date
}

// UpdateVaccineRecordRequest is the DTO for editing a vaccine record. Nil
// fields keep their value; an empty NextDueDate clears the booster.
type UpdateVaccineRecordRequest struct {
	VaccineName      *string `json:"vaccineName,omitempty"`
	DateAdministered *string `json:"dateAdministered,omitempty"`
	NextDueDate      *string `json:"nextDueDate,omitempty"`
}

type VaccineRecordResponse struct {
	ID               string   `json:"id"`
	PetID            string   `json:"petId"`
	VaccineName      string   `json:"vaccineName"`
	DateAdministered string   `json:"dateAdministered"`
	NextDueDate      string   `json:"nextDueDate,omitempty"`
	NotificationIDs  []string `json:"notificationIds"`
}

func ToVaccineRecordResponse(v *entity.VaccineRecord) VaccineRecordResponse {
	resp := VaccineRecordResponse{
		ID:               v.ID,
		PetID:            v.PetID,
		VaccineName:      v.VaccineName,
		DateAdministered: v.DateAdministered.String(),
		NotificationIDs:  v.NotificationIDs,
	}
	if v.HasBooster() {
		resp.NextDueDate = v.NextDueDate.String()
	}
	if resp.NotificationIDs == nil {
		resp.NotificationIDs = []string{}
	}
	return resp
}

func ToVaccineRecordResponseList(records []*entity.VaccineRecord) []VaccineRecordResponse {
	list := make([]VaccineRecordResponse, len(records))
	for i, v := range records {
		list[i] = ToVaccineRecordResponse(v)
	}
	return list
}
