package service

import (
	"context"
	"petagenda/internal/application/dto"
	"petagenda/internal/domain/entity"
)

// VaccineService defines the interface for the vaccine record lifecycle.
type VaccineService interface {
	// CreateVaccineRecord validates the draft, schedules booster
	// notifications when a future booster date is set, and persists it.
	CreateVaccineRecord(ctx context.Context, req dto.CreateVaccineRecordRequest) (*entity.VaccineRecord, error)
	// UpdateVaccineRecord cancels the record's notifications, applies the
	// patch and schedules a fresh set.
	UpdateVaccineRecord(ctx context.Context, id string, req dto.UpdateVaccineRecordRequest) (*entity.VaccineRecord, error)
	// DeleteVaccineRecord cancels the record's notifications and removes it.
	DeleteVaccineRecord(ctx context.Context, id string) error
	GetVaccineRecord(ctx context.Context, id string) (*entity.VaccineRecord, error)
	// ListVaccineRecords returns the records of petID (all when empty), most
	// recently administered first.
	ListVaccineRecords(ctx context.Context, petID string) ([]*entity.VaccineRecord, error)
	DeleteVaccineRecordsByPet(ctx context.Context, petID string) (int, error)
	RescheduleAll(ctx context.Context) (int, error)
}
