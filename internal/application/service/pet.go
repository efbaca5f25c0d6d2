package service

import (
	"context"
	"petagenda/internal/application/dto"
	"petagenda/internal/domain/entity"
)

// PetService defines the interface for pet management.
type PetService interface {
	CreatePet(ctx context.Context, req dto.PetRequest) (*entity.Pet, error)
	GetPet(ctx context.Context, id string) (*entity.Pet, error)
	ListPets(ctx context.Context) ([]*entity.Pet, error)
	UpdatePet(ctx context.Context, id string, req dto.PetRequest) (*entity.Pet, error)
	// DeletePet removes the pet together with its reminders and vaccine
	// records, cancelling their notifications.
	DeletePet(ctx context.Context, id string) error
}
