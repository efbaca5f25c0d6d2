package service

import (
	"context"
	"fmt"
	"petagenda/internal/application/dto"
	"petagenda/internal/domain/constant"
	"petagenda/internal/domain/entity"
	"petagenda/internal/domain/repository"
	"petagenda/internal/pkg/caldate"
	appErrors "petagenda/internal/pkg/errors"
	"petagenda/internal/pkg/logger"
	"strings"
	"sync"
)

type petService struct {
	store     repository.CollectionStore
	reminders ReminderService
	vaccines  VaccineService
	newID     IDGenerator
	log       logger.Logger
	mu        sync.Mutex
}

// NewPetService creates a new instance of PetService implementation.
func NewPetService(
	store repository.CollectionStore,
	reminders ReminderService,
	vaccines VaccineService,
	log logger.Logger,
) PetService {
	return &petService{
		store:     store,
		reminders: reminders,
		vaccines:  vaccines,
		newID:     newTimeOrderedID,
		log:       log,
	}
}

func (s *petService) CreatePet(ctx context.Context, req dto.PetRequest) (*entity.Pet, error) {
	pet, err := petFromRequest(req)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	pets, err := loadCollection[entity.Pet](ctx, s.store, constant.KeyPets)
	if err != nil {
		s.log.Error("Failed to load pets for create", err)
		return nil, err
	}
	pet.ID = s.newID()
	pets = append(pets, *pet)
	if err := saveCollection(ctx, s.store, constant.KeyPets, pets); err != nil {
		s.log.Error(fmt.Sprintf("Failed to save pet %s", pet.ID), err)
		return nil, err
	}
	s.log.Info(fmt.Sprintf("Created pet %s (%s)", pet.ID, pet.Name))
	return pet, nil
}

func (s *petService) GetPet(ctx context.Context, id string) (*entity.Pet, error) {
	pets, err := loadCollection[entity.Pet](ctx, s.store, constant.KeyPets)
	if err != nil {
		return nil, err
	}
	idx := indexOfPet(pets, id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: pet %s", appErrors.ErrNotFound, id)
	}
	return &pets[idx], nil
}

func (s *petService) ListPets(ctx context.Context) ([]*entity.Pet, error) {
	pets, err := loadCollection[entity.Pet](ctx, s.store, constant.KeyPets)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Pet, len(pets))
	for i := range pets {
		out[i] = &pets[i]
	}
	return out, nil
}

// UpdatePet replaces every field of the pet except its ID. Notifications
// already scheduled keep the previous pet name in their payload.
func (s *petService) UpdatePet(ctx context.Context, id string, req dto.PetRequest) (*entity.Pet, error) {
	updated, err := petFromRequest(req)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	pets, err := loadCollection[entity.Pet](ctx, s.store, constant.KeyPets)
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to load pets for update of %s", id), err)
		return nil, err
	}
	idx := indexOfPet(pets, id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: pet %s", appErrors.ErrNotFound, id)
	}
	updated.ID = id
	pets[idx] = *updated
	if err := saveCollection(ctx, s.store, constant.KeyPets, pets); err != nil {
		s.log.Error(fmt.Sprintf("Failed to save pet %s", id), err)
		return nil, err
	}
	s.log.Info(fmt.Sprintf("Updated pet %s", id))
	return updated, nil
}

func (s *petService) DeletePet(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pets, err := loadCollection[entity.Pet](ctx, s.store, constant.KeyPets)
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to load pets for delete of %s", id), err)
		return err
	}
	idx := indexOfPet(pets, id)
	if idx < 0 {
		return fmt.Errorf("%w: pet %s", appErrors.ErrNotFound, id)
	}

	// Dependents go first so a failure leaves the pet in place and the
	// delete can be retried.
	reminders, err := s.reminders.DeleteRemindersByPet(ctx, id)
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to delete reminders of pet %s", id), err)
		return err
	}
	vaccines, err := s.vaccines.DeleteVaccineRecordsByPet(ctx, id)
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to delete vaccine records of pet %s", id), err)
		return err
	}

	pets = append(pets[:idx], pets[idx+1:]...)
	if err := saveCollection(ctx, s.store, constant.KeyPets, pets); err != nil {
		s.log.Error(fmt.Sprintf("Failed to save pets after deleting %s", id), err)
		return err
	}
	s.log.Info(fmt.Sprintf("Deleted pet %s with %d reminder(s) and %d vaccine record(s)", id, reminders, vaccines))
	return nil
}

func petFromRequest(req dto.PetRequest) (*entity.Pet, error) {
	pet := &entity.Pet{
		Name:     strings.TrimSpace(req.Name),
		Species:  strings.TrimSpace(req.Species),
		Breed:    strings.TrimSpace(req.Breed),
		DOB:      strings.TrimSpace(req.DOB),
		PhotoURI: strings.TrimSpace(req.PhotoURI),
	}
	if pet.Name == "" {
		return nil, fmt.Errorf("%w: name is required", appErrors.ErrValidation)
	}
	if pet.DOB != "" {
		if _, err := caldate.Parse(pet.DOB); err != nil {
			return nil, fmt.Errorf("%w: dob: %v", appErrors.ErrValidation, err)
		}
	}
	return pet, nil
}

func indexOfPet(pets []entity.Pet, id string) int {
	for i := range pets {
		if pets[i].ID == id {
			return i
		}
	}
	return -1
}
