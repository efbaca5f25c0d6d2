package service

import (
	"context"
	"fmt"
	"petagenda/internal/application/dto"
	"petagenda/internal/domain/constant"
	"petagenda/internal/domain/entity"
	"petagenda/internal/domain/repository"
	"petagenda/internal/domain/trigger"
	"petagenda/internal/pkg/caldate"
	appErrors "petagenda/internal/pkg/errors"
	"petagenda/internal/pkg/logger"
	"sort"
	"strings"
	"sync"
)

type vaccineService struct {
	store    repository.CollectionStore
	notifier NotificationPort
	now      Clock
	newID    IDGenerator
	log      logger.Logger
	mu       sync.Mutex
}

// NewVaccineService creates a new instance of VaccineService implementation.
func NewVaccineService(
	store repository.CollectionStore,
	notifier NotificationPort,
	now Clock,
	log logger.Logger,
) VaccineService {
	return &vaccineService{
		store:    store,
		notifier: notifier,
		now:      now,
		newID:    newTimeOrderedID,
		log:      log,
	}
}

func (s *vaccineService) CreateVaccineRecord(ctx context.Context, req dto.CreateVaccineRecordRequest) (*entity.VaccineRecord, error) {
	record := &entity.VaccineRecord{
		PetID:       strings.TrimSpace(req.PetID),
		VaccineName: strings.TrimSpace(req.VaccineName),
	}
	if record.VaccineName == "" {
		return nil, fmt.Errorf("%w: vaccine name is required", appErrors.ErrValidation)
	}
	var err error
	if record.DateAdministered, err = parseRequiredDate("dateAdministered", req.DateAdministered); err != nil {
		return nil, err
	}
	if record.NextDueDate, err = parseOptionalDate("nextDueDate", req.NextDueDate); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := loadCollection[entity.VaccineRecord](ctx, s.store, constant.KeyVaccinations)
	if err != nil {
		s.log.Error("Failed to load vaccinations for create", err)
		return nil, err
	}

	record.ID = s.newID()
	record.SetHandles(s.schedule(ctx, record, loadPetNames(ctx, s.store)))

	records = append(records, *record)
	if err := saveCollection(ctx, s.store, constant.KeyVaccinations, records); err != nil {
		s.log.Error(fmt.Sprintf("Failed to save vaccine record %s", record.ID), err)
		cancelHandles(ctx, s.notifier, record.Handles(), s.log)
		return nil, err
	}

	s.log.Info(fmt.Sprintf("Created vaccine record %s (%s) for pet %s with %d notification(s)", record.ID, record.VaccineName, record.PetID, len(record.Handles())))
	return record, nil
}

func (s *vaccineService) UpdateVaccineRecord(ctx context.Context, id string, req dto.UpdateVaccineRecordRequest) (*entity.VaccineRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := loadCollection[entity.VaccineRecord](ctx, s.store, constant.KeyVaccinations)
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to load vaccinations for update of %s", id), err)
		return nil, err
	}
	idx := indexOfVaccine(records, id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: vaccine record %s", appErrors.ErrNotFound, id)
	}

	updated := records[idx]
	if err := applyVaccinePatch(&updated, req); err != nil {
		return nil, err
	}

	log := s.log.With("vaccine_id", id)
	cancelHandles(ctx, s.notifier, updated.Handles(), log)
	updated.SetHandles(s.schedule(ctx, &updated, loadPetNames(ctx, s.store)))

	records[idx] = updated
	if err := saveCollection(ctx, s.store, constant.KeyVaccinations, records); err != nil {
		log.Error("Failed to save updated vaccine record", err)
		cancelHandles(ctx, s.notifier, updated.Handles(), log)
		return nil, err
	}

	log.Info(fmt.Sprintf("Updated vaccine record with %d notification(s)", len(updated.Handles())))
	return &updated, nil
}

func (s *vaccineService) DeleteVaccineRecord(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := loadCollection[entity.VaccineRecord](ctx, s.store, constant.KeyVaccinations)
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to load vaccinations for delete of %s", id), err)
		return err
	}
	idx := indexOfVaccine(records, id)
	if idx < 0 {
		return fmt.Errorf("%w: vaccine record %s", appErrors.ErrNotFound, id)
	}

	cancelHandles(ctx, s.notifier, records[idx].Handles(), s.log.With("vaccine_id", id))
	records = append(records[:idx], records[idx+1:]...)

	if err := saveCollection(ctx, s.store, constant.KeyVaccinations, records); err != nil {
		s.log.Error(fmt.Sprintf("Failed to save vaccinations after deleting %s", id), err)
		return err
	}
	s.log.Info(fmt.Sprintf("Deleted vaccine record %s", id))
	return nil
}

func (s *vaccineService) GetVaccineRecord(ctx context.Context, id string) (*entity.VaccineRecord, error) {
	records, err := loadCollection[entity.VaccineRecord](ctx, s.store, constant.KeyVaccinations)
	if err != nil {
		return nil, err
	}
	idx := indexOfVaccine(records, id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: vaccine record %s", appErrors.ErrNotFound, id)
	}
	return &records[idx], nil
}

func (s *vaccineService) ListVaccineRecords(ctx context.Context, petID string) ([]*entity.VaccineRecord, error) {
	records, err := loadCollection[entity.VaccineRecord](ctx, s.store, constant.KeyVaccinations)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.VaccineRecord, 0, len(records))
	for i := range records {
		if petID == "" || records[i].PetID == petID {
			out = append(out, &records[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DateAdministered.After(out[j].DateAdministered)
	})
	return out, nil
}

func (s *vaccineService) DeleteVaccineRecordsByPet(ctx context.Context, petID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := loadCollection[entity.VaccineRecord](ctx, s.store, constant.KeyVaccinations)
	if err != nil {
		return 0, err
	}

	kept := records[:0]
	removed := 0
	for _, v := range records {
		if v.PetID != petID {
			kept = append(kept, v)
			continue
		}
		cancelHandles(ctx, s.notifier, v.Handles(), s.log.With("vaccine_id", v.ID))
		removed++
	}
	if removed == 0 {
		return 0, nil
	}

	if err := saveCollection(ctx, s.store, constant.KeyVaccinations, kept); err != nil {
		s.log.Error(fmt.Sprintf("Failed to save vaccinations after deleting those of pet %s", petID), err)
		return 0, err
	}
	s.log.Info(fmt.Sprintf("Deleted %d vaccine record(s) of pet %s", removed, petID))
	return removed, nil
}

func (s *vaccineService) RescheduleAll(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := loadCollection[entity.VaccineRecord](ctx, s.store, constant.KeyVaccinations)
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, nil
	}

	names := loadPetNames(ctx, s.store)
	scheduled := 0
	for i := range records {
		v := &records[i]
		cancelHandles(ctx, s.notifier, v.Handles(), s.log.With("vaccine_id", v.ID))
		v.SetHandles(s.schedule(ctx, v, names))
		if len(v.Handles()) > 0 {
			scheduled++
		}
	}

	if err := saveCollection(ctx, s.store, constant.KeyVaccinations, records); err != nil {
		s.log.Error("Failed to save rescheduled vaccinations", err)
		return 0, err
	}
	return scheduled, nil
}

// schedule requests booster triggers; records without a booster date get
// none and the port is never called.
func (s *vaccineService) schedule(ctx context.Context, v *entity.VaccineRecord, names petNames) []string {
	if !v.HasBooster() {
		return nil
	}
	log := s.log.With("vaccine_id", v.ID)
	triggers, err := trigger.ComputeVaccineTriggers(trigger.VaccineSubject{
		EntityID:    v.ID,
		PetName:     names.of(v.PetID),
		VaccineName: v.VaccineName,
		NextDueDate: *v.NextDueDate,
	}, s.now())
	if err != nil {
		log.Error("Failed to compute vaccine triggers", err)
		return nil
	}
	return scheduleTriggers(ctx, s.notifier, triggers, log)
}

func applyVaccinePatch(v *entity.VaccineRecord, req dto.UpdateVaccineRecordRequest) error {
	if req.VaccineName != nil {
		v.VaccineName = strings.TrimSpace(*req.VaccineName)
		if v.VaccineName == "" {
			return fmt.Errorf("%w: vaccine name is required", appErrors.ErrValidation)
		}
	}
	if req.DateAdministered != nil {
		d, err := parseRequiredDate("dateAdministered", *req.DateAdministered)
		if err != nil {
			return err
		}
		v.DateAdministered = d
	}
	if req.NextDueDate != nil {
		d, err := parseOptionalDate("nextDueDate", *req.NextDueDate)
		if err != nil {
			return err
		}
		v.NextDueDate = d
	}
	return nil
}

func indexOfVaccine(records []entity.VaccineRecord, id string) int {
	for i := range records {
		if records[i].ID == id {
			return i
		}
	}
	return -1
}

// parseOptionalDate returns nil for an empty string.
func parseOptionalDate(field, s string) (*caldate.Date, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	d, err := parseRequiredDate(field, s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
