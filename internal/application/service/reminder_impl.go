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

type reminderService struct {
	store    repository.CollectionStore
	notifier NotificationPort
	now      Clock
	newID    IDGenerator
	log      logger.Logger
	mu       sync.Mutex // Serialises read-modify-write of the reminders collection
}

// NewReminderService creates a new instance of ReminderService implementation.
func NewReminderService(
	store repository.CollectionStore,
	notifier NotificationPort,
	now Clock,
	log logger.Logger,
) ReminderService {
	return &reminderService{
		store:    store,
		notifier: notifier,
		now:      now,
		newID:    newTimeOrderedID,
		log:      log,
	}
}

// CreateReminder validates the draft, schedules its notifications and
// persists it.
func (s *reminderService) CreateReminder(ctx context.Context, req dto.CreateReminderRequest) (*entity.Reminder, error) {
	category, err := parseCategory(req.Category)
	if err != nil {
		return nil, err
	}
	reminder := &entity.Reminder{
		PetID:       strings.TrimSpace(req.PetID),
		Category:    category,
		Description: strings.TrimSpace(req.Description),
	}
	if reminder.Description == "" {
		return nil, fmt.Errorf("%w: description is required", appErrors.ErrValidation)
	}
	if reminder.Date, err = parseRequiredDate("date", req.Date); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	reminders, err := loadCollection[entity.Reminder](ctx, s.store, constant.KeyReminders)
	if err != nil {
		s.log.Error("Failed to load reminders for create", err)
		return nil, err
	}

	reminder.ID = s.newID()
	reminder.SetHandles(s.schedule(ctx, reminder, loadPetNames(ctx, s.store)))

	reminders = append(reminders, *reminder)
	if err := saveCollection(ctx, s.store, constant.KeyReminders, reminders); err != nil {
		s.log.Error(fmt.Sprintf("Failed to save reminder %s", reminder.ID), err)
		// The record was not saved, so nothing may keep its triggers alive.
		cancelHandles(ctx, s.notifier, reminder.Handles(), s.log)
		return nil, err
	}

	s.log.Info(fmt.Sprintf("Created reminder %s for pet %s on %s with %d notification(s)", reminder.ID, reminder.PetID, reminder.Date, len(reminder.Handles())))
	return reminder, nil
}

// UpdateReminder replaces the reminder's notifications: old handles are
// always cancelled before new ones are requested.
func (s *reminderService) UpdateReminder(ctx context.Context, id string, req dto.UpdateReminderRequest) (*entity.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reminders, err := loadCollection[entity.Reminder](ctx, s.store, constant.KeyReminders)
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to load reminders for update of %s", id), err)
		return nil, err
	}
	idx := indexOfReminder(reminders, id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: reminder %s", appErrors.ErrNotFound, id)
	}

	updated := reminders[idx]
	if err := applyReminderPatch(&updated, req); err != nil {
		return nil, err
	}

	log := s.log.With("reminder_id", id)
	cancelHandles(ctx, s.notifier, updated.Handles(), log)
	updated.SetHandles(s.schedule(ctx, &updated, loadPetNames(ctx, s.store)))

	reminders[idx] = updated
	if err := saveCollection(ctx, s.store, constant.KeyReminders, reminders); err != nil {
		log.Error("Failed to save updated reminder", err)
		cancelHandles(ctx, s.notifier, updated.Handles(), log)
		return nil, err
	}

	log.Info(fmt.Sprintf("Updated reminder, now dated %s with %d notification(s)", updated.Date, len(updated.Handles())))
	return &updated, nil
}

// DeleteReminder cancels the reminder's notifications and removes it.
func (s *reminderService) DeleteReminder(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	reminders, err := loadCollection[entity.Reminder](ctx, s.store, constant.KeyReminders)
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to load reminders for delete of %s", id), err)
		return err
	}
	idx := indexOfReminder(reminders, id)
	if idx < 0 {
		return fmt.Errorf("%w: reminder %s", appErrors.ErrNotFound, id)
	}

	cancelHandles(ctx, s.notifier, reminders[idx].Handles(), s.log.With("reminder_id", id))
	reminders = append(reminders[:idx], reminders[idx+1:]...)

	if err := saveCollection(ctx, s.store, constant.KeyReminders, reminders); err != nil {
		s.log.Error(fmt.Sprintf("Failed to save reminders after deleting %s", id), err)
		return err
	}
	s.log.Info(fmt.Sprintf("Deleted reminder %s", id))
	return nil
}

// GetReminder retrieves a reminder by its ID.
func (s *reminderService) GetReminder(ctx context.Context, id string) (*entity.Reminder, error) {
	reminders, err := loadCollection[entity.Reminder](ctx, s.store, constant.KeyReminders)
	if err != nil {
		return nil, err
	}
	idx := indexOfReminder(reminders, id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: reminder %s", appErrors.ErrNotFound, id)
	}
	return &reminders[idx], nil
}

// ListReminders filters by pet and category, searches descriptions and sorts
// by date (ascending unless q.Sort is "-date").
func (s *reminderService) ListReminders(ctx context.Context, q dto.ReminderQuery) ([]*entity.Reminder, error) {
	reminders, err := loadCollection[entity.Reminder](ctx, s.store, constant.KeyReminders)
	if err != nil {
		return nil, err
	}

	var category constant.Category
	if q.Category != "" {
		c, ok := constant.ParseCategory(q.Category)
		if !ok {
			return nil, fmt.Errorf("%w: unknown category %q", appErrors.ErrValidation, q.Category)
		}
		category = c
	}
	search := strings.ToLower(strings.TrimSpace(q.Search))

	out := make([]*entity.Reminder, 0, len(reminders))
	for i := range reminders {
		r := &reminders[i]
		if q.PetID != "" && r.PetID != q.PetID {
			continue
		}
		if category != "" && r.Category != category {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(r.Description), search) {
			continue
		}
		out = append(out, r)
	}

	desc := q.Sort == dto.SortDateDesc
	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].Date.Before(out[j].Date)
	})
	return out, nil
}

// DeleteRemindersByPet removes every reminder of petID, cancelling their
// notifications.
func (s *reminderService) DeleteRemindersByPet(ctx context.Context, petID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reminders, err := loadCollection[entity.Reminder](ctx, s.store, constant.KeyReminders)
	if err != nil {
		return 0, err
	}

	kept := reminders[:0]
	removed := 0
	for _, r := range reminders {
		if r.PetID != petID {
			kept = append(kept, r)
			continue
		}
		cancelHandles(ctx, s.notifier, r.Handles(), s.log.With("reminder_id", r.ID))
		removed++
	}
	if removed == 0 {
		return 0, nil
	}

	if err := saveCollection(ctx, s.store, constant.KeyReminders, kept); err != nil {
		s.log.Error(fmt.Sprintf("Failed to save reminders after deleting those of pet %s", petID), err)
		return 0, err
	}
	s.log.Info(fmt.Sprintf("Deleted %d reminder(s) of pet %s", removed, petID))
	return removed, nil
}

// RescheduleAll recomputes every reminder's notifications against the
// current instant and replaces the stored handles.
func (s *reminderService) RescheduleAll(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reminders, err := loadCollection[entity.Reminder](ctx, s.store, constant.KeyReminders)
	if err != nil {
		return 0, err
	}
	if len(reminders) == 0 {
		return 0, nil
	}

	names := loadPetNames(ctx, s.store)
	scheduled := 0
	for i := range reminders {
		r := &reminders[i]
		cancelHandles(ctx, s.notifier, r.Handles(), s.log.With("reminder_id", r.ID))
		r.SetHandles(s.schedule(ctx, r, names))
		if len(r.Handles()) > 0 {
			scheduled++
		}
	}

	if err := saveCollection(ctx, s.store, constant.KeyReminders, reminders); err != nil {
		s.log.Error("Failed to save rescheduled reminders", err)
		return 0, err
	}
	return scheduled, nil
}

// schedule computes and requests the reminder's triggers, returning the
// granted handles.
func (s *reminderService) schedule(ctx context.Context, r *entity.Reminder, names petNames) []string {
	log := s.log.With("reminder_id", r.ID)
	triggers, err := trigger.ComputeReminderTriggers(trigger.ReminderSubject{
		EntityID:    r.ID,
		PetName:     names.of(r.PetID),
		Category:    r.Category,
		Description: r.Description,
		Date:        r.Date,
	}, s.now())
	if err != nil {
		log.Error("Failed to compute reminder triggers", err)
		return nil
	}
	return scheduleTriggers(ctx, s.notifier, triggers, log)
}

func applyReminderPatch(r *entity.Reminder, req dto.UpdateReminderRequest) error {
	if req.Category != nil {
		c, err := parseCategory(*req.Category)
		if err != nil {
			return err
		}
		r.Category = c
	}
	if req.Description != nil {
		r.Description = strings.TrimSpace(*req.Description)
		if r.Description == "" {
			return fmt.Errorf("%w: description is required", appErrors.ErrValidation)
		}
	}
	if req.Date != nil {
		d, err := parseRequiredDate("date", *req.Date)
		if err != nil {
			return err
		}
		r.Date = d
	}
	return nil
}

func indexOfReminder(reminders []entity.Reminder, id string) int {
	for i := range reminders {
		if reminders[i].ID == id {
			return i
		}
	}
	return -1
}

// parseCategory defaults an empty category to Health.
func parseCategory(s string) (constant.Category, error) {
	if strings.TrimSpace(s) == "" {
		return constant.CategoryHealth, nil
	}
	c, ok := constant.ParseCategory(s)
	if !ok {
		return "", fmt.Errorf("%w: unknown category %q", appErrors.ErrValidation, s)
	}
	return c, nil
}

func parseRequiredDate(field, s string) (caldate.Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return caldate.Date{}, fmt.Errorf("%w: %s is required", appErrors.ErrValidation, field)
	}
	d, err := caldate.Parse(s)
	if err != nil {
		return caldate.Date{}, fmt.Errorf("%w: %s: %v", appErrors.ErrValidation, field, err)
	}
	return d, nil
}
