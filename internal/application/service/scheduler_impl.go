package service

import (
	"context"
	"fmt"
	"petagenda/internal/pkg/logger"
)

// stopper is satisfied by the notification port.
type stopper interface {
	Stop()
}

type schedulerService struct {
	reminders ReminderService
	vaccines  VaccineService
	port      stopper
	log       logger.Logger
}

// NewSchedulerService creates a new instance of SchedulerService implementation.
func NewSchedulerService(
	reminders ReminderService,
	vaccines VaccineService,
	port stopper,
	log logger.Logger,
) SchedulerService {
	return &schedulerService{
		reminders: reminders,
		vaccines:  vaccines,
		port:      port,
		log:       log,
	}
}

// InitializeSchedules reschedules everything stored. Handles persisted by an
// earlier process are released first; their cancellation failures are only
// logged since the entries died with that process.
func (s *schedulerService) InitializeSchedules(ctx context.Context) error {
	s.log.Info("Initializing schedules from storage...")

	reminders, err := s.reminders.RescheduleAll(ctx)
	if err != nil {
		s.log.Error("Failed to reschedule reminders", err)
		return err
	}
	vaccines, err := s.vaccines.RescheduleAll(ctx)
	if err != nil {
		s.log.Error("Failed to reschedule vaccine records", err)
		return err
	}

	s.log.Info(fmt.Sprintf("Schedule initialization complete. Reminders scheduled: %d, vaccine records scheduled: %d", reminders, vaccines))
	return nil
}

// Stop stops the underlying scheduler.
func (s *schedulerService) Stop() {
	if s.port != nil {
		s.port.Stop()
	}
}
