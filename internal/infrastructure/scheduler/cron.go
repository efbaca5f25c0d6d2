package scheduler

import (
	"fmt"
	"petagenda/internal/pkg/logger"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler manages one-shot cron jobs.
type Scheduler struct {
	cron *cron.Cron
	log  logger.Logger
	mu   sync.Mutex // To protect access to job management
}

// onceAt is a cron.Schedule that fires a single time.
type onceAt struct {
	at time.Time
}

// Next returns the zero time once at has passed, which tells cron never to
// run the entry again.
func (s onceAt) Next(t time.Time) time.Time {
	if t.Before(s.at) {
		return s.at
	}
	return time.Time{}
}

// NewScheduler creates and starts a cron scheduler whose clock runs in loc.
func NewScheduler(loc *time.Location, log logger.Logger) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	c := cron.New(cron.WithSeconds(), cron.WithLocation(loc))
	c.Start()
	log.Info("Cron scheduler started.")
	return &Scheduler{
		cron: c,
		log:  log,
	}
}

// AddOnce registers cmd to run once at the given instant.
// Returns the EntryID of the added job and an error if any.
func (s *Scheduler) AddOnce(at time.Time, cmd func()) (cron.EntryID, error) {
	if at.IsZero() {
		return 0, fmt.Errorf("cannot schedule job at zero time")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.cron.Schedule(onceAt{at: at}, cron.FuncJob(cmd))
	s.log.Debug(fmt.Sprintf("Added one-shot job with ID %d at %s", id, at.Format(time.RFC3339)))
	return id, nil
}

// RemoveJob removes a job from the scheduler by its EntryID.
func (s *Scheduler) RemoveJob(id cron.EntryID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cron.Remove(id)
	s.log.Debug(fmt.Sprintf("Removed cron job with ID %d", id))
}

// Stop stops the cron scheduler.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.cron == nil {
		s.mu.Unlock()
		return
	}
	ctx := s.cron.Stop()
	s.mu.Unlock()

	// Running jobs may call RemoveJob, so wait without holding mu.
	<-ctx.Done()
	s.log.Info("Cron scheduler stopped.")
}

// GetEntries returns the list of scheduled entries. Useful for debugging.
func (s *Scheduler) GetEntries() []cron.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cron.Entries()
}
