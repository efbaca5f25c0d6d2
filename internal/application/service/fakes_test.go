package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"petagenda/internal/domain/trigger"
	"petagenda/internal/pkg/logger"
)

var errBoom = errors.New("boom")

// memStore is an in-memory CollectionStore. getErr and setErr, when set,
// make the corresponding call fail.
type memStore struct {
	mu     sync.Mutex
	data   map[string]string
	getErr error
	setErr error
	sets   int
}

func newMemStore() *memStore {
	return &memStore{data: map[string]string{}}
}

func (s *memStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return "", false, s.getErr
	}
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *memStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.setErr != nil {
		return s.setErr
	}
	s.sets++
	s.data[key] = value
	return nil
}

// fakePort records every call. Handles are "h1", "h2", ... in call order.
type fakePort struct {
	mu         sync.Mutex
	denied     bool
	failAt     map[int]bool // 1-based ScheduleAt call numbers that fail
	failCancel bool

	permissionCalls int
	scheduled       []trigger.Trigger
	handles         []string
	cancelled       []string
	calls           int
}

func (p *fakePort) RequestPermission(context.Context) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.permissionCalls++
	return !p.denied
}

func (p *fakePort) ScheduleAt(_ context.Context, t trigger.Trigger) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if p.failAt[p.calls] {
		return "", errBoom
	}
	h := fmt.Sprintf("h%d", p.calls)
	p.scheduled = append(p.scheduled, t)
	p.handles = append(p.handles, h)
	return h, nil
}

func (p *fakePort) Cancel(_ context.Context, handle string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cancelled = append(p.cancelled, handle)
	if p.failCancel {
		return errBoom
	}
	return nil
}

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

func sequentialIDs(prefix string) IDGenerator {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s%d", prefix, n)
	}
}

var newYear = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

func newTestReminderService(t *testing.T, store *memStore, port *fakePort, now time.Time) *reminderService {
	t.Helper()
	s := NewReminderService(store, port, fixedClock(now), logger.Nop()).(*reminderService)
	s.newID = sequentialIDs("r")
	return s
}

func newTestVaccineService(t *testing.T, store *memStore, port *fakePort, now time.Time) *vaccineService {
	t.Helper()
	s := NewVaccineService(store, port, fixedClock(now), logger.Nop()).(*vaccineService)
	s.newID = sequentialIDs("v")
	return s
}
