package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petagenda/internal/pkg/logger"
)

func TestOnceAt_Next(t *testing.T) {
	at := time.Date(2024, time.January, 9, 9, 0, 0, 0, time.UTC)
	s := onceAt{at: at}

	assert.Equal(t, at, s.Next(at.Add(-time.Hour)))
	assert.True(t, s.Next(at).IsZero())
	assert.True(t, s.Next(at.Add(time.Second)).IsZero())
}

func TestScheduler_AddOnceFires(t *testing.T) {
	s := NewScheduler(time.UTC, logger.Nop())
	defer s.Stop()

	fired := make(chan struct{}, 1)
	_, err := s.AddOnce(time.Now().Add(1500*time.Millisecond), func() { fired <- struct{}{} })
	require.NoError(t, err)

	select {
	case <-fired:
	case <-time.After(5 * time.Second):
		t.Fatal("job did not fire")
	}
}

func TestScheduler_RemoveJob(t *testing.T) {
	s := NewScheduler(time.UTC, logger.Nop())
	defer s.Stop()

	id, err := s.AddOnce(time.Now().Add(time.Hour), func() {})
	require.NoError(t, err)
	require.Len(t, s.GetEntries(), 1)

	s.RemoveJob(id)

	assert.Empty(t, s.GetEntries())
}

func TestScheduler_AddOnceZeroTime(t *testing.T) {
	s := NewScheduler(time.UTC, logger.Nop())
	defer s.Stop()

	_, err := s.AddOnce(time.Time{}, func() {})

	assert.Error(t, err)
}
