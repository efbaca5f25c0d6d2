package notification

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petagenda/internal/domain/constant"
	"petagenda/internal/domain/trigger"
	"petagenda/internal/infrastructure/scheduler"
	appErrors "petagenda/internal/pkg/errors"
	"petagenda/internal/pkg/logger"
)

type chanDeliverer struct {
	got chan Message
}

func (d *chanDeliverer) Deliver(_ context.Context, msg Message) error {
	d.got <- msg
	return nil
}

func newTestPort(t *testing.T, enabled bool) (*Port, *chanDeliverer) {
	t.Helper()
	d := &chanDeliverer{got: make(chan Message, 4)}
	p := NewPort(scheduler.NewScheduler(time.UTC, logger.Nop()), d, enabled, logger.Nop())
	t.Cleanup(p.Stop)
	return p, d
}

func sampleTrigger(at time.Time) trigger.Trigger {
	return trigger.Trigger{
		At:       at,
		Title:    "⏰ Today: Rex",
		Body:     "Health: Checkup",
		Priority: trigger.PriorityMax,
		Metadata: trigger.Metadata{EntityID: "r1", Kind: constant.KindReminder},
	}
}

func TestPort_ConfigureOnce(t *testing.T) {
	p, _ := newTestPort(t, true)

	require.NoError(t, p.Configure(DisplayConfig{ChannelName: "Pet Agenda", ShowAlert: true}))
	assert.ErrorIs(t, p.Configure(DisplayConfig{}), ErrAlreadyConfigured)
}

func TestPort_RequestPermission(t *testing.T) {
	p, _ := newTestPort(t, true)
	assert.False(t, p.RequestPermission(context.Background()), "unconfigured port must deny")

	require.NoError(t, p.Configure(DisplayConfig{ShowAlert: true}))
	assert.True(t, p.RequestPermission(context.Background()))

	disabled, _ := newTestPort(t, false)
	require.NoError(t, disabled.Configure(DisplayConfig{ShowAlert: true}))
	assert.False(t, disabled.RequestPermission(context.Background()))
}

func TestPort_ScheduleBeforeConfigure(t *testing.T) {
	p, _ := newTestPort(t, true)

	_, err := p.ScheduleAt(context.Background(), sampleTrigger(time.Now().Add(time.Hour)))

	assert.ErrorIs(t, err, appErrors.ErrNotificationScheduling)
}

func TestPort_SchedulePastTrigger(t *testing.T) {
	p, _ := newTestPort(t, true)
	require.NoError(t, p.Configure(DisplayConfig{ShowAlert: true}))

	_, err := p.ScheduleAt(context.Background(), sampleTrigger(time.Now().Add(-time.Minute)))

	assert.ErrorIs(t, err, appErrors.ErrNotificationScheduling)
}

func TestPort_ScheduleAndCancel(t *testing.T) {
	p, _ := newTestPort(t, true)
	require.NoError(t, p.Configure(DisplayConfig{ShowAlert: true}))
	ctx := context.Background()

	h1, err := p.ScheduleAt(ctx, sampleTrigger(time.Now().Add(time.Hour)))
	require.NoError(t, err)
	h2, err := p.ScheduleAt(ctx, sampleTrigger(time.Now().Add(2*time.Hour)))
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
	assert.Equal(t, 2, p.Pending())

	require.NoError(t, p.Cancel(ctx, h1))
	assert.Equal(t, 1, p.Pending())
	assert.ErrorIs(t, p.Cancel(ctx, h1), appErrors.ErrNotificationCancellation)
}

func TestPort_FiresAndForgetsHandle(t *testing.T) {
	p, d := newTestPort(t, true)
	require.NoError(t, p.Configure(DisplayConfig{ChannelName: "Pet Agenda", ShowAlert: true}))

	h, err := p.ScheduleAt(context.Background(), sampleTrigger(time.Now().Add(1500*time.Millisecond)))
	require.NoError(t, err)

	select {
	case msg := <-d.got:
		assert.Equal(t, h, msg.Handle)
		assert.Equal(t, "Pet Agenda", msg.Channel)
		assert.Equal(t, "r1", msg.Metadata.EntityID)
	case <-time.After(5 * time.Second):
		t.Fatal("notification was not delivered")
	}
	assert.Eventually(t, func() bool { return p.Pending() == 0 }, time.Second, 10*time.Millisecond)
}
