// Package notification implements the notification port on top of the
// in-process cron scheduler.
package notification

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"petagenda/internal/domain/trigger"
	"petagenda/internal/infrastructure/scheduler"
	appErrors "petagenda/internal/pkg/errors"
	"petagenda/internal/pkg/logger"
)

// ErrAlreadyConfigured is returned by a second Configure call.
var ErrAlreadyConfigured = errors.New("notification display already configured")

// DisplayConfig is the process-wide presentation of delivered notifications.
type DisplayConfig struct {
	ChannelName string
	ShowAlert   bool // false records fired triggers without delivering them
	PlaySound   bool
}

// Message is what a Deliverer receives when a trigger fires.
type Message struct {
	Handle   string
	Channel  string
	Title    string
	Body     string
	Priority trigger.Priority
	Metadata trigger.Metadata
	Sound    bool
	alert    bool
}

// Deliverer sends a fired notification to the user.
type Deliverer interface {
	Deliver(ctx context.Context, msg Message) error
}

// Port schedules triggers as one-shot cron entries. Handles are random UUIDs
// so that handles persisted by an earlier process never alias live entries.
type Port struct {
	sched     *scheduler.Scheduler
	deliverer Deliverer
	enabled   bool
	log       logger.Logger

	mu      sync.Mutex
	display *DisplayConfig
	entries map[string]cron.EntryID
}

// NewPort creates a port. enabled=false makes RequestPermission deny.
func NewPort(sched *scheduler.Scheduler, deliverer Deliverer, enabled bool, log logger.Logger) *Port {
	return &Port{
		sched:     sched,
		deliverer: deliverer,
		enabled:   enabled,
		log:       log,
		entries:   make(map[string]cron.EntryID),
	}
}

// Configure applies the display configuration. It must be called exactly
// once during startup, before anything is scheduled.
func (p *Port) Configure(cfg DisplayConfig) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.display != nil {
		return ErrAlreadyConfigured
	}
	p.display = &cfg
	p.log.Info(fmt.Sprintf("Notification display configured (channel %q)", cfg.ChannelName))
	return nil
}

// RequestPermission reports whether triggers may be scheduled.
func (p *Port) RequestPermission(ctx context.Context) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.enabled {
		p.log.Debug("Notification permission denied: notifications disabled")
		return false
	}
	if p.display == nil {
		p.log.Warn("Notification permission denied: display not configured")
		return false
	}
	return p.deliverer != nil
}

// ScheduleAt registers t and returns its handle.
func (p *Port) ScheduleAt(ctx context.Context, t trigger.Trigger) (string, error) {
	p.mu.Lock()
	display := p.display
	p.mu.Unlock()
	if display == nil {
		return "", fmt.Errorf("%w: display not configured", appErrors.ErrNotificationScheduling)
	}
	if !t.At.After(time.Now()) {
		return "", fmt.Errorf("%w: trigger time %s is not in the future", appErrors.ErrNotificationScheduling, t.At.Format(time.RFC3339))
	}

	handle := uuid.NewString()
	msg := Message{
		Handle:   handle,
		Channel:  display.ChannelName,
		Title:    t.Title,
		Body:     t.Body,
		Priority: t.Priority,
		Metadata: t.Metadata,
		Sound:    display.PlaySound,
		alert:    display.ShowAlert,
	}

	// Hold mu across AddOnce so the job cannot look up its handle before it
	// is recorded.
	p.mu.Lock()
	defer p.mu.Unlock()
	entryID, err := p.sched.AddOnce(t.At, func() { p.fire(msg) })
	if err != nil {
		return "", fmt.Errorf("%w: %v", appErrors.ErrNotificationScheduling, err)
	}
	p.entries[handle] = entryID
	p.log.Debug(fmt.Sprintf("Scheduled notification %s for %s %s at %s", handle, t.Metadata.Kind, t.Metadata.EntityID, t.At.Format(time.RFC3339)))
	return handle, nil
}

// Cancel removes the entry behind handle.
func (p *Port) Cancel(ctx context.Context, handle string) error {
	p.mu.Lock()
	entryID, ok := p.entries[handle]
	delete(p.entries, handle)
	p.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: unknown handle %s", appErrors.ErrNotificationCancellation, handle)
	}
	p.sched.RemoveJob(entryID)
	p.log.Debug(fmt.Sprintf("Cancelled notification %s", handle))
	return nil
}

// Pending returns the number of scheduled, not yet fired handles.
func (p *Port) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.entries)
}

// Stop stops the underlying scheduler.
func (p *Port) Stop() {
	p.sched.Stop()
}

func (p *Port) fire(msg Message) {
	p.mu.Lock()
	entryID, ok := p.entries[msg.Handle]
	delete(p.entries, msg.Handle)
	p.mu.Unlock()
	if !ok {
		// Cancelled while the job was starting.
		return
	}
	p.sched.RemoveJob(entryID)

	if !msg.alert {
		p.log.Info(fmt.Sprintf("Notification %s fired with alerts disabled: %s", msg.Handle, msg.Title))
		return
	}
	if err := p.deliverer.Deliver(context.Background(), msg); err != nil {
		p.log.Error(fmt.Sprintf("Failed to deliver notification %s for %s %s", msg.Handle, msg.Metadata.Kind, msg.Metadata.EntityID), err)
		return
	}
	p.log.Info(fmt.Sprintf("Delivered notification %s for %s %s", msg.Handle, msg.Metadata.Kind, msg.Metadata.EntityID))
}
