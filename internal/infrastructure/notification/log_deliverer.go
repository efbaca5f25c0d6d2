package notification

import (
	"context"
	"fmt"

	"petagenda/internal/pkg/logger"
)

// LogDeliverer writes fired notifications to the log. Used when no push
// channel is configured.
type LogDeliverer struct {
	log logger.Logger
}

func NewLogDeliverer(log logger.Logger) *LogDeliverer {
	return &LogDeliverer{log: log}
}

func (d *LogDeliverer) Deliver(ctx context.Context, msg Message) error {
	d.log.Info(fmt.Sprintf("[%s] %s - %s (%s %s, %d days until)", msg.Channel, msg.Title, msg.Body, msg.Metadata.Kind, msg.Metadata.EntityID, msg.Metadata.DaysUntil))
	return nil
}
