package line

import (
	"context"
	"fmt"
	"petagenda/internal/infrastructure/notification"
	"petagenda/internal/pkg/logger"
	"strings"

	"github.com/line/line-bot-sdk-go/v7/linebot"
)

// Client wraps the linebot.Client and pushes fired notifications to a single
// recipient.
type Client struct {
	*linebot.Client
	recipientID string
	log         logger.Logger
}

// NewClient creates a LINE Bot client from channel credentials.
func NewClient(channelSecret, channelToken, recipientID string, log logger.Logger) (*Client, error) {
	if channelSecret == "" || channelToken == "" || recipientID == "" {
		return nil, fmt.Errorf("LINE channel secret, access token and recipient ID are required")
	}

	bot, err := linebot.New(channelSecret, channelToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create LINE Bot client: %w", err)
	}
	log.Info("Successfully created LINE Bot client.")
	return &Client{
		Client:      bot,
		recipientID: recipientID,
		log:         log,
	}, nil
}

// SendMessages replies to a webhook event using its reply token.
func (c *Client) SendMessages(ctx context.Context, replyToken string, messages ...linebot.SendingMessage) error {
	if _, err := c.ReplyMessage(replyToken, messages...).WithContext(ctx).Do(); err != nil {
		return err
	}
	c.log.Debug("Successfully sent reply message.")
	return nil
}

// PushMessages sends one or more messages using the PushMessage API.
func (c *Client) PushMessages(ctx context.Context, to string, messages ...linebot.SendingMessage) error {
	_, err := c.PushMessage(to, messages...).WithContext(ctx).Do()
	if err != nil {
		return err // Return the error for the caller to handle
	}
	c.log.Debug("Successfully sent push message.")
	return nil
}

// Deliver implements notification.Deliverer.
func (c *Client) Deliver(ctx context.Context, msg notification.Message) error {
	return c.PushMessages(ctx, c.recipientID, linebot.NewTextMessage(FormatText(msg)))
}

// FormatText renders a notification as a LINE text message.
func FormatText(msg notification.Message) string {
	var b strings.Builder
	if msg.Channel != "" {
		b.WriteString("[" + msg.Channel + "] ")
	}
	b.WriteString(msg.Title)
	if msg.Body != "" {
		b.WriteString("\n")
		b.WriteString(msg.Body)
	}
	return b.String()
}
