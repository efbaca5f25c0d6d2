package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"petagenda/internal/application/dto"
	"petagenda/internal/application/service"
	"petagenda/internal/domain/entity"
	"petagenda/internal/infrastructure/line"
	"petagenda/internal/pkg/caldate"
	"petagenda/internal/pkg/logger"
	"sort"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/line/line-bot-sdk-go/v7/linebot"
)

const (
	commandList     = "list"
	commandVaccines = "vaccines"
	listLimit       = 10
)

// LineHandler answers the LINE webhook so the notification recipient can
// query upcoming reminders and boosters from the chat.
type LineHandler struct {
	lineClient      *line.Client
	reminderService service.ReminderService
	vaccineService  service.VaccineService
	now             service.Clock
	log             logger.Logger
}

// NewLineHandler creates a new LineHandler.
func NewLineHandler(
	lineClient *line.Client,
	reminderService service.ReminderService,
	vaccineService service.VaccineService,
	now service.Clock,
	log logger.Logger,
) *LineHandler {
	return &LineHandler{
		lineClient:      lineClient,
		reminderService: reminderService,
		vaccineService:  vaccineService,
		now:             now,
		log:             log,
	}
}

// HandleWebhook is the main entry point for webhook requests.
func (h *LineHandler) HandleWebhook(c echo.Context) error {
	ctx := c.Request().Context()
	events, err := h.lineClient.ParseRequest(c.Request())
	if err != nil {
		if errors.Is(err, linebot.ErrInvalidSignature) {
			h.log.Warn("Invalid LINE signature received")
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid signature"})
		}
		h.log.Error("Failed to parse LINE webhook request", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "error parsing request"})
	}

	for _, event := range events {
		h.log.Debug(fmt.Sprintf("Processing event type: %s", event.Type))
		switch event.Type {
		case linebot.EventTypeFollow:
			h.handleFollowEvent(ctx, event)
		case linebot.EventTypeMessage:
			h.handleMessageEvent(ctx, event)
		default:
			h.log.Debug(fmt.Sprintf("Unhandled event type: %s", event.Type))
		}
	}
	return respond(c, http.StatusOK, "ok", nil)
}

// handleFollowEvent tells the new follower their user ID, which is what
// LINE_RECIPIENT_ID must be set to.
func (h *LineHandler) handleFollowEvent(ctx context.Context, event *linebot.Event) {
	userID := event.Source.UserID
	h.log.Info(fmt.Sprintf("User %s followed the bot.", userID))

	welcome := linebot.NewTextMessage("Welcome to Pet Agenda! Reminders and vaccine boosters will be pushed to this chat.")
	setup := linebot.NewTextMessage(fmt.Sprintf("Your LINE user ID is %s. Set LINE_RECIPIENT_ID to it to receive notifications.", userID))
	if err := h.lineClient.SendMessages(ctx, event.ReplyToken, welcome, setup, h.helpMessage()); err != nil {
		h.log.Error(fmt.Sprintf("Failed to send follow reply to user %s", userID), err)
	}
}

func (h *LineHandler) handleMessageEvent(ctx context.Context, event *linebot.Event) {
	message, ok := event.Message.(*linebot.TextMessage)
	if !ok {
		h.log.Debug(fmt.Sprintf("Received non-text message from %s", event.Source.UserID))
		return
	}

	var reply linebot.SendingMessage
	switch strings.ToLower(strings.TrimSpace(message.Text)) {
	case commandList:
		reply = linebot.NewTextMessage(h.upcomingReminders(ctx))
	case commandVaccines:
		reply = linebot.NewTextMessage(h.upcomingBoosters(ctx))
	default:
		reply = h.helpMessage()
	}
	if err := h.lineClient.SendMessages(ctx, event.ReplyToken, reply); err != nil {
		h.log.Error(fmt.Sprintf("Failed to reply to user %s", event.Source.UserID), err)
	}
}

func (h *LineHandler) helpMessage() linebot.SendingMessage {
	quickReply := linebot.NewQuickReplyItems(
		linebot.NewQuickReplyButton("", linebot.NewMessageAction(commandList, commandList)),
		linebot.NewQuickReplyButton("", linebot.NewMessageAction(commandVaccines, commandVaccines)),
	)
	return linebot.NewTextMessage(`Send "list" to see upcoming reminders or "vaccines" to see upcoming boosters.`).
		WithQuickReplies(quickReply)
}

func (h *LineHandler) upcomingReminders(ctx context.Context) string {
	reminders, err := h.reminderService.ListReminders(ctx, dto.ReminderQuery{Sort: dto.SortDateAsc})
	if err != nil {
		h.log.Error("Failed to list reminders for LINE reply", err)
		return "Could not load reminders."
	}
	today := caldate.Today(h.now())

	var b strings.Builder
	n := 0
	for _, r := range reminders {
		if r.Date.Before(today) || n == listLimit {
			continue
		}
		fmt.Fprintf(&b, "%s\n%s: %s\n\n", r.Date, r.Category, r.Description)
		n++
	}
	if n == 0 {
		return "No upcoming reminders."
	}
	return strings.TrimSuffix(b.String(), "\n\n")
}

func (h *LineHandler) upcomingBoosters(ctx context.Context) string {
	records, err := h.vaccineService.ListVaccineRecords(ctx, "")
	if err != nil {
		h.log.Error("Failed to list vaccine records for LINE reply", err)
		return "Could not load vaccine records."
	}
	today := caldate.Today(h.now())

	upcoming := make([]*entity.VaccineRecord, 0, len(records))
	for _, v := range records {
		if v.HasBooster() && !v.NextDueDate.Before(today) {
			upcoming = append(upcoming, v)
		}
	}
	if len(upcoming) == 0 {
		return "No upcoming boosters."
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].NextDueDate.Before(*upcoming[j].NextDueDate)
	})
	if len(upcoming) > listLimit {
		upcoming = upcoming[:listLimit]
	}

	var b strings.Builder
	for _, v := range upcoming {
		fmt.Fprintf(&b, "%s\n%s booster\n\n", v.NextDueDate, v.VaccineName)
	}
	return strings.TrimSuffix(b.String(), "\n\n")
}
