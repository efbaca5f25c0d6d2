package handler

import (
	"net/http"
	"petagenda/internal/application/dto"
	"petagenda/internal/application/service"
	"petagenda/internal/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ReminderHandler serves the reminder endpoints.
type ReminderHandler struct {
	reminderService service.ReminderService
	log             logger.Logger
}

// NewReminderHandler creates a new ReminderHandler.
func NewReminderHandler(reminderService service.ReminderService, log logger.Logger) *ReminderHandler {
	return &ReminderHandler{reminderService: reminderService, log: log}
}

// List serves GET /reminders and GET /pets/:petId/reminders. Query parameters
// category, q and sort narrow the result.
func (h *ReminderHandler) List(c echo.Context) error {
	var q dto.ReminderQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return badRequest(c)
	}
	if petID := c.Param("petId"); petID != "" {
		q.PetID = petID
	}
	reminders, err := h.reminderService.ListReminders(c.Request().Context(), q)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respond(c, http.StatusOK, "reminders retrieved", dto.ToReminderResponseList(reminders))
}

func (h *ReminderHandler) Get(c echo.Context) error {
	reminder, err := h.reminderService.GetReminder(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respond(c, http.StatusOK, "reminder retrieved", dto.ToReminderResponse(reminder))
}

// Create serves POST /pets/:petId/reminders.
func (h *ReminderHandler) Create(c echo.Context) error {
	var req dto.CreateReminderRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c)
	}
	if petID := c.Param("petId"); petID != "" {
		req.PetID = petID
	}
	reminder, err := h.reminderService.CreateReminder(c.Request().Context(), req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respond(c, http.StatusCreated, "reminder saved", dto.ToReminderResponse(reminder))
}

func (h *ReminderHandler) Update(c echo.Context) error {
	var req dto.UpdateReminderRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c)
	}
	reminder, err := h.reminderService.UpdateReminder(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respond(c, http.StatusOK, "reminder updated", dto.ToReminderResponse(reminder))
}

func (h *ReminderHandler) Delete(c echo.Context) error {
	if err := h.reminderService.DeleteReminder(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return respond(c, http.StatusOK, "reminder deleted", nil)
}
