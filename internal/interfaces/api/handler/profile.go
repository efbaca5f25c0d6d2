package handler

import (
	"net/http"
	"petagenda/internal/application/dto"
	"petagenda/internal/application/service"
	"petagenda/internal/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ProfileHandler serves /profile, /friends and /statistics.
type ProfileHandler struct {
	profileService service.ProfileService
	statsService   service.StatisticsService
	log            logger.Logger
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService service.ProfileService, statsService service.StatisticsService, log logger.Logger) *ProfileHandler {
	return &ProfileHandler{profileService: profileService, statsService: statsService, log: log}
}

func (h *ProfileHandler) GetProfile(c echo.Context) error {
	profile, err := h.profileService.GetProfile(c.Request().Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respond(c, http.StatusOK, "profile retrieved", profile)
}

func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	var req dto.ProfileRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c)
	}
	profile, err := h.profileService.UpdateProfile(c.Request().Context(), req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respond(c, http.StatusOK, "profile updated", profile)
}

func (h *ProfileHandler) ListFriends(c echo.Context) error {
	friends, err := h.profileService.ListFriends(c.Request().Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respond(c, http.StatusOK, "friends retrieved", friends)
}

func (h *ProfileHandler) AddFriend(c echo.Context) error {
	var req dto.FriendRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c)
	}
	friend, err := h.profileService.AddFriend(c.Request().Context(), req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respond(c, http.StatusCreated, "friend added", friend)
}

func (h *ProfileHandler) Statistics(c echo.Context) error {
	stats, err := h.statsService.GetStatistics(c.Request().Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respond(c, http.StatusOK, "statistics computed", stats)
}
