package handler

import (
	"errors"
	"net/http"
	appErrors "petagenda/internal/pkg/errors"
	"petagenda/internal/pkg/logger"

	"github.com/labstack/echo/v4"
)

// Response is the body of every successful request.
type Response struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

func respond(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, Response{Message: message, Data: data})
}

// respondError maps service errors to HTTP statuses. Unexpected errors are
// logged and hidden from the client.
func respondError(c echo.Context, log logger.Logger, err error) error {
	switch {
	case errors.Is(err, appErrors.ErrValidation):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	case errors.Is(err, appErrors.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, appErrors.ErrStorage):
		log.Error("Storage failure while handling request", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not access stored data"})
	default:
		log.Error("Unexpected failure while handling request", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: appErrors.ErrInternalServer.Error()})
	}
}

func badRequest(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "malformed request body"})
}

// HealthCheck reports that the server is up.
func HealthCheck(c echo.Context) error {
	return respond(c, http.StatusOK, "ok", nil)
}
