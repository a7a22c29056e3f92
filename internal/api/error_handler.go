package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/schoolevents/eventhub/internal/core/domain"
)

// errorResponse is the body of every error reply: {"error": "<message>"}.
type errorResponse struct {
	Error string `json:"error"`
}

// errorMapping binds a domain sentinel to its status. An empty message means
// the wrapped error text is safe to show.
type errorMapping struct {
	target  error
	status  int
	message string
}

var errorMappings = []errorMapping{
	{domain.ErrValidation, http.StatusBadRequest, ""},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
	{domain.ErrForbidden, http.StatusForbidden, "access forbidden"},
	{domain.ErrUserNotFound, http.StatusNotFound, "user not found"},
	{domain.ErrEventNotFound, http.StatusNotFound, "event not found"},
	{domain.ErrReminderNotFound, http.StatusNotFound, "reminder not found"},
	{domain.ErrUserExists, http.StatusConflict, "user already exists"},
	{domain.ErrAlreadyRegistered, http.StatusConflict, "already registered for this event"},
	{domain.ErrEventClosed, http.StatusConflict, "event is not open for registration"},
	{domain.ErrRegistrationBusy, http.StatusConflict, "registration already in progress"},
	{domain.ErrAssistantUnavailable, http.StatusBadGateway, "the event assistant could not produce a draft"},
}

// NewHTTPErrorHandler renders echo and domain errors as JSON. Unmapped errors
// are logged and answered with a generic 500.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err)
		if code >= http.StatusInternalServerError {
			evt := log.Error()
			if code != http.StatusInternalServerError {
				evt = log.Warn()
			}
			evt.Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
				Int("status", code).
				Msg("request failed")
		}

		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			if m.message == "" {
				return m.status, err.Error()
			}
			return m.status, m.message
		}
	}
	return http.StatusInternalServerError, "internal server error"
}
