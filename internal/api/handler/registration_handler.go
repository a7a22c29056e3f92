package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/schoolevents/eventhub/internal/api/metrics"
	"github.com/schoolevents/eventhub/internal/core/domain"
	"github.com/schoolevents/eventhub/internal/core/ports"
)

type RegistrationHandler struct {
	service ports.RegistrationService
}

func NewRegistrationHandler(service ports.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{service: service}
}

// ListAvailable handles GET /v1/registrations/available.
//
// @Summary      Open events the student has not joined
// @Tags         registrations
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  eventListResponse
// @Router       /v1/registrations/available [get]
func (h *RegistrationHandler) ListAvailable(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	events, err := h.service.ListAvailable(c.Request().Context(), identity.Principal.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEventList(events))
}

// ListRegistered handles GET /v1/registrations.
//
// @Summary      Events the student has joined
// @Tags         registrations
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  eventListResponse
// @Router       /v1/registrations [get]
func (h *RegistrationHandler) ListRegistered(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	events, err := h.service.ListRegistered(c.Request().Context(), identity.Principal.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEventList(events))
}

// Register handles POST /v1/registrations.
//
// @Summary      Register for an event
// @Tags         registrations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      registerRequest  true  "Event to join"
// @Success      201   {object}  domain.Registration
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/registrations [post]
func (h *RegistrationHandler) Register(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	reg, err := h.service.Register(c.Request().Context(), identity.Principal.ID, req.EventID)
	metrics.RegistrationsTotal.WithLabelValues(registrationResult(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, reg)
}

func registrationResult(err error) string {
	switch {
	case err == nil:
		return "created"
	case errors.Is(err, domain.ErrAlreadyRegistered):
		return "duplicate"
	case errors.Is(err, domain.ErrEventClosed):
		return "closed"
	case errors.Is(err, domain.ErrRegistrationBusy):
		return "busy"
	default:
		return "error"
	}
}
