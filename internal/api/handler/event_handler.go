package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/schoolevents/eventhub/internal/api/metrics"
	"github.com/schoolevents/eventhub/internal/core/ports"
)

// EventHandler serves the event catalog.
type EventHandler struct {
	events    ports.EventService
	assistant ports.AssistantService
}

func NewEventHandler(events ports.EventService, assistant ports.AssistantService) *EventHandler {
	return &EventHandler{events: events, assistant: assistant}
}

// ListOpen handles GET /v1/events.
//
// @Summary      List open events
// @Tags         events
// @Produce      json
// @Success      200  {object}  eventListResponse
// @Failure      500  {object}  errorResponse
// @Router       /v1/events [get]
func (h *EventHandler) ListOpen(c echo.Context) error {
	events, err := h.events.ListOpen(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEventList(events))
}

// ListAll handles GET /v1/events/all.
//
// @Summary      List every event, open or closed
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  eventListResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/events/all [get]
func (h *EventHandler) ListAll(c echo.Context) error {
	events, err := h.events.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEventList(events))
}

// ListMine handles GET /v1/events/mine.
//
// @Summary      List events created by the caller
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  eventListResponse
// @Router       /v1/events/mine [get]
func (h *EventHandler) ListMine(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	events, err := h.events.ListByCreator(c.Request().Context(), identity.Principal.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEventList(events))
}

// Create handles POST /v1/events.
//
// @Summary      Create an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createEventRequest  true  "Event"
// @Success      201   {object}  eventResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/events [post]
func (h *EventHandler) Create(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	event, err := h.events.Create(c.Request().Context(), ports.CreateEventInput{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Location:    req.Location,
		IsOpen:      req.IsOpen,
		CreatedBy:   identity.Principal.ID,
	})
	if err != nil {
		return err
	}

	metrics.EventsCreatedTotal.WithLabelValues(strconv.FormatBool(event.IsOpen)).Inc()
	return c.JSON(http.StatusCreated, toEventResponse(event))
}

// Delete handles DELETE /v1/events/:id.
//
// @Summary      Delete an event and its registrations
// @Tags         events
// @Security     BearerAuth
// @Param        id   path  string  true  "Event id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /v1/events/{id} [delete]
func (h *EventHandler) Delete(c echo.Context) error {
	if err := h.events.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// DraftDescription handles POST /v1/events/draft-description.
//
// @Summary      Draft an event description with the assistant
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      draftDescriptionRequest  true  "Event fields"
// @Success      200   {object}  draftResponse
// @Failure      422   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /v1/events/draft-description [post]
func (h *EventHandler) DraftDescription(c echo.Context) error {
	var req draftDescriptionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	text, err := h.assistant.DraftEventDescription(c.Request().Context(), req.Title, req.Date, req.Location)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, draftResponse{Text: text})
}
