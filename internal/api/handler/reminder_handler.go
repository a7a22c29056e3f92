package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/schoolevents/eventhub/internal/core/ports"
)

type ReminderHandler struct {
	reminders ports.ReminderService
	assistant ports.AssistantService
}

func NewReminderHandler(reminders ports.ReminderService, assistant ports.AssistantService) *ReminderHandler {
	return &ReminderHandler{reminders: reminders, assistant: assistant}
}

// List handles GET /v1/reminders.
//
// @Summary      Upcoming reminders and the 24h badge count
// @Tags         reminders
// @Produce      json
// @Security     BearerAuth
// @Param        lookahead  query     string  false  "Badge window as a Go duration (default 24h)"
// @Success      200        {object}  reminderListResponse
// @Router       /v1/reminders [get]
func (h *ReminderHandler) List(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var lookahead time.Duration
	if raw := c.QueryParam("lookahead"); raw != "" {
		lookahead, err = time.ParseDuration(raw)
		if err != nil || lookahead <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "lookahead must be a positive duration")
		}
	}

	upcoming, err := h.reminders.ListUpcoming(c.Request().Context(), identity.Principal.ID, lookahead)
	if err != nil {
		return err
	}

	loc := h.reminders.Location()
	out := make([]reminderResponse, 0, len(upcoming.Items))
	for _, r := range upcoming.Items {
		out = append(out, toReminderResponse(r, loc))
	}
	return c.JSON(http.StatusOK, reminderListResponse{
		Reminders:  out,
		BadgeCount: upcoming.BadgeCount,
		Timezone:   loc.String(),
	})
}

// Create handles POST /v1/reminders.
//
// @Summary      Create a reminder
// @Tags         reminders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      reminderRequest  true  "remind_at is wall-clock time in the display timezone (YYYY-MM-DDTHH:MM)"
// @Success      201   {object}  reminderResponse
// @Failure      400   {object}  errorResponse
// @Router       /v1/reminders [post]
func (h *ReminderHandler) Create(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	req, err := bindReminder(c)
	if err != nil {
		return err
	}

	r, err := h.reminders.Create(c.Request().Context(), identity.Principal.ID, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toReminderResponse(r, h.reminders.Location()))
}

// Update handles PUT /v1/reminders/:id.
//
// @Summary      Edit a reminder
// @Tags         reminders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Reminder id"
// @Param        body  body      reminderRequest  true  "Replacement fields"
// @Success      200   {object}  reminderResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/reminders/{id} [put]
func (h *ReminderHandler) Update(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	req, err := bindReminder(c)
	if err != nil {
		return err
	}

	r, err := h.reminders.Update(c.Request().Context(), identity.Principal.ID, c.Param("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toReminderResponse(r, h.reminders.Location()))
}

// Delete handles DELETE /v1/reminders/:id.
//
// @Summary      Delete a reminder
// @Tags         reminders
// @Security     BearerAuth
// @Param        id   path  string  true  "Reminder id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /v1/reminders/{id} [delete]
func (h *ReminderHandler) Delete(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	if err := h.reminders.Delete(c.Request().Context(), identity.Principal.ID, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// DraftNote handles POST /v1/reminders/draft-note.
//
// @Summary      Draft a reminder note with the assistant
// @Tags         reminders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      draftNoteRequest  true  "Reminder title and time"
// @Success      200   {object}  draftResponse
// @Failure      502   {object}  errorResponse
// @Router       /v1/reminders/draft-note [post]
func (h *ReminderHandler) DraftNote(c echo.Context) error {
	var req draftNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	text, err := h.assistant.DraftReminderNote(c.Request().Context(), req.Title, req.RemindAt)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, draftResponse{Text: text})
}

func bindReminder(c echo.Context) (ports.ReminderInput, error) {
	var req reminderRequest
	if err := c.Bind(&req); err != nil {
		return ports.ReminderInput{}, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return ports.ReminderInput{}, echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return ports.ReminderInput{Title: req.Title, Note: req.Note, RemindAtLocal: req.RemindAt}, nil
}
