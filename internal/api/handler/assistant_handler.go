package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/schoolevents/eventhub/internal/core/ports"
)

type AssistantHandler struct {
	assistant ports.AssistantService
}

func NewAssistantHandler(assistant ports.AssistantService) *AssistantHandler {
	return &AssistantHandler{assistant: assistant}
}

// Chat handles POST /v1/assistant/chat. It always answers 200; assistant
// failures come back as a fixed reply text.
//
// @Summary      Ask the event assistant
// @Tags         assistant
// @Accept       json
// @Produce      json
// @Param        body  body      chatRequest  true  "Message and prior turns"
// @Success      200   {object}  chatResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/assistant/chat [post]
func (h *AssistantHandler) Chat(c echo.Context) error {
	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	history := make([]ports.ChatTurn, 0, len(req.History))
	for _, turn := range req.History {
		history = append(history, ports.ChatTurn{Role: turn.Role, Content: turn.Content})
	}

	reply := h.assistant.Answer(c.Request().Context(), history, req.Message)
	return c.JSON(http.StatusOK, chatResponse{Reply: reply})
}
