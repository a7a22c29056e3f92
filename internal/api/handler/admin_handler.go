package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/schoolevents/eventhub/internal/core/ports"
)

type AdminHandler struct {
	admin ports.AdminService
}

func NewAdminHandler(admin ports.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// ListUsers handles GET /v1/admin/users.
//
// @Summary      List user profiles
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userListResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.admin.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userListResponse{Users: users, Count: len(users)})
}

// DeleteUser handles DELETE /v1/admin/users/:id.
//
// @Summary      Delete a user with their registrations and reminders
// @Tags         admin
// @Security     BearerAuth
// @Param        id   path  string  true  "User id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /v1/admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	id := c.Param("id")
	if id == identity.Principal.ID {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot delete your own account")
	}
	if err := h.admin.DeleteUser(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Analytics handles GET /v1/admin/analytics.
//
// @Summary      Participants per event
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  participationResponse
// @Router       /v1/admin/analytics [get]
func (h *AdminHandler) Analytics(c echo.Context) error {
	rows, err := h.admin.Participation(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toParticipation(rows))
}
