package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/schoolevents/eventhub/internal/api/middleware"
	"github.com/schoolevents/eventhub/internal/core/domain"
	"github.com/schoolevents/eventhub/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// SignUp creates a new account.
//
// @Summary      Sign up
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signUpRequest  true  "Account details"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /auth/signup [post]
func (h *AuthHandler) SignUp(c echo.Context) error {
	var req signUpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	user, err := h.authService.SignUp(c.Request().Context(), req.Email, req.Password, req.Role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, user)
}

// SignIn authenticates and returns a session token.
//
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signInRequest  true  "Credentials"
// @Success      200   {object}  sessionResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /auth/signin [post]
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req signInRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	session, err := h.authService.SignIn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		User:      session.Principal,
	})
}

// SignOut revokes the caller's token.
//
// @Summary      Sign out
// @Tags         auth
// @Security     BearerAuth
// @Success      204
// @Failure      401   {object}  errorResponse
// @Router       /auth/signout [post]
func (h *AuthHandler) SignOut(c echo.Context) error {
	if err := h.authService.SignOut(c.Request().Context(), ctxSession(c)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Me reports who the caller is. Guests get role "guest".
//
// @Summary      Current identity
// @Tags         auth
// @Produce      json
// @Success      200   {object}  meResponse
// @Router       /me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	identity, _ := c.Get(middleware.ContextKeyIdentity).(domain.Identity)
	if identity.Role == "" {
		identity.Role = domain.RoleGuest
	}
	return c.JSON(http.StatusOK, meResponse{
		Authenticated: identity.Principal != nil,
		Role:          identity.Role,
		User:          identity.Principal,
	})
}
