package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/schoolevents/eventhub/internal/api/middleware"
	"github.com/schoolevents/eventhub/internal/core/domain"
)

// ctxSession returns the session left by the auth middleware, or nil for guests.
func ctxSession(c echo.Context) *domain.Session {
	session, _ := c.Get(middleware.ContextKeySession).(*domain.Session)
	return session
}

// ctxIdentity extracts the identity resolved by the Identity middleware and
// fails fast when the caller has no principal.
func ctxIdentity(c echo.Context) (domain.Identity, error) {
	identity, _ := c.Get(middleware.ContextKeyIdentity).(domain.Identity)
	if identity.Principal == nil || identity.Principal.ID == "" {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return identity, nil
}
