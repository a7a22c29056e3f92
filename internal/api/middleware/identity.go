package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/schoolevents/eventhub/internal/core/domain"
	"github.com/schoolevents/eventhub/internal/core/ports"
)

const (
	ContextKeyIdentity = "identity"
	ContextKeyRole     = "role"
)

// Identity resolves the caller's role from the session left by Auth or
// OptionalAuth. It must run after one of them.
func Identity(resolver ports.RoleResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session, _ := c.Get(ContextKeySession).(*domain.Session)
			identity := resolver.Resolve(c.Request().Context(), session)

			c.Set(ContextKeyIdentity, identity)
			c.Set(ContextKeyRole, identity.Role)
			return next(c)
		}
	}
}
