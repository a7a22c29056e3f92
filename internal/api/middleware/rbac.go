package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/schoolevents/eventhub/internal/core/domain"
)

// RBAC enforces role-based access control on the role set by Identity.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(ContextKeyRole).(string)
			if _, ok := allowed[role]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}

// Members admits every signed-in role.
func Members() echo.MiddlewareFunc {
	return RBAC(domain.RoleAdmin, domain.RoleTeacher, domain.RoleStudent)
}

// Staff admits admins and teachers.
func Staff() echo.MiddlewareFunc {
	return RBAC(domain.RoleAdmin, domain.RoleTeacher)
}
