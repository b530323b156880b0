package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/owaspcebu/ctf-platform/internal/core/domain"
)

// RBAC enforces role-based access control. It must run after Auth. A denied
// request returns domain.ErrForbidden so the central error handler renders it
// like every other error.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(KeyRole).(string)
			if _, ok := allowed[role]; !ok {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
