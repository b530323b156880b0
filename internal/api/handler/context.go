package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/owaspcebu/ctf-platform/internal/api/middleware"
)

// identity is the caller as established by the Auth middleware.
type identity struct {
	UserID string
	Role   string
	Name   string
}

// ctxIdentity extracts the identity injected by the Auth middleware. A missing
// user id means the route was mounted without Auth or the token was unusable.
func ctxIdentity(c echo.Context) (identity, error) {
	id := identity{}
	id.UserID, _ = c.Get(middleware.KeyUserID).(string)
	id.Role, _ = c.Get(middleware.KeyRole).(string)
	id.Name, _ = c.Get(middleware.KeyName).(string)

	if id.UserID == "" {
		return identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, nil
}
