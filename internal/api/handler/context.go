package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cliplink/affiliate-system/internal/core/domain"
)

// ctxUser extracts the user record injected by the Auth middleware and
// fast-fails before any service call: presence proves the middleware ran.
func ctxUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get("user").(*domain.User)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return user, nil
}
