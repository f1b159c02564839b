package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rollcall/attendance-system/internal/api/middleware"
	"github.com/rollcall/attendance-system/internal/core/domain"
)

// caller extracts the user injected by the Auth middleware. Its presence
// proves the middleware ran; a handler reached without it is a wiring bug
// and fails closed with 401.
func caller(c echo.Context) (*domain.User, error) {
	user, ok := c.Get(middleware.UserContextKey).(*domain.User)
	if !ok || user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}
	return user, nil
}
