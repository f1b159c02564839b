package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rollcall/attendance-system/internal/core/ports"
)

// SessionCookie is the cookie carrying the signed bearer token.
const SessionCookie = "session"

// UserContextKey is where Auth stores the resolved caller.
const UserContextKey = "user"

// Auth resolves the caller from the session cookie and injects the user
// into the request context. The user is re-loaded from the store on every
// request, so a deactivated account loses access immediately regardless of
// token validity.
func Auth(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
			}

			user, err := auth.ResolveToken(c.Request().Context(), cookie.Value)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
			}

			c.Set(UserContextKey, user)
			return next(c)
		}
	}
}
