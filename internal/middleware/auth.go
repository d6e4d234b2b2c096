package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/nfrund/postwall/internal/session"
	"github.com/nfrund/postwall/internal/view"
)

// RequireSession protects routes that need provider-issued credentials.
// Requests without a complete session are sent to the sign-in form. The
// decoded session stays cached for session.Get in downstream handlers.
func RequireSession(signInURL string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := session.Get(c)
			if !sess.Ready() {
				FromContext(c.Request().Context()).Debug("redirecting request without session", "path", c.Path())
				return view.Redirect(c, signInURL)
			}
			return next(c)
		}
	}
}
