package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/postwall/internal/session"
)

// HomeHandler handles requests for the site root.
type HomeHandler struct{}

// NewHomeHandler creates a new HomeHandler.
func NewHomeHandler() *HomeHandler {
	return &HomeHandler{}
}

// HomeGet sends signed-in users to the feed and everyone else to sign-in.
func (h *HomeHandler) HomeGet(c echo.Context) error {
	if session.Get(c).Ready() {
		return c.Redirect(http.StatusSeeOther, "/app/feed")
	}
	return c.Redirect(http.StatusSeeOther, "/session")
}

// Health reports liveness.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}
