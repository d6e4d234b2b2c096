package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/postwall/internal/domain"
	"github.com/nfrund/postwall/internal/session"
	"github.com/nfrund/postwall/internal/view"
	"github.com/nfrund/postwall/web/src/templates/pages"
)

// SessionHandler stores and clears the credentials issued by the external
// authentication provider. It does not verify them; the backend does.
type SessionHandler struct{}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler() *SessionHandler {
	return &SessionHandler{}
}

// Get renders the sign-in form (GET /session).
func (h *SessionHandler) Get(c echo.Context) error {
	current := session.Get(c)
	flashes := view.GetFlashData(c)

	page := view.Base("Logga in", flashes, current.Ready(), pages.SignIn(pages.SignInData{UserID: current.UserID}))
	return c.Render(http.StatusOK, "", page)
}

// Post stores the submitted token and user id (POST /session).
func (h *SessionHandler) Post(c echo.Context) error {
	var req SignInRequest
	if err := c.Bind(&req); err != nil {
		view.SetFlashError(c, "Ogiltig begäran.")
		return c.Redirect(http.StatusSeeOther, "/session")
	}
	req.Token = strings.TrimSpace(req.Token)
	req.UserID = strings.TrimSpace(req.UserID)

	if err := c.Validate(&req); err != nil {
		slog.Debug("Rejected sign-in form", "error", err)
		view.SetFlashError(c, "Token och användar-id krävs.")
		return c.Redirect(http.StatusSeeOther, "/session")
	}

	if err := session.Save(c, domain.Session{Token: req.Token, UserID: req.UserID}); err != nil {
		slog.Error("Failed to save session", "error", err)
		view.SetFlashError(c, "Kunde inte spara sessionen.")
		return c.Redirect(http.StatusSeeOther, "/session")
	}

	return c.Redirect(http.StatusSeeOther, "/app/feed")
}

// Logout clears the stored credentials (POST /session/logout).
func (h *SessionHandler) Logout(c echo.Context) error {
	if err := session.Clear(c); err != nil {
		slog.Error("Failed to clear session", "error", err)
	}
	view.SetFlashSuccess(c, "Du har loggats ut.")
	return c.Redirect(http.StatusSeeOther, "/session")
}
