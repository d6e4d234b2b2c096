package feed

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/postwall/internal/modules/feed/view"
	"github.com/nfrund/postwall/internal/session"
	gview "github.com/nfrund/postwall/internal/view"
	"github.com/nfrund/postwall/internal/viewstate"
)

const (
	PagePath    = "/app/feed"
	ContentPath = "/app/feed/posts"
	WallPath    = "/app/wall"
)

const fetchErrorMessage = "Kunde inte hämta inlägg just nu."

// Handler serves the feed page and its loaded content.
type Handler struct {
	loader     *Loader
	formatter  *gview.TimeFormatter
	showErrors bool
}

// NewHandler creates a new feed Handler.
func NewHandler(loader *Loader, formatter *gview.TimeFormatter, showErrors bool) *Handler {
	return &Handler{
		loader:     loader,
		formatter:  formatter,
		showErrors: showErrors,
	}
}

// Get renders the feed in its loading state (GET /app/feed).
func (h *Handler) Get(c echo.Context) error {
	page := gview.Base("Inlägg", gview.GetFlashData(c), session.Get(c).Ready(), view.Shell(ContentPath))
	return c.Render(http.StatusOK, "", page)
}

// Posts loads the feed and renders the result (GET /app/feed/posts). htmx
// requests get the fragment; anything else gets a full page.
func (h *Handler) Posts(c echo.Context) error {
	sess := session.Get(c)
	st := h.loader.Load(c.Request().Context(), sess, viewstate.New())
	if st.Outcome == viewstate.OutcomeCanceled {
		return nil
	}

	content := view.Content(h.viewData(c, st))
	if gview.IsHTMX(c) {
		return c.Render(http.StatusOK, "", content)
	}
	return c.Render(http.StatusOK, "", gview.Base("Inlägg", gview.GetFlashData(c), sess.Ready(), content))
}

func (h *Handler) viewData(c echo.Context, st viewstate.State) view.Data {
	format := h.formatter.For(c.Request().Header.Get("Accept-Language"))

	items := make([]view.PostItem, 0, len(st.Posts))
	for _, p := range st.Posts {
		items = append(items, view.PostItem{ID: p.ID, Text: p.Text, Timestamp: format(p.CreatedAt)})
	}

	data := view.Data{Posts: items, WallURL: WallPath}
	if h.showErrors && st.Failed() {
		data.ErrorMessage = fetchErrorMessage
	}
	return data
}
