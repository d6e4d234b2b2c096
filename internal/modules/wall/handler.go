package wall

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/postwall/internal/middleware"
	"github.com/nfrund/postwall/internal/modules/wall/view"
	"github.com/nfrund/postwall/internal/session"
	gview "github.com/nfrund/postwall/internal/view"
	"github.com/nfrund/postwall/internal/viewstate"
	g "maragu.dev/gomponents"
)

const (
	PagePath    = "/app/wall"
	ContentPath = "/app/wall/content"
	SubmitPath  = "/app/wall/posts"
	SignInPath  = "/session"
)

const (
	fetchErrorMessage  = "Kunde inte hämta din sida just nu."
	submitErrorMessage = "Kunde inte publicera inlägget. Försök igen."
)

// CreatePostRequest is the form posted by the composer.
type CreatePostRequest struct {
	Text string `form:"text"`
}

// Handler serves the wall page, its content and post creation.
type Handler struct {
	controller *Controller
	formatter  *gview.TimeFormatter
	showErrors bool
}

// NewHandler creates a new wall Handler.
func NewHandler(controller *Controller, formatter *gview.TimeFormatter, showErrors bool) *Handler {
	return &Handler{
		controller: controller,
		formatter:  formatter,
		showErrors: showErrors,
	}
}

// Get renders the wall in its loading state (GET /app/wall).
func (h *Handler) Get(c echo.Context) error {
	page := gview.Base("Min sida", gview.GetFlashData(c), session.Get(c).Ready(), view.Shell(ContentPath))
	return c.Render(http.StatusOK, "", page)
}

// Content fetches the wall and renders it (GET /app/wall/content).
func (h *Handler) Content(c echo.Context) error {
	sess := session.Get(c)
	st := h.controller.Fetch(c.Request().Context(), sess, NewState())
	if st.Outcome == viewstate.OutcomeCanceled {
		return nil
	}
	return h.respond(c, h.content(c, st, ""))
}

// CreatePost submits the composer (POST /app/wall/posts).
func (h *Handler) CreatePost(c echo.Context) error {
	var req CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form").SetInternal(err)
	}

	ctx := c.Request().Context()
	sess := session.Get(c)
	st := NewState()
	st.Draft = req.Text

	st, result := h.controller.Submit(ctx, sess, st)
	middleware.FromContext(ctx).Debug("wall submit", "result", result.String())

	switch result {
	case SubmitNotAuthenticated:
		return gview.Redirect(c, SignInPath)
	case SubmitSkipped:
		if gview.IsHTMX(c) {
			// Nothing to swap; the client keeps its draft as typed.
			return c.NoContent(http.StatusNoContent)
		}
		return c.Redirect(http.StatusSeeOther, PagePath)
	case SubmitCreated:
		if !gview.IsHTMX(c) {
			return c.Redirect(http.StatusSeeOther, PagePath)
		}
		form := view.CreateForm(view.Data{SubmitURL: SubmitPath})
		if !st.Ready() {
			return c.Render(http.StatusOK, "", form)
		}
		return c.Render(http.StatusOK, "", g.Group{form, view.Posts(h.viewData(c, st, ""), true)})
	default:
		var msg string
		if h.showErrors {
			msg = submitErrorMessage
		}
		form := view.Data{SubmitURL: SubmitPath, Draft: st.Draft, ErrorMessage: msg}
		if gview.IsHTMX(c) {
			return c.Render(http.StatusOK, "", view.CreateForm(form))
		}
		return h.respond(c, view.SubmitFailed(form, PagePath))
	}
}

func (h *Handler) respond(c echo.Context, content g.Node) error {
	if gview.IsHTMX(c) {
		return c.Render(http.StatusOK, "", content)
	}
	return c.Render(http.StatusOK, "", gview.Base("Min sida", gview.GetFlashData(c), session.Get(c).Ready(), content))
}

func (h *Handler) content(c echo.Context, st State, submitError string) g.Node {
	var fetchError string
	if h.showErrors && st.Failed() {
		fetchError = fetchErrorMessage
	}
	if !st.Ready() {
		return view.Pending(fetchError)
	}
	data := h.viewData(c, st, submitError)
	if data.ErrorMessage == "" {
		data.ErrorMessage = fetchError
	}
	return view.Content(data)
}

func (h *Handler) viewData(c echo.Context, st State, errorMessage string) view.Data {
	format := h.formatter.For(c.Request().Header.Get("Accept-Language"))

	items := make([]view.PostItem, 0, len(st.Posts))
	for _, p := range st.Posts {
		items = append(items, view.PostItem{ID: p.ID, Text: p.Text, Timestamp: format(p.CreatedAt)})
	}

	data := view.Data{
		Draft:        st.Draft,
		Posts:        items,
		SubmitURL:    SubmitPath,
		ErrorMessage: errorMessage,
	}
	if st.User != nil {
		data.DisplayName = st.User.DisplayName
		data.Bio = st.User.Bio
	}
	return data
}
