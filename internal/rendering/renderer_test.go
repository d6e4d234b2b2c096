package rendering_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/nfrund/postwall/internal/rendering"
	"github.com/nfrund/postwall/internal/view"
	"github.com/stretchr/testify/assert"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

type ctxKey struct{}

func serveComponent(component interface{}) *httptest.ResponseRecorder {
	e := echo.New()
	e.Renderer = rendering.NewUniversalRenderer()
	e.GET("/", func(c echo.Context) error {
		ctx := context.WithValue(c.Request().Context(), ctxKey{}, "from-request")
		c.SetRequest(c.Request().WithContext(ctx))
		return c.Render(http.StatusCreated, "", component)
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	return rec
}

func TestRender_GomponentsFragment(t *testing.T) {
	rec := serveComponent(h.Div(g.Text("ok")))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "<div>ok</div>", rec.Body.String())
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/html")
}

func TestRender_TemplComponentReceivesRequestContext(t *testing.T) {
	component := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, ctx.Value(ctxKey{}).(string))
		return err
	})

	rec := serveComponent(component)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "from-request", rec.Body.String())
}

func TestRender_Document(t *testing.T) {
	rec := serveComponent(view.Base("Min sida", view.FlashData{}, true, h.P(g.Text("inner"))))

	assert.Contains(t, rec.Body.String(), "<title>Min sida - postwall</title>")
	assert.Contains(t, rec.Body.String(), "<p>inner</p>")
}

func TestRender_UnsupportedType(t *testing.T) {
	rec := serveComponent(42)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
