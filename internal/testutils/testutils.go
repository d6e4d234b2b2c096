package testutils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/nfrund/postwall/internal/domain"
	"github.com/nfrund/postwall/internal/handlers"
	"github.com/nfrund/postwall/internal/rendering"
	appsession "github.com/nfrund/postwall/internal/session"
	"github.com/stretchr/testify/require"
)

// SessionSecret signs cookies in tests.
const SessionSecret = "a-very-secret-key-for-testing-!!"

const signInPath = "/__test/sign-in"

// NewEcho returns an Echo instance wired like the server: session
// middleware, the universal renderer and the request validator. It also
// exposes a hidden route used by SignIn.
func NewEcho(t *testing.T) *echo.Echo {
	t.Helper()

	e := echo.New()
	e.Renderer = rendering.NewUniversalRenderer()
	e.Validator = handlers.NewValidator()
	e.Use(session.Middleware(sessions.NewCookieStore([]byte(SessionSecret))))

	e.GET(signInPath, func(c echo.Context) error {
		s := domain.Session{Token: c.QueryParam("token"), UserID: c.QueryParam("user_id")}
		if err := appsession.Save(c, s); err != nil {
			return err
		}
		return c.NoContent(http.StatusNoContent)
	})
	return e
}

// SignIn stores s in a session and returns the resulting cookies.
func SignIn(t *testing.T, e *echo.Echo, s domain.Session) []*http.Cookie {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, signInPath+"?token="+s.Token+"&user_id="+s.UserID, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code, "test sign-in failed")
	return rec.Result().Cookies()
}

// Do serves req with the given cookies and returns the recorder.
func Do(e *echo.Echo, req *http.Request, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// HTMX marks req as issued by htmx.
func HTMX(req *http.Request) *http.Request {
	req.Header.Set("HX-Request", "true")
	return req
}
