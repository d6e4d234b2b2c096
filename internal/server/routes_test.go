package server_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/postwall/internal/config"
	"github.com/nfrund/postwall/internal/domain"
	"github.com/nfrund/postwall/internal/server"
	"github.com/nfrund/postwall/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*server.Server, *testutils.FakeBackend) {
	t.Helper()

	fb := testutils.NewFakeBackend(t)
	s, err := server.New(&config.Config{
		APIBaseURL:         fb.URL(),
		ServerAddr:         ":0",
		SessionSecret:      testutils.SessionSecret,
		DisplayLocation:    time.UTC,
		RateLimitPerMinute: 100,
	})
	require.NoError(t, err)
	require.NoError(t, s.RegisterRoutes(t.Context()))
	t.Cleanup(func() { _ = s.Close() })
	return s, fb
}

func signIn(t *testing.T, e *echo.Echo) []*http.Cookie {
	t.Helper()

	form := url.Values{"token": {"abc"}, "user_id": {"1"}}
	req := httptest.NewRequest(http.MethodPost, "/session", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := testutils.Do(e, req)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/app/feed", rec.Header().Get(echo.HeaderLocation))
	return rec.Result().Cookies()
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)

	rec := testutils.Do(s.E, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	s, fb := newTestServer(t)

	for _, path := range []string{"/app/feed", "/app/feed/posts", "/app/wall", "/app/wall/content"} {
		rec := testutils.Do(s.E, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusSeeOther, rec.Code, path)
		assert.Equal(t, "/session", rec.Header().Get(echo.HeaderLocation), path)
	}
	assert.Empty(t, fb.Requests())
}

func TestFeedAndWallEndToEnd(t *testing.T) {
	s, fb := newTestServer(t)
	fb.SetProfile(&domain.UserProfile{DisplayName: "Ana", Bio: "Hi"})
	cookies := signIn(t, s.E)

	rec := testutils.Do(s.E, testutils.HTMX(httptest.NewRequest(http.MethodGet, "/app/feed/posts", nil)), cookies...)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Inga inlägg hittades")

	form := url.Values{"text": {"Hello"}}
	req := httptest.NewRequest(http.MethodPost, "/app/wall/posts", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec = testutils.Do(s.E, req, cookies...)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	rec = testutils.Do(s.E, testutils.HTMX(httptest.NewRequest(http.MethodGet, "/app/wall/content", nil)), cookies...)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Ana")
	assert.Contains(t, body, "Hello")

	assert.Eventually(t, func() bool {
		rec := testutils.Do(s.E, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		return strings.Contains(rec.Body.String(), "postwall_posts_created_total 1")
	}, 2*time.Second, 20*time.Millisecond)

	metrics := testutils.Do(s.E, httptest.NewRequest(http.MethodGet, "/metrics", nil)).Body.String()
	assert.Contains(t, metrics, `postwall_backend_requests_total{operation="create_post",outcome="ok"} 1`)
	assert.Contains(t, metrics, "http_requests_total")
}

func TestStaticAssets(t *testing.T) {
	s, _ := newTestServer(t)

	rec := testutils.Do(s.E, httptest.NewRequest(http.MethodGet, "/static/css/app.css", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), ".post-card")
}

func TestLogout(t *testing.T) {
	s, _ := newTestServer(t)
	cookies := signIn(t, s.E)

	rec := testutils.Do(s.E, httptest.NewRequest(http.MethodPost, "/session/logout", nil), cookies...)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	rec = testutils.Do(s.E, httptest.NewRequest(http.MethodGet, "/app/feed", nil), rec.Result().Cookies()...)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
}
