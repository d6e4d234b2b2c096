package testutils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/nfrund/postwall/internal/domain"
)

// RecordedRequest is one request received by FakeBackend.
type RecordedRequest struct {
	Method        string
	Path          string
	Authorization string
	ContentType   string
	Body          string
}

// FakeBackend is an in-memory posts backend served over httptest.
type FakeBackend struct {
	Server *httptest.Server

	mu       sync.Mutex
	profile  *domain.UserProfile
	posts    []domain.Post
	status   map[string]int
	raw      map[string]string
	requests []RecordedRequest
	nextID   int
}

// Route keys accepted by FailWith and Respond.
const (
	RouteFeed   = "feed"
	RouteWall   = "wall"
	RouteCreate = "create"
)

// NewFakeBackend starts a backend that is closed when the test ends.
func NewFakeBackend(t *testing.T) *FakeBackend {
	t.Helper()

	f := &FakeBackend{
		posts:  []domain.Post{},
		status: map[string]int{},
		raw:    map[string]string{},
		nextID: 1,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /posts", f.handle(RouteFeed, f.feed))
	mux.HandleFunc("GET /users/{id}/with-posts", f.handle(RouteWall, f.wall))
	mux.HandleFunc("POST /users/{id}/posts", f.handle(RouteCreate, f.create))

	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Server.Close)
	return f
}

// URL is the backend base URL.
func (f *FakeBackend) URL() string {
	return f.Server.URL
}

// SetProfile sets the profile returned by the wall endpoint; nil omits it.
func (f *FakeBackend) SetProfile(p *domain.UserProfile) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profile = p
}

// SetPosts replaces the stored posts.
func (f *FakeBackend) SetPosts(posts ...domain.Post) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.posts = append([]domain.Post{}, posts...)
}

// FailWith makes route answer with status. Zero restores normal behavior.
func (f *FakeBackend) FailWith(route string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status[route] = status
}

// Respond makes route answer 200 with body verbatim.
func (f *FakeBackend) Respond(route, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.raw[route] = body
}

// Requests returns a copy of the requests received so far.
func (f *FakeBackend) Requests() []RecordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]RecordedRequest(nil), f.requests...)
}

// Count returns how many requests used method and path.
func (f *FakeBackend) Count(method, path string) int {
	n := 0
	for _, r := range f.Requests() {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

func (f *FakeBackend) handle(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)

		f.mu.Lock()
		f.requests = append(f.requests, RecordedRequest{
			Method:        r.Method,
			Path:          r.URL.Path,
			Authorization: r.Header.Get("Authorization"),
			ContentType:   r.Header.Get("Content-Type"),
			Body:          string(body),
		})
		status := f.status[route]
		raw, hasRaw := f.raw[route]
		f.mu.Unlock()

		if status != 0 {
			http.Error(w, http.StatusText(status), status)
			return
		}
		if hasRaw {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, raw)
			return
		}

		r.Body = io.NopCloser(bytes.NewReader(body))
		next(w, r)
	}
}

func (f *FakeBackend) feed(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"content": f.posts})
}

func (f *FakeBackend) wall(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	body := map[string]any{"content": f.posts}
	if f.profile != nil {
		body["user"] = f.profile
	}
	writeJSON(w, http.StatusOK, body)
}

func (f *FakeBackend) create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	post := domain.Post{
		ID:        fmt.Sprintf("%d", f.nextID),
		Text:      req.Text,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	f.nextID++
	f.posts = append([]domain.Post{post}, f.posts...)
	writeJSON(w, http.StatusCreated, post)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
