package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nfrund/postwall/internal/domain"
)

// Operation names used in errors, logs and metrics.
const (
	OpListPosts        = "list_posts"
	OpGetUserWithPosts = "get_user_with_posts"
	OpCreatePost       = "create_post"
)

// Client is a minimal client for the posts REST backend. Every call is
// authenticated with a bearer token and attempted exactly once.
type Client struct {
	baseURL    string
	httpClient *http.Client
	metrics    *Metrics
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithMetrics records request counts and latencies in m.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient creates a client for the backend rooted at baseURL. No request
// timeout is configured; callers bound requests with their context.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// PostPage is the decoded body of GET /posts.
type PostPage struct {
	Posts []domain.Post

	// ContentMissing is set when the body had no usable content array.
	ContentMissing bool
}

// UserWithPosts is the decoded body of GET /users/{id}/with-posts.
type UserWithPosts struct {
	// User is nil when the backend omitted the profile.
	User  *domain.UserProfile
	Posts []domain.Post
}

type envelope struct {
	User    json.RawMessage `json:"user"`
	Content json.RawMessage `json:"content"`
}

type createPostRequest struct {
	Text string `json:"text"`
}

// ListPosts fetches the global post collection.
func (c *Client) ListPosts(ctx context.Context, token string) (*PostPage, error) {
	var env envelope
	if err := c.do(ctx, OpListPosts, http.MethodGet, "/posts", token, nil, &env); err != nil {
		return nil, err
	}

	posts, ok, err := decodeContent(env.Content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", OpListPosts, err)
	}
	return &PostPage{Posts: posts, ContentMissing: !ok}, nil
}

// GetUserWithPosts fetches a user's profile together with their posts.
func (c *Client) GetUserWithPosts(ctx context.Context, token, userID string) (*UserWithPosts, error) {
	path := "/users/" + url.PathEscape(userID) + "/with-posts"

	var env envelope
	if err := c.do(ctx, OpGetUserWithPosts, http.MethodGet, path, token, nil, &env); err != nil {
		return nil, err
	}

	posts, _, err := decodeContent(env.Content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", OpGetUserWithPosts, err)
	}

	result := &UserWithPosts{Posts: posts}
	if isPresent(env.User) {
		var user domain.UserProfile
		if err := json.Unmarshal(env.User, &user); err != nil {
			return nil, fmt.Errorf("%s: decode user: %w", OpGetUserWithPosts, err)
		}
		result.User = &user
	}
	return result, nil
}

// CreatePost creates a post owned by userID. The response body is ignored.
func (c *Client) CreatePost(ctx context.Context, token, userID, text string) error {
	path := "/users/" + url.PathEscape(userID) + "/posts"
	return c.do(ctx, OpCreatePost, http.MethodPost, path, token, createPostRequest{Text: text}, nil)
}

func (c *Client) do(ctx context.Context, op, method, path, token string, body, result any) (err error) {
	start := time.Now()
	defer func() {
		c.metrics.observe(op, err, time.Since(start))
	}()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: marshal request: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s: create request: %w", op, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: send request: %w", op, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: read response: %w", op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Op: op, StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	if result != nil {
		if len(bytes.TrimSpace(respBody)) == 0 {
			return nil
		}
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("%s: unmarshal response: %w", op, err)
		}
	}
	return nil
}

// decodeContent decodes a content field. ok is false when the field is
// absent, null or not an array, in which case posts is an empty slice.
func decodeContent(raw json.RawMessage) (posts []domain.Post, ok bool, err error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return []domain.Post{}, false, nil
	}
	posts = []domain.Post{}
	if err := json.Unmarshal(raw, &posts); err != nil {
		return nil, false, fmt.Errorf("decode content: %w", err)
	}
	return posts, true, nil
}

func isPresent(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && !bytes.Equal(raw, []byte("null"))
}
