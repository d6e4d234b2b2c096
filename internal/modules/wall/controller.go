package wall

import (
	"context"
	"encoding/json"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/nfrund/postwall/internal/backend"
	"github.com/nfrund/postwall/internal/domain"
	"github.com/nfrund/postwall/internal/middleware"
	"github.com/nfrund/postwall/internal/modules/wall/events"
	"github.com/nfrund/postwall/internal/pubsub"
	"github.com/nfrund/postwall/internal/viewstate"
)

// Backend is the part of the posts API the wall needs.
type Backend interface {
	GetUserWithPosts(ctx context.Context, token, userID string) (*backend.UserWithPosts, error)
	CreatePost(ctx context.Context, token, userID, text string) error
}

// State is the wall's view state: the shared post list plus the profile and
// the text being composed.
type State struct {
	viewstate.State
	User  *domain.UserProfile
	Draft string
}

// NewState returns the state of a freshly mounted wall.
func NewState() State {
	return State{State: viewstate.New()}
}

// Ready reports whether the wall has what it needs to render past the
// loading indicator.
func (s State) Ready() bool {
	return !s.Loading && s.User != nil
}

// SubmitResult describes what a Submit call did.
type SubmitResult int

const (
	SubmitSkipped SubmitResult = iota
	SubmitNotAuthenticated
	SubmitFailed
	SubmitCreated
)

func (r SubmitResult) String() string {
	switch r {
	case SubmitSkipped:
		return "skipped"
	case SubmitNotAuthenticated:
		return "not_authenticated"
	case SubmitFailed:
		return "failed"
	case SubmitCreated:
		return "created"
	default:
		return "unknown"
	}
}

// Controller runs the wall's fetch and post-creation flows.
type Controller struct {
	backend   Backend
	publisher pubsub.Publisher
}

// NewController creates a Controller. publisher may be nil.
func NewController(b Backend, publisher pubsub.Publisher) *Controller {
	return &Controller{backend: b, publisher: publisher}
}

// Fetch loads the profile and posts for the session's user. It runs on mount
// and again after every successful post. A missing profile is replaced by
// the placeholder; a failed request leaves the state as it was apart from
// clearing the loading flag.
func (c *Controller) Fetch(ctx context.Context, sess domain.Session, st State) State {
	if !sess.Ready() {
		st.State = st.State.Skip()
		return st
	}

	st.State = st.State.Begin()
	res, err := c.backend.GetUserWithPosts(ctx, sess.Token, sess.UserID)

	var user *domain.UserProfile
	st.State = st.State.Resolve(ctx, middleware.FromContext(ctx), backend.OpGetUserWithPosts, err, func(s viewstate.State) viewstate.State {
		s.Posts = res.Posts
		if res.User != nil {
			u := *res.User
			user = &u
		} else {
			p := domain.PlaceholderProfile()
			user = &p
		}
		return s
	})
	if user != nil {
		st.User = user
	}
	return st
}

// Submit creates a post from the draft. Blank drafts are ignored without a
// request. On success the draft is cleared and the wall is fetched again;
// on failure the draft is kept so nothing the user typed is lost.
func (c *Controller) Submit(ctx context.Context, sess domain.Session, st State) (State, SubmitResult) {
	if strings.TrimSpace(st.Draft) == "" {
		return st, SubmitSkipped
	}
	if !sess.Ready() {
		return st, SubmitNotAuthenticated
	}

	logger := middleware.FromContext(ctx)
	if err := c.backend.CreatePost(ctx, sess.Token, sess.UserID, st.Draft); err != nil {
		logger.Error("create post failed", "op", backend.OpCreatePost, "error", err)
		return st, SubmitFailed
	}

	c.publishCreated(ctx, sess.UserID, st.Draft)
	st.Draft = ""
	return c.Fetch(ctx, sess, st), SubmitCreated
}

func (c *Controller) publishCreated(ctx context.Context, userID, text string) {
	if c.publisher == nil {
		return
	}
	logger := middleware.FromContext(ctx)

	payload, err := json.Marshal(events.PostCreated{
		UserID:     userID,
		TextLength: utf8.RuneCountInString(text),
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		logger.Error("Failed to marshal post created event", "error", err)
		return
	}

	msg := pubsub.Message{
		Topic:   events.TopicPostCreated,
		UserID:  userID,
		Payload: payload,
	}
	if err := c.publisher.Publish(ctx, msg); err != nil {
		logger.Error("Failed to publish post created event", "error", err, "userID", userID)
	}
}
