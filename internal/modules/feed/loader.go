package feed

import (
	"context"

	"github.com/nfrund/postwall/internal/backend"
	"github.com/nfrund/postwall/internal/domain"
	"github.com/nfrund/postwall/internal/middleware"
	"github.com/nfrund/postwall/internal/viewstate"
)

// PostLister reads the global post collection.
type PostLister interface {
	ListPosts(ctx context.Context, token string) (*backend.PostPage, error)
}

// Loader runs the feed's fetch on mount and on session change.
type Loader struct {
	posts PostLister
}

// NewLoader creates a Loader reading from posts.
func NewLoader(posts PostLister) *Loader {
	return &Loader{posts: posts}
}

// Load makes a single authenticated read of the post collection. Without a
// ready session no request is made and loading completes empty. On failure
// the previously stored posts are kept.
func (l *Loader) Load(ctx context.Context, sess domain.Session, st viewstate.State) viewstate.State {
	if !sess.Ready() {
		return st.Skip()
	}

	st = st.Begin()
	page, err := l.posts.ListPosts(ctx, sess.Token)

	logger := middleware.FromContext(ctx)
	return st.Resolve(ctx, logger, backend.OpListPosts, err, func(s viewstate.State) viewstate.State {
		if page.ContentMissing {
			logger.Warn("feed response had no content array, showing no posts")
		}
		s.Posts = page.Posts
		return s
	})
}
