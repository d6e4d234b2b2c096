package feed_test

import (
	"context"
	"errors"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/nfrund/postwall/internal/backend"
	"github.com/nfrund/postwall/internal/domain"
	"github.com/nfrund/postwall/internal/modules/feed"
	"github.com/nfrund/postwall/internal/viewstate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLister struct {
	calls  int
	tokens []string
	page   *backend.PostPage
	err    error
}

func (f *fakeLister) ListPosts(ctx context.Context, token string) (*backend.PostPage, error) {
	f.calls++
	f.tokens = append(f.tokens, token)
	if f.err != nil {
		return nil, f.err
	}
	return f.page, nil
}

func fakePosts(n int) []domain.Post {
	posts := make([]domain.Post, n)
	for i := range posts {
		posts[i] = domain.Post{
			ID:        gofakeit.UUID(),
			Text:      gofakeit.Sentence(6),
			CreatedAt: gofakeit.Date(),
		}
	}
	return posts
}

func TestLoad_NotAuthenticated(t *testing.T) {
	sessions := []domain.Session{
		{},
		{Token: "abc"},
		{UserID: "1"},
	}
	for _, sess := range sessions {
		lister := &fakeLister{page: &backend.PostPage{Posts: fakePosts(2)}}
		st := feed.NewLoader(lister).Load(context.Background(), sess, viewstate.New())

		assert.Zero(t, lister.calls, "no request for %+v", sess)
		assert.False(t, st.Loading)
		assert.NotNil(t, st.Posts)
		assert.Empty(t, st.Posts)
		assert.Equal(t, viewstate.StatusIdle, st.Status())
	}
}

func TestLoad_Success(t *testing.T) {
	posts := fakePosts(4)
	lister := &fakeLister{page: &backend.PostPage{Posts: posts}}

	st := feed.NewLoader(lister).Load(context.Background(), domain.Session{Token: "abc", UserID: "1"}, viewstate.New())

	require.Equal(t, 1, lister.calls)
	assert.Equal(t, []string{"abc"}, lister.tokens)
	assert.False(t, st.Loading)
	assert.Equal(t, posts, st.Posts, "order is whatever the backend returned")
	assert.Equal(t, viewstate.StatusLoadedWithData, st.Status())
}

func TestLoad_EmptyAndMissingContent(t *testing.T) {
	for _, page := range []*backend.PostPage{
		{Posts: []domain.Post{}},
		{Posts: []domain.Post{}, ContentMissing: true},
	} {
		st := feed.NewLoader(&fakeLister{page: page}).Load(context.Background(), domain.Session{Token: "abc", UserID: "1"}, viewstate.New())
		assert.False(t, st.Loading)
		assert.Equal(t, viewstate.StatusLoadedEmpty, st.Status())
	}
}

func TestLoad_FailureKeepsLastPosts(t *testing.T) {
	sess := domain.Session{Token: "abc", UserID: "1"}
	posts := fakePosts(2)
	lister := &fakeLister{page: &backend.PostPage{Posts: posts}}
	loader := feed.NewLoader(lister)

	st := loader.Load(context.Background(), sess, viewstate.New())
	require.Len(t, st.Posts, 2)

	lister.err = errors.New("connection refused")
	st = loader.Load(context.Background(), sess, st)

	assert.Equal(t, 2, lister.calls)
	assert.False(t, st.Loading)
	assert.True(t, st.Failed())
	assert.Equal(t, posts, st.Posts)
}

func TestLoad_FailureFromMount(t *testing.T) {
	lister := &fakeLister{err: &backend.StatusError{Op: backend.OpListPosts, StatusCode: 500}}
	st := feed.NewLoader(lister).Load(context.Background(), domain.Session{Token: "abc", UserID: "1"}, viewstate.New())

	assert.False(t, st.Loading)
	assert.Empty(t, st.Posts)
	assert.Equal(t, viewstate.StatusLoadedEmpty, st.Status())
}

func TestLoad_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	lister := &fakeLister{page: &backend.PostPage{Posts: fakePosts(1)}}

	st := feed.NewLoader(lister).Load(ctx, domain.Session{Token: "abc", UserID: "1"}, viewstate.New())

	assert.False(t, st.Loading)
	assert.Equal(t, viewstate.OutcomeCanceled, st.Outcome)
	assert.Empty(t, st.Posts)
}
