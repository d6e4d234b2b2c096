package wall_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/nfrund/postwall/internal/backend"
	"github.com/nfrund/postwall/internal/domain"
	"github.com/nfrund/postwall/internal/modules/wall"
	"github.com/nfrund/postwall/internal/modules/wall/events"
	"github.com/nfrund/postwall/internal/pubsub"
	"github.com/nfrund/postwall/internal/viewstate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	fetches   int
	creates   []string
	res       *backend.UserWithPosts
	fetchErr  error
	createErr error
}

func (f *fakeBackend) GetUserWithPosts(ctx context.Context, token, userID string) (*backend.UserWithPosts, error) {
	f.fetches++
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.res, nil
}

func (f *fakeBackend) CreatePost(ctx context.Context, token, userID, text string) error {
	f.creates = append(f.creates, text)
	if f.createErr != nil {
		return f.createErr
	}
	f.res.Posts = append([]domain.Post{{ID: gofakeit.UUID(), Text: text, CreatedAt: gofakeit.Date()}}, f.res.Posts...)
	return nil
}

type recordingPublisher struct {
	mu   sync.Mutex
	msgs []pubsub.Message
}

func (p *recordingPublisher) Publish(ctx context.Context, msg pubsub.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.msgs = append(p.msgs, msg)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

var signedIn = domain.Session{Token: "abc", UserID: "1"}

func loadedBackend() *fakeBackend {
	return &fakeBackend{res: &backend.UserWithPosts{
		User:  &domain.UserProfile{DisplayName: gofakeit.Name(), Bio: gofakeit.Sentence(4)},
		Posts: []domain.Post{{ID: "1", Text: gofakeit.Sentence(5), CreatedAt: gofakeit.Date()}},
	}}
}

func TestFetch_NotAuthenticated(t *testing.T) {
	for _, sess := range []domain.Session{{}, {Token: "abc"}, {UserID: "1"}} {
		b := loadedBackend()
		st := wall.NewController(b, nil).Fetch(context.Background(), sess, wall.NewState())

		assert.Zero(t, b.fetches)
		assert.False(t, st.Loading)
		assert.NotNil(t, st.Posts)
		assert.Empty(t, st.Posts)
		assert.Equal(t, viewstate.StatusIdle, st.Status())
		assert.False(t, st.Ready())
	}
}

func TestFetch_Success(t *testing.T) {
	b := loadedBackend()
	st := wall.NewController(b, nil).Fetch(context.Background(), signedIn, wall.NewState())

	assert.Equal(t, 1, b.fetches)
	assert.True(t, st.Ready())
	assert.Equal(t, *b.res.User, *st.User)
	assert.Equal(t, b.res.Posts, st.Posts)
	assert.Equal(t, viewstate.StatusLoadedWithData, st.Status())
}

func TestFetch_MissingUserUsesPlaceholder(t *testing.T) {
	b := &fakeBackend{res: &backend.UserWithPosts{Posts: []domain.Post{}}}
	st := wall.NewController(b, nil).Fetch(context.Background(), signedIn, wall.NewState())

	require.NotNil(t, st.User)
	assert.Equal(t, "Användare", st.User.DisplayName)
	assert.Empty(t, st.User.Bio)
	assert.Equal(t, viewstate.StatusLoadedEmpty, st.Status())
}

func TestFetch_FailureKeepsPriorState(t *testing.T) {
	b := loadedBackend()
	c := wall.NewController(b, nil)
	st := c.Fetch(context.Background(), signedIn, wall.NewState())
	prevUser, prevPosts := st.User, st.Posts

	b.fetchErr = &backend.StatusError{Op: backend.OpGetUserWithPosts, StatusCode: 502}
	st = c.Fetch(context.Background(), signedIn, st)

	assert.False(t, st.Loading)
	assert.True(t, st.Failed())
	assert.Equal(t, prevUser, st.User)
	assert.Equal(t, prevPosts, st.Posts)
}

func TestFetch_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	st := wall.NewController(loadedBackend(), nil).Fetch(ctx, signedIn, wall.NewState())

	assert.False(t, st.Loading)
	assert.Equal(t, viewstate.OutcomeCanceled, st.Outcome)
	assert.Nil(t, st.User)
}

func TestSubmit_WhitespaceIsSkipped(t *testing.T) {
	for _, draft := range []string{"", " ", "\n\t  "} {
		b := loadedBackend()
		st := wall.NewState()
		st.Draft = draft

		got, result := wall.NewController(b, nil).Submit(context.Background(), signedIn, st)

		assert.Equal(t, wall.SubmitSkipped, result)
		assert.Equal(t, draft, got.Draft)
		assert.Empty(t, b.creates)
		assert.Zero(t, b.fetches)
	}
}

func TestSubmit_NotAuthenticated(t *testing.T) {
	b := loadedBackend()
	st := wall.NewState()
	st.Draft = "hello"

	got, result := wall.NewController(b, nil).Submit(context.Background(), domain.Session{Token: "abc"}, st)

	assert.Equal(t, wall.SubmitNotAuthenticated, result)
	assert.Equal(t, "hello", got.Draft)
	assert.Empty(t, b.creates)
}

func TestSubmit_SuccessClearsDraftAndRefetches(t *testing.T) {
	b := loadedBackend()
	pub := &recordingPublisher{}
	c := wall.NewController(b, pub)
	st := c.Fetch(context.Background(), signedIn, wall.NewState())
	st.Draft = "  a brand new post "

	st, result := c.Submit(context.Background(), signedIn, st)

	require.Equal(t, wall.SubmitCreated, result)
	assert.Equal(t, []string{"  a brand new post "}, b.creates)
	assert.Equal(t, 2, b.fetches)
	assert.Empty(t, st.Draft)
	require.Len(t, st.Posts, 2)
	assert.Equal(t, "  a brand new post ", st.Posts[0].Text)

	require.Len(t, pub.msgs, 1)
	assert.Equal(t, events.TopicPostCreated, pub.msgs[0].Topic)
	var ev events.PostCreated
	require.NoError(t, json.Unmarshal(pub.msgs[0].Payload, &ev))
	assert.Equal(t, "1", ev.UserID)
	assert.Equal(t, 19, ev.TextLength)
}

func TestSubmit_FailureKeepsDraftWithoutRefetch(t *testing.T) {
	b := loadedBackend()
	pub := &recordingPublisher{}
	c := wall.NewController(b, pub)
	st := c.Fetch(context.Background(), signedIn, wall.NewState())
	b.createErr = errors.New("connection reset")
	st.Draft = "keep me"

	st, result := c.Submit(context.Background(), signedIn, st)

	assert.Equal(t, wall.SubmitFailed, result)
	assert.Equal(t, "keep me", st.Draft)
	assert.Equal(t, 1, b.fetches, "no refetch after a failed create")
	assert.Empty(t, pub.msgs)
}

func TestSubmitResultString(t *testing.T) {
	assert.Equal(t, "skipped", wall.SubmitSkipped.String())
	assert.Equal(t, "not_authenticated", wall.SubmitNotAuthenticated.String())
	assert.Equal(t, "failed", wall.SubmitFailed.String())
	assert.Equal(t, "created", wall.SubmitCreated.String())
}
