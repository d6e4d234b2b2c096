package feed

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/postwall/internal/module"
	gview "github.com/nfrund/postwall/internal/view"
)

// Dependencies holds the services required by the feed module.
type Dependencies struct {
	Posts      PostLister
	Formatter  *gview.TimeFormatter
	ShowErrors bool
}

// FeedModule implements the module.Module interface.
type FeedModule struct {
	module.BaseModule
	deps Dependencies
}

// New creates a new instance of the module.
func New(deps Dependencies) *FeedModule {
	return &FeedModule{deps: deps}
}

// Name returns the module's unique identifier.
func (m *FeedModule) Name() string {
	return "feed"
}

// Boot registers the feed routes on the protected /app group.
func (m *FeedModule) Boot(ctx context.Context, g *echo.Group) error {
	slog.Info("Booting FeedModule: Setting up routes...")
	handler := NewHandler(NewLoader(m.deps.Posts), m.deps.Formatter, m.deps.ShowErrors)
	g.GET("/feed", handler.Get)
	g.GET("/feed/posts", handler.Posts)
	return nil
}
