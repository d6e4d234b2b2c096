package wall

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/postwall/internal/module"
	"github.com/nfrund/postwall/internal/pubsub"
	gview "github.com/nfrund/postwall/internal/view"
)

// Dependencies holds the services required by the wall module.
type Dependencies struct {
	Backend    Backend
	Publisher  pubsub.Publisher
	Formatter  *gview.TimeFormatter
	ShowErrors bool
	// SubmitLimiter guards post creation; nil disables it.
	SubmitLimiter echo.MiddlewareFunc
}

// WallModule implements the module.Module interface.
type WallModule struct {
	module.BaseModule
	deps Dependencies
}

// New creates a new instance of the module.
func New(deps Dependencies) *WallModule {
	return &WallModule{deps: deps}
}

// Name returns the module's unique identifier.
func (m *WallModule) Name() string {
	return "wall"
}

// Boot registers the wall routes on the protected /app group.
func (m *WallModule) Boot(ctx context.Context, g *echo.Group) error {
	slog.Info("Booting WallModule: Setting up routes...")
	handler := NewHandler(NewController(m.deps.Backend, m.deps.Publisher), m.deps.Formatter, m.deps.ShowErrors)

	var submitMiddleware []echo.MiddlewareFunc
	if m.deps.SubmitLimiter != nil {
		submitMiddleware = append(submitMiddleware, m.deps.SubmitLimiter)
	}

	g.GET("/wall", handler.Get)
	g.GET("/wall/content", handler.Content)
	g.POST("/wall/posts", handler.CreatePost, submitMiddleware...)
	return nil
}
