package activity

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/postwall/internal/module"
	"github.com/nfrund/postwall/internal/modules/wall/events"
	"github.com/nfrund/postwall/internal/pubsub"
	"github.com/prometheus/client_golang/prometheus"
)

// ActivityModule listens for wall events and records them.
type ActivityModule struct {
	module.BaseModule
	subscriber pubsub.Subscriber
	created    prometheus.Counter
	cancel     context.CancelFunc
}

// Dependencies holds the services required by the ActivityModule.
type Dependencies struct {
	Subscriber pubsub.Subscriber
	Registerer prometheus.Registerer
}

// New creates an ActivityModule and registers its counter. A nil Registerer
// leaves the counter unregistered.
func New(deps Dependencies) *ActivityModule {
	created := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "postwall_posts_created_total",
		Help: "Posts created through the wall.",
	})
	if deps.Registerer != nil {
		deps.Registerer.MustRegister(created)
	}
	return &ActivityModule{
		subscriber: deps.Subscriber,
		created:    created,
	}
}

// Name returns the module name
func (m *ActivityModule) Name() string {
	return "activity"
}

// PostsCreated exposes the post counter.
func (m *ActivityModule) PostsCreated() prometheus.Counter {
	return m.created
}

// Boot subscribes to post events. It registers no routes.
func (m *ActivityModule) Boot(ctx context.Context, g *echo.Group) error {
	slog.Info("Booting ActivityModule...")

	// The subscription outlives the boot context and ends on Shutdown.
	subCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	if err := m.subscriber.Subscribe(subCtx, events.TopicPostCreated, m.handlePostCreated); err != nil {
		cancel()
		slog.Error("Failed to subscribe to post events", "error", err)
		return fmt.Errorf("subscribe %s: %w", events.TopicPostCreated, err)
	}
	m.cancel = cancel

	slog.Info("ActivityModule subscribed", "topic", events.TopicPostCreated)
	return nil
}

func (m *ActivityModule) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down ActivityModule...")
	if m.cancel != nil {
		m.cancel()
	}
	return nil
}

// handlePostCreated logs one post event. Malformed payloads are logged and
// acknowledged so they are not redelivered.
func (m *ActivityModule) handlePostCreated(ctx context.Context, msg pubsub.Message) error {
	var ev events.PostCreated
	if err := json.Unmarshal(msg.Payload, &ev); err != nil {
		slog.Warn("Unexpected post created payload", "error", err, "userID", msg.UserID)
		return nil
	}

	m.created.Inc()
	slog.Info("Post created", "userID", ev.UserID, "length", ev.TextLength, "at", ev.Timestamp)
	return nil
}
