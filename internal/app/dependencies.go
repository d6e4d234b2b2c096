package app

import (
	"github.com/labstack/echo/v4"
	"github.com/nfrund/postwall/internal/backend"
	"github.com/nfrund/postwall/internal/config"
	"github.com/nfrund/postwall/internal/modules/activity"
	"github.com/nfrund/postwall/internal/modules/feed"
	"github.com/nfrund/postwall/internal/modules/wall"
	"github.com/nfrund/postwall/internal/pubsub"
	gview "github.com/nfrund/postwall/internal/view"
	"github.com/prometheus/client_golang/prometheus"
)

// Dependencies holds the core services that are required by the application's modules.
// It is resolved from the injector once at startup.
type Dependencies struct {
	Config        *config.Config
	Backend       *backend.Client
	Publisher     pubsub.Publisher
	Subscriber    pubsub.Subscriber
	Registerer    prometheus.Registerer
	Formatter     *gview.TimeFormatter
	SubmitLimiter echo.MiddlewareFunc
}

// feedDeps creates the dependency struct for the feed module.
func feedDeps(deps Dependencies) feed.Dependencies {
	return feed.Dependencies{
		Posts:      deps.Backend,
		Formatter:  deps.Formatter,
		ShowErrors: deps.Config.ShowFetchErrors,
	}
}

// wallDeps creates the dependency struct for the wall module.
func wallDeps(deps Dependencies) wall.Dependencies {
	return wall.Dependencies{
		Backend:       deps.Backend,
		Publisher:     deps.Publisher,
		Formatter:     deps.Formatter,
		ShowErrors:    deps.Config.ShowFetchErrors,
		SubmitLimiter: deps.SubmitLimiter,
	}
}

// activityDeps creates the dependency struct for the activity module.
func activityDeps(deps Dependencies) activity.Dependencies {
	return activity.Dependencies{
		Subscriber: deps.Subscriber,
		Registerer: deps.Registerer,
	}
}
