package app

import (
	"log/slog"

	"github.com/nfrund/postwall/internal/backend"
	"github.com/nfrund/postwall/internal/config"
	"github.com/nfrund/postwall/internal/middleware"
	"github.com/nfrund/postwall/internal/pubsub"
	gview "github.com/nfrund/postwall/internal/view"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/samber/do/v2"
)

// NewInjector registers the application's services. Services are built
// lazily on first Invoke, so each one is constructed at most once.
func NewInjector(cfg *config.Config) do.Injector {
	i := do.New()

	do.ProvideValue(i, cfg)

	do.Provide(i, func(i do.Injector) (*prometheus.Registry, error) {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		return reg, nil
	})

	do.Provide(i, func(i do.Injector) (*backend.Client, error) {
		cfg := do.MustInvoke[*config.Config](i)
		reg := do.MustInvoke[*prometheus.Registry](i)
		return backend.NewClient(cfg.APIBaseURL, backend.WithMetrics(backend.NewMetrics(reg))), nil
	})

	do.Provide(i, func(i do.Injector) (*pubsub.WatermillBridge, error) {
		return pubsub.NewWatermillBridge(slog.Default()), nil
	})

	do.Provide(i, func(i do.Injector) (*gview.TimeFormatter, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return gview.NewTimeFormatter(cfg.DisplayLocation), nil
	})

	do.Provide(i, func(i do.Injector) (*middleware.HTTPMetrics, error) {
		return middleware.NewHTTPMetrics(do.MustInvoke[*prometheus.Registry](i)), nil
	})

	return i
}

// ResolveDependencies builds the module dependency set from the injector.
func ResolveDependencies(i do.Injector) (Dependencies, error) {
	cfg, err := do.Invoke[*config.Config](i)
	if err != nil {
		return Dependencies{}, err
	}
	client, err := do.Invoke[*backend.Client](i)
	if err != nil {
		return Dependencies{}, err
	}
	bus, err := do.Invoke[*pubsub.WatermillBridge](i)
	if err != nil {
		return Dependencies{}, err
	}
	reg, err := do.Invoke[*prometheus.Registry](i)
	if err != nil {
		return Dependencies{}, err
	}
	formatter, err := do.Invoke[*gview.TimeFormatter](i)
	if err != nil {
		return Dependencies{}, err
	}

	return Dependencies{
		Config:        cfg,
		Backend:       client,
		Publisher:     bus,
		Subscriber:    bus,
		Registerer:    reg,
		Formatter:     formatter,
		SubmitLimiter: middleware.RateLimiter(cfg.RateLimitPerMinute),
	}, nil
}
