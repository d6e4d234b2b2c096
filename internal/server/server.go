package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/nfrund/postwall/internal/app"
	"github.com/nfrund/postwall/internal/config"
	"github.com/nfrund/postwall/internal/handlers"
	"github.com/nfrund/postwall/internal/middleware"
	"github.com/nfrund/postwall/internal/module"
	"github.com/nfrund/postwall/internal/pubsub"
	"github.com/nfrund/postwall/internal/rendering"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/do/v2"
)

// Server holds the dependencies for the HTTP server.
type Server struct {
	E        *echo.Echo
	Cfg      *config.Config
	Registry *prometheus.Registry
	Modules  []module.Module

	bus            *pubsub.WatermillBridge
	homeHandler    *handlers.HomeHandler
	sessionHandler *handlers.SessionHandler
}

// New creates a new Server instance from cfg. Routes are added by
// RegisterRoutes.
func New(cfg *config.Config) (*Server, error) {
	injector := app.NewInjector(cfg)
	deps, err := app.ResolveDependencies(injector)
	if err != nil {
		return nil, fmt.Errorf("resolve dependencies: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Renderer = rendering.NewUniversalRenderer()
	e.Validator = handlers.NewValidator()
	setupErrorHandling(e)

	e.Use(echomw.Recover())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.Logger)
	e.Use(do.MustInvoke[*middleware.HTTPMetrics](injector).Middleware)

	// Configure and use session middleware
	store := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	e.Use(session.Middleware(store))

	return &Server{
		E:              e,
		Cfg:            cfg,
		Registry:       do.MustInvoke[*prometheus.Registry](injector),
		Modules:        app.NewModules(deps),
		bus:            do.MustInvoke[*pubsub.WatermillBridge](injector),
		homeHandler:    handlers.NewHomeHandler(),
		sessionHandler: handlers.NewSessionHandler(),
	}, nil
}

// setupErrorHandling installs an error handler that logs unhandled errors
// with a stack trace before delegating to echo's default response.
func setupErrorHandling(e *echo.Echo) {
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if he, ok := err.(*echo.HTTPError); ok && he.Internal == nil {
			e.DefaultHTTPErrorHandler(err, c)
			return
		}

		middleware.FromContext(c.Request().Context()).Error("Internal Server Error (Unhandled)",
			"error", err,
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
			"stack_trace", string(debug.Stack()),
		)
		e.DefaultHTTPErrorHandler(err, c)
	}
}

// Close releases background resources owned by the server.
func (s *Server) Close() error {
	if s.bus != nil {
		return s.bus.Close()
	}
	return nil
}

// logModules lists the active modules once at boot.
func (s *Server) logModules() {
	names := make([]string, 0, len(s.Modules))
	for _, m := range s.Modules {
		names = append(names, m.Name())
	}
	slog.Info("Modules booted", "modules", names)
}
