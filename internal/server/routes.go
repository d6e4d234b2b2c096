package server

import (
	"context"
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/postwall/internal/handlers"
	"github.com/nfrund/postwall/internal/middleware"
	"github.com/nfrund/postwall/web"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes sets up all the application routes and boots the modules
// on the protected /app group.
func (s *Server) RegisterRoutes(ctx context.Context) error {
	rateLimiter := middleware.RateLimiter(s.Cfg.RateLimitPerMinute)

	s.E.GET("/", s.homeHandler.HomeGet)
	s.E.GET("/health", handlers.Health)
	s.E.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.Registry, promhttp.HandlerOpts{})))

	s.E.GET("/session", s.sessionHandler.Get)
	s.E.POST("/session", s.sessionHandler.Post, rateLimiter)
	s.E.POST("/session/logout", s.sessionHandler.Logout)

	s.E.StaticFS("/static", echo.MustSubFS(web.FS, "static"))

	protected := s.E.Group("/app", middleware.RequireSession("/session"))
	for _, m := range s.Modules {
		if err := m.Boot(ctx, protected); err != nil {
			return fmt.Errorf("boot module %s: %w", m.Name(), err)
		}
	}
	s.logModules()
	return nil
}
