package app_test

import (
	"testing"
	"time"

	"github.com/nfrund/postwall/internal/app"
	"github.com/nfrund/postwall/internal/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/do/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		APIBaseURL:         "http://api.local",
		ServerAddr:         ":0",
		SessionSecret:      "0123456789abcdef0123456789abcdef",
		DisplayLocation:    time.UTC,
		RateLimitPerMinute: 10,
	}
}

func TestResolveDependencies(t *testing.T) {
	i := app.NewInjector(testConfig())

	deps, err := app.ResolveDependencies(i)
	require.NoError(t, err)
	t.Cleanup(func() { _ = deps.Publisher.Close() })

	assert.NotNil(t, deps.Backend)
	assert.Equal(t, "2024-01-01 00:00:00", deps.Formatter.For("sv")(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.Same(t, deps.Publisher, deps.Subscriber)
	assert.NotNil(t, deps.Formatter)
	assert.NotNil(t, deps.SubmitLimiter)

	reg := do.MustInvoke[*prometheus.Registry](i)
	assert.Same(t, reg, deps.Registerer)
}

func TestNewModules(t *testing.T) {
	deps, err := app.ResolveDependencies(app.NewInjector(testConfig()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = deps.Publisher.Close() })

	var names []string
	for _, m := range app.NewModules(deps) {
		names = append(names, m.Name())
	}
	assert.Equal(t, []string{"activity", "feed", "wall"}, names)
}
