package app

import (
	"github.com/nfrund/postwall/internal/module"
	"github.com/nfrund/postwall/internal/modules/activity"
	"github.com/nfrund/postwall/internal/modules/feed"
	"github.com/nfrund/postwall/internal/modules/wall"
)

// NewModules creates and returns the list of all active modules for the application.
// This is the single source of truth for which features are enabled.
func NewModules(deps Dependencies) []module.Module {
	return []module.Module{
		activity.New(activityDeps(deps)),
		feed.New(feedDeps(deps)),
		wall.New(wallDeps(deps)),
	}
}
