package view

import (
	"context"
	"io"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
)

// GomponentToTemplAdapter wraps a gomponents.Node to satisfy templ.Component,
// so page bodies built with gomponents can sit inside the templ document.
type GomponentToTemplAdapter struct {
	Node g.Node
}

// Render implements templ.Component.
func (a *GomponentToTemplAdapter) Render(_ context.Context, w io.Writer) error {
	return a.Node.Render(w)
}

// AdaptGomponentToTempl converts a gomponents node into a templ.Component.
func AdaptGomponentToTempl(node g.Node) templ.Component {
	return &GomponentToTemplAdapter{Node: node}
}
