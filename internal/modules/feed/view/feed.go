package view

import (
	gview "github.com/nfrund/postwall/internal/view"
	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	h "maragu.dev/gomponents/html"
)

// ContentID is the element swapped when the feed finishes loading.
const ContentID = "feed-content"

// Shell is the feed as first mounted: a loading indicator that fetches the
// loaded content as soon as htmx initializes.
func Shell(contentURL string) g.Node {
	return h.Div(
		h.ID(ContentID), h.Class("feed-container"),
		gview.Loading(
			hx.Get(contentURL),
			hx.Trigger("load"),
			hx.Target("#"+ContentID),
			hx.Swap("outerHTML"),
		),
	)
}

// Content renders the feed once loading has completed.
func Content(data Data) g.Node {
	return h.Div(
		h.ID(ContentID), h.Class("feed-container"),
		h.A(h.Href(data.WallURL), g.Text("Till min sida")),
		h.H1(g.Text("Inlägg")),
		g.If(data.ErrorMessage != "", gview.ErrorBanner(data.ErrorMessage)),
		g.If(len(data.Posts) == 0, gview.EmptyMessage()),
		h.Ul(
			h.Class("post-list"),
			g.Map(data.Posts, func(p PostItem) g.Node {
				return gview.PostCard(p.ID, p.Text, p.Timestamp)
			}),
		),
	)
}
