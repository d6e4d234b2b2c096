package view

import (
	gview "github.com/nfrund/postwall/internal/view"
	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	h "maragu.dev/gomponents/html"
)

// Element ids targeted by htmx swaps.
const (
	ContentID = "wall-content"
	FormID    = "create-post"
	PostsID   = "wall-posts"
)

// Shell is the wall as first mounted: a loading indicator that fetches the
// wall content as soon as htmx initializes.
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

// Pending is shown when loading finished without a profile to display.
func Pending(errorMessage string) g.Node {
	return h.Div(
		h.ID(ContentID), h.Class("feed-container"),
		g.If(errorMessage != "", gview.ErrorBanner(errorMessage)),
		gview.Loading(),
	)
}

// Content renders the loaded wall.
func Content(data Data) g.Node {
	return h.Div(
		h.ID(ContentID), h.Class("feed-container"),
		h.H1(h.Class("center"), g.Text(data.DisplayName)),
		h.Div(
			h.Class("about-me"),
			h.P(h.B(g.Text("Om mig:")), g.Text(" "+data.Bio)),
		),
		CreateForm(data),
		Posts(data, false),
	)
}

// SubmitFailed is the full-page answer to a failed plain form post: the
// composer keeps the draft, and the wall is only a link back.
func SubmitFailed(data Data, pageURL string) g.Node {
	return h.Div(
		h.ID(ContentID), h.Class("feed-container"),
		CreateForm(data),
		h.P(h.A(h.Href(pageURL), g.Text("Tillbaka till Min sida"))),
	)
}

// CreateForm renders the composer bound to the draft text.
func CreateForm(data Data) g.Node {
	return h.Form(
		h.ID(FormID), h.Class("create-post"),
		h.Method("post"), h.Action(data.SubmitURL),
		hx.Post(data.SubmitURL),
		hx.Target("this"),
		hx.Swap("outerHTML"),
		g.If(data.ErrorMessage != "", gview.ErrorBanner(data.ErrorMessage)),
		h.Textarea(
			h.Name("text"),
			h.Placeholder("Skriv ett nytt inlägg..."),
			g.Text(data.Draft),
		),
		h.Button(h.Type("submit"), g.Text("Publicera")),
	)
}

// Posts renders the post list. With oob set it is marked for an htmx
// out-of-band swap so it can ride along with another response.
func Posts(data Data, oob bool) g.Node {
	return h.Div(
		h.ID(PostsID),
		g.If(oob, hx.SwapOOB("true")),
		g.If(len(data.Posts) == 0, gview.EmptyMessage()),
		h.Ul(
			h.Class("post-list"),
			g.Map(data.Posts, func(p PostItem) g.Node {
				return gview.PostCard(p.ID, p.Text, p.Timestamp+" av "+data.DisplayName)
			}),
		),
	)
}
