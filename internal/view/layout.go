package view

import (
	"context"
	"io"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

const htmxSrc = "https://unpkg.com/htmx.org@2.0.4"

// CalculateTitle handles the conditional logic for the page title.
func CalculateTitle(title string) string {
	if title != "" {
		return title + " - postwall"
	}
	return "postwall"
}

// Base wraps page content in the shared document shell.
func Base(title string, flashes FlashData, signedIn bool, content g.Node) templ.Component {
	body := g.Group{
		g.If(signedIn, nav()),
		h.Main(
			h.Class("container"),
			Flashes(flashes),
			content,
		),
	}
	return document(CalculateTitle(title), AdaptGomponentToTempl(body))
}

func document(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		head := `<!doctype html><html lang="sv"><head><meta charset="utf-8">` +
			`<meta name="viewport" content="width=device-width, initial-scale=1">` +
			`<title>` + templ.EscapeString(title) + `</title>` +
			`<link rel="stylesheet" href="/static/css/app.css">` +
			`<script src="` + htmxSrc + `" defer></script></head><body>`
		if _, err := io.WriteString(w, head); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</body></html>")
		return err
	})
}

func nav() g.Node {
	return h.Nav(
		h.Class("top-nav"),
		h.A(h.Href("/app/feed"), g.Text("Flöde")),
		h.A(h.Href("/app/wall"), g.Text("Min sida")),
		h.Form(
			h.Method("post"), h.Action("/session/logout"), h.Class("inline"),
			h.Button(h.Type("submit"), g.Text("Logga ut")),
		),
	)
}

// Flashes renders success and error flash messages.
func Flashes(f FlashData) g.Node {
	return g.Group{
		g.Map(f.Success, func(msg string) g.Node {
			return h.Div(h.Class("flash flash-success"), h.Role("status"), g.Text(msg))
		}),
		g.Map(f.Error, func(msg string) g.Node {
			return h.Div(h.Class("flash flash-error"), h.Role("alert"), g.Text(msg))
		}),
	}
}

// ErrorBanner is a dismissible notice for a failed fetch.
func ErrorBanner(msg string) g.Node {
	return h.Div(
		h.Class("banner banner-error"), h.Role("alert"),
		h.Span(g.Text(msg)),
		h.Button(
			h.Type("button"), h.Class("banner-dismiss"),
			g.Attr("onclick", "this.parentElement.remove()"),
			g.Attr("aria-label", "Stäng"),
			g.Text("×"),
		),
	)
}

// Loading is the indicator shown while a view's first fetch is outstanding.
// Extra attributes, such as htmx triggers, are applied to the element.
func Loading(attrs ...g.Node) g.Node {
	return h.P(append([]g.Node{h.Class("loading")}, append(attrs, g.Text("Laddar inlägg..."))...)...)
}

// EmptyMessage is shown once loading finished without any posts.
func EmptyMessage() g.Node {
	return h.P(h.Class("empty"), g.Text("Inga inlägg hittades"))
}

// PostCard renders one post with its footer line (timestamp, byline).
func PostCard(id, text, footer string) g.Node {
	return h.Li(
		h.ID("post-"+id), h.Class("post-card"),
		h.P(h.Class("post-text"), g.Text(text)),
		h.Hr(),
		h.Small(h.Class("post-date"), g.Text(footer)),
	)
}
