package pages

import (
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// SignInData pre-fills the sign-in form after a failed submission.
type SignInData struct {
	UserID string
}

// SignIn renders the form that hands a provider-issued token and user id
// over to the client session.
func SignIn(data SignInData) g.Node {
	return h.Div(
		h.Class("feed-container"),
		h.H1(h.Class("center"), g.Text("Logga in")),
		h.Form(
			h.Method("post"), h.Action("/session"), h.Class("sign-in"),
			h.Label(h.For("user_id"), g.Text("Användar-id")),
			h.Input(h.Type("text"), h.ID("user_id"), h.Name("user_id"), h.Value(data.UserID), h.Required()),
			h.Label(h.For("token"), g.Text("Token")),
			h.Input(h.Type("password"), h.ID("token"), h.Name("token"), h.AutoComplete("off"), h.Required()),
			h.Button(h.Type("submit"), g.Text("Fortsätt")),
		),
	)
}
