package domain

// Session is the pair of bearer token and user identifier issued by the
// authentication provider. Views receive it explicitly and treat an
// incomplete session as "not ready" rather than as an error.
type Session struct {
	Token  string
	UserID string
}

// Ready reports whether both the token and the user id are present.
func (s Session) Ready() bool {
	return s.Token != "" && s.UserID != ""
}
