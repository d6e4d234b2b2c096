// Package session stores the token and user id issued by the external
// authentication provider in a signed cookie session.
package session

import (
	"fmt"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/nfrund/postwall/internal/domain"
)

const (
	// Name is the cookie session holding the credentials.
	Name = "postwall-session"

	// ContextKey caches the decoded session on the echo.Context.
	ContextKey = "session"

	keyToken  = "token"
	keyUserID = "user_id"
)

// Get returns the session for the request, decoding the cookie on first use.
// A missing or unreadable cookie yields an empty, not-ready Session.
func Get(c echo.Context) domain.Session {
	if s, ok := c.Get(ContextKey).(domain.Session); ok {
		return s
	}
	var s domain.Session
	if sess, err := session.Get(Name, c); err == nil {
		s.Token, _ = sess.Values[keyToken].(string)
		s.UserID, _ = sess.Values[keyUserID].(string)
	}
	c.Set(ContextKey, s)
	return s
}

// Save stores s in the cookie session.
func Save(c echo.Context, s domain.Session) error {
	sess, err := session.Get(Name, c)
	if err != nil {
		return fmt.Errorf("get session: %w", err)
	}
	sess.Values[keyToken] = s.Token
	sess.Values[keyUserID] = s.UserID
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	c.Set(ContextKey, s)
	return nil
}

// Clear removes the credentials and expires the cookie.
func Clear(c echo.Context) error {
	sess, err := session.Get(Name, c)
	if err != nil {
		return fmt.Errorf("get session: %w", err)
	}
	delete(sess.Values, keyToken)
	delete(sess.Values, keyUserID)
	sess.Options.MaxAge = -1
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	c.Set(ContextKey, domain.Session{})
	return nil
}
