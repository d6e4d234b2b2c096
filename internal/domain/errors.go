package domain

import "errors"

// Sentinel errors for the domain layer. These provide consistent, checkable
// errors for the conditions views and commands branch on.
var (
	ErrNotAuthenticated = errors.New("session has no token or user id")
	ErrEmptyPost        = errors.New("post text is empty")
)
