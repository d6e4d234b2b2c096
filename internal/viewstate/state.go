// Package viewstate holds the loading/loaded lifecycle shared by the feed and
// wall views, including how a single fetch attempt is resolved.
package viewstate

import (
	"context"
	"errors"
	"log/slog"

	"github.com/nfrund/postwall/internal/domain"
)

// Outcome is the typed result of the most recent fetch attempt.
type Outcome int

const (
	OutcomePending Outcome = iota
	OutcomeNotAuthenticated
	OutcomeEmpty
	OutcomeLoaded
	OutcomeFailed
	OutcomeCanceled
)

func (o Outcome) String() string {
	switch o {
	case OutcomePending:
		return "pending"
	case OutcomeNotAuthenticated:
		return "not_authenticated"
	case OutcomeEmpty:
		return "empty"
	case OutcomeLoaded:
		return "loaded"
	case OutcomeFailed:
		return "failed"
	case OutcomeCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Status is the conceptual view state derived from a State.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusLoadedEmpty
	StatusLoadedWithData
)

// State is the per-view state for a list of posts.
type State struct {
	Posts   []domain.Post
	Loading bool
	Outcome Outcome
	// Err is the last fetch error, kept for optional display and logging.
	Err error
}

// New returns the state a view starts with when it is mounted.
func New() State {
	return State{
		Posts:   []domain.Post{},
		Loading: true,
		Outcome: OutcomePending,
	}
}

// Begin re-enters the loading state for a new trigger, keeping stored posts.
func (s State) Begin() State {
	s.Loading = true
	s.Outcome = OutcomePending
	s.Err = nil
	if s.Posts == nil {
		s.Posts = []domain.Post{}
	}
	return s
}

// Skip completes loading without a request because the session is not ready.
func (s State) Skip() State {
	s.Posts = []domain.Post{}
	s.Loading = false
	s.Outcome = OutcomeNotAuthenticated
	s.Err = nil
	return s
}

// Resolve completes one fetch attempt. apply is only called on success and
// only while ctx is still live; a canceled request leaves the stored data
// untouched. Loading is cleared in every case.
func (s State) Resolve(ctx context.Context, logger *slog.Logger, op string, err error, apply func(State) State) State {
	s.Loading = false
	if s.Posts == nil {
		s.Posts = []domain.Post{}
	}

	if ctxErr := ctx.Err(); ctxErr != nil || errors.Is(err, context.Canceled) {
		logger.Debug("discarding fetch result for canceled view", "op", op)
		s.Outcome = OutcomeCanceled
		s.Err = nil
		return s
	}

	if err != nil {
		logger.Error("fetch failed", "op", op, "error", err)
		s.Outcome = OutcomeFailed
		s.Err = err
		return s
	}

	s = apply(s)
	if s.Posts == nil {
		s.Posts = []domain.Post{}
	}
	s.Err = nil
	if len(s.Posts) == 0 {
		s.Outcome = OutcomeEmpty
	} else {
		s.Outcome = OutcomeLoaded
	}
	return s
}

// Status derives the view's position in the Idle/Loading/Loaded state machine.
func (s State) Status() Status {
	switch {
	case s.Loading:
		return StatusLoading
	case s.Outcome == OutcomeNotAuthenticated:
		return StatusIdle
	case len(s.Posts) == 0:
		return StatusLoadedEmpty
	default:
		return StatusLoadedWithData
	}
}

// Failed reports whether the last attempt ended in a transport or HTTP error.
func (s State) Failed() bool {
	return s.Outcome == OutcomeFailed
}
