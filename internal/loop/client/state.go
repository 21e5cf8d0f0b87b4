package client

import (
	"time"

	"github.com/tomz197/skyraid/internal/input"
	"github.com/tomz197/skyraid/internal/loop/session"
)

// view is what the client shows, derived from the session state plus the
// client-only shutdown and inactivity conditions.
type view int

const (
	viewStart view = iota
	viewPlaying
	viewPaused
	viewGameOver
	viewInactive
	viewShutdown
)

// ClientState holds the per-connection state that is not part of the game.
type ClientState struct {
	Input    input.Input
	Running  bool          // Client loop running
	delta    time.Duration // Frame delta time
	prevView view          // View drawn in the previous frame

	lastInput  time.Time
	isInactive bool

	shuttingDown  bool
	shutdownTimer time.Duration // Left before auto-disconnect
}

// NewClientState creates a new initialized client state.
func NewClientState(now time.Time) *ClientState {
	return &ClientState{
		Running:   true,
		prevView:  -1,
		lastInput: now,
	}
}

// viewFor maps the game state and client conditions to a view.
func (s *ClientState) viewFor(gs session.GameState) view {
	switch {
	case s.shuttingDown:
		return viewShutdown
	case s.isInactive:
		return viewInactive
	}
	switch gs {
	case session.GameStateRunning:
		return viewPlaying
	case session.GameStatePaused:
		return viewPaused
	case session.GameStateGameOver:
		return viewGameOver
	default:
		return viewStart
	}
}
