package session

// GameState is the phase of a session.
type GameState int32

const (
	GameStateStopped  GameState = iota // Not started, or stopped via StopGame
	GameStateRunning                   // Active gameplay
	GameStatePaused                    // Frozen by the pause input
	GameStateGameOver                  // Lives ran out; waits for restart
)

// String returns a lower-case name for logs.
func (g GameState) String() string {
	switch g {
	case GameStateRunning:
		return "running"
	case GameStatePaused:
		return "paused"
	case GameStateGameOver:
		return "game over"
	default:
		return "stopped"
	}
}
