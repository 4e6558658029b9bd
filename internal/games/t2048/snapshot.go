package t2048

import "github.com/vovakirdan/tui-2048/internal/board"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StatePaused      GameStateType = "paused"
	StateGameOver    GameStateType = "game_over"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick      uint64
	Variant   string
	Score     int
	Moves     int
	Board     [board.Size][board.Size]int
	MaxTile   int // Highest tile on board
	Autopilot bool
	State     GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.board.IsGameOver():
		state = StateGameOver
	case g.paused:
		state = StatePaused
	}

	return Snapshot{
		Tick:      g.tick,
		Variant:   string(g.variant),
		Score:     g.board.Score(),
		Moves:     g.board.Moves(),
		Board:     g.board.Render(),
		MaxTile:   g.board.MaxTile(),
		Autopilot: g.autopilot,
		State:     state,
	}
}
