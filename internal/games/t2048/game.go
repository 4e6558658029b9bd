// Package t2048 adapts the board engine to the tick-driven platform:
// key actions become moves, and an optional autopilot agent plays on its own.
package t2048

import (
	"context"
	"math/rand"

	"github.com/vovakirdan/tui-2048/internal/agent"
	"github.com/vovakirdan/tui-2048/internal/board"
	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

// Variant selects the rules a game is created with.
type Variant string

const (
	VariantStandard Variant = "2048"         // 2s and 4s per config
	VariantClassic  Variant = "2048_classic" // only 2s
	VariantAuto     Variant = "2048_auto"    // autopilot on from the start
)

// Package-level variables for config
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
)

// SetConfigPath sets a custom config file path.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset applied on Reset.
func SetDifficultyPreset(preset config.DifficultyPreset) {
	difficultyPreset = preset
}

// Game implements the 2048 puzzle on top of board.Board.
type Game struct {
	variant Variant
	cfg     config.T2048Config

	rng        *rand.Rand
	board      *board.Board
	difficulty *config.DifficultyManager
	agent      agent.Agent
	tick       uint64

	autopilot bool
	lastAuto  uint64 // Tick of the last autopilot move

	// Screen dimensions
	screenW int
	screenH int

	paused   bool
	tooSmall bool
}

// New creates a game of the given variant.
func New(v Variant) *Game {
	return &Game{variant: v}
}

func init() {
	registry.Register(string(VariantStandard), func() registry.Game {
		return New(VariantStandard)
	})
	registry.Register(string(VariantClassic), func() registry.Game {
		return New(VariantClassic)
	})
	registry.Register(string(VariantAuto), func() registry.Game {
		return New(VariantAuto)
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return string(g.variant)
}

// Title returns the display name.
func (g *Game) Title() string {
	switch g.variant {
	case VariantClassic:
		return "2048 (Classic)"
	case VariantAuto:
		return "2048 (Autopilot)"
	default:
		return "2048"
	}
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.loadConfig()

	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0
	g.lastAuto = 0
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.paused = false
	g.autopilot = g.variant == VariantAuto

	g.board = nil
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)
	b, err := board.New(g.rng, g.spawnPolicy())
	if err != nil {
		// Validated config makes this unreachable; keep the game playable.
		b, _ = board.New(g.rng, board.DefaultSpawnPolicy())
	}
	g.board = b

	g.agent = g.newAgent()
	g.checkScreenSize()
}

// loadConfig reads the YAML config and applies the preset and variant rules.
func (g *Game) loadConfig() {
	cfg, err := config.LoadT2048(configPath)
	if err != nil {
		cfg = config.DefaultT2048Config()
	}
	config.ApplyT2048Preset(&cfg, difficultyPreset)
	if g.variant == VariantClassic {
		config.ApplyT2048Preset(&cfg, config.DifficultyClassic)
	}
	if cfg.Agent.EveryTicks < 1 {
		cfg.Agent.EveryTicks = 1
	}
	g.cfg = cfg
}

// spawnPolicy returns the policy for the next spawn.
func (g *Game) spawnPolicy() board.SpawnPolicy {
	if g.difficulty.IsEnabled() {
		return g.difficulty.Policy(g.score(), g.moves())
	}
	return g.cfg.SpawnPolicy()
}

func (g *Game) newAgent() agent.Agent {
	opts := agent.Options{Depth: g.cfg.Agent.Depth, Samples: g.cfg.Agent.Samples}
	a, err := agent.New(agent.Kind(g.cfg.Agent.Kind), g.rng, opts)
	if err != nil {
		return agent.NewRandom(g.rng)
	}
	return a
}

// Resize adapts to a new screen size, keeping the game in progress.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

// checkScreenSize checks if the screen is large enough.
func (g *Game) checkScreenSize() {
	// Minimum size: board (21 wide, 9 tall) + HUD (4 lines)
	minW := 25
	minH := 14
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	// Restart is handled by the platform
	if in.Has(core.ActionRestart) || g.board.IsGameOver() {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionConfirm) {
		g.autopilot = !g.autopilot
		g.lastAuto = g.tick
	}

	moved := false
	if dir, ok := directionFor(in); ok {
		moved = g.move(dir)
	} else if g.autopilot && g.tick-g.lastAuto >= uint64(g.cfg.Agent.EveryTicks) {
		g.lastAuto = g.tick
		moved = g.autoMove()
	}

	return core.StepResult{State: g.State(), Moved: moved}
}

// directionFor maps the first directional action in the frame to a direction.
func directionFor(in core.InputFrame) (board.Direction, bool) {
	switch {
	case in.Has(core.ActionUp):
		return board.Up, true
	case in.Has(core.ActionDown):
		return board.Down, true
	case in.Has(core.ActionLeft):
		return board.Left, true
	case in.Has(core.ActionRight):
		return board.Right, true
	}
	return 0, false
}

// autoMove lets the agent choose a direction within the configured budget.
func (g *Game) autoMove() bool {
	ctx := context.Background()
	if g.cfg.Agent.Budget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.cfg.Agent.Budget)
		defer cancel()
	}

	dir, err := g.agent.ChooseDirection(ctx, g.board)
	if err != nil {
		return false
	}
	return g.move(dir)
}

// move applies one turn: slide, spawn on change, re-evaluate.
func (g *Game) move(dir board.Direction) bool {
	changed, err := g.board.ApplyMove(dir)
	if err != nil || !changed {
		// Board didn't change - don't spawn new tile
		return false
	}

	if g.difficulty.IsEnabled() {
		//nolint:errcheck // Difficulty policies are always valid
		g.board.SetPolicy(g.spawnPolicy())
	}
	// A productive move always leaves an empty cell.
	//nolint:errcheck
	g.board.SpawnTile()
	g.board.CheckGameState()
	return true
}

func (g *Game) score() int {
	if g.board == nil {
		return 0
	}
	return g.board.Score()
}

func (g *Game) moves() int {
	if g.board == nil {
		return 0
	}
	return g.board.Moves()
}

// Autopilot reports whether the agent is playing.
func (g *Game) Autopilot() bool {
	return g.autopilot
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := core.GameState{
		Score:    g.board.Score(),
		MaxTile:  g.board.MaxTile(),
		Moves:    g.board.Moves(),
		GameOver: g.board.IsGameOver(),
		Paused:   g.paused || g.tooSmall,
	}
	if g.autopilot {
		st.Agent = g.agent.Name()
	}
	return st
}
