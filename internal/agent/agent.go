// Package agent provides move choosers for the 2048 board: a human reading
// from a terminal, a uniform random policy, and an expectimax search.
// Drivers depend on the Agent interface and never on a concrete chooser.
package agent

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-2048/internal/board"
)

// Agent picks the next direction for a board.
//
// ChooseDirection must not mutate b. Calling it on a finished game returns
// board.ErrIllegalState; callers check b.IsGameOver first.
type Agent interface {
	// Name identifies the agent in logs and stored results.
	Name() string

	// ChooseDirection returns one of b's currently valid directions.
	ChooseDirection(ctx context.Context, b *board.Board) (board.Direction, error)
}

// Kind names an automatic agent implementation.
type Kind string

const (
	KindRandom     Kind = "random"
	KindExpectimax Kind = "expectimax"
)

// Options configures automatic agents built by New.
type Options struct {
	// Depth is the number of player moves the expectimax search looks ahead.
	Depth int

	// Samples caps the empty cells considered at each chance node (0 = all).
	Samples int

	// Evaluator scores leaf grids; nil uses DefaultEvaluator.
	Evaluator Evaluator
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{
		Depth:   3,
		Samples: 6,
	}
}

// New creates an automatic agent by kind.
func New(kind Kind, rng *rand.Rand, opts Options) (Agent, error) {
	switch kind {
	case KindRandom, "":
		return NewRandom(rng), nil
	case KindExpectimax:
		return NewExpectimax(rng, opts), nil
	default:
		return nil, fmt.Errorf("agent: unknown kind %q", kind)
	}
}

// checkPlayable returns ErrIllegalState for finished boards.
func checkPlayable(b *board.Board) error {
	if b.IsGameOver() {
		return fmt.Errorf("%w: game is over", board.ErrIllegalState)
	}
	return nil
}
