package agent

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-2048/internal/board"
)

// Random picks uniformly among the valid directions.
type Random struct {
	rng *rand.Rand
}

// NewRandom creates a random agent drawing from rng.
func NewRandom(rng *rand.Rand) *Random {
	return &Random{rng: rng}
}

// Name returns "random".
func (r *Random) Name() string {
	return string(KindRandom)
}

// ChooseDirection returns a uniformly chosen valid direction.
func (r *Random) ChooseDirection(_ context.Context, b *board.Board) (board.Direction, error) {
	if err := checkPlayable(b); err != nil {
		return 0, err
	}

	moves := b.ValidMoves()
	if len(moves) == 0 {
		return 0, fmt.Errorf("%w: no valid move", board.ErrIllegalState)
	}
	return moves[r.rng.Intn(len(moves))], nil
}
