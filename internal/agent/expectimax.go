package agent

import (
	"context"
	"math"
	"math/rand"

	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tui-2048/internal/board"
)

// lossPenalty is subtracted from the evaluation of terminal grids.
const lossPenalty = 1e4

// Expectimax searches a fixed number of player moves ahead, averaging over
// tile spawns at chance nodes. The valid first moves are searched in
// parallel, each on its own copy of the grid.
//
// When ctx expires mid-search the best fully searched first move is
// returned; if none finished, the random policy decides.
type Expectimax struct {
	depth    int
	samples  int
	eval     Evaluator
	fallback *Random
}

// NewExpectimax creates an expectimax agent. rng drives only the fallback.
func NewExpectimax(rng *rand.Rand, opts Options) *Expectimax {
	if opts.Depth < 1 {
		opts.Depth = 1
	}
	if opts.Evaluator == nil {
		opts.Evaluator = DefaultEvaluator()
	}
	return &Expectimax{
		depth:    opts.Depth,
		samples:  opts.Samples,
		eval:     opts.Evaluator,
		fallback: NewRandom(rng),
	}
}

// Name returns "expectimax".
func (e *Expectimax) Name() string {
	return string(KindExpectimax)
}

// ChooseDirection returns the valid direction with the highest expected value.
func (e *Expectimax) ChooseDirection(ctx context.Context, b *board.Board) (board.Direction, error) {
	if err := checkPlayable(b); err != nil {
		return 0, err
	}

	type candidate struct {
		dir   board.Direction
		grid  board.Grid
		value float64
		done  bool
	}

	var candidates []candidate
	for d, next := range b.Successors() {
		candidates = append(candidates, candidate{dir: d, grid: next.Grid()})
	}
	if len(candidates) == 1 {
		return candidates[0].dir, nil
	}

	s := search{eval: e.eval, samples: e.samples, spawns: b.Policy().Probabilities()}

	var g errgroup.Group
	for i := range candidates {
		g.Go(func() error {
			v, ok := s.chance(ctx, candidates[i].grid, e.depth-1)
			candidates[i].value = v
			candidates[i].done = ok
			return nil
		})
	}
	//nolint:errcheck // Workers never return errors
	g.Wait()

	best := -1
	for i, c := range candidates {
		if c.done && (best < 0 || c.value > candidates[best].value) {
			best = i
		}
	}
	if best < 0 {
		return e.fallback.ChooseDirection(ctx, b)
	}
	return candidates[best].dir, nil
}

// search holds the read-only parameters shared by one search's workers.
type search struct {
	eval    Evaluator
	samples int
	spawns  []board.WeightedValue
}

// chance averages the value of every sampled spawn on grid.
// The second result is false if ctx expired before the subtree finished.
func (s search) chance(ctx context.Context, grid board.Grid, depth int) (float64, bool) {
	empty := grid.EmptyCells()
	if len(empty) == 0 || depth <= 0 {
		return s.eval.Evaluate(grid), true
	}

	cells := sampleCells(empty, s.samples)
	total := 0.0
	for _, cell := range cells {
		for _, sp := range s.spawns {
			next := grid
			next[cell.Row][cell.Col] = sp.Value
			v, ok := s.max(ctx, next, depth)
			if !ok {
				return 0, false
			}
			total += sp.Weight * v
		}
	}

	return total / float64(len(cells)), true
}

// max returns the value of the best move from grid.
func (s search) max(ctx context.Context, grid board.Grid, depth int) (float64, bool) {
	if ctx.Err() != nil {
		return 0, false
	}

	best := math.Inf(-1)
	moved := false
	for _, d := range board.Directions {
		next, _, changed := grid.Slide(d)
		if !changed {
			continue
		}
		moved = true

		v, ok := s.chance(ctx, next, depth-1)
		if !ok {
			return 0, false
		}
		best = math.Max(best, v)
	}

	if !moved {
		return s.eval.Evaluate(grid) - lossPenalty, true
	}
	return best, true
}

// sampleCells picks up to n cells spread evenly over cells (n <= 0 keeps all).
func sampleCells(cells []board.Cell, n int) []board.Cell {
	if n <= 0 || len(cells) <= n {
		return cells
	}

	out := make([]board.Cell, 0, n)
	step := len(cells) / n
	for i := 0; i < len(cells) && len(out) < n; i += step {
		out = append(out, cells[i])
	}
	return out
}
