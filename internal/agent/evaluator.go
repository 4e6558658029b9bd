package agent

import (
	"math"

	"github.com/vovakirdan/tui-2048/internal/board"
)

// Evaluator scores a grid; higher is better.
type Evaluator interface {
	Evaluate(g board.Grid) float64
}

// EvaluatorFunc adapts a function to Evaluator.
type EvaluatorFunc func(g board.Grid) float64

// Evaluate calls f(g).
func (f EvaluatorFunc) Evaluate(g board.Grid) float64 {
	return f(g)
}

// Weighted combines several evaluators with coefficients.
type Weighted struct {
	Terms []WeightedTerm
}

// WeightedTerm is one evaluator and its coefficient.
type WeightedTerm struct {
	Evaluator Evaluator
	Weight    float64
}

// Evaluate returns the weighted sum of all terms.
func (w Weighted) Evaluate(g board.Grid) float64 {
	score := 0.0
	for _, t := range w.Terms {
		score += t.Weight * t.Evaluator.Evaluate(g)
	}
	return score
}

// DefaultEvaluator favours free space, rows and columns ordered toward a
// corner, smooth neighbours and a large top tile.
func DefaultEvaluator() Evaluator {
	return Weighted{Terms: []WeightedTerm{
		{Evaluator: EmptyCells, Weight: 2.7},
		{Evaluator: Monotonicity, Weight: 1.0},
		{Evaluator: Smoothness, Weight: 0.1},
		{Evaluator: MaxTile, Weight: 1.0},
	}}
}

// EmptyCells counts empty cells.
var EmptyCells EvaluatorFunc = func(g board.Grid) float64 {
	return float64(len(g.EmptyCells()))
}

// MaxTile is log2 of the highest tile.
var MaxTile EvaluatorFunc = func(g board.Grid) float64 {
	return log2(g.MaxTile())
}

// Monotonicity rewards lines whose log values only rise or only fall.
// Each axis takes the better of its two orderings, so any corner works.
var Monotonicity EvaluatorFunc = func(g board.Grid) float64 {
	var inc, dec [2]float64

	for i := range board.Size {
		for j := 0; j < board.Size-1; j++ {
			// rows
			a, b := log2(g[i][j]), log2(g[i][j+1])
			if a > b {
				dec[0] += b - a
			} else {
				inc[0] += a - b
			}
			// columns
			a, b = log2(g[j][i]), log2(g[j+1][i])
			if a > b {
				dec[1] += b - a
			} else {
				inc[1] += a - b
			}
		}
	}

	return math.Max(inc[0], dec[0]) + math.Max(inc[1], dec[1])
}

// Smoothness penalizes log-value differences between occupied neighbours.
var Smoothness EvaluatorFunc = func(g board.Grid) float64 {
	penalty := 0.0

	for r := range board.Size {
		for c := range board.Size {
			v := g[r][c]
			if v == 0 {
				continue
			}
			lv := log2(v)
			if c < board.Size-1 && g[r][c+1] != 0 {
				penalty += math.Abs(lv - log2(g[r][c+1]))
			}
			if r < board.Size-1 && g[r+1][c] != 0 {
				penalty += math.Abs(lv - log2(g[r+1][c]))
			}
		}
	}

	return -penalty
}

func log2(v int) float64 {
	if v <= 0 {
		return 0
	}
	return math.Log2(float64(v))
}
