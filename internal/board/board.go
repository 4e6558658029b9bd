// Package board implements the 2048 board engine: the 4x4 grid, the four
// slide-and-merge moves, random tile spawning, scoring and terminal-state
// detection.
//
// The engine never chains turn steps on its own. A driver validates and
// applies a move, spawns a tile, then reads the terminal state:
//
//	changed, err := b.ApplyMove(board.Left)
//	if err == nil && changed {
//		b.SpawnTile()
//	}
//	if b.IsGameOver() { ... }
package board

import (
	"fmt"
	"iter"
	"math/rand"
)

// Board is a single game's mutable state.
// A Board is not safe for concurrent use; take a Copy for each goroutine.
type Board struct {
	grid     Grid
	score    int
	gameOver bool
	moves    int

	rng    *rand.Rand
	policy SpawnPolicy
}

// New creates a board with two tiles spawned at random empty cells.
func New(rng *rand.Rand, policy SpawnPolicy) (*Board, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}

	b := &Board{rng: rng, policy: policy}
	for range 2 {
		if _, err := b.SpawnTile(); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// FromGrid creates a board holding grid, with score 0.
// The terminal state is evaluated immediately.
func FromGrid(grid Grid, rng *rand.Rand, policy SpawnPolicy) (*Board, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	for r := range Size {
		for c := range Size {
			if v := grid[r][c]; v != 0 && !isPowerOfTwo(v) {
				return nil, fmt.Errorf("board: tile %d at (%d, %d) is not a power of two", v, r, c)
			}
		}
	}

	b := &Board{grid: grid, rng: rng, policy: policy}
	b.CheckGameState()
	return b, nil
}

// ApplyMove slides and merges all tiles in dir, updating the score.
// It reports whether the grid changed; an unproductive move leaves the
// board untouched. ApplyMove does not spawn a tile.
func (b *Board) ApplyMove(dir Direction) (bool, error) {
	if !dir.Valid() {
		return false, fmt.Errorf("%w: %d", ErrInvalidDirection, int(dir))
	}

	next, gained, changed := b.grid.Slide(dir)
	if !changed {
		return false, nil
	}

	b.grid = next
	b.score += gained
	b.moves++
	b.CheckGameState()
	return true, nil
}

// CanMove reports whether dir would change the grid, without mutating it.
func (b *Board) CanMove(dir Direction) bool {
	_, _, changed := b.grid.Slide(dir)
	return changed
}

// SpawnTile places one tile at a uniformly random empty cell, drawing its
// value from the spawn policy. Returns ErrIllegalState on a full grid.
func (b *Board) SpawnTile() (Cell, error) {
	empty := b.grid.EmptyCells()
	if len(empty) == 0 {
		return Cell{}, fmt.Errorf("%w: no empty cell to spawn into", ErrIllegalState)
	}

	cell := empty[b.rng.Intn(len(empty))]
	b.grid[cell.Row][cell.Col] = b.policy.Sample(b.rng)
	b.CheckGameState()
	return cell, nil
}

// CheckGameState recomputes and caches the game-over flag.
func (b *Board) CheckGameState() bool {
	b.gameOver = b.grid.Terminal()
	return b.gameOver
}

// IsGameOver reports whether no move can change the board.
func (b *Board) IsGameOver() bool {
	return b.gameOver
}

// Score returns the sum of all merged tile values so far.
func (b *Board) Score() int {
	return b.score
}

// Moves returns the number of productive moves applied.
func (b *Board) Moves() int {
	return b.moves
}

// Grid returns a copy of the grid.
func (b *Board) Grid() Grid {
	return b.grid
}

// Render returns a read-only snapshot of the rows for display.
func (b *Board) Render() [Size][Size]int {
	return b.grid
}

// MaxTile returns the highest tile on the board.
func (b *Board) MaxTile() int {
	return b.grid.MaxTile()
}

// EmptyCells returns the coordinates of all empty cells.
func (b *Board) EmptyCells() []Cell {
	return b.grid.EmptyCells()
}

// ValidMoves returns the directions that would change the board.
func (b *Board) ValidMoves() []Direction {
	return b.grid.ValidMoves()
}

// Policy returns the board's spawn policy.
func (b *Board) Policy() SpawnPolicy {
	return b.policy
}

// SetPolicy replaces the spawn policy used by later spawns.
func (b *Board) SetPolicy(p SpawnPolicy) error {
	if err := p.Validate(); err != nil {
		return err
	}
	b.policy = p
	return nil
}

// Copy returns an independent deep copy of the board.
// The copy shares the random source, so spawning on both from different
// goroutines is not safe; moves and queries are.
func (b *Board) Copy() *Board {
	c := *b
	return &c
}

// Successors yields, for each valid direction in canonical order, a copy
// of the board with that move applied. No tile is spawned on the copies.
// The sequence can be ranged over any number of times.
func (b *Board) Successors() iter.Seq2[Direction, *Board] {
	return func(yield func(Direction, *Board) bool) {
		for _, d := range Directions {
			next := b.Copy()
			if changed, _ := next.ApplyMove(d); !changed {
				continue
			}
			if !yield(d, next) {
				return
			}
		}
	}
}

// String formats the board rows and score.
func (b *Board) String() string {
	return fmt.Sprintf("%sScore: %d\n", b.grid, b.score)
}
