// Package runner drives a board to the end of a game: the interactive
// console loop and headless agent play, alone or in parallel batches.
//
// Every turn follows the same sequence: choose a direction, apply it, and
// only if the grid changed spawn a tile and re-check the terminal state.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tui-2048/internal/agent"
	"github.com/vovakirdan/tui-2048/internal/board"
	"github.com/vovakirdan/tui-2048/internal/config"
)

// Result summarizes one finished (or abandoned) game.
type Result struct {
	Seed     int64
	Score    int
	MaxTile  int
	Moves    int
	Agent    string
	Finished bool // false if input ended before the game did
	Duration time.Duration
}

// Options configures how a game is driven.
type Options struct {
	// Budget limits each agent decision; zero means no limit.
	Budget time.Duration

	// Difficulty, when enabled, replaces the spawn policy before every spawn.
	Difficulty *config.DifficultyManager

	// Logger receives per-move debug output; nil discards it.
	Logger *log.Logger
}

func (o Options) logger() *log.Logger {
	if o.Logger == nil {
		return log.New(io.Discard)
	}
	return o.Logger
}

// turn applies dir and, if the grid changed, spawns and re-checks the state.
func turn(b *board.Board, dir board.Direction, diff *config.DifficultyManager) (bool, error) {
	changed, err := b.ApplyMove(dir)
	if err != nil || !changed {
		return false, err
	}

	if diff != nil && diff.IsEnabled() {
		if err := b.SetPolicy(diff.Policy(b.Score(), b.Moves())); err != nil {
			return true, err
		}
	}
	if _, err := b.SpawnTile(); err != nil {
		return true, err
	}
	b.CheckGameState()
	return true, nil
}

// Console plays a game with a (usually human) agent, printing the board
// before every prompt. Invalid input and moves that change nothing are
// reported on out and asked again. End of input stops the game early
// without an error.
func Console(ctx context.Context, b *board.Board, a agent.Agent, out io.Writer, opts Options) (Result, error) {
	start := time.Now()
	res := Result{Agent: a.Name()}
	finish := func() Result {
		res.Score, res.MaxTile, res.Moves = b.Score(), b.MaxTile(), b.Moves()
		res.Duration = time.Since(start)
		return res
	}

	for !b.IsGameOver() {
		fmt.Fprintf(out, "\nScore: %d\n%s", b.Score(), FormatRows(b.Render()))

		dir, err := a.ChooseDirection(ctx, b)
		switch {
		case errors.Is(err, board.ErrInvalidDirection):
			fmt.Fprintln(out, "Please enter 1, 2, 3 or 4.")
			continue
		case errors.Is(err, io.EOF):
			return finish(), nil
		case err != nil:
			return finish(), err
		}

		changed, err := turn(b, dir, opts.Difficulty)
		if err != nil {
			return finish(), err
		}
		if !changed {
			fmt.Fprintf(out, "Nothing moves %s, try another direction.\n", strings.ToLower(dir.String()))
		}
	}

	fmt.Fprintf(out, "\n%sGame over! Final score: %d, max tile: %d\n", FormatRows(b.Render()), b.Score(), b.MaxTile())
	res.Finished = true
	return finish(), nil
}

// Autoplay lets an agent play until the game ends or ctx is cancelled.
func Autoplay(ctx context.Context, b *board.Board, a agent.Agent, opts Options) (Result, error) {
	start := time.Now()
	logger := opts.logger()
	res := Result{Agent: a.Name()}

	for !b.IsGameOver() {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		dir, err := decide(ctx, b, a, opts.Budget)
		if err != nil {
			return res, fmt.Errorf("runner: move %d: %w", b.Moves()+1, err)
		}

		changed, err := turn(b, dir, opts.Difficulty)
		if err != nil {
			return res, fmt.Errorf("runner: move %d: %w", b.Moves()+1, err)
		}
		if !changed {
			// Agents only choose valid moves; stop rather than loop forever.
			return res, fmt.Errorf("runner: %s chose unproductive move %v", a.Name(), dir)
		}
		logger.Debug("move", "n", b.Moves(), "dir", dir, "score", b.Score(), "max", b.MaxTile())
	}

	res.Score, res.MaxTile, res.Moves = b.Score(), b.MaxTile(), b.Moves()
	res.Finished = true
	res.Duration = time.Since(start)
	return res, nil
}

// decide asks the agent for a direction within budget.
func decide(ctx context.Context, b *board.Board, a agent.Agent, budget time.Duration) (board.Direction, error) {
	if budget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, budget)
		defer cancel()
	}
	return a.ChooseDirection(ctx, b)
}

// Game creates the board and agent for one game of a batch.
type Game func(rng *rand.Rand) (*board.Board, agent.Agent, error)

// Batch plays n games concurrently, at most parallel at a time, seeding
// game i with seed+i. Results are returned in game order. The first error
// cancels the remaining games.
func Batch(ctx context.Context, n int, seed int64, parallel int, newGame Game, opts Options) ([]Result, error) {
	results := make([]Result, n)
	logger := opts.logger()

	g, ctx := errgroup.WithContext(ctx)
	if parallel > 0 {
		g.SetLimit(parallel)
	}

	for i := range n {
		g.Go(func() error {
			gameSeed := seed + int64(i)
			b, a, err := newGame(rand.New(rand.NewSource(gameSeed)))
			if err != nil {
				return err
			}

			res, err := Autoplay(ctx, b, a, opts)
			if err != nil {
				return fmt.Errorf("game %d: %w", i+1, err)
			}
			res.Seed = gameSeed
			results[i] = res

			logger.Info("game finished", "game", i+1, "seed", gameSeed, "score", res.Score,
				"max_tile", res.MaxTile, "moves", res.Moves, "took", res.Duration.Round(time.Millisecond))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// FormatRows renders the grid one row per line, empty cells as 0, the way
// the console driver shows it.
func FormatRows(g [board.Size][board.Size]int) string {
	var sb strings.Builder
	for _, row := range g {
		for c, v := range row {
			if c > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%5d", v)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Summary aggregates a batch of results.
type Summary struct {
	Games     int
	BestScore int
	MeanScore float64
	Reached   map[int]int // tile value -> games whose max tile was at least that
}

// Summarize aggregates results for reporting.
func Summarize(results []Result) Summary {
	s := Summary{Games: len(results), Reached: make(map[int]int)}
	total := 0
	for _, r := range results {
		total += r.Score
		s.BestScore = max(s.BestScore, r.Score)
		for tile := 2; tile <= r.MaxTile; tile *= 2 {
			s.Reached[tile]++
		}
	}
	if len(results) > 0 {
		s.MeanScore = float64(total) / float64(len(results))
	}
	return s
}
