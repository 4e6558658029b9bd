package main

import (
	"fmt"
	"math/rand"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/agent"
	"github.com/vovakirdan/tui-2048/internal/board"
	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/runner"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Play 2048 one typed move at a time",
	Long: `Play on plain stdin/stdout without a full-screen UI.

The board is printed before every move. Enter a number and press Enter:
  1 - Up
  2 - Right
  3 - Down
  4 - Left

The game ends when no move is possible, or at end of input (Ctrl+D).

Examples:
  t2048 console
  t2048 console --seed 7 --difficulty classic`,
	Args: cobra.NoArgs,
	RunE: runConsole,
}

func runConsole(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	diff := difficultyFor(cfg)

	s := seed()
	b, err := board.New(rand.New(rand.NewSource(s)), startPolicy(cfg, diff))
	if err != nil {
		return err
	}
	logger.Debug("console game", "seed", s, "difficulty", preset)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	res, err := runner.Console(ctx, b, agent.NewHuman(os.Stdin, os.Stdout), os.Stdout, runner.Options{
		Difficulty: diff,
		Logger:     logger,
	})
	if err != nil {
		return err
	}
	if !res.Finished {
		fmt.Printf("\nStopped after %d moves with %d points.\n", res.Moves, res.Score)
	}

	gameID := string(t2048.VariantStandard)
	if preset == config.DifficultyClassic {
		gameID = string(t2048.VariantClassic)
	}
	saveResults(gameID, []runner.Result{res})
	return nil
}

// saveResults stores every finished result under gameID. Storage problems
// are logged, never fatal.
func saveResults(gameID string, results []runner.Result) {
	store := openStore()
	if store == nil {
		return
	}
	defer closeStore(store)

	for _, r := range results {
		if !r.Finished {
			continue
		}
		_, err := store.SaveResult(storage.Result{
			GameID:  gameID,
			Score:   r.Score,
			MaxTile: r.MaxTile,
			Moves:   r.Moves,
			Agent:   r.Agent,
		})
		if err != nil {
			logger.Warn("could not save score", "game", gameID, "err", err)
			return
		}
	}
}

