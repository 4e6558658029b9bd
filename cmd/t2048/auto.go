package main

import (
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"runtime"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/agent"
	"github.com/vovakirdan/tui-2048/internal/board"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/runner"
)

var (
	flagAgent    string
	flagGames    int
	flagDepth    int
	flagSamples  int
	flagBudget   time.Duration
	flagParallel int
	flagNoSave   bool
)

var autoCmd = &cobra.Command{
	Use:   "auto",
	Short: "Let an agent play a batch of games",
	Long: `Run an automatic agent over several games and print a summary.

Game i of the batch is seeded with --seed + i, so a batch is reproducible
for random agents and for expectimax without a time budget.

Agents:
  random      - Picks any valid move
  expectimax  - Searches --depth moves ahead, averaging over spawns

Agent flags left at zero fall back to the config file.

Examples:
  t2048 auto
  t2048 auto --agent random --games 100 --seed 1
  t2048 auto --depth 4 --budget 500ms --parallel 4`,
	Args: cobra.NoArgs,
	RunE: runAuto,
}

func init() {
	autoCmd.Flags().StringVar(&flagAgent, "agent", "", "Agent: random or expectimax (default from config)")
	autoCmd.Flags().IntVar(&flagGames, "games", 1, "Number of games to play")
	autoCmd.Flags().IntVar(&flagDepth, "depth", 0, "Expectimax search depth")
	autoCmd.Flags().IntVar(&flagSamples, "samples", 0, "Empty cells sampled per chance node (0 = config)")
	autoCmd.Flags().DurationVar(&flagBudget, "budget", 0, "Time limit per move (0 = config)")
	autoCmd.Flags().IntVar(&flagParallel, "parallel", runtime.GOMAXPROCS(0), "Games played at once")
	autoCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not record results in the scores database")
}

func runAuto(cmd *cobra.Command, _ []string) error {
	if flagGames < 1 {
		return fmt.Errorf("--games must be at least 1")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ac := cfg.Agent
	if flagAgent != "" {
		ac.Kind = flagAgent
	}
	if flagDepth > 0 {
		ac.Depth = flagDepth
	}
	if flagSamples > 0 {
		ac.Samples = flagSamples
	}
	if flagBudget > 0 {
		ac.Budget = flagBudget
	}
	kind := agent.Kind(ac.Kind)
	opts := agent.Options{Depth: ac.Depth, Samples: ac.Samples}

	// Fail on a bad --agent before any game starts.
	if _, err := agent.New(kind, rand.New(rand.NewSource(0)), opts); err != nil {
		return err
	}

	newGame := func(rng *rand.Rand) (*board.Board, agent.Agent, error) {
		diff := difficultyFor(cfg)
		b, err := board.New(rng, startPolicy(cfg, diff))
		if err != nil {
			return nil, nil, err
		}
		a, err := agent.New(kind, rng, opts)
		return b, a, err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	logger.Info("starting batch", "agent", kind, "games", flagGames, "depth", ac.Depth, "budget", ac.Budget)
	start := time.Now()

	results, err := runner.Batch(ctx, flagGames, seed(), flagParallel, newGame, runner.Options{
		Budget:     ac.Budget,
		Difficulty: difficultyFor(cfg),
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	printSummary(results, time.Since(start))
	if !flagNoSave {
		saveResults(string(t2048.VariantAuto), results)
	}
	return nil
}

func printSummary(results []runner.Result, took time.Duration) {
	if len(results) == 1 {
		r := results[0]
		fmt.Printf("Seed %d: score %d, max tile %d, %d moves\n", r.Seed, r.Score, r.MaxTile, r.Moves)
	}

	s := runner.Summarize(results)
	fmt.Printf("Games: %d  Best: %d  Mean: %.1f  Time: %s\n", s.Games, s.BestScore, s.MeanScore, took.Round(time.Millisecond))

	tiles := make([]int, 0, len(s.Reached))
	for t := range s.Reached {
		tiles = append(tiles, t)
	}
	slices.Sort(tiles)
	for _, t := range tiles {
		if t < 128 {
			continue
		}
		fmt.Printf("  reached %5d: %3d/%d (%.0f%%)\n", t, s.Reached[t], s.Games, 100*float64(s.Reached[t])/float64(s.Games))
	}
}
