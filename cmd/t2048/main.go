// t2048 plays 2048 in the terminal, in a console, over SSH or headless.
//
// Usage:
//
//	t2048 list               - List available variants
//	t2048 play [variant]     - Play in the full-screen TUI
//	t2048 menu               - Pick a variant and difficulty interactively
//	t2048 console            - Play with numbered moves on stdin
//	t2048 auto               - Let an agent play a batch of games
//	t2048 serve              - Start SSH server for remote play
//	t2048 scores [variant]   - Show high scores
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 30)
//	--seed <value>        - Set RNG seed for reproducible games
//	--db <path>           - Set database path (default: ~/.t2048/scores.db)
//	--config <path>       - Use a custom 2048 config YAML
//	--difficulty <name>   - easy, normal, hard, fixed or classic
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/board"
	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string

	logger *log.Logger
	preset config.DifficultyPreset
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "t2048",
	Short: "2048 in your terminal",
	Long: `t2048 is the sliding tile puzzle for the terminal. Slide the board,
merge equal tiles and try to reach 2048 before the grid fills up.

Available commands:
  list     - Show all variants
  play     - Play a variant in the TUI
  menu     - Interactive variant and difficulty picker
  console  - Line-based play, 1=Up 2=Right 3=Down 4=Left
  auto     - Run an agent over many games and report results
  serve    - Start SSH server for remote play
  scores   - View high scores

Examples:
  t2048 play
  t2048 play 2048_classic
  t2048 console --seed 42
  t2048 auto --agent expectimax --games 20
  t2048 serve --ssh :2222`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.t2048/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom 2048 config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed, classic")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(consoleCmd)
	rootCmd.AddCommand(autoCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// setup builds the logger and hands the shared flags to the game package.
func setup(_ *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	logger = log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		Prefix:          "t2048",
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	})

	preset, err = config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}

	t2048.SetConfigPath(flagConfig)
	t2048.SetDifficultyPreset(preset)
	return nil
}

// loadConfig reads the 2048 config and applies --difficulty.
func loadConfig() (config.T2048Config, error) {
	cfg, err := config.LoadT2048(flagConfig)
	if err != nil {
		return cfg, err
	}
	config.ApplyT2048Preset(&cfg, preset)
	return cfg, nil
}

// difficultyFor returns the manager for cfg, or nil when it is disabled.
func difficultyFor(cfg config.T2048Config) *config.DifficultyManager {
	if !cfg.Difficulty.Enabled {
		return nil
	}
	return config.NewDifficultyManager(cfg.Difficulty)
}

// seed returns --seed, or the current time when it is unset.
func seed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}

// openStore opens the scores database. A failure is logged and yields nil;
// games still run without storage.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}

func closeStore(store *storage.Store) {
	if store == nil {
		return
	}
	if err := store.Close(); err != nil {
		logger.Warn("closing scores database", "err", err)
	}
}

// startPolicy is the spawn policy for a fresh board under cfg.
func startPolicy(cfg config.T2048Config, diff *config.DifficultyManager) board.SpawnPolicy {
	if diff != nil {
		return diff.Policy(0, 0)
	}
	return cfg.SpawnPolicy()
}
