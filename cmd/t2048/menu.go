package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a variant and difficulty interactively",
	Long: `Start in interactive menu mode.

Choose a variant, then a difficulty. After a game ends you return to the
menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  B            - Back to variants
  Q            - Quit`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	cfg := terminalConfig()

	for {
		selection, err := tui.RunMenu(cfg.ScreenW, cfg.ScreenH)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if selection == nil {
			return
		}

		// A menu choice overrides --difficulty for this game only.
		if selection.Difficulty != "" {
			t2048.SetDifficultyPreset(selection.Difficulty)
		} else {
			t2048.SetDifficultyPreset(preset)
		}

		if err := playGame(selection.GameID, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}

		cfg = terminalConfig()
	}
}
