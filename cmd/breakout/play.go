package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a game in the current terminal.

Controls:
  Left/A/H    - Move paddle left
  Right/D/L   - Move paddle right
  Any key     - Start (while paused)
  R           - Restart (after game over or win)
  Ctrl+S      - Save screenshot
  ?           - Toggle help
  Q/Ctrl+C    - Quit

Logs go to --log-file, since stderr belongs to the game screen.

Examples:
  breakout play
  breakout play --layout checker
  breakout play --seed 42 --config ./my-breakout.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, _ []string) error {
	logger, err := newLogger("breakout", nil)
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	journal, closeJournal := openJournal(logger)
	defer closeJournal()

	rt := runtimeConfig()
	return tui.Run(cfg, tui.Options{
		Seed:        rt.Seed,
		Layout:      flagLayout,
		RefreshRate: rt.RefreshRate,
		Journal:     journal,
		Logger:      logger,
	}, rt.ScreenW, rt.ScreenH)
}
