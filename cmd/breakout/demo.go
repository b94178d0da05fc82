package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/clock"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
	"github.com/vovakirdan/tui-breakout/internal/session"
)

var flagMaxSteps int

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Let the autopilot play a headless game",
	Long: `Run a game without a display. The autopilot steers the paddle under
the ball until the game ends or --max-steps steps ran. Simulated time is
used, so the run finishes as fast as the machine allows and replays
identically for the same --seed.

A game cut off by --max-steps is journaled as abandoned.

Examples:
  breakout demo --seed 7
  breakout demo --layout frame --max-steps 50000`,
	Args: cobra.NoArgs,
	RunE: runDemo,
}

func init() {
	demoCmd.Flags().IntVar(&flagMaxSteps, "max-steps", 20000, "Stop after this many simulation steps")
}

func runDemo(_ *cobra.Command, _ []string) error {
	logger, err := newLogger("breakout-demo", os.Stderr)
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	journal, closeJournal := openJournal(logger)
	defer closeJournal()

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	mt := clock.NewManualTime(time.Now())
	sess, err := session.New(cfg, session.Options{
		Seed:    seed,
		Layout:  flagLayout,
		Time:    mt,
		Logger:  logger,
		Journal: journal,
	})
	if err != nil {
		return err
	}

	pilot := breakout.NewAutopilot()
	interval := cfg.Timing.StepInterval()
	game := sess.Game()

	for game.Steps() < flagMaxSteps {
		if _, ended := sess.Result(); ended {
			break
		}
		pilot.Drive(game)
		mt.Advance(interval)
		if _, err := sess.Tick(); err != nil {
			return err
		}
	}
	sess.Close()

	res, _ := sess.Result()
	outcome := res.Outcome.State.String()
	if res.Abandoned() {
		outcome = "stopped at step limit"
	}

	fmt.Printf("Session:   %s\n", res.ID)
	fmt.Printf("Seed:      %d\n", res.Seed)
	fmt.Printf("Layout:    %s\n", res.Layout)
	fmt.Printf("Outcome:   %s\n", outcome)
	fmt.Printf("Steps:     %d\n", res.Outcome.Steps)
	fmt.Printf("Bricks:    %d/%d destroyed\n", res.Outcome.Destroyed, res.Outcome.Total)
	fmt.Printf("Game time: %s\n", res.Duration.Round(time.Millisecond))
	return nil
}
