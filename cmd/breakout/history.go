package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/platform/tui"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

var (
	flagPlain bool
	flagClear bool
	flagLimit int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent sessions",
	Long: `Display the session journal: how each recent game ended, with the
layout, bricks destroyed, steps and play time.

Examples:
  breakout history
  breakout history --plain --limit 50
  breakout history --clear`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a plain table instead of the interactive view")
	historyCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every recorded session")
	historyCmd.Flags().IntVar(&flagLimit, "limit", 20, "Number of sessions to print with --plain")
}

func runHistory(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("cannot open session journal: %w", err)
	}
	defer store.Close()

	ctx := context.Background()

	if flagClear {
		if err := store.ClearSessions(ctx); err != nil {
			return fmt.Errorf("cannot clear sessions: %w", err)
		}
		fmt.Println("Session journal cleared.")
		return nil
	}

	if !flagPlain {
		rt := runtimeConfig()
		return tui.RunHistory(store, rt.ScreenW, rt.ScreenH)
	}

	records, err := store.RecentSessions(ctx, flagLimit)
	if err != nil {
		return fmt.Errorf("cannot read sessions: %w", err)
	}
	if len(records) == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Println("Play 'breakout play' to start the journal!")
		return nil
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		return fmt.Errorf("cannot read stats: %w", err)
	}
	fmt.Fprint(os.Stdout, tui.PlainHistory(records, stats))
	return nil
}
