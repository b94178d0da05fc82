package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
)

var layoutsCmd = &cobra.Command{
	Use:   "layouts",
	Short: "List brick layouts",
	Long:  `Shows every brick layout with the number of bricks it places on the configured grid.`,
	Args:  cobra.NoArgs,
	RunE:  runLayouts,
}

func runLayouts(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("cannot load config: %w", err)
	}

	layouts := breakout.Layouts()

	// Calculate column widths
	maxNameLen := 4 // "Name" header
	for _, l := range layouts {
		if len(l.Name)+1 > maxNameLen {
			maxNameLen = len(l.Name) + 1 // room for the default marker
		}
	}

	fmt.Printf("Layouts for a %dx%d grid:\n", cfg.Bricks.Cols, cfg.Bricks.Rows)
	fmt.Println()
	fmt.Printf("  %-*s  %-6s  %s\n", maxNameLen, "Name", "Bricks", "Description")
	fmt.Printf("  %-*s  %-6s  %s\n", maxNameLen, "----", "------", "-----------")

	for _, l := range layouts {
		name := l.Name
		if name == cfg.Bricks.Layout {
			name += "*"
		}
		fmt.Printf("  %-*s  %-6d  %s\n", maxNameLen, name, countBricks(l, cfg.Bricks.Cols, cfg.Bricks.Rows), l.Description)
	}

	fmt.Println()
	fmt.Println("* default. Run 'breakout play --layout <name>' to pick one.")
	return nil
}

func countBricks(l breakout.Layout, cols, rows int) int {
	n := 0
	for c := 0; c < cols; c++ {
		for r := 0; r < rows; r++ {
			if l.Has(c, r) {
				n++
			}
		}
	}
	return n
}
