// breakout is a brick-breaking arcade game for the terminal, SSH and the browser.
//
// Usage:
//
//	breakout play            - Play in this terminal
//	breakout serve           - Start SSH server for remote play
//	breakout web             - Start WebSocket server for browser play
//	breakout demo            - Let the autopilot play a headless game
//	breakout history         - Show recent sessions
//	breakout layouts         - List brick layouts
//
// Global flags:
//
//	--refresh <rate>   - Display refresh rate (default: 120)
//	--seed <value>     - Set RNG seed for reproducible brick colors
//	--layout <name>    - Brick layout (default: from config)
//	--config <path>    - Custom game config YAML
//	--db <path>        - Journal database path (default: ~/.breakout/journal.db)
//	--log-level <lvl>  - debug, info, warn or error
//	--log-file <path>  - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
	"github.com/vovakirdan/tui-breakout/internal/session"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

var (
	// Global flags
	flagRefresh  int
	flagSeed     int64
	flagLayout   string
	flagConfig   string
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
)

// logFile is the open --log-file, closed on exit.
var logFile *os.File

func main() {
	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "breakout",
	Short: "Breakout - break bricks in your terminal",
	Long: `Breakout is a brick-breaking arcade game. Keep the ball in play with
the paddle until every brick is gone.

Available commands:
  play      - Play in this terminal
  serve     - Start SSH server for remote play
  web       - Start WebSocket server for browser play
  demo      - Watch the autopilot play a headless game
  history   - View recent sessions
  layouts   - List brick layouts

Examples:
  breakout play
  breakout play --layout pyramid --seed 42
  breakout serve --ssh :2222
  breakout web --http :8080
  breakout demo --seed 7`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if flagLayout != "" {
			if _, ok := breakout.LayoutByName(flagLayout); !ok {
				return fmt.Errorf("unknown layout %q (run 'breakout layouts')", flagLayout)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagRefresh, "refresh", core.DefaultConfig().RefreshRate, "Display refresh rate (callbacks per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLayout, "layout", "", "Brick layout (default: from config)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultDBPath(), "Path to session journal database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(layoutsCmd)
}

// runtimeConfig collects host-side settings from flags and the terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.RefreshRate = flagRefresh
	cfg.Seed = flagSeed
	return cfg
}

// newLogger builds a logger writing to --log-file, or to fallback when no
// file is given. A nil fallback discards.
func newLogger(prefix string, fallback io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	w := fallback
	if flagLogFile != "" {
		if logFile == nil {
			logFile, err = os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
			if err != nil {
				return nil, fmt.Errorf("cannot open log file: %w", err)
			}
		}
		w = logFile
	}
	if w == nil {
		w = io.Discard
	}

	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	}), nil
}

// loadConfig loads the game config, applying --layout.
func loadConfig() (config.BreakoutConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, fmt.Errorf("cannot load config: %w", err)
	}
	if flagLayout != "" {
		cfg.Bricks.Layout = flagLayout
	}
	return cfg, nil
}

// openJournal opens the session journal. The game still works without one,
// so failures are logged and a nil journal is returned.
func openJournal(logger *log.Logger) (session.Journal, func()) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open session journal", "path", flagDBPath, "err", err)
		return nil, func() {}
	}
	return store, func() { store.Close() }
}
