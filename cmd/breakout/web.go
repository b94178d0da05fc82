package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/platform/web"
)

var flagHTTPAddr string

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the breakout WebSocket server",
	Long: `Start an HTTP server with a browser client at / and the game
WebSocket at /ws. Each connection plays its own game.

Examples:
  breakout web                 # Listen on :8080
  breakout web --http :9000    # Listen on port 9000`,
	Args: cobra.NoArgs,
	RunE: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagHTTPAddr, "http", web.DefaultServerConfig().Address, "HTTP server address (host:port)")
}

func runWeb(_ *cobra.Command, _ []string) error {
	logger, err := newLogger("breakout-web", os.Stderr)
	if err != nil {
		return err
	}
	game, err := loadConfig()
	if err != nil {
		return err
	}

	journal, closeJournal := openJournal(logger)
	defer closeJournal()

	// Browser displays refresh near 60Hz; --refresh only applies when set.
	refresh := web.DefaultServerConfig().RefreshRate
	if rootCmd.PersistentFlags().Changed("refresh") {
		refresh = flagRefresh
	}

	server := web.NewServer(web.ServerConfig{
		Address:     flagHTTPAddr,
		Seed:        flagSeed,
		Layout:      flagLayout,
		RefreshRate: refresh,
	}, game, journal, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	fmt.Printf("Open http://localhost%s in a browser\n", flagHTTPAddr)
	fmt.Println("Press Ctrl+C to stop")

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-done:
	}

	logger.Info("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(ctx)
}
