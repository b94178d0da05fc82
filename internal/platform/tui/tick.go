// Package tui provides the Bubble Tea integration for the breakout game.
// It handles the terminal UI loop, input mapping and session orchestration.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// RefreshMsg is the display refresh signal. Each one is offered to the
// session's scheduler, which decides whether a simulation step is due.
type RefreshMsg time.Time

// refreshCmd returns a Bubble Tea command that sends a refresh message after
// one display interval.
func refreshCmd(rate int) tea.Cmd {
	interval := time.Second / time.Duration(rate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return RefreshMsg(t)
	})
}
