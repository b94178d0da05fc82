package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// KeyMap defines the key bindings for play.
type KeyMap struct {
	Left       key.Binding
	Right      key.Binding
	Restart    key.Binding
	Screenshot key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Restart, k.Quit, k.Help}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right},
		{k.Restart, k.Screenshot, k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "a", "h"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d", "l"),
			key.WithHelp("→/d", "right"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "new game"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("^s", "screenshot"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Direction maps a key message to a game key. Anything that is not a
// direction is KeyOther, which still starts a paused game.
func (k KeyMap) Direction(msg tea.KeyMsg) core.Key {
	switch {
	case key.Matches(msg, k.Left):
		return core.KeyLeft
	case key.Matches(msg, k.Right):
		return core.KeyRight
	default:
		return core.KeyOther
	}
}

// keyReleaser synthesizes key-up events. Terminals only report presses
// (and auto-repeats), so a direction counts as held until no press has
// arrived for the release window.
type keyReleaser struct {
	after   time.Duration
	pressed map[core.Key]time.Time
}

func newKeyReleaser(after time.Duration) *keyReleaser {
	return &keyReleaser{after: after, pressed: make(map[core.Key]time.Time)}
}

// Press records a press or auto-repeat of k.
func (r *keyReleaser) Press(k core.Key, now time.Time) {
	r.pressed[k] = now
}

// Expired returns the keys whose window has elapsed and forgets them.
// Keys are returned in a fixed order.
func (r *keyReleaser) Expired(now time.Time) []core.Key {
	var out []core.Key
	for _, k := range []core.Key{core.KeyLeft, core.KeyRight} {
		at, ok := r.pressed[k]
		if !ok || now.Sub(at) < r.after {
			continue
		}
		delete(r.pressed, k)
		out = append(out, k)
	}
	return out
}

// Reset forgets all presses.
func (r *keyReleaser) Reset() {
	clear(r.pressed)
}
