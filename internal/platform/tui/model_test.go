package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-breakout/internal/clock"
	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func newTestModel(t *testing.T, cfg config.BreakoutConfig) (Model, *clock.ManualTime) {
	t.Helper()
	mt := clock.NewManualTime(epoch)
	m, err := NewModel(cfg, Options{Seed: 5, Time: mt}, 80, 25)
	if err != nil {
		t.Fatalf("NewModel() failed: %v", err)
	}
	return m, mt
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

// refresh advances manual time and delivers one refresh.
func refresh(t *testing.T, m Model, mt *clock.ManualTime, d time.Duration) Model {
	t.Helper()
	mt.Advance(d)
	m, _ = update(t, m, RefreshMsg(mt.Now()))
	return m
}

func TestKeyMapDirection(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name     string
		msg      tea.KeyMsg
		expected core.Key
	}{
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.KeyLeft},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, core.KeyRight},
		{"a", runeKey('a'), core.KeyLeft},
		{"d", runeKey('d'), core.KeyRight},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.KeyOther},
		{"x", runeKey('x'), core.KeyOther},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := km.Direction(tc.msg); got != tc.expected {
				t.Errorf("Direction(%q) = %s, expected %s", tc.msg.String(), got, tc.expected)
			}
		})
	}
}

func TestKeyReleaser(t *testing.T) {
	r := newKeyReleaser(250 * time.Millisecond)
	r.Press(core.KeyLeft, epoch)
	r.Press(core.KeyRight, epoch.Add(100*time.Millisecond))

	if got := r.Expired(epoch.Add(200 * time.Millisecond)); len(got) != 0 {
		t.Errorf("nothing should expire yet, got %v", got)
	}

	got := r.Expired(epoch.Add(300 * time.Millisecond))
	if len(got) != 1 || got[0] != core.KeyLeft {
		t.Errorf("expected [Left], got %v", got)
	}

	// Auto-repeat keeps a key alive
	r.Press(core.KeyRight, epoch.Add(320*time.Millisecond))
	if got := r.Expired(epoch.Add(400 * time.Millisecond)); len(got) != 0 {
		t.Errorf("repeated key should stay held, got %v", got)
	}

	r.Reset()
	if got := r.Expired(epoch.Add(time.Hour)); len(got) != 0 {
		t.Errorf("Reset should forget presses, got %v", got)
	}
}

func TestModelRefreshDrivesSession(t *testing.T) {
	m, mt := newTestModel(t, config.DefaultBreakoutConfig())

	m, _ = update(t, m, runeKey('x'))
	if m.Session().State() != breakout.StatePlaying {
		t.Fatalf("any key should start, state = %s", m.Session().State())
	}

	m = refresh(t, m, mt, 10*time.Millisecond)
	if m.Session().Snapshot().Step != 0 {
		t.Error("refresh before one interval must not step")
	}

	m = refresh(t, m, mt, 7*time.Millisecond)
	if m.Session().Snapshot().Step != 1 {
		t.Errorf("Step = %d, expected 1", m.Session().Snapshot().Step)
	}
}

func TestModelRedrawsOnlyAfterStep(t *testing.T) {
	m, mt := newTestModel(t, config.DefaultBreakoutConfig())
	m, _ = update(t, m, runeKey('x'))

	before := m.View()
	if m.frame.dirty {
		t.Fatal("View should leave a clean frame")
	}

	m = refresh(t, m, mt, 10*time.Millisecond)
	if m.frame.dirty {
		t.Error("refresh without a step must not redraw")
	}
	if m.View() != before {
		t.Error("view should be reused while no step ran")
	}

	m = refresh(t, m, mt, 7*time.Millisecond)
	if !m.frame.dirty {
		t.Error("a step should mark the frame for redraw")
	}

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 60, Height: 20})
	m.View()
	if m.frame.dirty {
		t.Error("View should redraw after resize")
	}
}

func TestModelReleasesHeldKey(t *testing.T) {
	m, mt := newTestModel(t, config.DefaultBreakoutConfig())
	m, _ = update(t, m, runeKey('x'))

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = refresh(t, m, mt, 20*time.Millisecond)
	if x := m.Session().Snapshot().PaddleX; x != 204 {
		t.Fatalf("paddle X = %v, expected 204 while held", x)
	}

	// No repeat arrives within the release window.
	m = refresh(t, m, mt, 300*time.Millisecond)
	if x := m.Session().Snapshot().PaddleX; x != 204 {
		t.Errorf("paddle X = %v, released key must not move the paddle", x)
	}
}

func TestModelRestartAfterEnd(t *testing.T) {
	cfg := config.DefaultBreakoutConfig()
	cfg.Bricks.Cols = 1
	cfg.Bricks.Rows = 1
	cfg.Bricks.OffsetLeft = 300
	cfg.Bricks.OffsetTop = 280

	m, mt := newTestModel(t, cfg)
	first := m.Session()

	// Before the end, r is an ordinary key and starts the game.
	m, _ = update(t, m, runeKey('r'))
	if m.Session() != first {
		t.Fatal("r must not restart before the end")
	}

	for range 40 {
		m = refresh(t, m, mt, 17*time.Millisecond)
	}
	if first.State() != breakout.StateWin {
		t.Fatalf("expected win, state = %s", first.State())
	}

	m, _ = update(t, m, runeKey('r'))
	if m.Session() == first {
		t.Fatal("r after the end should start a new session")
	}
	if m.Session().ID() == first.ID() {
		t.Error("new session should have a new id")
	}
	if m.Session().State() != breakout.StatePaused {
		t.Errorf("new session state = %s, expected paused", m.Session().State())
	}
}

func TestModelQuitClosesSession(t *testing.T) {
	m, _ := newTestModel(t, config.DefaultBreakoutConfig())
	s := m.Session()

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if _, ended := s.Result(); !ended {
		t.Error("quit should close the session")
	}
	if m.View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestModelView(t *testing.T) {
	m, _ := newTestModel(t, config.DefaultBreakoutConfig())
	view := m.View()

	if !strings.Contains(view, "FPS") {
		t.Error("view should contain the frame rate")
	}
	if !strings.Contains(view, "quit") {
		t.Error("view should contain the help bar")
	}
}

func TestPlainHistory(t *testing.T) {
	records := []storage.Record{
		{ID: "a", Layout: "classic", Outcome: storage.OutcomeWin, Destroyed: 45, Total: 45, Steps: 4000, Duration: 67 * time.Second, CreatedAt: epoch},
	}
	out := PlainHistory(records, storage.Stats{Sessions: 1, Wins: 1})

	for _, want := range []string{"RESULT", "win", "classic", "45/45", "4000", "1 sessions, 1 won"} {
		if !strings.Contains(out, want) {
			t.Errorf("plain history missing %q:\n%s", want, out)
		}
	}
}
