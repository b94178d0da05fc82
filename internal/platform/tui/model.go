package tui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-breakout/internal/clock"
	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/session"
)

// helpRows is the number of rows reserved below the game for the help bar.
const helpRows = 1

// Options configures a terminal model.
type Options struct {
	Seed        int64 // Zero picks a time-based seed per session
	Layout      string
	RefreshRate int // Display refresh rate in Hz
	Journal     session.Journal
	Logger      *log.Logger
	Time        clock.TimeSource
}

// Model is the Bubble Tea model for one terminal player. It owns the current
// session; restarting replaces it with a brand-new one.
type Model struct {
	cfg      config.BreakoutConfig
	opts     Options
	session  *session.Session
	screen   *core.Screen
	keys     KeyMap
	help     help.Model
	release  *keyReleaser
	logger   *log.Logger
	frame    *frameCache
	games    int // Sessions started, used to vary fixed seeds on restart
	quitting bool
}

// frameCache holds the last rendered game screen. Refreshes that run no
// step leave it as is.
type frameCache struct {
	text  string
	dirty bool
}

func (c *frameCache) invalidate() {
	c.dirty = true
}

// NewModel creates a model and its first session.
func NewModel(cfg config.BreakoutConfig, opts Options, width, height int) (Model, error) {
	if opts.RefreshRate <= 0 {
		opts.RefreshRate = core.DefaultConfig().RefreshRate
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	m := Model{
		cfg:     cfg,
		opts:    opts,
		screen:  core.NewScreen(width, core.Max(height-helpRows, 1)),
		keys:    DefaultKeyMap(),
		help:    help.New(),
		release: newKeyReleaser(cfg.Input.ReleaseAfter()),
		logger:  logger,
		frame:   &frameCache{dirty: true},
	}
	m.help.Width = width

	if err := m.newSession(); err != nil {
		return Model{}, err
	}
	return m, nil
}

// newSession replaces the current session with a fresh one.
func (m *Model) newSession() error {
	seed := m.opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	} else {
		seed += int64(m.games)
	}

	s, err := session.New(m.cfg, session.Options{
		Seed:    seed,
		Layout:  m.opts.Layout,
		Time:    m.opts.Time,
		Logger:  m.logger,
		Journal: m.opts.Journal,
	})
	if err != nil {
		return err
	}

	if m.session != nil {
		m.session.Close()
	}
	m.session = s
	m.games++
	m.release.Reset()
	m.frame.invalidate()
	return nil
}

// Init starts the refresh loop.
func (m Model) Init() tea.Cmd {
	return refreshCmd(m.opts.RefreshRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, core.Max(msg.Height-helpRows, 1))
		m.help.Width = msg.Width
		m.frame.invalidate()
		return m, nil

	case RefreshMsg:
		return m.handleRefresh(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.session.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil

	case key.Matches(msg, m.keys.Restart) && m.ended():
		if err := m.newSession(); err != nil {
			m.logger.Error("cannot start new session", "err", err)
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	k := m.keys.Direction(msg)
	m.session.KeyDown(k)
	m.frame.invalidate()
	if k != core.KeyOther {
		m.release.Press(k, m.now())
	}
	return m, nil
}

// handleRefresh runs the display refresh callback.
func (m Model) handleRefresh(now time.Time) (tea.Model, tea.Cmd) {
	for _, k := range m.release.Expired(now) {
		m.session.KeyUp(k)
	}

	stepped, err := m.session.Frame(now)
	if err != nil && !errors.Is(err, session.ErrClosed) {
		m.logger.Warn("frame skipped", "err", err)
	}
	if stepped {
		m.frame.invalidate()
	}

	return m, refreshCmd(m.opts.RefreshRate)
}

func (m Model) now() time.Time {
	if m.opts.Time != nil {
		return m.opts.Time.Now()
	}
	return time.Now()
}

func (m Model) ended() bool {
	select {
	case <-m.session.Done():
		return true
	default:
		return false
	}
}

// Session returns the current session.
func (m Model) Session() *session.Session {
	return m.session
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.session.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".breakout", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot create screenshot directory", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("breakout_%s.txt", timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.frame.dirty {
		m.session.Render(m.screen)
		m.frame.text = RenderScreen(m.screen)
		m.frame.dirty = false
	}

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return m.frame.text + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Run starts the Bubble Tea program with a new model.
func Run(cfg config.BreakoutConfig, opts Options, width, height int) error {
	model, err := NewModel(cfg, opts, width, height)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if m, ok := final.(Model); ok {
		m.session.Close()
	}
	return err
}
