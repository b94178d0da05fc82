// Package session ties one game to its frame scheduler for the lifetime of
// a single play-through. A restart is a new Session.
package session

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-breakout/internal/clock"
	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

// ErrClosed is returned by Frame after Close.
var ErrClosed = errors.New("session: closed")

// journalTimeout bounds a journal write at session end.
const journalTimeout = 5 * time.Second

// Journal records ended sessions.
type Journal interface {
	RecordSession(ctx context.Context, r storage.Record) error
}

// Options configures a session.
type Options struct {
	Seed    int64
	Layout  string
	Time    clock.TimeSource // Defaults to the system clock
	Logger  *log.Logger      // Defaults to a discarding logger
	Journal Journal          // Optional
}

// Result describes how a session ended.
type Result struct {
	ID       uuid.UUID
	Seed     int64
	Layout   string
	Outcome  breakout.Outcome
	Duration time.Duration
}

// Abandoned reports whether the session was closed before the game ended.
func (r Result) Abandoned() bool {
	return !r.Outcome.State.Terminal()
}

// Record converts the result into a journal record.
func (r Result) Record() storage.Record {
	outcome := storage.OutcomeAbandoned
	switch r.Outcome.State {
	case breakout.StateWin:
		outcome = storage.OutcomeWin
	case breakout.StateOver:
		outcome = storage.OutcomeOver
	}
	return storage.Record{
		ID:        r.ID.String(),
		Seed:      r.Seed,
		Layout:    r.Layout,
		Outcome:   outcome,
		Steps:     r.Outcome.Steps,
		Destroyed: r.Outcome.Destroyed,
		Total:     r.Outcome.Total,
		Duration:  r.Duration,
	}
}

// Session owns one game and its scheduler.
// It is driven from a single goroutine.
type Session struct {
	id      uuid.UUID
	game    *breakout.Game
	sched   *clock.Scheduler
	time    clock.TimeSource
	logger  *log.Logger
	journal Journal

	started time.Time
	done    chan struct{}
	closed  bool
	ended   bool
	result  Result
	onEnd   []func(Result)
}

// New creates a paused session with a fresh grid.
func New(cfg config.BreakoutConfig, opts Options) (*Session, error) {
	game, err := breakout.New(cfg, breakout.Options{Seed: opts.Seed, Layout: opts.Layout})
	if err != nil {
		return nil, err
	}

	ts := opts.Time
	if ts == nil {
		ts = clock.SystemTime{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	id := uuid.New()
	s := &Session{
		id:      id,
		game:    game,
		time:    ts,
		logger:  logger.With("session", id.String()),
		journal: opts.Journal,
		started: ts.Now(),
		done:    make(chan struct{}),
	}
	s.sched = clock.NewScheduler(ts, cfg.Timing.FrameRate, cfg.Timing.RateWindow(), s.step)
	game.OnEnd(s.gameEnded)

	s.logger.Info("session started", "seed", opts.Seed, "layout", game.Layout())
	return s, nil
}

func (s *Session) step() {
	s.game.Step()
}

func (s *Session) gameEnded(out breakout.Outcome) {
	s.sched.Stop()
	s.finish(out)
}

// finish publishes the result exactly once.
func (s *Session) finish(out breakout.Outcome) {
	if s.ended {
		return
	}
	s.ended = true
	s.result = Result{
		ID:       s.id,
		Seed:     s.game.Seed(),
		Layout:   s.game.Layout(),
		Outcome:  out,
		Duration: s.time.Now().Sub(s.started),
	}
	close(s.done)

	s.logger.Info("session ended",
		"outcome", out.State,
		"steps", out.Steps,
		"destroyed", out.Destroyed,
		"total", out.Total,
		"duration", s.result.Duration.Round(time.Millisecond),
	)

	if s.journal != nil {
		ctx, cancel := context.WithTimeout(context.Background(), journalTimeout)
		if err := s.journal.RecordSession(ctx, s.result.Record()); err != nil {
			s.logger.Warn("journal write failed", "err", err)
		}
		cancel()
	}

	handlers := s.onEnd
	s.onEnd = nil
	for _, fn := range handlers {
		fn(s.result)
	}
}

// Frame is the display refresh callback. It runs at most one simulation
// step and reports whether one ran. After the game ends it does nothing.
func (s *Session) Frame(now time.Time) (bool, error) {
	if s.closed {
		return false, ErrClosed
	}
	if s.ended {
		return false, nil
	}
	return s.sched.Frame(now)
}

// Tick calls Frame with the session's time source.
func (s *Session) Tick() (bool, error) {
	return s.Frame(s.time.Now())
}

// KeyDown delivers a key press. Ignored after Close.
func (s *Session) KeyDown(k core.Key) {
	if s.closed {
		return
	}
	s.game.HandleKey(core.KeyDown(k))
}

// KeyUp delivers a key release. Ignored after Close.
func (s *Session) KeyUp(k core.Key) {
	if s.closed {
		return
	}
	s.game.HandleKey(core.KeyUp(k))
}

// ReleaseKeys clears held directions.
func (s *Session) ReleaseKeys() {
	s.game.ReleaseKeys()
}

// Render draws the game with the observed frame rate.
func (s *Session) Render(dst *core.Screen) {
	s.game.Render(dst, s.sched.Rate())
}

// Snapshot returns the game's observable state.
func (s *Session) Snapshot() breakout.Snapshot {
	return s.game.Snapshot()
}

// OnEnd registers a callback receiving the result once. If the session has
// already ended the callback runs immediately.
func (s *Session) OnEnd(fn func(Result)) {
	if s.ended {
		fn(s.result)
		return
	}
	s.onEnd = append(s.onEnd, fn)
}

// Done is closed when the game reaches a terminal state or the session is closed.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Result returns the result and whether the session has ended.
func (s *Session) Result() (Result, bool) {
	return s.result, s.ended
}

// Close stops the scheduler and detaches input. A session closed before the
// game ended is journaled as abandoned. Close is idempotent.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.sched.Stop()
	s.game.ReleaseKeys()
	if !s.ended {
		s.finish(s.game.Outcome())
	}
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// State returns the game state.
func (s *Session) State() breakout.State {
	return s.game.State()
}

// Rate returns the observed steps per second.
func (s *Session) Rate() int {
	return s.sched.Rate()
}

// Seed returns the session seed.
func (s *Session) Seed() int64 {
	return s.game.Seed()
}

// Game exposes the underlying game for drivers such as the autopilot.
func (s *Session) Game() *breakout.Game {
	return s.game
}
