package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-breakout/internal/clock"
	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

type memJournal struct {
	mu      sync.Mutex
	records []storage.Record
	err     error
}

func (j *memJournal) RecordSession(_ context.Context, r storage.Record) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.records = append(j.records, r)
	return j.err
}

// quickWinConfig places a single brick on the ball's opening path, so the
// game is won on step 26 without input.
func quickWinConfig() config.BreakoutConfig {
	cfg := config.DefaultBreakoutConfig()
	cfg.Bricks.Cols = 1
	cfg.Bricks.Rows = 1
	cfg.Bricks.OffsetLeft = 300
	cfg.Bricks.OffsetTop = 280
	return cfg
}

func newTestSession(t *testing.T, cfg config.BreakoutConfig, j Journal) (*Session, *clock.ManualTime) {
	t.Helper()
	mt := clock.NewManualTime(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	s, err := New(cfg, Options{Seed: 9, Time: mt, Journal: j})
	require.NoError(t, err)
	return s, mt
}

func TestNewSession(t *testing.T) {
	s, _ := newTestSession(t, config.DefaultBreakoutConfig(), nil)

	assert.NotEqual(t, uuid.Nil, s.ID())
	assert.Equal(t, breakout.StatePaused, s.State())
	assert.Equal(t, 60, s.Rate())
	assert.Equal(t, int64(9), s.Seed())
}

func TestNewSessionInvalidConfig(t *testing.T) {
	cfg := config.DefaultBreakoutConfig()
	cfg.Bricks.Cols = 0

	_, err := New(cfg, Options{})
	require.ErrorIs(t, err, config.ErrNoBricks)
}

func TestFrameStepsOncePerInterval(t *testing.T) {
	s, mt := newTestSession(t, config.DefaultBreakoutConfig(), nil)
	s.KeyDown(core.KeyOther)

	mt.Advance(10 * time.Millisecond)
	ran, err := s.Tick()
	require.NoError(t, err)
	assert.False(t, ran)

	mt.Advance(7 * time.Millisecond)
	ran, err = s.Tick()
	require.NoError(t, err)
	assert.True(t, ran)
	assert.Equal(t, uint64(1), s.Snapshot().Step)
}

func TestSessionWinsAndJournals(t *testing.T) {
	j := &memJournal{}
	s, mt := newTestSession(t, quickWinConfig(), j)

	var results []Result
	s.OnEnd(func(r Result) { results = append(results, r) })

	s.KeyDown(core.KeyOther)
	for range 40 {
		mt.Advance(17 * time.Millisecond)
		_, err := s.Tick()
		require.NoError(t, err)
	}

	select {
	case <-s.Done():
	default:
		t.Fatal("Done should be closed after a win")
	}

	require.Len(t, results, 1)
	r := results[0]
	assert.Equal(t, breakout.StateWin, r.Outcome.State)
	assert.Equal(t, 26, r.Outcome.Steps)
	assert.Equal(t, 1, r.Outcome.Destroyed)
	assert.False(t, r.Abandoned())
	assert.Equal(t, 26*17*time.Millisecond, r.Duration)

	require.Len(t, j.records, 1)
	assert.Equal(t, storage.OutcomeWin, j.records[0].Outcome)
	assert.Equal(t, s.ID().String(), j.records[0].ID)
	assert.Equal(t, "classic", j.records[0].Layout)

	// Frames after the end are inert.
	mt.Advance(time.Second)
	ran, err := s.Tick()
	require.NoError(t, err)
	assert.False(t, ran)

	// Closing an ended session journals nothing more.
	s.Close()
	assert.Len(t, j.records, 1)
	assert.Len(t, results, 1)

	// Late subscribers still see the result.
	var late Result
	s.OnEnd(func(r Result) { late = r })
	assert.Equal(t, r.ID, late.ID)
}

func TestCloseAbandonsSession(t *testing.T) {
	j := &memJournal{}
	s, mt := newTestSession(t, config.DefaultBreakoutConfig(), j)
	s.KeyDown(core.KeyOther)
	mt.Advance(20 * time.Millisecond)
	_, err := s.Tick()
	require.NoError(t, err)

	s.Close()
	s.Close()

	select {
	case <-s.Done():
	default:
		t.Fatal("Done should be closed after Close")
	}

	r, ended := s.Result()
	require.True(t, ended)
	assert.True(t, r.Abandoned())
	require.Len(t, j.records, 1)
	assert.Equal(t, storage.OutcomeAbandoned, j.records[0].Outcome)

	before := s.Snapshot()
	s.KeyDown(core.KeyRight)
	mt.Advance(time.Second)
	ran, err := s.Tick()
	require.ErrorIs(t, err, ErrClosed)
	assert.False(t, ran)
	assert.Equal(t, before.Hash(), s.Snapshot().Hash(), "closed session must not change")
}

func TestJournalErrorIsNotFatal(t *testing.T) {
	j := &memJournal{err: errors.New("disk full")}
	s, _ := newTestSession(t, config.DefaultBreakoutConfig(), j)

	s.Close()
	_, ended := s.Result()
	assert.True(t, ended)
	assert.Len(t, j.records, 1)
}

func TestRestartIsFreshSession(t *testing.T) {
	cfg := config.DefaultBreakoutConfig()
	a, _ := newTestSession(t, cfg, nil)
	b, _ := newTestSession(t, cfg, nil)

	assert.NotEqual(t, a.ID(), b.ID())
	assert.Equal(t, breakout.StatePaused, b.State())
	assert.Equal(t, uint64(0), b.Snapshot().Step)
}

func TestRenderUsesPublishedRate(t *testing.T) {
	s, _ := newTestSession(t, config.DefaultBreakoutConfig(), nil)
	screen := core.NewScreen(80, 24)
	s.Render(screen)
	assert.Contains(t, screen.String(), "FPS: 60")
}
