package clock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newTestScheduler(frameRate int) (*Scheduler, *ManualTime, *int) {
	mt := NewManualTime(epoch)
	steps := 0
	s := NewScheduler(mt, frameRate, time.Second, func() { steps++ })
	return s, mt, &steps
}

func TestSchedulerPacing(t *testing.T) {
	s, mt, steps := newTestScheduler(60)

	mt.Advance(10 * time.Millisecond)
	ran, err := s.Tick()
	require.NoError(t, err)
	assert.False(t, ran, "less than one interval must not step")
	assert.Equal(t, 0, *steps)

	mt.Advance(7 * time.Millisecond)
	ran, err = s.Tick()
	require.NoError(t, err)
	assert.True(t, ran)
	assert.Equal(t, 1, *steps)

	// The 17ms elapsed carried ~0.33ms over, so 16.4ms more is enough.
	mt.Advance(16400 * time.Microsecond)
	ran, err = s.Tick()
	require.NoError(t, err)
	assert.True(t, ran)
	assert.Equal(t, 2, *steps)
}

func TestSchedulerDropsMissedSteps(t *testing.T) {
	s, mt, steps := newTestScheduler(60)

	mt.Advance(100 * time.Millisecond)
	ran, err := s.Tick()
	require.NoError(t, err)
	assert.True(t, ran)
	assert.Equal(t, 1, *steps, "a late refresh runs exactly one step")

	// No catch-up on the next refresh either.
	mt.Advance(time.Millisecond)
	ran, err = s.Tick()
	require.NoError(t, err)
	assert.False(t, ran)
	assert.Equal(t, 1, *steps)
}

func TestSchedulerFastRefresh(t *testing.T) {
	s, mt, steps := newTestScheduler(60)

	// A 240Hz display over one second still yields about 60 steps.
	for range 240 {
		mt.Advance(time.Second / 240)
		_, err := s.Tick()
		require.NoError(t, err)
	}

	assert.InDelta(t, 60, *steps, 2)
}

func TestSchedulerRateWindow(t *testing.T) {
	s, mt, _ := newTestScheduler(10)
	assert.Equal(t, 10, s.Rate(), "initial rate is the configured frame rate")

	// Refreshes every 200ms run one step each, five per second.
	for i := 1; i <= 4; i++ {
		mt.Advance(200 * time.Millisecond)
		_, err := s.Tick()
		require.NoError(t, err)
	}
	assert.Equal(t, 10, s.Rate(), "rate is only published once the window closes")

	// The window closes strictly after its deadline, not on it.
	mt.Advance(200 * time.Millisecond)
	_, err := s.Tick()
	require.NoError(t, err)
	assert.Equal(t, 10, s.Rate(), "a refresh exactly on the deadline does not publish")

	mt.Advance(200 * time.Millisecond)
	_, err = s.Tick()
	require.NoError(t, err)
	assert.Equal(t, 6, s.Rate())
}

func TestSchedulerClockWentBackwards(t *testing.T) {
	s, mt, steps := newTestScheduler(60)

	mt.Set(epoch.Add(-time.Second))
	ran, err := s.Tick()
	require.ErrorIs(t, err, ErrClockWentBackwards)
	assert.False(t, ran)
	assert.Equal(t, 0, *steps)
}

func TestSchedulerStop(t *testing.T) {
	s, mt, steps := newTestScheduler(60)

	s.Stop()
	s.Stop()
	assert.True(t, s.Stopped())

	mt.Advance(time.Second)
	ran, err := s.Tick()
	require.ErrorIs(t, err, ErrStopped)
	assert.False(t, ran)
	assert.Equal(t, 0, *steps)
}

// steppingTime advances by a fixed amount on every read.
type steppingTime struct {
	t time.Time
	d time.Duration
}

func (st *steppingTime) Now() time.Time {
	st.t = st.t.Add(st.d)
	return st.t
}

func TestSchedulerRunStopsFromStep(t *testing.T) {
	ts := &steppingTime{t: epoch, d: 20 * time.Millisecond}
	var s *Scheduler
	steps := 0
	s = NewScheduler(ts, 60, time.Second, func() {
		steps++
		if steps == 3 {
			s.Stop()
		}
	})

	refresh := make(chan time.Time, 10)
	for range 10 {
		refresh <- epoch
	}

	err := s.Run(context.Background(), refresh)
	require.NoError(t, err)
	assert.Equal(t, 3, steps)
	assert.Equal(t, uint64(3), s.Executed())
}

func TestSchedulerRunContextCanceled(t *testing.T) {
	s, _, _ := newTestScheduler(60)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Run(ctx, make(chan time.Time))
	require.ErrorIs(t, err, context.Canceled)
}

func TestSchedulerRunClosedRefresh(t *testing.T) {
	s, _, _ := newTestScheduler(60)
	refresh := make(chan time.Time)
	close(refresh)

	require.NoError(t, s.Run(context.Background(), refresh))
}

func TestManualTime(t *testing.T) {
	mt := NewManualTime(epoch)
	mt.Advance(time.Minute)
	assert.Equal(t, epoch.Add(time.Minute), mt.Now())

	var ts TimeSource = SystemTime{}
	assert.WithinDuration(t, time.Now(), ts.Now(), time.Second)
}
