package clock

import (
	"context"
	"errors"
	"sync/atomic"
	"time"
)

// Sentinel errors returned by Frame.
var (
	ErrClockWentBackwards = errors.New("clock: time went backwards")
	ErrStopped            = errors.New("clock: scheduler stopped")
)

// Scheduler runs a step function at a fixed rate, driven by an external
// refresh signal that may fire faster or slower than that rate.
//
// Each refresh runs at most one step. When the host falls behind, missed
// steps are dropped rather than replayed, so the simulation slows down
// instead of jumping. Only Stop is safe to call from another goroutine.
type Scheduler struct {
	time     TimeSource
	step     func()
	interval time.Duration
	window   time.Duration

	last      time.Time // Timestamp credited to the last executed step
	windowEnd time.Time // The rate is published by the first step after this
	frames    int       // Steps counted in the current window
	rate      int       // Last published steps per window
	executed  uint64

	stopped atomic.Bool
}

// NewScheduler creates a scheduler that calls step frameRate times per second
// and publishes the observed rate once per window. The clock starts now.
func NewScheduler(ts TimeSource, frameRate int, window time.Duration, step func()) *Scheduler {
	now := ts.Now()
	return &Scheduler{
		time:      ts,
		step:      step,
		interval:  time.Second / time.Duration(frameRate),
		window:    window,
		last:      now,
		windowEnd: now.Add(window),
		rate:      frameRate,
	}
}

// Frame is the refresh callback. It runs the step if at least one interval
// has elapsed since the last executed step and reports whether it did.
// The remainder of the elapsed time carries over to the next interval.
func (s *Scheduler) Frame(now time.Time) (bool, error) {
	if s.stopped.Load() {
		return false, ErrStopped
	}

	elapsed := now.Sub(s.last)
	if elapsed < 0 {
		return false, ErrClockWentBackwards
	}
	if elapsed < s.interval {
		return false, nil
	}

	s.last = now.Add(-(elapsed % s.interval))
	s.frames++
	s.executed++

	if now.After(s.windowEnd) {
		s.rate = s.frames
		s.frames = 0
		s.windowEnd = now.Add(s.window)
	}

	s.step()
	return true, nil
}

// Tick calls Frame with the scheduler's time source.
func (s *Scheduler) Tick() (bool, error) {
	return s.Frame(s.time.Now())
}

// Rate returns the last published rate. Before the first window closes it
// is the configured frame rate.
func (s *Scheduler) Rate() int {
	return s.rate
}

// Executed returns the total number of steps run.
func (s *Scheduler) Executed() uint64 {
	return s.executed
}

// Interval returns the fixed step interval.
func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

// Stop prevents any further steps. It is idempotent.
func (s *Scheduler) Stop() {
	s.stopped.Store(true)
}

// Stopped reports whether Stop was called.
func (s *Scheduler) Stopped() bool {
	return s.stopped.Load()
}

// Run calls Tick for every value received from refresh until the context
// ends, refresh is closed or the scheduler is stopped. A stop is a normal
// exit and returns nil.
func (s *Scheduler) Run(ctx context.Context, refresh <-chan time.Time) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-refresh:
			if !ok {
				return nil
			}
			if _, err := s.Tick(); err != nil {
				if errors.Is(err, ErrStopped) {
					return nil
				}
				return err
			}
			if s.Stopped() {
				return nil
			}
		}
	}
}
