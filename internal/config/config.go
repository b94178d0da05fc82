// Package config provides YAML-based game configuration loading and
// validation for the breakout platform.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors returned by Validate.
var (
	ErrInvalidArena = errors.New("config: arena dimensions must be positive")
	ErrNoBricks     = errors.New("config: brick grid must have at least one column and one row")
)

// BreakoutConfig contains all configuration for the breakout game.
type BreakoutConfig struct {
	Arena  ArenaConfig  `yaml:"arena"`
	Paddle PaddleConfig `yaml:"paddle"`
	Ball   BallConfig   `yaml:"ball"`
	Bricks BricksConfig `yaml:"bricks"`
	Timing TimingConfig `yaml:"timing"`
	Input  InputConfig  `yaml:"input"`
}

// ArenaConfig defines the play area in logical units.
type ArenaConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PaddleConfig defines the player's paddle.
type PaddleConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	BottomMargin float64 `yaml:"bottom_margin"` // Gap between the paddle and the arena bottom
	Speed        float64 `yaml:"speed"`         // Units moved per step while a direction is held
}

// BallConfig defines the ball.
type BallConfig struct {
	Radius      float64 `yaml:"radius"`
	Speed       float64 `yaml:"speed"`        // Magnitude of each velocity component
	StartOffset float64 `yaml:"start_offset"` // Distance of the starting position above the bottom
}

// BricksConfig defines the brick grid layout.
type BricksConfig struct {
	Cols       int     `yaml:"cols"`
	Rows       int     `yaml:"rows"`
	Width      float64 `yaml:"width"`  // Sprite width before scaling
	Height     float64 `yaml:"height"` // Sprite height before scaling
	Scale      float64 `yaml:"scale"`
	OffsetLeft float64 `yaml:"offset_left"`
	OffsetTop  float64 `yaml:"offset_top"`
	Colors     int     `yaml:"colors"` // Number of cosmetic variants
	Layout     string  `yaml:"layout"` // Named mask, "classic" fills every cell
}

// TimingConfig defines frame pacing.
type TimingConfig struct {
	FrameRate    int `yaml:"frame_rate"`     // Simulation steps per second
	RateWindowMS int `yaml:"rate_window_ms"` // Window over which the observed rate is counted
}

// InputConfig defines input collaborator behavior.
type InputConfig struct {
	// ReleaseMS is how long a terminal key stays held without a repeat.
	// Terminals deliver no key-up events, so the shell synthesizes them.
	ReleaseMS int `yaml:"release_ms"`
}

// StepInterval returns the fixed simulated time slice.
func (t TimingConfig) StepInterval() time.Duration {
	return time.Second / time.Duration(t.FrameRate)
}

// RateWindow returns the rate-reporting window.
func (t TimingConfig) RateWindow() time.Duration {
	return time.Duration(t.RateWindowMS) * time.Millisecond
}

// ReleaseAfter returns the synthesized key-up delay.
func (i InputConfig) ReleaseAfter() time.Duration {
	return time.Duration(i.ReleaseMS) * time.Millisecond
}

// BrickW returns the scaled brick width.
func (b BricksConfig) BrickW() float64 {
	return b.Width * b.Scale
}

// BrickH returns the scaled brick height.
func (b BricksConfig) BrickH() float64 {
	return b.Height * b.Scale
}

// Validate checks the configuration for values the simulation cannot run with.
func (c BreakoutConfig) Validate() error {
	if c.Arena.Width <= 0 || c.Arena.Height <= 0 {
		return ErrInvalidArena
	}
	if c.Bricks.Cols <= 0 || c.Bricks.Rows <= 0 {
		return ErrNoBricks
	}
	if c.Paddle.Width <= 0 || c.Paddle.Width > c.Arena.Width {
		return fmt.Errorf("config: paddle width %v must be in (0, %v]", c.Paddle.Width, c.Arena.Width)
	}
	if c.Paddle.Height <= 0 {
		return fmt.Errorf("config: paddle height must be positive, got %v", c.Paddle.Height)
	}
	if c.Ball.Speed <= 0 {
		return fmt.Errorf("config: ball speed must be positive, got %v", c.Ball.Speed)
	}
	if c.Ball.Radius <= 0 || 2*c.Ball.Radius >= c.Arena.Height {
		return fmt.Errorf("config: ball radius %v does not fit the arena", c.Ball.Radius)
	}
	if c.Bricks.Width <= 0 || c.Bricks.Height <= 0 || c.Bricks.Scale <= 0 {
		return fmt.Errorf("config: brick dimensions must be positive")
	}
	if c.Bricks.Colors <= 0 {
		return fmt.Errorf("config: brick colors must be positive, got %d", c.Bricks.Colors)
	}
	if c.Timing.FrameRate <= 0 {
		return fmt.Errorf("config: frame rate must be positive, got %d", c.Timing.FrameRate)
	}
	if c.Timing.RateWindowMS <= 0 {
		return fmt.Errorf("config: rate window must be positive, got %d", c.Timing.RateWindowMS)
	}
	return nil
}
