package config

import (
	_ "embed"
)

//go:embed defaults/breakout.yaml
var defaultBreakoutYAML []byte

// DefaultBreakoutConfig returns the default breakout configuration.
func DefaultBreakoutConfig() BreakoutConfig {
	return BreakoutConfig{
		Arena: ArenaConfig{
			Width:  448,
			Height: 400,
		},
		Paddle: PaddleConfig{
			Width:        50,
			Height:       10,
			BottomMargin: 10,
			Speed:        5,
		},
		Ball: BallConfig{
			Radius:      3,
			Speed:       3,
			StartOffset: 30,
		},
		Bricks: BricksConfig{
			Cols:       9,
			Rows:       5,
			Width:      16,
			Height:     8,
			Scale:      2.5,
			OffsetLeft: 45,
			OffsetTop:  30,
			Colors:     8,
			Layout:     "classic",
		},
		Timing: TimingConfig{
			FrameRate:    60,
			RateWindowMS: 1000,
		},
		Input: InputConfig{
			ReleaseMS: 250,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultBreakoutYAML
}
