package breakout

import "github.com/vovakirdan/tui-breakout/internal/core"

// Autopilot steers the paddle toward the ball. It drives a game through
// the same key events a player would send.
type Autopilot struct {
	// Deadzone is how far the ball may be from the paddle center before
	// the autopilot moves.
	Deadzone float64

	left, right bool
}

// NewAutopilot creates an autopilot with a small deadzone.
func NewAutopilot() *Autopilot {
	return &Autopilot{Deadzone: 2}
}

// Intent returns the direction that brings the paddle under the ball.
func (a *Autopilot) Intent(g *Game) core.Intent {
	ball := g.Ball()
	paddle := g.Paddle()
	center := paddle.CenterX()

	switch {
	case ball.X < center-a.Deadzone:
		return core.Intent{Left: true}
	case ball.X > center+a.Deadzone:
		return core.Intent{Right: true}
	default:
		return core.Intent{}
	}
}

// Drive sends the key events needed before the next step. A paused game is
// started with a neutral key.
func (a *Autopilot) Drive(g *Game) {
	if g.State() == StatePaused {
		g.HandleKey(core.KeyDown(core.KeyOther))
		return
	}

	want := a.Intent(g)
	if want.Left != a.left {
		g.HandleKey(core.KeyEvent{Key: core.KeyLeft, Down: want.Left})
		a.left = want.Left
	}
	if want.Right != a.right {
		g.HandleKey(core.KeyEvent{Key: core.KeyRight, Down: want.Right})
		a.right = want.Right
	}
}

// Play drives g until it reaches a terminal state or maxSteps steps ran.
// Returns the outcome at that point.
func (a *Autopilot) Play(g *Game, maxSteps int) Outcome {
	for g.Steps() < maxSteps && !g.State().Terminal() {
		a.Drive(g)
		g.Step()
	}
	return g.Outcome()
}
