package breakout

import "github.com/vovakirdan/tui-breakout/internal/core"

// StepEvents reports what a single simulation step did.
type StepEvents struct {
	Lost bool  // Ball reached the bottom edge
	Won  bool  // The last brick was destroyed
	Hits []int // Indexes of bricks broken this step, in scan order
}

// World holds the mutable entities of one session.
type World struct {
	Arena       core.Arena
	Paddle      Paddle
	Ball        Ball
	Grid        *BrickGrid
	PaddleSpeed float64
	Destroyed   int
}

// Step advances the world by one fixed time slice.
// Checks run in a fixed order against the tentative ball position:
// walls, bottom edge, paddle, bricks, then the win count. The position is
// committed last, so every check sees the same clamped point.
func (w *World) Step(in core.Intent) StepEvents {
	var ev StepEvents

	dx := 0.0
	if in.Right {
		dx += w.PaddleSpeed
	}
	if in.Left {
		dx -= w.PaddleSpeed
	}
	w.Paddle.X = w.Arena.ClampToWidth(w.Paddle.X+dx, w.Paddle.Width)

	ball := &w.Ball
	x := w.Arena.ClampToWidth(ball.X+ball.XSpeed, ball.Radius)
	y := w.Arena.ClampToHeight(ball.Y+ball.YSpeed, ball.Radius)

	bounceX, bounceY, fellOff := CheckWallCollision(w.Arena, x, y, ball.Radius)
	if bounceX {
		ball.BounceX()
	}
	if bounceY {
		ball.BounceY()
	}
	if fellOff {
		ev.Lost = true
	}

	if CheckPaddleCollision(&w.Paddle, x, y, ball.Radius) {
		ball.BounceY()
	}

	// Every brick containing the point breaks, each one flipping the ball.
	for i := range w.Grid.Bricks {
		brick := &w.Grid.Bricks[i]
		if !brick.Alive() {
			continue
		}
		if !w.Grid.Bounds(i).Contains(x, y) {
			continue
		}
		ball.BounceY()
		brick.Break()
		w.Destroyed++
		ev.Hits = append(ev.Hits, i)
	}

	if w.Destroyed == w.Grid.Total() {
		ev.Won = true
	}

	ball.X = x
	ball.Y = y
	return ev
}
