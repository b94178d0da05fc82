package breakout

import "github.com/vovakirdan/tui-breakout/internal/core"

// Ball represents the ball. Position is the center in arena units.
// Both velocity components always have the configured speed as magnitude,
// reflections only flip their sign.
type Ball struct {
	X, Y           float64
	XSpeed, YSpeed float64
	Radius         float64
}

// BounceX reverses horizontal velocity.
func (b *Ball) BounceX() {
	b.XSpeed = -b.XSpeed
}

// BounceY reverses vertical velocity.
func (b *Ball) BounceY() {
	b.YSpeed = -b.YSpeed
}

// Paddle represents the player's paddle.
// X is the left edge and stays within [0, arenaWidth-Width].
type Paddle struct {
	X, Y          float64
	Width, Height float64
}

// Bounds returns the paddle's box.
func (p *Paddle) Bounds() core.RectF {
	return core.NewRectF(p.X, p.Y, p.Width, p.Height)
}

// CenterX returns the paddle's horizontal center.
func (p *Paddle) CenterX() float64 {
	return p.X + p.Width/2
}

// CollisionBand returns the vertical range in which a ball center counts as
// touching the paddle: from one radius above the paddle top down to one
// radius above the paddle bottom.
func (p *Paddle) CollisionBand(radius float64) (top, bottom float64) {
	return p.Y - radius, p.Y + p.Height - radius
}

// CheckPaddleCollision reports whether a ball center at (x, y) hits the paddle.
// Edges are inclusive.
func CheckPaddleCollision(p *Paddle, x, y, radius float64) bool {
	top, bottom := p.CollisionBand(radius)
	return x >= p.X && x <= p.X+p.Width && y >= top && y <= bottom
}

// CheckWallCollision evaluates a tentative ball center against the arena walls.
// bounceX and bounceY report which velocity components should flip; fellOff
// reports that the ball reached the bottom edge.
func CheckWallCollision(a core.Arena, x, y, radius float64) (bounceX, bounceY, fellOff bool) {
	bounceX = x <= radius || x >= a.Width-radius
	bounceY = y <= radius
	fellOff = y >= a.Height-radius
	return bounceX, bounceY, fellOff
}
