package breakout

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// BrickSnapshot is the observable state of one brick.
type BrickSnapshot struct {
	X      float64 `msgpack:"x"`
	Y      float64 `msgpack:"y"`
	Color  int     `msgpack:"c"`
	Broken bool    `msgpack:"b"`
}

// Snapshot contains the observable game state for determinism checks and
// wire frames. Uses primitive types only for stable serialization.
type Snapshot struct {
	Step  uint64 `msgpack:"step"`
	State string `msgpack:"state"`

	ArenaW float64 `msgpack:"aw"`
	ArenaH float64 `msgpack:"ah"`

	PaddleX float64 `msgpack:"px"`
	PaddleY float64 `msgpack:"py"`
	PaddleW float64 `msgpack:"pw"`
	PaddleH float64 `msgpack:"ph"`

	BallX      float64 `msgpack:"bx"`
	BallY      float64 `msgpack:"by"`
	BallXSpeed float64 `msgpack:"bvx"`
	BallYSpeed float64 `msgpack:"bvy"`
	BallRadius float64 `msgpack:"br"`

	BrickW    float64         `msgpack:"brw"`
	BrickH    float64         `msgpack:"brh"`
	Destroyed int             `msgpack:"destroyed"`
	Total     int             `msgpack:"total"`
	Bricks    []BrickSnapshot `msgpack:"bricks"`
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	w := &g.world
	bricks := make([]BrickSnapshot, len(w.Grid.Bricks))
	for i, b := range w.Grid.Bricks {
		bricks[i] = BrickSnapshot{
			X:      b.X,
			Y:      b.Y,
			Color:  b.Color,
			Broken: !b.Alive(),
		}
	}

	return Snapshot{
		Step:  uint64(g.steps), //#nosec G115 -- step count is always positive
		State: g.machine.State().String(),

		ArenaW: w.Arena.Width,
		ArenaH: w.Arena.Height,

		PaddleX: w.Paddle.X,
		PaddleY: w.Paddle.Y,
		PaddleW: w.Paddle.Width,
		PaddleH: w.Paddle.Height,

		BallX:      w.Ball.X,
		BallY:      w.Ball.Y,
		BallXSpeed: w.Ball.XSpeed,
		BallYSpeed: w.Ball.YSpeed,
		BallRadius: w.Ball.Radius,

		BrickW:    w.Grid.Width,
		BrickH:    w.Grid.Height,
		Destroyed: w.Destroyed,
		Total:     w.Grid.Total(),
		Bricks:    bricks,
	}
}

// Hash returns an xxhash digest of the snapshot for determinism testing.
func (snap Snapshot) Hash() uint64 {
	buf := make([]byte, 0, 128+len(snap.Bricks)*32)
	putFloat := func(f float64) {
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(f))
	}
	putInt := func(v int) {
		buf = binary.LittleEndian.AppendUint64(buf, uint64(v)) //#nosec G115 -- hash computation
	}

	buf = binary.LittleEndian.AppendUint64(buf, snap.Step)
	buf = append(buf, snap.State...)

	putFloat(snap.ArenaW)
	putFloat(snap.ArenaH)
	putFloat(snap.PaddleX)
	putFloat(snap.PaddleY)
	putFloat(snap.PaddleW)
	putFloat(snap.PaddleH)
	putFloat(snap.BallX)
	putFloat(snap.BallY)
	putFloat(snap.BallXSpeed)
	putFloat(snap.BallYSpeed)
	putFloat(snap.BallRadius)
	putFloat(snap.BrickW)
	putFloat(snap.BrickH)
	putInt(snap.Destroyed)
	putInt(snap.Total)

	for _, b := range snap.Bricks {
		putFloat(b.X)
		putFloat(b.Y)
		putInt(b.Color)
		if b.Broken {
			buf = append(buf, 1)
		} else {
			buf = append(buf, 0)
		}
	}

	return xxhash.Sum64(buf)
}
