package breakout

import (
	"fmt"
	"math/rand/v2"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
)

// rngMix decorrelates the two PCG seeds derived from one session seed.
const rngMix = 0x9e3779b97f4a7c15

// Options selects per-session variation.
type Options struct {
	Seed   int64  // Seeds brick colors; the same seed and inputs replay identically
	Layout string // Overrides cfg.Bricks.Layout when set
}

// Outcome summarizes a finished game.
type Outcome struct {
	State     State
	Steps     int
	Destroyed int
	Total     int
}

// StepResult is returned by Step.
type StepResult struct {
	State   State
	Changed bool // State differs from before the step
	Events  StepEvents
}

// Game is the session-scoped aggregate: entities, state machine and input.
// It is not safe for concurrent use; hosts drive it from one goroutine.
type Game struct {
	cfg     config.BreakoutConfig
	seed    int64
	layout  Layout
	world   World
	machine Machine
	input   *core.InputState
	steps   int
	onEnd   []func(Outcome)
}

// New creates a game in the paused state with a freshly generated grid.
func New(cfg config.BreakoutConfig, opts Options) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	name := opts.Layout
	if name == "" {
		name = cfg.Bricks.Layout
	}
	layout, ok := LayoutByName(name)
	if !ok {
		return nil, fmt.Errorf("breakout: unknown layout %q", name)
	}

	seed := uint64(opts.Seed) //#nosec G115 -- seed bits are reinterpreted, not range-checked
	rng := rand.New(rand.NewPCG(seed, seed^rngMix))

	grid, err := NewBrickGrid(cfg.Bricks, layout, rng)
	if err != nil {
		return nil, err
	}

	arena := core.NewArena(cfg.Arena.Width, cfg.Arena.Height)
	g := &Game{
		cfg:    cfg,
		seed:   opts.Seed,
		layout: layout,
		input:  core.NewInputState(),
		world: World{
			Arena: arena,
			Paddle: Paddle{
				X:      (arena.Width - cfg.Paddle.Width) / 2,
				Y:      arena.Height - cfg.Paddle.Height - cfg.Paddle.BottomMargin,
				Width:  cfg.Paddle.Width,
				Height: cfg.Paddle.Height,
			},
			Ball: Ball{
				X:      arena.Width / 2,
				Y:      arena.Height - cfg.Ball.StartOffset,
				XSpeed: cfg.Ball.Speed,
				YSpeed: -cfg.Ball.Speed,
				Radius: cfg.Ball.Radius,
			},
			Grid:        grid,
			PaddleSpeed: cfg.Paddle.Speed,
		},
	}
	return g, nil
}

// HandleKey applies a key event.
// While paused, any key-down starts the game and is consumed, so the key's
// direction is not held until it is pressed again. Key-ups always apply.
func (g *Game) HandleKey(ev core.KeyEvent) {
	if ev.Down && g.machine.State() == StatePaused {
		g.machine.Start()
		return
	}
	g.input.Apply(ev)
}

// ReleaseKeys clears held directions.
func (g *Game) ReleaseKeys() {
	g.input.Release()
}

// Step advances the simulation by one step. It is a no-op unless playing.
func (g *Game) Step() StepResult {
	before := g.machine.State()
	if before != StatePlaying {
		return StepResult{State: before}
	}

	g.steps++
	ev := g.world.Step(g.input.Intent())

	// Breaking the last brick wins even if the ball also fell off this step.
	switch {
	case ev.Won:
		g.machine.Win()
	case ev.Lost:
		g.machine.Lose()
	}

	after := g.machine.State()
	if after.Terminal() {
		g.fireEnd()
	}
	return StepResult{State: after, Changed: after != before, Events: ev}
}

// OnEnd registers a callback invoked once when the game reaches a terminal state.
func (g *Game) OnEnd(fn func(Outcome)) {
	g.onEnd = append(g.onEnd, fn)
}

func (g *Game) fireEnd() {
	out := g.Outcome()
	handlers := g.onEnd
	g.onEnd = nil
	for _, fn := range handlers {
		fn(out)
	}
}

// Outcome returns the current summary.
func (g *Game) Outcome() Outcome {
	return Outcome{
		State:     g.machine.State(),
		Steps:     g.steps,
		Destroyed: g.world.Destroyed,
		Total:     g.world.Grid.Total(),
	}
}

// State returns the current state.
func (g *Game) State() State {
	return g.machine.State()
}

// Seed returns the seed the grid was generated from.
func (g *Game) Seed() int64 {
	return g.seed
}

// Layout returns the layout name.
func (g *Game) Layout() string {
	return g.layout.Name
}

// Steps returns the number of simulation steps executed.
func (g *Game) Steps() int {
	return g.steps
}

// Ball returns a copy of the ball.
func (g *Game) Ball() Ball {
	return g.world.Ball
}

// Paddle returns a copy of the paddle.
func (g *Game) Paddle() Paddle {
	return g.world.Paddle
}

// Arena returns the play area.
func (g *Game) Arena() core.Arena {
	return g.world.Arena
}

// Config returns the configuration the game was built from.
func (g *Game) Config() config.BreakoutConfig {
	return g.cfg
}
