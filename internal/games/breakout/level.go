// Package breakout implements a brick breaker game: a ball bounces inside a
// fixed arena, deflected by the player's paddle and a grid of bricks.
package breakout

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
)

// ErrEmptyGrid is returned when a configuration and layout produce no bricks.
// An empty grid would be won on the first step.
var ErrEmptyGrid = errors.New("breakout: brick grid is empty")

// BrickStatus is the lifecycle of a brick. Broken is terminal.
type BrickStatus int

const (
	BrickNormal BrickStatus = iota // Present and collidable
	BrickBroken                    // Destroyed, never collides again
)

// Brick represents a single brick. X, Y is the top-left corner in arena units.
type Brick struct {
	X, Y   float64
	Status BrickStatus
	Color  int // Cosmetic variant index, no gameplay effect
}

// Break transitions the brick from normal to broken.
// Returns false if it was already broken.
func (b *Brick) Break() bool {
	if b.Status == BrickBroken {
		return false
	}
	b.Status = BrickBroken
	return true
}

// Alive reports whether the brick still collides.
func (b *Brick) Alive() bool {
	return b.Status == BrickNormal
}

// BrickGrid is the ordered brick collection of one session.
// Bricks are stored column-major; the order is fixed for the session.
type BrickGrid struct {
	Bricks []Brick
	Width  float64 // Scaled brick width
	Height float64 // Scaled brick height
}

// Total returns the number of bricks the grid started with.
func (g *BrickGrid) Total() int {
	return len(g.Bricks)
}

// Remaining returns the number of bricks not yet broken.
func (g *BrickGrid) Remaining() int {
	count := 0
	for i := range g.Bricks {
		if g.Bricks[i].Alive() {
			count++
		}
	}
	return count
}

// Bounds returns the hit box of brick i.
func (g *BrickGrid) Bounds(i int) core.RectF {
	b := g.Bricks[i]
	return core.NewRectF(b.X, b.Y, g.Width, g.Height)
}

// NewBrickGrid builds a fresh grid for one session.
// Cells are visited column by column; each cell selected by the layout gets
// a brick at (offsetLeft + col*w, offsetTop + row*h) with a color drawn
// from rng.
func NewBrickGrid(cfg config.BricksConfig, layout Layout, rng *rand.Rand) (*BrickGrid, error) {
	grid := &BrickGrid{
		Bricks: make([]Brick, 0, cfg.Cols*cfg.Rows),
		Width:  cfg.BrickW(),
		Height: cfg.BrickH(),
	}

	for col := range cfg.Cols {
		for row := range cfg.Rows {
			if !layout.Has(col, row) {
				continue
			}
			grid.Bricks = append(grid.Bricks, Brick{
				X:      cfg.OffsetLeft + float64(col)*grid.Width,
				Y:      cfg.OffsetTop + float64(row)*grid.Height,
				Status: BrickNormal,
				Color:  rng.IntN(cfg.Colors),
			})
		}
	}

	if len(grid.Bricks) == 0 {
		return nil, fmt.Errorf("%w: layout %q on %dx%d", ErrEmptyGrid, layout.Name, cfg.Cols, cfg.Rows)
	}
	return grid, nil
}

// Layout is a named mask selecting which grid cells receive a brick.
// Rows are ASCII lines:
//
//	'#' = brick
//	'.' = empty
//
// A layout without lines fills every cell. Cells outside the lines are empty.
type Layout struct {
	Name        string
	Description string
	Lines       []string
}

// Has reports whether the cell at (col, row) gets a brick.
func (l Layout) Has(col, row int) bool {
	if len(l.Lines) == 0 {
		return true
	}
	if row < 0 || row >= len(l.Lines) {
		return false
	}
	line := l.Lines[row]
	if col < 0 || col >= len(line) {
		return false
	}
	return line[col] == '#'
}

// DefaultLayout is the full rectangular grid.
const DefaultLayout = "classic"

var layouts = map[string]Layout{
	"classic": {
		Name:        "classic",
		Description: "Every cell filled",
	},
	"checker": {
		Name:        "checker",
		Description: "Alternating bricks",
		Lines: []string{
			"#.#.#.#.#",
			".#.#.#.#.",
			"#.#.#.#.#",
			".#.#.#.#.",
			"#.#.#.#.#",
		},
	},
	"pyramid": {
		Name:        "pyramid",
		Description: "Widening rows toward the paddle",
		Lines: []string{
			"....#....",
			"...###...",
			"..#####..",
			".#######.",
			"#########",
		},
	},
	"frame": {
		Name:        "frame",
		Description: "Outer ring only",
		Lines: []string{
			"#########",
			"#.......#",
			"#.......#",
			"#.......#",
			"#########",
		},
	},
	"stripes": {
		Name:        "stripes",
		Description: "Every other row",
		Lines: []string{
			"#########",
			".........",
			"#########",
			".........",
			"#########",
		},
	},
}

// LayoutByName looks up a layout. An empty name selects the default.
func LayoutByName(name string) (Layout, bool) {
	if name == "" {
		name = DefaultLayout
	}
	l, ok := layouts[name]
	return l, ok
}

// Layouts returns all layouts sorted by name.
func Layouts() []Layout {
	result := make([]Layout, 0, len(layouts))
	for _, l := range layouts {
		result = append(result, l)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}
