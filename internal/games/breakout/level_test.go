package breakout

import (
	"math/rand/v2"
	"testing"

	"github.com/vovakirdan/tui-breakout/internal/config"
)

func TestLayoutBrickCounts(t *testing.T) {
	cfg := config.DefaultBreakoutConfig().Bricks

	tests := []struct {
		name     string
		expected int
	}{
		{"classic", 45},
		{"checker", 23},
		{"pyramid", 25},
		{"frame", 24},
		{"stripes", 27},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			layout, ok := LayoutByName(tc.name)
			if !ok {
				t.Fatalf("layout %q not found", tc.name)
			}
			grid, err := NewBrickGrid(cfg, layout, rand.New(rand.NewPCG(1, 1)))
			if err != nil {
				t.Fatalf("NewBrickGrid() failed: %v", err)
			}
			if grid.Total() != tc.expected {
				t.Errorf("Total() = %d, expected %d", grid.Total(), tc.expected)
			}
		})
	}
}

func TestLayoutByNameDefault(t *testing.T) {
	l, ok := LayoutByName("")
	if !ok || l.Name != DefaultLayout {
		t.Errorf("empty name should select %q, got %q", DefaultLayout, l.Name)
	}
	if _, ok := LayoutByName("nope"); ok {
		t.Error("unknown layout should not be found")
	}
}

func TestLayoutsSorted(t *testing.T) {
	all := Layouts()
	if len(all) != 5 {
		t.Fatalf("expected 5 layouts, got %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].Name >= all[i].Name {
			t.Errorf("layouts not sorted: %q before %q", all[i-1].Name, all[i].Name)
		}
	}
}

func TestLayoutHasOutsideMask(t *testing.T) {
	l, _ := LayoutByName("frame")
	if l.Has(20, 0) || l.Has(0, 20) || l.Has(-1, 0) {
		t.Error("cells outside the mask should be empty")
	}
	if !l.Has(0, 0) || l.Has(4, 2) {
		t.Error("frame mask misread")
	}

	classic, _ := LayoutByName("classic")
	if !classic.Has(100, 100) {
		t.Error("classic should fill every cell")
	}
}

func TestBrickBreakOnce(t *testing.T) {
	b := Brick{}
	if !b.Break() {
		t.Fatal("first Break should succeed")
	}
	if b.Break() {
		t.Error("second Break should report no transition")
	}
	if b.Alive() {
		t.Error("broken brick should not be alive")
	}
}

func TestBrickBoundsInclusive(t *testing.T) {
	grid := &BrickGrid{Bricks: []Brick{{X: 45, Y: 30}}, Width: 40, Height: 20}
	r := grid.Bounds(0)

	if !r.Contains(85, 50) || !r.Contains(45, 30) {
		t.Error("brick edges should be inclusive")
	}
	if r.Contains(85.5, 40) {
		t.Error("point right of the brick should miss")
	}
}
