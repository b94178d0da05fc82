package core

import "testing"

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5, 0, 10, 5},    // within range
		{-5, 0, 10, 0},   // below min
		{15, 0, 10, 10},  // above max
		{0, 0, 10, 0},    // at min
		{10, 0, 10, 10},  // at max
		{2.5, 3, 397, 3}, // fractional below min
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%v, %v, %v) = %v, expected %v", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestArenaClamp(t *testing.T) {
	a := NewArena(448, 400)

	tests := []struct {
		name     string
		fn       func(v, m float64) float64
		val, m   float64
		expected float64
	}{
		{"width inside", a.ClampToWidth, 100, 50, 100},
		{"width left edge ignores margin", a.ClampToWidth, -4, 3, 0},
		{"width right edge", a.ClampToWidth, 420, 50, 398},
		{"height top uses margin", a.ClampToHeight, 1, 3, 3},
		{"height bottom uses margin", a.ClampToHeight, 401, 3, 397},
		{"height inside", a.ClampToHeight, 200, 3, 200},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.fn(tc.val, tc.m); got != tc.expected {
				t.Errorf("got %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestRectFContains(t *testing.T) {
	r := NewRectF(45, 30, 40, 20)

	tests := []struct {
		name     string
		x, y     float64
		expected bool
	}{
		{"inside", 60, 40, true},
		{"top-left corner", 45, 30, true},
		{"bottom-right corner (inclusive)", 85, 50, true},
		{"outside left", 44.9, 40, false},
		{"outside right", 85.1, 40, false},
		{"outside top", 60, 29, false},
		{"outside bottom", 60, 51, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%v, %v) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}
}

func TestIntHelpers(t *testing.T) {
	if ClampInt(-1, 0, 5) != 0 || ClampInt(9, 0, 5) != 5 || ClampInt(3, 0, 5) != 3 {
		t.Error("ClampInt did not restrict to range")
	}
	if Min(5, 10) != 5 || Min(10, 5) != 5 {
		t.Error("Min should return the smaller value")
	}
	if Max(5, 10) != 10 || Max(10, 5) != 10 {
		t.Error("Max should return the larger value")
	}
}
