package core

import (
	"strings"
	"testing"
)

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(12, 4)

	if s.Width() != 12 || s.Height() != 4 {
		t.Fatalf("size = %dx%d, expected 12x4", s.Width(), s.Height())
	}
	want := strings.Repeat(strings.Repeat(" ", 12)+"\n", 3) + strings.Repeat(" ", 12)
	if s.String() != want {
		t.Errorf("new screen should be all spaces, got %q", s.String())
	}
}

func TestScreenClipping(t *testing.T) {
	s := NewScreen(6, 2)

	// Out of bounds writes are dropped, reads return a blank cell
	s.Set(-1, 0, 'A')
	s.Set(6, 0, 'A')
	s.SetColored(0, 2, 'A', ColorRed)
	if s.String() != "      \n      " {
		t.Errorf("out of bounds writes leaked: %q", s.String())
	}
	if c := s.GetCell(-3, 9); c != blankCell {
		t.Errorf("out of bounds GetCell = %+v, expected blank", c)
	}

	s.DrawText(3, 1, "FPS: 60")
	if got := strings.Split(s.String(), "\n")[1]; got != "   FPS" {
		t.Errorf("text should clip at the right edge, got %q", got)
	}
}

func TestScreenBrickCells(t *testing.T) {
	s := NewScreen(10, 3)
	s.SetColored(1, 1, '█', ColorRed)
	s.DrawTextColored(3, 1, "ab", ColorCyan)

	if c := s.GetCell(1, 1); c.Rune != '█' || c.Color != ColorRed {
		t.Errorf("GetCell(1, 1) = %+v, expected red block", c)
	}
	if c := s.GetCell(4, 1); c.Rune != 'b' || c.Color != ColorCyan {
		t.Errorf("GetCell(4, 1) = %+v, expected cyan 'b'", c)
	}

	// Plain Set resets the color
	s.Set(1, 1, 'x')
	if c := s.GetCell(1, 1); c.Color != ColorDefault {
		t.Errorf("Set should reset color, got %v", c.Color)
	}

	s.Clear()
	if c := s.GetCell(3, 1); c != blankCell {
		t.Errorf("Clear should blank cells, got %+v", c)
	}
}

func TestScreenShapes(t *testing.T) {
	s := NewScreen(7, 5)
	s.DrawBox(NewRect(0, 0, 7, 5))
	s.DrawRect(NewRect(2, 2, 3, 1), '=')
	s.DrawTextCentered(1, "ok")

	want := strings.Join([]string{
		"┌─────┐",
		"│ ok  │",
		"│ === │",
		"│     │",
		"└─────┘",
	}, "\n")
	if s.String() != want {
		t.Errorf("got\n%s\nexpected\n%s", s.String(), want)
	}
}

func TestScreenResizeKeepsTopLeft(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawText(0, 0, "Bricks")

	s.Resize(4, 2)
	if s.String() != "Bric\n    " {
		t.Errorf("shrink should keep the top-left corner, got %q", s.String())
	}

	s.Resize(8, 3)
	if got := strings.Split(s.String(), "\n")[0]; got != "Bric    " {
		t.Errorf("grow should keep old content and pad, got %q", got)
	}
	if s.Width() != 8 || s.Height() != 3 {
		t.Errorf("size = %dx%d, expected 8x3", s.Width(), s.Height())
	}
}
