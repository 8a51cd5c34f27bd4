package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 || s.Height() != 24 {
		t.Fatalf("size = %dx%d, expected 80x24", s.Width(), s.Height())
	}
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if c := s.GetCell(x, y); c != blank {
				t.Fatalf("new screen should be blank, got %+v at (%d, %d)", c, x, y)
			}
		}
	}
}

func TestScreenSetColor(t *testing.T) {
	s := NewScreen(4, 4)
	s.SetColor(1, 1, 'x', ColorRed)
	if c := s.GetCell(1, 1); c.Rune != 'x' || c.Color != ColorRed {
		t.Errorf("GetCell(1, 1) = %+v", c)
	}

	// Out of bounds writes are ignored and reads are blank
	for _, p := range [][2]int{{-1, 0}, {4, 0}, {0, -1}, {0, 4}} {
		s.SetColor(p[0], p[1], 'A', ColorRed)
		if c := s.GetCell(p[0], p[1]); c != blank {
			t.Errorf("GetCell(%d, %d) = %+v, expected blank", p[0], p[1], c)
		}
	}
}

func TestScreenFillColorAndClear(t *testing.T) {
	s := NewScreen(3, 2)
	s.FillColor(' ', ColorNavy)
	if c := s.GetCell(2, 1); c.Color != ColorNavy {
		t.Errorf("after FillColor, cell = %+v", c)
	}

	s.Clear()
	if c := s.GetCell(2, 1); c != blank {
		t.Errorf("after Clear, cell = %+v", c)
	}
}

func TestScreenDrawTextColor(t *testing.T) {
	s := NewScreen(8, 2)
	s.DrawTextColor(5, 0, "Score", ColorWhite)

	if got := s.String(); got != "     Sco\n        " {
		t.Errorf("String() = %q", got)
	}
	if c := s.GetCell(5, 0); c.Color != ColorWhite {
		t.Errorf("text color = %v, expected white", c.Color)
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawTextColor(0, 0, "Hello", ColorDefault)

	s.Resize(3, 2)
	if got := s.String(); got != "Hel\n   " {
		t.Errorf("after shrinking, String() = %q", got)
	}

	s.Resize(6, 3)
	if s.Width() != 6 || s.Height() != 3 {
		t.Fatalf("size = %dx%d, expected 6x3", s.Width(), s.Height())
	}
	if row := strings.Split(s.String(), "\n")[0]; row != "Hel   " {
		t.Errorf("after enlarging, row 0 = %q", row)
	}
}
