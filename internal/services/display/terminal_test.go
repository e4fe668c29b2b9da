package display

import (
	"bytes"
	"strings"
	"testing"

	"github.td.teradata.com/sandbox/touch-ctl/internal/services/geometry"
)

func TestStripFormatting(t *testing.T) {
	in := BrightWhite + BGBlue + "Retry" + Reset
	if got := StripFormatting(in); got != "Retry" {
		t.Errorf("StripFormatting: got %q, want %q", got, "Retry")
	}
}

func TestFill(t *testing.T) {
	var buf bytes.Buffer
	term := newTerminal(&buf, 20, 10)

	term.Fill(geometry.Rect{X: 2, Y: 3, Width: 5, Height: 2}, Style{Bg: BGBlue})
	if err := term.Present(); err != nil {
		t.Fatalf("Present: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "[3;2H") || !strings.Contains(out, "[4;2H") {
		t.Errorf("fill should position at rows 3 and 4, got %q", out)
	}
	if strings.Contains(out, "[5;2H") {
		t.Errorf("fill painted beyond its height, got %q", out)
	}
	if want := BGBlue + "     " + Reset; !strings.Contains(out, want) {
		t.Errorf("fill band missing, got %q", out)
	}
}

func TestFillDegenerate(t *testing.T) {
	var buf bytes.Buffer
	term := newTerminal(&buf, 20, 10)

	term.Fill(geometry.Rect{X: 2, Y: 3, Width: 0, Height: 2}, Style{Bg: BGBlue})
	term.Fill(geometry.Rect{X: 2, Y: 3, Width: 4, Height: 0}, Style{Bg: BGBlue})
	_ = term.Present()

	if buf.Len() != 0 {
		t.Errorf("degenerate rectangles should draw nothing, got %q", buf.String())
	}
}

func TestPrintClipsAtRightEdge(t *testing.T) {
	var buf bytes.Buffer
	term := newTerminal(&buf, 10, 5)

	term.At(8, 1)
	term.Print("overflow")
	_ = term.Present()

	if !strings.Contains(buf.String(), "ove") || strings.Contains(buf.String(), "overf") {
		t.Errorf("text should clip at column 10, got %q", buf.String())
	}
}

func TestPrintAtOutOfRange(t *testing.T) {
	var buf bytes.Buffer
	term := newTerminal(&buf, 10, 5)

	if ok := term.PrintAt("x", 11, 1); ok {
		t.Error("PrintAt beyond the right edge should fail")
	}
	if ok := term.PrintAt("x", 1, 6); ok {
		t.Error("PrintAt below the bottom edge should fail")
	}
	_ = term.Present()
	if !strings.Contains(buf.String(), Bell) {
		t.Errorf("out of range positioning should ring the bell, got %q", buf.String())
	}
}

func TestPaint(t *testing.T) {
	s := Style{Fg: Black, Bg: BGBrightCyan}
	if got := s.Paint("Go"); got != Black+BGBrightCyan+"Go"+Reset {
		t.Errorf("Paint: got %q", got)
	}
}
