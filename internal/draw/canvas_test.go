package draw

import (
	"bytes"
	"strings"
	"testing"
)

func TestFillRectScalesToPixels(t *testing.T) {
	// 10 columns x 5 rows -> 10 x 10 pixels for a 100 x 100 logical field.
	c := NewCanvas(Viewport{Width: 10, Height: 5}, 100, 100)
	c.SetColor(ColorRed)
	c.FillRect(0, 0, 20, 20)

	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if got := c.Pixel(x, y); got != ColorRed {
				t.Errorf("pixel (%d,%d) = %v, want red", x, y, got)
			}
		}
	}
	if got := c.Pixel(2, 0); got != ColorNone {
		t.Errorf("pixel (2,0) = %v, want unset", got)
	}
}

func TestFillRectTinyStillVisible(t *testing.T) {
	c := NewCanvas(Viewport{Width: 10, Height: 5}, 1000, 1000)
	c.FillRect(505, 505, 1, 1)

	if got := c.Pixel(5, 5); got != ColorWhite {
		t.Errorf("pixel (5,5) = %v, want the default pen", got)
	}
}

func TestDrawPolygonFillsInterior(t *testing.T) {
	c := NewCanvas(Viewport{Width: 20, Height: 10}, 20, 20)
	c.SetColor(ColorGreen)
	c.DrawPolygon([]Point{{X: 2, Y: 2}, {X: 12, Y: 2}, {X: 12, Y: 12}, {X: 2, Y: 12}}, true)

	if got := c.Pixel(7, 7); got != ColorGreen {
		t.Errorf("interior pixel = %v, want green", got)
	}
	if got := c.Pixel(15, 15); got != ColorNone {
		t.Errorf("exterior pixel = %v, want unset", got)
	}
}

func TestRenderEmitsColoredHalfBlocks(t *testing.T) {
	c := NewCanvas(Viewport{Width: 4, Height: 2}, 4, 4)
	c.SetColor(ColorGreen)
	c.SetFloat(0, 0) // top half of cell (1,1)
	c.SetFloat(1, 1) // bottom half of cell (2,1)
	c.SetFloat(3, 2) // top half of cell (4,2)

	var buf bytes.Buffer
	c.Render(&buf)
	out := buf.String()

	if !strings.Contains(out, ColorGreen.ANSI()) {
		t.Error("expected green color escape in output")
	}
	// Adjacent cells share one cursor move.
	if !strings.Contains(out, "\033[1;1H"+ColorGreen.ANSI()+"▀▄") {
		t.Errorf("expected upper then lower half block from 1;1, got %q", out)
	}
	if !strings.Contains(out, "\033[2;4H▀") {
		t.Errorf("expected upper half block at 2;4, got %q", out)
	}
	if strings.Count(out, ColorGreen.ANSI()) != 1 {
		t.Errorf("expected a single color change, got %q", out)
	}
	if !strings.HasSuffix(out, ColorReset) {
		t.Error("expected output to end with a color reset")
	}
}

func TestRenderAppliesViewportOffset(t *testing.T) {
	c := NewCanvas(Viewport{Width: 4, Height: 2, Col: 10, Row: 3}, 4, 4)
	c.SetFloat(0, 0)

	var buf bytes.Buffer
	c.Render(&buf)
	if !strings.HasPrefix(buf.String(), "\033[4;11H") {
		t.Errorf("expected the first cell at 4;11, got %q", buf.String())
	}
}

func TestClearResetsPixels(t *testing.T) {
	c := NewCanvas(Viewport{Width: 4, Height: 2}, 4, 4)
	c.FillRect(0, 0, 4, 4)
	c.Clear()

	var buf bytes.Buffer
	c.Render(&buf)
	if buf.Len() != 0 {
		t.Errorf("expected empty render after Clear, got %q", buf.String())
	}
}

func TestBorder(t *testing.T) {
	tests := []struct {
		name string
		view Viewport
		want []string
		none []string
	}{
		{
			name: "no room",
			view: Viewport{Width: 3, Height: 2},
			none: []string{"─", "│"},
		},
		{
			name: "box",
			view: Viewport{Width: 3, Height: 1, Col: 2, Row: 2},
			want: []string{"\033[2;2H┌───┐", "\033[4;2H└───┘", "\033[3;2H│\033[3;6H│"},
		},
		{
			name: "only top and bottom",
			view: Viewport{Width: 3, Height: 1, Row: 1},
			want: []string{"\033[1;1H───", "\033[3;1H───"},
			none: []string{"│", "┌"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewCanvas(tt.view, 10, 10).Border(&buf)
			out := buf.String()
			for _, s := range tt.want {
				if !strings.Contains(out, s) {
					t.Errorf("missing %q in %q", s, out)
				}
			}
			for _, s := range tt.none {
				if strings.Contains(out, s) {
					t.Errorf("unexpected %q in %q", s, out)
				}
			}
		})
	}
}

func TestColorByName(t *testing.T) {
	if ColorByName("red") != ColorRed || ColorByName("blue") != ColorBlue || ColorByName("green") != ColorGreen {
		t.Error("known ship colors mapped incorrectly")
	}
	if ColorByName("chartreuse") != ColorMagenta {
		t.Error("unknown ship colors should fall back to magenta")
	}
}
