package draw

import (
	"io"
	"math"
	"slices"
	"strings"
)

// Canvas is a pixel buffer rendered with half-block characters, giving two
// pixels per terminal cell vertically. Drawing calls take logical
// coordinates which are scaled onto the viewport.
type Canvas struct {
	view   Viewport
	pixels []Color // Row-major, view.Width x 2*view.Height; ColorNone if unset
	pen    Color

	logicalW, logicalH float64
	sx, sy             float64 // Logical to pixel scale

	out      []byte    // Render output, reused across frames
	scaled   []Point   // fillPolygon scratch
	crossing []float64 // fillPolygon scratch
	points   []Point   // BorrowPoints scratch
}

// NewCanvas creates a canvas covering view that maps a logicalW x logicalH
// coordinate space onto it.
func NewCanvas(view Viewport, logicalW, logicalH float64) *Canvas {
	c := &Canvas{pen: ColorWhite, logicalW: logicalW, logicalH: logicalH}
	c.SetViewport(view)
	return c
}

// SetViewport moves or resizes the canvas. Pixels are discarded when the
// size changes.
func (c *Canvas) SetViewport(v Viewport) {
	if v.Width != c.view.Width || v.Height != c.view.Height || c.pixels == nil {
		c.pixels = make([]Color, v.Width*v.Height*2)
	}
	c.view = v
	c.sx = float64(v.Width) / c.logicalW
	c.sy = float64(v.Height*2) / c.logicalH
}

// Viewport returns the area the canvas renders into.
func (c *Canvas) Viewport() Viewport {
	return c.view
}

// SetColor selects the color for subsequent drawing calls.
func (c *Canvas) SetColor(col Color) {
	if col == ColorNone {
		col = ColorWhite
	}
	c.pen = col
}

// Clear unsets every pixel.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

func (c *Canvas) plot(x, y int) {
	if x < 0 || y < 0 || x >= c.view.Width || y >= c.view.Height*2 {
		return
	}
	c.pixels[y*c.view.Width+x] = c.pen
}

// Pixel returns the color at pixel (x, y), or ColorNone outside the canvas.
func (c *Canvas) Pixel(x, y int) Color {
	if x < 0 || y < 0 || x >= c.view.Width || y >= c.view.Height*2 {
		return ColorNone
	}
	return c.pixels[y*c.view.Width+x]
}

// toPixel rounds a logical point to the nearest pixel.
func (c *Canvas) toPixel(p Point) (int, int) {
	return int(math.Round(p.X * c.sx)), int(math.Round(p.Y * c.sy))
}

// SetFloat sets the pixel nearest to logical (x, y).
func (c *Canvas) SetFloat(x, y float64) {
	c.plot(c.toPixel(Point{X: x, Y: y}))
}

// FillRect fills a logical rectangle. A rectangle smaller than a pixel still
// sets the pixel it starts in.
func (c *Canvas) FillRect(x, y, w, h float64) {
	left, top := int(math.Floor(x*c.sx)), int(math.Floor(y*c.sy))
	right := max(int(math.Ceil((x+w)*c.sx))-1, left)
	bottom := max(int(math.Ceil((y+h)*c.sy))-1, top)
	for py := top; py <= bottom; py++ {
		for px := left; px <= right; px++ {
			c.plot(px, py)
		}
	}
}

// DrawLine draws a logical line segment (Bresenham).
func (c *Canvas) DrawLine(from, to Point) {
	x, y := c.toPixel(from)
	x2, y2 := c.toPixel(to)
	dx, dy := abs(x2-x), -abs(y2-y)
	stepX, stepY := sign(x2-x), sign(y2-y)
	e := dx + dy
	for {
		c.plot(x, y)
		if x == x2 && y == y2 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x += stepX
		}
		if e2 <= dx {
			e += dx
			y += stepY
		}
	}
}

// DrawPolygon outlines a closed polygon and optionally fills it.
func (c *Canvas) DrawPolygon(points []Point, filled bool) {
	if len(points) < 3 {
		return
	}
	if filled {
		c.fillPolygon(points)
	}
	prev := points[len(points)-1]
	for _, p := range points {
		c.DrawLine(prev, p)
		prev = p
	}
}

// fillPolygon fills pixel rows by sampling each row's center against the
// polygon edges (even-odd rule).
func (c *Canvas) fillPolygon(points []Point) {
	c.scaled = c.scaled[:0]
	top, bottom := math.Inf(1), math.Inf(-1)
	for _, p := range points {
		q := Point{X: p.X * c.sx, Y: p.Y * c.sy}
		c.scaled = append(c.scaled, q)
		top, bottom = min(top, q.Y), max(bottom, q.Y)
	}

	for y := int(math.Floor(top)); y <= int(math.Ceil(bottom)); y++ {
		mid := float64(y) + 0.5
		c.crossing = c.crossing[:0]
		a := c.scaled[len(c.scaled)-1]
		for _, b := range c.scaled {
			if (a.Y <= mid) != (b.Y <= mid) {
				c.crossing = append(c.crossing, a.X+(mid-a.Y)/(b.Y-a.Y)*(b.X-a.X))
			}
			a = b
		}
		slices.Sort(c.crossing)
		for i := 1; i < len(c.crossing); i += 2 {
			for x := int(math.Ceil(c.crossing[i-1])); x <= int(math.Floor(c.crossing[i])); x++ {
				c.plot(x, y)
			}
		}
	}
}

// cellGlyph picks the half-block glyph and color for a cell from its two
// pixels. The top pixel's color wins when both are set.
func cellGlyph(top, bottom Color) (string, Color) {
	switch {
	case top != ColorNone && bottom != ColorNone:
		return string(BlockFull), top
	case top != ColorNone:
		return string(BlockUpperHalf), top
	case bottom != ColorNone:
		return string(BlockLowerHalf), bottom
	}
	return "", ColorNone
}

// Render writes the set cells to w. Runs of adjacent cells share a single
// cursor move and color changes are emitted only when the color differs.
func (c *Canvas) Render(w io.Writer) {
	b := c.out[:0]
	width := c.view.Width
	pen := ColorNone
	for row := 0; row < c.view.Height; row++ {
		upper := c.pixels[2*row*width : (2*row+1)*width]
		lower := c.pixels[(2*row+1)*width : (2*row+2)*width]
		adjacent := false
		for col := range width {
			glyph, color := cellGlyph(upper[col], lower[col])
			if glyph == "" {
				adjacent = false
				continue
			}
			if !adjacent {
				b = appendCursor(b, c.view.Col+col+1, c.view.Row+row+1)
				adjacent = true
			}
			if color != pen {
				b = append(b, color.ANSI()...)
				pen = color
			}
			b = append(b, glyph...)
		}
	}
	if pen != ColorNone {
		b = append(b, ColorReset...)
	}
	c.out = b
	w.Write(b)
}

// Border frames the viewport with box-drawing lines on every side the
// terminal has room for.
func (c *Canvas) Border(w io.Writer) {
	v := c.view
	left, right := v.Col, v.Col+v.Width+1
	top, bottom := v.Row, v.Row+v.Height+1
	sides := left >= 1
	ends := top >= 1

	var b []byte
	if ends {
		line := strings.Repeat("─", v.Width)
		for _, r := range [2]struct {
			row         int
			first, last string
		}{{top, "┌", "┐"}, {bottom, "└", "┘"}} {
			if sides {
				b = appendCursor(b, left, r.row)
				b = append(b, r.first...)
				b = append(b, line...)
				b = append(b, r.last...)
			} else {
				b = appendCursor(b, left+1, r.row)
				b = append(b, line...)
			}
		}
	}
	if sides {
		for row := top + 1; row < bottom; row++ {
			b = appendCursor(b, left, row)
			b = append(b, "│"...)
			b = appendCursor(b, right, row)
			b = append(b, "│"...)
		}
	}
	w.Write(b)
}

// BorrowPoints returns a scratch slice of n points, valid until the next call.
func (c *Canvas) BorrowPoints(n int) []Point {
	if cap(c.points) < n {
		c.points = make([]Point, n)
	}
	return c.points[:n]
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
