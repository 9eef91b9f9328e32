// Package object holds the entity records of the play field and draws them
// onto the terminal canvas.
package object

import (
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/physics"
)

// DrawContext provides drawing resources for objects.
type DrawContext struct {
	Canvas    *draw.Canvas // High-resolution canvas (2x vertical)
	ShipColor draw.Color   // Color selected in settings
}

// Drawable is anything that can be drawn onto the terminal canvas.
type Drawable interface {
	Draw(ctx DrawContext) error
}

// Bounded is anything with an axis-aligned collision box.
type Bounded interface {
	Bounds() physics.Rect
}

// polygonAt scales a unit-square shape (coordinates in [0,1]) onto r.
func polygonAt(ctx DrawContext, shape []draw.Point, r physics.Rect) []draw.Point {
	pts := ctx.Canvas.BorrowPoints(len(shape))
	for i, p := range shape {
		pts[i] = draw.Point{X: r.X + p.X*r.W, Y: r.Y + p.Y*r.H}
	}
	return pts
}
