package object

import (
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/physics"
)

// Ship is the player-controlled ship.
type Ship struct {
	X, Y   float64 // Position (top-left)
	W, H   float64 // Size
	DX, DY float64 // Velocity per tick, set by input
	Speed  float64 // Magnitude applied to DX/DY by input
}

// NewShip creates a ship at the given top-left position.
func NewShip(x, y float64) *Ship {
	return &Ship{
		X:     x,
		Y:     y,
		W:     config.ShipWidth,
		H:     config.ShipHeight,
		Speed: config.ShipSpeed,
	}
}

// Bounds returns the ship's collision box.
func (s *Ship) Bounds() physics.Rect {
	return physics.Rect{X: s.X, Y: s.Y, W: s.W, H: s.H}
}

// Move applies the velocity and clamps the ship to the field width and the
// movement band. Out-of-band targets snap to the nearest bound.
func (s *Ship) Move(layout config.Layout) {
	s.X = physics.Clamp(s.X+s.DX, 0, layout.Width-s.W)
	s.Y = physics.Clamp(s.Y+s.DY, layout.BandTop, layout.BandBottom)
}

// Muzzle returns the spawn point for a bullet fired by the ship.
func (s *Ship) Muzzle() (x, y float64) {
	return s.X + s.W/2 - config.BulletWidth/2, s.Y
}

// Stop zeroes the velocity.
func (s *Ship) Stop() {
	s.DX = 0
	s.DY = 0
}

var shipShape = []draw.Point{
	{X: 0.5, Y: 0},
	{X: 0.65, Y: 0.45},
	{X: 1, Y: 0.8},
	{X: 1, Y: 1},
	{X: 0, Y: 1},
	{X: 0, Y: 0.8},
	{X: 0.35, Y: 0.45},
}

// Draw renders the ship as a filled arrowhead in the configured color.
func (s *Ship) Draw(ctx DrawContext) error {
	ctx.Canvas.SetColor(ctx.ShipColor)
	ctx.Canvas.DrawPolygon(polygonAt(ctx, shipShape, s.Bounds()), true)
	return nil
}
