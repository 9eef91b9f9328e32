package object

import (
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/physics"
)

// Bullet is a shot fired upward by the player.
type Bullet struct {
	X, Y  float64
	W, H  float64
	Speed float64 // Pixels per tick, applied upward
}

// NewBullet creates a bullet with its top-left corner at (x, y).
func NewBullet(x, y float64) *Bullet {
	return &Bullet{
		X:     x,
		Y:     y,
		W:     config.BulletWidth,
		H:     config.BulletHeight,
		Speed: config.BulletSpeed,
	}
}

// Update moves the bullet one tick upward.
func (b *Bullet) Update() {
	b.Y -= b.Speed
}

// OffField reports whether the bullet has fully left the top of the field.
func (b *Bullet) OffField() bool {
	return b.Y+b.H < 0
}

// Bounds returns the bullet's collision box.
func (b *Bullet) Bounds() physics.Rect {
	return physics.Rect{X: b.X, Y: b.Y, W: b.W, H: b.H}
}

// Draw renders the bullet as a thin bar.
func (b *Bullet) Draw(ctx DrawContext) error {
	ctx.Canvas.SetColor(draw.ColorCyan)
	ctx.Canvas.FillRect(b.X+b.W/3, b.Y, b.W/3, b.H)
	return nil
}

// Missile is a shot fired downward by an enemy.
type Missile struct {
	X, Y  float64
	W, H  float64
	Speed float64 // Pixels per tick, fixed at fire time
}

// NewMissile creates a missile with its top-left corner at (x, y).
func NewMissile(x, y, speed float64) *Missile {
	return &Missile{
		X:     x,
		Y:     y,
		W:     config.MissileWidth,
		H:     config.MissileHeight,
		Speed: speed,
	}
}

// Update moves the missile one tick downward.
func (m *Missile) Update() {
	m.Y += m.Speed
}

// OffField reports whether the missile has passed the bottom of a field of the given height.
func (m *Missile) OffField(height float64) bool {
	return m.Y > height
}

// Bounds returns the missile's collision box.
func (m *Missile) Bounds() physics.Rect {
	return physics.Rect{X: m.X, Y: m.Y, W: m.W, H: m.H}
}

// Draw renders the missile.
func (m *Missile) Draw(ctx DrawContext) error {
	ctx.Canvas.SetColor(draw.ColorBrightRed)
	ctx.Canvas.FillRect(m.X, m.Y, m.W, m.H)
	return nil
}
