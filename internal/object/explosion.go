package object

import (
	"math"

	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/loop/config"
)

// Explosion is a short animation spawned on any hit.
type Explosion struct {
	X, Y       float64 // Top-left of the animation box
	Frame      int
	delayCount int
}

// NewExplosion creates an explosion centered on (cx, cy).
func NewExplosion(cx, cy float64) *Explosion {
	return &Explosion{
		X: cx - config.ExplosionSize/2,
		Y: cy - config.ExplosionSize/2,
	}
}

// Age advances the animation by one tick. Returns true once the final frame
// has played and the explosion should be removed.
func (e *Explosion) Age() bool {
	e.delayCount++
	if e.delayCount >= config.ExplosionFrameDelay {
		e.Frame++
		e.delayCount = 0
	}
	return e.Frame >= config.ExplosionFrames
}

const explosionSparks = 10

// Draw renders the explosion as a ring of sparks that widens with each frame.
func (e *Explosion) Draw(ctx DrawContext) error {
	cx := e.X + config.ExplosionSize/2
	cy := e.Y + config.ExplosionSize/2
	radius := config.ExplosionSize / 2 * float64(e.Frame+1) / config.ExplosionFrames

	if e.Frame%2 == 0 {
		ctx.Canvas.SetColor(draw.ColorBrightYellow)
	} else {
		ctx.Canvas.SetColor(draw.ColorRed)
	}
	for i := 0; i < explosionSparks; i++ {
		angle := float64(i) / explosionSparks * 2 * math.Pi
		ctx.Canvas.FillRect(cx+math.Cos(angle)*radius-2, cy+math.Sin(angle)*radius-2, 4, 4)
	}
	return nil
}
