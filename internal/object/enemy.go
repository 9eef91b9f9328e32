package object

import (
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/physics"
)

// Enemy is one cell of the enemy grid. Its absolute position is the group
// origin plus its offset; enemies are never removed, only marked dead.
type Enemy struct {
	OffsetX, OffsetY float64
	Row              int
	Alive            bool
}

// EnemyGroup is the enemy grid moving as a unit.
type EnemyGroup struct {
	X, Y    float64 // Origin
	Dir     float64 // Horizontal direction, +1 or -1
	Width   float64 // Bounding width of the full grid
	Enemies []*Enemy
}

// NewEnemyGroup builds a rows x cols grid at the baseline origin.
func NewEnemyGroup(rows, cols int) *EnemyGroup {
	g := &EnemyGroup{
		Width:   float64(cols) * (config.EnemyWidth + config.EnemySpacing),
		Enemies: make([]*Enemy, 0, rows*cols),
	}
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			g.Enemies = append(g.Enemies, &Enemy{
				OffsetX: float64(col) * (config.EnemyWidth + config.EnemySpacing),
				OffsetY: float64(row) * (config.EnemyHeight + config.EnemySpacing),
				Row:     row,
				Alive:   true,
			})
		}
	}
	g.Reset()
	return g
}

// Reset revives every enemy and returns the origin and direction to baseline.
func (g *EnemyGroup) Reset() {
	g.X = config.EnemyOriginX
	g.Y = config.EnemyOriginY
	g.Dir = 1
	for _, e := range g.Enemies {
		e.Alive = true
	}
}

// Advance moves the origin by speed in the current direction. When the
// leading edge has reached a field edge the direction flips for the next tick,
// so the group may end a tick slightly past the boundary.
func (g *EnemyGroup) Advance(speed, fieldWidth float64) {
	g.X += speed * g.Dir
	if (g.Dir < 0 && g.X <= 0) || (g.Dir > 0 && g.X+g.Width >= fieldWidth) {
		g.Dir = -g.Dir
	}
}

// Bounds returns the absolute collision box of e.
func (g *EnemyGroup) Bounds(e *Enemy) physics.Rect {
	return physics.Rect{
		X: g.X + e.OffsetX,
		Y: g.Y + e.OffsetY,
		W: config.EnemyWidth,
		H: config.EnemyHeight,
	}
}

// Alive returns the living enemies in grid order.
func (g *EnemyGroup) Alive() []*Enemy {
	var alive []*Enemy
	for _, e := range g.Enemies {
		if e.Alive {
			alive = append(alive, e)
		}
	}
	return alive
}

// AllDead reports whether no enemy is alive.
func (g *EnemyGroup) AllDead() bool {
	for _, e := range g.Enemies {
		if e.Alive {
			return false
		}
	}
	return true
}

// Per-row shapes in unit coordinates, top row first.
var enemyShapes = [][]draw.Point{
	{{X: 0.5, Y: 0}, {X: 1, Y: 0.5}, {X: 0.75, Y: 1}, {X: 0.5, Y: 0.7}, {X: 0.25, Y: 1}, {X: 0, Y: 0.5}},
	{{X: 0.1, Y: 0}, {X: 0.9, Y: 0}, {X: 1, Y: 0.6}, {X: 0.8, Y: 1}, {X: 0.2, Y: 1}, {X: 0, Y: 0.6}},
	{{X: 0, Y: 0.2}, {X: 0.3, Y: 0}, {X: 0.7, Y: 0}, {X: 1, Y: 0.2}, {X: 1, Y: 0.8}, {X: 0, Y: 0.8}},
	{{X: 0, Y: 0.3}, {X: 1, Y: 0.3}, {X: 1, Y: 0.7}, {X: 0.7, Y: 1}, {X: 0.3, Y: 1}, {X: 0, Y: 0.7}},
}

var enemyColors = []draw.Color{draw.ColorBrightYellow, draw.ColorGreen, draw.ColorCyan, draw.ColorWhite}

// Draw renders every living enemy with a shape and color chosen by row.
func (g *EnemyGroup) Draw(ctx DrawContext) error {
	for _, e := range g.Enemies {
		if !e.Alive {
			continue
		}
		shape := enemyShapes[e.Row%len(enemyShapes)]
		ctx.Canvas.SetColor(enemyColors[e.Row%len(enemyColors)])
		ctx.Canvas.DrawPolygon(polygonAt(ctx, shape, g.Bounds(e)), true)
	}
	return nil
}
