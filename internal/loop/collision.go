package loop

import (
	"github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/object"
	"github.com/tomz197/invaders/internal/physics"
)

// bulletHit finds the first living enemy, in grid order, overlapping the
// bullet. Returns nil if the bullet hit nothing.
func bulletHit(g *object.EnemyGroup, b *object.Bullet) *object.Enemy {
	box := b.Bounds()
	for _, e := range g.Enemies {
		if e.Alive && physics.Overlaps(box, g.Bounds(e)) {
			return e
		}
	}
	return nil
}

// destroyEnemy marks e dead, awards its row score and leaves two stacked
// explosions at its center.
func (st *State) destroyEnemy(e *object.Enemy) {
	e.Alive = false
	st.Score += config.RowScore(e.Row)
	cx, cy := st.Enemies.Bounds(e).Center()
	st.Explosions = append(st.Explosions, object.NewExplosion(cx, cy), object.NewExplosion(cx, cy))
}

// missileHitsShip reports whether m overlaps the ship.
func (st *State) missileHitsShip(m *object.Missile) bool {
	return physics.Overlaps(m.Bounds(), st.Ship.Bounds())
}
