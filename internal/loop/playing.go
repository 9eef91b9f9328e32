package loop

import (
	"math/rand"

	"github.com/tomz197/invaders/internal/audio"
	"github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/object"
)

// Env carries what the simulation step needs besides the state itself.
type Env struct {
	Rand    *rand.Rand
	Effects audio.Effects
	Timers  *Scheduler
}

// Step advances the simulation by one tick: ship, enemies, missiles, bullets,
// explosions, then the win check.
func Step(st *State, env Env) {
	st.Ship.Move(st.Layout)
	st.Enemies.Advance(st.EnemySpeed, st.Layout.Width)
	updateMissiles(st, env)
	updateBullets(st, env)
	updateExplosions(st)
	checkWin(st)
}

// fireMissile launches a missile from a random living enemy. Does nothing if
// every enemy is dead.
func fireMissile(st *State, rng *rand.Rand) {
	alive := st.Enemies.Alive()
	if len(alive) == 0 {
		return
	}
	shooter := st.Enemies.Bounds(alive[rng.Intn(len(alive))])
	x := shooter.X + shooter.W/2 - config.MissileWidth/2
	st.Missiles = append(st.Missiles, object.NewMissile(x, shooter.Bottom(), st.MissileSpeed))
}

func updateMissiles(st *State, env Env) {
	// An empty list fires a fresh missile and skips the rest of the phase,
	// so the new missile first moves on the next tick.
	if len(st.Missiles) == 0 {
		fireMissile(st, env.Rand)
		return
	}

	last := len(st.Missiles) - 1
	kept := st.Missiles[:0]
	for i, m := range st.Missiles {
		m.Update()

		if !st.followUpPending && i == last && m.Y > st.Layout.Height*config.MissileFollowUpRatio {
			scheduleFollowUp(st, env)
		}

		if st.Lives > 0 && st.missileHitsShip(m) {
			shipHit(st, env)
			continue
		}
		if m.OffField(st.Layout.Height) {
			continue
		}
		kept = append(kept, m)
	}
	clear(st.Missiles[len(kept):])
	st.Missiles = kept
}

// scheduleFollowUp queues one extra missile after a short delay. At most one
// follow-up is pending at a time.
func scheduleFollowUp(st *State, env Env) {
	st.followUpPending = true
	gen := st.Generation
	env.Timers.After(config.MissileFollowUpDelay, func() {
		if st.Generation != gen {
			return
		}
		st.followUpPending = false
		if !st.Over {
			fireMissile(st, env.Rand)
		}
	})
}

// shipHit costs a life. The last life ends the session; otherwise the ship
// respawns at a random x.
func shipHit(st *State, env Env) {
	env.Effects.ShipDestroyed()
	cx, cy := st.Ship.Bounds().Center()
	st.Explosions = append(st.Explosions, object.NewExplosion(cx, cy))

	st.Lives--
	if st.Lives > 0 {
		st.respawnShip(env.Rand)
		return
	}

	st.Lives = 0
	st.Over = true
	env.Effects.StopMusic()
	gen := st.Generation
	env.Timers.After(config.LoseSoundDelay, func() {
		if st.Generation == gen {
			env.Effects.Lose()
		}
	})
}

func updateBullets(st *State, env Env) {
	kept := st.Bullets[:0]
	for _, b := range st.Bullets {
		b.Update()
		if e := bulletHit(st.Enemies, b); e != nil {
			env.Effects.EnemyHit()
			st.destroyEnemy(e)
			continue
		}
		if b.OffField() {
			continue
		}
		kept = append(kept, b)
	}
	clear(st.Bullets[len(kept):])
	st.Bullets = kept
}

func updateExplosions(st *State) {
	kept := st.Explosions[:0]
	for _, e := range st.Explosions {
		if !e.Age() {
			kept = append(kept, e)
		}
	}
	clear(st.Explosions[len(kept):])
	st.Explosions = kept
}

// checkWin sets the sticky win flag once every enemy is dead, unless time has
// already run out.
func checkWin(st *State) {
	if !st.Won && st.TimeLeft > 0 && st.Enemies.AllDead() {
		st.Won = true
	}
}

// FireBullet spawns a bullet at the ship's muzzle if the cooldown allows it.
// Returns whether a bullet was fired.
func FireBullet(st *State, timers *Scheduler) bool {
	if !st.CanShoot {
		return false
	}
	x, y := st.Ship.Muzzle()
	st.Bullets = append(st.Bullets, object.NewBullet(x, y))
	st.CanShoot = false
	gen := st.Generation
	timers.After(config.BulletCooldown, func() {
		if st.Generation == gen {
			st.CanShoot = true
		}
	})
	return true
}
