package loop

import (
	"math/rand"

	"github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/object"
)

// State holds all mutable session state. The simulation step is its only
// writer while a session is playing; rendering only reads it.
type State struct {
	Layout config.Layout

	Ship       *object.Ship
	Bullets    []*object.Bullet
	Missiles   []*object.Missile
	Enemies    *object.EnemyGroup
	Explosions []*object.Explosion

	Score    int
	Lives    int
	TimeLeft int  // Seconds
	GameTime int  // Configured match duration in seconds
	Won      bool // Sticky once set
	Over     bool

	Boosts       int
	EnemySpeed   float64
	MissileSpeed float64

	CanShoot        bool // Cleared for the bullet cooldown after each shot
	followUpPending bool // A follow-up missile is scheduled

	// Generation changes on every reset. Delayed callbacks capture it and do
	// nothing if the session they belong to has been reset since.
	Generation int
}

// NewState creates a fresh session state for the given layout and duration.
func NewState(layout config.Layout, gameSeconds int, rng *rand.Rand) *State {
	st := &State{
		Layout:   layout,
		GameTime: gameSeconds,
		Ship:     object.NewShip(0, layout.SpawnY),
		Enemies:  object.NewEnemyGroup(config.EnemyRows, config.EnemyCols),
	}
	st.Reset(rng)
	return st
}

// Reset restores every session value and entity to its initial state and
// places the ship at a random x.
func (st *State) Reset(rng *rand.Rand) {
	st.Generation++

	st.Score = 0
	st.Lives = config.InitialLives
	st.TimeLeft = st.GameTime
	st.Won = false
	st.Over = false

	st.Boosts = 0
	st.EnemySpeed = config.BaseEnemySpeed
	st.MissileSpeed = config.BaseMissileSpeed

	st.CanShoot = true
	st.followUpPending = false

	st.Bullets = nil
	st.Missiles = nil
	st.Explosions = nil
	st.Enemies.Reset()

	st.Ship.Stop()
	st.respawnShip(rng)
}

// respawnShip moves the ship to a random x at the fixed spawn height.
func (st *State) respawnShip(rng *rand.Rand) {
	st.Ship.X = rng.Float64() * (st.Layout.Width - st.Ship.W)
	st.Ship.Y = st.Layout.SpawnY
}

// Countdown removes one second from the clock while the session is active.
// Returns true once time has run out and the countdown should stop.
func (st *State) Countdown() bool {
	if st.Over || st.Won {
		return false
	}
	st.TimeLeft--
	if st.TimeLeft <= 0 {
		st.TimeLeft = 0
		st.Over = true
		return true
	}
	return false
}

// Boost applies one difficulty step. Returns true once the maximum number of
// boosts has been applied and the ramp should stop.
func (st *State) Boost() bool {
	st.Boosts++
	if st.Boosts > config.MaxBoosts {
		st.Boosts = config.MaxBoosts
		return true
	}
	st.EnemySpeed += config.BoostAmount
	st.MissileSpeed += config.BoostAmount
	return false
}

// Drawables returns every visible entity in draw order.
func (st *State) Drawables() []object.Drawable {
	d := make([]object.Drawable, 0, 2+len(st.Missiles)+len(st.Bullets)+len(st.Explosions))
	d = append(d, st.Ship, st.Enemies)
	for _, m := range st.Missiles {
		d = append(d, m)
	}
	for _, b := range st.Bullets {
		d = append(d, b)
	}
	for _, e := range st.Explosions {
		d = append(d, e)
	}
	return d
}
