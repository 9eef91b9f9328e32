package loop

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/tomz197/invaders/internal/audio"
	"github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/object"
)

func newTestState(t *testing.T) (*State, Env, *audio.Recorder) {
	t.Helper()
	rng := rand.New(rand.NewSource(1))
	rec := &audio.Recorder{}
	st := NewState(config.DefaultLayout(), config.DefaultGameSeconds, rng)
	return st, Env{Rand: rng, Effects: rec, Timers: NewScheduler(epoch)}, rec
}

// missileOnShip returns a stationary missile overlapping the ship.
func missileOnShip(st *State) *object.Missile {
	return object.NewMissile(st.Ship.X+5, st.Ship.Y+5, 0)
}

func TestNewStateDefaults(t *testing.T) {
	st, _, _ := newTestState(t)

	if st.Lives != 3 || st.Score != 0 || st.TimeLeft != 60 {
		t.Errorf("lives=%d score=%d time=%d, want 3/0/60", st.Lives, st.Score, st.TimeLeft)
	}
	if st.Won || st.Over {
		t.Error("new state is already finished")
	}
	if len(st.Enemies.Alive()) != 20 {
		t.Errorf("alive enemies = %d, want 20", len(st.Enemies.Alive()))
	}
	if st.Ship.Y != st.Layout.SpawnY {
		t.Errorf("ship y = %v, want spawn %v", st.Ship.Y, st.Layout.SpawnY)
	}
	if st.Ship.X < 0 || st.Ship.X > st.Layout.Width-st.Ship.W {
		t.Errorf("ship x = %v outside field", st.Ship.X)
	}
}

func TestStepClampsShip(t *testing.T) {
	st, env, _ := newTestState(t)
	st.Ship.DX = -config.ShipSpeed
	st.Ship.DY = -config.ShipSpeed

	for i := 0; i < 200; i++ {
		st.Missiles = nil // Fresh missiles never move, so the ship is never hit.
		Step(st, env)
	}
	if st.Ship.X != 0 {
		t.Errorf("ship x = %v, want 0", st.Ship.X)
	}
	if st.Ship.Y != st.Layout.BandTop {
		t.Errorf("ship y = %v, want band top %v", st.Ship.Y, st.Layout.BandTop)
	}
}

func TestMissileFiresWithOneTickLag(t *testing.T) {
	st, env, _ := newTestState(t)

	Step(st, env)
	if len(st.Missiles) != 1 {
		t.Fatalf("missiles = %d, want 1", len(st.Missiles))
	}
	m := st.Missiles[0]
	y := m.Y
	if math.Mod(y-config.EnemyOriginY-config.EnemyHeight, config.EnemyHeight+config.EnemySpacing) != 0 {
		t.Errorf("missile y = %v, not at the bottom of an enemy row", y)
	}

	Step(st, env)
	if m.Y != y+st.MissileSpeed {
		t.Errorf("missile y = %v after second tick, want %v", m.Y, y+st.MissileSpeed)
	}
}

func TestFollowUpMissile(t *testing.T) {
	st, env, _ := newTestState(t)
	st.Ship.X = 0
	st.Missiles = append(st.Missiles, object.NewMissile(700, st.Layout.Height*0.75, 2))

	Step(st, env)
	if !st.followUpPending {
		t.Fatal("follow-up not scheduled past the threshold")
	}
	Step(st, env)
	if env.Timers.Pending() != 1 {
		t.Errorf("pending timers = %d, want a single follow-up", env.Timers.Pending())
	}

	env.Timers.Advance(epoch.Add(config.MissileFollowUpDelay))
	if len(st.Missiles) != 2 {
		t.Errorf("missiles = %d, want 2 after follow-up", len(st.Missiles))
	}
	if st.followUpPending {
		t.Error("follow-up flag not cleared")
	}
}

func TestMissileLeavesField(t *testing.T) {
	st, env, _ := newTestState(t)
	st.Ship.X = 0
	st.Missiles = []*object.Missile{object.NewMissile(700, st.Layout.Height-1, 2)}

	Step(st, env)
	if len(st.Missiles) != 0 {
		t.Errorf("missiles = %d, want off-field missile removed", len(st.Missiles))
	}
}

func TestShipHitRespawns(t *testing.T) {
	st, env, rec := newTestState(t)
	st.Missiles = []*object.Missile{missileOnShip(st)}

	Step(st, env)
	if st.Lives != 2 {
		t.Errorf("lives = %d, want 2", st.Lives)
	}
	if st.Over {
		t.Error("game over after first hit")
	}
	if st.Ship.Y != st.Layout.SpawnY {
		t.Errorf("ship y = %v, want respawn at %v", st.Ship.Y, st.Layout.SpawnY)
	}
	if len(st.Explosions) != 1 {
		t.Errorf("explosions = %d, want 1", len(st.Explosions))
	}
	if rec.ShipsDestroyed != 1 {
		t.Errorf("ship destroyed sounds = %d, want 1", rec.ShipsDestroyed)
	}
}

func TestLastLifeEndsGame(t *testing.T) {
	st, env, rec := newTestState(t)

	for i := 0; i < 3; i++ {
		st.Missiles = []*object.Missile{missileOnShip(st)}
		Step(st, env)
		if got, want := st.Over, st.Lives == 0; got != want {
			t.Fatalf("hit %d: over = %v with %d lives", i+1, got, st.Lives)
		}
	}
	if st.Lives != 0 {
		t.Fatalf("lives = %d, want 0", st.Lives)
	}
	if rec.MusicStops != 1 {
		t.Errorf("music stops = %d, want 1", rec.MusicStops)
	}

	// A further hit never takes lives below zero.
	st.Missiles = []*object.Missile{missileOnShip(st)}
	Step(st, env)
	if st.Lives != 0 {
		t.Errorf("lives = %d after extra hit, want 0", st.Lives)
	}

	env.Timers.Advance(epoch.Add(config.LoseSoundDelay))
	if rec.Losses != 1 {
		t.Errorf("lose sounds = %d, want 1", rec.Losses)
	}
}

func TestLoseSoundCancelledByReset(t *testing.T) {
	st, env, rec := newTestState(t)
	for i := 0; i < 3; i++ {
		st.Missiles = []*object.Missile{missileOnShip(st)}
		Step(st, env)
	}
	st.Reset(env.Rand)

	env.Timers.Advance(epoch.Add(time.Second))
	if rec.Losses != 0 {
		t.Errorf("lose sound played after reset")
	}
}

func TestBulletKillsEnemyAndScores(t *testing.T) {
	for row, want := range []int{20, 15, 10, 5} {
		st, env, rec := newTestState(t)
		target := st.Enemies.Enemies[row*config.EnemyCols]
		box := st.Enemies.Bounds(target)
		st.Bullets = []*object.Bullet{object.NewBullet(box.X+box.W/2, box.Y+box.H/2)}

		Step(st, env)
		if target.Alive {
			t.Errorf("row %d: enemy still alive", row)
		}
		if st.Score != want {
			t.Errorf("row %d: score = %d, want %d", row, st.Score, want)
		}
		if len(st.Bullets) != 0 {
			t.Errorf("row %d: bullet not consumed", row)
		}
		if len(st.Explosions) != 2 {
			t.Errorf("row %d: explosions = %d, want 2", row, len(st.Explosions))
		}
		if rec.EnemyHits != 1 {
			t.Errorf("row %d: enemy hit sounds = %d", row, rec.EnemyHits)
		}
	}
}

func TestBulletHitsOneEnemyOnly(t *testing.T) {
	st, env, _ := newTestState(t)
	a := st.Enemies.Bounds(st.Enemies.Enemies[0])
	// Wide enough to straddle two columns.
	b := object.NewBullet(a.Right()-2, a.Y+a.H/2)
	b.W = config.EnemySpacing + 10
	st.Bullets = []*object.Bullet{b}

	Step(st, env)
	if got := 20 - len(st.Enemies.Alive()); got != 1 {
		t.Errorf("killed %d enemies, want 1", got)
	}
}

func TestBulletLeavesField(t *testing.T) {
	st, env, _ := newTestState(t)
	st.Bullets = []*object.Bullet{object.NewBullet(700, -config.BulletHeight+1)}

	Step(st, env)
	if len(st.Bullets) != 0 {
		t.Errorf("bullets = %d, want 0", len(st.Bullets))
	}
}

func TestWinIsSticky(t *testing.T) {
	st, env, _ := newTestState(t)
	for _, e := range st.Enemies.Enemies {
		e.Alive = false
	}

	Step(st, env)
	if !st.Won {
		t.Fatal("not won with every enemy dead")
	}
	st.Enemies.Enemies[0].Alive = true
	Step(st, env)
	if !st.Won {
		t.Error("win flag cleared")
	}
}

func TestNoWinAfterTimeExpired(t *testing.T) {
	st, env, _ := newTestState(t)
	st.TimeLeft = 0
	st.Over = true
	for _, e := range st.Enemies.Enemies {
		e.Alive = false
	}

	Step(st, env)
	if st.Won {
		t.Error("won after time expired")
	}
}

func TestBulletCooldown(t *testing.T) {
	st, env, _ := newTestState(t)

	if !FireBullet(st, env.Timers) {
		t.Fatal("first shot refused")
	}
	if FireBullet(st, env.Timers) {
		t.Error("second shot allowed during cooldown")
	}
	env.Timers.Advance(epoch.Add(config.BulletCooldown))
	if !FireBullet(st, env.Timers) {
		t.Error("shot refused after cooldown")
	}
	if len(st.Bullets) != 2 {
		t.Errorf("bullets = %d, want 2", len(st.Bullets))
	}
}

func TestCountdown(t *testing.T) {
	st, _, _ := newTestState(t)
	st.TimeLeft = 2

	if st.Countdown() {
		t.Fatal("expired with a second left")
	}
	if !st.Countdown() {
		t.Fatal("not expired at zero")
	}
	if st.TimeLeft != 0 || !st.Over {
		t.Errorf("timeLeft=%d over=%v, want 0/true", st.TimeLeft, st.Over)
	}
	st.Countdown()
	if st.TimeLeft != 0 {
		t.Errorf("timeLeft = %d, went negative", st.TimeLeft)
	}
}

func TestBoostStopsAtMax(t *testing.T) {
	st, _, _ := newTestState(t)

	for i := 0; i < config.MaxBoosts; i++ {
		if st.Boost() {
			t.Fatalf("ramp stopped after %d boosts", i+1)
		}
	}
	if !st.Boost() {
		t.Error("ramp did not stop past the maximum")
	}
	want := config.BaseEnemySpeed + config.MaxBoosts*config.BoostAmount
	if math.Abs(st.EnemySpeed-want) > 1e-9 || math.Abs(st.MissileSpeed-want) > 1e-9 {
		t.Errorf("speeds = %v/%v, want %v", st.EnemySpeed, st.MissileSpeed, want)
	}
	if st.Boosts != config.MaxBoosts {
		t.Errorf("boosts = %d, want %d", st.Boosts, config.MaxBoosts)
	}
}

func TestResetRestoresEverything(t *testing.T) {
	st, env, _ := newTestState(t)
	st.Score = 55
	st.Lives = 1
	st.TimeLeft = 3
	st.Won = true
	st.Over = true
	st.Boost()
	st.Enemies.Enemies[4].Alive = false
	st.Enemies.X = 300
	st.Enemies.Dir = -1
	FireBullet(st, env.Timers)
	st.Missiles = []*object.Missile{missileOnShip(st)}
	st.Explosions = []*object.Explosion{object.NewExplosion(1, 1)}
	gen := st.Generation

	st.Reset(env.Rand)
	if st.Score != 0 || st.Lives != 3 || st.TimeLeft != 60 || st.Won || st.Over {
		t.Errorf("counters not reset: %+v", st)
	}
	if st.Boosts != 0 || st.EnemySpeed != config.BaseEnemySpeed || st.MissileSpeed != config.BaseMissileSpeed {
		t.Error("difficulty not reset")
	}
	if len(st.Bullets)+len(st.Missiles)+len(st.Explosions) != 0 {
		t.Error("entity lists not emptied")
	}
	if len(st.Enemies.Alive()) != 20 || st.Enemies.X != config.EnemyOriginX || st.Enemies.Dir != 1 {
		t.Error("enemy grid not reset")
	}
	if !st.CanShoot {
		t.Error("cooldown survived reset")
	}
	if st.Generation == gen {
		t.Error("generation unchanged")
	}
}
