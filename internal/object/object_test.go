package object

import (
	"testing"

	"github.com/tomz197/invaders/internal/loop/config"
)

func TestShipMoveClampsToField(t *testing.T) {
	layout := config.NewLayout(800, 600)
	s := NewShip(10, layout.SpawnY)

	s.DX = -1000
	s.DY = -1000
	s.Move(layout)
	if s.X != 0 {
		t.Errorf("X = %v, want 0", s.X)
	}
	if s.Y != layout.BandTop {
		t.Errorf("Y = %v, want band top %v", s.Y, layout.BandTop)
	}

	s.DX = 1000
	s.DY = 1000
	s.Move(layout)
	if s.X != layout.Width-s.W {
		t.Errorf("X = %v, want %v", s.X, layout.Width-s.W)
	}
	if s.Y != layout.BandBottom {
		t.Errorf("Y = %v, want band bottom %v", s.Y, layout.BandBottom)
	}
}

func TestShipMuzzleIsCentered(t *testing.T) {
	s := NewShip(100, 500)
	x, y := s.Muzzle()
	b := NewBullet(x, y)
	bx, _ := b.Bounds().Center()
	sx, _ := s.Bounds().Center()
	if bx != sx {
		t.Errorf("bullet center x = %v, want ship center x %v", bx, sx)
	}
	if y != s.Y {
		t.Errorf("muzzle y = %v, want %v", y, s.Y)
	}
}

func TestEnemyGroupLayout(t *testing.T) {
	g := NewEnemyGroup(4, 5)
	if len(g.Enemies) != 20 {
		t.Fatalf("got %d enemies, want 20", len(g.Enemies))
	}
	last := g.Enemies[19]
	if last.Row != 3 {
		t.Errorf("last enemy row = %d, want 3", last.Row)
	}
	step := float64(config.EnemyWidth + config.EnemySpacing)
	if last.OffsetX != 4*step {
		t.Errorf("last enemy offset x = %v, want %v", last.OffsetX, 4*step)
	}
	if g.Width != 5*step {
		t.Errorf("group width = %v, want %v", g.Width, 5*step)
	}
	if g.Dir != 1 || g.X != config.EnemyOriginX || g.Y != config.EnemyOriginY {
		t.Errorf("unexpected baseline origin (%v,%v) dir %v", g.X, g.Y, g.Dir)
	}
}

func TestEnemyGroupTurnsAtEdges(t *testing.T) {
	g := NewEnemyGroup(1, 2)
	fieldWidth := g.Width + 10

	g.X = 8
	g.Advance(3, fieldWidth)
	if g.X != 11 {
		t.Fatalf("X = %v, want 11", g.X)
	}
	if g.Dir != -1 {
		t.Errorf("Dir = %v, want -1 after reaching right edge", g.Dir)
	}

	g.X = 1
	g.Advance(3, fieldWidth)
	if g.X != -2 {
		t.Fatalf("X = %v, want -2 (position updates before turning)", g.X)
	}
	if g.Dir != 1 {
		t.Errorf("Dir = %v, want 1 after reaching left edge", g.Dir)
	}

	// Moving away from an edge never flips again.
	g.Advance(3, fieldWidth)
	if g.Dir != 1 {
		t.Errorf("Dir = %v, want 1 while moving away from the edge", g.Dir)
	}
}

func TestEnemyGroupAliveAndReset(t *testing.T) {
	g := NewEnemyGroup(2, 2)
	g.Enemies[1].Alive = false
	if n := len(g.Alive()); n != 3 {
		t.Errorf("alive = %d, want 3", n)
	}
	for _, e := range g.Enemies {
		e.Alive = false
	}
	if !g.AllDead() {
		t.Error("AllDead = false, want true")
	}
	g.X = 300
	g.Dir = -1
	g.Reset()
	if g.AllDead() || len(g.Alive()) != 4 {
		t.Error("Reset should revive every enemy")
	}
	if g.X != config.EnemyOriginX || g.Dir != 1 {
		t.Error("Reset should restore origin and direction")
	}
}

func TestExplosionLifetime(t *testing.T) {
	e := NewExplosion(100, 100)
	if e.X != 100-config.ExplosionSize/2 {
		t.Errorf("X = %v, want centered", e.X)
	}

	ticks := 0
	for !e.Age() {
		ticks++
		if ticks > 1000 {
			t.Fatal("explosion never finished")
		}
	}
	ticks++
	want := config.ExplosionFrames * config.ExplosionFrameDelay
	if ticks != want {
		t.Errorf("explosion lasted %d ticks, want %d", ticks, want)
	}
}

func TestProjectilesLeaveField(t *testing.T) {
	b := NewBullet(0, 0)
	for !b.OffField() {
		b.Update()
	}
	if b.Y+b.H >= 0 {
		t.Errorf("bullet still on field at y=%v", b.Y)
	}

	m := NewMissile(0, 590, 2)
	m.Update()
	m.Update()
	if m.OffField(600) {
		t.Error("missile at y=594 reported off field")
	}
	for i := 0; i < 4; i++ {
		m.Update()
	}
	if !m.OffField(600) {
		t.Errorf("missile at y=%v should be off field", m.Y)
	}
}
