// Package config centralizes all tunable game parameters.
package config

import "time"

// Field resolution - the logical play area used by the terminal frontends.
// Actual rendering scales to fit terminal size.
const (
	FieldWidth  = 800
	FieldHeight = 600
)

// Ship
const (
	ShipWidth         = 40
	ShipHeight        = 50
	ShipSpeed         = 5.0
	ShipBottomMargin  = 20  // Gap between the lowest ship position and the field bottom
	MovementBandRatio = 0.4 // Share of field height the ship may move in
	InitialLives      = 3
)

// Player bullets
const (
	BulletWidth    = 16
	BulletHeight   = 32
	BulletSpeed    = 5.0
	BulletCooldown = 200 * time.Millisecond
)

// Enemy grid
const (
	EnemyRows    = 4
	EnemyCols    = 5
	EnemyWidth   = 45
	EnemyHeight  = 45
	EnemySpacing = 24
	EnemyOriginX = 50
	EnemyOriginY = 50
)

// Enemy missiles
const (
	MissileWidth         = 10
	MissileHeight        = 20
	MissileFollowUpRatio = 0.75 // Share of field height a missile crosses before the next is queued
	MissileFollowUpDelay = 300 * time.Millisecond
)

// Explosions
const (
	ExplosionSize       = 32
	ExplosionFrames     = 8
	ExplosionFrameDelay = 5 // Ticks per animation frame
)

// Difficulty ramp
const (
	BaseEnemySpeed   = 2.0
	BaseMissileSpeed = 2.0
	BoostAmount      = 0.3
	MaxBoosts        = 4
	BoostInterval    = 5 * time.Second
)

// Session timing
const (
	DefaultGameSeconds = 60
	CountdownInterval  = time.Second
	LoseSoundDelay     = 500 * time.Millisecond
)

// Scoring
const (
	ScoreRow0 = 20
	ScoreRow1 = 15
	ScoreRow2 = 10
	ScoreRow3 = 5

	TopScoresShown = 5
	GoodScore      = 100 // Timed-out sessions at or above this score count as a win message
)

// Rendering
const (
	TargetFPS       = 60
	TargetFrameTime = time.Second / TargetFPS
	MaxTermWidth    = 200
	MaxTermHeight   = 60
)

// Input
const (
	// KeyReleaseAfter is how long a terminal key is considered held after its
	// last byte arrived. Terminals report no key-up events.
	KeyReleaseAfter = 120 * time.Millisecond
)

// Layout is the field geometry derived from the surface size at startup.
type Layout struct {
	Width  float64
	Height float64

	// Vertical band the ship is clamped to.
	BandTop    float64
	BandBottom float64

	// Fixed y used whenever the ship is (re)spawned.
	SpawnY float64
}

// NewLayout derives the layout for a field of the given size.
func NewLayout(width, height float64) Layout {
	bottom := height - ShipHeight - ShipBottomMargin
	return Layout{
		Width:      width,
		Height:     height,
		BandTop:    height - height*MovementBandRatio,
		BandBottom: bottom,
		SpawnY:     bottom,
	}
}

// DefaultLayout is the layout of the fixed logical terminal field.
func DefaultLayout() Layout {
	return NewLayout(FieldWidth, FieldHeight)
}

// RowScore returns the points for destroying an enemy in the given grid row.
// Top rows are worth more.
func RowScore(row int) int {
	switch row {
	case 0:
		return ScoreRow0
	case 1:
		return ScoreRow1
	case 2:
		return ScoreRow2
	case 3:
		return ScoreRow3
	default:
		return 0
	}
}
