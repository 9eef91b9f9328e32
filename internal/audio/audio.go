// Package audio defines the sound triggers the game fires. Playback itself is
// provided by each frontend.
package audio

import (
	"io"

	"github.com/tomz197/invaders/internal/draw"
)

// Effects receives the game's audio triggers. Implementations must not block.
type Effects interface {
	// StartMusic (re)starts the background loop from the beginning.
	StartMusic()
	// StopMusic stops the background loop and rewinds it.
	StopMusic()
	// EnemyHit plays the one-shot enemy hit sound. Instances may overlap.
	EnemyHit()
	// ShipDestroyed plays the one-shot ship hit sound, restarting it if playing.
	ShipDestroyed()
	// Lose plays the one-shot loss jingle.
	Lose()
}

// Nop discards every trigger.
type Nop struct{}

func (Nop) StartMusic()    {}
func (Nop) StopMusic()     {}
func (Nop) EnemyHit()      {}
func (Nop) ShipDestroyed() {}
func (Nop) Lose()          {}

// Bell maps the two ship-related triggers to the terminal bell. Terminals
// have no music or layered sounds, so the rest are dropped.
type Bell struct {
	W io.Writer
}

func (Bell) StartMusic() {}
func (Bell) StopMusic()  {}
func (Bell) EnemyHit()   {}

func (b Bell) ShipDestroyed() {
	draw.Bell(b.W)
}

func (b Bell) Lose() {
	draw.Bell(b.W)
}

// Recorder counts triggers. Useful for tests and debugging.
type Recorder struct {
	MusicStarts    int
	MusicStops     int
	EnemyHits      int
	ShipsDestroyed int
	Losses         int
}

func (r *Recorder) StartMusic()    { r.MusicStarts++ }
func (r *Recorder) StopMusic()     { r.MusicStops++ }
func (r *Recorder) EnemyHit()      { r.EnemyHits++ }
func (r *Recorder) ShipDestroyed() { r.ShipsDestroyed++ }
func (r *Recorder) Lose()          { r.Losses++ }

var (
	_ Effects = Nop{}
	_ Effects = Bell{}
	_ Effects = (*Recorder)(nil)
)
