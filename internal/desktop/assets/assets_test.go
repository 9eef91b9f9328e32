package assets

import (
	"testing"
	"time"

	"github.com/tomz197/invaders/internal/loop/config"
)

func TestLoadSprites(t *testing.T) {
	s, err := LoadSprites()
	if err != nil {
		t.Fatalf("LoadSprites: %v", err)
	}
	if b := s.Ship.Bounds(); b.Dx() != config.ShipWidth || b.Dy() != config.ShipHeight {
		t.Errorf("ship sprite is %v", b)
	}
	for row, img := range s.Enemies {
		if img == nil {
			t.Fatalf("row %d sprite missing", row)
		}
		if b := img.Bounds(); b.Dx() != config.EnemyWidth || b.Dy() != config.EnemyHeight {
			t.Errorf("row %d sprite is %v", row, b)
		}
	}

	// The ship's nose is drawn; its top corners are transparent.
	if _, _, _, a := s.Ship.At(config.ShipWidth/2, 10).RGBA(); a == 0 {
		t.Error("ship nose not rasterized")
	}
	if _, _, _, a := s.Ship.At(0, 0).RGBA(); a != 0 {
		t.Error("ship corner is opaque")
	}
}

func TestRasterizeUnknownSprite(t *testing.T) {
	if _, err := Rasterize("ufo", 10, 10); err == nil {
		t.Error("expected an error for a missing sprite")
	}
}

func TestClipLengths(t *testing.T) {
	c := SynthesizeClips()
	frames := func(b []byte) int { return len(b) / 4 }

	if got, want := frames(c.EnemyHit), samples(120*time.Millisecond); got != want {
		t.Errorf("enemy hit = %d frames, want %d", got, want)
	}
	if got, want := frames(c.Music), len(themeNotes)*samples(180*time.Millisecond); got != want {
		t.Errorf("music = %d frames, want %d", got, want)
	}
	if len(c.ShipDestroyed)%4 != 0 || len(c.Lose)%4 != 0 {
		t.Error("clip is not whole stereo frames")
	}
}

func TestToneIsStereoAndBounded(t *testing.T) {
	buf := Tone(440, 50*time.Millisecond, 40000) // Amplitude beyond int16 clips
	for i := 0; i+3 < len(buf); i += 4 {
		if buf[i] != buf[i+2] || buf[i+1] != buf[i+3] {
			t.Fatalf("frame %d channels differ", i/4)
		}
	}
}

func TestNoiseIsReproducible(t *testing.T) {
	a := Noise(10*time.Millisecond, 1000, 3)
	b := Noise(10*time.Millisecond, 1000, 3)
	if string(a) != string(b) {
		t.Error("same seed produced different noise")
	}
}
