package assets

import (
	"math"
	"math/rand"
	"time"
)

// SampleRate of every synthesized clip.
const SampleRate = 44100

// Clips are the synthesized game sounds as 16-bit little-endian stereo PCM.
type Clips struct {
	Music         []byte // Loops
	EnemyHit      []byte
	ShipDestroyed []byte
	Lose          []byte
}

// themeNotes is the background loop, in Hz.
var themeNotes = []float64{
	146.83, 146.83, 174.61, 146.83, 196.00, 174.61, 164.81, 130.81,
	146.83, 146.83, 174.61, 146.83, 220.00, 196.00, 174.61, 164.81,
}

// SynthesizeClips builds every game sound.
func SynthesizeClips() *Clips {
	return &Clips{
		Music:         Melody(themeNotes, 180*time.Millisecond, 1800),
		EnemyHit:      Sweep(900, 300, 120*time.Millisecond, 5000),
		ShipDestroyed: Noise(400*time.Millisecond, 6000, 1),
		Lose:          Melody([]float64{392.00, 329.63, 261.63, 196.00}, 250*time.Millisecond, 5000),
	}
}

// samples returns the number of frames in d.
func samples(d time.Duration) int {
	return int(d.Seconds() * SampleRate)
}

// putFrame writes v to both channels of frame i.
func putFrame(buf []byte, i int, v float64) {
	s := int16(math.Max(math.MinInt16, math.Min(math.MaxInt16, v)))
	for ch := 0; ch < 2; ch++ {
		idx := i*4 + ch*2
		buf[idx] = byte(s)
		buf[idx+1] = byte(s >> 8)
	}
}

// Tone is a decaying sine at freq.
func Tone(freq float64, d time.Duration, amplitude float64) []byte {
	n := samples(d)
	buf := make([]byte, n*4)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		envelope := math.Exp(-3 * t)
		putFrame(buf, i, math.Sin(2*math.Pi*freq*t)*amplitude*envelope)
	}
	return buf
}

// Sweep glides a square-ish wave from one frequency to another.
func Sweep(from, to float64, d time.Duration, amplitude float64) []byte {
	n := samples(d)
	buf := make([]byte, n*4)
	phase := 0.0
	for i := 0; i < n; i++ {
		p := float64(i) / float64(n)
		freq := from + (to-from)*p
		phase += 2 * math.Pi * freq / SampleRate
		v := math.Copysign(1, math.Sin(phase)) * 0.6
		putFrame(buf, i, v*amplitude*(1-p))
	}
	return buf
}

// Noise is a decaying burst of white noise. The seed keeps clips reproducible.
func Noise(d time.Duration, amplitude float64, seed int64) []byte {
	rng := rand.New(rand.NewSource(seed))
	n := samples(d)
	buf := make([]byte, n*4)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		putFrame(buf, i, (rng.Float64()*2-1)*amplitude*math.Exp(-6*t))
	}
	return buf
}

// Melody plays each note for noteLen.
func Melody(notes []float64, noteLen time.Duration, amplitude float64) []byte {
	var buf []byte
	for _, freq := range notes {
		buf = append(buf, Tone(freq, noteLen, amplitude)...)
	}
	return buf
}
