package desktop

import (
	"bytes"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2/audio"

	gameaudio "github.com/tomz197/invaders/internal/audio"
	"github.com/tomz197/invaders/internal/desktop/assets"
)

// sound plays the synthesized clips through ebiten's audio context.
type sound struct {
	ctx    *audio.Context
	clips  *assets.Clips
	music  *audio.Player
	ship   *audio.Player
	lose   *audio.Player
	logger *log.Logger
}

var _ gameaudio.Effects = (*sound)(nil)

func newSound(logger *log.Logger) (*sound, error) {
	ctx := audio.NewContext(assets.SampleRate)
	clips := assets.SynthesizeClips()

	loop := audio.NewInfiniteLoop(bytes.NewReader(clips.Music), int64(len(clips.Music)))
	music, err := ctx.NewPlayer(loop)
	if err != nil {
		return nil, err
	}
	music.SetVolume(0.5)

	return &sound{
		ctx:    ctx,
		clips:  clips,
		music:  music,
		ship:   ctx.NewPlayerFromBytes(clips.ShipDestroyed),
		lose:   ctx.NewPlayerFromBytes(clips.Lose),
		logger: logger,
	}, nil
}

func (s *sound) rewind(p *audio.Player) {
	if err := p.Rewind(); err != nil {
		s.logger.Debug("rewind audio", "err", err)
	}
}

func (s *sound) StartMusic() {
	s.rewind(s.music)
	s.music.Play()
}

func (s *sound) StopMusic() {
	s.music.Pause()
	s.rewind(s.music)
}

// EnemyHit uses a fresh player per hit so overlapping hits all sound.
func (s *sound) EnemyHit() {
	s.ctx.NewPlayerFromBytes(s.clips.EnemyHit).Play()
}

func (s *sound) ShipDestroyed() {
	s.rewind(s.ship)
	s.ship.Play()
}

func (s *sound) Lose() {
	s.rewind(s.lose)
	s.lose.Play()
}
