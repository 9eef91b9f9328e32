// Package desktop is the windowed frontend: it feeds keyboard events to a
// session, advances it once per ebiten tick and draws it with sprites.
package desktop

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/bitmapfont/v3"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/colornames"

	gameaudio "github.com/tomz197/invaders/internal/audio"
	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/desktop/assets"
	"github.com/tomz197/invaders/internal/input"
	"github.com/tomz197/invaders/internal/loop"
	gamecfg "github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/scores"
)

// Window size used when Options leaves it unset.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

var fontFace = text.NewGoXFace(bitmapfont.Face)

// Options configures the desktop game.
type Options struct {
	Width, Height int // Field size, fixed for the whole run
	Player        string
	Store         scores.Store
	Settings      config.Settings
	Logger        *log.Logger
	Mute          bool
}

// Game implements ebiten.Game.
type Game struct {
	session   *loop.Session
	layout    gamecfg.Layout
	shipColor color.RGBA
	logger    *log.Logger

	sprites *spriteSet
	loaded  chan spriteResult
	keys    []ebiten.Key
}

type spriteResult struct {
	sprites *assets.Sprites
	err     error
}

// NewGame creates the game and starts rasterizing sprites in the background.
// The session stays idle until they are ready.
func NewGame(opts Options) *Game {
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = DefaultWidth, DefaultHeight
	}
	logger := opts.Logger
	if logger == nil {
		logger = config.NewLogger(os.Stderr, "desktop")
	}
	settings, fixed := opts.Settings.Normalize()
	if len(fixed) > 0 {
		logger.Warn("invalid settings replaced with defaults", "fields", fixed)
	}

	var effects gameaudio.Effects = gameaudio.Nop{}
	if !opts.Mute {
		s, err := newSound(logger)
		if err != nil {
			logger.Warn("audio disabled", "err", err)
		} else {
			effects = s
		}
	}

	layout := gamecfg.NewLayout(float64(opts.Width), float64(opts.Height))
	g := &Game{
		session: loop.NewSession(loop.SessionOptions{
			Layout:   layout,
			Settings: settings,
			Player:   opts.Player,
			Store:    opts.Store,
			Effects:  effects,
			Logger:   logger,
		}, time.Now()),
		layout:    layout,
		shipColor: ShipColor(settings.SpaceshipColor),
		logger:    logger,
		loaded:    make(chan spriteResult, 1),
	}

	go func() {
		s, err := assets.LoadSprites()
		g.loaded <- spriteResult{sprites: s, err: err}
	}()
	return g
}

// ShipColor resolves a settings color name. Unknown names fall back to
// purple.
func ShipColor(name string) color.RGBA {
	if c, ok := colornames.Map[name]; ok {
		return c
	}
	return colornames.Purple
}

// Update reads the keyboard and advances the session one tick.
func (g *Game) Update() error {
	if g.sprites == nil {
		if err := g.awaitSprites(); err != nil {
			return err
		}
	}

	for _, ev := range g.events() {
		g.session.Dispatch(ev)
	}
	g.session.Frame(time.Now())

	if g.session.Quit() {
		return ebiten.Termination
	}
	return nil
}

// awaitSprites starts the session once the sprites are rasterized.
func (g *Game) awaitSprites() error {
	select {
	case res := <-g.loaded:
		if res.err != nil {
			return fmt.Errorf("load sprites: %w", res.err)
		}
		g.sprites = newSpriteSet(res.sprites)
		g.session.Start()
		g.logger.Debug("sprites ready, game started")
	default:
	}
	return nil
}

// events converts this tick's key transitions into input events.
func (g *Game) events() []input.Event {
	var events []input.Event

	g.keys = inpututil.AppendJustPressedKeys(g.keys[:0])
	for _, k := range g.keys {
		if key, ok := input.FromKeyName(k.String()); ok {
			events = append(events, input.Event{Key: key, Action: input.Press})
		}
	}
	g.keys = inpututil.AppendJustReleasedKeys(g.keys[:0])
	for _, k := range g.keys {
		if key, ok := input.FromKeyName(k.String()); ok {
			events = append(events, input.Event{Key: key, Action: input.Release})
		}
	}
	return events
}

// Layout keeps the field at its startup size; ebiten scales it to the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return int(g.layout.Width), int(g.layout.Height)
}

// Run opens the window and plays until the player quits or closes it.
func Run(opts Options) error {
	g := NewGame(opts)
	ebiten.SetWindowSize(int(g.layout.Width), int(g.layout.Height))
	ebiten.SetWindowTitle("Invaders")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
