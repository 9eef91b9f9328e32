// Package loop provides the game simulation, the session controller and the
// terminal game loop.
package loop

import (
	"bufio"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/invaders/internal/audio"
	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/input"
	gamecfg "github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/scores"
)

// Options configures a terminal game.
type Options struct {
	TermSizeFunc draw.TermSizeFunc
	Player       string
	Store        scores.Store
	Settings     config.Settings
	Logger       *log.Logger
	Effects      audio.Effects // Defaults to the terminal bell
}

// Run plays a terminal game until the player quits or the input closes.
// It follows the Input → Update → Draw cycle at a fixed frame rate.
func Run(r *bufio.Reader, w io.Writer, opts Options) error {
	if opts.Effects == nil {
		opts.Effects = audio.Bell{W: w}
	}
	settings, fixed := opts.Settings.Normalize()

	start := time.Now()
	session := NewSession(SessionOptions{
		Layout:   gamecfg.DefaultLayout(),
		Settings: settings,
		Player:   opts.Player,
		Store:    opts.Store,
		Effects:  opts.Effects,
		Logger:   opts.Logger,
	}, start)
	if len(fixed) > 0 && opts.Settings != (config.Settings{}) && opts.Logger != nil {
		opts.Logger.Warn("invalid settings replaced with defaults", "fields", fixed)
	}

	stream := input.StartStream(r, gamecfg.KeyReleaseAfter)
	term := newTerminal(w, opts.TermSizeFunc, draw.ColorByName(settings.SpaceshipColor))

	draw.HideCursor(w)
	defer draw.ShowCursor(w)
	draw.ClearScreen(w)

	session.Start()

	for !session.Quit() {
		frameStart := time.Now()

		// ===== INPUT PHASE =====
		events, closed := stream.ReadEvents(frameStart)
		generation := session.State().Generation
		for _, ev := range events {
			session.Dispatch(ev)
		}
		if session.State().Generation != generation {
			// A reset game starts with no keys held.
			stream.Reset()
		}
		if closed {
			break
		}

		// ===== UPDATE PHASE =====
		term.updateScreen()
		session.Frame(frameStart)

		// ===== DRAW PHASE =====
		if term.needsDraw(session) {
			if err := term.drawFrame(session); err != nil {
				return err
			}
		}

		// ===== FRAME TIMING =====
		elapsed := time.Since(frameStart)
		if elapsed < gamecfg.TargetFrameTime {
			time.Sleep(gamecfg.TargetFrameTime - elapsed)
		}
	}

	draw.ClearScreen(w)
	return nil
}
