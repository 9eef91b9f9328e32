package loop

import (
	"io"

	"github.com/tomz197/invaders/internal/draw"
	gamecfg "github.com/tomz197/invaders/internal/loop/config"
)

// terminal owns the output side of a terminal game.
type terminal struct {
	w      io.Writer
	size   draw.TermSizeFunc
	canvas *draw.Canvas
	frame  *draw.Frame
	ship   draw.Color

	drawnVersion int
	resized      bool
}

func newTerminal(w io.Writer, size draw.TermSizeFunc, ship draw.Color) *terminal {
	if size == nil {
		size = draw.DefaultTermSizeFunc
	}
	// An unknown size starts from an empty viewport; the next resize check
	// picks up the real one.
	view, _ := draw.QueryViewport(size, gamecfg.MaxTermWidth, gamecfg.MaxTermHeight)
	return &terminal{
		w:            w,
		size:         size,
		canvas:       draw.NewCanvas(view, gamecfg.FieldWidth, gamecfg.FieldHeight),
		frame:        draw.NewFrame(w, view),
		ship:         ship,
		drawnVersion: -1,
	}
}

// needsDraw reports whether a frame must be drawn. A frozen session only
// redraws when its overlay changes or the terminal is resized.
func (t *terminal) needsDraw(s *Session) bool {
	if s.Phase() != PhaseEnded || t.resized || s.Version() != t.drawnVersion {
		t.drawnVersion = s.Version()
		t.resized = false
		return true
	}
	return false
}

// updateScreen follows terminal resizes. The render area is clamped to the
// maximum resolution and centered.
func (t *terminal) updateScreen() {
	view, err := draw.QueryViewport(t.size, gamecfg.MaxTermWidth, gamecfg.MaxTermHeight)
	if err != nil || view == t.canvas.Viewport() {
		return
	}
	draw.ClearScreen(t.w)
	t.resized = true
	t.canvas.SetViewport(view)
	t.frame.SetViewport(view)
}
