package loop

import (
	"fmt"
	"strings"

	"github.com/tomz197/invaders/internal/object"
	"github.com/tomz197/invaders/internal/scores"
)

const scoreDateLayout = "2006-01-02 15:04"

// drawFrame clears the terminal and draws the field, the HUD and, once the
// session has ended, the end overlay.
func (t *terminal) drawFrame(s *Session) error {
	t.frame.Clear()
	t.canvas.Clear()

	ctx := object.DrawContext{Canvas: t.canvas, ShipColor: t.ship}
	for _, obj := range s.State().Drawables() {
		if err := obj.Draw(ctx); err != nil {
			return err
		}
	}
	t.canvas.Render(t.frame)
	t.canvas.Border(t.frame)

	t.drawHUD(s)
	if s.Phase() == PhaseEnded {
		t.drawEndScreen(s)
	}
	return t.frame.Flush()
}

// drawHUD draws score, lives and time left (top left) and the session keys
// (top right).
func (t *terminal) drawHUD(s *Session) {
	st := s.State()
	f := t.frame

	f.Text(2, 1, fmt.Sprintf("Score: %d", st.Score))
	f.Text(2, 2, "Lives: "+strings.Repeat("♥", st.Lives))
	f.Text(2, 3, "Time Left: "+FormatClock(st.TimeLeft))

	f.RightAligned(1, 1, "[N] New Game  [Q] Quit")
	if p := s.Player(); p != "" {
		f.RightAligned(2, 1, p)
	}
}

// drawEndScreen draws the headline, the scoreboard and the available keys,
// centered on the viewport.
func (t *terminal) drawEndScreen(s *Session) {
	lines := EndLines(s.End(), s.Player() != "")
	top := t.canvas.Viewport().Height/2 - len(lines)/2
	for i, line := range lines {
		t.frame.Centered(top+i, line)
	}
}

// EndLines lays out the end overlay text. The scoreboard and the clear key
// only appear when the player is known.
func EndLines(end *EndScreen, hasPlayer bool) []string {
	if end == nil {
		return nil
	}
	lines := []string{end.Message, ""}

	switch {
	case end.Cleared:
		lines = append(lines, "Scoreboard cleared.", "Press 'Play Again' to start a new game.")
	case hasPlayer && end.Rank > 0:
		lines = append(lines, fmt.Sprintf("Your Rank: #%d of %d", end.Rank, end.Total), "", "Top 5 Scores:")
		lines = append(lines, ScoreLines(end.Top)...)
	}

	lines = append(lines, "")
	if hasPlayer {
		lines = append(lines, "[R] Play Again  [C] Clear Scoreboard")
	} else {
		lines = append(lines, "[R] Play Again")
	}
	return append(lines, "[N] New Game  [Q] Quit")
}

// ScoreLines formats scoreboard entries as numbered lines.
func ScoreLines(top []scores.Entry) []string {
	lines := make([]string, 0, len(top))
	for i, e := range top {
		lines = append(lines, fmt.Sprintf("%d. %s – %d pts – %s",
			i+1, e.Player, e.Score, e.PlayedAt.Local().Format(scoreDateLayout)))
	}
	return lines
}

// FormatClock formats seconds as zero-padded MM:SS.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
