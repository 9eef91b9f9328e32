package desktop

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/tomz197/invaders/internal/desktop/assets"
	"github.com/tomz197/invaders/internal/loop"
	gamecfg "github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/object"
)

const lineHeight = 18

var (
	backgroundColor = color.RGBA{0x05, 0x05, 0x0f, 0xff}
	overlayColor    = color.RGBA{0x00, 0x00, 0x00, 0xb3}
)

// spriteSet holds the GPU copies of the rasterized sprites.
type spriteSet struct {
	ship    *ebiten.Image
	bullet  *ebiten.Image
	missile *ebiten.Image
	enemies []*ebiten.Image
}

func newSpriteSet(s *assets.Sprites) *spriteSet {
	set := &spriteSet{
		ship:    ebiten.NewImageFromImage(s.Ship),
		bullet:  ebiten.NewImageFromImage(s.Bullet),
		missile: ebiten.NewImageFromImage(s.Missile),
	}
	for _, img := range s.Enemies {
		set.enemies = append(set.enemies, ebiten.NewImageFromImage(img))
	}
	return set
}

// Draw renders the field, the HUD and, once ended, the end overlay.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	if g.sprites == nil {
		g.drawCentered(screen, []string{"Loading..."}, g.layout.Height/2)
		return
	}

	st := g.session.State()
	g.drawSprite(screen, g.sprites.ship, st.Ship.X, st.Ship.Y, g.shipColor)
	for _, e := range st.Enemies.Enemies {
		if !e.Alive {
			continue
		}
		box := st.Enemies.Bounds(e)
		g.drawSprite(screen, g.sprites.enemies[e.Row%len(g.sprites.enemies)], box.X, box.Y, nil)
	}
	for _, m := range st.Missiles {
		g.drawSprite(screen, g.sprites.missile, m.X, m.Y, nil)
	}
	for _, b := range st.Bullets {
		g.drawSprite(screen, g.sprites.bullet, b.X, b.Y, nil)
	}
	for _, e := range st.Explosions {
		drawExplosion(screen, e)
	}

	g.drawHUD(screen, st)
	if g.session.Phase() == loop.PhaseEnded {
		vector.DrawFilledRect(screen, 0, 0, float32(g.layout.Width), float32(g.layout.Height), overlayColor, false)
		lines := loop.EndLines(g.session.End(), g.session.Player() != "")
		g.drawCentered(screen, lines, g.layout.Height/2-float64(len(lines)*lineHeight)/2)
	}
}

// drawSprite draws img with its top-left at (x, y), tinted by tint if set.
func (g *Game) drawSprite(screen, img *ebiten.Image, x, y float64, tint color.Color) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(x, y)
	if tint != nil {
		op.ColorScale.ScaleWithColor(tint)
	}
	screen.DrawImage(img, op)
}

// drawExplosion draws an expanding ring of sparks that fades with each frame.
func drawExplosion(screen *ebiten.Image, e *object.Explosion) {
	progress := float32(e.Frame+1) / gamecfg.ExplosionFrames
	cx := float32(e.X + gamecfg.ExplosionSize/2)
	cy := float32(e.Y + gamecfg.ExplosionSize/2)
	radius := progress * gamecfg.ExplosionSize / 2

	fade := uint8(255 * (1 - progress*0.7))
	vector.DrawFilledCircle(screen, cx, cy, radius*0.6, color.RGBA{0xff, 0xd1, 0x66, fade}, true)
	vector.StrokeCircle(screen, cx, cy, radius, 2, color.RGBA{0xff, 0x6b, 0x35, fade}, true)
}

func (g *Game) drawHUD(screen *ebiten.Image, st *loop.State) {
	drawText(screen, fmt.Sprintf("Score: %d", st.Score), 20, 20, colornames.White)
	drawText(screen, "Lives: "+strings.Repeat("♥ ", st.Lives), 20, 20+lineHeight, colornames.Tomato)
	drawText(screen, "Time Left: "+loop.FormatClock(st.TimeLeft), 20, 20+2*lineHeight, colornames.White)

	hint := "[N] New Game  [Q] Quit"
	w, _ := text.Measure(hint, fontFace, lineHeight)
	drawText(screen, hint, g.layout.Width-w-20, 20, colornames.Gray)
}

// drawCentered draws lines horizontally centered starting at top.
func (g *Game) drawCentered(screen *ebiten.Image, lines []string, top float64) {
	for i, line := range lines {
		w, _ := text.Measure(line, fontFace, lineHeight)
		clr := colornames.White
		if i == 0 {
			clr = colornames.Gold
		}
		drawText(screen, line, (g.layout.Width-w)/2, top+float64(i*lineHeight), clr)
	}
}

func drawText(screen *ebiten.Image, s string, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, fontFace, op)
}
