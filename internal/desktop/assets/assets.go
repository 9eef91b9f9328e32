// Package assets holds the desktop sprites and sounds. Sprites are embedded
// SVG rasterized at load time; sounds are synthesized PCM.
package assets

import (
	"bytes"
	"embed"
	"fmt"
	"image"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/tomz197/invaders/internal/loop/config"
)

//go:embed svg/*.svg
var svgFS embed.FS

// Sprites are the rasterized game sprites, one per entity kind and one per
// enemy row.
type Sprites struct {
	Ship    *image.RGBA
	Bullet  *image.RGBA
	Missile *image.RGBA
	Enemies [config.EnemyRows]*image.RGBA
}

// LoadSprites rasterizes every embedded sprite at its entity's size.
func LoadSprites() (*Sprites, error) {
	var (
		s   Sprites
		err error
	)
	if s.Ship, err = Rasterize("ship", config.ShipWidth, config.ShipHeight); err != nil {
		return nil, err
	}
	if s.Bullet, err = Rasterize("bullet", config.BulletWidth, config.BulletHeight); err != nil {
		return nil, err
	}
	if s.Missile, err = Rasterize("missile", config.MissileWidth, config.MissileHeight); err != nil {
		return nil, err
	}
	for row := range s.Enemies {
		name := fmt.Sprintf("enemy%d", row)
		if s.Enemies[row], err = Rasterize(name, config.EnemyWidth, config.EnemyHeight); err != nil {
			return nil, err
		}
	}
	return &s, nil
}

// Rasterize renders the embedded SVG with the given name into a width x
// height image.
func Rasterize(name string, width, height int) (*image.RGBA, error) {
	data, err := svgFS.ReadFile("svg/" + name + ".svg")
	if err != nil {
		return nil, fmt.Errorf("sprite %q: %w", name, err)
	}
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse sprite %q: %w", name, err)
	}

	// Set the target size
	icon.SetTarget(0, 0, float64(width), float64(height))

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	raster := rasterx.NewDasher(width, height, scanner)
	icon.Draw(raster, 1.0)

	return img, nil
}
