package ui

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/hailam/fourplay/internal/board"
)

//go:embed assets/discs/*.svg
var discAssets embed.FS

var discFiles = map[board.Cell]string{
	board.PlayerA: "assets/discs/a.svg",
	board.PlayerB: "assets/discs/b.svg",
}

// SpriteManager holds the rasterized disc images.
type SpriteManager struct {
	discs       map[board.Cell]*ebiten.Image
	size        int
	renderScale float64 // discs are rasterized larger and scaled down when drawn
}

// NewSpriteManager rasterizes both discs at the given display size.
func NewSpriteManager(size int) *SpriteManager {
	sm := &SpriteManager{
		discs:       make(map[board.Cell]*ebiten.Image),
		size:        size,
		renderScale: 3.0,
	}
	for cell, path := range discFiles {
		img, err := rasterize(path, int(float64(size)*sm.renderScale))
		if err != nil {
			slog.Warn("disc sprite unavailable", "player", cell, "error", err)
			continue
		}
		sm.discs[cell] = ebiten.NewImageFromImage(img)
	}
	return sm
}

func rasterize(path string, px int) (image.Image, error) {
	data, err := discAssets.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	icon.SetTarget(0, 0, float64(px), float64(px))

	rgba := image.NewRGBA(image.Rect(0, 0, px, px))
	scanner := rasterx.NewScannerGV(px, px, rgba, rgba.Bounds())
	icon.Draw(rasterx.NewDasher(px, px, scanner), 1.0)
	return rgba, nil
}

// Disc returns the sprite for a player, or nil if it failed to load.
func (sm *SpriteManager) Disc(c board.Cell) *ebiten.Image {
	return sm.discs[c]
}

// DrawDisc draws c's disc with its top-left corner at (x, y). alpha fades
// the disc, used for the hover preview.
func (sm *SpriteManager) DrawDisc(screen *ebiten.Image, c board.Cell, x, y, scale float64, alpha float32) bool {
	sprite := sm.Disc(c)
	if sprite == nil {
		return false
	}
	op := &ebiten.DrawImageOptions{}
	s := scale / sm.renderScale
	op.GeoM.Scale(s, s)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleAlpha(alpha)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(sprite, op)
	return true
}

// Size returns the display size of a disc.
func (sm *SpriteManager) Size() int {
	return sm.size
}
