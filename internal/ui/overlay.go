//go:build ebiten

package ui

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Overlay outlines the brush footprint on top of the grid.
type Overlay struct {
	rect  image.Rectangle
	show  bool
	pixel *ebiten.Image
}

// NewOverlay constructs a new overlay instance.
func NewOverlay() *Overlay {
	o := &Overlay{pixel: ebiten.NewImage(1, 1)}
	o.pixel.Fill(color.White)
	return o
}

// SetBrush updates the outlined rectangle in view pixels.
func (o *Overlay) SetBrush(r image.Rectangle, show bool) {
	o.rect = r
	o.show = show && !r.Empty()
}

// Draw renders the outline onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.show {
		return
	}
	col := color.RGBA{R: 230, G: 230, B: 240, A: 200}
	r := o.rect
	o.fill(screen, r.Min.X, r.Min.Y, r.Dx(), 1, col)
	o.fill(screen, r.Min.X, r.Max.Y-1, r.Dx(), 1, col)
	o.fill(screen, r.Min.X, r.Min.Y, 1, r.Dy(), col)
	o.fill(screen, r.Max.X-1, r.Min.Y, 1, r.Dy(), col)
}

func (o *Overlay) fill(screen *ebiten.Image, x, y, w, h int, col color.RGBA) {
	if w <= 0 || h <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(w), float64(h))
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}
