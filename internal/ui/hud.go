//go:build ebiten

package ui

import (
	"image/color"

	"falling-sand/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// HUD renders the parameter panel to the right of the simulation view.
type HUD struct {
	title      string
	width      int
	help       bool
	panel      *ebiten.Image
	lastHeight int
	lines      []hudLine
}

// NewHUD constructs a HUD for the named sim. help adds the key bindings below
// the parameters.
func NewHUD(name string, width int, help bool) *HUD {
	if width < 0 {
		width = 0
	}
	return &HUD{title: hudTitle(name), width: width, help: help}
}

// Update caches the rows for the next Draw.
func (h *HUD) Update(snap core.ParameterSnapshot) {
	if h == nil || h.width <= 0 {
		return
	}
	h.lines = hudLines(h.title, snap, h.help)
}

// Draw paints the HUD panel at offsetX with the given height.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, height int) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.panel.Bounds().Dx() != h.width || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})

	face := basicfont.Face7x13
	y := panelPadding + lineBaseline
	for _, line := range h.lines {
		if y > height {
			break
		}
		col := color.RGBA{R: 220, G: 220, B: 230, A: 255}
		if line.header {
			col = color.RGBA{R: 200, G: 170, B: 90, A: 255}
		}
		if line.text != "" {
			text.Draw(h.panel, line.text, face, panelPadding, y, col)
		}
		y += lineHeight
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

const (
	panelPadding = 12
	lineBaseline = 6
	lineHeight   = 16
)
