package render

import (
	"image"
	"image/color"

	"falling-sand/internal/core"
)

// fillPaletteRGBA converts cell values into RGBA pixels using a palette. Cell
// rows are stored floor first while images are drawn top first, so row y of
// the grid lands on pixel row h-1-y. Values past the end of the palette use
// its last entry; an empty palette clears the buffer to transparent black.
func fillPaletteRGBA(buf []byte, cells []uint8, size core.Size, palette []color.RGBA) {
	if len(palette) == 0 {
		for i := range buf {
			buf[i] = 0
		}
		return
	}

	last := len(palette) - 1
	for y := 0; y < size.H; y++ {
		src := cells[y*size.W : (y+1)*size.W]
		row := (size.H - 1 - y) * size.W * 4
		for x, c := range src {
			idx := int(c)
			if idx > last {
				idx = last
			}
			base := row + x*4
			col := palette[idx]
			buf[base+0] = col.R
			buf[base+1] = col.G
			buf[base+2] = col.B
			buf[base+3] = col.A
		}
	}
}

// Image renders cells into a new RGBA image with the floor at the bottom.
func Image(cells []uint8, size core.Size, palette []color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size.W, size.H))
	if len(cells) != size.Area() {
		return img
	}
	fillPaletteRGBA(img.Pix, cells, size, palette)
	return img
}

// GridPoint converts image coordinates (origin top-left) into grid
// coordinates (origin bottom-left) for a view scaled by scale.
func GridPoint(px, py int, size core.Size, scale int) (int, int) {
	if scale <= 0 {
		scale = 1
	}
	return px / scale, size.H - 1 - py/scale
}
