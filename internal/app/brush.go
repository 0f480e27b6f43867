package app

import (
	"image"

	"falling-sand/internal/core"
	"falling-sand/internal/sims/sand"
)

const (
	minBrushRadius = 1
	maxBrushRadius = 64
)

// Brush is the driver-side painting state.
type Brush struct {
	Material sand.Material
	Radius   int
}

// NewBrush returns a sand brush with the radius clamped to the allowed range.
func NewBrush(radius int) Brush {
	b := Brush{Material: sand.Sand}
	b.Resize(radius)
	return b
}

// Resize sets the radius, clamped to [minBrushRadius, maxBrushRadius].
func (b *Brush) Resize(radius int) {
	switch {
	case radius < minBrushRadius:
		radius = minBrushRadius
	case radius > maxBrushRadius:
		radius = maxBrushRadius
	}
	b.Radius = radius
}

// Select switches material when m can be painted.
func (b *Brush) Select(m sand.Material) {
	if m.Paintable() {
		b.Material = m
	}
}

// Apply paints the brush at (x, y), or erases when erase is set.
func (b Brush) Apply(g *sand.Grid, x, y int, erase bool) int {
	if erase {
		return g.Erase(x, y, b.Radius)
	}
	return g.Paint(x, y, b.Material, b.Radius)
}

// ScreenRect returns the pixel rectangle covered by the brush centered on grid
// cell (x, y), clipped to the grid, for a view drawn with the floor at the
// bottom and the given scale.
func (b Brush) ScreenRect(x, y int, size core.Size, scale int) image.Rectangle {
	if scale <= 0 {
		scale = 1
	}
	x0, x1 := core.ClampSpan(x-b.Radius, x+b.Radius, size.W)
	y0, y1 := core.ClampSpan(y-b.Radius, y+b.Radius, size.H)
	if x0 >= x1 || y0 >= y1 {
		return image.Rectangle{}
	}
	return image.Rect(x0*scale, (size.H-y1)*scale, x1*scale, (size.H-y0)*scale)
}

// Parameters reports the brush for the HUD.
func (b Brush) Parameters() core.ParameterGroup {
	return core.ParameterGroup{
		Name: "Brush",
		Params: []core.Parameter{
			core.StringParam("material", "Material", b.Material.String()),
			core.IntParam("radius", "Radius", b.Radius),
		},
	}
}
