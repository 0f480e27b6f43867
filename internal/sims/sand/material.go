package sand

import (
	"fmt"
	"image/color"
	"strings"
)

// Material is the content of a single cell.
type Material uint8

const (
	Empty Material = iota
	Sand
	Water
)

var materialNames = [...]string{
	Empty: "empty",
	Sand:  "sand",
	Water: "water",
}

// Valid reports whether m is one of the known materials.
func (m Material) Valid() bool { return int(m) < len(materialNames) }

// Paintable reports whether m can be placed with a brush.
func (m Material) Paintable() bool { return m == Sand || m == Water }

func (m Material) String() string {
	if !m.Valid() {
		return fmt.Sprintf("material(%d)", uint8(m))
	}
	return materialNames[m]
}

// ParseMaterial resolves a material by name, ignoring case.
func ParseMaterial(name string) (Material, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range materialNames {
		if n == name {
			return Material(i), nil
		}
	}
	return Empty, fmt.Errorf("unknown material %q", name)
}

// Palette maps each material value to its display color. The buffer returned
// by Grid.Cells indexes directly into it.
var Palette = []color.RGBA{
	Empty: {R: 0, G: 0, B: 0, A: 255},
	Sand:  {R: 255, G: 255, B: 1, A: 255},
	Water: {R: 1, G: 1, B: 255, A: 255},
}
