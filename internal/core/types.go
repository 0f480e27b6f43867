package core

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Area returns the number of cells covered by the size.
func (s Size) Area() int { return s.W * s.H }

// Sim defines the minimal contract the drivers need from anything they can
// step and display: the live sandbox as well as a recording being replayed.
type Sim interface {
	Name() string
	Size() Size
	Reset(seed int64)
	Step()
	// Cells returns the display buffer, row 0 first. Callers must not
	// modify it.
	Cells() []uint8
}

// ParameterProvider is implemented by sims that expose a snapshot of their
// state for the HUD.
type ParameterProvider interface {
	Parameters() ParameterSnapshot
}
