package sand

import (
	"errors"
	"fmt"
	"time"

	"falling-sand/internal/core"
	prng "falling-sand/pkg/core"
)

// ErrInvalidSize is returned when a grid is requested with a non-positive size.
var ErrInvalidSize = errors.New("sand: grid size must be positive")

// Coin breaks ties between two equally valid slide targets. True picks the
// left neighbor.
type Coin interface {
	Bool() bool
}

// Seeder is implemented by coins that can be restarted from a seed.
type Seeder interface {
	Seed(seed int64)
}

// Grid is a square falling-sand world. It owns the dense material buffer and
// the set of occupied cells and keeps the two in lockstep: a cell is in the
// set exactly when its buffer value is not Empty.
//
// Row 0 is the floor. Grid is not safe for concurrent use.
type Grid struct {
	n    int
	seed int64
	buf  *core.ByteGrid

	// members lists the linear indices of occupied cells; slot maps a linear
	// index to its position in members, or -1 when the cell is empty.
	members []int
	slot    []int

	coin  Coin
	tick  uint64
	moved int
}

// New allocates an empty size x size grid. A nil coin falls back to a
// time-seeded generator.
func New(size int, coin Coin) (*Grid, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSize, size)
	}
	if coin == nil {
		coin = prng.NewRNG(time.Now().UnixNano())
	}
	g := &Grid{
		n:    size,
		buf:  core.NewByteGrid(size, size),
		slot: make([]int, size*size),
		coin: coin,
	}
	for i := range g.slot {
		g.slot[i] = -1
	}
	return g, nil
}

// NewWithConfig returns a grid sized and seeded from cfg.
func NewWithConfig(cfg Config) (*Grid, error) {
	g, err := New(cfg.Size, prng.NewRNG(cfg.Seed))
	if err != nil {
		return nil, err
	}
	g.seed = cfg.Seed
	return g, nil
}

// Name returns the simulation identifier.
func (g *Grid) Name() string { return "sand" }

// Size returns the grid dimensions.
func (g *Grid) Size() core.Size { return core.Size{W: g.n, H: g.n} }

// Cells exposes the material buffer in row-major order, row 0 first. Values
// index into Palette. The slice is owned by the grid and must not be written.
func (g *Grid) Cells() []uint8 { return g.buf.Cells() }

// Tick returns the number of steps taken since creation or the last Reset.
func (g *Grid) Tick() uint64 { return g.tick }

// Moved reports how many cells changed position during the last Step. A
// zero after at least one step means the world has come to rest.
func (g *Grid) Moved() int { return g.moved }

// Seed returns the seed last used to initialize the grid.
func (g *Grid) Seed() int64 { return g.seed }

// Occupied returns the number of non-empty cells.
func (g *Grid) Occupied() int { return len(g.members) }

// At returns the material at (x, y), or Empty outside the grid.
func (g *Grid) At(x, y int) Material { return Material(g.buf.At(x, y)) }

// IsOccupied reports whether (x, y) is inside the grid and holds material.
func (g *Grid) IsOccupied(x, y int) bool {
	return g.buf.In(x, y) && g.slot[g.buf.Index(x, y)] >= 0
}

// Counts returns the number of sand and water cells.
func (g *Grid) Counts() (sandCells, waterCells int) {
	cells := g.buf.Cells()
	for _, idx := range g.members {
		switch Material(cells[idx]) {
		case Sand:
			sandCells++
		case Water:
			waterCells++
		}
	}
	return sandCells, waterCells
}

// Paint fills the unoccupied cells of the square [cx-radius, cx+radius) x
// [cy-radius, cy+radius), clipped to the grid, with m. Occupied cells are left
// alone. It returns the number of cells placed.
func (g *Grid) Paint(cx, cy int, m Material, radius int) int {
	if !m.Paintable() || radius <= 0 {
		return 0
	}
	x0, x1 := core.ClampSpan(cx-radius, cx+radius, g.n)
	y0, y1 := core.ClampSpan(cy-radius, cy+radius, g.n)
	cells := g.buf.Cells()
	placed := 0
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			idx := g.buf.Index(x, y)
			if g.slot[idx] >= 0 {
				continue
			}
			cells[idx] = uint8(m)
			g.add(idx)
			placed++
		}
	}
	return placed
}

// Erase empties every occupied cell in the same square Paint would cover and
// returns the number of cells removed.
func (g *Grid) Erase(cx, cy, radius int) int {
	if radius <= 0 {
		return 0
	}
	x0, x1 := core.ClampSpan(cx-radius, cx+radius, g.n)
	y0, y1 := core.ClampSpan(cy-radius, cy+radius, g.n)
	cells := g.buf.Cells()
	removed := 0
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			idx := g.buf.Index(x, y)
			if g.slot[idx] < 0 {
				continue
			}
			cells[idx] = uint8(Empty)
			g.remove(idx)
			removed++
		}
	}
	return removed
}

// Clear empties the whole grid.
func (g *Grid) Clear() {
	cells := g.buf.Cells()
	for _, idx := range g.members {
		cells[idx] = uint8(Empty)
		g.slot[idx] = -1
	}
	g.members = g.members[:0]
}

// Reset clears the grid and rewinds the tick counter. A zero seed reuses the
// configured one; the coin is reseeded when it supports it.
func (g *Grid) Reset(seed int64) {
	if seed == 0 {
		seed = g.seed
	}
	g.seed = seed
	if s, ok := g.coin.(Seeder); ok {
		s.Seed(seed)
	}
	g.Clear()
	g.tick = 0
	g.moved = 0
}

// Step advances the world by one tick. Every cell occupied when the step
// begins is visited once; moves made earlier in the same step are visible to
// later cells, so the first cell to claim an empty target wins it.
func (g *Grid) Step() {
	cells := g.buf.Cells()
	g.moved = 0
	// move rewrites members[i] in place, so an entry only changes when it is
	// the one being visited and the set keeps its start-of-step shape.
	for i := 0; i < len(g.members); i++ {
		src := g.members[i]
		x, y := g.buf.Coords(src)
		if dst, ok := g.target(x, y, Material(cells[src])); ok {
			g.move(i, src, dst)
			g.moved++
		}
	}
	g.tick++
}

func (g *Grid) target(x, y int, m Material) (int, bool) {
	if g.free(x, y-1) {
		return g.buf.Index(x, y-1), true
	}
	switch m {
	case Sand:
		return g.slide(x, y, -1)
	case Water:
		if dst, ok := g.slide(x, y, -1); ok {
			return dst, true
		}
		return g.slide(x, y, 0)
	}
	return 0, false
}

// slide picks between (x-1, y+dy) and (x+1, y+dy), consulting the coin only
// when both are free.
func (g *Grid) slide(x, y, dy int) (int, bool) {
	ny := y + dy
	left := g.free(x-1, ny)
	right := g.free(x+1, ny)
	switch {
	case left && right:
		if g.coin.Bool() {
			return g.buf.Index(x-1, ny), true
		}
		return g.buf.Index(x+1, ny), true
	case left:
		return g.buf.Index(x-1, ny), true
	case right:
		return g.buf.Index(x+1, ny), true
	}
	return 0, false
}

func (g *Grid) free(x, y int) bool {
	return g.buf.In(x, y) && g.slot[g.buf.Index(x, y)] < 0
}

func (g *Grid) add(idx int) {
	g.slot[idx] = len(g.members)
	g.members = append(g.members, idx)
}

func (g *Grid) remove(idx int) {
	pos := g.slot[idx]
	last := len(g.members) - 1
	moved := g.members[last]
	g.members[pos] = moved
	g.slot[moved] = pos
	g.members = g.members[:last]
	g.slot[idx] = -1
}

// move relocates the cell held in members[i] from src to dst.
func (g *Grid) move(i, src, dst int) {
	cells := g.buf.Cells()
	cells[dst] = cells[src]
	cells[src] = uint8(Empty)
	g.members[i] = dst
	g.slot[dst] = i
	g.slot[src] = -1
}
