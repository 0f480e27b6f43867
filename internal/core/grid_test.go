package core

import "testing"

func TestByteGridIndexRoundTrip(t *testing.T) {
	g := NewByteGrid(7, 5)
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			gx, gy := g.Coords(g.Index(x, y))
			if gx != x || gy != y {
				t.Fatalf("Coords(Index(%d,%d)) = (%d,%d)", x, y, gx, gy)
			}
		}
	}
}

func TestByteGridAtOutOfBounds(t *testing.T) {
	g := NewByteGrid(3, 3)
	g.Cells()[g.Index(2, 2)] = 9

	if got := g.At(2, 2); got != 9 {
		t.Fatalf("At(2,2) = %d, want 9", got)
	}
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {3, 0}, {0, 3}} {
		if g.In(p[0], p[1]) {
			t.Fatalf("(%d,%d) reported in bounds", p[0], p[1])
		}
		if got := g.At(p[0], p[1]); got != 0 {
			t.Fatalf("At(%d,%d) = %d outside grid, want 0", p[0], p[1], got)
		}
	}
}

func TestClampSpan(t *testing.T) {
	cases := []struct {
		lo, hi, n int
		wlo, whi  int
	}{
		{-3, 2, 5, 0, 2},
		{3, 9, 5, 3, 5},
		{1, 3, 5, 1, 3},
		{7, 9, 5, 7, 5},
	}
	for _, c := range cases {
		lo, hi := ClampSpan(c.lo, c.hi, c.n)
		if lo != c.wlo || hi != c.whi {
			t.Fatalf("ClampSpan(%d,%d,%d) = (%d,%d), want (%d,%d)", c.lo, c.hi, c.n, lo, hi, c.wlo, c.whi)
		}
	}
}
