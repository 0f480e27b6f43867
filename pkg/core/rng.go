package core

import "math/rand/v2"

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Seed restarts the generator from the provided seed.
func (r *RNG) Seed(seed int64) {
	r.r = rand.New(rand.NewPCG(uint64(seed), 0))
}

// Bool returns a random boolean value.
func (r *RNG) Bool() bool {
	return r.r.IntN(2) == 1
}

// Source exposes the underlying rand.Rand for advanced use.
func (r *RNG) Source() *rand.Rand { return r.r }

// Sequence replays a fixed list of booleans, cycling when exhausted. An empty
// sequence always yields false.
type Sequence struct {
	vals []bool
	pos  int
}

// NewSequence returns a Sequence over vals.
func NewSequence(vals ...bool) *Sequence {
	return &Sequence{vals: append([]bool(nil), vals...)}
}

// Bool returns the next value in the sequence.
func (s *Sequence) Bool() bool {
	if len(s.vals) == 0 {
		return false
	}
	v := s.vals[s.pos%len(s.vals)]
	s.pos++
	return v
}

// Seed rewinds the sequence; the seed value itself is ignored.
func (s *Sequence) Seed(int64) { s.pos = 0 }

// Draws reports how many values have been consumed since the last rewind.
func (s *Sequence) Draws() int { return s.pos }
