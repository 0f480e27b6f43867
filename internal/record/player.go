package record

import (
	"errors"
	"io"

	"falling-sand/internal/core"
)

// Player replays a recording through the core.Sim interface so the drivers can
// show it like a live grid. Frames are streamed: only the current frame and a
// read buffer are held in memory, and Reset reopens the source.
type Player struct {
	open func() (*Reader, error)
	r    *Reader
	size core.Size

	cur  []uint8
	next []uint8
	pos  int
	done bool
	err  error
}

// NewPlayer opens the recording through open and loads its first frame. open
// is called again on every Reset. An empty recording shows one blank frame.
func NewPlayer(open func() (*Reader, error)) (*Player, error) {
	r, err := open()
	if err != nil {
		return nil, err
	}
	size := r.Size()
	p := &Player{
		open: open,
		size: size,
		cur:  make([]uint8, size.Area()),
		next: make([]uint8, size.Area()),
	}
	if err := p.start(r); err != nil {
		return nil, err
	}
	return p, nil
}

// LoadPlayer streams the recording at path.
func LoadPlayer(path string) (*Player, error) {
	return NewPlayer(func() (*Reader, error) { return Open(path) })
}

func (p *Player) start(r *Reader) error {
	p.r = r
	p.pos = 0
	p.done = false
	p.err = nil
	err := r.Next(p.cur)
	switch {
	case errors.Is(err, io.EOF):
		clear(p.cur)
		p.finish(nil)
	case err != nil:
		p.finish(err)
		return err
	}
	return nil
}

func (p *Player) finish(err error) {
	p.done = true
	p.err = err
	if p.r != nil {
		p.r.Close()
		p.r = nil
	}
}

// Name returns the simulation identifier.
func (p *Player) Name() string { return "replay" }

// Size returns the grid dimensions.
func (p *Player) Size() core.Size { return p.size }

// Reset reopens the recording at its first frame. If the source cannot be
// reopened the current frame stays and Err reports why.
func (p *Player) Reset(int64) {
	if p.r != nil {
		p.r.Close()
		p.r = nil
	}
	r, err := p.open()
	if err != nil {
		p.finish(err)
		return
	}
	if r.Size() != p.size {
		r.Close()
		p.finish(ErrBadHeader)
		return
	}
	p.start(r)
}

// Step advances one frame, holding on the last. A truncated frame ends
// playback and is reported by Err.
func (p *Player) Step() {
	if p.done {
		return
	}
	err := p.r.Next(p.next)
	switch {
	case errors.Is(err, io.EOF):
		p.finish(nil)
	case err != nil:
		p.finish(err)
	default:
		p.cur, p.next = p.next, p.cur
		p.pos++
	}
}

// Cells returns the current frame.
func (p *Player) Cells() []uint8 { return p.cur }

// Frame returns the index of the current frame.
func (p *Player) Frame() int { return p.pos }

// Done reports whether playback reached the end of the recording.
func (p *Player) Done() bool { return p.done }

// Err returns the error that ended playback, if any.
func (p *Player) Err() error { return p.err }

// Close releases the open recording.
func (p *Player) Close() error {
	if p.r == nil {
		return nil
	}
	err := p.r.Close()
	p.r = nil
	return err
}

// Parameters reports playback position for the HUD.
func (p *Player) Parameters() core.ParameterSnapshot {
	status := "playing"
	switch {
	case p.err != nil:
		status = "error"
	case p.done:
		status = "ended"
	}
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{{
		Name: "Replay",
		Params: []core.Parameter{
			core.IntParam("frame", "Frame", p.pos),
			core.StringParam("status", "Status", status),
		},
	}}}
}
