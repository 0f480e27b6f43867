package app

import (
	"errors"
	"image"
	"strconv"

	"falling-sand/internal/core"
	"falling-sand/internal/render"
	"falling-sand/internal/scene"
	"falling-sand/internal/sims/sand"
)

// ErrQuit is returned by Session.Update when the user asked to leave.
var ErrQuit = errors.New("app: quit requested")

// Input is one frame's worth of user commands, already decoded from the
// windowing layer.
type Input struct {
	Quit        bool
	TogglePause bool
	Resume      bool
	StepOnce    bool
	Reset       bool

	// Material selects a new brush material; Empty leaves it unchanged.
	Material   sand.Material
	BrushDelta int

	// Cursor position in view pixels, origin top-left.
	CursorX, CursorY int
	Paint            bool
	Erase            bool
}

// Session owns the per-frame driver loop: apply input, paint, then step.
// It never touches the window so it can run headless.
type Session struct {
	sim   core.Sim
	grid  *sand.Grid
	scene scene.Scene
	brush Brush
	scale int
	seed  int64

	paused   bool
	tickOnce bool

	cursorX, cursorY int
	cursorIn         bool
}

// NewSession wraps sim. When sim is a sand grid the scene is painted onto it
// and brush input is honored; anything else, such as a replay, is only stepped.
func NewSession(sim core.Sim, sc scene.Scene, cfg *Config) *Session {
	if cfg == nil {
		cfg = NewConfig()
	}
	s := &Session{
		sim:   sim,
		scene: sc,
		brush: NewBrush(cfg.Radius),
		scale: cfg.Scale,
		seed:  cfg.Seed,
	}
	if s.scale <= 0 {
		s.scale = 1
	}
	if g, ok := sim.(*sand.Grid); ok {
		s.grid = g
		sc.Apply(g)
	}
	return s
}

// Sim returns the wrapped simulation.
func (s *Session) Sim() core.Sim { return s.sim }

// Brush returns the current brush.
func (s *Session) Brush() Brush { return s.brush }

// Paused reports whether automatic stepping is suspended.
func (s *Session) Paused() bool { return s.paused }

// Scale returns the view scale.
func (s *Session) Scale() int { return s.scale }

// Reset restores the sim and repaints the scene.
func (s *Session) Reset() {
	s.sim.Reset(s.seed)
	if s.grid != nil {
		s.scene.Apply(s.grid)
	}
	s.tickOnce = false
}

// Update applies in and advances the sim unless paused.
func (s *Session) Update(in Input) error {
	if in.Quit {
		return ErrQuit
	}
	if in.TogglePause {
		s.paused = !s.paused
	}
	if in.Resume {
		s.paused = false
	}
	if in.StepOnce {
		s.tickOnce = true
	}
	if in.Reset {
		s.Reset()
	}
	if in.Material != sand.Empty {
		s.brush.Select(in.Material)
	}
	if in.BrushDelta != 0 {
		s.brush.Resize(s.brush.Radius + in.BrushDelta)
	}

	size := s.sim.Size()
	s.cursorIn = in.CursorX >= 0 && in.CursorY >= 0 &&
		in.CursorX < size.W*s.scale && in.CursorY < size.H*s.scale
	s.cursorX, s.cursorY = render.GridPoint(in.CursorX, in.CursorY, size, s.scale)
	if s.grid != nil && s.cursorIn && (in.Paint || in.Erase) {
		s.brush.Apply(s.grid, s.cursorX, s.cursorY, in.Erase)
	}

	if !s.paused || s.tickOnce {
		s.sim.Step()
		s.tickOnce = false
	}
	return nil
}

// BrushRect returns the on-screen brush outline, or false when there is
// nothing to paint or the cursor is outside the grid.
func (s *Session) BrushRect() (image.Rectangle, bool) {
	if s.grid == nil || !s.cursorIn {
		return image.Rectangle{}, false
	}
	r := s.brush.ScreenRect(s.cursorX, s.cursorY, s.sim.Size(), s.scale)
	return r, !r.Empty()
}

// Parameters merges the sim snapshot with driver state for the HUD.
func (s *Session) Parameters() core.ParameterSnapshot {
	var snap core.ParameterSnapshot
	if p, ok := s.sim.(core.ParameterProvider); ok {
		snap = p.Parameters()
	}
	if s.grid != nil {
		snap.Groups = append(snap.Groups, s.brush.Parameters())
	}
	snap.Groups = append(snap.Groups, core.ParameterGroup{
		Name: "Run",
		Params: []core.Parameter{
			core.StringParam("paused", "Paused", strconv.FormatBool(s.paused)),
		},
	})
	return snap
}
