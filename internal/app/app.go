//go:build ebiten

package app

import (
	"errors"

	"falling-sand/internal/render"
	"falling-sand/internal/sims/sand"
	"falling-sand/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts a Session to the ebiten.Game interface.
type Game struct {
	session  *Session
	painter  *render.GridPainter
	hud      *ui.HUD
	overlay  *ui.Overlay
	hudWidth int
}

// New constructs a Game for the provided session.
func New(s *Session, hudWidth int) *Game {
	if hudWidth < 0 {
		hudWidth = 0
	}
	sim := s.Sim()
	_, paintable := sim.(*sand.Grid)
	return &Game{
		session:  s,
		painter:  render.NewGridPainter(sim.Size()),
		hud:      ui.NewHUD(sim.Name(), hudWidth, paintable),
		overlay:  ui.NewOverlay(),
		hudWidth: hudWidth,
	}
}

// Update decodes input and advances the session.
func (g *Game) Update() error {
	in := Input{
		Quit:        inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape),
		TogglePause: inpututil.IsKeyJustPressed(ebiten.KeySpace),
		Resume:      inpututil.IsKeyJustPressed(ebiten.KeyEnter),
		StepOnce:    inpututil.IsKeyJustPressed(ebiten.KeyN),
		Reset:       inpututil.IsKeyJustPressed(ebiten.KeyR),
		Paint:       ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		Erase:       ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight),
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyDigit1):
		in.Material = sand.Sand
	case inpututil.IsKeyJustPressed(ebiten.KeyDigit2):
		in.Material = sand.Water
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft) {
		in.BrushDelta--
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketRight) {
		in.BrushDelta++
	}
	in.CursorX, in.CursorY = ebiten.CursorPosition()

	if err := g.session.Update(in); err != nil {
		if errors.Is(err, ErrQuit) {
			return ebiten.Termination
		}
		return err
	}
	g.overlay.SetBrush(g.session.BrushRect())
	g.hud.Update(g.session.Parameters())
	return nil
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	sim := g.session.Sim()
	scale := g.session.Scale()
	g.painter.Blit(screen, sim.Cells(), sand.Palette, scale)
	g.overlay.Draw(screen)
	size := sim.Size()
	g.hud.Draw(screen, size.W*scale, size.H*scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.session.Sim().Size()
	scale := g.session.Scale()
	return s.W*scale + g.hudWidth, s.H * scale
}
