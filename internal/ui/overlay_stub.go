//go:build !ebiten

package ui

import "image"

// Overlay is a no-op placeholder used when the ebiten build tag is absent.
type Overlay struct{}

// NewOverlay constructs a stub overlay.
func NewOverlay() *Overlay { return &Overlay{} }

// SetBrush is a no-op in headless builds.
func (o *Overlay) SetBrush(image.Rectangle, bool) {}

// Draw is a no-op placeholder.
func (o *Overlay) Draw(any) {}
