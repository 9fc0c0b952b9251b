//go:build !ebiten

package ebiten

import "wavecollapse/pkg/game/state"

// EbitenRenderer is a placeholder that satisfies the API expected by the GUI build.
type EbitenRenderer struct {
	opts Options
}

// New returns a renderer whose Run reports ErrUnavailable
func New(_ *state.Session, opts Options) *EbitenRenderer {
	return &EbitenRenderer{opts: opts.withDefaults()}
}

// Init is a no-op placeholder.
func (e *EbitenRenderer) Init() {}

// Clear is a no-op placeholder.
func (e *EbitenRenderer) Clear() {}

// RenderFrame is a no-op placeholder.
func (e *EbitenRenderer) RenderFrame(state.Frame) {}

// GetViewportSize returns zeros in the headless build.
func (e *EbitenRenderer) GetViewportSize() (rows, cols int) { return 0, 0 }

// Run always reports that the GUI build tag is missing.
func (e *EbitenRenderer) Run() error {
	return ErrUnavailable
}
