// pkg/render/renderer.go
package render

import (
	"context"

	"github.com/burnlearn/go-lander/pkg/logging"
	"github.com/burnlearn/go-lander/pkg/physics"
)

// Renderer draws one frame of the simulation from a read-only state
// snapshot. Implementations are best-effort collaborators: a rendering
// failure must never affect the physics tick.
type Renderer interface {
	Clear()
	RenderRocket(state physics.State)
	RenderGround(padRange float64)
	RenderHUD(state physics.State, elapsed float64)
	Present()
}

// NullRenderer discards every frame, logging at debug level. Used by
// headless rollouts and tests.
type NullRenderer struct {
	logger *logging.Logger
}

// NewNullRenderer creates a new NullRenderer with structured logging.
func NewNullRenderer() *NullRenderer {
	return &NullRenderer{
		logger: logging.NewLogger(),
	}
}

// Clear implements Renderer.
func (d *NullRenderer) Clear() {}

// RenderRocket implements Renderer.
func (d *NullRenderer) RenderRocket(state physics.State) {
	d.logger.Debug(context.Background(), "RenderRocket called",
		"x", state.X,
		"y", state.Y,
		"angle", state.Angle,
	)
}

// RenderGround implements Renderer.
func (d *NullRenderer) RenderGround(padRange float64) {}

// RenderHUD implements Renderer.
func (d *NullRenderer) RenderHUD(state physics.State, elapsed float64) {}

// Present implements Renderer.
func (d *NullRenderer) Present() {}
