// pkg/render/desktop/input.go
package desktop

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/burnlearn/go-lander/pkg/physics"
)

// ReadControls samples the keyboard into a fresh control frame. Held keys map
// to continuous inputs: up/down ramp the throttle, left/right fire the RCS
// thrusters, and O cuts the engine.
func ReadControls() physics.Controls {
	return physics.Controls{
		IncreaseThrottle: ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW),
		DecreaseThrottle: ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS),
		RotateLeft:       ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA),
		RotateRight:      ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD),
		EngineShutdown:   ebiten.IsKeyPressed(ebiten.KeyO),
	}
}

// RestartRequested reports a one-shot restart keypress.
func RestartRequested() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyR)
}

// QuitRequested reports a one-shot quit keypress.
func QuitRequested() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyEscape)
}
