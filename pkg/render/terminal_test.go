// pkg/render/terminal_test.go
package render

import (
	"strings"
	"testing"

	"github.com/burnlearn/go-lander/pkg/physics"
)

func bufferContains(r *TerminalRenderer, glyph rune) bool {
	for _, row := range r.buffer {
		for _, cell := range row {
			if cell == glyph {
				return true
			}
		}
	}
	return false
}

func TestTerminalRenderer_RocketVisibleWhenFramed(t *testing.T) {
	r := NewTerminalRenderer(60, 20, 10)

	state := physics.State{X: 0, Y: 100, Angle: 0}
	r.Clear()
	r.RenderRocket(state)

	if !bufferContains(r, '|') {
		t.Error("upright rocket should appear as '|'")
	}
}

func TestTerminalRenderer_GlyphTracksTilt(t *testing.T) {
	tests := []struct {
		name  string
		angle float64
		want  rune
	}{
		{name: "upright", angle: 0.1, want: '|'},
		{name: "tilted right", angle: 0.8, want: '/'},
		{name: "tilted left", angle: -0.8, want: '\\'},
		{name: "sideways", angle: 1.5, want: '-'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rocketGlyph(tt.angle); got != tt.want {
				t.Errorf("rocketGlyph(%f) = %q, want %q", tt.angle, got, tt.want)
			}
		})
	}
}

func TestTerminalRenderer_FlameBelowThrustingRocket(t *testing.T) {
	r := NewTerminalRenderer(60, 20, 10)

	r.Clear()
	r.RenderRocket(physics.State{X: 0, Y: 100, MainThrusterOn: true})

	if !bufferContains(r, '^') {
		t.Error("thrusting rocket should draw a flame")
	}
}

func TestTerminalRenderer_GroundShowsPadMarkers(t *testing.T) {
	r := NewTerminalRenderer(60, 20, 10)

	// Frame the rocket near the ground so the ground row is visible.
	r.Clear()
	r.RenderRocket(physics.State{X: 0, Y: 30})
	r.RenderGround(50)

	if !bufferContains(r, '=') {
		t.Error("pad cells should render as '='")
	}
	if !bufferContains(r, '_') {
		t.Error("off-pad ground should render as '_'")
	}
}

func TestTerminalRenderer_HUDListsTelemetryAndMessage(t *testing.T) {
	r := NewTerminalRenderer(60, 20, 10)
	r.Clear()
	r.RenderHUD(physics.State{Y: 250, FuelMass: 12000, Message: "LANDING SUCCESSFUL!"}, 12.5)

	joined := strings.Join(r.hud, "\n")
	if !strings.Contains(joined, "alt=") || !strings.Contains(joined, "fuel=") {
		t.Errorf("HUD missing telemetry: %q", joined)
	}
	if !strings.Contains(joined, "LANDING SUCCESSFUL!") {
		t.Errorf("HUD missing outcome message: %q", joined)
	}
}
