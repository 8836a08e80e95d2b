// pkg/render/terminal.go
package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/burnlearn/go-lander/pkg/physics"
)

// TerminalRenderer provides a simple ASCII view for headless debugging of
// rollouts. The camera keeps the rocket framed; the ground row and pad
// markers scroll underneath it.
type TerminalRenderer struct {
	width  int
	height int
	buffer [][]rune
	camera *Camera
	hud    []string
}

// NewTerminalRenderer creates a terminal renderer with the specified
// character dimensions and world scale (meters per character cell).
func NewTerminalRenderer(width, height int, metersPerCell float64) *TerminalRenderer {
	buffer := make([][]rune, height)
	for i := range buffer {
		buffer[i] = make([]rune, width)
	}

	return &TerminalRenderer{
		width:  width,
		height: height,
		buffer: buffer,
		camera: NewCamera(width, height, 1/metersPerCell, 0),
	}
}

// Clear implements Renderer.
func (r *TerminalRenderer) Clear() {
	for y := range r.buffer {
		for x := range r.buffer[y] {
			r.buffer[y][x] = ' '
		}
	}
	r.hud = r.hud[:0]
}

// RenderRocket implements Renderer.
func (r *TerminalRenderer) RenderRocket(state physics.State) {
	r.camera.Follow(state.X, state.Y, 1.0)

	x, y := r.toCell(state.X, state.Y)
	if x < 0 || x >= r.width || y < 0 || y >= r.height {
		return
	}

	r.buffer[y][x] = rocketGlyph(state.Angle)
	if state.MainThrusterOn {
		if fy := y + 1; fy < r.height {
			r.buffer[fy][x] = '^'
		}
	}
}

// RenderGround implements Renderer.
func (r *TerminalRenderer) RenderGround(padRange float64) {
	_, groundRow := r.toCell(r.camera.X, 0)
	if groundRow < 0 || groundRow >= r.height {
		return
	}

	for x := 0; x < r.width; x++ {
		worldX, _ := r.camera.ScreenToWorld(float64(x), float64(groundRow))
		if math.Abs(worldX) <= padRange {
			r.buffer[groundRow][x] = '='
		} else {
			r.buffer[groundRow][x] = '_'
		}
	}
}

// RenderHUD implements Renderer.
func (r *TerminalRenderer) RenderHUD(state physics.State, elapsed float64) {
	r.hud = append(r.hud,
		fmt.Sprintf("t=%6.1fs  alt=%7.1fm  speed=%6.1fm/s  fuel=%7.1fkg  throttle=%3.0f%%",
			elapsed, state.Y, state.Speed, state.FuelMass, state.EnginePercent*100))
	if state.Message != "" {
		r.hud = append(r.hud, state.Message)
	}
}

// Present implements Renderer.
func (r *TerminalRenderer) Present() {
	fmt.Print("\033[H\033[2J")

	fmt.Println("+" + strings.Repeat("-", r.width) + "+")
	for y := range r.buffer {
		fmt.Print("|")
		fmt.Print(string(r.buffer[y]))
		fmt.Println("|")
	}
	fmt.Println("+" + strings.Repeat("-", r.width) + "+")

	for _, line := range r.hud {
		fmt.Println(line)
	}
}

// toCell converts world coordinates to a buffer cell.
func (r *TerminalRenderer) toCell(worldX, worldY float64) (int, int) {
	sx, sy := r.camera.WorldToScreen(worldX, worldY)
	return int(sx), int(sy)
}

// rocketGlyph picks a symbol for the rocket's tilt.
func rocketGlyph(angle float64) rune {
	switch {
	case math.Abs(angle) < math.Pi/8:
		return '|'
	case math.Abs(angle) > 3*math.Pi/8:
		return '-'
	case angle > 0:
		return '/'
	default:
		return '\\'
	}
}
