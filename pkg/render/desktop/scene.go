// pkg/render/desktop/scene.go
package desktop

import (
	"fmt"
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/burnlearn/go-lander/pkg/config"
	"github.com/burnlearn/go-lander/pkg/physics"
	"github.com/burnlearn/go-lander/pkg/render"
)

var (
	skyColor    = color.RGBA{10, 10, 25, 255}
	groundColor = color.RGBA{80, 60, 40, 255}
	padColor    = color.RGBA{200, 200, 210, 255}
	hullColor   = color.RGBA{220, 220, 230, 255}
	finColor    = color.RGBA{180, 60, 60, 255}
	flameColor  = color.RGBA{255, 160, 40, 255}
	rcsColor    = color.RGBA{200, 220, 255, 255}
	starColor   = color.RGBA{220, 220, 200, 255}
)

type star struct {
	x, y float64 // world meters
	size float64
}

// Scene draws the world each frame from a read-only state snapshot. Geometry
// is expressed in world meters and converted through the camera, so the
// rocket stays framed while the ground scrolls underneath.
type Scene struct {
	cfg    config.DisplayConfig
	camera *render.Camera
	stars  []star
}

// NewScene builds the scene with a deterministic starfield covering the
// region the default descent flies through.
func NewScene(cfg config.DisplayConfig) *Scene {
	rng := rand.New(rand.NewPCG(7, 7))
	stars := make([]star, cfg.StarCount)
	for i := range stars {
		stars[i] = star{
			x:    rng.Float64()*2000 - 1000,
			y:    rng.Float64() * 1500,
			size: 1 + rng.Float64()*2,
		}
	}

	return &Scene{
		cfg:    cfg,
		camera: render.NewCamera(cfg.Width, cfg.Height, cfg.Scale, cfg.CameraYOffset),
		stars:  stars,
	}
}

// Camera exposes the scene camera so the game loop can drive following.
func (s *Scene) Camera() *render.Camera {
	return s.camera
}

// Draw renders one full frame.
func (s *Scene) Draw(screen *ebiten.Image, state physics.State, padRange, elapsed float64) {
	screen.Fill(skyColor)

	s.drawStars(screen)
	s.drawGround(screen, padRange)
	s.drawRocket(screen, state)
	s.drawHUD(screen, state, elapsed)
}

func (s *Scene) drawStars(screen *ebiten.Image) {
	for _, st := range s.stars {
		x, y := s.camera.WorldToScreen(st.x, st.y)
		if x < 0 || x > float64(s.cfg.Width) || y < 0 || y > float64(s.cfg.Height) {
			continue
		}
		ebitenutil.DrawRect(screen, x, y, st.size, st.size, starColor)
	}
}

func (s *Scene) drawGround(screen *ebiten.Image, padRange float64) {
	_, groundY := s.camera.WorldToScreen(0, 0)
	if groundY > float64(s.cfg.Height) {
		return
	}
	if groundY < 0 {
		groundY = 0
	}

	ebitenutil.DrawRect(screen, 0, groundY,
		float64(s.cfg.Width), float64(s.cfg.Height)-groundY, groundColor)

	padLeft, _ := s.camera.WorldToScreen(-padRange, 0)
	padRight, _ := s.camera.WorldToScreen(padRange, 0)
	ebitenutil.DrawRect(screen, padLeft, groundY, padRight-padLeft, 6, padColor)

	// Pad edge beacons.
	ebitenutil.DrawRect(screen, padLeft-2, groundY-8, 4, 8, flameColor)
	ebitenutil.DrawRect(screen, padRight-2, groundY-8, 4, 8, flameColor)
}

// drawRocket renders the hull as rotated line segments. The body axis points
// along (sin angle, cos angle): zero is straight up.
func (s *Scene) drawRocket(screen *ebiten.Image, state physics.State) {
	halfH := 12.5
	halfW := 2.0

	axisX := math.Sin(state.Angle)
	axisY := math.Cos(state.Angle)
	perpX := axisY
	perpY := -axisX

	noseX, noseY := state.X+axisX*halfH, state.Y+axisY*halfH
	tailX, tailY := state.X-axisX*halfH, state.Y-axisY*halfH

	// Hull outline: nose to both tail corners, plus the base.
	tailLX, tailLY := tailX-perpX*halfW, tailY-perpY*halfW
	tailRX, tailRY := tailX+perpX*halfW, tailY+perpY*halfW
	s.worldLine(screen, noseX, noseY, tailLX, tailLY, hullColor)
	s.worldLine(screen, noseX, noseY, tailRX, tailRY, hullColor)
	s.worldLine(screen, tailLX, tailLY, tailRX, tailRY, hullColor)

	// Fins flare out from the tail.
	s.worldLine(screen, tailLX, tailLY, tailLX-perpX*halfW-axisX*2, tailLY-perpY*halfW-axisY*2, finColor)
	s.worldLine(screen, tailRX, tailRY, tailRX+perpX*halfW-axisX*2, tailRY+perpY*halfW-axisY*2, finColor)

	if state.MainThrusterOn {
		flameLen := 4 + 8*state.EnginePercent
		s.worldLine(screen, tailX, tailY, tailX-axisX*flameLen, tailY-axisY*flameLen, flameColor)
		s.worldLine(screen, tailLX, tailLY, tailX-axisX*flameLen*0.6, tailY-axisY*flameLen*0.6, flameColor)
		s.worldLine(screen, tailRX, tailRY, tailX-axisX*flameLen*0.6, tailY-axisY*flameLen*0.6, flameColor)
	}

	// RCS puffs fire sideways from the nose.
	if state.RightThrusterOn {
		s.worldLine(screen, noseX, noseY, noseX-perpX*5, noseY-perpY*5, rcsColor)
	}
	if state.LeftThrusterOn {
		s.worldLine(screen, noseX, noseY, noseX+perpX*5, noseY+perpY*5, rcsColor)
	}
}

func (s *Scene) worldLine(screen *ebiten.Image, x1, y1, x2, y2 float64, clr color.Color) {
	sx1, sy1 := s.camera.WorldToScreen(x1, y1)
	sx2, sy2 := s.camera.WorldToScreen(x2, y2)
	ebitenutil.DrawLine(screen, sx1, sy1, sx2, sy2, clr)
}

func (s *Scene) drawHUD(screen *ebiten.Image, state physics.State, elapsed float64) {
	y := 10
	lines := []string{
		fmt.Sprintf("T+%6.1fs", elapsed),
		fmt.Sprintf("ALT   %7.1f m", state.Y),
		fmt.Sprintf("VSPD  %7.1f m/s", state.VY),
		fmt.Sprintf("HSPD  %7.1f m/s", state.VX),
		fmt.Sprintf("ANGLE %7.1f deg", state.Angle*180/math.Pi),
		fmt.Sprintf("FUEL  %7.0f kg", state.FuelMass),
		fmt.Sprintf("THR   %6.0f %%  TWR %.2f", state.EnginePercent*100, state.ThrustToWeightRatio),
	}
	for _, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, 10, y)
		y += 15
	}

	if state.Message != "" {
		ebitenutil.DebugPrintAt(screen, state.Message, s.cfg.Width/2-80, s.cfg.Height/2)
		ebitenutil.DebugPrintAt(screen, "Press R to restart", s.cfg.Width/2-60, s.cfg.Height/2+20)
	}

	ebitenutil.DebugPrintAt(screen,
		"Arrows/WASD: throttle + RCS | O: engine cutoff | R: restart | ESC: quit",
		10, s.cfg.Height-20)
}
