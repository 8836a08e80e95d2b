// Package desktop is the interactive ebiten client. It owns a single rocket,
// maps the keyboard into per-tick control frames, and republishes physics
// events so audio and any other subscriber stay in sync with the simulation.
package desktop

import (
	"context"
	"errors"
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/burnlearn/go-lander/pkg/config"
	"github.com/burnlearn/go-lander/pkg/event"
	"github.com/burnlearn/go-lander/pkg/logging"
	"github.com/burnlearn/go-lander/pkg/physics"
)

// ErrQuit signals a user-requested exit from the game loop.
var ErrQuit = errors.New("desktop: quit requested")

// Game implements ebiten.Game around the physics core.
type Game struct {
	cfg     *config.GameConfig
	rocket  *physics.Rocket
	bus     *event.Bus
	scene   *Scene
	logger  *logging.Logger
	elapsed float64
	dt      float64
}

// NewGame wires a game from a validated configuration. The bus may carry
// other subscribers (audio); the game publishes every physics event to it.
func NewGame(cfg *config.GameConfig, bus *event.Bus) *Game {
	g := &Game{
		cfg:    cfg,
		rocket: physics.NewRocket(cfg.World, cfg.Rocket),
		bus:    bus,
		scene:  NewScene(cfg.Display),
		logger: logging.NewLogger(),
		dt:     1.0 / float64(cfg.Display.FPS),
	}
	g.scene.Camera().Reset(cfg.Rocket.StartX, cfg.Rocket.StartY)
	return g
}

// Update implements ebiten.Game. One display frame is one physics tick.
func (g *Game) Update() error {
	if QuitRequested() {
		return ErrQuit
	}

	if RestartRequested() {
		g.rocket.Reset()
		g.elapsed = 0
		g.bus.Publish(&event.BaseEvent{EventType: event.EpisodeReset, Source: g.rocket})
		g.scene.Camera().Reset(g.cfg.Rocket.StartX, g.cfg.Rocket.StartY)
	}

	state := g.rocket.State()
	if !state.Terminal() {
		events, err := g.rocket.Update(ReadControls(), g.dt)
		if err != nil {
			return err
		}
		g.bus.PublishAll(events)
		g.elapsed += g.dt

		for _, e := range events {
			if e.GetType() == event.LandingSuccess || e.GetType() == event.LandingCrash {
				g.logger.Info(context.Background(), "flight ended",
					"outcome", string(e.GetType()),
					"elapsed", g.elapsed,
					"fuel_remaining", g.rocket.State().FuelMass,
				)
			}
		}
	}

	// Track faster when the rocket moves fast so it never leaves the frame.
	smoothness := g.cfg.Display.CameraSmoothness * (1 + state.Speed/50)
	g.scene.Camera().Follow(state.X, state.Y, math.Min(1.0, smoothness))

	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen, g.rocket.State(), g.cfg.World.LandingPadRange, g.elapsed)
}

// Layout implements ebiten.Game.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Display.Width, g.cfg.Display.Height
}

// Run opens the window and blocks until the player quits.
func (g *Game) Run() error {
	ebiten.SetWindowSize(g.cfg.Display.Width, g.cfg.Display.Height)
	ebiten.SetWindowTitle("go-lander")
	ebiten.SetTPS(g.cfg.Display.FPS)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ErrQuit) {
		return err
	}
	return nil
}
