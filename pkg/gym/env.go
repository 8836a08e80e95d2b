// Package gym wraps the rocket physics engine in a reset/step contract
// suitable for iterative training loops. Each Env owns its rocket and its
// reward trackers exclusively; independent instances share nothing, so
// parallel rollouts need no synchronization.
package gym

import (
	"fmt"
	"math/rand/v2"

	"github.com/burnlearn/go-lander/pkg/config"
	"github.com/burnlearn/go-lander/pkg/event"
	"github.com/burnlearn/go-lander/pkg/physics"
)

// Observation is the fixed-order state vector:
// [x, y, vx, vy, angle, angular_velocity, fuel].
type Observation [7]float64

// Info is the diagnostic mapping returned alongside each step.
type Info struct {
	Time     float64 `json:"time"`
	Fuel     float64 `json:"fuel"`
	Altitude float64 `json:"altitude"`
	Speed    float64 `json:"speed"`
	Landed   bool    `json:"landed"`
	Crashed  bool    `json:"crashed"`
}

// StepResult is the outcome of one environment step.
type StepResult struct {
	Observation Observation `json:"observation"`
	Reward      float64     `json:"reward"`
	Terminated  bool        `json:"terminated"`
	Truncated   bool        `json:"truncated"`
	Info        Info        `json:"info"`
}

// Env drives one rocket through training episodes. The action encoding and
// reward variant are fixed at construction.
type Env struct {
	rocket  *physics.Rocket
	decoder ActionDecoder
	reward  RewardFunc
	cfg     config.EnvConfig

	rng   *rand.Rand
	timer float64
	prev  physics.State
	bus   *event.Bus
}

// NewEnv creates an environment from a full game configuration.
func NewEnv(cfg *config.GameConfig) (*Env, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("gym: %w", err)
	}

	decoder, err := NewActionDecoder(cfg.Env.ActionSpace)
	if err != nil {
		return nil, err
	}
	reward, err := NewRewardFunc(cfg.Env.RewardVariant)
	if err != nil {
		return nil, err
	}

	env := &Env{
		rocket:  physics.NewRocket(cfg.World, cfg.Rocket),
		decoder: decoder,
		reward:  reward,
		cfg:     cfg.Env,
		rng:     rand.New(rand.NewPCG(0, 0)),
	}
	env.Reset()
	return env, nil
}

// ActionSpace returns the name of the fixed action encoding.
func (e *Env) ActionSpace() string { return e.decoder.Name() }

// RewardVariant returns the name of the fixed reward strategy.
func (e *Env) RewardVariant() string { return e.reward.Name() }

// State exposes a read-only snapshot for rendering collaborators.
func (e *Env) State() physics.State { return e.rocket.State() }

// AttachBus publishes per-tick physics events to the given bus so audio and
// rendering collaborators can observe training episodes. The reward path
// never reads them.
func (e *Env) AttachBus(bus *event.Bus) { e.bus = bus }

// Reset starts a new episode, discarding all prior state.
func (e *Env) Reset() Observation {
	params := e.rocket.Params()

	startY := e.cfg.StartAltitudeMin
	if e.cfg.StartAltitudeMax > e.cfg.StartAltitudeMin {
		startY += e.rng.Float64() * (e.cfg.StartAltitudeMax - e.cfg.StartAltitudeMin)
	}
	e.rocket.ResetAt(params.StartX, startY)

	e.timer = 0
	e.prev = e.rocket.State()
	e.reward.Reset(e.prev)

	if e.bus != nil {
		e.bus.Publish(&event.BaseEvent{EventType: event.EpisodeReset, Source: e})
	}
	return e.observation()
}

// ResetWithSeed reseeds the episode RNG and starts a new episode. Identical
// seeds produce identical start states.
func (e *Env) ResetWithSeed(seed uint64) Observation {
	e.rng = rand.New(rand.NewPCG(seed, seed))
	return e.Reset()
}

// Step decodes one action, advances the physics by the fixed timestep, and
// scores the transition.
func (e *Env) Step(action any) (StepResult, error) {
	controls, err := e.decoder.Decode(action, e.rocket)
	if err != nil {
		return StepResult{}, err
	}

	events, err := e.rocket.Update(controls, e.cfg.TimeStep)
	if err != nil {
		return StepResult{}, err
	}
	e.timer += e.cfg.TimeStep

	if e.bus != nil {
		e.bus.PublishAll(events)
	}

	curr := e.rocket.State()
	reward := e.reward.Reward(e.prev, curr)
	e.prev = curr

	result := StepResult{
		Observation: e.observation(),
		Reward:      reward,
		Terminated:  curr.Landed || curr.Crashed || curr.FuelMass <= 0,
		Truncated:   e.timer > e.cfg.EpisodeTimeLimit,
		Info: Info{
			Time:     e.timer,
			Fuel:     curr.FuelMass,
			Altitude: curr.Y,
			Speed:    curr.Speed,
			Landed:   curr.Landed,
			Crashed:  curr.Crashed,
		},
	}
	return result, nil
}

func (e *Env) observation() Observation {
	s := e.rocket.State()
	return Observation{s.X, s.Y, s.VX, s.VY, s.Angle, s.AngularVelocity, s.FuelMass}
}
