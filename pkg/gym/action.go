// pkg/gym/action.go
package gym

import (
	"fmt"
	"math"

	"github.com/burnlearn/go-lander/pkg/physics"
)

// DiscreteAction selects exactly one control flag per tick.
type DiscreteAction int

// The six discrete actions, in their wire order.
const (
	ActionNoop DiscreteAction = iota
	ActionThrottleUp
	ActionThrottleDown
	ActionRotateLeft
	ActionRotateRight
	ActionEngineShutdown
)

// ContinuousAction drives the throttle directly and picks a rotation
// direction. Throttle below the engine's minimum shuts the engine down;
// rotation is rounded to the nearest of {-1, 0, +1}.
type ContinuousAction struct {
	Throttle float64 `json:"throttle"`
	Rotation float64 `json:"rotation"`
}

// ActionDecoder translates one action encoding into per-tick controls. The
// encoding is fixed per environment instance; the two decoders are separate
// adapters over the same physics engine, not one adapter switching on the
// action's type at runtime.
type ActionDecoder interface {
	// Name identifies the encoding ("discrete" or "continuous").
	Name() string
	// Decode produces the controls for one tick. The continuous decoder
	// additionally drives the rocket's throttle in place.
	Decode(action any, rocket *physics.Rocket) (physics.Controls, error)
}

// DiscreteDecoder maps the six-way action to one control flag.
type DiscreteDecoder struct{}

// Name implements ActionDecoder.
func (DiscreteDecoder) Name() string { return "discrete" }

// Decode implements ActionDecoder.
func (DiscreteDecoder) Decode(action any, _ *physics.Rocket) (physics.Controls, error) {
	a, ok := action.(DiscreteAction)
	if !ok {
		return physics.Controls{}, fmt.Errorf("gym: discrete decoder got %T", action)
	}

	var controls physics.Controls
	switch a {
	case ActionNoop:
	case ActionThrottleUp:
		controls.IncreaseThrottle = true
	case ActionThrottleDown:
		controls.DecreaseThrottle = true
	case ActionRotateLeft:
		controls.RotateLeft = true
	case ActionRotateRight:
		controls.RotateRight = true
	case ActionEngineShutdown:
		controls.EngineShutdown = true
	default:
		return physics.Controls{}, fmt.Errorf("gym: discrete action %d out of range", a)
	}
	return controls, nil
}

// ContinuousDecoder applies a [throttle, rotation] pair, bypassing the
// throttle ramp.
type ContinuousDecoder struct{}

// Name implements ActionDecoder.
func (ContinuousDecoder) Name() string { return "continuous" }

// Decode implements ActionDecoder.
func (ContinuousDecoder) Decode(action any, rocket *physics.Rocket) (physics.Controls, error) {
	a, ok := action.(ContinuousAction)
	if !ok {
		return physics.Controls{}, fmt.Errorf("gym: continuous decoder got %T", action)
	}

	rocket.SetThrottle(a.Throttle)

	var controls physics.Controls
	switch math.Round(math.Max(-1, math.Min(1, a.Rotation))) {
	case -1:
		controls.RotateLeft = true
	case 1:
		controls.RotateRight = true
	}
	return controls, nil
}

// NewActionDecoder returns the decoder for a configured action space name.
func NewActionDecoder(name string) (ActionDecoder, error) {
	switch name {
	case "discrete":
		return DiscreteDecoder{}, nil
	case "continuous":
		return ContinuousDecoder{}, nil
	default:
		return nil, fmt.Errorf("gym: unknown action space %q", name)
	}
}
