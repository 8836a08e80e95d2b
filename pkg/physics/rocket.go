// pkg/physics/rocket.go
package physics

import (
	"fmt"
	"math"
	"strings"

	"github.com/burnlearn/go-lander/pkg/event"
)

// Controls is the sole input to one physics tick. It is constructed fresh
// every tick from whatever input source is active (keyboard or a decoded
// agent action) and never persisted.
type Controls struct {
	IncreaseThrottle bool
	DecreaseThrottle bool
	RotateLeft       bool
	RotateRight      bool
	EngineShutdown   bool
}

// State is an immutable snapshot of the rocket, produced on demand for
// rendering, audio, and the training environment.
type State struct {
	X               float64
	Y               float64
	VX              float64
	VY              float64
	Angle           float64
	AngularVelocity float64

	FuelMass  float64
	TotalMass float64

	MainThrusterOn  bool
	LeftThrusterOn  bool
	RightThrusterOn bool
	EnginePercent   float64

	Landed  bool
	Crashed bool
	Message string

	Speed               float64
	ThrustToWeightRatio float64
}

// Terminal reports whether the rocket has reached an absorbing state.
func (s State) Terminal() bool {
	return s.Landed || s.Crashed
}

// Rocket is the deterministic physics state machine for a single rigid body
// under thrust, gravity, rotational torque, and drag. One instance is owned
// exclusively by whichever loop drives it; there is no shared state between
// instances.
type Rocket struct {
	world  WorldParams
	rocket RocketParams

	x, y            float64
	vx, vy          float64
	angle           float64
	angularVelocity float64

	fuelMass        float64
	enginePercent   float64
	mainThrusterOn  bool
	leftThrusterOn  bool
	rightThrusterOn bool

	landed  bool
	crashed bool
	message string
}

// NewRocket creates a rocket at the configured start position with full fuel.
func NewRocket(world WorldParams, params RocketParams) *Rocket {
	r := &Rocket{world: world, rocket: params}
	r.ResetAt(params.StartX, params.StartY)
	return r
}

// Params returns the airframe constants the rocket was built with.
func (r *Rocket) Params() RocketParams {
	return r.rocket
}

// World returns the environment constants the rocket was built with.
func (r *Rocket) World() WorldParams {
	return r.world
}

// TotalMass returns dry mass plus remaining fuel.
func (r *Rocket) TotalMass() float64 {
	return r.rocket.DryMass + r.fuelMass
}

// ThrustToWeightRatio returns max thrust over current weight.
func (r *Rocket) ThrustToWeightRatio() float64 {
	weight := r.TotalMass() * r.world.Gravity
	if weight <= 0 {
		return 0
	}
	return r.rocket.MainThrust / weight
}

// Speed returns the velocity magnitude.
func (r *Rocket) Speed() float64 {
	return Vector2D{X: r.vx, Y: r.vy}.Length()
}

// State returns a complete snapshot for external systems.
func (r *Rocket) State() State {
	return State{
		X:                   r.x,
		Y:                   r.y,
		VX:                  r.vx,
		VY:                  r.vy,
		Angle:               r.angle,
		AngularVelocity:     r.angularVelocity,
		FuelMass:            r.fuelMass,
		TotalMass:           r.TotalMass(),
		MainThrusterOn:      r.mainThrusterOn,
		LeftThrusterOn:      r.leftThrusterOn,
		RightThrusterOn:     r.rightThrusterOn,
		EnginePercent:       r.enginePercent,
		Landed:              r.landed,
		Crashed:             r.crashed,
		Message:             r.message,
		Speed:               r.Speed(),
		ThrustToWeightRatio: r.ThrustToWeightRatio(),
	}
}

// SetThrottle drives the engine directly, bypassing the throttle ramp. A
// setting at or above the minimum forces the engine on at that percentage;
// anything below forces it off and resets the percentage to minimum. Used by
// the continuous action space. A terminal rocket ignores throttle commands,
// keeping the absorbing state frozen.
func (r *Rocket) SetThrottle(throttle float64) {
	if r.landed || r.crashed {
		return
	}
	if throttle >= r.rocket.MinThrottle {
		r.mainThrusterOn = true
		r.enginePercent = math.Min(1.0, throttle)
	} else {
		r.mainThrusterOn = false
		r.enginePercent = r.rocket.MinThrottle
	}
}

// Update advances the simulation by one tick. It mutates the rocket in place
// and returns the discrete state changes of the tick. A terminal rocket is
// absorbing: Update becomes a no-op returning no events. dt must be positive.
func (r *Rocket) Update(controls Controls, dt float64) ([]event.Event, error) {
	if dt <= 0 {
		return nil, fmt.Errorf("physics: non-positive timestep %v", dt)
	}
	if r.landed || r.crashed {
		return nil, nil
	}

	var events []event.Event

	// RCS flags are recomputed every tick, never carried over.
	r.leftThrusterOn = false
	r.rightThrusterOn = false

	currentMass := r.TotalMass()

	// Throttle control.
	oldEngineOn := r.mainThrusterOn
	oldEnginePercent := r.enginePercent

	if controls.IncreaseThrottle {
		r.mainThrusterOn = true
		r.enginePercent = math.Min(1.0, r.enginePercent+r.rocket.ThrottleUpRate*dt)
	}
	if controls.DecreaseThrottle && r.mainThrusterOn {
		r.enginePercent = math.Max(r.rocket.MinThrottle, r.enginePercent-r.rocket.ThrottleDownRate*dt)
	}
	if controls.EngineShutdown {
		r.mainThrusterOn = false
		r.enginePercent = r.rocket.MinThrottle
	}

	// Main engine.
	if r.mainThrusterOn && r.enginePercent >= r.rocket.MinThrottle && r.fuelMass > 0 {
		thrustForce := r.rocket.MainThrust * r.enginePercent
		accel := FromAngle(r.angle, thrustForce/currentMass)
		r.vx += accel.X * dt
		r.vy += accel.Y * dt

		consumed := r.rocket.FuelRate * r.enginePercent * dt
		r.fuelMass = math.Max(0, r.fuelMass-consumed)

		if !oldEngineOn || oldEnginePercent != r.enginePercent {
			events = append(events, event.NewEngineEvent(r, true, r.enginePercent))
		}
	} else {
		r.mainThrusterOn = false
		if oldEngineOn {
			events = append(events, event.NewEngineEvent(r, false, 0))
		}
	}

	// RCS. Both thrusters may fire in the same tick; the torques cancel.
	if controls.RotateLeft && r.fuelMass > 0 {
		torque := r.rocket.RCSThrust * (r.rocket.Height / 2)
		r.angularVelocity += -torque / r.rocket.MomentOfInertia * dt
		r.fuelMass = math.Max(0, r.fuelMass-r.rocket.FuelRate*0.1*dt)
		r.leftThrusterOn = true
	}
	if controls.RotateRight && r.fuelMass > 0 {
		torque := r.rocket.RCSThrust * (r.rocket.Height / 2)
		r.angularVelocity += torque / r.rocket.MomentOfInertia * dt
		r.fuelMass = math.Max(0, r.fuelMass-r.rocket.FuelRate*0.1*dt)
		r.rightThrusterOn = true
	}
	events = append(events, event.NewRCSEvent(r, r.leftThrusterOn, r.rightThrusterOn))

	// Gravity.
	r.vy += -r.world.Gravity * dt

	// Kinematic integration.
	r.x += r.vx * dt
	r.y += r.vy * dt
	r.angle += r.angularVelocity * dt

	// Damping. Per-tick multiplicative, not dt-normalized: the strength
	// varies with tick rate. Trained policies depend on it; see DESIGN.md.
	r.angularVelocity *= r.world.AngularDamping
	r.vx *= r.world.AtmosphericDrag
	r.vy *= r.world.AtmosphericDrag

	// Ground contact.
	if r.y-(r.rocket.Height/2) <= 0 {
		r.y = r.rocket.Height / 2
		events = append(events, r.resolveTouchdown())
	}

	return events, nil
}

// resolveTouchdown classifies the ground contact exactly once. All three
// gates must pass for a landing; any failure is a crash listing each failed
// gate by name. Velocity is zeroed in both cases and never changes again.
func (r *Rocket) resolveTouchdown() event.Event {
	speed := r.Speed()

	onPad := math.Abs(r.x) <= r.world.LandingPadRange
	safeSpeed := speed < r.world.SafeLandingSpeed
	upright := math.Abs(r.angle) < r.world.SafeLandingAngle

	var out event.Event
	if safeSpeed && upright && onPad {
		r.landed = true
		r.message = "LANDING SUCCESSFUL!"
		out = event.NewLandingEvent(r, r.x, speed, r.angle)
	} else {
		r.crashed = true
		var reasons []string
		if !safeSpeed {
			reasons = append(reasons, fmt.Sprintf("High Speed (%.1f m/s)", speed))
		}
		if !upright {
			reasons = append(reasons, fmt.Sprintf("Bad Angle (%.0f°)", math.Abs(r.angle*180/math.Pi)))
		}
		if !onPad {
			reasons = append(reasons, "Missed Landing Pad")
		}
		r.message = "CRASHED: " + strings.Join(reasons, ", ")
		out = event.NewCrashEvent(r, reasons, r.x, speed, r.angle)
	}

	r.vx = 0
	r.vy = 0
	r.angularVelocity = 0

	return out
}

// Reset reinitializes every field to its default, discarding prior state.
func (r *Rocket) Reset() {
	r.ResetAt(r.rocket.StartX, r.rocket.StartY)
}

// ResetAt resets the rocket with an overridden start position.
func (r *Rocket) ResetAt(x, y float64) {
	r.x = x
	r.y = y
	r.vx = 0
	r.vy = 0
	r.angle = 0
	r.angularVelocity = 0
	r.fuelMass = r.rocket.FuelCapacity
	r.enginePercent = r.rocket.MinThrottle
	r.mainThrusterOn = false
	r.leftThrusterOn = false
	r.rightThrusterOn = false
	r.landed = false
	r.crashed = false
	r.message = ""
}
