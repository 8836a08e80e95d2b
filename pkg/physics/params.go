// pkg/physics/params.go
package physics

// WorldParams contains environment-level physics constants.
type WorldParams struct {
	Gravity          float64 `json:"gravity"`          // m/s^2, positive down
	SafeLandingSpeed float64 `json:"safeLandingSpeed"` // m/s
	SafeLandingAngle float64 `json:"safeLandingAngle"` // radians
	LandingPadRange  float64 `json:"landingPadRange"`  // meters from pad center
	AngularDamping   float64 `json:"angularDamping"`   // per-tick multiplier
	AtmosphericDrag  float64 `json:"atmosphericDrag"`  // per-tick multiplier
}

// RocketParams contains the airframe and engine constants for one rocket.
type RocketParams struct {
	Width            float64 `json:"width"`            // meters
	Height           float64 `json:"height"`           // meters
	DryMass          float64 `json:"dryMass"`          // kg
	FuelCapacity     float64 `json:"fuelCapacity"`     // kg
	MainThrust       float64 `json:"mainThrust"`       // N at full throttle
	RCSThrust        float64 `json:"rcsThrust"`        // N per thruster
	FuelRate         float64 `json:"fuelRate"`         // kg/s at full throttle
	MomentOfInertia  float64 `json:"momentOfInertia"`  // kg*m^2
	MinThrottle      float64 `json:"minThrottle"`      // lowest sustainable setting
	ThrottleUpRate   float64 `json:"throttleUpRate"`   // fraction per second
	ThrottleDownRate float64 `json:"throttleDownRate"` // fraction per second
	StartX           float64 `json:"startX"`           // meters
	StartY           float64 `json:"startY"`           // meters
}

// DefaultWorldParams returns Earth-gravity landing rules with light drag.
func DefaultWorldParams() WorldParams {
	return WorldParams{
		Gravity:          9.81,
		SafeLandingSpeed: 5.0,
		SafeLandingAngle: 0.2,
		LandingPadRange:  50,
		AngularDamping:   0.98,
		AtmosphericDrag:  0.999,
	}
}

// DefaultRocketParams returns the reference airframe. At full throttle and
// full tanks the thrust-to-weight ratio is above 1, so a hover is reachable.
func DefaultRocketParams() RocketParams {
	return RocketParams{
		Width:            4,
		Height:           25,
		DryMass:          5000,
		FuelCapacity:     15000,
		MainThrust:       300000,
		RCSThrust:        1000,
		FuelRate:         85.0,
		MomentOfInertia:  50000,
		MinThrottle:      0.3,
		ThrottleUpRate:   1.5,
		ThrottleDownRate: 2.0,
		StartX:           0,
		StartY:           500,
	}
}
