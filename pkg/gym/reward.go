// pkg/gym/reward.go
package gym

import (
	"fmt"
	"math"

	"github.com/burnlearn/go-lander/pkg/physics"
)

// RewardFunc turns one state transition into a scalar training signal. Each
// variant is a pure function of consecutive state snapshots plus its own
// tracking variables, independent of the physics engine, and is selected at
// environment construction time.
//
// The physics core zeroes velocity when it resolves a touchdown, so every
// variant reads terminal-quality velocities from the pre-impact snapshot.
type RewardFunc interface {
	// Name identifies the variant ("shaped", "descent", or "sparse").
	Name() string
	// Reset reinitializes the tracking variables from a post-reset state.
	Reset(initial physics.State)
	// Reward scores the transition from prev to curr.
	Reward(prev, curr physics.State) float64
}

// NewRewardFunc returns the reward strategy for a configured variant name.
func NewRewardFunc(name string) (RewardFunc, error) {
	switch name {
	case "shaped":
		return &ShapedReward{}, nil
	case "descent":
		return &DescentReward{}, nil
	case "sparse":
		return &SparseReward{}, nil
	default:
		return nil, fmt.Errorf("gym: unknown reward variant %q", name)
	}
}

// padDistance is the Euclidean distance from the rocket to the landing pad
// center at the origin.
func padDistance(s physics.State) float64 {
	return physics.Vector2D{X: s.X, Y: s.Y}.Distance(physics.Vector2D{})
}

// ShapedReward is the potential-based variant: per-tick progress terms
// toward the pad, toward lower descent rate and speed, penalties for drift,
// tilt, time, and fuel burn, and a quality-scaled terminal bonus.
type ShapedReward struct {
	prevPadDistance float64
	prevVertSpeed   float64
	prevSpeed       float64
	prevFuel        float64
}

// Name implements RewardFunc.
func (*ShapedReward) Name() string { return "shaped" }

// Reset implements RewardFunc.
func (r *ShapedReward) Reset(initial physics.State) {
	r.prevPadDistance = padDistance(initial)
	r.prevVertSpeed = math.Abs(initial.VY)
	r.prevSpeed = initial.Speed
	r.prevFuel = initial.FuelMass
}

// Reward implements RewardFunc. Every tracker updates after its use.
func (r *ShapedReward) Reward(prev, curr physics.State) float64 {
	reward := 0.0

	dist := padDistance(curr)
	reward += 0.01 * (r.prevPadDistance - dist)
	r.prevPadDistance = dist

	vertSpeed := math.Abs(curr.VY)
	reward += 0.05 * (r.prevVertSpeed - vertSpeed)
	r.prevVertSpeed = vertSpeed

	reward += 0.02 * (r.prevSpeed - curr.Speed)
	r.prevSpeed = curr.Speed

	reward -= 0.02 * math.Abs(curr.VX)
	reward -= 0.5 * math.Min(math.Abs(curr.Angle), math.Pi)
	reward -= 0.01

	reward -= 0.001 * (r.prevFuel - curr.FuelMass)
	r.prevFuel = curr.FuelMass

	if curr.Landed {
		quality := 0.0
		if math.Abs(prev.VX) < 2 {
			quality += 0.33
		}
		if math.Abs(prev.VY) < 2 {
			quality += 0.33
		}
		if math.Abs(curr.Angle) < 0.1 {
			quality += 0.34
		}
		reward += 100 + 900*quality
	} else if curr.Crashed {
		reward -= 1000
	}

	return reward
}

// DescentReward is the distance-and-rate variant: altitude progress, descent
// rate and drift penalties, and flat terminal bonuses.
type DescentReward struct{}

// Name implements RewardFunc.
func (*DescentReward) Name() string { return "descent" }

// Reset implements RewardFunc.
func (*DescentReward) Reset(physics.State) {}

// Reward implements RewardFunc.
func (*DescentReward) Reward(prev, curr physics.State) float64 {
	reward := 0.01 * (1000 - curr.Y)

	if curr.VY < 0 {
		reward -= 0.1 * math.Abs(curr.VY)
	}
	reward -= 0.05 * math.Abs(curr.VX)

	if curr.Landed {
		reward += math.Max(0, 10-math.Abs(prev.VY)) + 500
	} else if curr.Crashed {
		reward -= 300
	}

	return reward
}

// SparseReward gives a small per-step penalty and flat terminal payouts,
// with a larger bonus for a clean touchdown.
type SparseReward struct{}

// Name implements RewardFunc.
func (*SparseReward) Name() string { return "sparse" }

// Reset implements RewardFunc.
func (*SparseReward) Reset(physics.State) {}

// Reward implements RewardFunc.
func (*SparseReward) Reward(prev, curr physics.State) float64 {
	reward := -1.0

	if curr.Landed {
		if math.Abs(prev.VX) < 2 && math.Abs(prev.VY) < 2 && math.Abs(curr.Angle) < 0.1 {
			reward += 1000
		} else {
			reward += 500
		}
	} else if curr.Crashed {
		reward -= 1000
	}

	return reward
}
