// pkg/gym/reward_test.go
package gym

import (
	"math"
	"testing"

	"github.com/gonum/floats"

	"github.com/burnlearn/go-lander/pkg/physics"
)

func flyingState(x, y, vx, vy, angle, fuel float64) physics.State {
	return physics.State{
		X: x, Y: y, VX: vx, VY: vy,
		Angle:    angle,
		FuelMass: fuel,
		Speed:    math.Hypot(vx, vy),
	}
}

func TestNewRewardFunc_KnownVariants(t *testing.T) {
	for _, name := range []string{"shaped", "descent", "sparse"} {
		r, err := NewRewardFunc(name)
		if err != nil {
			t.Fatalf("NewRewardFunc(%q) failed: %v", name, err)
		}
		if r.Name() != name {
			t.Errorf("Name() = %q, want %q", r.Name(), name)
		}
	}
	if _, err := NewRewardFunc("bogus"); err == nil {
		t.Error("expected an error for an unknown variant")
	}
}

func TestShapedReward_PerTickTerms(t *testing.T) {
	r := &ShapedReward{}
	initial := flyingState(0, 500, 0, 0, 0, 15000)
	r.Reset(initial)

	curr := flyingState(0, 490, 0, -10, 0.05, 14990)
	got := r.Reward(initial, curr)

	// progress 0.01*(500-490), descent-rate 0.05*(0-10), speed 0.02*(0-10),
	// tilt -0.5*0.05, time -0.01, fuel -0.001*10
	want := 0.1 - 0.5 - 0.2 - 0.025 - 0.01 - 0.01
	if !floats.EqualWithinAbs(got, want, 1e-12) {
		t.Errorf("reward = %f, want %f", got, want)
	}

	// Trackers updated after use: an identical follow-up transition only
	// pays the stateless penalties.
	got = r.Reward(curr, curr)
	want = -0.5*0.05 - 0.01
	if !floats.EqualWithinAbs(got, want, 1e-12) {
		t.Errorf("repeat reward = %f, want %f", got, want)
	}
}

func TestShapedReward_HorizontalDriftPenalty(t *testing.T) {
	r := &ShapedReward{}
	initial := flyingState(0, 500, 0, 0, 0, 15000)
	r.Reset(initial)

	curr := flyingState(0, 500, 4, 0, 0, 15000)
	got := r.Reward(initial, curr)

	// drift -0.02*4, speed tracker 0.02*(0-4), time -0.01
	want := -0.08 - 0.08 - 0.01
	if !floats.EqualWithinAbs(got, want, 1e-12) {
		t.Errorf("reward = %f, want %f", got, want)
	}
}

func TestShapedReward_TiltPenaltyCapped(t *testing.T) {
	r := &ShapedReward{}
	initial := flyingState(0, 500, 0, 0, 0, 15000)
	r.Reset(initial)

	curr := flyingState(0, 500, 0, 0, 2*math.Pi, 15000)
	got := r.Reward(initial, curr)

	want := -0.5*math.Pi - 0.01
	if !floats.EqualWithinAbs(got, want, 1e-12) {
		t.Errorf("tilt penalty should cap at pi, reward = %f, want %f", got, want)
	}
}

func TestShapedReward_TerminalBonuses(t *testing.T) {
	tests := []struct {
		name    string
		prev    physics.State
		curr    physics.State
		minimum float64
		maximum float64
	}{
		{
			name:    "perfect landing",
			prev:    flyingState(0, 13, 1, -1.5, 0.05, 12000),
			curr:    physics.State{Y: 12.5, Landed: true, Angle: 0.05, FuelMass: 12000},
			minimum: 990, // 100 + 900*1.0 minus small shaping terms
			maximum: 1010,
		},
		{
			name:    "sloppy landing",
			prev:    flyingState(0, 13, 3, -4.5, 0.15, 12000),
			curr:    physics.State{Y: 12.5, Landed: true, Angle: 0.15, FuelMass: 12000},
			minimum: 90, // quality 0: all three gates failed
			maximum: 110,
		},
		{
			name:    "crash",
			prev:    flyingState(0, 13, 0, -40, 0, 12000),
			curr:    physics.State{Y: 12.5, Crashed: true, FuelMass: 12000},
			minimum: -1010,
			maximum: -990,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &ShapedReward{}
			r.Reset(tt.prev)
			got := r.Reward(tt.prev, tt.curr)
			if got < tt.minimum || got > tt.maximum {
				t.Errorf("reward = %f, want within [%f, %f]", got, tt.minimum, tt.maximum)
			}
		})
	}
}

func TestShapedReward_SofterTouchdownNeverWorse(t *testing.T) {
	initial := flyingState(0, 500, 0, 0, 0, 15000)
	landed := physics.State{Y: 12.5, Landed: true, FuelMass: 12000}

	soft := &ShapedReward{}
	soft.Reset(initial)
	softPrev := flyingState(0, 13, 0, -1, 0, 12000)
	softReward := soft.Reward(softPrev, landed)

	hard := &ShapedReward{}
	hard.Reset(initial)
	hardPrev := flyingState(0, 13, 0, -3, 0, 12000)
	hardReward := hard.Reward(hardPrev, landed)

	if softReward < hardReward {
		t.Errorf("softer touchdown scored %f, harder scored %f", softReward, hardReward)
	}
}

func TestDescentReward_Formula(t *testing.T) {
	r := &DescentReward{}

	prev := flyingState(0, 410, 2, -5, 0, 14000)
	curr := flyingState(0, 400, 2, -5, 0, 14000)

	got := r.Reward(prev, curr)
	want := 0.01*(1000-400) - 0.1*5 - 0.05*2
	if !floats.EqualWithinAbs(got, want, 1e-12) {
		t.Errorf("reward = %f, want %f", got, want)
	}

	// Ascending pays no descent-rate penalty.
	up := flyingState(0, 400, 2, 5, 0, 14000)
	got = r.Reward(prev, up)
	want = 0.01*(1000-400) - 0.05*2
	if !floats.EqualWithinAbs(got, want, 1e-12) {
		t.Errorf("ascending reward = %f, want %f", got, want)
	}
}

func TestDescentReward_TerminalBonuses(t *testing.T) {
	r := &DescentReward{}

	prev := flyingState(0, 13, 0, -4, 0, 12000)
	landed := physics.State{Y: 12.5, Landed: true, FuelMass: 12000}
	got := r.Reward(prev, landed)
	want := 0.01*(1000-12.5) + (10 - 4) + 500
	if !floats.EqualWithinAbs(got, want, 1e-12) {
		t.Errorf("landing reward = %f, want %f", got, want)
	}

	// Impact above 10 m/s earns no touchdown bonus beyond the flat 500.
	fast := flyingState(0, 13, 0, -30, 0, 12000)
	got = r.Reward(fast, landed)
	want = 0.01*(1000-12.5) + 0 + 500
	if !floats.EqualWithinAbs(got, want, 1e-12) {
		t.Errorf("hard landing reward = %f, want %f", got, want)
	}

	crashed := physics.State{Y: 12.5, Crashed: true, FuelMass: 12000}
	got = r.Reward(prev, crashed)
	want = 0.01*(1000-12.5) - 300
	if !floats.EqualWithinAbs(got, want, 1e-12) {
		t.Errorf("crash reward = %f, want %f", got, want)
	}
}

func TestSparseReward_Payouts(t *testing.T) {
	r := &SparseReward{}

	flying := flyingState(0, 400, 0, -5, 0, 14000)
	if got := r.Reward(flying, flying); got != -1 {
		t.Errorf("per-step reward = %f, want -1", got)
	}

	perfectPrev := flyingState(0, 13, 1, -1, 0.05, 12000)
	landed := physics.State{Y: 12.5, Landed: true, Angle: 0.05, FuelMass: 12000}
	if got := r.Reward(perfectPrev, landed); got != 999 {
		t.Errorf("perfect landing reward = %f, want 999", got)
	}

	sloppyPrev := flyingState(0, 13, 3, -4, 0.05, 12000)
	if got := r.Reward(sloppyPrev, landed); got != 499 {
		t.Errorf("okay landing reward = %f, want 499", got)
	}

	crashed := physics.State{Y: 12.5, Crashed: true, FuelMass: 12000}
	if got := r.Reward(perfectPrev, crashed); got != -1001 {
		t.Errorf("crash reward = %f, want -1001", got)
	}
}
