// pkg/gym/env_test.go
package gym

import (
	"testing"

	"github.com/burnlearn/go-lander/pkg/config"
	"github.com/burnlearn/go-lander/pkg/event"
)

func newTestEnv(t *testing.T, mutate func(*config.GameConfig)) *Env {
	t.Helper()
	cfg := config.DefaultConfig()
	if mutate != nil {
		mutate(cfg)
	}
	env, err := NewEnv(cfg)
	if err != nil {
		t.Fatalf("NewEnv failed: %v", err)
	}
	return env
}

func TestNewEnv_InitialObservation(t *testing.T) {
	env := newTestEnv(t, nil)
	obs := env.Reset()

	if obs[0] != 0 || obs[1] != 500 {
		t.Errorf("expected start at (0, 500), got (%f, %f)", obs[0], obs[1])
	}
	if obs[6] != 15000 {
		t.Errorf("expected full fuel in observation, got %f", obs[6])
	}
	if env.ActionSpace() != "discrete" || env.RewardVariant() != "shaped" {
		t.Errorf("unexpected defaults: %s/%s", env.ActionSpace(), env.RewardVariant())
	}
}

func TestNewEnv_RejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Env.TimeStep = 0
	if _, err := NewEnv(cfg); err == nil {
		t.Error("expected an error for an invalid config")
	}
}

func TestStep_FreeFall_TerminatesWithCrash(t *testing.T) {
	env := newTestEnv(t, nil)
	env.Reset()

	var last StepResult
	for i := 0; i < 10000; i++ {
		result, err := env.Step(ActionNoop)
		if err != nil {
			t.Fatalf("Step failed: %v", err)
		}
		last = result
		if result.Terminated {
			break
		}
	}

	if !last.Terminated {
		t.Fatal("free fall episode should terminate")
	}
	if !last.Info.Crashed {
		t.Error("free fall should end in a crash")
	}
	if last.Info.Landed {
		t.Error("crash and landing are mutually exclusive")
	}
	if last.Reward > -900 {
		t.Errorf("crash step should carry the terminal penalty, reward = %f", last.Reward)
	}
	if last.Info.Time <= 0 {
		t.Error("info should report elapsed episode time")
	}
}

func TestStep_Truncation_AfterEpisodeTimeLimit(t *testing.T) {
	env := newTestEnv(t, func(c *config.GameConfig) {
		c.Env.EpisodeTimeLimit = 0.25
		c.Rocket.StartY = 5000 // stays airborne well past the limit
	})
	env.Reset()

	var result StepResult
	var err error
	for i := 0; i < 4; i++ {
		result, err = env.Step(ActionNoop)
		if err != nil {
			t.Fatalf("Step failed: %v", err)
		}
	}

	if !result.Truncated {
		t.Error("episode should truncate past the time limit")
	}
	if result.Terminated {
		t.Error("truncated high-altitude episode should not be terminated")
	}
}

func TestStep_WrongActionType_ReturnsError(t *testing.T) {
	discrete := newTestEnv(t, nil)
	if _, err := discrete.Step(ContinuousAction{Throttle: 1}); err == nil {
		t.Error("discrete env must reject continuous actions")
	}

	continuous := newTestEnv(t, func(c *config.GameConfig) { c.Env.ActionSpace = "continuous" })
	if _, err := continuous.Step(ActionNoop); err == nil {
		t.Error("continuous env must reject discrete actions")
	}
}

func TestStep_ContinuousThrottle_BypassesRamp(t *testing.T) {
	env := newTestEnv(t, func(c *config.GameConfig) { c.Env.ActionSpace = "continuous" })
	env.Reset()

	result, err := env.Step(ContinuousAction{Throttle: 1.0})
	if err != nil {
		t.Fatalf("Step failed: %v", err)
	}

	s := env.State()
	if !s.MainThrusterOn || s.EnginePercent != 1.0 {
		t.Errorf("full throttle should apply immediately, on=%v pct=%f", s.MainThrusterOn, s.EnginePercent)
	}
	if result.Info.Fuel >= 15000 {
		t.Error("thrust should consume fuel")
	}

	// Below the sustain minimum the engine cuts out.
	if _, err := env.Step(ContinuousAction{Throttle: 0.1}); err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	if env.State().MainThrusterOn {
		t.Error("sub-minimum throttle should shut the engine down")
	}
}

func TestStep_ContinuousRotation_RoundsToDirection(t *testing.T) {
	tests := []struct {
		name     string
		rotation float64
		wantSign float64
	}{
		{name: "strong left", rotation: -0.9, wantSign: -1},
		{name: "weak drift ignored", rotation: 0.2, wantSign: 0},
		{name: "strong right", rotation: 0.9, wantSign: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, func(c *config.GameConfig) { c.Env.ActionSpace = "continuous" })
			env.Reset()

			if _, err := env.Step(ContinuousAction{Rotation: tt.rotation}); err != nil {
				t.Fatalf("Step failed: %v", err)
			}

			av := env.State().AngularVelocity
			switch {
			case tt.wantSign == 0 && av != 0:
				t.Errorf("expected no rotation, got angular velocity %f", av)
			case tt.wantSign != 0 && av*tt.wantSign <= 0:
				t.Errorf("expected angular velocity sign %f, got %f", tt.wantSign, av)
			}
		})
	}
}

func TestStep_ContinuousAfterTerminal_StateFrozen(t *testing.T) {
	env := newTestEnv(t, func(c *config.GameConfig) {
		c.Env.ActionSpace = "continuous"
		// Start just above the ground so the first step touches down.
		c.Env.StartAltitudeMin = c.Rocket.Height/2 + 0.05
		c.Env.StartAltitudeMax = c.Rocket.Height/2 + 0.05
	})
	env.Reset()

	result, err := env.Step(ContinuousAction{Throttle: 0})
	if err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	if !result.Info.Landed {
		t.Fatalf("expected a landing, info: %+v", result.Info)
	}

	frozen := env.State()
	for i := 0; i < 5; i++ {
		result, err = env.Step(ContinuousAction{Throttle: 1.0, Rotation: 1.0})
		if err != nil {
			t.Fatalf("Step on terminal env failed: %v", err)
		}
		if !result.Terminated {
			t.Error("terminal episode should stay terminated")
		}
		if env.State() != frozen {
			t.Fatalf("full throttle must not disturb a terminal rocket:\n got %+v\nwant %+v",
				env.State(), frozen)
		}
	}
	if env.State().MainThrusterOn || env.State().EnginePercent != frozen.EnginePercent {
		t.Error("landed rocket's engine must stay off at its pre-impact setting")
	}
}

func TestResetWithSeed_DeterministicStartAltitude(t *testing.T) {
	randomized := func(c *config.GameConfig) {
		c.Env.StartAltitudeMin = 400
		c.Env.StartAltitudeMax = 600
	}

	a := newTestEnv(t, randomized)
	b := newTestEnv(t, randomized)

	obsA := a.ResetWithSeed(7)
	obsB := b.ResetWithSeed(7)
	if obsA != obsB {
		t.Errorf("same seed should give the same start: %v vs %v", obsA, obsB)
	}
	if obsA[1] < 400 || obsA[1] > 600 {
		t.Errorf("start altitude %f outside configured range", obsA[1])
	}

	// Consecutive resets draw fresh altitudes from the seeded stream.
	second := a.Reset()
	third := a.Reset()
	if obsA[1] == second[1] && second[1] == third[1] {
		t.Error("randomized resets should vary the start altitude")
	}
}

func TestEnvs_ShareNoState(t *testing.T) {
	a := newTestEnv(t, nil)
	b := newTestEnv(t, nil)
	a.Reset()
	b.Reset()

	for i := 0; i < 50; i++ {
		if _, err := a.Step(ActionThrottleUp); err != nil {
			t.Fatalf("Step failed: %v", err)
		}
	}

	obs := b.Reset()
	if obs[6] != 15000 {
		t.Errorf("stepping one env must not affect another, fuel = %f", obs[6])
	}
}

func TestStep_DeterministicTrajectories(t *testing.T) {
	script := []DiscreteAction{
		ActionThrottleUp, ActionThrottleUp, ActionRotateLeft,
		ActionThrottleDown, ActionNoop, ActionRotateRight,
	}

	a := newTestEnv(t, nil)
	b := newTestEnv(t, nil)
	a.ResetWithSeed(3)
	b.ResetWithSeed(3)

	for i := 0; i < 300; i++ {
		ra, err := a.Step(script[i%len(script)])
		if err != nil {
			t.Fatalf("Step failed: %v", err)
		}
		rb, err := b.Step(script[i%len(script)])
		if err != nil {
			t.Fatalf("Step failed: %v", err)
		}
		if ra != rb {
			t.Fatalf("trajectories diverged at step %d", i)
		}
	}
}

func TestAttachBus_PublishesPhysicsEvents(t *testing.T) {
	env := newTestEnv(t, nil)
	bus := event.NewEventBus()
	env.AttachBus(bus)

	var engineEvents, resets int
	bus.Subscribe(event.EngineStateChanged, func(event.Event) { engineEvents++ })
	bus.Subscribe(event.EpisodeReset, func(event.Event) { resets++ })

	env.Reset()
	if resets != 1 {
		t.Errorf("expected 1 reset event, got %d", resets)
	}

	for i := 0; i < 5; i++ {
		if _, err := env.Step(ActionThrottleUp); err != nil {
			t.Fatalf("Step failed: %v", err)
		}
	}
	if engineEvents == 0 {
		t.Error("throttle-up steps should publish engine events")
	}
}
