// cmd/rollout/main.go
package main

import (
	"context"
	"flag"
	"math"
	"math/rand/v2"
	"os"
	"time"

	"github.com/burnlearn/go-lander/pkg/config"
	"github.com/burnlearn/go-lander/pkg/gym"
	"github.com/burnlearn/go-lander/pkg/logging"
	"github.com/burnlearn/go-lander/pkg/physics"
	"github.com/burnlearn/go-lander/pkg/render"
)

// policy picks the next action from the latest observation.
type policy func(obs gym.Observation) any

func main() {
	logger := logging.NewLogger()
	ctx := logging.WithCorrelationID(context.Background(), "")

	configPath := flag.String("config", "", "Path to configuration file (default config if empty)")
	episodes := flag.Int("episodes", 10, "Number of episodes to run")
	policyName := flag.String("policy", "hover", "Policy: random or hover")
	rewardVariant := flag.String("reward", "", "Override reward variant (shaped, descent, sparse)")
	actionSpace := flag.String("actions", "", "Override action space (discrete, continuous)")
	seed := flag.Uint64("seed", 1, "Base episode seed")
	showRender := flag.Bool("render", false, "Render episodes in the terminal")
	flag.Parse()

	gameConfig := config.DefaultConfig()
	if *configPath != "" {
		loaded, err := config.LoadConfig(*configPath)
		if err != nil {
			logger.Error(ctx, "Failed to load configuration", err, "config_path", *configPath)
			os.Exit(1)
		}
		gameConfig = loaded
	}
	if err := config.ApplyEnvironmentOverrides(gameConfig); err != nil {
		logger.Error(ctx, "Failed to apply environment configuration", err)
		os.Exit(1)
	}

	if *rewardVariant != "" {
		gameConfig.Env.RewardVariant = *rewardVariant
	}
	if *actionSpace != "" {
		gameConfig.Env.ActionSpace = *actionSpace
	}

	env, err := gym.NewEnv(gameConfig)
	if err != nil {
		logger.Error(ctx, "Failed to create environment", err)
		os.Exit(1)
	}

	rng := rand.New(rand.NewPCG(*seed, *seed))
	act, err := buildPolicy(*policyName, env.ActionSpace(), rng)
	if err != nil {
		logger.Error(ctx, "Unknown policy", err)
		os.Exit(1)
	}

	var renderer *render.TerminalRenderer
	if *showRender {
		renderer = render.NewTerminalRenderer(70, 24, 8)
	}

	logger.Info(ctx, "Starting rollout",
		"episodes", *episodes,
		"policy", *policyName,
		"action_space", env.ActionSpace(),
		"reward_variant", env.RewardVariant(),
	)

	var totalReward float64
	var landings int

	for ep := 0; ep < *episodes; ep++ {
		obs := env.ResetWithSeed(*seed + uint64(ep))

		var epReward float64
		var steps int
		var last gym.StepResult

		for {
			result, err := env.Step(act(obs))
			if err != nil {
				logger.Error(ctx, "Step failed", err, "episode", ep, "step", steps)
				os.Exit(1)
			}

			obs = result.Observation
			epReward += result.Reward
			steps++
			last = result

			if renderer != nil {
				drawFrame(renderer, env.State(), gameConfig.World.LandingPadRange, result.Info.Time)
				time.Sleep(20 * time.Millisecond)
			}

			if result.Terminated || result.Truncated {
				break
			}
		}

		if last.Info.Landed {
			landings++
		}
		totalReward += epReward

		logger.Info(ctx, "Episode finished",
			"episode", ep,
			"steps", steps,
			"reward", epReward,
			"landed", last.Info.Landed,
			"crashed", last.Info.Crashed,
			"truncated", last.Truncated,
			"fuel_remaining", last.Info.Fuel,
		)
	}

	logger.Info(ctx, "Rollout complete",
		"episodes", *episodes,
		"landings", landings,
		"mean_reward", totalReward/float64(*episodes),
	)
}

func drawFrame(r *render.TerminalRenderer, state physics.State, padRange, elapsed float64) {
	r.Clear()
	r.RenderRocket(state)
	r.RenderGround(padRange)
	r.RenderHUD(state, elapsed)
	r.Present()
}

func buildPolicy(name, actionSpace string, rng *rand.Rand) (policy, error) {
	switch name {
	case "random":
		return randomPolicy(actionSpace, rng), nil
	case "hover":
		return hoverPolicy(actionSpace), nil
	default:
		return nil, errUnknownPolicy(name)
	}
}

type errUnknownPolicy string

func (e errUnknownPolicy) Error() string { return "unknown policy " + string(e) }

func randomPolicy(actionSpace string, rng *rand.Rand) policy {
	if actionSpace == "continuous" {
		return func(gym.Observation) any {
			return gym.ContinuousAction{
				Throttle: rng.Float64(),
				Rotation: rng.Float64()*2 - 1,
			}
		}
	}
	return func(gym.Observation) any {
		return gym.DiscreteAction(rng.IntN(6))
	}
}

// hoverPolicy is a proportional descent controller: keep the rocket upright
// and hold the vertical speed near a target that shrinks with altitude. It
// lands most default episodes and gives the reward variants something
// meaningful to score.
func hoverPolicy(actionSpace string) policy {
	target := func(y float64) float64 {
		return -math.Max(2, y/15)
	}

	if actionSpace == "continuous" {
		return func(obs gym.Observation) any {
			y, vy, angle := obs[1], obs[3], obs[4]

			throttle := 0.0
			if vy < target(y) {
				throttle = 1.0
			}

			rotation := 0.0
			if angle > 0.05 {
				rotation = -1
			} else if angle < -0.05 {
				rotation = 1
			}
			return gym.ContinuousAction{Throttle: throttle, Rotation: rotation}
		}
	}

	return func(obs gym.Observation) any {
		y, vy, angle := obs[1], obs[3], obs[4]

		// Attitude first: a tilted rocket wastes thrust.
		if angle > 0.05 {
			return gym.ActionRotateLeft
		}
		if angle < -0.05 {
			return gym.ActionRotateRight
		}

		if vy < target(y) {
			return gym.ActionThrottleUp
		}
		return gym.ActionThrottleDown
	}
}
