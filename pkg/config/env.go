// pkg/config/env.go
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Environment variable overrides. Deployment-specific settings can be set
// without editing the config file; everything else is left untouched.
const (
	envServerAddr    = "LANDER_SERVER_ADDR"
	envMaxSessions   = "LANDER_MAX_SESSIONS"
	envHealthPort    = "LANDER_HEALTH_PORT"
	envAudioEnabled  = "LANDER_AUDIO_ENABLED"
	envRewardVariant = "LANDER_REWARD_VARIANT"
	envActionSpace   = "LANDER_ACTION_SPACE"
	envTimeStep      = "LANDER_TIME_STEP"
)

// ApplyEnvironmentOverrides replaces config values with any LANDER_* overrides
// present in the environment, validating the result.
func ApplyEnvironmentOverrides(c *GameConfig) error {
	if v := os.Getenv(envServerAddr); v != "" {
		c.Server.Address = v
	}
	if v := os.Getenv(envMaxSessions); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", envMaxSessions, err)
		}
		c.Server.MaxSessions = n
	}
	if v := os.Getenv(envHealthPort); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", envHealthPort, err)
		}
		c.Server.HealthPort = n
	}
	if v := os.Getenv(envAudioEnabled); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", envAudioEnabled, err)
		}
		c.Audio.Enabled = b
	}
	if v := os.Getenv(envRewardVariant); v != "" {
		c.Env.RewardVariant = v
	}
	if v := os.Getenv(envActionSpace); v != "" {
		c.Env.ActionSpace = v
	}
	if v := os.Getenv(envTimeStep); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", envTimeStep, err)
		}
		c.Env.TimeStep = f
	}

	if err := c.Validate(); err != nil {
		return fmt.Errorf("environment overrides produced an invalid config: %w", err)
	}
	return nil
}
