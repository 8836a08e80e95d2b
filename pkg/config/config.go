// pkg/config/config.go
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/burnlearn/go-lander/pkg/physics"
)

// GameConfig contains the full configuration for a simulation: the physics
// constants, the training environment settings, and the collaborator settings
// for audio, display, and the environment server.
type GameConfig struct {
	World   physics.WorldParams  `json:"world"`
	Rocket  physics.RocketParams `json:"rocket"`
	Env     EnvConfig            `json:"env"`
	Audio   AudioConfig          `json:"audio"`
	Display DisplayConfig        `json:"display"`
	Server  ServerConfig         `json:"server"`
}

// EnvConfig contains the training environment settings.
type EnvConfig struct {
	TimeStep         float64 `json:"timeStep"`         // seconds per tick
	EpisodeTimeLimit float64 `json:"episodeTimeLimit"` // simulated seconds before truncation
	StartAltitudeMin float64 `json:"startAltitudeMin"` // meters; equal min/max disables randomization
	StartAltitudeMax float64 `json:"startAltitudeMax"`
	RewardVariant    string  `json:"rewardVariant"` // "shaped", "descent", or "sparse"
	ActionSpace      string  `json:"actionSpace"`   // "discrete" or "continuous"
}

// AudioConfig contains sound playback settings.
type AudioConfig struct {
	Enabled          bool    `json:"enabled"`
	EngineBaseVolume float64 `json:"engineBaseVolume"`
	EngineMaxVolume  float64 `json:"engineMaxVolume"`
	RCSVolume        float64 `json:"rcsVolume"`
	ExplosionVolume  float64 `json:"explosionVolume"`
	SuccessVolume    float64 `json:"successVolume"`
	EngineSound      string  `json:"engineSound"`
	RCSSound         string  `json:"rcsSound"`
	ExplosionSound   string  `json:"explosionSound"`
	SuccessSound     string  `json:"successSound"`
}

// DisplayConfig contains window and camera settings for the desktop game.
type DisplayConfig struct {
	Width            int     `json:"width"`  // pixels
	Height           int     `json:"height"` // pixels
	Scale            float64 `json:"scale"`  // pixels per meter
	FPS              int     `json:"fps"`
	CameraSmoothness float64 `json:"cameraSmoothness"`
	CameraYOffset    float64 `json:"cameraYOffset"`
	StarCount        int     `json:"starCount"`
}

// ServerConfig contains the websocket environment server settings.
type ServerConfig struct {
	Address     string `json:"address"`
	MaxSessions int    `json:"maxSessions"`
	HealthPort  int    `json:"healthPort"`
}

// LoadConfig loads a configuration from a file
func LoadConfig(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return &config, nil
}

// SaveConfig saves a configuration to a file
func SaveConfig(config *GameConfig, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks that the configuration can drive a simulation.
func (c *GameConfig) Validate() error {
	if c.Env.TimeStep <= 0 {
		return fmt.Errorf("timeStep must be positive, got %v", c.Env.TimeStep)
	}
	if c.Env.EpisodeTimeLimit <= 0 {
		return fmt.Errorf("episodeTimeLimit must be positive, got %v", c.Env.EpisodeTimeLimit)
	}
	if c.Env.StartAltitudeMax < c.Env.StartAltitudeMin {
		return fmt.Errorf("startAltitudeMax %v below startAltitudeMin %v",
			c.Env.StartAltitudeMax, c.Env.StartAltitudeMin)
	}
	if c.Rocket.DryMass <= 0 || c.Rocket.FuelCapacity < 0 {
		return fmt.Errorf("rocket mass configuration invalid: dry %v, fuel %v",
			c.Rocket.DryMass, c.Rocket.FuelCapacity)
	}
	if c.Rocket.MinThrottle <= 0 || c.Rocket.MinThrottle > 1 {
		return fmt.Errorf("minThrottle must be in (0, 1], got %v", c.Rocket.MinThrottle)
	}
	if c.World.Gravity <= 0 {
		return fmt.Errorf("gravity must be positive, got %v", c.World.Gravity)
	}
	switch c.Env.RewardVariant {
	case "shaped", "descent", "sparse":
	default:
		return fmt.Errorf("unknown reward variant %q", c.Env.RewardVariant)
	}
	switch c.Env.ActionSpace {
	case "discrete", "continuous":
	default:
		return fmt.Errorf("unknown action space %q", c.Env.ActionSpace)
	}
	if c.Server.MaxSessions <= 0 {
		return fmt.Errorf("maxSessions must be positive, got %v", c.Server.MaxSessions)
	}
	return nil
}

// DefaultConfig returns the reference configuration
func DefaultConfig() *GameConfig {
	return &GameConfig{
		World:  physics.DefaultWorldParams(),
		Rocket: physics.DefaultRocketParams(),
		Env: EnvConfig{
			TimeStep:         0.1,
			EpisodeTimeLimit: 2000,
			StartAltitudeMin: 500,
			StartAltitudeMax: 500,
			RewardVariant:    "shaped",
			ActionSpace:      "discrete",
		},
		Audio: AudioConfig{
			Enabled:          true,
			EngineBaseVolume: 0.3,
			EngineMaxVolume:  0.8,
			RCSVolume:        0.5,
			ExplosionVolume:  0.5,
			SuccessVolume:    0.5,
			EngineSound:      "sound_files/rocket_engine_sound.mp3",
			RCSSound:         "sound_files/rocket_rcs_sound.mp3",
			ExplosionSound:   "sound_files/rocket_crash_sound.mp3",
			SuccessSound:     "sound_files/rocket_success_landing_sound.mp3",
		},
		Display: DisplayConfig{
			Width:            800,
			Height:           800,
			Scale:            2.0,
			FPS:              60,
			CameraSmoothness: 0.05,
			CameraYOffset:    -100,
			StarCount:        100,
		},
		Server: ServerConfig{
			Address:     ":8080",
			MaxSessions: 64,
			HealthPort:  8081,
		},
	}
}
