// cmd/lander/main.go
package main

import (
	"context"
	"flag"
	"os"

	"github.com/burnlearn/go-lander/pkg/audio"
	"github.com/burnlearn/go-lander/pkg/config"
	"github.com/burnlearn/go-lander/pkg/event"
	"github.com/burnlearn/go-lander/pkg/logging"
	"github.com/burnlearn/go-lander/pkg/render/desktop"
)

func main() {
	logger := logging.NewLogger()
	ctx := context.Background()

	configPath := flag.String("config", "config.json", "Path to configuration file")
	createDefault := flag.Bool("default", false, "Create default configuration file")
	mute := flag.Bool("mute", false, "Disable audio")
	flag.Parse()

	// Create default configuration file if requested
	if *createDefault {
		defaultConfig := config.DefaultConfig()
		if err := config.SaveConfig(defaultConfig, *configPath); err != nil {
			logger.Error(ctx, "Failed to create default configuration", err,
				"config_path", *configPath,
			)
			os.Exit(1)
		}
		logger.Info(ctx, "Created default configuration file",
			"config_path", *configPath,
		)
		return
	}

	// Load configuration
	var gameConfig *config.GameConfig

	if _, err := os.Stat(*configPath); os.IsNotExist(err) {
		logger.Info(ctx, "Configuration file not found, using default configuration",
			"config_path", *configPath,
		)
		gameConfig = config.DefaultConfig()
	} else {
		gameConfig, err = config.LoadConfig(*configPath)
		if err != nil {
			logger.Error(ctx, "Failed to load configuration", err,
				"config_path", *configPath,
			)
			os.Exit(1)
		}
	}

	// Apply environment variable overrides
	if err := config.ApplyEnvironmentOverrides(gameConfig); err != nil {
		logger.Error(ctx, "Failed to apply environment configuration", err)
		os.Exit(1)
	}

	if *mute {
		gameConfig.Audio.Enabled = false
	}

	bus := event.NewEventBus()

	sound := audio.NewSoundManager(gameConfig.Audio)
	defer sound.Close()
	sound.Attach(bus)

	game := desktop.NewGame(gameConfig, bus)

	logger.Info(ctx, "Starting game",
		"width", gameConfig.Display.Width,
		"height", gameConfig.Display.Height,
		"fps", gameConfig.Display.FPS,
	)

	if err := game.Run(); err != nil {
		logger.Error(ctx, "Game loop failed", err)
		os.Exit(1)
	}
}
