// cmd/envserver/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/burnlearn/go-lander/pkg/config"
	"github.com/burnlearn/go-lander/pkg/health"
	"github.com/burnlearn/go-lander/pkg/logging"
	"github.com/burnlearn/go-lander/pkg/transport/websocket"
)

func main() {
	logger := logging.NewLogger()
	ctx := context.Background()

	configPath := flag.String("config", "config.json", "Path to configuration file")
	createDefault := flag.Bool("default", false, "Create default configuration file")
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

	server := websocket.NewServer(gameConfig)

	// Setup health checks
	healthChecker := health.NewChecker()

	healthChecker.AddCheck(health.NewSessionCapacityCheck(
		gameConfig.Server.MaxSessions,
		server.ActiveSessions,
	))

	// Memory limit: 500MB
	healthChecker.AddCheck(health.NewMemoryCheck(500, func() int64 {
		var m runtime.MemStats
		runtime.ReadMemStats(&m)
		return int64(m.Alloc / 1024 / 1024)
	}))

	healthMux := http.NewServeMux()
	healthMux.HandleFunc("/health", healthChecker.LivenessHandler)
	healthMux.HandleFunc("/ready", healthChecker.ReadinessHandler)

	healthServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", gameConfig.Server.HealthPort),
		Handler:      healthMux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}

	// Start health check server in background
	go func() {
		logger.Info(ctx, "Starting health check server",
			"port", gameConfig.Server.HealthPort,
		)
		if err := healthServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error(ctx, "Health check server failed", err)
		}
	}()

	envServer := &http.Server{
		Addr:         gameConfig.Server.Address,
		Handler:      server.Handler(),
		ReadTimeout:  0, // websocket connections stay open
		WriteTimeout: 0,
	}

	go func() {
		logger.Info(ctx, "Starting environment server",
			"address", gameConfig.Server.Address,
			"max_sessions", gameConfig.Server.MaxSessions,
			"action_space", gameConfig.Env.ActionSpace,
			"reward_variant", gameConfig.Env.RewardVariant,
		)
		if err := envServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error(ctx, "Environment server failed", err)
			os.Exit(1)
		}
	}()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	<-sigChan
	logger.Info(ctx, "Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := healthServer.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "Health check server shutdown failed", err)
	}
	if err := envServer.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "Environment server shutdown failed", err)
	}
}
