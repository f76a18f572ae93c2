// Package main implements the entry point for the brand kit API server,
// which turns a business description into a generated brand kit through an
// LLM provider and persists full kits for later retrieval.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/phrazzld/brandkit-api/internal/config"
	"github.com/phrazzld/brandkit-api/internal/platform/logger"
)

// envFiles are loaded in order before configuration is read. Variables
// already present in the environment are never overridden.
var envFiles = []string{".env.local", ".env"}

func main() {
	if err := run(); err != nil {
		log.Fatalf("brandkit server: %v", err)
	}
}

// run loads configuration, wires the application and serves until the
// process receives SIGINT or SIGTERM.
func run() error {
	if err := loadEnvFiles(envFiles...); err != nil {
		return err
	}

	cfg, err := initializeConfig()
	if err != nil {
		return err
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("provider", cfg.LLM.Provider),
		slog.String("store", cfg.Store.Backend),
		slog.Bool("auth_enabled", cfg.Auth.Enabled()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := newApplication(ctx, cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer app.cleanup()

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Server.Port))
	if err != nil {
		return fmt.Errorf("failed to listen on port %d: %w", cfg.Server.Port, err)
	}

	return app.serve(ctx, ln)
}

// initializeConfig loads and validates configuration.
func initializeConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// loadEnvFiles loads each dotenv file that exists. Missing files are skipped.
func loadEnvFiles(paths ...string) error {
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
	}
	return nil
}
