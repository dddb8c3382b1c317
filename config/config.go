// Package config loads the process configuration from the environment.
//
// Values are read once at start-up. Before the environment is processed the
// package loads .env files in priority order:
//
//  1. ENV_FILE (if set, only this file is loaded)
//  2. .env.local
//  3. .env
//
// Missing files are ignored. Variables already present in the environment win.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Prefix is the environment prefix for every key, e.g. FINDER_BASE_PATH.
const Prefix = "FINDER"

// Config is the complete application configuration.
type Config struct {
	BasePath       string `envconfig:"BASE_PATH" default:"/srv/recordings" validate:"required"`
	DefaultLimit   int    `envconfig:"DEFAULT_LIMIT" default:"200" validate:"min=1,max=5000"`
	Addr           string `envconfig:"ADDR" default:":8000" validate:"required"`
	StaticDir      string `envconfig:"STATIC_DIR" default:"static"`
	ZipMemoryLimit int64  `envconfig:"ZIP_MEMORY_LIMIT" default:"104857600" validate:"min=0"`

	// Embedded so their keys keep the plain FINDER_ prefix.
	LoggingConfig
	RateLimitConfig

	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"15s" validate:"min=0"`
}

// LoggingConfig controls the zap logger.
type LoggingConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn warning error"`
	Development bool   `envconfig:"LOG_DEVELOPMENT" default:"false"`
}

// RateLimitConfig controls the optional request limiter. RPS of 0 disables it.
type RateLimitConfig struct {
	RPS   float64 `envconfig:"RATE_LIMIT_RPS" default:"0" validate:"min=0"`
	Burst int     `envconfig:"RATE_LIMIT_BURST" default:"20" validate:"min=0"`
}

// Enabled reports whether requests should be rate limited.
func (r RateLimitConfig) Enabled() bool { return r.RPS > 0 }

// Load reads .env files and the FINDER_ environment into a validated Config.
func Load() (*Config, error) {
	if err := loadEnvFiles(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("load config from env: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	base, err := ResolveBase(cfg.BasePath)
	if err != nil {
		return nil, err
	}
	cfg.BasePath = base

	return &cfg, nil
}

// ResolveBase makes the base path absolute and resolves symlinks when the
// directory exists. A missing directory is not an error.
func ResolveBase(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path %s: %w", path, err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	return filepath.Clean(abs), nil
}

func loadEnvFiles() error {
	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("load env file %s: %w", envFile, err)
		}
		return nil
	}

	// godotenv.Load never overrides, so the more specific file goes first.
	if err := godotenv.Load(".env.local"); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load .env.local: %w", err)
	}
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}
