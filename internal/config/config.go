// Package config reads the service configuration from the environment and an optional .env file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is the service configuration.
type Config struct {
	Port         string
	LogLevel     string
	DBPath       string // empty keeps solutions in memory
	ClientOrigin string
	Workers      int
	MaxStates    int
	SolveTimeout time.Duration
	FrameDelay   time.Duration
}

// Load reads .env files (if present) and the environment.
func Load(filenames ...string) (*Config, error) {
	// a missing .env is fine
	_ = godotenv.Load(filenames...)

	c := &Config{
		Port:         getEnv("PORT", "5000"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		DBPath:       getEnv("DB_PATH", ""),
		ClientOrigin: getEnv("CLIENT_ORIGIN", "*"),
	}
	var err error
	if c.Workers, err = getInt("SOLVER_WORKERS", 1); err != nil {
		return nil, err
	}
	if c.MaxStates, err = getInt("SOLVER_MAX_STATES", 0); err != nil {
		return nil, err
	}
	if c.SolveTimeout, err = getDuration("SOLVE_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if c.FrameDelay, err = getDuration("GIF_FRAME_DELAY", 600*time.Millisecond); err != nil {
		return nil, err
	}
	return c, nil
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getInt(k string, def int) (int, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil || i < 0 {
		return 0, fmt.Errorf("config %s: invalid count %q", k, v)
	}
	return i, nil
}

func getDuration(k string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config %s: %w", k, err)
	}
	return d, nil
}
