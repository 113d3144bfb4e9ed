package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config holds the settings read from the environment.
type Config struct {
	// Storage
	Backend  string
	DBPath   string
	StoreKey string

	// Logging
	LogLevel string

	// Deferred UI transitions
	SettleDelay time.Duration
	ToastDelay  time.Duration
}

// Load reads configuration from the environment. If envFile is non-empty it
// is loaded first; variables already set in the environment win. A missing
// env file is not an error.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	}

	cfg := &Config{
		Backend:  getEnv("TABSPLIT_BACKEND", BackendSQLite),
		DBPath:   getEnv("TABSPLIT_DB_PATH", "./data/tabs.db"),
		StoreKey: getEnv("TABSPLIT_STORE_KEY", "saved_tabs"),

		LogLevel: getEnv("LOG_LEVEL", "info"),

		SettleDelay: getEnvDuration("TABSPLIT_SETTLE_DELAY", 600*time.Millisecond),
		ToastDelay:  getEnvDuration("TABSPLIT_TOAST_DELAY", 1500*time.Millisecond),
	}
	return cfg, nil
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var problems []string

	switch c.Backend {
	case BackendSQLite:
		if c.DBPath == "" {
			problems = append(problems, "database path cannot be empty when using sqlite backend")
		}
	case BackendMemory:
	default:
		problems = append(problems, fmt.Sprintf("invalid backend '%s': must be one of [%s %s]", c.Backend, BackendSQLite, BackendMemory))
	}

	if strings.TrimSpace(c.StoreKey) == "" {
		problems = append(problems, "store key cannot be empty")
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		problems = append(problems, fmt.Sprintf("invalid log level '%s': must be debug, info, warn or error", c.LogLevel))
	}

	if c.SettleDelay < 0 || c.SettleDelay > time.Minute {
		problems = append(problems, fmt.Sprintf("invalid settle delay %v: must be between 0 and 1m", c.SettleDelay))
	}
	if c.ToastDelay < 0 || c.ToastDelay > time.Minute {
		problems = append(problems, fmt.Sprintf("invalid toast delay %v: must be between 0 and 1m", c.ToastDelay))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
