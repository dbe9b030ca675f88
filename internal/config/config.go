// Package config loads the server configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/mmynk/settleup/internal/ledger"
	"github.com/mmynk/settleup/pkg/logging"
)

// minSecretLength is the shortest JWT secret accepted for HS256 signing.
const minSecretLength = 16

type Config struct {
	// HTTP Server
	Port string

	// Database
	DBPath string

	// Session tokens
	JWTSecret string
	TokenTTL  time.Duration

	// Logging
	LogLevel string

	// Ledger
	ExpenseMode string

	// Metrics
	MetricsEnabled bool
}

// Load reads the configuration from the environment. A .env file in the
// working directory is loaded first if present; real environment variables
// take precedence over it.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:           getEnv("PORT", "8080"),
		DBPath:         getEnv("DB_PATH", "./data/settleup.db"),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		TokenTTL:       getEnvDuration("TOKEN_TTL", 24*time.Hour),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		ExpenseMode:    getEnv("EXPENSE_MODE", "pooled"),
		MetricsEnabled: getEnvBool("METRICS_ENABLED", true),
	}
}

// Validate validates the configuration and returns an error listing every problem found.
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.DBPath == "" {
		errors = append(errors, "database path cannot be empty")
	}

	if len(c.JWTSecret) < minSecretLength {
		errors = append(errors, fmt.Sprintf("JWT secret must be at least %d characters", minSecretLength))
	}

	if c.TokenTTL < time.Minute {
		errors = append(errors, fmt.Sprintf("invalid token TTL %v: must be at least 1 minute", c.TokenTTL))
	}

	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errors = append(errors, err.Error())
	}

	if _, err := ledger.ParseExpenseMode(c.ExpenseMode); err != nil {
		errors = append(errors, err.Error())
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// LedgerOptions returns the balance computation options selected by the configuration.
// Call Validate first; an unknown expense mode falls back to the default.
func (c *Config) LedgerOptions() []ledger.Option {
	mode, err := ledger.ParseExpenseMode(c.ExpenseMode)
	if err != nil {
		return nil
	}
	return []ledger.Option{ledger.WithExpenseMode(mode)}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
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
