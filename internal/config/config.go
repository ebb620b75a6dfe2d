package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr         string
	DBPath       string
	LogLevel     string
	MaxLevel     int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:         envOr("ADDR", ":8080"),
		DBPath:       envOr("DB_PATH", "file:mathsprout.db"),
		LogLevel:     strings.ToUpper(envOr("LOG_LEVEL", "INFO")),
		MaxLevel:     envIntOr("MAX_LEVEL", 3),
		ReadTimeout:  time.Duration(envIntOr("READ_TIMEOUT_SECONDS", 15)) * time.Second,
		WriteTimeout: time.Duration(envIntOr("WRITE_TIMEOUT_SECONDS", 30)) * time.Second,
	}
}

var validLogLevels = map[string]bool{
	"DEBUG": true,
	"INFO":  true,
	"WARN":  true,
	"ERROR": true,
}

// Validate checks every field and reports all problems in a single error.
func (c Config) Validate() error {
	var errs []error

	if c.Addr == "" {
		errs = append(errs, errors.New("ADDR cannot be empty"))
	}
	if c.DBPath == "" {
		errs = append(errs, errors.New("DB_PATH cannot be empty"))
	}
	if !validLogLevels[strings.ToUpper(c.LogLevel)] {
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR (got %q)", c.LogLevel))
	}
	if c.MaxLevel < 1 || c.MaxLevel > 100 {
		errs = append(errs, fmt.Errorf("MAX_LEVEL must be between 1 and 100 (got %d)", c.MaxLevel))
	}
	if c.ReadTimeout <= 0 {
		errs = append(errs, fmt.Errorf("READ_TIMEOUT_SECONDS must be positive (got %v)", c.ReadTimeout))
	}
	if c.WriteTimeout <= 0 {
		errs = append(errs, fmt.Errorf("WRITE_TIMEOUT_SECONDS must be positive (got %v)", c.WriteTimeout))
	}

	return errors.Join(errs...)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}
