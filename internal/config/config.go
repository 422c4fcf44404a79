package config

import (
	"fmt"
	"net/url"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Data backends accepted by DATA_BACKEND.
const (
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

type Config struct {
	// HTTP server
	Port            string
	AllowedOrigins  string
	ShutdownTimeout time.Duration
	RateLimit       int // requests per client per minute, 0 disables

	// Database
	DatabaseURL string
	DBMaxConns  int

	// Backend selection
	DataBackend      string
	MemstoreSeedFile string

	// Auth
	JWTSecret    string
	AuthDisabled bool

	AppEnv    string
	LogLevel  string
	LogFormat string // logfmt, json or text
}

// Load reads the configuration from the environment. Callers are expected to
// have loaded any .env file beforehand.
func Load() *Config {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		origins = getEnv("FRONTEND_URL", "")
	}

	return &Config{
		Port:            getEnv("SERVER_PORT", "8080"),
		AllowedOrigins:  origins,
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		RateLimit:       getEnvInt("RATE_LIMIT_PER_MINUTE", 100),

		DatabaseURL: getEnv("DATABASE_URL", ""),
		DBMaxConns:  getEnvInt("DB_MAX_CONNS", 10),

		DataBackend:      getEnv("DATA_BACKEND", BackendPostgres),
		MemstoreSeedFile: getEnv("MEMSTORE_SEED_FILE", ""),

		JWTSecret:    getEnv("JWT_SECRET", ""),
		AuthDisabled: getEnvBool("AUTH_DISABLED", false),

		AppEnv:    getEnv("APP_ENV", "production"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "logfmt"),
	}
}

// IsDevelopment reports whether error details may be exposed to clients.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// Validate validates the configuration for serving HTTP and returns an error
// listing every problem found.
func (c *Config) Validate() error {
	return c.validate(true)
}

// ValidateStore checks only the data backend settings. One-shot commands that
// never open a listener use it.
func (c *Config) ValidateStore() error {
	return c.validate(false)
}

func (c *Config) validate(serving bool) error {
	var errs []string

	validBackends := []string{BackendPostgres, BackendMemory}
	if !slices.Contains(validBackends, c.DataBackend) {
		errs = append(errs, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	if c.DataBackend == BackendPostgres {
		if c.DatabaseURL == "" {
			errs = append(errs, "DATABASE_URL is required when using the postgres backend")
		} else if u, err := url.Parse(c.DatabaseURL); err != nil {
			errs = append(errs, fmt.Sprintf("invalid DATABASE_URL: %v", err))
		} else if u.Scheme != "postgres" && u.Scheme != "postgresql" {
			errs = append(errs, fmt.Sprintf("invalid DATABASE_URL scheme '%s': must be 'postgres' or 'postgresql'", u.Scheme))
		}
		if c.DBMaxConns < 1 {
			errs = append(errs, fmt.Sprintf("invalid DB_MAX_CONNS %d: must be at least 1", c.DBMaxConns))
		}
	}

	if c.DataBackend == BackendMemory && c.MemstoreSeedFile != "" {
		if _, err := os.Stat(c.MemstoreSeedFile); err != nil {
			errs = append(errs, fmt.Sprintf("memstore seed file is not readable: %s", c.MemstoreSeedFile))
		}
	}

	if serving {
		if port, err := strconv.Atoi(c.Port); err != nil {
			errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
		} else if port < 1 || port > 65535 {
			errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
		}

		if !c.AuthDisabled && c.JWTSecret == "" {
			errs = append(errs, "JWT_SECRET is required unless AUTH_DISABLED=true")
		}

		if c.RateLimit < 0 {
			errs = append(errs, fmt.Sprintf("invalid RATE_LIMIT_PER_MINUTE %d: must not be negative", c.RateLimit))
		}

		if c.ShutdownTimeout < time.Second {
			errs = append(errs, fmt.Sprintf("invalid shutdown timeout %v: must be at least 1 second", c.ShutdownTimeout))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
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
