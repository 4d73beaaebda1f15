package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	Production = "production"

	DriverBolt     = "bolt"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"

	devJWTSecret = "dev-insecure-secret"
)

type StorageOptions struct {
	Driver      string        `env:"STORAGE_DRIVER" envDefault:"bolt"`
	BoltPath    string        `env:"BOLT_PATH" envDefault:"data/erp.bolt"`
	DatabaseURL string        `env:"DATABASE_URL"`
	SaveLatency time.Duration `env:"SAVE_LATENCY" envDefault:"0s"`
}

type PrometheusOptions struct {
	Enabled bool   `env:"PROMETHEUS_METRICS_ENABLED" envDefault:"false"`
	Path    string `env:"PROMETHEUS_METRICS_PATH" envDefault:"/metrics"`
}

type Configuration struct {
	Storage    StorageOptions
	Prometheus PrometheusOptions

	ServerPort       int           `env:"PORT" envDefault:"8080"`
	AllowedOrigins   string        `env:"ALLOWED_ORIGINS"`
	JWTSecret        string        `env:"JWT_SECRET"`
	SessionDuration  time.Duration `env:"SESSION_DURATION" envDefault:"1h"`
	DemoPassword     string        `env:"DEMO_PASSWORD" envDefault:"password"`
	FinanceDataPath  string        `env:"FINANCE_DATA_PATH" envDefault:"data/finance-data.json"`
	MaxBodyBytes     int64         `env:"MAX_BODY_BYTES" envDefault:"1048576"`
	LogLevel         string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat        string        `env:"LOG_FORMAT" envDefault:"text"`
	GoAppEnvironment string        `env:"GO_APP_ENV" envDefault:"development"`
}

// LoadEnv loads whichever of envFiles exist. Missing files are skipped.
func LoadEnv(envFiles []string) (int, error) {
	existing := make([]string, 0, len(envFiles))
	for _, file := range envFiles {
		if _, err := os.Stat(file); err == nil {
			existing = append(existing, file)
		}
	}
	if len(existing) == 0 {
		return 0, nil
	}
	return len(existing), godotenv.Load(existing...)
}

// Load reads .env files, parses the environment and validates the result.
func Load() (*Configuration, error) {
	if _, err := LoadEnv([]string{".env", ".env.local"}); err != nil {
		return nil, fmt.Errorf("load env files: %w", err)
	}
	return Parse()
}

// Parse builds a Configuration from the current process environment.
func Parse() (*Configuration, error) {
	c := &Configuration{}
	if err := env.Parse(c); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if c.JWTSecret == "" && c.GoAppEnvironment != Production {
		c.JWTSecret = devJWTSecret
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Configuration) Validate() error {
	switch c.Storage.Driver {
	case DriverBolt, DriverMemory:
	case DriverPostgres:
		if c.Storage.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required when STORAGE_DRIVER is 'postgres'")
		}
	default:
		return fmt.Errorf("STORAGE_DRIVER must be 'bolt', 'postgres' or 'memory', got '%s'", c.Storage.Driver)
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must be set in production")
	}
	if c.SessionDuration <= 0 {
		return fmt.Errorf("SESSION_DURATION must be positive, got %s", c.SessionDuration)
	}
	if c.Storage.SaveLatency < 0 {
		return fmt.Errorf("SAVE_LATENCY must not be negative, got %s", c.Storage.SaveLatency)
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("MAX_BODY_BYTES must be positive, got %d", c.MaxBodyBytes)
	}
	return nil
}

func (c *Configuration) Production() bool {
	return c.GoAppEnvironment == Production
}

// UsingDevSecret reports whether the built-in development JWT secret is active.
func (c *Configuration) UsingDevSecret() bool {
	return c.JWTSecret == devJWTSecret
}

func (c *Configuration) Address() string {
	return fmt.Sprintf(":%d", c.ServerPort)
}
