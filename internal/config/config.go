package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"reflect"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/yigit/facultyhub/internal/pkg/helpers"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port            string   `yaml:"port" env:"SERVER_PORT"`
		Mode            string   `yaml:"mode" env:"SERVER_MODE"`
		CORSOrigins     []string `yaml:"cors_origins" env:"SERVER_CORS_ORIGINS"`
		ShutdownTimeout string   `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
	} `yaml:"server"`

	Storage struct {
		DataDir      string `yaml:"data_dir" env:"STORAGE_DATA_DIR"`
		WriteRetries int    `yaml:"write_retries" env:"STORAGE_WRITE_RETRIES"`
		RetryDelay   string `yaml:"retry_delay" env:"STORAGE_RETRY_DELAY"`
		SeedOnStart  bool   `yaml:"seed_on_start" env:"STORAGE_SEED_ON_START"`
	} `yaml:"storage"`

	JWT struct {
		Secret                string `yaml:"secret" env:"JWT_SECRET"`
		AccessTokenExpiration string `yaml:"access_token_expiration" env:"JWT_ACCESS_TOKEN_EXPIRATION"`
		Issuer                string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file, an optional .env file next to
// the working directory and environment variables, in that order
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if configPath != "" {
		file, err := os.ReadFile(configPath)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(file, config); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}
	if err := applyEnv(reflect.ValueOf(config)); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

// loadDotEnv copies the variables of path into the environment without
// overriding ones already set. A missing file is fine.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("failed to load %s: %w", path, err)
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "3000"
	config.Server.Mode = "development"
	config.Server.CORSOrigins = []string{"http://localhost:4200"}
	config.Server.ShutdownTimeout = "10s"

	config.Storage.DataDir = "data"
	config.Storage.WriteRetries = 3
	config.Storage.RetryDelay = "50ms"

	config.JWT.AccessTokenExpiration = "24h"
	config.JWT.Issuer = "facultyhub"

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Storage.DataDir == "" {
		return fmt.Errorf("storage data directory is required")
	}
	if config.Storage.WriteRetries < 0 {
		return fmt.Errorf("storage write retries cannot be negative")
	}
	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	if _, err := time.ParseDuration(config.JWT.AccessTokenExpiration); err != nil {
		return fmt.Errorf("invalid JWT access token expiration format: %w", err)
	}
	if _, err := time.ParseDuration(config.Storage.RetryDelay); err != nil {
		return fmt.Errorf("invalid storage retry delay format: %w", err)
	}

	switch config.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("logging format must be json or text, got %q", config.Logging.Format)
	}
	return nil
}

// AccessTokenTTL is the lifetime of issued access tokens
func (c *Config) AccessTokenTTL() time.Duration {
	return helpers.ParseDuration(c.JWT.AccessTokenExpiration, 24*time.Hour)
}

// RetryDelay is the pause between attempts of a failed collection write
func (c *Config) RetryDelay() time.Duration {
	return helpers.ParseDuration(c.Storage.RetryDelay, 50*time.Millisecond)
}

// ShutdownTimeout bounds the graceful shutdown of the HTTP server
func (c *Config) ShutdownTimeout() time.Duration {
	return helpers.ParseDuration(c.Server.ShutdownTimeout, 10*time.Second)
}

// IsProduction reports whether the server runs in release mode
func (c *Config) IsProduction() bool {
	return c.Server.Mode == "production" || c.Server.Mode == "release"
}
