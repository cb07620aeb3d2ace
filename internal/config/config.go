// Package config loads service settings from a YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Database    DatabaseConfig    `yaml:"database"`
	Auth        AuthConfig        `yaml:"auth"`
	Logging     LoggingConfig     `yaml:"logging"`
	Leaderboard LeaderboardConfig `yaml:"leaderboard"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Port           string `yaml:"port"`
	ClientOrigin   string `yaml:"client_origin"`
	RequestTimeout string `yaml:"request_timeout"`
	Production     bool   `yaml:"production"`
}

// DatabaseConfig selects where games and results live.
type DatabaseConfig struct {
	Path        string `yaml:"path"`
	StoreDriver string `yaml:"store_driver"` // memory, sqlite
}

// AuthConfig configures JWT issuing and the auth cookie.
type AuthConfig struct {
	JWTSecret      string `yaml:"jwt_secret"`
	JWTExpiresDays int    `yaml:"jwt_expires_days"`
	CookieName     string `yaml:"cookie_name"`
	AnonCookieName string `yaml:"anon_cookie_name"`
}

// LoggingConfig configures zerolog.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

// LeaderboardConfig bounds leaderboard queries.
type LeaderboardConfig struct {
	Limit int `yaml:"limit"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           "5175",
			ClientOrigin:   "http://localhost:5173",
			RequestTimeout: "10s",
		},
		Database: DatabaseConfig{
			Path:        "data/bowling.db",
			StoreDriver: "memory",
		},
		Auth: AuthConfig{
			JWTSecret:      "dev_secret_change_me",
			JWTExpiresDays: 14,
			CookieName:     "bowling_token",
			AnonCookieName: "bowling_anon",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Leaderboard: LeaderboardConfig{
			Limit: 20,
		},
	}
}

// Load reads path over the defaults and applies environment overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Port = v
	}
	if v := os.Getenv("CLIENT_ORIGIN"); v != "" {
		c.Server.ClientOrigin = v
	}
	if os.Getenv("NODE_ENV") == "production" {
		c.Server.Production = true
	}
	if v := os.Getenv("DATABASE_PATH"); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv("STORE_DRIVER"); v != "" {
		c.Database.StoreDriver = strings.ToLower(v)
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.Auth.JWTSecret = v
	}
	if v := os.Getenv("JWT_EXPIRES_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Auth.JWTExpiresDays = n
		}
	}
	if v := os.Getenv("COOKIE_NAME"); v != "" {
		c.Auth.CookieName = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv("LEADERBOARD_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Leaderboard.Limit = n
		}
	}
}

// Validate rejects settings the service cannot run with.
func (c *Config) Validate() error {
	switch c.Database.StoreDriver {
	case "memory", "sqlite":
	default:
		return fmt.Errorf("unknown store driver %q", c.Database.StoreDriver)
	}
	switch c.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("unknown log format %q", c.Logging.Format)
	}
	if c.Auth.JWTExpiresDays <= 0 {
		return errors.New("jwt_expires_days must be positive")
	}
	if c.Leaderboard.Limit <= 0 {
		return errors.New("leaderboard limit must be positive")
	}
	if _, err := time.ParseDuration(c.Server.RequestTimeout); err != nil {
		return fmt.Errorf("invalid request_timeout: %w", err)
	}
	return nil
}

// GetRequestTimeout returns the handler timeout, defaulting to 10s.
func (c *Config) GetRequestTimeout() time.Duration {
	d, err := time.ParseDuration(c.Server.RequestTimeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// JWTExpiry returns the token lifetime.
func (c *Config) JWTExpiry() time.Duration {
	return time.Duration(c.Auth.JWTExpiresDays) * 24 * time.Hour
}
