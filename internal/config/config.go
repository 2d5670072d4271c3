package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds application configuration
type Config struct {
	Port        string
	DBDriver    string
	DBConn      string
	LogLevel    string
	JWTSecret   string
	TokenTTL    time.Duration
	RateLimit   bool
	RateLimitPS float64
	RateBurst   int
}

// fileConfig mirrors Config for the optional TOML config file.
// Only fields present in the file override the defaults.
type fileConfig struct {
	Port        string  `toml:"port"`
	DBDriver    string  `toml:"db_driver"`
	DBConn      string  `toml:"db_conn"`
	LogLevel    string  `toml:"log_level"`
	JWTSecret   string  `toml:"jwt_secret"`
	TokenTTL    string  `toml:"token_ttl"`
	RateLimit   *bool   `toml:"rate_limit"`
	RateLimitPS float64 `toml:"rate_limit_per_second"`
	RateBurst   int     `toml:"rate_burst"`
}

// NewConfig loads configuration from an optional TOML file (CONFIG_FILE)
// and environment variables. Environment variables win.
func NewConfig() (*Config, error) {
	cfg := &Config{
		Port:        "8080",
		DBDriver:    "postgres",
		DBConn:      "host=localhost port=5432 user=taskchat password=taskchat dbname=taskchat sslmode=disable",
		LogLevel:    "INFO",
		JWTSecret:   "",
		TokenTTL:    15 * time.Minute,
		RateLimit:   false,
		RateLimitPS: 10,
		RateBurst:   20,
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := applyFile(cfg, path); err != nil {
			return nil, err
		}
	}
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if cfg.DBConn == "" {
		return nil, fmt.Errorf("DB_CONN is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("TOKEN_TTL must be positive")
	}

	return cfg, nil
}

func applyFile(cfg *Config, path string) error {
	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return fmt.Errorf("failed to load config file %s: %w", path, err)
	}
	if fc.Port != "" {
		cfg.Port = fc.Port
	}
	if fc.DBDriver != "" {
		cfg.DBDriver = fc.DBDriver
	}
	if fc.DBConn != "" {
		cfg.DBConn = fc.DBConn
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	if fc.JWTSecret != "" {
		cfg.JWTSecret = fc.JWTSecret
	}
	if fc.TokenTTL != "" {
		d, err := time.ParseDuration(fc.TokenTTL)
		if err != nil {
			return fmt.Errorf("invalid token_ttl in %s: %w", path, err)
		}
		cfg.TokenTTL = d
	}
	if fc.RateLimit != nil {
		cfg.RateLimit = *fc.RateLimit
	}
	if fc.RateLimitPS != 0 {
		cfg.RateLimitPS = fc.RateLimitPS
	}
	if fc.RateBurst != 0 {
		cfg.RateBurst = fc.RateBurst
	}
	return nil
}

func applyEnv(cfg *Config) error {
	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.DBDriver = getEnv("DB_DRIVER", cfg.DBDriver)
	cfg.DBConn = getEnv("DB_CONN", cfg.DBConn)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.JWTSecret = getEnv("JWT_SECRET", cfg.JWTSecret)
	if v, ok := os.LookupEnv("TOKEN_TTL"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid TOKEN_TTL: %w", err)
		}
		cfg.TokenTTL = d
	}
	if v, ok := os.LookupEnv("RATE_LIMIT"); ok {
		cfg.RateLimit = v == "true" || v == "1"
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
