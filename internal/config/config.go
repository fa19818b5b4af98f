package config

import (
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Environment
	GoEnv string `env:"GO_ENV" default:"development"`

	// HTTP
	HTTPPort      int      `env:"HTTP_PORT" default:"8080"`
	CORSOrigins   []string `env:"CORS_ORIGINS" default:"http://localhost:3000"`
	HTTPRateLimit int      `env:"HTTP_RATE_LIMIT" default:"300"` // requests per minute per IP, 0 disables

	// Database
	DatabaseURL string `env:"DATABASE_URL" required:"true"`
	DBMaxConns  int    `env:"DB_MAX_CONNS" default:"10"`

	// Redis fan-out bridge
	RedisEnabled  bool   `env:"REDIS_ENABLED" default:"false"`
	RedisURL      string `env:"REDIS_URL" default:"redis://redis:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisChannel  string `env:"REDIS_CHANNEL" default:"festivalhub:broadcast"`

	// Authentication
	JWTSecret      string        `env:"JWT_SECRET" required:"true"`
	AccessTokenTTL time.Duration `env:"ACCESS_TOKEN_TTL" default:"24h"`

	// First admin account, created at startup when both are set
	AdminEmail    string `env:"ADMIN_EMAIL"`
	AdminPassword string `env:"ADMIN_PASSWORD"`

	// Real-time channel
	WSRequireToken bool    `env:"WS_REQUIRE_TOKEN" default:"true in production"`
	WSSendBuffer   int     `env:"WS_SEND_BUFFER" default:"256"`
	WSRateLimit    float64 `env:"WS_RATE_LIMIT" default:"10"`
	WSRateBurst    int     `env:"WS_RATE_BURST" default:"20"`

	// Fan-out
	FanoutWorkers   int           `env:"FANOUT_WORKERS" default:"4"`
	FanoutQueueSize int           `env:"FANOUT_QUEUE_SIZE" default:"1024"`
	FanoutTimeout   time.Duration `env:"FANOUT_TIMEOUT" default:"10s"`
	CatchUpLimit    int           `env:"CATCHUP_LIMIT" default:"50"`

	// Monitoring
	MetricsEnabled bool `env:"METRICS_ENABLED" default:"true"`

	// Development
	LogLevel  string `env:"LOG_LEVEL" default:"info"`
	LogFormat string `env:"LOG_FORMAT" default:"text"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" default:"15s"`
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// A missing .env file is fine, system env vars still apply
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		slog.Warn("env_file_unreadable", "error", err)
	}

	config := &Config{}

	if err := loadEnvString(&config.GoEnv, "GO_ENV", "development"); err != nil {
		return nil, err
	}

	// HTTP
	if err := loadEnvInt(&config.HTTPPort, "HTTP_PORT", 8080); err != nil {
		return nil, err
	}
	if err := loadEnvStringSlice(&config.CORSOrigins, "CORS_ORIGINS", []string{"http://localhost:3000"}); err != nil {
		return nil, err
	}
	if err := loadEnvInt(&config.HTTPRateLimit, "HTTP_RATE_LIMIT", 300); err != nil {
		return nil, err
	}

	// Database
	if err := loadEnvStringRequired(&config.DatabaseURL, "DATABASE_URL"); err != nil {
		return nil, err
	}
	if err := loadEnvInt(&config.DBMaxConns, "DB_MAX_CONNS", 10); err != nil {
		return nil, err
	}

	// Redis
	if err := loadEnvBool(&config.RedisEnabled, "REDIS_ENABLED", false); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.RedisURL, "REDIS_URL", "redis://redis:6379"); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.RedisPassword, "REDIS_PASSWORD", ""); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.RedisChannel, "REDIS_CHANNEL", "festivalhub:broadcast"); err != nil {
		return nil, err
	}

	// Authentication
	if err := loadEnvStringRequired(&config.JWTSecret, "JWT_SECRET"); err != nil {
		return nil, err
	}
	if err := loadEnvDuration(&config.AccessTokenTTL, "ACCESS_TOKEN_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.AdminEmail, "ADMIN_EMAIL", ""); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.AdminPassword, "ADMIN_PASSWORD", ""); err != nil {
		return nil, err
	}

	// Real-time channel
	// anonymous scopes are for development only
	if err := loadEnvBool(&config.WSRequireToken, "WS_REQUIRE_TOKEN", config.IsProduction()); err != nil {
		return nil, err
	}
	if err := loadEnvInt(&config.WSSendBuffer, "WS_SEND_BUFFER", 256); err != nil {
		return nil, err
	}
	if err := loadEnvFloat(&config.WSRateLimit, "WS_RATE_LIMIT", 10); err != nil {
		return nil, err
	}
	if err := loadEnvInt(&config.WSRateBurst, "WS_RATE_BURST", 20); err != nil {
		return nil, err
	}

	// Fan-out
	if err := loadEnvInt(&config.FanoutWorkers, "FANOUT_WORKERS", 4); err != nil {
		return nil, err
	}
	if err := loadEnvInt(&config.FanoutQueueSize, "FANOUT_QUEUE_SIZE", 1024); err != nil {
		return nil, err
	}
	if err := loadEnvDuration(&config.FanoutTimeout, "FANOUT_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if err := loadEnvInt(&config.CatchUpLimit, "CATCHUP_LIMIT", 50); err != nil {
		return nil, err
	}

	// Monitoring
	if err := loadEnvBool(&config.MetricsEnabled, "METRICS_ENABLED", true); err != nil {
		return nil, err
	}

	// Development
	if err := loadEnvString(&config.LogLevel, "LOG_LEVEL", "info"); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.LogFormat, "LOG_FORMAT", "text"); err != nil {
		return nil, err
	}
	if err := loadEnvDuration(&config.ShutdownTimeout, "SHUTDOWN_TIMEOUT", 15*time.Second); err != nil {
		return nil, err
	}
	return config, nil
}

// Helper functions for type conversion and validation
func loadEnvString(target *string, key, defaultValue string) error {
	if value := os.Getenv(key); value != "" {
		*target = value
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvStringRequired(target *string, key string) error {
	value := os.Getenv(key)
	if value == "" {
		return fmt.Errorf("required environment variable %s is not set", key)
	}
	*target = value
	return nil
}

func loadEnvInt(target *int, key string, defaultValue int) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer value for %s: %w", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvFloat(target *float64, key string, defaultValue float64) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid float value for %s: %w", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvBool(target *bool, key string, defaultValue bool) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean value for %s: %w", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvDuration(target *time.Duration, key string, defaultValue time.Duration) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration value for %s: %w", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvStringSlice(target *[]string, key string, defaultValue []string) error {
	if value := os.Getenv(key); value != "" {
		*target = strings.Split(value, ",")
		for i, v := range *target {
			(*target)[i] = strings.TrimSpace(v)
		}
	} else {
		*target = defaultValue
	}
	return nil
}

// Validate performs validation on the loaded configuration
func (c *Config) Validate() error {
	var errors []string

	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		errors = append(errors, "HTTP_PORT must be between 1 and 65535")
	}
	if c.HTTPRateLimit < 0 {
		errors = append(errors, "HTTP_RATE_LIMIT must not be negative")
	}
	if c.DBMaxConns < 1 {
		errors = append(errors, "DB_MAX_CONNS must be at least 1")
	}
	if c.RedisEnabled && c.RedisChannel == "" {
		errors = append(errors, "REDIS_CHANNEL must be set when REDIS_ENABLED is true")
	}

	if c.IsProduction() && !c.WSRequireToken {
		errors = append(errors, "WS_REQUIRE_TOKEN cannot be disabled in production")
	}
	if c.WSSendBuffer < 1 {
		errors = append(errors, "WS_SEND_BUFFER must be at least 1")
	}
	if c.WSRateLimit <= 0 || c.WSRateBurst < 1 {
		errors = append(errors, "WS_RATE_LIMIT must be positive and WS_RATE_BURST at least 1")
	}
	if c.FanoutWorkers < 1 {
		errors = append(errors, "FANOUT_WORKERS must be at least 1")
	}
	if c.FanoutQueueSize < 1 {
		errors = append(errors, "FANOUT_QUEUE_SIZE must be at least 1")
	}
	if c.FanoutTimeout <= 0 {
		errors = append(errors, "FANOUT_TIMEOUT must be positive")
	}
	if c.CatchUpLimit < 1 || c.CatchUpLimit > 200 {
		errors = append(errors, "CATCHUP_LIMIT must be between 1 and 200")
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !slices.Contains(validLogLevels, c.LogLevel) {
		errors = append(errors, fmt.Sprintf("LOG_LEVEL must be one of: %s", strings.Join(validLogLevels, ", ")))
	}

	validLogFormats := []string{"text", "json"}
	if !slices.Contains(validLogFormats, c.LogFormat) {
		errors = append(errors, fmt.Sprintf("LOG_FORMAT must be one of: %s", strings.Join(validLogFormats, ", ")))
	}

	// HS256 keys shorter than the hash size are weak
	if len(c.JWTSecret) < 32 {
		errors = append(errors, "JWT_SECRET should be at least 32 characters long")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errors, "; "))
	}

	return nil
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.GoEnv == "development"
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GoEnv == "production"
}

// SlogLevel maps LOG_LEVEL onto a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
