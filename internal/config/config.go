package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const defaultJWTSecret = "local-development-secret"

// Config holds all configuration for the application
type Config struct {
	Environment string
	Port        string
	AWSRegion   string
	Log         LogConfig
	Storage     StorageConfig
	Directory   DirectoryConfig
	JWT         JWTConfig
	RateLimit   RateLimitConfig
	CDK         CDKConfig
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string // "text" or "json"
}

// StorageConfig holds bucket inventory configuration
type StorageConfig struct {
	Type    string // "s3" or "mock"
	Region  string
	Buckets string // comma-separated inventory for the mock provider

	explicit bool
}

// DirectoryConfig holds user directory configuration
type DirectoryConfig struct {
	Latency time.Duration
}

// JWTConfig holds configuration for the local authorizer
type JWTConfig struct {
	Secret      string
	Issuer      string
	ExpiryHours int
}

// RateLimitConfig holds local server rate limiting configuration
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// CDKConfig holds infrastructure synthesis configuration
type CDKConfig struct {
	AssetRoot string
	Account   string
	Region    string
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	if err := v.BindEnv("ENVIRONMENT", "ENVIRONMENT", "NODE_ENV"); err != nil {
		return nil, fmt.Errorf("failed to bind environment: %w", err)
	}

	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("PORT", "8081")
	v.SetDefault("AWS_REGION", "us-east-1")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("STORAGE_TYPE", "mock")
	v.SetDefault("DIRECTORY_LATENCY", "100ms")
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_ISSUER", "greeting-api")
	v.SetDefault("JWT_EXPIRY_HOURS", 24)
	v.SetDefault("RATE_LIMIT_RPS", 100)
	v.SetDefault("RATE_LIMIT_BURST", 200)
	v.SetDefault("CDK_ASSET_ROOT", "dist")

	region := v.GetString("AWS_REGION")

	config := &Config{
		Environment: strings.ToLower(v.GetString("ENVIRONMENT")),
		Port:        v.GetString("PORT"),
		AWSRegion:   region,
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: strings.ToLower(v.GetString("LOG_FORMAT")),
		},
		Storage: StorageConfig{
			Type:     strings.ToLower(v.GetString("STORAGE_TYPE")),
			Region:   region,
			Buckets:  v.GetString("STORAGE_MOCK_BUCKETS"),
			explicit: isEnvSet("STORAGE_TYPE"),
		},
		Directory: DirectoryConfig{
			Latency: v.GetDuration("DIRECTORY_LATENCY"),
		},
		JWT: JWTConfig{
			Secret:      v.GetString("JWT_SECRET"),
			Issuer:      v.GetString("JWT_ISSUER"),
			ExpiryHours: v.GetInt("JWT_EXPIRY_HOURS"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: v.GetFloat64("RATE_LIMIT_RPS"),
			Burst:             v.GetInt("RATE_LIMIT_BURST"),
		},
		CDK: CDKConfig{
			AssetRoot: v.GetString("CDK_ASSET_ROOT"),
			Account:   v.GetString("CDK_DEFAULT_ACCOUNT"),
			Region:    v.GetString("CDK_DEFAULT_REGION"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port cannot be empty")
	}
	if c.AWSRegion == "" {
		return fmt.Errorf("aws region cannot be empty")
	}
	switch c.Storage.Type {
	case "s3", "mock":
	default:
		return fmt.Errorf("unsupported storage type: %s", c.Storage.Type)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unsupported log format: %s", c.Log.Format)
	}
	if c.Directory.Latency < 0 {
		return fmt.Errorf("directory latency cannot be negative")
	}
	if c.RateLimit.RequestsPerSecond <= 0 {
		return fmt.Errorf("rate limit must be positive")
	}
	if c.RateLimit.Burst <= 0 {
		return fmt.Errorf("rate limit burst must be positive")
	}
	return nil
}

// IsProduction reports whether the runtime mode is production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Validate checks that the local authorizer can sign tokens safely
func (c *JWTConfig) Validate(environment string) error {
	if c.Secret == "" {
		return fmt.Errorf("jwt secret cannot be empty")
	}
	if environment == "production" && c.Secret == defaultJWTSecret {
		return fmt.Errorf("jwt secret must be set in production")
	}
	if c.ExpiryHours <= 0 {
		return fmt.Errorf("jwt expiry must be positive")
	}
	return nil
}

// TokenDuration returns the configured token lifetime
func (c *JWTConfig) TokenDuration() time.Duration {
	return time.Duration(c.ExpiryHours) * time.Hour
}

// GetEnv gets an environment variable with a fallback value
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// GetEnvAsInt gets an environment variable as integer with a fallback value
func GetEnvAsInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

func isEnvSet(key string) bool {
	return os.Getenv(key) != ""
}
