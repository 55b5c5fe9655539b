// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// PostgreSQL connection
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Valkey (Redis-compatible cache + session store)
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string

	// S3-compatible object storage for generated media
	S3Endpoint  string
	S3Region    string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3PublicURL string

	// AI provider settings. The active provider must support image
	// generation; video generation additionally requires Gemini.
	AIProvider       string
	GeminiKey        string
	GeminiModel      string
	GeminiImageModel string
	GeminiVideoModel string
	GeminiBaseURL    string
	OpenAIKey        string
	OpenAIModel      string
	OpenAIBaseURL    string
	ClaudeKey        string
	ClaudeModel      string
	ClaudeBaseURL    string
	MistralKey       string
	MistralModel     string
	MistralBaseURL   string

	// Video generation polling. The render call submits a long-running
	// operation and re-checks it every VideoPollInterval until it reaches
	// a terminal state or VideoPollTimeout elapses.
	VideoPollInterval time.Duration
	VideoPollTimeout  time.Duration
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. Returns an error if critical values
// are missing in production mode.
func Load() (*Config, error) {
	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		DBHost:     envOrDefault("POSTGRES_HOST", "localhost"),
		DBPort:     envOrDefault("POSTGRES_PORT", "5432"),
		DBUser:     envOrDefault("POSTGRES_USER", "socialstudio"),
		DBPassword: envOrDefault("POSTGRES_PASSWORD", "changeme"),
		DBName:     envOrDefault("POSTGRES_DB", "socialstudio"),

		ValkeyHost:     envOrDefault("VALKEY_HOST", "localhost"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),

		S3Endpoint:  os.Getenv("S3_ENDPOINT"),
		S3Region:    envOrDefault("S3_REGION", "us-east-1"),
		S3AccessKey: os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey: os.Getenv("S3_SECRET_KEY"),
		S3Bucket:    envOrDefault("S3_BUCKET", "socialstudio-media"),
		S3PublicURL: os.Getenv("S3_PUBLIC_URL"),

		AIProvider:       envOrDefault("AI_PROVIDER", "gemini"),
		GeminiKey:        os.Getenv("GEMINI_API_KEY"),
		GeminiModel:      envOrDefault("GEMINI_MODEL", "gemini-3-flash-preview"),
		GeminiImageModel: envOrDefault("GEMINI_IMAGE_MODEL", "gemini-2.5-flash-image"),
		GeminiVideoModel: envOrDefault("GEMINI_VIDEO_MODEL", "veo-3.1-fast-generate-001"),
		GeminiBaseURL:    os.Getenv("GEMINI_BASE_URL"),
		OpenAIKey:        os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:      envOrDefault("OPENAI_MODEL", "gpt-4o"),
		OpenAIBaseURL:    os.Getenv("OPENAI_BASE_URL"),
		ClaudeKey:        os.Getenv("CLAUDE_API_KEY"),
		ClaudeModel:      envOrDefault("CLAUDE_MODEL", "claude-sonnet-4-6"),
		ClaudeBaseURL:    os.Getenv("CLAUDE_BASE_URL"),
		MistralKey:       os.Getenv("MISTRAL_API_KEY"),
		MistralModel:     envOrDefault("MISTRAL_MODEL", "mistral-large-latest"),
		MistralBaseURL:   os.Getenv("MISTRAL_BASE_URL"),

		VideoPollInterval: envDuration("VIDEO_POLL_INTERVAL", 10*time.Second),
		VideoPollTimeout:  envDuration("VIDEO_POLL_TIMEOUT", 6*time.Minute),
	}

	if cfg.Env == "production" {
		if cfg.DBPassword == "changeme" {
			return nil, fmt.Errorf("POSTGRES_PASSWORD must be set in production")
		}
	}

	if cfg.VideoPollInterval <= 0 || cfg.VideoPollTimeout <= 0 {
		return nil, fmt.Errorf("video poll interval and timeout must be positive")
	}

	return cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// envDuration reads a duration environment variable. Plain integers are
// interpreted as seconds; otherwise time.ParseDuration syntax applies.
func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	return fallback
}
