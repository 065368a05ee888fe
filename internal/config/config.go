package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server settings
	Port string `json:"port"`
	Host string `json:"host"`

	// Reddit proxy settings
	RedditBaseURL    string        `json:"reddit_base_url"`
	RedditUserAgent  string        `json:"reddit_user_agent"`
	DefaultSubreddit string        `json:"default_subreddit"`
	DefaultLimit     string        `json:"default_limit"`
	UpstreamTimeout  time.Duration `json:"upstream_timeout"`

	// Summarizer backend settings
	SummarizerURL     string        `json:"summarizer_url"`
	SummarizerTimeout time.Duration `json:"summarizer_timeout"`

	// Storage settings
	StorageBackend string `json:"storage_backend"` // "memory" or "gcs"
	StorageBucket  string `json:"storage_bucket"`
	StoragePrefix  string `json:"storage_prefix"`

	// Session storage settings
	SessionBackend string        `json:"session_backend"` // "memory" or "redis"
	RedisAddr      string        `json:"redis_addr"`
	RedisDB        int           `json:"redis_db"`
	SessionTTL     time.Duration `json:"session_ttl"`

	// Snapshot settings
	SnapshotSchedule   string   `json:"snapshot_schedule"` // cron expression, empty disables
	SnapshotSubreddits []string `json:"snapshot_subreddits"`
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	config := &Config{
		Port:               getEnvOrDefault("PORT", "8080"),
		Host:               getEnvOrDefault("HOST", "0.0.0.0"),
		RedditBaseURL:      strings.TrimRight(getEnvOrDefault("REDDIT_BASE_URL", "https://www.reddit.com"), "/"),
		RedditUserAgent:    getEnvOrDefault("REDDIT_USER_AGENT", "SocialSpy/1.0 (Trending Content Aggregator)"),
		DefaultSubreddit:   getEnvOrDefault("DEFAULT_SUBREDDIT", "trending"),
		DefaultLimit:       getEnvOrDefault("DEFAULT_LIMIT", "25"),
		UpstreamTimeout:    time.Duration(getEnvOrDefaultInt("UPSTREAM_TIMEOUT_SECONDS", 30)) * time.Second,
		SummarizerURL:      getEnvOrDefault("SUMMARIZER_URL", "http://localhost:8888/.netlify/functions/youtube-summarizer"),
		SummarizerTimeout:  time.Duration(getEnvOrDefaultInt("SUMMARIZER_TIMEOUT_SECONDS", 60)) * time.Second,
		StorageBackend:     getEnvOrDefault("STORAGE_BACKEND", "memory"),
		StorageBucket:      getEnvOrDefault("STORAGE_BUCKET", "socialspy-storage"),
		StoragePrefix:      getEnvOrDefault("STORAGE_PREFIX", "kv/"),
		SessionBackend:     getEnvOrDefault("SESSION_BACKEND", "memory"),
		RedisAddr:          getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisDB:            getEnvOrDefaultInt("REDIS_DB", 0),
		SessionTTL:         time.Duration(getEnvOrDefaultInt("SESSION_TTL_MINUTES", 30)) * time.Minute,
		SnapshotSchedule:   os.Getenv("SNAPSHOT_SCHEDULE"),
		SnapshotSubreddits: parseStringSlice(getEnvOrDefault("SNAPSHOT_SUBREDDITS", "trending")),
	}

	return config, config.validate()
}

// validate checks if configuration values are usable
func (c *Config) validate() error {
	if c.RedditBaseURL == "" {
		return &ConfigError{Field: "REDDIT_BASE_URL", Message: "Reddit base URL is required"}
	}
	if c.RedditUserAgent == "" {
		return &ConfigError{Field: "REDDIT_USER_AGENT", Message: "Reddit requires a distinguishing user agent"}
	}
	if c.UpstreamTimeout <= 0 {
		return &ConfigError{Field: "UPSTREAM_TIMEOUT_SECONDS", Message: "must be positive"}
	}
	if c.SummarizerTimeout <= 0 {
		return &ConfigError{Field: "SUMMARIZER_TIMEOUT_SECONDS", Message: "must be positive"}
	}
	switch c.StorageBackend {
	case "memory":
	case "gcs":
		if c.StorageBucket == "" {
			return &ConfigError{Field: "STORAGE_BUCKET", Message: "bucket is required for gcs storage"}
		}
	default:
		return &ConfigError{Field: "STORAGE_BACKEND", Message: "must be memory or gcs"}
	}
	switch c.SessionBackend {
	case "memory", "redis":
	default:
		return &ConfigError{Field: "SESSION_BACKEND", Message: "must be memory or redis"}
	}
	return nil
}

// getEnvOrDefault returns environment variable value or default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvOrDefaultInt returns environment variable value as int or default if not set
func getEnvOrDefaultInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// parseStringSlice parses comma-separated string into slice
func parseStringSlice(value string) []string {
	if value == "" {
		return []string{}
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
