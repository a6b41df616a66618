package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Course id assignment policies.
const (
	// IDStrategyLength assigns len(collection)+1, which may reuse an id after a delete.
	IDStrategyLength = "length"
	// IDStrategyMonotonic assigns one past the highest id ever issued.
	IDStrategyMonotonic = "monotonic"
)

// Config holds all application configuration.
type Config struct {
	ServerPort string
	AppEnv     string
	AppName    string
	GinMode    string
	LogLevel   string
	LogFormat  string
	PublicDir  string
	IDStrategy string
	// RateLimitPerMinute caps /api requests per client IP. Zero disables limiting.
	RateLimitPerMinute int
	CompressionEnabled bool
	// AuthJWTSecret verifies optional bearer tokens. Empty means callers stay anonymous.
	AuthJWTSecret string
	// AllowedOrigins controls HTTP CORS origin validation.
	// Empty slice means all origins are permitted (dev default).
	AllowedOrigins []string
}

// Load reads configuration from environment variables with sensible defaults.
// It loads .env file if present but does not fail if missing.
func Load() *Config {
	_ = godotenv.Load() // .env is optional

	return &Config{
		ServerPort:         getEnv("PORT", "3000"),
		AppEnv:             getEnv("APP_ENV", getEnv("NODE_ENV", "development")),
		AppName:            getEnv("APP_NAME", "Course Service"),
		GinMode:            getEnv("GIN_MODE", "debug"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "pretty"),
		PublicDir:          getEnv("PUBLIC_DIR", "./public"),
		IDStrategy:         parseIDStrategy(getEnv("ID_STRATEGY", IDStrategyLength)),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 0),
		CompressionEnabled: getEnvBool("COMPRESSION_ENABLED", true),
		AuthJWTSecret:      getEnv("AUTH_JWT_SECRET", ""),
		AllowedOrigins:     parseOrigins(getEnv("ALLOWED_ORIGINS", "")),
	}
}

// IsDevelopment reports whether the service runs in the development environment.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

// parseIDStrategy falls back to the length policy for unknown values.
func parseIDStrategy(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case IDStrategyMonotonic:
		return IDStrategyMonotonic
	default:
		return IDStrategyLength
	}
}

// parseOrigins splits a comma-separated origins string into a trimmed slice.
// Returns nil (allow-all) if the input is empty.
func parseOrigins(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
