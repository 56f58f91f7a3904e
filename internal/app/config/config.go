// Package config loads the process configuration once at startup.
// Nothing outside this package reads the environment; secrets travel as an
// explicit struct passed into the components that need them.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every process-wide setting. It is read-only after Load.
type Config struct {
	// Application
	Port string

	// Database
	DatabaseURL   string
	RunMigrations bool

	// Security
	JWTSecret string
	JWTExpiry time.Duration

	// Cache (optional)
	RedisAddr     string
	RedisPassword string
	CacheTTL      time.Duration

	// Email (RESEND_API_KEY optional: empty key enables log mode)
	EmailFrom    string
	ResendAPIKey string
}

// Load reads the .env file if present and builds the Config from the
// environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	return &Config{
		Port: envString("PORT", "8080"),

		DatabaseURL:   envRequired("DATABASE_URL"),
		RunMigrations: envBool("RUN_MIGRATIONS", false),

		JWTSecret: envRequired("JWT_SECRET"),
		JWTExpiry: envDuration("JWT_EXPIRY", 720*time.Hour), // 30 days

		RedisAddr:     envString("REDIS_ADDR", ""),
		RedisPassword: envString("REDIS_PASSWORD", ""),
		CacheTTL:      envDuration("CACHE_TTL", 5*time.Minute),

		EmailFrom:    envString("EMAIL_FROM", "noreply@plantconsole.example"),
		ResendAPIKey: envString("RESEND_API_KEY", ""),
	}
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("config invalid bool, using default", "key", key, "value", v, "default", def)
		return def
	}
	return b
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}
