package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the application.
type Config struct {
	App     AppConfig
	SQLite  SQLiteConfig
	Redis   RedisConfig
	Logger  LoggerConfig
	Session SessionConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name    string
	Env     string
	Host    string
	Port    string
	Version string
}

// SQLiteConfig holds values for the file-backed store.
type SQLiteConfig struct {
	Path          string
	RunSchemaInit bool
}

// RedisConfig holds optional Redis connection values for the session
// store backend. An empty Addr selects the in-memory store.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// SessionConfig defines session token parameters. The signing secret is
// configuration, never a source literal.
type SessionConfig struct {
	Secret     string
	CookieName string
	TTLMinutes int
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:    getEnv("APP_NAME", "complaint-desk"),
			Env:     getEnv("APP_ENV", "development"),
			Host:    getEnv("APP_HOST", "0.0.0.0"),
			Port:    getEnv("APP_PORT", "8080"),
			Version: getEnv("APP_VERSION", "dev"),
		},
		SQLite: SQLiteConfig{
			Path:          getEnv("SQLITE_PATH", "complaints.db"),
			RunSchemaInit: getEnvAsBool("SQLITE_RUN_SCHEMA_INIT", true),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Session: SessionConfig{
			Secret:     getEnv("SESSION_SECRET", "dev-secret"),
			CookieName: getEnv("SESSION_COOKIE_NAME", "complaint_session"),
			TTLMinutes: getEnvAsInt("SESSION_TTL_MINUTES", 720),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// TTL returns the session lifetime as a duration.
func (s SessionConfig) TTL() time.Duration {
	if s.TTLMinutes <= 0 {
		return 12 * time.Hour
	}
	return time.Duration(s.TTLMinutes) * time.Minute
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
