// Package config provides application configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage backends accepted by STORAGE_BACKEND.
const (
	BackendFile     = "file"
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// DefaultStorageKey is the single key the feed snapshot lives under.
const DefaultStorageKey = "mini_social_posts"

// Config holds application configuration values loaded from file or environment variables.
type Config struct {
	Port           string        `mapstructure:"PORT"`
	Env            string        `mapstructure:"APP_ENV"`
	AllowedOrigins string        `mapstructure:"ALLOWED_ORIGINS"`
	StorageBackend string        `mapstructure:"STORAGE_BACKEND"`
	StorageKey     string        `mapstructure:"STORAGE_KEY"`
	StorageDir     string        `mapstructure:"STORAGE_DIR"`
	SQLitePath     string        `mapstructure:"SQLITE_PATH"`
	RedisURL       string        `mapstructure:"REDIS_URL"`
	DBHost         string        `mapstructure:"DB_HOST"`
	DBPort         string        `mapstructure:"DB_PORT"`
	DBUser         string        `mapstructure:"DB_USER"`
	DBPassword     string        `mapstructure:"DB_PASSWORD"`
	DBName         string        `mapstructure:"DB_NAME"`
	DBSSLMode      string        `mapstructure:"DB_SSLMODE"`
	FeedbackTTL    time.Duration `mapstructure:"FEEDBACK_TTL"`
	HighlightTTL   time.Duration `mapstructure:"HIGHLIGHT_TTL"`
	TracingEnabled bool          `mapstructure:"TRACING_ENABLED"`
	TracingExport  string        `mapstructure:"TRACING_EXPORTER"`
	OTLPEndpoint   string        `mapstructure:"OTLP_ENDPOINT"`
	TracingRatio   float64       `mapstructure:"TRACING_SAMPLE_RATIO"`
}

// LoadConfig loads application configuration from .env, config files and
// environment variables, in increasing order of precedence.
func LoadConfig() (*Config, error) {
	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	v := viper.New()
	v.AddConfigPath(".")
	v.AddConfigPath("..")
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AutomaticEnv()

	// We intentionally ignore this error as the config file may not exist
	_ = v.ReadInConfig()

	env := v.GetString("APP_ENV")
	if env != "" && env != "development" && env != "test" {
		v.SetConfigName("config." + env)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("required profile-specific config 'config.%s.yml' not found: %w", env, err)
		}
		log.Printf("Loaded profile-specific configuration: config.%s.yml", env)
	}

	setDefaults(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000")
	v.SetDefault("STORAGE_BACKEND", BackendFile)
	v.SetDefault("STORAGE_KEY", DefaultStorageKey)
	v.SetDefault("STORAGE_DIR", "./data")
	v.SetDefault("SQLITE_PATH", "./data/minisocial.db")
	v.SetDefault("REDIS_URL", "localhost:6379")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "user")
	v.SetDefault("DB_PASSWORD", "password")
	v.SetDefault("DB_NAME", "minisocial")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("FEEDBACK_TTL", "3s")
	v.SetDefault("HIGHLIGHT_TTL", "500ms")
	v.SetDefault("TRACING_ENABLED", false)
	v.SetDefault("TRACING_EXPORTER", "stdout")
	v.SetDefault("OTLP_ENDPOINT", "localhost:4318")
	v.SetDefault("TRACING_SAMPLE_RATIO", 1.0)
}

// Validate ensures that required configuration values are present and sane.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	if strings.TrimSpace(c.StorageKey) == "" {
		return errors.New("STORAGE_KEY is required")
	}

	switch c.StorageBackend {
	case BackendFile:
		if c.StorageDir == "" {
			return errors.New("STORAGE_DIR is required for the file backend")
		}
	case BackendMemory:
	case BackendRedis:
		if c.RedisURL == "" {
			return errors.New("REDIS_URL is required for the redis backend")
		}
	case BackendSQLite:
		if c.SQLitePath == "" {
			return errors.New("SQLITE_PATH is required for the sqlite backend")
		}
	case BackendPostgres:
		if c.DBHost == "" || c.DBName == "" {
			return errors.New("DB_HOST and DB_NAME are required for the postgres backend")
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend)
	}

	if c.FeedbackTTL <= 0 {
		return errors.New("FEEDBACK_TTL must be positive")
	}
	if c.HighlightTTL <= 0 {
		return errors.New("HIGHLIGHT_TTL must be positive")
	}
	if c.TracingRatio < 0 || c.TracingRatio > 1 {
		return errors.New("TRACING_SAMPLE_RATIO must be within [0, 1]")
	}

	if c.IsProduction() {
		if c.StorageBackend == BackendMemory {
			log.Println("WARNING: STORAGE_BACKEND is 'memory' in production. The feed will not survive a restart.")
		}
		if c.AllowedOrigins == "*" {
			log.Println("WARNING: ALLOWED_ORIGINS is set to '*' in production. This is insecure.")
		}
	}

	return nil
}

// IsProduction reports whether the app runs with a production profile.
func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}
