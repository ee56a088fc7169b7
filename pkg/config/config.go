package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config aggregates runtime configuration for the timetable engine service.
type Config struct {
	Env       string
	Port      int
	APIPrefix string
	APIKey    string

	CORS   CORSConfig
	Log    LogConfig
	Engine EngineConfig
}

// CORSConfig lists origins allowed to call the API.
type CORSConfig struct {
	AllowedOrigins []string
}

// LogConfig governs zap output.
type LogConfig struct {
	Level  string
	Format string
}

// EngineConfig tunes the solver driver.
type EngineConfig struct {
	DefaultTimeLimit time.Duration
	MinTimeLimit     time.Duration
	MaxTimeLimit     time.Duration
	SearchWorkers    int
}

// Load reads configuration from .env and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{
		Env:       v.GetString("ENV"),
		Port:      v.GetInt("PORT"),
		APIPrefix: v.GetString("API_PREFIX"),
		APIKey:    v.GetString("API_KEY"),
		CORS:      CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Engine: EngineConfig{
			DefaultTimeLimit: parseDuration(v.GetString("ENGINE_DEFAULT_TIME_LIMIT"), 300*time.Second),
			MinTimeLimit:     parseDuration(v.GetString("ENGINE_MIN_TIME_LIMIT"), 10*time.Second),
			MaxTimeLimit:     parseDuration(v.GetString("ENGINE_MAX_TIME_LIMIT"), 600*time.Second),
			SearchWorkers:    v.GetInt("ENGINE_SEARCH_WORKERS"),
		},
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")
	v.SetDefault("API_KEY", "dev_api_key")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("ENGINE_DEFAULT_TIME_LIMIT", "300s")
	v.SetDefault("ENGINE_MIN_TIME_LIMIT", "10s")
	v.SetDefault("ENGINE_MAX_TIME_LIMIT", "600s")
	v.SetDefault("ENGINE_SEARCH_WORKERS", 8)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
