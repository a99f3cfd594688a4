package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/studenthub/studenthub-api/internal/constants"
)

type Config struct {
	HTTPAddr  string
	GinMode   string
	LogLevel  string
	DBDriver  string
	DBDSN     string
	JWTSecret string
	TokenTTL  time.Duration
}

// Load builds the configuration from defaults overridden by environment
// variables.
func Load() *Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_DRIVER", "mysql")
	v.SetDefault("DB_DSN", "studenthub:studenthub@tcp(localhost:3306)/studenthub?charset=utf8mb4&parseTime=True&loc=Local")
	v.SetDefault("JWT_SECRET", "dev-secret-change-me")
	v.SetDefault("TOKEN_TTL", "1h")

	ttl, err := time.ParseDuration(v.GetString("TOKEN_TTL"))
	if err != nil {
		ttl = constants.DefaultTokenTTL
	}

	return &Config{
		HTTPAddr:  v.GetString("HTTP_ADDR"),
		GinMode:   v.GetString("GIN_MODE"),
		LogLevel:  v.GetString("LOG_LEVEL"),
		DBDriver:  v.GetString("DB_DRIVER"),
		DBDSN:     v.GetString("DB_DSN"),
		JWTSecret: v.GetString("JWT_SECRET"),
		TokenTTL:  ttl,
	}
}

// SlogLevel maps the configured log level onto slog's level scale.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
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
