// Package config loads the backend configuration from the environment.
package config

import (
	"os"
	"time"

	"github.com/rs/zerolog/log"
)

// Config holds all application configuration. Values are read from
// environment variables with sensible defaults; a .env file is loaded by
// main before Load runs.
type Config struct {
	DBPath        string
	JWTSecret     string
	TokenLifetime time.Duration
}

// Load reads the configuration from environment variables.
func Load() Config {
	return Config{
		DBPath:        getEnv("DB_PATH", "data/gorm.db"),
		JWTSecret:     jwtSecret(),
		TokenLifetime: getEnvDuration("TOKEN_LIFETIME", 24*time.Hour),
	}
}

func jwtSecret() string {
	secret, ok := os.LookupEnv("JWT_SECRET")
	if !ok || secret == "" {
		log.Warn().Msg("JWT_SECRET is not set, using an insecure development secret")
		return "insecure-development-secret"
	}

	return secret
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}

	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		log.Warn().Str("key", key).Str("value", value).Msg("could not parse duration, using default")
		return fallback
	}

	return d
}
