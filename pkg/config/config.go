package config

import (
	"errors"
	"os"
	"time"
)

type AppConfig struct {
	Port        string
	Environment string

	DatabaseAdapter string
	DatabaseURL     string
	RedisURL        string

	// JWTSecret is read once at startup and handed to the token service;
	// nothing else looks at it afterwards.
	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	RateLimitEnabled bool
	RateLimitConfigs map[string]RateLimitConfig

	EnforceHTTPS bool
}

type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

func GetDefaultConfig() *AppConfig {
	return &AppConfig{
		Port:            "8080",
		Environment:     "development",
		DatabaseAdapter: "postgres",
		RedisURL:        "redis://localhost:6379/0",

		AccessTokenTTL:  3 * time.Hour,
		RefreshTokenTTL: 7 * 24 * time.Hour,

		RateLimitEnabled: true,
		RateLimitConfigs: map[string]RateLimitConfig{
			"/signup": {
				Requests: 5,
				Window:   time.Minute,
			},
			"/auth": {
				Requests: 10,
				Window:   time.Minute,
			},
			"/auth/refresh": {
				Requests: 30,
				Window:   time.Minute,
			},
		},
		EnforceHTTPS: false,
	}
}

// LoadConfig fills the default config from the environment. The JWT secret
// has no default on purpose.
func LoadConfig() (*AppConfig, error) {
	config := GetDefaultConfig()

	if port := os.Getenv("PORT"); port != "" {
		config.Port = port
	}

	if adapter := os.Getenv("DATABASE_ADAPTER"); adapter != "" {
		config.DatabaseAdapter = adapter
	}

	config.DatabaseURL = os.Getenv("DATABASE_URL")

	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		config.RedisURL = redisURL
	}

	config.JWTSecret = os.Getenv("JWT_SECRET")

	if config.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is not set")
	}

	if ttl := os.Getenv("ACCESS_TOKEN_TTL"); ttl != "" {
		parsed, err := time.ParseDuration(ttl)

		if err != nil {
			return nil, err
		}

		config.AccessTokenTTL = parsed
	}

	if ttl := os.Getenv("REFRESH_TOKEN_TTL"); ttl != "" {
		parsed, err := time.ParseDuration(ttl)

		if err != nil {
			return nil, err
		}

		config.RefreshTokenTTL = parsed
	}

	if os.Getenv("GIN_MODE") == "release" {
		config.Environment = "production"
		config.EnforceHTTPS = true
	}

	return config, nil
}
