package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()

	assert.Error(t, err)
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_ADAPTER", "")
	t.Setenv("ACCESS_TOKEN_TTL", "")
	t.Setenv("REFRESH_TOKEN_TTL", "")
	t.Setenv("GIN_MODE", "")

	config, err := LoadConfig()

	assert.NoError(t, err)
	assert.Equal(t, "8080", config.Port)
	assert.Equal(t, "postgres", config.DatabaseAdapter)
	assert.Equal(t, 3*time.Hour, config.AccessTokenTTL)
	assert.Equal(t, 7*24*time.Hour, config.RefreshTokenTTL)
	assert.True(t, config.RateLimitEnabled)
	assert.False(t, config.EnforceHTTPS)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_ADAPTER", "sqlite")
	t.Setenv("ACCESS_TOKEN_TTL", "15m")
	t.Setenv("REFRESH_TOKEN_TTL", "72h")

	config, err := LoadConfig()

	assert.NoError(t, err)
	assert.Equal(t, "9000", config.Port)
	assert.Equal(t, "sqlite", config.DatabaseAdapter)
	assert.Equal(t, 15*time.Minute, config.AccessTokenTTL)
	assert.Equal(t, 72*time.Hour, config.RefreshTokenTTL)
}

func TestLoadConfigBadTTL(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("ACCESS_TOKEN_TTL", "three hours")

	_, err := LoadConfig()

	assert.Error(t, err)
}

func TestLoadConfigReleaseMode(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("GIN_MODE", "release")

	config, err := LoadConfig()

	assert.NoError(t, err)
	assert.Equal(t, "production", config.Environment)
	assert.True(t, config.EnforceHTTPS)
}

func TestRateLimitWindowsCoverCredentialEndpoints(t *testing.T) {
	config := GetDefaultConfig()

	assert.Contains(t, config.RateLimitConfigs, "/signup")
	assert.Contains(t, config.RateLimitConfigs, "/auth")
	assert.Contains(t, config.RateLimitConfigs, "/auth/refresh")
	assert.Less(t, config.RateLimitConfigs["/signup"].Requests, config.RateLimitConfigs["/auth"].Requests)
}
