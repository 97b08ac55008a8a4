package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"authservice/internal/adapter/cache"
	"authservice/internal/core/domain"
	. "authservice/pkg/test"
)

func TestGenerateAndResolve(t *testing.T) {
	client, _ := InitTestRedis(t)
	store := cache.NewRefreshTokenStore(client, time.Hour)

	token, err := store.Generate(context.Background(), "subject-a")

	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	subject, err := store.Resolve(context.Background(), token)

	assert.NoError(t, err)
	assert.Equal(t, "subject-a", subject)
}

func TestGenerateIsRandomPerCall(t *testing.T) {
	client, _ := InitTestRedis(t)
	store := cache.NewRefreshTokenStore(client, time.Hour)

	first, err := store.Generate(context.Background(), "subject-a")
	assert.NoError(t, err)

	second, err := store.Generate(context.Background(), "subject-a")
	assert.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestResolveUnknownToken(t *testing.T) {
	client, _ := InitTestRedis(t)
	store := cache.NewRefreshTokenStore(client, time.Hour)

	_, err := store.Resolve(context.Background(), "never-issued")

	assert.ErrorIs(t, err, domain.ErrRefreshTokenNotFound)
}

func TestResolveAfterRevoke(t *testing.T) {
	client, _ := InitTestRedis(t)
	store := cache.NewRefreshTokenStore(client, time.Hour)

	token, err := store.Generate(context.Background(), "subject-a")
	assert.NoError(t, err)

	assert.NoError(t, store.Revoke(context.Background(), token))

	_, err = store.Resolve(context.Background(), token)

	assert.ErrorIs(t, err, domain.ErrRefreshTokenNotFound)
}

func TestRevokeIsIdempotent(t *testing.T) {
	client, _ := InitTestRedis(t)
	store := cache.NewRefreshTokenStore(client, time.Hour)

	token, err := store.Generate(context.Background(), "subject-a")
	assert.NoError(t, err)

	assert.NoError(t, store.Revoke(context.Background(), token))
	assert.NoError(t, store.Revoke(context.Background(), token))
	assert.NoError(t, store.Revoke(context.Background(), "never-issued"))
}

func TestResolveAfterTTLElapsed(t *testing.T) {
	client, mr := InitTestRedis(t)
	store := cache.NewRefreshTokenStore(client, time.Hour)

	token, err := store.Generate(context.Background(), "subject-a")
	assert.NoError(t, err)

	mr.FastForward(time.Hour + time.Second)

	_, err = store.Resolve(context.Background(), token)

	assert.ErrorIs(t, err, domain.ErrRefreshTokenNotFound)
}

func TestTTLAccessor(t *testing.T) {
	client, _ := InitTestRedis(t)
	store := cache.NewRefreshTokenStore(client, 42*time.Minute)

	assert.Equal(t, 42*time.Minute, store.TTL())
}
