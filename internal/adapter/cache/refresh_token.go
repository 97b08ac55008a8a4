package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"authservice/internal/core/domain"
	"authservice/internal/core/port"
)

const refreshPrefix = "refresh:"

// RefreshTokenStore keeps refresh tokens as refresh:<token> -> user UUID
// with a TTL. Tokens are random UUIDs; uniqueness rests on entropy alone,
// the write never checks for a prior entry.
type RefreshTokenStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRefreshTokenStore(client *redis.Client, ttl time.Duration) port.RefreshTokenStore {
	return &RefreshTokenStore{client: client, ttl: ttl}
}

func (rs *RefreshTokenStore) Generate(ctx context.Context, userUUID string) (string, error) {
	token := uuid.New().String()

	if err := rs.client.Set(ctx, refreshPrefix+token, userUUID, rs.ttl).Err(); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	return token, nil
}

func (rs *RefreshTokenStore) Resolve(ctx context.Context, token string) (string, error) {
	userUUID, err := rs.client.Get(ctx, refreshPrefix+token).Result()

	if errors.Is(err, redis.Nil) {
		// Absent and expired look the same; redis owns the expiry.
		return "", domain.ErrRefreshTokenNotFound
	}

	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	return userUUID, nil
}

// Revoke deletes the entry. Deleting an absent key is not an error.
func (rs *RefreshTokenStore) Revoke(ctx context.Context, token string) error {
	if err := rs.client.Del(ctx, refreshPrefix+token).Err(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	return nil
}

func (rs *RefreshTokenStore) TTL() time.Duration {
	return rs.ttl
}
