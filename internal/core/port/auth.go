package port

import (
	"context"
	"time"

	"authservice/internal/core/domain"
	"authservice/internal/core/model/request"
	"authservice/internal/core/model/response"
)

type AuthService interface {
	Registration(ctx context.Context, req *request.SignUpRequest) (*domain.User, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*response.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
}

// TokenService signs and verifies self-contained access tokens. The signing
// key is fixed at construction; rotating it invalidates everything issued
// before.
type TokenService interface {
	Issue(userUUID string) (string, error)
	Verify(token string) (string, error)
}

// RefreshTokenStore keeps opaque refresh tokens in an expiring key-value
// store, mapping token -> user UUID. Expiry is enforced by the store itself;
// an absent key is indistinguishable from an expired one.
type RefreshTokenStore interface {
	Generate(ctx context.Context, userUUID string) (string, error)
	Resolve(ctx context.Context, token string) (string, error)
	Revoke(ctx context.Context, token string) error
	TTL() time.Duration
}
