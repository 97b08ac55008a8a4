package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"authservice/internal/core/domain"
	"authservice/internal/core/model/request"
	"authservice/internal/core/model/response"
	"authservice/internal/core/port"
	"authservice/internal/core/util"
)

type AuthService struct {
	repo    port.UserRepository
	tokens  port.TokenService
	refresh port.RefreshTokenStore
}

func NewAuthService(repo port.UserRepository, tokens port.TokenService, refresh port.RefreshTokenStore) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, refresh: refresh}
}

func (as *AuthService) Registration(ctx context.Context, req *request.SignUpRequest) (*domain.User, error) {
	exists, err := as.repo.ExistsByEmail(ctx, req.Email)

	if err != nil {
		slog.Error("Auth#Registration", "exists_by_email", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	if exists {
		return nil, domain.ErrUserAlreadyExists
	}

	encrypted, err := util.GenerateEncrypt(req.Password)

	if err != nil {
		return nil, fmt.Errorf("error creating encrypted password: %w", err)
	}

	user := domain.User{
		UUID:              uuid.New(),
		Email:             req.Email,
		EncryptedPassword: encrypted,
		Role:              domain.RoleUser,
		CreatedAt:         time.Now(),
	}

	savedUser, err := as.repo.Create(ctx, user)

	if err != nil {
		// Two concurrent signups with the same email race past the exists
		// check; the unique index decides the winner.
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			return nil, domain.ErrUserAlreadyExists
		}

		slog.Error("Auth#Registration", "create", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	return &savedUser, nil
}

func (as *AuthService) Login(ctx context.Context, req *request.LoginRequest) (*response.TokenPair, error) {
	user, err := as.repo.GetByEmail(ctx, req.Email)

	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			slog.Warn("Auth#Login", "email", req.Email, "reason", "no account for email")
			return nil, domain.ErrInvalidCredentials
		}

		slog.Error("Auth#Login", "get_by_email", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	if err := util.ComparePassword(req.Password, user.EncryptedPassword); err != nil {
		slog.Warn("Auth#Login", "email", req.Email, "reason", "password mismatch")
		return nil, domain.ErrInvalidCredentials
	}

	return as.issueTokenPair(ctx, user.UUID.String())
}

// Refresh rotates the presented token: the old entry is revoked and a fresh
// pair is returned. The old token stays live until the new pair exists, so a
// failure partway through never strands the caller without a valid token.
func (as *AuthService) Refresh(ctx context.Context, refreshToken string) (*response.TokenPair, error) {
	userUUID, err := as.refresh.Resolve(ctx, refreshToken)

	if err != nil {
		if errors.Is(err, domain.ErrRefreshTokenNotFound) {
			return nil, domain.ErrRefreshTokenNotFound
		}

		slog.Error("Auth#Refresh", "resolve", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	pair, err := as.issueTokenPair(ctx, userUUID)

	if err != nil {
		return nil, err
	}

	if err := as.refresh.Revoke(ctx, refreshToken); err != nil {
		// The new pair is already valid; the stale entry dies at its TTL.
		slog.Error("Auth#Refresh", "revoke_old", err)
	}

	return pair, nil
}

func (as *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if err := as.refresh.Revoke(ctx, refreshToken); err != nil {
		slog.Error("Auth#Logout", "revoke", err)
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	return nil
}

// issueTokenPair signs the access token before writing the refresh token, so
// a signing failure leaves nothing behind in the store.
func (as *AuthService) issueTokenPair(ctx context.Context, userUUID string) (*response.TokenPair, error) {
	accessToken, err := as.tokens.Issue(userUUID)

	if err != nil {
		slog.Error("Auth#issueTokenPair", "sign", err)
		return nil, fmt.Errorf("error signing access token: %w", err)
	}

	refreshToken, err := as.refresh.Generate(ctx, userUUID)

	if err != nil {
		slog.Error("Auth#issueTokenPair", "generate_refresh", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	return &response.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
