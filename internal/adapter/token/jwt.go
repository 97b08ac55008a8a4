package token

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"authservice/internal/core/domain"
)

// JwtService issues and verifies HS256 access tokens. The secret and the
// lifetime are fixed at construction; there is no revocation list, the short
// lifetime is the only mitigation.
type JwtService struct {
	secret   []byte
	lifetime time.Duration
	now      func() time.Time
}

func NewJwtService(secret string, lifetime time.Duration) *JwtService {
	return &JwtService{
		secret:   []byte(secret),
		lifetime: lifetime,
		now:      time.Now,
	}
}

// NewJwtServiceWithClock pins the clock, for expiry tests.
func NewJwtServiceWithClock(secret string, lifetime time.Duration, now func() time.Time) *JwtService {
	return &JwtService{
		secret:   []byte(secret),
		lifetime: lifetime,
		now:      now,
	}
}

func (j *JwtService) Issue(userUUID string) (string, error) {
	now := j.now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userUUID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(j.lifetime)),
	})

	return token.SignedString(j.secret)
}

// Verify returns the subject UUID. A token is valid strictly before its
// expiry instant; at exactly expiresAt it is already expired.
func (j *JwtService) Verify(tokenString string) (string, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(j.now),
		jwt.WithExpirationRequired(),
	)

	token, err := parser.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (any, error) {
		return j.secret, nil
	})

	if err != nil {
		slog.Debug("Jwt#Verify", "error", err)
		return "", fmt.Errorf("%w: %v", domain.ErrTokenInvalid, err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)

	if !ok || !token.Valid || claims.Subject == "" {
		return "", domain.ErrTokenInvalid
	}

	return claims.Subject, nil
}
