package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"authservice/internal/core/domain"
)

const testSecret = "test-signing-secret"

var t0 = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func clockAt(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestIssueAndVerify(t *testing.T) {
	svc := NewJwtServiceWithClock(testSecret, 3*time.Hour, clockAt(t0))

	token, err := svc.Issue("6f1c7af2-9f5e-4f3a-9c3a-0c62cf54a9b1")

	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	subject, err := svc.Verify(token)

	assert.NoError(t, err)
	assert.Equal(t, "6f1c7af2-9f5e-4f3a-9c3a-0c62cf54a9b1", subject)
}

func TestVerifyJustBeforeExpiry(t *testing.T) {
	lifetime := 3 * time.Hour

	issuer := NewJwtServiceWithClock(testSecret, lifetime, clockAt(t0))
	verifier := NewJwtServiceWithClock(testSecret, lifetime, clockAt(t0.Add(lifetime-time.Second)))

	token, err := issuer.Issue("user-a")
	assert.NoError(t, err)

	subject, err := verifier.Verify(token)

	assert.NoError(t, err)
	assert.Equal(t, "user-a", subject)
}

func TestVerifyAtExactExpiry(t *testing.T) {
	// Validity is exclusive: at exactly expiresAt the token is already dead.
	lifetime := 3 * time.Hour

	issuer := NewJwtServiceWithClock(testSecret, lifetime, clockAt(t0))
	verifier := NewJwtServiceWithClock(testSecret, lifetime, clockAt(t0.Add(lifetime)))

	token, err := issuer.Issue("user-a")
	assert.NoError(t, err)

	_, err = verifier.Verify(token)

	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestVerifyAfterExpiry(t *testing.T) {
	lifetime := 3 * time.Hour

	issuer := NewJwtServiceWithClock(testSecret, lifetime, clockAt(t0))
	verifier := NewJwtServiceWithClock(testSecret, lifetime, clockAt(t0.Add(lifetime+time.Second)))

	token, err := issuer.Issue("user-a")
	assert.NoError(t, err)

	_, err = verifier.Verify(token)

	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestVerifyWrongSecret(t *testing.T) {
	issuer := NewJwtServiceWithClock(testSecret, time.Hour, clockAt(t0))
	verifier := NewJwtServiceWithClock("another-secret", time.Hour, clockAt(t0))

	token, err := issuer.Issue("user-a")
	assert.NoError(t, err)

	_, err = verifier.Verify(token)

	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestVerifyMalformedToken(t *testing.T) {
	svc := NewJwtServiceWithClock(testSecret, time.Hour, clockAt(t0))

	_, err := svc.Verify("definitely-not-a-jwt")

	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestVerifyTamperedToken(t *testing.T) {
	svc := NewJwtServiceWithClock(testSecret, time.Hour, clockAt(t0))

	token, err := svc.Issue("user-a")
	assert.NoError(t, err)

	tampered := token[:len(token)-4] + "AAAA"

	_, err = svc.Verify(tampered)

	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}
