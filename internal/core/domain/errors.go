package domain

import "errors"

var (
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// callers cannot tell the two apart.
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrUserAlreadyExists = errors.New("user already exists")

	ErrUserNotFound = errors.New("user not found")

	ErrTokenInvalid = errors.New("invalid access token")

	ErrRefreshTokenNotFound = errors.New("refresh token not found")

	// ErrStoreUnavailable wraps infrastructure failures from the user store
	// or the refresh token store. Never a judgement about the credentials.
	ErrStoreUnavailable = errors.New("store unavailable")
)
