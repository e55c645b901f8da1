package service

import "errors"

// Sentinel errors for the service package.
// Use errors.Is() to classify them at the handler layer.
var (
	// ErrInvalidInput is returned when a required field is missing, empty,
	// or over its size cap. No mutation is attempted.
	ErrInvalidInput = errors.New("anonbox: invalid input")

	// ErrUserExists is returned on a registration username collision.
	ErrUserExists = errors.New("anonbox: user already exists")

	// ErrInvalidCredentials is returned on a failed login. It is the same
	// error whether the username is unknown or the password mismatched.
	ErrInvalidCredentials = errors.New("anonbox: invalid credentials")

	// ErrUnauthorized is returned when a protected read carries no session
	// credential.
	ErrUnauthorized = errors.New("anonbox: unauthorized")

	// The generic per-operation failures below wrap store transport errors
	// on the way out. None of them is retried automatically.
	ErrRegistrationFailed = errors.New("anonbox: registration failed")
	ErrLoginFailed        = errors.New("anonbox: login failed")
	ErrSendFailed         = errors.New("anonbox: could not send message")
	ErrFetchFailed        = errors.New("anonbox: fetch failed")
)
