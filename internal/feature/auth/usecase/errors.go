// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by email or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists is returned when attempting to create a user with an email that already exists.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrInvalidCredentials is returned by Login for an unknown email and for a wrong password alike.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidOrExpiredToken is returned when a reset or verification token fails
	// signature, expiry, purpose or single-use checks.
	ErrInvalidOrExpiredToken = errors.New("invalid or expired token")

	// ErrInvalidPassword is returned when a new password does not meet the password policy.
	ErrInvalidPassword = errors.New("invalid password")

	// ErrInvalidUserData is returned when registration data is incomplete.
	ErrInvalidUserData = errors.New("invalid user data")

	// ErrResetTokenNotFound is returned by a ResetTokenRepository when no matching
	// unconsumed reset token exists.
	ErrResetTokenNotFound = errors.New("reset token not found")
)
