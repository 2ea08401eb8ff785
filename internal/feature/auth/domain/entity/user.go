// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered account that owns a portfolio.
// It contains authentication credentials and the public profile fields.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`

	// Email is the user's email address used for authentication.
	// It is stored lower-cased and must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Password is the bcrypt hash of the user's password.
	// This never stores plaintext passwords.
	Password string `gorm:"size:255;not null"`

	// Name is the display name shown on the portfolio page.
	Name string `gorm:"size:255;not null"`

	// JobTitle, Bio and ProfileImage are optional profile fields.
	JobTitle     string `gorm:"size:255"`
	Bio          string `gorm:"type:text"`
	ProfileImage string `gorm:"size:1024"`

	// EmailVerifiedAt is set once the user follows the verification link.
	EmailVerifiedAt *time.Time

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time
}

// IsEmailVerified reports whether the email verification flow has completed.
func (u *User) IsEmailVerified() bool {
	return u.EmailVerifiedAt != nil
}
