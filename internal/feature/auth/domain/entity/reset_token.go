package entity

import "time"

// PasswordResetToken tracks one outstanding password-reset request.
// The signed token carries its own expiry; the stored row only records that the
// token has not been consumed yet.
type PasswordResetToken struct {
	UserID    uint      // Owning user ID
	Token     string    // Signed reset token as sent to the user
	ExpiresAt time.Time // Copy of the token expiry, used for purging stale rows only
	CreatedAt time.Time // Creation time
}

// IsExpired returns true if the token has passed its expiration time.
func (t *PasswordResetToken) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}
