package adapters

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"devport_backend/internal/feature/auth/domain/entity"
)

// ResetTokenModel is the GORM model for the password_reset_tokens table.
// Only a SHA-256 digest of the token is stored.
type ResetTokenModel struct {
	TokenHash string    `gorm:"primaryKey;size:64"`
	UserID    uint      `gorm:"index;not null"`
	CreatedAt time.Time `gorm:"not null"`
	ExpiresAt time.Time `gorm:"index;not null"`
}

// TableName returns the table name for GORM.
func (ResetTokenModel) TableName() string {
	return "password_reset_tokens"
}

// HashToken returns the hex SHA-256 digest under which a token is stored.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// ToEntity converts the GORM model to a domain entity. The raw token is not
// recoverable from the digest and is supplied by the caller.
func (m *ResetTokenModel) ToEntity(token string) *entity.PasswordResetToken {
	return &entity.PasswordResetToken{
		UserID:    m.UserID,
		Token:     token,
		CreatedAt: m.CreatedAt,
		ExpiresAt: m.ExpiresAt,
	}
}

// ResetTokenModelFromEntity converts a domain entity to a GORM model.
func ResetTokenModelFromEntity(t *entity.PasswordResetToken) *ResetTokenModel {
	return &ResetTokenModel{
		TokenHash: HashToken(t.Token),
		UserID:    t.UserID,
		CreatedAt: t.CreatedAt,
		ExpiresAt: t.ExpiresAt,
	}
}
