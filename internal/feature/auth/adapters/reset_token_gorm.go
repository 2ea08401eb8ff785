package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"devport_backend/internal/feature/auth/domain/entity"
	"devport_backend/internal/feature/auth/usecase"
)

// resetTokenGorm is a SQL implementation of the ResetTokenRepository interface.
type resetTokenGorm struct {
	db *gorm.DB
}

// Compile-time check to ensure resetTokenGorm implements ResetTokenRepository.
var _ usecase.ResetTokenRepository = (*resetTokenGorm)(nil)

// NewResetTokenRepository creates a new instance of resetTokenGorm.
func NewResetTokenRepository(db *gorm.DB) *resetTokenGorm {
	return &resetTokenGorm{db: db}
}

// Create persists a new reset token.
func (r *resetTokenGorm) Create(ctx context.Context, token *entity.PasswordResetToken) error {
	model := ResetTokenModelFromEntity(token)
	if model.CreatedAt.IsZero() {
		model.CreatedAt = time.Now()
	}
	return r.db.WithContext(ctx).Create(model).Error
}

// Find retrieves the unconsumed row for userID+token.
func (r *resetTokenGorm) Find(ctx context.Context, userID uint, token string) (*entity.PasswordResetToken, error) {
	var model ResetTokenModel
	if err := r.db.WithContext(ctx).
		Where("token_hash = ? AND user_id = ?", HashToken(token), userID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrResetTokenNotFound
		}
		return nil, err
	}
	return model.ToEntity(token), nil
}

// Consume deletes the row for userID+token in a single statement. The row count
// tells which of several concurrent callers won.
func (r *resetTokenGorm) Consume(ctx context.Context, userID uint, token string) error {
	result := r.db.WithContext(ctx).
		Where("token_hash = ? AND user_id = ?", HashToken(token), userID).
		Delete(&ResetTokenModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrResetTokenNotFound
	}
	return nil
}

// Delete removes the row for token.
func (r *resetTokenGorm) Delete(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).
		Where("token_hash = ?", HashToken(token)).
		Delete(&ResetTokenModel{}).Error
}

// DeleteExpired removes all expired rows and returns how many were deleted.
func (r *resetTokenGorm) DeleteExpired(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at < ?", time.Now()).
		Delete(&ResetTokenModel{})
	return result.RowsAffected, result.Error
}
