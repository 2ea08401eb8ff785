// Package adapters はprofileフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	authentity "devport_backend/internal/feature/auth/domain/entity"
	"devport_backend/internal/feature/profile/domain/entity"
	"devport_backend/internal/feature/profile/usecase"
)

// profileGorm はusersテーブル上のプロフィール列を読み書きします。
type profileGorm struct {
	db *gorm.DB
}

var _ usecase.ProfileRepository = (*profileGorm)(nil)

// NewProfileRepository は指定されたgorm.DB接続でprofileGormの新しいインスタンスを生成します。
func NewProfileRepository(db *gorm.DB) *profileGorm {
	return &profileGorm{db: db}
}

func (r *profileGorm) FindByID(ctx context.Context, id uint) (*entity.Profile, error) {
	var u authentity.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrProfileNotFound
		}
		return nil, err
	}
	return &entity.Profile{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		JobTitle:      u.JobTitle,
		Bio:           u.Bio,
		ProfileImage:  u.ProfileImage,
		EmailVerified: u.IsEmailVerified(),
	}, nil
}

// Update writes only the non-empty fields of upd.
func (r *profileGorm) Update(ctx context.Context, id uint, upd entity.Update) error {
	// struct指定のUpdatesはゼロ値のフィールドを無視する
	result := r.db.WithContext(ctx).
		Model(&authentity.User{}).
		Where("id = ?", id).
		Updates(authentity.User{
			Name:         upd.Name,
			JobTitle:     upd.JobTitle,
			Bio:          upd.Bio,
			ProfileImage: upd.ProfileImage,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrProfileNotFound
	}
	return nil
}
