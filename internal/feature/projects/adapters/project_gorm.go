// Package adapters はprojectsフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"devport_backend/internal/feature/projects/domain/entity"
	"devport_backend/internal/feature/projects/usecase"
)

type projectGorm struct {
	db *gorm.DB
}

var _ usecase.ProjectRepository = (*projectGorm)(nil)

// NewProjectRepository は指定されたgorm.DB接続でprojectGormの新しいインスタンスを生成します。
func NewProjectRepository(db *gorm.DB) *projectGorm {
	return &projectGorm{db: db}
}

func (r *projectGorm) ListByUser(ctx context.Context, userID uint) ([]entity.Project, error) {
	var rows []ProjectModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Project, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.toEntity())
	}
	return out, nil
}

func (r *projectGorm) FindByID(ctx context.Context, id uint) (*entity.Project, error) {
	var m ProjectModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrProjectNotFound
		}
		return nil, err
	}
	p := m.toEntity()
	return &p, nil
}

// Create inserts p and writes back the generated ID and timestamps.
func (r *projectGorm) Create(ctx context.Context, p *entity.Project) error {
	m := toModel(p)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*p = m.toEntity()
	return nil
}

// Update overwrites the editable columns of the project owned by p.UserID.
func (r *projectGorm) Update(ctx context.Context, p *entity.Project) error {
	res := r.db.WithContext(ctx).
		Model(&ProjectModel{}).
		Where("id = ? AND user_id = ?", p.ID, p.UserID).
		Updates(map[string]any{
			"name":           p.Name,
			"description":    p.Description,
			"repository_url": p.RepositoryURL,
			"demo_url":       p.DemoURL,
			"image":          p.Image,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrProjectNotFound
	}
	return nil
}

func (r *projectGorm) Delete(ctx context.Context, userID, id uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&ProjectModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrProjectNotFound
	}
	return nil
}
