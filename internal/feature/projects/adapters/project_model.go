package adapters

import (
	"time"

	"devport_backend/internal/feature/projects/domain/entity"
)

// ProjectModel is the GORM row for a project.
type ProjectModel struct {
	ID            uint   `gorm:"primaryKey"`
	UserID        uint   `gorm:"not null;index"`
	Name          string `gorm:"size:255;not null"`
	Description   string `gorm:"type:text;not null"`
	RepositoryURL string `gorm:"size:2048;not null"`
	DemoURL       string `gorm:"size:2048"`
	Image         string `gorm:"size:2048"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName overrides the default table name.
func (ProjectModel) TableName() string {
	return "projects"
}

func toModel(e *entity.Project) ProjectModel {
	return ProjectModel{
		ID:            e.ID,
		UserID:        e.UserID,
		Name:          e.Name,
		Description:   e.Description,
		RepositoryURL: e.RepositoryURL,
		DemoURL:       e.DemoURL,
		Image:         e.Image,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func (m ProjectModel) toEntity() entity.Project {
	return entity.Project{
		ID:            m.ID,
		UserID:        m.UserID,
		Name:          m.Name,
		Description:   m.Description,
		RepositoryURL: m.RepositoryURL,
		DemoURL:       m.DemoURL,
		Image:         m.Image,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
