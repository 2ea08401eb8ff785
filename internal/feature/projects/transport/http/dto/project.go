// Package dto defines data transfer objects for the projects feature's HTTP transport layer.
package dto

import (
	"time"

	"devport_backend/internal/feature/projects/domain/entity"
)

// CreateProjectReq represents the request body for POST /user/projects.
type CreateProjectReq struct {
	Name          string `json:"name" binding:"required,max=255"`
	Description   string `json:"description" binding:"required"`
	RepositoryURL string `json:"repositoryUrl" binding:"required,url"`
	DemoURL       string `json:"demoUrl" binding:"omitempty,url"`
	Image         string `json:"image" binding:"omitempty,url"`
}

// UpdateProjectReq represents the request body for PUT /user/projects/:id.
// Omitted fields keep their current value.
type UpdateProjectReq struct {
	Name          *string `json:"name" binding:"omitempty,max=255"`
	Description   *string `json:"description"`
	RepositoryURL *string `json:"repositoryUrl" binding:"omitempty,url"`
	DemoURL       *string `json:"demoUrl" binding:"omitempty,url"`
	Image         *string `json:"image" binding:"omitempty,url"`
}

// ProjectItem is a project in API responses.
type ProjectItem struct {
	ID            uint      `json:"id"`
	UserID        uint      `json:"userId"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	RepositoryURL string    `json:"repositoryUrl"`
	DemoURL       string    `json:"demoUrl,omitempty"`
	Image         string    `json:"image,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// FromEntity converts a domain project into its response form.
func FromEntity(p entity.Project) ProjectItem {
	return ProjectItem{
		ID:            p.ID,
		UserID:        p.UserID,
		Name:          p.Name,
		Description:   p.Description,
		RepositoryURL: p.RepositoryURL,
		DemoURL:       p.DemoURL,
		Image:         p.Image,
		CreatedAt:     p.CreatedAt,
	}
}

// FromEntities converts a list, never returning nil.
func FromEntities(ps []entity.Project) []ProjectItem {
	out := make([]ProjectItem, 0, len(ps))
	for _, p := range ps {
		out = append(out, FromEntity(p))
	}
	return out
}
