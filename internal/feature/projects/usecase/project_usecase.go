// Package usecase implements the business logic for portfolio projects.
package usecase

import (
	"context"
	"fmt"
	"strings"

	"devport_backend/internal/feature/projects/domain/entity"
)

// ProjectRepository abstracts the persistence layer for projects.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type ProjectRepository interface {
	ListByUser(ctx context.Context, userID uint) ([]entity.Project, error)
	FindByID(ctx context.Context, id uint) (*entity.Project, error)
	Create(ctx context.Context, p *entity.Project) error
	Update(ctx context.Context, p *entity.Project) error
	// Delete removes the project only if userID owns it; otherwise ErrProjectNotFound.
	Delete(ctx context.Context, userID, id uint) error
}

// ProjectInput carries the fields of a create request.
type ProjectInput struct {
	Name          string
	Description   string
	RepositoryURL string
	DemoURL       string
	Image         string
}

// ProjectPatch carries a partial update. Nil fields keep their current value.
type ProjectPatch struct {
	Name          *string
	Description   *string
	RepositoryURL *string
	DemoURL       *string
	Image         *string
}

// ProjectUsecase provides business logic for project operations.
type ProjectUsecase struct {
	repo ProjectRepository
}

// NewProjectUsecase creates a new ProjectUsecase with the given repository.
func NewProjectUsecase(r ProjectRepository) *ProjectUsecase {
	return &ProjectUsecase{repo: r}
}

// List returns the projects owned by userID, newest first.
func (u *ProjectUsecase) List(ctx context.Context, userID uint) ([]entity.Project, error) {
	return u.repo.ListByUser(ctx, userID)
}

// Create stores a new project for userID.
func (u *ProjectUsecase) Create(ctx context.Context, userID uint, in ProjectInput) (*entity.Project, error) {
	p := &entity.Project{
		UserID:        userID,
		Name:          strings.TrimSpace(in.Name),
		Description:   strings.TrimSpace(in.Description),
		RepositoryURL: strings.TrimSpace(in.RepositoryURL),
		DemoURL:       strings.TrimSpace(in.DemoURL),
		Image:         strings.TrimSpace(in.Image),
	}
	if err := validateProject(p); err != nil {
		return nil, err
	}
	if err := u.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return p, nil
}

// Update applies patch to a project owned by userID.
func (u *ProjectUsecase) Update(ctx context.Context, userID, id uint, patch ProjectPatch) (*entity.Project, error) {
	p, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// 他人のプロジェクトは存在しないものとして扱う
	if !p.OwnedBy(userID) {
		return nil, ErrProjectNotFound
	}

	apply(&p.Name, patch.Name)
	apply(&p.Description, patch.Description)
	apply(&p.RepositoryURL, patch.RepositoryURL)
	apply(&p.DemoURL, patch.DemoURL)
	apply(&p.Image, patch.Image)

	if err := validateProject(p); err != nil {
		return nil, err
	}
	if err := u.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes a project owned by userID.
func (u *ProjectUsecase) Delete(ctx context.Context, userID, id uint) error {
	return u.repo.Delete(ctx, userID, id)
}

func apply(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

func validateProject(p *entity.Project) error {
	if p.Name == "" || p.Description == "" || p.RepositoryURL == "" {
		return ErrInvalidProject
	}
	return nil
}
