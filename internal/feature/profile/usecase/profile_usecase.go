// Package usecase implements the business logic for portfolio profiles.
package usecase

import (
	"context"
	"errors"
	"strings"

	"devport_backend/internal/feature/profile/domain/entity"
)

// ErrProfileNotFound is returned when no user has the requested ID.
var ErrProfileNotFound = errors.New("user not found")

// ProfileRepository abstracts profile reads and writes on the users table.
type ProfileRepository interface {
	FindByID(ctx context.Context, id uint) (*entity.Profile, error)
	Update(ctx context.Context, id uint, upd entity.Update) error
}

// ProfileUsecase provides business logic for profile operations.
type ProfileUsecase struct {
	repo ProfileRepository
}

// NewProfileUsecase creates a new ProfileUsecase with the given repository.
func NewProfileUsecase(r ProfileRepository) *ProfileUsecase {
	return &ProfileUsecase{repo: r}
}

// Get returns the full profile of id, including the email address.
func (u *ProfileUsecase) Get(ctx context.Context, id uint) (*entity.Profile, error) {
	return u.repo.FindByID(ctx, id)
}

// GetPublic returns the profile of id without private fields.
func (u *ProfileUsecase) GetPublic(ctx context.Context, id uint) (*entity.Profile, error) {
	p, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Email = ""
	p.EmailVerified = false
	return p, nil
}

// Update applies the non-empty fields of upd and returns the new profile.
func (u *ProfileUsecase) Update(ctx context.Context, id uint, upd entity.Update) (*entity.Profile, error) {
	upd = entity.Update{
		Name:         strings.TrimSpace(upd.Name),
		JobTitle:     strings.TrimSpace(upd.JobTitle),
		Bio:          strings.TrimSpace(upd.Bio),
		ProfileImage: strings.TrimSpace(upd.ProfileImage),
	}
	if !upd.IsEmpty() {
		if err := u.repo.Update(ctx, id, upd); err != nil {
			return nil, err
		}
	}
	return u.repo.FindByID(ctx, id)
}
