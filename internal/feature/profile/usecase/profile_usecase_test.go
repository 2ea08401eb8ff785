package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devport_backend/internal/feature/profile/domain/entity"
)

// memProfileRepository はテスト用のインメモリ実装です。
type memProfileRepository struct {
	profiles map[uint]entity.Profile
	updates  int
}

func (m *memProfileRepository) FindByID(ctx context.Context, id uint) (*entity.Profile, error) {
	p, ok := m.profiles[id]
	if !ok {
		return nil, ErrProfileNotFound
	}
	return &p, nil
}

func (m *memProfileRepository) Update(ctx context.Context, id uint, upd entity.Update) error {
	p, ok := m.profiles[id]
	if !ok {
		return ErrProfileNotFound
	}
	m.updates++
	if upd.Name != "" {
		p.Name = upd.Name
	}
	if upd.JobTitle != "" {
		p.JobTitle = upd.JobTitle
	}
	if upd.Bio != "" {
		p.Bio = upd.Bio
	}
	if upd.ProfileImage != "" {
		p.ProfileImage = upd.ProfileImage
	}
	m.profiles[id] = p
	return nil
}

func newRepo() *memProfileRepository {
	return &memProfileRepository{profiles: map[uint]entity.Profile{
		1: {ID: 1, Name: "Alice", Email: "alice@example.com", JobTitle: "Engineer", EmailVerified: true},
	}}
}

func TestProfileUsecase_Get(t *testing.T) {
	uc := NewProfileUsecase(newRepo())

	p, err := uc.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", p.Email)

	_, err = uc.Get(context.Background(), 2)
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

// TestProfileUsecase_GetPublic は公開プロフィールにメールアドレスが含まれないことを検証します。
func TestProfileUsecase_GetPublic(t *testing.T) {
	uc := NewProfileUsecase(newRepo())

	p, err := uc.GetPublic(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, p.Email)
	assert.Equal(t, "Alice", p.Name)
}

func TestProfileUsecase_Update(t *testing.T) {
	repo := newRepo()
	uc := NewProfileUsecase(repo)

	p, err := uc.Update(context.Background(), 1, entity.Update{JobTitle: "  Staff Engineer "})
	require.NoError(t, err)
	assert.Equal(t, "Staff Engineer", p.JobTitle)
	assert.Equal(t, "Alice", p.Name)

	// 空の更新はリポジトリに書き込まない
	_, err = uc.Update(context.Background(), 1, entity.Update{Name: "   "})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.updates)

	_, err = uc.Update(context.Background(), 9, entity.Update{Name: "x"})
	assert.ErrorIs(t, err, ErrProfileNotFound)
}
