// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"devport_backend/internal/feature/projects/domain/entity"
	"devport_backend/internal/feature/projects/usecase"
)

// CachingProjectRepository decorates a ProjectRepository with Redis caching of
// per-user project lists. Public portfolio pages read these lists far more
// often than owners edit them.
type CachingProjectRepository struct {
	inner     usecase.ProjectRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.ProjectRepository = (*CachingProjectRepository)(nil)

// NewCachingProjectRepository decorates a ProjectRepository with Redis caching.
// If ttl is 0, it defaults to 10 minutes. If namespace is empty, it uses "projects".
// A nil rdb makes the decorator a pass-through.
func NewCachingProjectRepository(rdb *redis.Client, ttl time.Duration, inner usecase.ProjectRepository, namespace string) *CachingProjectRepository {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	if namespace == "" {
		namespace = "projects"
	}
	return &CachingProjectRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: safe(namespace),
	}
}

// ListByUser returns the user's projects, checking cache first then falling back to the database.
func (c *CachingProjectRepository) ListByUser(ctx context.Context, userID uint) ([]entity.Project, error) {
	if c.rdb == nil {
		return c.inner.ListByUser(ctx, userID)
	}

	key := c.userKey(userID)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Project
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := c.inner.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return out, nil
}

// FindByID is not cached; ownership checks must see the current row.
func (c *CachingProjectRepository) FindByID(ctx context.Context, id uint) (*entity.Project, error) {
	return c.inner.FindByID(ctx, id)
}

// Create inserts the project and invalidates the owner's list.
func (c *CachingProjectRepository) Create(ctx context.Context, p *entity.Project) error {
	if err := c.inner.Create(ctx, p); err != nil {
		return err
	}
	c.invalidate(ctx, p.UserID)
	return nil
}

// Update writes the project and invalidates the owner's list.
func (c *CachingProjectRepository) Update(ctx context.Context, p *entity.Project) error {
	if err := c.inner.Update(ctx, p); err != nil {
		return err
	}
	c.invalidate(ctx, p.UserID)
	return nil
}

// Delete removes the project and invalidates the owner's list.
func (c *CachingProjectRepository) Delete(ctx context.Context, userID, id uint) error {
	if err := c.inner.Delete(ctx, userID, id); err != nil {
		return err
	}
	c.invalidate(ctx, userID)
	return nil
}

// invalidate is best effort: a failed delete leaves a stale list until TTL.
func (c *CachingProjectRepository) invalidate(ctx context.Context, userID uint) {
	if c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, c.userKey(userID)).Err(); err != nil {
		slog.Warn("project cache invalidation failed", "user_id", userID, "error", err)
	}
}

// userKey generates the cache key for a user's project list.
func (c *CachingProjectRepository) userKey(userID uint) string {
	return fmt.Sprintf("%s:user:%d", c.namespace, userID)
}
