// Package di はインフラ依存の実装選択をまとめます。
package di

import (
	"log/slog"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	authadapters "devport_backend/internal/feature/auth/adapters"
	"devport_backend/internal/feature/auth/usecase"
	"devport_backend/internal/platform/resettoken"
)

// NewResetTokenRepository creates a ResetTokenRepository implementation.
// If Redis is available, it returns a Redis-backed implementation whose keys
// expire with the tokens. Otherwise, it falls back to PostgreSQL.
func NewResetTokenRepository(rdb *redis.Client, db *gorm.DB) usecase.ResetTokenRepository {
	if rdb != nil {
		slog.Info("reset tokens stored in Redis")
		return resettoken.NewResetTokenRedis(rdb, "reset")
	}
	slog.Info("reset tokens stored in PostgreSQL")
	return authadapters.NewResetTokenRepository(db)
}
