// Package db opens the PostgreSQL connection and applies schema migrations.
package db

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	authadapters "devport_backend/internal/feature/auth/adapters"
	"devport_backend/internal/feature/auth/domain/entity"
	projectadapters "devport_backend/internal/feature/projects/adapters"
)

// defaultRetryInterval は接続リトライの間隔です。
const defaultRetryInterval = 3 * time.Second

// Config はデータベース接続設定です。
type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string

	// ConnectTimeout はリトライを諦めるまでの時間です。
	ConnectTimeout time.Duration
	// RetryInterval が0の場合は defaultRetryInterval を使用します。
	RetryInterval time.Duration
}

// Opener opens a gorm connection for dsn.
type Opener func(dsn string) (*gorm.DB, error)

// BuildDSN はPostgreSQLのkey=value形式のDSN文字列を生成します。
func BuildDSN(cfg Config) string {
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	parts := []string{
		"host=" + quoteDSNValue(cfg.Host),
		"port=" + quoteDSNValue(cfg.Port),
		"user=" + quoteDSNValue(cfg.User),
		"password=" + quoteDSNValue(cfg.Password),
		"dbname=" + quoteDSNValue(cfg.Name),
		"sslmode=" + quoteDSNValue(sslMode),
		"TimeZone=UTC",
	}
	return strings.Join(parts, " ")
}

// quoteDSNValue quotes values containing spaces or quotes, as libpq expects.
func quoteDSNValue(v string) string {
	if v != "" && !strings.ContainsAny(v, ` '\`) {
		return v
	}
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	return "'" + r.Replace(v) + "'"
}

// ConnectWithRetry は接続に成功するか timeout を超えるまで open を繰り返します。
func ConnectWithRetry(dsn string, timeout, interval time.Duration, open Opener) (*gorm.DB, error) {
	if interval <= 0 {
		interval = defaultRetryInterval
	}
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().Add(interval).After(deadline) {
			return nil, fmt.Errorf("db connect failed after %s: %w", timeout, err)
		}
		slog.Warn("DB connect failed, retrying", "error", err, "retry_in", interval)
		time.Sleep(interval)
	}
}

// postgresOpener opens a PostgreSQL connection with driver errors translated
// into gorm errors (e.g. gorm.ErrDuplicatedKey).
func postgresOpener(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
}

// OpenDB はPostgreSQLへ接続します。
func OpenDB(cfg Config) (*gorm.DB, error) {
	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	db, err := ConnectWithRetry(BuildDSN(cfg), timeout, cfg.RetryInterval, postgresOpener)
	if err != nil {
		return nil, err
	}
	slog.Info("DB connection successful", "host", cfg.Host, "name", cfg.Name)
	return db, nil
}

// Migrate はアプリケーションのテーブルを作成・更新します。
func Migrate(db *gorm.DB) error {
	// マイグレーション（User, ResetToken, Project）
	if err := db.AutoMigrate(
		&entity.User{},
		&authadapters.ResetTokenModel{},
		&projectadapters.ProjectModel{},
	); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}

// Ping checks that the underlying connection pool can reach the database.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
