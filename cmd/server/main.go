package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"devport_backend/internal/app/config"
	"devport_backend/internal/app/di"
	"devport_backend/internal/app/router"
	authadapters "devport_backend/internal/feature/auth/adapters"
	authhandler "devport_backend/internal/feature/auth/transport/handler"
	authusecase "devport_backend/internal/feature/auth/usecase"
	contacthandler "devport_backend/internal/feature/contact/transport/handler"
	contactusecase "devport_backend/internal/feature/contact/usecase"
	profileadapters "devport_backend/internal/feature/profile/adapters"
	profilehandler "devport_backend/internal/feature/profile/transport/handler"
	profileusecase "devport_backend/internal/feature/profile/usecase"
	projectadapters "devport_backend/internal/feature/projects/adapters"
	projecthandler "devport_backend/internal/feature/projects/transport/handler"
	projectusecase "devport_backend/internal/feature/projects/usecase"
	"devport_backend/internal/platform/cache"
	platformdb "devport_backend/internal/platform/db"
	jwtmw "devport_backend/internal/platform/jwt"
	"devport_backend/internal/platform/logger"
	"devport_backend/internal/platform/mail"
	infraredis "devport_backend/internal/platform/redis"
	"devport_backend/internal/shared/ratelimiter"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	slog.SetDefault(logger.New(os.Stdout, cfg.LogFormat, level))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// db
	db, err := platformdb.OpenDB(platformdb.Config{
		Host:           cfg.DBHost,
		Port:           cfg.DBPort,
		User:           cfg.DBUser,
		Password:       cfg.DBPassword,
		Name:           cfg.DBName,
		SSLMode:        cfg.DBSSLMode,
		ConnectTimeout: cfg.DBConnectTimeout,
	})
	if err != nil {
		return err
	}
	if cfg.RunMigrations {
		if err := platformdb.Migrate(db); err != nil {
			return err
		}
		slog.Info("database migrated")
	}

	// Redis（未設定・接続失敗時はキャッシュなし＋SQLのリセットトークンストアで動作）
	var rdb *redisv9.Client
	if cfg.RedisEnabled() {
		tmp, err := infraredis.NewRedisClient(ctx, infraredis.Config{
			Addr:     cfg.RedisAddr(),
			Password: cfg.RedisPassword,
		})
		if err != nil {
			slog.Warn("Redis unavailable. Running without cache.", "error", err)
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("failed to close Redis client", "error", err)
				}
			}()
		}
	}

	issuer, err := jwtmw.NewIssuer(cfg.JWTSecret, jwtmw.TTLs{
		Session:           cfg.SessionTTL,
		PasswordReset:     cfg.PasswordResetTTL,
		EmailVerification: cfg.EmailVerificationTTL,
	})
	if err != nil {
		return err
	}

	// Mail
	smtpSender, err := mail.NewSMTPSender(mail.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	})
	if err != nil {
		return err
	}
	asyncMailer := mail.NewAsyncMailer(smtpSender)

	// Repository
	userRepo := authadapters.NewUserRepository(db)
	resetTokenRepo := di.NewResetTokenRepository(rdb, db)
	profileRepo := profileadapters.NewProfileRepository(db)
	projectRepo := cache.NewCachingProjectRepository(rdb, cfg.PortfolioCacheTTL, projectadapters.NewProjectRepository(db), "projects")

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, resetTokenRepo, issuer, asyncMailer, authusecase.Config{
		FrontendURL:          cfg.FrontendURL,
		SilentForgotPassword: cfg.ForgotPasswordSilent,
	})
	profileUC := profileusecase.NewProfileUsecase(profileRepo)
	projectUC := projectusecase.NewProjectUsecase(projectRepo)
	contactUC := contactusecase.NewContactUsecase(profileRepo, smtpSender)

	// ルータ生成
	engine := router.NewRouter(router.Config{
		BasePath:       cfg.APIBasePath,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Production:     cfg.IsProduction(),
		Auth:           authhandler.NewAuthHandler(authUC),
		Profile:        profilehandler.NewProfileHandler(profileUC),
		Projects:       projecthandler.NewProjectHandler(projectUC),
		Contact:        contacthandler.NewContactHandler(contactUC),
		Verifier:       issuer,
		Limiter:        ratelimiter.NewKeyedLimiter(cfg.AuthRateLimit, cfg.AuthRateBurst),
		Ping:           func(ctx context.Context) error { return platformdb.Ping(ctx, db) },
	})

	go purgeResetTokens(ctx, authUC, cfg.ResetTokenPurgeInterval)

	srv := &http.Server{
		Addr:              cfg.AppAddr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", cfg.AppAddr, "env", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		slog.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http shutdown failed", "error", err)
	}
	if err := asyncMailer.Close(shutdownCtx); err != nil {
		slog.Warn("pending emails were not delivered", "error", err)
	}
	return nil
}

// purgeResetTokens deletes expired reset-token rows every interval until ctx ends.
func purgeResetTokens(ctx context.Context, uc interface {
	PurgeExpiredResetTokens(ctx context.Context) (int64, error)
}, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := uc.PurgeExpiredResetTokens(ctx)
			if err != nil {
				slog.Error("failed to purge reset tokens", "error", err)
				continue
			}
			if n > 0 {
				slog.Info("purged expired reset tokens", "count", n)
			}
		}
	}
}
