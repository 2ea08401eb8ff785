package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"devport_backend/internal/feature/auth/domain/entity"
	jwtmw "devport_backend/internal/platform/jwt"
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーをストレージに永続化します。
	// 同じメールアドレスのユーザーが既に存在する場合、ErrEmailAlreadyExistsを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail は指定されたメールアドレスに一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID は指定されたIDに一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// UpdatePassword はパスワードハッシュを置き換えます。
	UpdatePassword(ctx context.Context, id uint, passwordHash string) error

	// MarkEmailVerified はメール認証日時を記録します。既に認証済みの場合は何もしません。
	MarkEmailVerified(ctx context.Context, id uint, at time.Time) error
}

// ResetTokenRepository tracks which password-reset tokens are still unconsumed.
type ResetTokenRepository interface {
	// Create stores a newly issued reset token.
	Create(ctx context.Context, token *entity.PasswordResetToken) error

	// Find returns the stored row for userID+token, or ErrResetTokenNotFound.
	Find(ctx context.Context, userID uint, token string) (*entity.PasswordResetToken, error)

	// Consume atomically finds and deletes the row for userID+token.
	// Of several concurrent callers at most one succeeds; the rest get ErrResetTokenNotFound.
	Consume(ctx context.Context, userID uint, token string) error

	// Delete removes the row for token regardless of owner.
	Delete(ctx context.Context, token string) error

	// DeleteExpired removes rows whose embedded expiry has passed.
	DeleteExpired(ctx context.Context) (int64, error)
}

// TokenIssuer mints and verifies purpose-tagged signed tokens.
type TokenIssuer interface {
	Issue(subjectID uint, purpose jwtmw.Purpose) (string, time.Time, error)
	Verify(token string, expected jwtmw.Purpose) (uint, error)
}

// Mailer delivers an HTML email. Implementations used here return without
// waiting for delivery.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// Config holds the auth usecase settings.
type Config struct {
	// FrontendURL is the base URL used in verification and reset links.
	FrontendURL string

	// SilentForgotPassword makes ForgotPassword succeed for unknown emails.
	SilentForgotPassword bool

	// HashCost is the bcrypt cost. Zero means bcrypt.DefaultCost.
	HashCost int
}

// RegisterResult is returned by Register.
type RegisterResult struct {
	User  *entity.User
	Token string
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users       UserRepository
	resetTokens ResetTokenRepository
	tokens      TokenIssuer
	mailer      Mailer
	cfg         Config
	now         func() time.Time
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, resetTokens ResetTokenRepository, tokens TokenIssuer, mailer Mailer, cfg Config) *authUsecase {
	if cfg.HashCost == 0 {
		cfg.HashCost = bcrypt.DefaultCost
	}
	return &authUsecase{
		users:       users,
		resetTokens: resetTokens,
		tokens:      tokens,
		mailer:      mailer,
		cfg:         cfg,
		now:         time.Now,
	}
}

// normalizeEmail makes email comparison case-insensitive.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register はハッシュ化されたパスワードで新規ユーザーを登録し、セッショントークンを返します。
// 認証メールの送信失敗はアカウント作成をロールバックしません。
func (u *authUsecase) Register(ctx context.Context, name, email, password string) (*RegisterResult, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || email == "" {
		return nil, ErrInvalidUserData
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	// 既存ユーザーの確認（一意制約はストレージ側でも保証される）
	if _, err := u.users.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailAlreadyExists
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	hashed, err := hashPassword(password, u.cfg.HashCost)
	if err != nil {
		return nil, err
	}
	user := &entity.User{Name: name, Email: email, Password: hashed}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}

	token, _, err := u.tokens.Issue(user.ID, jwtmw.PurposeSession)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	u.sendVerificationEmail(ctx, user)

	return &RegisterResult{User: user, Token: token}, nil
}

func (u *authUsecase) sendVerificationEmail(ctx context.Context, user *entity.User) {
	token, _, err := u.tokens.Issue(user.ID, jwtmw.PurposeEmailVerification)
	if err != nil {
		slog.Error("failed to issue verification token", "error", err, "user_id", user.ID)
		return
	}
	body, err := renderEmail(verificationEmailTmpl, map[string]string{
		"Name": user.Name,
		"URL":  frontendLink(u.cfg.FrontendURL, "verify-email", token),
	})
	if err != nil {
		slog.Error("failed to render verification email", "error", err, "user_id", user.ID)
		return
	}
	if err := u.mailer.Send(ctx, user.Email, verificationSubject, body); err != nil {
		slog.Warn("failed to dispatch verification email", "error", err, "user_id", user.ID)
	}
}

// Login はユーザーを認証し、成功時にセッショントークンを返します。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもbcrypt比較を実行します。
func (u *authUsecase) Login(ctx context.Context, email, password string) (string, error) {
	user, err := u.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	// ユーザーが存在しない場合のタイミング攻撃緩和用ダミーハッシュ
	passwordHash := dummyHash
	if err == nil {
		passwordHash = user.Password
	}
	ok := verifyPassword(passwordHash, password)

	// ユーザー未検出またはパスワード不一致の場合、同一のエラーを返す
	if err != nil || !ok {
		return "", ErrInvalidCredentials
	}

	token, _, err := u.tokens.Issue(user.ID, jwtmw.PurposeSession)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

// ForgotPassword issues a one-hour reset token, stores it as unconsumed and
// mails a reset link. Several outstanding tokens per user are allowed.
func (u *authUsecase) ForgotPassword(ctx context.Context, email string) error {
	user, err := u.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			if u.cfg.SilentForgotPassword {
				return nil
			}
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to look up user: %w", err)
	}

	token, expiresAt, err := u.tokens.Issue(user.ID, jwtmw.PurposePasswordReset)
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	if err := u.resetTokens.Create(ctx, &entity.PasswordResetToken{
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: expiresAt,
		CreatedAt: u.now(),
	}); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	body, err := renderEmail(resetEmailTmpl, map[string]string{
		"URL": frontendLink(u.cfg.FrontendURL, "reset-password", token),
	})
	if err != nil {
		slog.Error("failed to render reset email", "error", err, "user_id", user.ID)
		return nil
	}
	if err := u.mailer.Send(ctx, user.Email, resetSubject, body); err != nil {
		slog.Warn("failed to dispatch reset email", "error", err, "user_id", user.ID)
	}
	return nil
}

// ResetPassword sets a new password using a reset token. The token is consumed
// atomically before the password is written, so a token can succeed at most once
// even under concurrent use.
func (u *authUsecase) ResetPassword(ctx context.Context, token, newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	userID, err := u.tokens.Verify(token, jwtmw.PurposePasswordReset)
	if err != nil {
		slog.Debug("reset token rejected", "error", err)
		return ErrInvalidOrExpiredToken
	}

	hashed, err := hashPassword(newPassword, u.cfg.HashCost)
	if err != nil {
		return err
	}

	if err := u.resetTokens.Consume(ctx, userID, token); err != nil {
		if errors.Is(err, ErrResetTokenNotFound) {
			return ErrInvalidOrExpiredToken
		}
		return fmt.Errorf("failed to consume reset token: %w", err)
	}

	if err := u.users.UpdatePassword(ctx, userID, hashed); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return ErrInvalidOrExpiredToken
		}
		// The token is already spent; the user has to request a new one.
		slog.Error("password update failed after reset token was consumed", "error", err, "user_id", userID)
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// VerifyEmail marks the token's user as verified. Repeating it is harmless.
func (u *authUsecase) VerifyEmail(ctx context.Context, token string) error {
	userID, err := u.tokens.Verify(token, jwtmw.PurposeEmailVerification)
	if err != nil {
		return ErrInvalidOrExpiredToken
	}
	if err := u.users.MarkEmailVerified(ctx, userID, u.now()); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return ErrInvalidOrExpiredToken
		}
		return fmt.Errorf("failed to mark email verified: %w", err)
	}
	return nil
}

// ChangePassword replaces the password of an authenticated user after checking
// the current one.
func (u *authUsecase) ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if !verifyPassword(user.Password, currentPassword) {
		return ErrInvalidCredentials
	}
	if err := validatePassword(newPassword); err != nil {
		return err
	}
	hashed, err := hashPassword(newPassword, u.cfg.HashCost)
	if err != nil {
		return err
	}
	return u.users.UpdatePassword(ctx, userID, hashed)
}

// PurgeExpiredResetTokens deletes reset-token rows past their expiry.
func (u *authUsecase) PurgeExpiredResetTokens(ctx context.Context) (int64, error) {
	return u.resetTokens.DeleteExpired(ctx)
}
