// Package jwtmw issues and verifies signed bearer tokens and provides the Gin
// middleware that guards private routes.
package jwtmw

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Purpose tags a token with its intended use so that one kind cannot be
// replayed as another.
type Purpose string

const (
	PurposeSession           Purpose = "session"
	PurposePasswordReset     Purpose = "password_reset"
	PurposeEmailVerification Purpose = "email_verification"
)

// Default lifetimes per purpose.
const (
	DefaultSessionTTL           = 30 * 24 * time.Hour
	DefaultPasswordResetTTL     = time.Hour
	DefaultEmailVerificationTTL = 24 * time.Hour
)

var (
	// ErrMalformedToken is returned when the token cannot be parsed at all.
	ErrMalformedToken = errors.New("malformed token")

	// ErrInvalidSignature is returned when the signature does not match (tampered or foreign secret).
	ErrInvalidSignature = errors.New("invalid token signature")

	// ErrTokenExpired is returned when the token's expiry has passed.
	ErrTokenExpired = errors.New("token has expired")

	// ErrWrongPurpose is returned when the token was issued for a different purpose.
	ErrWrongPurpose = errors.New("token issued for a different purpose")
)

// Claims is the payload carried by every token the Issuer signs.
type Claims struct {
	Purpose Purpose `json:"purpose"`
	jwt.RegisteredClaims
}

// TTLs holds the lifetime applied to each token purpose.
type TTLs struct {
	Session           time.Duration
	PasswordReset     time.Duration
	EmailVerification time.Duration
}

// DefaultTTLs returns 30 days for sessions, 1 hour for password resets and
// 1 day for email verification.
func DefaultTTLs() TTLs {
	return TTLs{
		Session:           DefaultSessionTTL,
		PasswordReset:     DefaultPasswordResetTTL,
		EmailVerification: DefaultEmailVerificationTTL,
	}
}

func (t TTLs) forPurpose(p Purpose) (time.Duration, error) {
	var ttl time.Duration
	switch p {
	case PurposeSession:
		ttl = t.Session
	case PurposePasswordReset:
		ttl = t.PasswordReset
	case PurposeEmailVerification:
		ttl = t.EmailVerification
	default:
		return 0, fmt.Errorf("unknown token purpose %q", p)
	}
	if ttl <= 0 {
		return 0, fmt.Errorf("no ttl configured for purpose %q", p)
	}
	return ttl, nil
}

// Issuer mints and verifies HS256 tokens with a server-held secret.
type Issuer struct {
	secret []byte
	ttls   TTLs
	now    func() time.Time
}

// Option configures an Issuer.
type Option func(*Issuer)

// WithClock overrides the time source, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(i *Issuer) { i.now = now }
}

// NewIssuer creates an Issuer. The secret must not be empty.
func NewIssuer(secret string, ttls TTLs, opts ...Option) (*Issuer, error) {
	if secret == "" {
		return nil, errors.New("jwt secret must not be empty")
	}
	i := &Issuer{
		secret: []byte(secret),
		ttls:   ttls,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i, nil
}

// Issue signs a token for subjectID with the lifetime configured for purpose.
func (i *Issuer) Issue(subjectID uint, purpose Purpose) (string, time.Time, error) {
	ttl, err := i.ttls.forPurpose(purpose)
	if err != nil {
		return "", time.Time{}, err
	}

	now := i.now()
	expiresAt := now.Add(ttl)
	claims := Claims{
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(subjectID), 10),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify checks signature, expiry and purpose and returns the subject ID.
// Malformed input yields ErrMalformedToken; it never panics.
func (i *Issuer) Verify(tokenStr string, expected Purpose) (uint, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)

	var claims Claims
	_, err := parser.ParseWithClaims(tokenStr, &claims, func(*jwt.Token) (interface{}, error) {
		return i.secret, nil
	})
	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenExpired):
		return 0, ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return 0, ErrInvalidSignature
	default:
		return 0, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	if claims.Purpose != expected {
		return 0, ErrWrongPurpose
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 0)
	if err != nil || id == 0 {
		return 0, ErrMalformedToken
	}
	return uint(id), nil
}
