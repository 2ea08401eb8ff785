package jwtmw

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newTestIssuer(t *testing.T, opts ...Option) *Issuer {
	t.Helper()
	iss, err := NewIssuer(testSecret, DefaultTTLs(), opts...)
	require.NoError(t, err)
	return iss
}

// TestNewIssuer は空のシークレットが拒否されることを検証します。
func TestNewIssuer(t *testing.T) {
	t.Parallel()

	_, err := NewIssuer("", DefaultTTLs())
	assert.Error(t, err)

	iss, err := NewIssuer("s", DefaultTTLs())
	require.NoError(t, err)
	assert.Equal(t, []byte("s"), iss.secret)
}

// TestIssuer_RoundTrip は発行したトークンが同じ目的で検証できることを検証します。
func TestIssuer_RoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		userID  uint
		purpose Purpose
	}{
		{"session", 1, PurposeSession},
		{"password reset", 42, PurposePasswordReset},
		{"email verification", 999999, PurposeEmailVerification},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			iss := newTestIssuer(t)
			token, _, err := iss.Issue(tt.userID, tt.purpose)
			require.NoError(t, err)
			require.NotEmpty(t, token)

			got, err := iss.Verify(token, tt.purpose)
			require.NoError(t, err)
			assert.Equal(t, tt.userID, got)
		})
	}
}

// TestIssuer_Issue_Expiry は目的ごとのTTLがexpクレームに反映されることを検証します。
func TestIssuer_Issue_Expiry(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	iss := newTestIssuer(t, WithClock(func() time.Time { return now }))

	tests := []struct {
		purpose Purpose
		ttl     time.Duration
	}{
		{PurposeSession, 30 * 24 * time.Hour},
		{PurposePasswordReset, time.Hour},
		{PurposeEmailVerification, 24 * time.Hour},
	}

	for _, tt := range tests {
		_, expiresAt, err := iss.Issue(7, tt.purpose)
		require.NoError(t, err)
		assert.Equal(t, now.Add(tt.ttl), expiresAt, string(tt.purpose))
	}
}

// TestIssuer_Issue_UniquePerCall は同じユーザー・同じ時刻でも異なるトークンが生成されることを検証します。
func TestIssuer_Issue_UniquePerCall(t *testing.T) {
	t.Parallel()

	now := time.Now()
	iss := newTestIssuer(t, WithClock(func() time.Time { return now }))

	t1, _, err := iss.Issue(1, PurposePasswordReset)
	require.NoError(t, err)
	t2, _, err := iss.Issue(1, PurposePasswordReset)
	require.NoError(t, err)

	assert.NotEqual(t, t1, t2)
}

// TestIssuer_Issue_UnknownPurpose は未知の目的でエラーになることを検証します。
func TestIssuer_Issue_UnknownPurpose(t *testing.T) {
	t.Parallel()

	iss := newTestIssuer(t)
	_, _, err := iss.Issue(1, Purpose("admin"))
	assert.Error(t, err)
}

// TestIssuer_Verify_Failures は改ざん・期限切れ・目的違い・不正形式がそれぞれ拒否されることを検証します。
func TestIssuer_Verify_Failures(t *testing.T) {
	t.Parallel()

	issuedAt := time.Now().Add(-2 * time.Hour)
	past := newTestIssuer(t, WithClock(func() time.Time { return issuedAt }))
	expiredReset, _, err := past.Issue(1, PurposePasswordReset)
	require.NoError(t, err)

	foreign, err := NewIssuer("other-secret", DefaultTTLs())
	require.NoError(t, err)
	foreignToken, _, err := foreign.Issue(1, PurposeSession)
	require.NoError(t, err)

	iss := newTestIssuer(t)
	valid, _, err := iss.Issue(1, PurposeSession)
	require.NoError(t, err)
	parts := strings.Split(valid, ".")
	tampered := parts[0] + "." + parts[1] + ".AAAA" + parts[2][4:]

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		Purpose: PurposeSession,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	noneToken, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name     string
		token    string
		purpose  Purpose
		expected error
	}{
		{"empty", "", PurposeSession, ErrMalformedToken},
		{"random string", "randomstring", PurposeSession, ErrMalformedToken},
		{"malformed segments", "not.a.valid.token", PurposeSession, ErrMalformedToken},
		{"foreign secret", foreignToken, PurposeSession, ErrInvalidSignature},
		{"tampered signature", tampered, PurposeSession, ErrInvalidSignature},
		{"none algorithm", noneToken, PurposeSession, ErrInvalidSignature},
		{"expired", expiredReset, PurposePasswordReset, ErrTokenExpired},
		{"reset token used as session", func() string {
			tok, _, _ := iss.Issue(1, PurposePasswordReset)
			return tok
		}(), PurposeSession, ErrWrongPurpose},
		{"session token used as reset", valid, PurposePasswordReset, ErrWrongPurpose},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			id, err := iss.Verify(tt.token, tt.purpose)
			assert.ErrorIs(t, err, tt.expected)
			assert.Zero(t, id)
		})
	}
}

// TestIssuer_Verify_ExpiresWithClock は時計を進めるとセッショントークンが失効することを検証します。
func TestIssuer_Verify_ExpiresWithClock(t *testing.T) {
	t.Parallel()

	now := time.Now()
	clock := func() time.Time { return now }
	iss := newTestIssuer(t, WithClock(func() time.Time { return clock() }))

	token, _, err := iss.Issue(5, PurposeSession)
	require.NoError(t, err)

	_, err = iss.Verify(token, PurposeSession)
	require.NoError(t, err)

	later := now.Add(DefaultSessionTTL + time.Minute)
	clock = func() time.Time { return later }

	_, err = iss.Verify(token, PurposeSession)
	assert.ErrorIs(t, err, ErrTokenExpired)
}
