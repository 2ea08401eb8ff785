// Package resettoken stores unconsumed password-reset tokens in Redis.
package resettoken

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	authadapters "devport_backend/internal/feature/auth/adapters"
	"devport_backend/internal/feature/auth/domain/entity"
	"devport_backend/internal/feature/auth/usecase"
)

// consumeScript deletes the key only when it belongs to the expected user.
// Running it server-side makes the check and the delete one atomic step.
var consumeScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// ResetTokenRedis implements usecase.ResetTokenRepository using Redis.
// Each token is one key holding the owner's ID, expiring with the token itself.
type ResetTokenRedis struct {
	client *redis.Client
	prefix string
}

var _ usecase.ResetTokenRepository = (*ResetTokenRedis)(nil)

// NewResetTokenRedis creates a new ResetTokenRedis instance.
func NewResetTokenRedis(client *redis.Client, prefix string) *ResetTokenRedis {
	if prefix == "" {
		prefix = "reset"
	}
	return &ResetTokenRedis{
		client: client,
		prefix: prefix,
	}
}

// tokenKey returns the Redis key for a token. Only the digest appears in the key.
func (r *ResetTokenRedis) tokenKey(token string) string {
	return fmt.Sprintf("%s:%s", r.prefix, authadapters.HashToken(token))
}

// Create stores the token until its expiry.
func (r *ResetTokenRedis) Create(ctx context.Context, token *entity.PasswordResetToken) error {
	ttl := time.Until(token.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("reset token already expired")
	}
	owner := strconv.FormatUint(uint64(token.UserID), 10)
	return r.client.Set(ctx, r.tokenKey(token.Token), owner, ttl).Err()
}

// Find retrieves the token if it is still stored for userID.
func (r *ResetTokenRedis) Find(ctx context.Context, userID uint, token string) (*entity.PasswordResetToken, error) {
	key := r.tokenKey(token)
	owner, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, usecase.ErrResetTokenNotFound
		}
		return nil, err
	}
	if owner != strconv.FormatUint(uint64(userID), 10) {
		return nil, usecase.ErrResetTokenNotFound
	}

	ttl, err := r.client.PTTL(ctx, key).Result()
	if err != nil {
		return nil, err
	}
	return &entity.PasswordResetToken{
		UserID:    userID,
		Token:     token,
		ExpiresAt: time.Now().Add(ttl),
	}, nil
}

// Consume atomically removes the token if it belongs to userID.
func (r *ResetTokenRedis) Consume(ctx context.Context, userID uint, token string) error {
	owner := strconv.FormatUint(uint64(userID), 10)
	deleted, err := consumeScript.Run(ctx, r.client, []string{r.tokenKey(token)}, owner).Int64()
	if err != nil {
		return err
	}
	if deleted == 0 {
		return usecase.ErrResetTokenNotFound
	}
	return nil
}

// Delete removes the token regardless of owner.
func (r *ResetTokenRedis) Delete(ctx context.Context, token string) error {
	return r.client.Del(ctx, r.tokenKey(token)).Err()
}

// DeleteExpired removes expired tokens (handled by Redis TTL).
func (r *ResetTokenRedis) DeleteExpired(ctx context.Context) (int64, error) {
	return 0, nil
}
