// Package ratelimiter はクライアント単位のリクエスト頻度制限を提供します。
package ratelimiter

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// cleanupInterval は使われなくなったリミッターを掃除する間隔です。
const cleanupInterval = 5 * time.Minute

// KeyedLimiter はキー（クライアントIPなど）ごとにトークンバケットを持ちます。
type KeyedLimiter struct {
	limit rate.Limit
	burst int

	mu          sync.Mutex
	limiters    map[string]*rate.Limiter
	lastCleanup time.Time
	now         func() time.Time
}

// NewKeyedLimiter は1秒あたり perSecond 回、最大 burst 回のバーストを許可するリミッターを生成します。
func NewKeyedLimiter(perSecond float64, burst int) *KeyedLimiter {
	return &KeyedLimiter{
		limit:       rate.Limit(perSecond),
		burst:       burst,
		limiters:    make(map[string]*rate.Limiter),
		lastCleanup: time.Now(),
		now:         time.Now,
	}
}

// Allow は key のリクエストを許可するかを返します。拒否時は次に許可されるまでの待ち時間も返します。
func (l *KeyedLimiter) Allow(key string) (bool, time.Duration) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	lim, ok := l.limiters[key]
	if !ok {
		lim = rate.NewLimiter(l.limit, l.burst)
		l.limiters[key] = lim
	}
	allowed := lim.AllowN(now, 1)
	var delay time.Duration
	if !allowed {
		r := lim.ReserveN(now, 1)
		delay = r.DelayFrom(now)
		r.CancelAt(now)
	}
	l.maybeCleanupLocked(now)
	return allowed, delay
}

// maybeCleanupLocked はバケットが満杯（しばらく未使用）のリミッターを削除します。
func (l *KeyedLimiter) maybeCleanupLocked(now time.Time) {
	if now.Sub(l.lastCleanup) < cleanupInterval {
		return
	}
	l.lastCleanup = now
	for key, lim := range l.limiters {
		if lim.TokensAt(now) >= float64(l.burst) {
			delete(l.limiters, key)
		}
	}
}

// size returns the number of tracked keys.
func (l *KeyedLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}

// Middleware はクライアントIPごとに制限し、超過時は429を返すginミドルウェアです。
func (l *KeyedLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		ok, delay := l.Allow(key)
		if ok {
			c.Next()
			return
		}
		retryAfter := int(math.Max(1, math.Ceil(delay.Seconds())))
		slog.Warn("rate limit exceeded", "remote_addr", key, "path", c.FullPath(), "retry_after", retryAfter)
		c.Header("Retry-After", strconv.Itoa(retryAfter))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests. Please try again later."})
	}
}
