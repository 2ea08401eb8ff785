package ratelimiter

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock はテスト用に手動で進める時計です。
type fakeClock struct{ t time.Time }

func (f *fakeClock) now() time.Time           { return f.t }
func (f *fakeClock) advance(d time.Duration) { f.t = f.t.Add(d) }

func newTestLimiter(perSecond float64, burst int) (*KeyedLimiter, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	l := NewKeyedLimiter(perSecond, burst)
	l.now = clock.now
	l.lastCleanup = clock.t
	return l, clock
}

// TestKeyedLimiter_Burst はバースト分だけ許可され、その後拒否されることを検証します。
func TestKeyedLimiter_Burst(t *testing.T) {
	l, clock := newTestLimiter(1, 3)

	for i := 0; i < 3; i++ {
		ok, _ := l.Allow("1.2.3.4")
		assert.True(t, ok, "request %d", i)
	}
	ok, delay := l.Allow("1.2.3.4")
	assert.False(t, ok)
	assert.InDelta(t, time.Second.Seconds(), delay.Seconds(), 0.01)

	// 1秒後に1トークン回復する
	clock.advance(time.Second)
	ok, _ = l.Allow("1.2.3.4")
	assert.True(t, ok)
}

func TestKeyedLimiter_KeysAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(1, 1)

	ok, _ := l.Allow("a")
	assert.True(t, ok)
	ok, _ = l.Allow("a")
	assert.False(t, ok)

	ok, _ = l.Allow("b")
	assert.True(t, ok)
}

// TestKeyedLimiter_Cleanup はアイドル状態のキーが掃除されることを検証します。
func TestKeyedLimiter_Cleanup(t *testing.T) {
	l, clock := newTestLimiter(1, 2)

	l.Allow("idle")
	l.Allow("busy")
	require.Equal(t, 2, l.size())

	clock.advance(cleanupInterval)
	l.Allow("busy")

	// "busy" は直前に消費したので残り、"idle" は満杯なので削除される
	assert.Equal(t, 1, l.size())
}

func TestKeyedLimiter_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	l, _ := newTestLimiter(1, 2)
	r := gin.New()
	r.POST("/user/login", l.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	send := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/user/login", nil)
		req.RemoteAddr = ip + ":12345"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1").Code)
	assert.Equal(t, http.StatusOK, send("10.0.0.1").Code)

	w := send("10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "Too many requests")

	assert.Equal(t, http.StatusOK, send("10.0.0.2").Code)
}
