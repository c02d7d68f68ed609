// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	domainerror "github.com/finance-tracker/lucapp/internal/domain/error"
	"github.com/finance-tracker/lucapp/internal/integration/entrypoint/dto"
)

// pruneEvery is how many counted attempts pass between sweeps of expired windows.
const pruneEvery = 256

type attemptWindow struct {
	count   int
	expires time.Time
}

// RateLimiter caps login attempts per client IP and login identifier within
// a fixed window. Each address and login pair counts separately.
type RateLimiter struct {
	limit  int
	window time.Duration
	now    func() time.Time

	mu      sync.Mutex
	windows map[string]*attemptWindow
	counted int
}

// NewRateLimiterWithConfig creates a limiter allowing limit attempts per window.
// A non-positive limit disables limiting.
func NewRateLimiterWithConfig(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:   limit,
		window:  window,
		now:     time.Now,
		windows: make(map[string]*attemptWindow),
	}
}

// Middleware returns a Gin handler enforcing the limit. Rejected requests
// get a 429 with Retry-After in seconds.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.limit <= 0 {
			c.Next()
			return
		}

		key := keyFor(c)
		ok, wait := rl.hit(key)
		if !ok {
			slog.Warn("Rate limit exceeded", "key", key, "path", c.FullPath())
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: "Too many requests. Please try again later.",
				Code:  string(domainerror.ErrCodeRateLimited),
			})
			return
		}

		c.Next()
	}
}

// keyFor combines the client address with the lowercased login field of the
// JSON body. The body is put back for the handler.
func keyFor(c *gin.Context) string {
	ip := c.ClientIP()
	if ip == "" {
		ip = c.Request.RemoteAddr
	}

	if c.Request.Body == nil {
		return ip
	}
	body, err := io.ReadAll(c.Request.Body)
	_ = c.Request.Body.Close()
	c.Request.Body = io.NopCloser(bytes.NewReader(body))
	if err != nil {
		return ip
	}

	var credentials struct {
		Login string `json:"login"`
	}
	if json.Unmarshal(body, &credentials) != nil {
		return ip
	}
	login := strings.ToLower(strings.TrimSpace(credentials.Login))
	if login == "" {
		return ip
	}
	return ip + "|" + login
}

// hit counts an attempt for key. When the limit is reached it reports false
// and how long until the window closes.
func (rl *RateLimiter) hit(key string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rl.counted++
	if rl.counted%pruneEvery == 0 {
		rl.pruneLocked(now)
	}

	w, found := rl.windows[key]
	if !found || !now.Before(w.expires) {
		rl.windows[key] = &attemptWindow{count: 1, expires: now.Add(rl.window)}
		return true, 0
	}
	if w.count >= rl.limit {
		return false, w.expires.Sub(now)
	}
	w.count++
	return true, 0
}

// Prune drops windows that have closed.
func (rl *RateLimiter) Prune() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.pruneLocked(rl.now())
}

func (rl *RateLimiter) pruneLocked(now time.Time) {
	for key, w := range rl.windows {
		if !now.Before(w.expires) {
			delete(rl.windows, key)
		}
	}
}
