package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/billing-panel/backend/internal/application/adapter"
	domainerror "github.com/billing-panel/backend/internal/domain/error"
	"github.com/billing-panel/backend/internal/integration/entrypoint/dto"
)

const (
	defaultMaxAttempts    = 5
	defaultWindowDuration = 1 * time.Minute
)

type rateLimitWindow struct {
	attempts  int
	resetTime time.Time
}

// RateLimiter limits attempts per client IP and route in a fixed window.
type RateLimiter struct {
	mu             sync.Mutex
	windows        map[string]*rateLimitWindow
	maxAttempts    int
	windowDuration time.Duration
	enabled        bool
	clock          adapter.Clock
}

// RateLimiterConfig holds the rate limiter settings.
type RateLimiterConfig struct {
	Enabled        bool
	MaxAttempts    int
	WindowDuration time.Duration
}

// NewRateLimiter creates a rate limiter. Zero values fall back to 5 attempts per minute.
func NewRateLimiter(config RateLimiterConfig, clock adapter.Clock) *RateLimiter {
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = defaultMaxAttempts
	}
	if config.WindowDuration <= 0 {
		config.WindowDuration = defaultWindowDuration
	}
	return &RateLimiter{
		windows:        make(map[string]*rateLimitWindow),
		maxAttempts:    config.MaxAttempts,
		windowDuration: config.WindowDuration,
		enabled:        config.Enabled,
		clock:          clock,
	}
}

// Middleware returns a Gin middleware handler that enforces rate limiting.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.enabled {
			c.Next()
			return
		}

		key := c.ClientIP() + "|" + c.FullPath()
		allowed, retryAfter := rl.allow(key)
		if !allowed {
			c.Header("Retry-After", strconv.Itoa(int(retryAfter.Seconds())+1))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: "Too many requests. Please try again later.",
				Code:  string(domainerror.ErrCodeRateLimited),
			})
			return
		}

		c.Next()
	}
}

func (rl *RateLimiter) allow(key string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.clock.Now()

	w, exists := rl.windows[key]
	if !exists || now.After(w.resetTime) {
		rl.windows[key] = &rateLimitWindow{attempts: 1, resetTime: now.Add(rl.windowDuration)}
		return true, 0
	}

	if w.attempts < rl.maxAttempts {
		w.attempts++
		return true, 0
	}

	return false, w.resetTime.Sub(now)
}

// Cleanup drops expired windows.
func (rl *RateLimiter) Cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.clock.Now()
	for key, w := range rl.windows {
		if now.After(w.resetTime) {
			delete(rl.windows, key)
		}
	}
}
