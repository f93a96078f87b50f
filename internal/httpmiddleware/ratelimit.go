package httpmiddleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

const sweepEvery = 5 * time.Minute

// Limiter applies a per-client token bucket. State lives in process memory,
// so limits are per instance, not global.
type Limiter struct {
	perMinute float64

	mu        sync.Mutex
	clients   map[string]*clientBucket
	lastSweep time.Time
}

type clientBucket struct {
	tokens float64
	seen   time.Time
}

// NewLimiter allows perMinute requests per client, with bursts up to the same
// amount.
func NewLimiter(perMinute int) *Limiter {
	if perMinute <= 0 {
		perMinute = 60
	}
	return &Limiter{
		perMinute: float64(perMinute),
		clients:   make(map[string]*clientBucket),
		lastSweep: time.Now(),
	}
}

// Middleware rejects over-limit requests with 429.
func (l *Limiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		client := c.ClientIP()
		if client == "" {
			client = "unknown"
		}
		if !l.Allow(client) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}

// Allow reports whether the client may proceed and spends a token if so.
func (l *Limiter) Allow(client string) bool {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) > sweepEvery {
		for key, b := range l.clients {
			if now.Sub(b.seen) > sweepEvery {
				delete(l.clients, key)
			}
		}
		l.lastSweep = now
	}

	b, ok := l.clients[client]
	if !ok {
		l.clients[client] = &clientBucket{tokens: l.perMinute - 1, seen: now}
		return true
	}

	b.tokens += now.Sub(b.seen).Minutes() * l.perMinute
	if b.tokens > l.perMinute {
		b.tokens = l.perMinute
	}
	b.seen = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}
