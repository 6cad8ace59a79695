package middleware

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// LimiterStore counts hits per key within a fixed window. It is injected so
// single-instance deployments can use process memory while multi-instance
// ones share a cache; the abstraction never assumes process-local state.
type LimiterStore interface {
	Increment(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RateLimit keys on client IP + route. A store failure lets the request
// through: the limiter protects capacity, it is not an auth boundary.
func RateLimit(store LimiterStore, limit int64, window time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := c.RealIP() + ":" + c.Path()
			n, err := store.Increment(c.Request().Context(), key, window)
			if err != nil {
				log.Printf("ratelimit: store error for %s, allowing request: %v", key, err)
				return next(c)
			}
			if n > limit {
				return c.JSON(http.StatusTooManyRequests, map[string]string{
					"error": "too many requests, slow down",
				})
			}
			return next(c)
		}
	}
}

type memoryWindow struct {
	count   int64
	resetAt time.Time
}

// MemoryLimiterStore is the single-instance implementation.
type MemoryLimiterStore struct {
	mu      sync.Mutex
	windows map[string]*memoryWindow
}

func NewMemoryLimiterStore() *MemoryLimiterStore {
	return &MemoryLimiterStore{windows: map[string]*memoryWindow{}}
}

func (s *MemoryLimiterStore) Increment(ctx context.Context, key string, window time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	w, ok := s.windows[key]
	if !ok || now.After(w.resetAt) {
		w = &memoryWindow{resetAt: now.Add(window)}
		s.windows[key] = w
	}
	w.count++
	return w.count, nil
}

// RedisLimiterStore shares counters across instances.
type RedisLimiterStore struct {
	client *redis.Client
}

func NewRedisLimiterStore(client *redis.Client) *RedisLimiterStore {
	return &RedisLimiterStore{client: client}
}

func (s *RedisLimiterStore) Increment(ctx context.Context, key string, window time.Duration) (int64, error) {
	rkey := "ratelimit:" + key
	n, err := s.client.Incr(ctx, rkey).Result()
	if err != nil {
		return 0, err
	}
	if n == 1 {
		if err := s.client.Expire(ctx, rkey, window).Err(); err != nil {
			return n, err
		}
	}
	return n, nil
}
