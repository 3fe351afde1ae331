package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	nanoid "github.com/matoous/go-nanoid/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"commons-backend/internal/logger"
)

// RateLimiter is a sliding-window limiter kept in a redis sorted set per
// caller. Authenticated requests are keyed by user, anonymous ones by IP.
type RateLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	prefix string
}

func NewRateLimiter(client *redis.Client, limit int, window time.Duration, prefix string) *RateLimiter {
	return &RateLimiter{
		client: client,
		limit:  limit,
		window: window,
		prefix: prefix,
	}
}

// Allow records one request for key and reports whether it fits in the
// window, along with the number of requests the window now holds. Denied
// requests are removed again so retries do not extend a lockout.
func (rl *RateLimiter) Allow(ctx context.Context, key string) (bool, int, error) {
	now := time.Now()
	windowStart := now.Add(-rl.window)

	member, err := nanoid.New()
	if err != nil {
		return false, 0, fmt.Errorf("failed to generate window member: %w", err)
	}

	pipe := rl.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart.UnixNano(), 10))
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now.UnixNano()), Member: member})
	countCmd := pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, rl.window+10*time.Second)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, fmt.Errorf("failed to execute pipeline: %w", err)
	}

	count := int(countCmd.Val())
	if count <= rl.limit {
		return true, count, nil
	}

	if err := rl.client.ZRem(ctx, key, member).Err(); err != nil {
		logger.Logger.Warn("Failed to release denied request", zap.String("key", key), zap.Error(err))
		return false, count, nil
	}
	return false, count - 1, nil
}

func (rl *RateLimiter) key(r *http.Request) string {
	if userID := GetUserID(r.Context()); userID != uuid.Nil {
		return rl.prefix + ":user:" + userID.String()
	}
	return rl.prefix + ":ip:" + clientIP(r)
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl.client == nil {
			next.ServeHTTP(w, r)
			return
		}

		allowed, count, err := rl.Allow(r.Context(), rl.key(r))
		if err != nil {
			// Fail open while redis is unreachable.
			logger.Logger.Warn("Rate limiter unavailable", zap.Error(err))
			next.ServeHTTP(w, r)
			return
		}

		remaining := rl.limit - count
		if remaining < 0 {
			remaining = 0
		}
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(rl.window).Unix(), 10))

		if !allowed {
			writeError(w, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests. Please try again later.", r)
			return
		}

		next.ServeHTTP(w, r)
	})
}
