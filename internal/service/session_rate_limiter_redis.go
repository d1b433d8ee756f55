package service

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionQuota es la situacion de un cliente dentro de la ventana actual.
type SessionQuota struct {
	Allowed    bool
	Used       int
	Limit      int
	RetryAfter time.Duration
}

// SessionRateLimiter decide si un cliente puede abrir otra sesion de evaluacion.
type SessionRateLimiter interface {
	Allow(ctx context.Context, clientKey string) SessionQuota
}

// Counts the session and reports the remaining window in milliseconds.
const redisSessionQuotaScript = `
local used = redis.call("INCR", KEYS[1])
if used == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return {used, redis.call("PTTL", KEYS[1])}
`

const (
	sessionQuotaKeyPrefix = "assessment:sessions:"
	sessionQuotaTimeout   = 500 * time.Millisecond
)

type redisSessionRateLimiter struct {
	client redisEvaler
	window time.Duration
	limit  int
}

type redisEvaler interface {
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

func NewRedisSessionRateLimiter(client *redis.Client, window time.Duration, limit int) SessionRateLimiter {
	if client == nil {
		return nil
	}
	if window <= 0 {
		window = time.Minute
	}
	if limit <= 0 {
		limit = 1
	}
	return &redisSessionRateLimiter{client: client, window: window, limit: limit}
}

// Allow counts one session start for clientKey. A blank key is refused and a
// redis failure lets the session through.
func (l *redisSessionRateLimiter) Allow(ctx context.Context, clientKey string) SessionQuota {
	if l == nil || l.client == nil {
		return SessionQuota{Allowed: true}
	}
	quota := SessionQuota{Limit: l.limit}
	key := strings.ToLower(strings.TrimSpace(clientKey))
	if key == "" {
		return quota
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, sessionQuotaTimeout)
	defer cancel()

	vals, err := l.client.Eval(ctx, redisSessionQuotaScript, []string{sessionQuotaKeyPrefix + key}, l.window.Milliseconds()).Int64Slice()
	if err != nil || len(vals) != 2 {
		quota.Allowed = true
		return quota
	}
	quota.Used = int(vals[0])
	quota.Allowed = quota.Used <= l.limit
	if !quota.Allowed {
		quota.RetryAfter = l.window
		if vals[1] > 0 {
			quota.RetryAfter = time.Duration(vals[1]) * time.Millisecond
		}
	}
	return quota
}
