package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taskflow/task-manager/internal/core/ports"
)

const keyPrefix = "taskmanager:ratelimit:"

// fixedWindowLua increments the window counter and starts its expiry on the
// first hit. Returns {count, remaining ttl in ms}.
const fixedWindowLua = `
local count = redis.call("INCR", KEYS[1])
if count == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("PTTL", KEYS[1])
if ttl < 0 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
  ttl = tonumber(ARGV[1])
end
return {count, ttl}
`

// RateLimiter is a fixed-window request counter shared by every API
// instance pointing at the same Redis.
type RateLimiter struct {
	client *redis.Client
	max    int64
	window time.Duration
	script *redis.Script
}

// NewRateLimiter allows max requests per key in every window.
func NewRateLimiter(client *redis.Client, max int64, window time.Duration) *RateLimiter {
	return &RateLimiter{
		client: client,
		max:    max,
		window: window,
		script: redis.NewScript(fixedWindowLua),
	}
}

// Allow counts one request for key.
func (r *RateLimiter) Allow(ctx context.Context, key string) (ports.RateDecision, error) {
	if r.max <= 0 || r.window <= 0 {
		return ports.RateDecision{Allowed: true}, nil
	}

	res, err := r.script.Run(ctx, r.client, []string{keyPrefix + key}, r.window.Milliseconds()).Int64Slice()
	if err != nil {
		return ports.RateDecision{}, fmt.Errorf("ratelimit eval: %w", err)
	}
	if len(res) < 2 {
		return ports.RateDecision{}, fmt.Errorf("ratelimit: unexpected result %v", res)
	}

	count, ttl := res[0], res[1]
	remaining := r.max - count
	if remaining < 0 {
		remaining = 0
	}
	return ports.RateDecision{
		Allowed:    count <= r.max,
		Limit:      r.max,
		Remaining:  remaining,
		ResetAfter: time.Duration(ttl) * time.Millisecond,
	}, nil
}
