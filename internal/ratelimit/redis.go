package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store is the subset of the Redis client the limiter needs.
type Store interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	TTL(ctx context.Context, key string) *redis.DurationCmd
}

// Redis is a Limiter shared by every instance pointing at the same server.
// Keys are counted with INCR and expire after the window.
type Redis struct {
	store  Store
	limit  int
	window time.Duration
	prefix string
	now    func() time.Time
}

// NewRedis allows limit requests per key per window.
func NewRedis(store Store, limit int, per time.Duration) *Redis {
	return &Redis{store: store, limit: limit, window: per, prefix: "rl:", now: time.Now}
}

// Allow implements Limiter.
func (r *Redis) Allow(ctx context.Context, key string) (Decision, error) {
	now := r.now()
	if r.limit <= 0 {
		return Decision{Allowed: true, ResetAt: now}, nil
	}
	k := r.prefix + key
	count, err := r.store.Incr(ctx, k).Result()
	if err != nil {
		return Decision{}, fmt.Errorf("ratelimit: incr %s: %w", k, err)
	}
	if count == 1 {
		if err := r.store.Expire(ctx, k, r.window).Err(); err != nil {
			return Decision{}, fmt.Errorf("ratelimit: expire %s: %w", k, err)
		}
		return decide(r.limit, count, now.Add(r.window)), nil
	}
	ttl, err := r.store.TTL(ctx, k).Result()
	if err != nil {
		return Decision{}, fmt.Errorf("ratelimit: ttl %s: %w", k, err)
	}
	if ttl < 0 {
		// the expiry from the first request was lost
		if err := r.store.Expire(ctx, k, r.window).Err(); err != nil {
			return Decision{}, fmt.Errorf("ratelimit: expire %s: %w", k, err)
		}
		ttl = r.window
	}
	return decide(r.limit, count, now.Add(ttl)), nil
}

// Dial connects to the server at rawURL (redis://...) and verifies it with
// PING.
func Dial(ctx context.Context, rawURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("ratelimit: invalid redis url: %w", err)
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ratelimit: ping redis: %w", err)
	}
	return client, nil
}
