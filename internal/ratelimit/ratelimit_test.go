package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestMemoryFixedWindow(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m := NewMemory(2, time.Minute)
	m.now = func() time.Time { return now }
	ctx := context.Background()

	d, err := m.Allow(ctx, "1.2.3.4")
	require.NoError(t, err)
	require.True(t, d.Allowed)
	require.Equal(t, 1, d.Remaining)

	d, _ = m.Allow(ctx, "1.2.3.4")
	require.True(t, d.Allowed)
	d, _ = m.Allow(ctx, "1.2.3.4")
	require.False(t, d.Allowed)
	require.Equal(t, 0, d.Remaining)
	require.Equal(t, now.Add(time.Minute), d.ResetAt)

	d, _ = m.Allow(ctx, "5.6.7.8")
	require.True(t, d.Allowed)

	now = now.Add(time.Minute)
	d, _ = m.Allow(ctx, "1.2.3.4")
	require.True(t, d.Allowed)
	require.Equal(t, 1, d.Remaining)
}

func TestMemoryDisabled(t *testing.T) {
	m := NewMemory(0, time.Minute)
	for i := 0; i < 10; i++ {
		d, err := m.Allow(context.Background(), "k")
		require.NoError(t, err)
		require.True(t, d.Allowed)
	}
}

type fakeStore struct {
	counts  map[string]int64
	ttls    map[string]time.Duration
	incrErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{counts: map[string]int64{}, ttls: map[string]time.Duration{}}
}

func (f *fakeStore) Incr(_ context.Context, key string) *redis.IntCmd {
	if f.incrErr != nil {
		return redis.NewIntResult(0, f.incrErr)
	}
	f.counts[key]++
	return redis.NewIntResult(f.counts[key], nil)
}

func (f *fakeStore) Expire(_ context.Context, key string, d time.Duration) *redis.BoolCmd {
	f.ttls[key] = d
	return redis.NewBoolResult(true, nil)
}

func (f *fakeStore) TTL(_ context.Context, key string) *redis.DurationCmd {
	d, ok := f.ttls[key]
	if !ok {
		return redis.NewDurationResult(-1, nil)
	}
	return redis.NewDurationResult(d-10*time.Second, nil)
}

func TestRedisCountsAndExpires(t *testing.T) {
	store := newFakeStore()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	r := NewRedis(store, 1, time.Minute)
	r.now = func() time.Time { return now }
	ctx := context.Background()

	d, err := r.Allow(ctx, "inquiry:1.2.3.4")
	require.NoError(t, err)
	require.True(t, d.Allowed)
	require.Equal(t, time.Minute, store.ttls["rl:inquiry:1.2.3.4"])

	d, err = r.Allow(ctx, "inquiry:1.2.3.4")
	require.NoError(t, err)
	require.False(t, d.Allowed)
	require.Equal(t, now.Add(50*time.Second), d.ResetAt)
}

func TestRedisRepairsMissingExpiry(t *testing.T) {
	store := newFakeStore()
	store.counts["rl:k"] = 3
	r := NewRedis(store, 5, time.Minute)
	d, err := r.Allow(context.Background(), "k")
	require.NoError(t, err)
	require.True(t, d.Allowed)
	require.Equal(t, time.Minute, store.ttls["rl:k"])
}

func TestRedisErrorsPropagate(t *testing.T) {
	store := newFakeStore()
	store.incrErr = errors.New("connection refused")
	_, err := NewRedis(store, 5, time.Minute).Allow(context.Background(), "k")
	require.ErrorContains(t, err, "connection refused")
}
