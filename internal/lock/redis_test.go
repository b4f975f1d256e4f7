package lock

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocker(t *testing.T) (*RedisLocker, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := NewRedisClient(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisLocker(client), mr
}

func TestRedisLockerExclusive(t *testing.T) {
	l, _ := newLocker(t)
	ctx := context.Background()

	release, err := l.Acquire(ctx, "billing:gym:1", time.Minute)
	require.NoError(t, err)

	_, err = l.Acquire(ctx, "billing:gym:1", time.Minute)
	assert.ErrorIs(t, err, ErrHeld)

	other, err := l.Acquire(ctx, "billing:gym:2", time.Minute)
	require.NoError(t, err)
	other()

	release()
	again, err := l.Acquire(ctx, "billing:gym:1", time.Minute)
	require.NoError(t, err)
	again()
}

func TestRedisLockerReleaseKeepsForeignToken(t *testing.T) {
	l, mr := newLocker(t)
	ctx := context.Background()

	release, err := l.Acquire(ctx, "k", time.Second)
	require.NoError(t, err)
	mr.FastForward(2 * time.Second)

	second, err := l.Acquire(ctx, "k", time.Minute)
	require.NoError(t, err)
	release()
	assert.True(t, mr.Exists("flexio:lock:k"))
	second()
	assert.False(t, mr.Exists("flexio:lock:k"))
}

func TestNoopAlwaysGrants(t *testing.T) {
	release, err := Noop{}.Acquire(context.Background(), "x", time.Second)
	require.NoError(t, err)
	release()
}
