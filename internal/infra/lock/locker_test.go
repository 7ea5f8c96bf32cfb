package lock

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

var day = time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)

func TestWithDateLock_ReleasesAfterRun(t *testing.T) {
	mr, client := setupTestRedis(t)
	locker := NewRedisDateLocker(client, 5*time.Second, 100*time.Millisecond)

	called := false
	err := locker.WithDateLock(context.Background(), day, func(ctx context.Context) error {
		called = true
		assert.True(t, mr.Exists("lock:schedule:2025-10-13"))
		return nil
	})

	require.NoError(t, err)
	assert.True(t, called)
	assert.False(t, mr.Exists("lock:schedule:2025-10-13"))
}

func TestWithDateLock_ReturnsFnError(t *testing.T) {
	mr, client := setupTestRedis(t)
	locker := NewRedisDateLocker(client, 5*time.Second, 100*time.Millisecond)
	boom := errors.New("boom")

	err := locker.WithDateLock(context.Background(), day, func(ctx context.Context) error {
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists("lock:schedule:2025-10-13"))
}

func TestWithDateLock_BusyDate(t *testing.T) {
	mr, client := setupTestRedis(t)
	locker := NewRedisDateLocker(client, 5*time.Second, 60*time.Millisecond)

	require.NoError(t, mr.Set("lock:schedule:2025-10-13", "someone-else"))

	err := locker.WithDateLock(context.Background(), day, func(ctx context.Context) error {
		t.Fatal("must not run while the date is locked")
		return nil
	})

	assert.ErrorIs(t, err, ErrLockNotAcquired)

	// чужую блокировку не снимаем
	got, err := mr.Get("lock:schedule:2025-10-13")
	require.NoError(t, err)
	assert.Equal(t, "someone-else", got)
}

func TestWithDateLock_WaitsForRelease(t *testing.T) {
	mr, client := setupTestRedis(t)
	locker := NewRedisDateLocker(client, 5*time.Second, 2*time.Second)

	require.NoError(t, mr.Set("lock:schedule:2025-10-13", "someone-else"))
	go func() {
		time.Sleep(100 * time.Millisecond)
		mr.Del("lock:schedule:2025-10-13")
	}()

	called := false
	err := locker.WithDateLock(context.Background(), day, func(ctx context.Context) error {
		called = true
		return nil
	})

	require.NoError(t, err)
	assert.True(t, called)
}

func TestWithDateLocks_MultipleDates(t *testing.T) {
	mr, client := setupTestRedis(t)
	locker := NewRedisDateLocker(client, 5*time.Second, 100*time.Millisecond)
	next := day.AddDate(0, 0, 1)

	err := locker.WithDateLocks(context.Background(), []time.Time{next, day, next}, func(ctx context.Context) error {
		assert.True(t, mr.Exists("lock:schedule:2025-10-13"))
		assert.True(t, mr.Exists("lock:schedule:2025-10-14"))
		return nil
	})

	require.NoError(t, err)
	assert.Empty(t, mr.Keys())
}

func TestWithDateLocks_PartialAcquireIsReleased(t *testing.T) {
	mr, client := setupTestRedis(t)
	locker := NewRedisDateLocker(client, 5*time.Second, 50*time.Millisecond)

	require.NoError(t, mr.Set("lock:schedule:2025-10-14", "someone-else"))

	err := locker.WithDateLocks(context.Background(), []time.Time{day, day.AddDate(0, 0, 1)}, func(ctx context.Context) error {
		return nil
	})

	assert.ErrorIs(t, err, ErrLockNotAcquired)
	assert.False(t, mr.Exists("lock:schedule:2025-10-13"))
	assert.True(t, mr.Exists("lock:schedule:2025-10-14"))
}

func TestNoopLocker(t *testing.T) {
	called := 0
	fn := func(ctx context.Context) error {
		called++
		return nil
	}

	require.NoError(t, NoopLocker{}.WithDateLock(context.Background(), day, fn))
	require.NoError(t, NoopLocker{}.WithDateLocks(context.Background(), nil, fn))
	assert.Equal(t, 2, called)
}

func TestPing(t *testing.T) {
	mr, client := setupTestRedis(t)
	locker := NewRedisDateLocker(client, time.Second, time.Second)

	assert.NoError(t, locker.PingContext(context.Background()))

	mr.Close()
	assert.Error(t, locker.PingContext(context.Background()))
}
