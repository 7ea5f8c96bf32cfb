package lock

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-RepairBookingService/internal/domain"
)

var (
	// ErrLockNotAcquired расписание на дату уже изменяется другим запросом
	ErrLockNotAcquired = errors.New("lock: schedule lock not acquired")

	// ErrLock ошибка при работе с Redis
	ErrLock = errors.New("lock: redis error")
)

const retryInterval = 25 * time.Millisecond

// RedisDateLocker сериализует изменения расписания по датам через SET NX.
// Ключ освобождается только владельцем (сверка токена в Lua-скрипте).
type RedisDateLocker struct {
	client *redis.Client
	ttl    time.Duration
	wait   time.Duration
}

// NewRedisDateLocker ttl время жизни ключа, wait сколько ждать освобождения чужой блокировки
func NewRedisDateLocker(client *redis.Client, ttl, wait time.Duration) *RedisDateLocker {
	return &RedisDateLocker{
		client: client,
		ttl:    ttl,
		wait:   wait,
	}
}

// WithDateLock выполняет fn, удерживая блокировку расписания на дату
func (l *RedisDateLocker) WithDateLock(ctx context.Context, date time.Time, fn func(ctx context.Context) error) error {
	return l.WithDateLocks(ctx, []time.Time{date}, fn)
}

// WithDateLocks блокирует несколько дат (перенос записи на другой день).
// Даты берутся в порядке возрастания, дубликаты схлопываются.
func (l *RedisDateLocker) WithDateLocks(ctx context.Context, dates []time.Time, fn func(ctx context.Context) error) error {
	keys := dateKeys(dates)
	token := uuid.NewString()

	acquired := make([]string, 0, len(keys))
	defer func() {
		for _, key := range acquired {
			_ = l.release(context.WithoutCancel(ctx), key, token)
		}
	}()

	for _, key := range keys {
		if err := l.acquire(ctx, key, token); err != nil {
			return err
		}
		acquired = append(acquired, key)
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, l.ttl)
	defer cancel()

	return fn(ctxWithTimeout)
}

// PingContext проверка доступности Redis для readiness
func (l *RedisDateLocker) PingContext(ctx context.Context) error {
	return l.client.Ping(ctx).Err()
}

func (l *RedisDateLocker) acquire(ctx context.Context, key, token string) error {
	deadline := time.Now().Add(l.wait)

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return fmt.Errorf("%w: acquire %s: %v", ErrLock, key, err)
		}
		if ok {
			return nil
		}

		if time.Now().Add(retryInterval).After(deadline) {
			return fmt.Errorf("%w: %s", ErrLockNotAcquired, key)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryInterval):
		}
	}
}

var unlockScript = redis.NewScript(`
local val = redis.call("GET", KEYS[1])
if val == ARGV[1] then
  return redis.call("DEL", KEYS[1])
else
  return 0
end
`)

func (l *RedisDateLocker) release(ctx context.Context, key, token string) error {
	_, err := unlockScript.Run(ctx, l.client, []string{key}, token).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("%w: release %s: %v", ErrLock, key, err)
	}
	return nil
}

func dateKeys(dates []time.Time) []string {
	keys := make([]string, 0, len(dates))
	for _, d := range dates {
		keys = append(keys, "lock:schedule:"+d.Format(domain.DateFormat))
	}
	slices.Sort(keys)
	return slices.Compact(keys)
}

// NoopLocker используется, когда Redis выключен: сериализация остается за
// SERIALIZABLE-транзакцией и ограничением в БД
type NoopLocker struct{}

func (NoopLocker) WithDateLock(ctx context.Context, _ time.Time, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (NoopLocker) WithDateLocks(ctx context.Context, _ []time.Time, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
