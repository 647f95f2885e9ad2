package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	defaultGuardTTL    = 30 * time.Second
	defaultGuardPrefix = "paxify:booking:slot:"
)

// Снимаем блокировку только если она всё ещё наша
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisGuard блокировка слота, общая для нескольких экземпляров бота
type RedisGuard struct {
	client redis.Cmdable
	ttl    time.Duration
	prefix string
}

// NewRedisGuard ttl <= 0 - значение по умолчанию
func NewRedisGuard(client redis.Cmdable, ttl time.Duration) *RedisGuard {
	if ttl <= 0 {
		ttl = defaultGuardTTL
	}
	return &RedisGuard{
		client: client,
		ttl:    ttl,
		prefix: defaultGuardPrefix,
	}
}

func (g *RedisGuard) Acquire(ctx context.Context, slotID string) (func(), error) {
	key := g.prefix + slotID
	owner := uuid.NewString()

	ok, err := g.client.SetNX(ctx, key, owner, g.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire slot lock: %w", err)
	}
	if !ok {
		return nil, ErrSlotBusy
	}

	return func() {
		// контекст запроса может быть уже отменён
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		releaseScript.Run(releaseCtx, g.client, []string{key}, owner)
	}, nil
}
