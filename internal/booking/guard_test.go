package booking

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalGuard(t *testing.T) {
	ctx := context.Background()
	g := NewLocalGuard()

	release, err := g.Acquire(ctx, "slot-1")
	require.NoError(t, err)

	_, err = g.Acquire(ctx, "slot-1")
	assert.ErrorIs(t, err, ErrSlotBusy)

	other, err := g.Acquire(ctx, "slot-2")
	require.NoError(t, err)
	other()

	release()
	release()

	again, err := g.Acquire(ctx, "slot-1")
	require.NoError(t, err)
	again()
}

func newRedisGuard(t *testing.T, ttl time.Duration) (*RedisGuard, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisGuard(client, ttl), mr
}

func TestRedisGuard_AcquireRelease(t *testing.T) {
	ctx := context.Background()
	g, mr := newRedisGuard(t, time.Minute)

	release, err := g.Acquire(ctx, "slot-1")
	require.NoError(t, err)
	assert.True(t, mr.Exists(defaultGuardPrefix+"slot-1"))

	_, err = g.Acquire(ctx, "slot-1")
	assert.ErrorIs(t, err, ErrSlotBusy)

	release()
	assert.False(t, mr.Exists(defaultGuardPrefix+"slot-1"))

	_, err = g.Acquire(ctx, "slot-1")
	assert.NoError(t, err)
}

func TestRedisGuard_ExpiredLockIsNotReleasedByStaleOwner(t *testing.T) {
	ctx := context.Background()
	g, mr := newRedisGuard(t, time.Second)

	stale, err := g.Acquire(ctx, "slot-1")
	require.NoError(t, err)

	mr.FastForward(2 * time.Second)

	fresh, err := g.Acquire(ctx, "slot-1")
	require.NoError(t, err)

	stale()
	assert.True(t, mr.Exists(defaultGuardPrefix+"slot-1"))

	fresh()
	assert.False(t, mr.Exists(defaultGuardPrefix+"slot-1"))
}

func TestRedisGuard_ServerDown(t *testing.T) {
	g, mr := newRedisGuard(t, time.Minute)
	mr.Close()

	_, err := g.Acquire(context.Background(), "slot-1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSlotBusy)
}

func TestConfirmBooking_SharedRedisGuard(t *testing.T) {
	g, _ := newRedisGuard(t, time.Minute)

	release, err := g.Acquire(context.Background(), futureSlot.ID)
	require.NoError(t, err)
	defer release()

	calls := 0
	o := NewOrchestrator(countingBooker(&calls), stubDecoder{identity: patient}, g, nil)

	_, err = o.ConfirmBooking(context.Background(), readySession(t, "CASH"))
	assert.ErrorIs(t, err, ErrSlotBusy)
	assert.Zero(t, calls)
}
