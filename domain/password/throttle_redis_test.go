package password

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedisThrottle(t *testing.T, limit int, lockDuration time.Duration) (*RedisThrottle, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisThrottle(client, limit, lockDuration), mr
}

func TestRedisThrottleUnderLimit(t *testing.T) {
	th, _ := newTestRedisThrottle(t, 5, 15*time.Minute)
	now := time.Now()

	for i := 0; i < 4; i++ {
		if th.Locked("a@b.com", now) {
			t.Fatalf("hit %d: locked too early", i+1)
		}
		if th.Hit("a@b.com", now) {
			t.Fatalf("hit %d: crossed limit too early", i+1)
		}
	}
}

func TestRedisThrottleCrossingLocks(t *testing.T) {
	th, _ := newTestRedisThrottle(t, 5, 15*time.Minute)
	now := time.Now()

	for i := 0; i < 4; i++ {
		th.Hit("a@b.com", now)
	}
	if !th.Hit("a@b.com", now) {
		t.Fatal("fifth hit must cross the limit")
	}
	if !th.Locked("a@b.com", now) {
		t.Fatal("must be locked after crossing the limit")
	}
}

func TestRedisThrottleLockExpires(t *testing.T) {
	th, mr := newTestRedisThrottle(t, 5, 15*time.Minute)
	now := time.Now()

	for i := 0; i < 5; i++ {
		th.Hit("a@b.com", now)
	}
	if !th.Locked("a@b.com", now) {
		t.Fatal("must be locked after crossing the limit")
	}

	mr.FastForward(16 * time.Minute)
	if th.Locked("a@b.com", now) {
		t.Fatal("lock key must expire with its TTL")
	}

	// The counter key carries no TTL, so the next hit relocks immediately.
	if !th.Hit("a@b.com", now) {
		t.Fatal("counter must persist across an expired lock")
	}
}

func TestRedisThrottleFailsOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	th := NewRedisThrottle(client, 5, 15*time.Minute)
	mr.Close()
	client.Close()

	now := time.Now()
	if th.Locked("a@b.com", now) {
		t.Fatal("unreachable store must fail open on Locked")
	}
	if th.Hit("a@b.com", now) {
		t.Fatal("unreachable store must fail open on Hit")
	}
}
