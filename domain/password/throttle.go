package password

import (
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
)

// Throttle bounds the rate of OTP issuance per normalized email address.
// It is a volatile, best-effort abuse deterrent, not a durable security
// control: the in-memory implementation loses all state on restart.
type Throttle interface {
	// Locked reports whether the email is inside an active lockout window.
	Locked(email string, now time.Time) bool
	// Hit records one issuance attempt. It returns true when this attempt
	// crossed the configured limit, in which case the key is locked and the
	// attempt must be rejected.
	Hit(email string, now time.Time) bool
}

type tracker struct {
	count     int
	lockUntil time.Time
}

// MemoryThrottle is the single-instance throttle store: a mutex-guarded map
// keyed by email. Trackers are created lazily and live for the process
// lifetime. The counter deliberately survives an expired lockout, matching
// the per-runtime request cap this replaces.
type MemoryThrottle struct {
	mu           sync.Mutex
	limit        int
	lockDuration time.Duration
	trackers     map[string]*tracker
}

func NewMemoryThrottle(limit int, lockDuration time.Duration) *MemoryThrottle {
	return &MemoryThrottle{
		limit:        limit,
		lockDuration: lockDuration,
		trackers:     make(map[string]*tracker),
	}
}

func (t *MemoryThrottle) Locked(email string, now time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	tr, ok := t.trackers[email]
	return ok && now.Before(tr.lockUntil)
}

func (t *MemoryThrottle) Hit(email string, now time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	tr, ok := t.trackers[email]
	if !ok {
		tr = &tracker{}
		t.trackers[email] = tr
	}

	tr.count++
	if tr.count >= t.limit {
		tr.lockUntil = now.Add(t.lockDuration)
		return true
	}
	return false
}

// NewThrottle selects the shared Redis store when a client is available and
// falls back to the in-memory store otherwise. Limit and lock duration come
// from OTP_REQUEST_LIMIT and OTP_LOCK_DURATION.
func NewThrottle(redisClient *redis.Client) Throttle {
	limit := viper.GetInt("OTP_REQUEST_LIMIT")
	if limit == 0 {
		limit = DefaultRequestLimit
	}

	lockDuration := viper.GetDuration("OTP_LOCK_DURATION")
	if lockDuration == 0 {
		lockDuration = DefaultLockDuration
	}

	if redisClient != nil {
		return NewRedisThrottle(redisClient, limit, lockDuration)
	}
	return NewMemoryThrottle(limit, lockDuration)
}
