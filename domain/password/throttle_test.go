package password

import (
	"testing"
	"time"
)

func TestMemoryThrottleUnderLimit(t *testing.T) {
	th := NewMemoryThrottle(5, 15*time.Minute)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 4; i++ {
		if th.Locked("a@b.com", now) {
			t.Fatalf("hit %d: locked too early", i+1)
		}
		if th.Hit("a@b.com", now) {
			t.Fatalf("hit %d: crossed limit too early", i+1)
		}
	}
}

func TestMemoryThrottleCrossingLocks(t *testing.T) {
	th := NewMemoryThrottle(5, 15*time.Minute)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 4; i++ {
		th.Hit("a@b.com", now)
	}
	if !th.Hit("a@b.com", now) {
		t.Fatal("fifth hit must cross the limit")
	}
	if !th.Locked("a@b.com", now.Add(14*time.Minute)) {
		t.Fatal("must stay locked inside the lock window")
	}
	if th.Locked("a@b.com", now.Add(15*time.Minute)) {
		t.Fatal("lock must lapse once the window elapsed")
	}
}

func TestMemoryThrottleCounterSurvivesLock(t *testing.T) {
	th := NewMemoryThrottle(5, 15*time.Minute)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		th.Hit("a@b.com", now)
	}

	// The counter is a process-lifetime cap: the first hit after an expired
	// lock is already over the limit and relocks immediately.
	later := now.Add(20 * time.Minute)
	if th.Locked("a@b.com", later) {
		t.Fatal("lock should have lapsed")
	}
	if !th.Hit("a@b.com", later) {
		t.Fatal("counter must persist across an expired lock")
	}
	if !th.Locked("a@b.com", later.Add(time.Minute)) {
		t.Fatal("crossing again must relock")
	}
}

func TestMemoryThrottleIsolatesEmails(t *testing.T) {
	th := NewMemoryThrottle(5, 15*time.Minute)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		th.Hit("a@b.com", now)
	}
	if th.Locked("c@d.com", now) {
		t.Fatal("lock on one email must not affect another")
	}
	if th.Hit("c@d.com", now) {
		t.Fatal("counter on one email must not affect another")
	}
}
