package throttle_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kalobtand/table-reservations/internal/throttle"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newLimiter(cooldown time.Duration) (*throttle.Limiter, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)}
	l := throttle.NewLimiterWithClock(throttle.NewMemoryStore(), cooldown, clock.now)
	return l, clock
}

func TestCheck_FirstSubmissionAllowed(t *testing.T) {
	l, _ := newLimiter(time.Minute)

	res, err := l.Check(context.Background(), "client-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Allowed {
		t.Fatal("first submission must be allowed")
	}
}

func TestCheck_DeniedWithinCooldown(t *testing.T) {
	l, clock := newLimiter(time.Minute)
	ctx := context.Background()

	if res, _ := l.Check(ctx, "client-1"); !res.Allowed {
		t.Fatal("first submission must be allowed")
	}

	clock.advance(10 * time.Second)

	res, _ := l.Check(ctx, "client-1")
	if res.Allowed {
		t.Fatal("second submission within cooldown must be denied")
	}
	if res.RetryAfter != 50 {
		t.Fatalf("retry_after = %d, want 50", res.RetryAfter)
	}
}

func TestCheck_RetryAfterAlwaysInWindow(t *testing.T) {
	ctx := context.Background()

	for _, d := range []time.Duration{time.Second, 30 * time.Second, 59 * time.Second} {
		l, clock := newLimiter(time.Minute)
		l.Check(ctx, "k")
		clock.advance(d)

		res, _ := l.Check(ctx, "k")
		if res.Allowed {
			t.Fatalf("elapsed=%v: expected deny", d)
		}
		if res.RetryAfter <= 0 || res.RetryAfter > 60 {
			t.Fatalf("elapsed=%v: retry_after=%d out of (0,60]", d, res.RetryAfter)
		}
	}
}

func TestCheck_AllowedAfterCooldown(t *testing.T) {
	l, clock := newLimiter(time.Minute)
	ctx := context.Background()

	l.Check(ctx, "client-1")
	clock.advance(time.Minute)

	res, _ := l.Check(ctx, "client-1")
	if !res.Allowed {
		t.Fatal("submission after cooldown must be allowed")
	}
}

func TestCheck_KeysAreIndependent(t *testing.T) {
	l, clock := newLimiter(time.Minute)
	ctx := context.Background()

	l.Check(ctx, "client-1")
	clock.advance(5 * time.Second)

	res, _ := l.Check(ctx, "client-2")
	if !res.Allowed {
		t.Fatal("a different client key must not share the cooldown")
	}
}

type failingStore struct{}

func (failingStore) LastSubmission(context.Context, string) (time.Time, bool, error) {
	return time.Time{}, false, errors.New("backend down")
}

func (failingStore) Record(context.Context, string, time.Time) error {
	return errors.New("backend down")
}

func TestCheck_FailsOpenOnStoreError(t *testing.T) {
	l := throttle.NewLimiter(failingStore{}, time.Minute)

	res, err := l.Check(context.Background(), "client-1")
	if err == nil {
		t.Fatal("expected the store error to be reported")
	}
	if !res.Allowed {
		t.Fatal("limiter must fail open when the store is unavailable")
	}
}
