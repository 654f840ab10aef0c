package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestNewSpaced_EnforcesMinimumInterval(t *testing.T) {
	const interval = 50 * time.Millisecond
	l := NewSpaced(interval)

	ctx := context.Background()
	start := time.Now()

	for i := 0; i < 3; i++ {
		if err := l.Wait(ctx); err != nil {
			t.Fatalf("wait %d failed: %v", i, err)
		}
	}

	// First event is immediate, the next two must each wait a full interval.
	elapsed := time.Since(start)
	if want := 2 * interval; elapsed < want {
		t.Errorf("3 events completed in %v, want at least %v", elapsed, want)
	}
}

func TestNewSpaced_FirstEventImmediate(t *testing.T) {
	l := NewSpaced(time.Hour)

	if !l.Allow() {
		t.Error("first event should be allowed immediately")
	}
	if l.Allow() {
		t.Error("second event inside the interval should be denied")
	}
}

func TestWait_CancelledContext(t *testing.T) {
	l := NewSpaced(time.Hour)
	l.Allow() // drain the single token

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := l.Wait(ctx); err == nil {
		t.Error("expected error from Wait with cancelled context")
	}
}
