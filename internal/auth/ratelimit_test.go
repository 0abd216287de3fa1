package auth

import (
	"testing"
	"time"
)

func TestRateLimiter_BlocksAfterMaxAttempts(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute, time.Minute)

	for i := 0; i < 3; i++ {
		if !rl.Allow("10.0.0.1") {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}
	if rl.Allow("10.0.0.1") {
		t.Error("fourth attempt should be blocked")
	}
	if rl.GetBlockedUntil("10.0.0.1").IsZero() {
		t.Error("expected a block expiry")
	}

	// Other keys are unaffected
	if !rl.Allow("10.0.0.2") {
		t.Error("different IP should be allowed")
	}
}

func TestRateLimiter_RecordSuccessResets(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute, time.Minute)

	rl.Allow("10.0.0.1")
	rl.Allow("10.0.0.1")
	rl.RecordSuccess("10.0.0.1")

	if !rl.Allow("10.0.0.1") {
		t.Error("attempt after success should be allowed")
	}
}
