package middleware

import (
	"testing"
	"time"
)

func TestLoginProtectionLockout(t *testing.T) {
	lp := NewLoginProtection(LoginProtectionConfig{
		MaxFailedAttempts: 3,
		LockoutDuration:   time.Minute,
		AttemptWindow:     time.Minute,
	})

	if locked, _ := lp.IsAccountLocked("admin"); locked {
		t.Fatal("account locked before any attempts")
	}

	lp.RecordFailedAttempt("admin")
	lp.RecordFailedAttempt("admin")
	if remaining := lp.GetRemainingAttempts("admin"); remaining != 1 {
		t.Errorf("remaining = %d, want 1", remaining)
	}

	locked, duration := lp.RecordFailedAttempt("admin")
	if !locked {
		t.Fatal("account not locked after max attempts")
	}
	if duration != time.Minute {
		t.Errorf("lock duration = %v, want 1m", duration)
	}

	if locked, remaining := lp.IsAccountLocked("admin"); !locked || remaining <= 0 {
		t.Errorf("IsAccountLocked = %v, %v", locked, remaining)
	}
}

func TestLoginProtectionSuccessClearsAttempts(t *testing.T) {
	lp := NewLoginProtection(DefaultLoginProtectionConfig())

	lp.RecordFailedAttempt("editor")
	lp.RecordFailedAttempt("editor")
	lp.RecordSuccessfulLogin("editor")

	if remaining := lp.GetRemainingAttempts("editor"); remaining != 5 {
		t.Errorf("remaining = %d, want 5 after successful login", remaining)
	}
}

func TestLoginProtectionAccountsIndependent(t *testing.T) {
	lp := NewLoginProtection(LoginProtectionConfig{
		MaxFailedAttempts: 2,
		LockoutDuration:   time.Minute,
		AttemptWindow:     time.Minute,
	})

	lp.RecordFailedAttempt("a")
	lp.RecordFailedAttempt("a")

	if locked, _ := lp.IsAccountLocked("b"); locked {
		t.Error("unrelated account locked")
	}
}
