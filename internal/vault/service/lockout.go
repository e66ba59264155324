package service

import (
	"time"

	"github.com/aussiebroadwan/vault/internal/vault/domain"
)

// LockoutTracker is the per-account attempt state machine. The state lives
// on the account; the tracker only computes transitions.
type LockoutTracker struct {
	MaxAttempts int
	Duration    time.Duration
}

// DefaultLockout allows three attempts then locks for fifteen minutes.
var DefaultLockout = LockoutTracker{
	MaxAttempts: domain.MaxFailedAttempts,
	Duration:    domain.LockoutDuration,
}

func (t LockoutTracker) max() int {
	if t.MaxAttempts <= 0 {
		return domain.MaxFailedAttempts
	}
	return t.MaxAttempts
}

func (t LockoutTracker) duration() time.Duration {
	if t.Duration <= 0 {
		return domain.LockoutDuration
	}
	return t.Duration
}

// Locked reports whether a is locked at now and, if so, the whole minutes
// left, rounded up.
func (t LockoutTracker) Locked(a domain.Account, now time.Time) (bool, int) {
	if a.LockedUntil == nil || !now.Before(*a.LockedUntil) {
		return false, 0
	}
	left := a.LockedUntil.Sub(now)
	mins := int((left + time.Minute - 1) / time.Minute)
	return true, mins
}

// Failure is the outcome of one wrong password.
type Failure struct {
	Attempts    int
	Remaining   int
	Locked      bool
	LockedUntil time.Time
	Update      domain.AccountUpdate
}

// RecordFailure computes the next state after a wrong password. An expired
// lock counts as a fresh start.
func (t LockoutTracker) RecordFailure(a domain.Account, now time.Time) Failure {
	prev := a.FailedAttempts
	lapsed := a.LockedUntil != nil && !now.Before(*a.LockedUntil)
	if lapsed {
		prev = 0
	}

	f := Failure{Attempts: prev + 1}
	f.Update.FailedAttempts = &f.Attempts
	if lapsed {
		f.Update.ClearLock = true
	}

	if f.Attempts >= t.max() {
		f.Locked = true
		f.LockedUntil = now.Add(t.duration())
		f.Update.LockedUntil = &f.LockedUntil
		f.Update.ClearLock = false
		return f
	}
	f.Remaining = t.max() - f.Attempts
	return f
}

// RecordSuccess clears the counter and any lock.
func (t LockoutTracker) RecordSuccess() domain.AccountUpdate {
	zero := 0
	return domain.AccountUpdate{FailedAttempts: &zero, ClearLock: true}
}
