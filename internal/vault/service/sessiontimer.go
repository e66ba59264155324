package service

import (
	"sync"
	"time"
)

// TickInterval is the resolution of the remaining-time readout.
const TickInterval = time.Second

// SessionTimer is the idle clock for one session. The expiry callback is
// scheduled for the full timeout on every reset; the 1s tick only reports
// remaining time and never decides expiry.
type SessionTimer struct {
	sched Scheduler
	clock Clock

	onExpire func()
	onTick   func(remaining time.Duration)

	mu         sync.Mutex
	timeout    time.Duration
	deadline   time.Time
	gen        uint64
	cancelFire Cancel
	cancelTick Cancel
	expired    bool
	stopped    bool
}

// NewSessionTimer builds an unarmed timer. onTick may be nil.
func NewSessionTimer(sched Scheduler, clock Clock, timeout time.Duration, onExpire func(), onTick func(time.Duration)) *SessionTimer {
	return &SessionTimer{
		sched:    sched,
		clock:    clock,
		timeout:  timeout,
		onExpire: onExpire,
		onTick:   onTick,
	}
}

// Start arms the timer for the full timeout.
func (t *SessionTimer) Start() {
	t.StartFor(0)
}

// StartFor arms the timer to fire after d, or the full timeout when d is
// not positive. Used when resuming a session whose deadline is known.
func (t *SessionTimer) StartFor(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped || t.expired {
		return
	}
	if d <= 0 {
		d = t.timeout
	}
	t.armLocked(d)
}

// Reset restarts the countdown after user activity.
func (t *SessionTimer) Reset() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped || t.expired {
		return false
	}
	t.armLocked(t.timeout)
	return true
}

// SetTimeout replaces the timeout and restarts the countdown with it.
func (t *SessionTimer) SetTimeout(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.timeout = d
	if t.stopped || t.expired {
		return
	}
	t.armLocked(d)
}

// Stop cancels both the expiry and the tick. Safe to call repeatedly.
func (t *SessionTimer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
	t.gen++
	t.cancelLocked()
}

func (t *SessionTimer) Remaining() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.remainingLocked()
}

func (t *SessionTimer) Deadline() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.deadline
}

func (t *SessionTimer) Expired() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.expired
}

func (t *SessionTimer) Timeout() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.timeout
}

func (t *SessionTimer) remainingLocked() time.Duration {
	if t.expired || t.deadline.IsZero() {
		return 0
	}
	return max(t.deadline.Sub(nowFrom(t.clock)), 0)
}

func (t *SessionTimer) cancelLocked() {
	if t.cancelFire != nil {
		t.cancelFire()
		t.cancelFire = nil
	}
	if t.cancelTick != nil {
		t.cancelTick()
		t.cancelTick = nil
	}
}

func (t *SessionTimer) armLocked(d time.Duration) {
	t.cancelLocked()
	t.gen++
	gen := t.gen
	t.deadline = nowFrom(t.clock).Add(d)
	t.cancelFire = t.sched.After(d, func() { t.fire(gen) })
	if t.onTick != nil {
		t.cancelTick = t.sched.After(TickInterval, func() { t.tick(gen) })
	}
}

func (t *SessionTimer) fire(gen uint64) {
	t.mu.Lock()
	if gen != t.gen || t.stopped || t.expired {
		t.mu.Unlock()
		return
	}
	t.expired = true
	t.cancelLocked()
	t.mu.Unlock()

	if t.onExpire != nil {
		t.onExpire()
	}
}

func (t *SessionTimer) tick(gen uint64) {
	t.mu.Lock()
	if gen != t.gen || t.stopped || t.expired {
		t.mu.Unlock()
		return
	}
	remaining := t.remainingLocked()
	t.cancelTick = t.sched.After(TickInterval, func() { t.tick(gen) })
	t.mu.Unlock()

	t.onTick(remaining)
}
