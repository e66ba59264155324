package service

import (
	"sync"
	"time"
)

type TimerEventType string

const (
	TimerTick    TimerEventType = "tick"
	TimerReset   TimerEventType = "reset"
	TimerExpired TimerEventType = "expired"
)

// TimerEvent is pushed to subscribers of a session's timer.
type TimerEvent struct {
	Type      TimerEventType `json:"type"`
	Remaining int            `json:"remaining_seconds"`
}

const subscriberBuffer = 8

type timerEntry struct {
	accountID string
	timer     *SessionTimer
	subs      map[int]chan TimerEvent
}

// TimerRegistry owns the live SessionTimer of every session, keyed by the
// session token fingerprint, and fans their events out to subscribers.
type TimerRegistry struct {
	Scheduler Scheduler
	Clock     Clock

	// OnExpire runs once per session when its idle timeout elapses.
	OnExpire func(key, accountID string)

	mu      sync.Mutex
	entries map[string]*timerEntry
	nextSub int
}

func NewTimerRegistry(sched Scheduler, clock Clock) *TimerRegistry {
	return &TimerRegistry{
		Scheduler: sched,
		Clock:     clock,
		entries:   make(map[string]*timerEntry),
	}
}

// Start begins (or restarts) the timer for key with the full timeout.
func (r *TimerRegistry) Start(key, accountID string, timeout time.Duration) {
	r.StartFor(key, accountID, timeout, 0)
}

// StartFor is Start with an initial countdown shorter than timeout.
func (r *TimerRegistry) StartFor(key, accountID string, timeout, first time.Duration) {
	r.mu.Lock()
	if r.entries == nil {
		r.entries = make(map[string]*timerEntry)
	}
	old := r.entries[key]
	e := &timerEntry{accountID: accountID, subs: make(map[int]chan TimerEvent)}
	if old != nil {
		e.subs = old.subs
	}
	e.timer = NewSessionTimer(r.Scheduler, r.Clock, timeout,
		func() { r.expire(key, e) },
		func(left time.Duration) { r.publish(e, TimerEvent{Type: TimerTick, Remaining: seconds(left)}) },
	)
	r.entries[key] = e
	r.mu.Unlock()

	if old != nil {
		old.timer.Stop()
	}
	e.timer.StartFor(first)
}

// Has reports whether key has a running timer.
func (r *TimerRegistry) Has(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.entries[key]
	return ok
}

// Activity resets the countdown for key. It reports false when no timer
// is running for key.
func (r *TimerRegistry) Activity(key string) bool {
	e := r.get(key)
	if e == nil || !e.timer.Reset() {
		return false
	}
	r.publish(e, TimerEvent{Type: TimerReset, Remaining: seconds(e.timer.Remaining())})
	return true
}

// Remaining returns the time left for key.
func (r *TimerRegistry) Remaining(key string) (time.Duration, bool) {
	e := r.get(key)
	if e == nil {
		return 0, false
	}
	return e.timer.Remaining(), true
}

// SetTimeout restarts every timer of accountID with the new timeout.
func (r *TimerRegistry) SetTimeout(accountID string, timeout time.Duration) int {
	r.mu.Lock()
	var hits []*timerEntry
	for _, e := range r.entries {
		if e.accountID == accountID {
			hits = append(hits, e)
		}
	}
	r.mu.Unlock()

	for _, e := range hits {
		e.timer.SetTimeout(timeout)
		r.publish(e, TimerEvent{Type: TimerReset, Remaining: seconds(e.timer.Remaining())})
	}
	return len(hits)
}

// Stop cancels the timer for key and closes its subscriptions.
func (r *TimerRegistry) Stop(key string) {
	r.mu.Lock()
	e := r.entries[key]
	delete(r.entries, key)
	r.mu.Unlock()
	if e == nil {
		return
	}
	e.timer.Stop()
	r.closeSubs(e)
}

// StopAccount stops every timer owned by accountID.
func (r *TimerRegistry) StopAccount(accountID string) {
	r.mu.Lock()
	var keys []string
	for k, e := range r.entries {
		if e.accountID == accountID {
			keys = append(keys, k)
		}
	}
	r.mu.Unlock()
	for _, k := range keys {
		r.Stop(k)
	}
}

// StopAll cancels every timer, used on shutdown.
func (r *TimerRegistry) StopAll() {
	r.mu.Lock()
	keys := make([]string, 0, len(r.entries))
	for k := range r.entries {
		keys = append(keys, k)
	}
	r.mu.Unlock()
	for _, k := range keys {
		r.Stop(k)
	}
}

// Subscribe returns a channel of events for key and a function that ends
// the subscription. The channel is closed after an expired event or when
// the timer is stopped.
func (r *TimerRegistry) Subscribe(key string) (<-chan TimerEvent, func(), bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e := r.entries[key]
	if e == nil {
		return nil, func() {}, false
	}
	id := r.nextSub
	r.nextSub++
	ch := make(chan TimerEvent, subscriberBuffer)
	e.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			if c, ok := e.subs[id]; ok {
				delete(e.subs, id)
				close(c)
			}
		})
	}, true
}

func (r *TimerRegistry) get(key string) *timerEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.entries[key]
}

// expire runs for the entry that fired. A fire from a replaced or stopped
// entry is dropped: the restarted entry owns the session and shares its
// subscriptions.
func (r *TimerRegistry) expire(key string, e *timerEntry) {
	r.mu.Lock()
	if r.entries[key] != e {
		r.mu.Unlock()
		return
	}
	delete(r.entries, key)
	r.mu.Unlock()

	if r.OnExpire != nil {
		r.OnExpire(key, e.accountID)
	}
	r.publish(e, TimerEvent{Type: TimerExpired})
	r.closeSubs(e)
}

// publish never blocks. A slow subscriber misses ticks, but an expired
// event displaces the oldest queued one.
func (r *TimerRegistry) publish(e *timerEntry, ev TimerEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ch := range e.subs {
		select {
		case ch <- ev:
			continue
		default:
		}
		if ev.Type != TimerExpired {
			continue
		}
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- ev:
		default:
		}
	}
}

func (r *TimerRegistry) closeSubs(e *timerEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, ch := range e.subs {
		delete(e.subs, id)
		close(ch)
	}
}

func seconds(d time.Duration) int {
	return int((d + time.Second - 1) / time.Second)
}
