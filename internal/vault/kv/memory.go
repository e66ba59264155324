package kv

import (
	"context"
	"sync"
	"time"
)

type item struct {
	val string
	exp time.Time // zero means no expiry
}

func (i item) expired(now time.Time) bool {
	return !i.exp.IsZero() && !now.Before(i.exp)
}

// Memory is an in-process Store. Expired items are dropped lazily on access
// and by Sweep.
type Memory struct {
	mu    sync.Mutex
	items map[string]item
	now   func() time.Time
}

func NewMemory() *Memory {
	return NewMemoryWithClock(time.Now)
}

// NewMemoryWithClock lets tests control expiry.
func NewMemoryWithClock(now func() time.Time) *Memory {
	return &Memory{items: make(map[string]item), now: now}
}

func (m *Memory) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	it := item{val: value}
	if ttl > 0 {
		it.exp = m.now().Add(ttl)
	}
	m.items[key] = it
	return nil
}

func (m *Memory) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	it, ok := m.items[key]
	if !ok {
		return "", ErrNotFound
	}
	if it.expired(m.now()) {
		delete(m.items, key)
		return "", ErrNotFound
	}
	return it.val, nil
}

func (m *Memory) Take(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	it, ok := m.items[key]
	if !ok {
		return "", ErrNotFound
	}
	delete(m.items, key)
	if it.expired(m.now()) {
		return "", ErrNotFound
	}
	return it.val, nil
}

func (m *Memory) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}

// Sweep removes expired items and returns how many were dropped.
func (m *Memory) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	n := 0
	for k, it := range m.items {
		if it.expired(now) {
			delete(m.items, k)
			n++
		}
	}
	return n
}

func (m *Memory) Ping(ctx context.Context) error { return nil }
func (m *Memory) Close() error                   { return nil }
