// Package kv is the short-lived key/value capability: challenge answers,
// session-expired markers and similar values that only need to outlive a
// request by minutes. Redis backs it in production; Memory serves
// development and tests.
package kv

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("kv: not found")

type Store interface {
	// Set stores value under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// Get returns ErrNotFound for missing or expired keys.
	Get(ctx context.Context, key string) (string, error)

	// Take atomically reads and deletes key.
	Take(ctx context.Context, key string) (string, error)

	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}

// Key namespaces.
const (
	PrefixChallenge      = "challenge:"
	PrefixSessionExpired = "session_expired:"
)
