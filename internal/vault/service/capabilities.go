package service

import (
	"context"
	"crypto/rand"
	"image"
	"math/big"
	"time"

	"github.com/aussiebroadwan/vault/internal/vault/domain"
	"github.com/aussiebroadwan/vault/internal/vault/kv"
)

// Clock is the time source for every expiry decision in the package.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// RandomSource picks indexes for challenges.
type RandomSource interface {
	// Intn returns a value in [0, n).
	Intn(n int) int
}

// CryptoRandom draws from crypto/rand. It falls back to 0 if the system
// source fails, which only affects which challenge is shown.
type CryptoRandom struct{}

func (CryptoRandom) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(v.Int64())
}

// Cancel stops a scheduled callback. Calling it more than once is safe.
type Cancel func()

// Scheduler runs fn once after d unless cancelled first.
type Scheduler interface {
	After(d time.Duration, fn func()) Cancel
}

// TimerScheduler schedules on the runtime timer heap.
type TimerScheduler struct{}

func (TimerScheduler) After(d time.Duration, fn func()) Cancel {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// MediaTrack is one track of an open camera stream.
type MediaTrack interface {
	Stop()
}

// MediaStream is an acquired camera. Every track must be stopped once the
// caller is done with it.
type MediaStream interface {
	Tracks() []MediaTrack
	Frame(ctx context.Context) (image.Image, error)
}

// CameraDevice hands out exclusive streams.
type CameraDevice interface {
	Open(ctx context.Context) (MediaStream, error)
}

// LocationHint is what the request knows about where the client is.
type LocationHint struct {
	IP        string
	Latitude  *float64
	Longitude *float64
}

// LocationProvider resolves a hint to a place. Implementations may block;
// callers bound them with a timeout.
type LocationProvider interface {
	Locate(ctx context.Context, hint LocationHint) (domain.LocationInfo, error)
}

// PasswordVerifier compares a candidate against a stored hash.
type PasswordVerifier interface {
	Verify(candidate, storedHash string) bool
	Hash(password string) (string, error)
}

// KeyValueStore holds short-lived server-side state.
type KeyValueStore = kv.Store

func nowFrom(c Clock) time.Time {
	if c == nil {
		return time.Now()
	}
	return c.Now()
}
