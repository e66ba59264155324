package service

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/vault/internal/vault/domain"
	"github.com/stretchr/testify/require"
)

func TestLockoutTracker(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tr := DefaultLockout

	t.Run("counts up then locks on the third failure", func(t *testing.T) {
		a := domain.Account{}

		f := tr.RecordFailure(a, now)
		require.Equal(t, 1, f.Attempts)
		require.Equal(t, 2, f.Remaining)
		require.False(t, f.Locked)
		require.Nil(t, f.Update.LockedUntil)

		a.FailedAttempts = 1
		f = tr.RecordFailure(a, now)
		require.Equal(t, 2, f.Attempts)
		require.Equal(t, 1, f.Remaining)

		a.FailedAttempts = 2
		f = tr.RecordFailure(a, now)
		require.Equal(t, 3, f.Attempts)
		require.True(t, f.Locked)
		require.Equal(t, now.Add(15*time.Minute), f.LockedUntil)
		require.NotNil(t, f.Update.LockedUntil)
		require.Equal(t, 3, *f.Update.FailedAttempts)
	})

	t.Run("remaining minutes round up", func(t *testing.T) {
		until := now.Add(14*time.Minute + time.Second)
		locked, mins := tr.Locked(domain.Account{LockedUntil: &until}, now)
		require.True(t, locked)
		require.Equal(t, 15, mins)

		until = now.Add(30 * time.Second)
		_, mins = tr.Locked(domain.Account{LockedUntil: &until}, now)
		require.Equal(t, 1, mins)
	})

	t.Run("lock lapses at the deadline", func(t *testing.T) {
		until := now
		locked, _ := tr.Locked(domain.Account{LockedUntil: &until}, now)
		require.False(t, locked)

		locked, _ = tr.Locked(domain.Account{}, now)
		require.False(t, locked)
	})

	t.Run("failure after a lapsed lock starts from zero", func(t *testing.T) {
		until := now.Add(-time.Minute)
		f := tr.RecordFailure(domain.Account{FailedAttempts: 3, LockedUntil: &until}, now)
		require.Equal(t, 1, f.Attempts)
		require.False(t, f.Locked)
		require.True(t, f.Update.ClearLock)
	})

	t.Run("success clears everything", func(t *testing.T) {
		u := tr.RecordSuccess()
		require.Equal(t, 0, *u.FailedAttempts)
		require.True(t, u.ClearLock)
	})
}
