package sqlite_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/aussiebroadwan/vault/internal/vault/domain"
	"github.com/aussiebroadwan/vault/internal/vault/store"
	"github.com/aussiebroadwan/vault/internal/vault/store/drivers/sqlite"
	"github.com/aussiebroadwan/vault/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func newAccount(t *testing.T, st store.Store, email string) domain.Account {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Millisecond)
	a := domain.Account{
		ID:             idx.New().String(),
		Username:       "user",
		Email:          email,
		PasswordHash:   "$argon2id$stub",
		SessionTimeout: domain.DefaultSessionTimeout,
		CreatedAt:      now,
	}
	require.NoError(t, st.Accounts().CreateAccount(context.Background(), a))
	return a
}

func TestAccounts(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)

	a := newAccount(t, st, "Alice@Example.com")

	t.Run("email is stored lowercased and matched case-insensitively", func(t *testing.T) {
		got, err := st.Accounts().GetAccountByEmail(ctx, "ALICE@example.COM")
		require.NoError(t, err)
		require.Equal(t, a.ID, got.ID)
		require.Equal(t, "alice@example.com", got.Email)
		require.Equal(t, a.CreatedAt, got.CreatedAt)
		require.Nil(t, got.LockedUntil)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		dup := a
		dup.ID = idx.New().String()
		dup.Email = "alice@EXAMPLE.com"
		err := st.Accounts().CreateAccount(ctx, dup)
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := st.Accounts().GetAccountByEmail(ctx, "nobody@example.com")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("partial update and clear lock", func(t *testing.T) {
		attempts := 3
		until := time.Now().Add(15 * time.Minute).UTC().Truncate(time.Millisecond)
		require.NoError(t, st.Accounts().UpdateAccount(ctx, a.ID, domain.AccountUpdate{
			FailedAttempts: &attempts,
			LockedUntil:    &until,
		}))

		got, err := st.Accounts().GetAccountByID(ctx, a.ID)
		require.NoError(t, err)
		require.Equal(t, 3, got.FailedAttempts)
		require.NotNil(t, got.LockedUntil)
		require.True(t, until.Equal(*got.LockedUntil))
		require.Equal(t, "user", got.Username)

		zero := 0
		require.NoError(t, st.Accounts().UpdateAccount(ctx, a.ID, domain.AccountUpdate{
			FailedAttempts: &zero,
			ClearLock:      true,
		}))
		got, err = st.Accounts().GetAccountByID(ctx, a.ID)
		require.NoError(t, err)
		require.Zero(t, got.FailedAttempts)
		require.Nil(t, got.LockedUntil)
	})

	t.Run("reset token set and clear", func(t *testing.T) {
		secret := "JBSWY3DPEHPK3PXP"
		exp := time.Now().Add(15 * time.Minute)
		require.NoError(t, st.Accounts().UpdateAccount(ctx, a.ID, domain.AccountUpdate{
			ResetToken:       &secret,
			ResetTokenExpiry: &exp,
		}))
		got, err := st.Accounts().GetAccountByID(ctx, a.ID)
		require.NoError(t, err)
		require.Equal(t, secret, *got.ResetToken)

		require.NoError(t, st.Accounts().UpdateAccount(ctx, a.ID, domain.AccountUpdate{ClearResetToken: true}))
		got, err = st.Accounts().GetAccountByID(ctx, a.ID)
		require.NoError(t, err)
		require.Nil(t, got.ResetToken)
		require.Nil(t, got.ResetTokenExpiry)
	})

	t.Run("email change into a taken address", func(t *testing.T) {
		b := newAccount(t, st, "bob@example.com")
		taken := "ALICE@example.com"
		err := st.Accounts().UpdateAccount(ctx, b.ID, domain.AccountUpdate{Email: &taken})
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("update unknown account", func(t *testing.T) {
		name := "x"
		err := st.Accounts().UpdateAccount(ctx, "missing", domain.AccountUpdate{Username: &name})
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestSessions(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	a := newAccount(t, st, "s@example.com")
	now := time.Now().UTC()

	mk := func(hash string, exp time.Time) {
		require.NoError(t, st.Sessions().CreateSession(ctx, domain.Session{
			ID:        idx.New().String(),
			AccountID: a.ID,
			TokenHash: hash,
			ExpiresAt: exp,
			CreatedAt: now,
		}))
	}
	mk("live", now.Add(5*time.Minute))
	mk("stale-1", now.Add(-time.Minute))
	mk("stale-2", now.Add(-time.Hour))

	require.ErrorIs(t, st.Sessions().CreateSession(ctx, domain.Session{
		ID: idx.New().String(), AccountID: a.ID, TokenHash: "live", ExpiresAt: now, CreatedAt: now,
	}), store.ErrAlreadyExists)

	require.NoError(t, st.Sessions().DeleteExpiredAccountSessions(ctx, a.ID, now))

	_, err := st.Sessions().GetSessionByTokenHash(ctx, "stale-1")
	require.ErrorIs(t, err, store.ErrNotFound)
	live, err := st.Sessions().GetSessionByTokenHash(ctx, "live")
	require.NoError(t, err)
	require.Equal(t, a.ID, live.AccountID)

	later := now.Add(10 * time.Minute).Truncate(time.Millisecond)
	require.NoError(t, st.Sessions().UpdateSessionExpiry(ctx, "live", later))
	live, err = st.Sessions().GetSessionByTokenHash(ctx, "live")
	require.NoError(t, err)
	require.True(t, later.Equal(live.ExpiresAt))

	mk("stale-3", now.Add(-time.Second))
	reset := now.Add(15 * time.Minute).Truncate(time.Millisecond)
	n, err := st.Sessions().ResetAccountSessionExpiry(ctx, a.ID, now, reset)
	require.NoError(t, err)
	require.EqualValues(t, 1, n, "only live sessions move")
	live, err = st.Sessions().GetSessionByTokenHash(ctx, "live")
	require.NoError(t, err)
	require.True(t, reset.Equal(live.ExpiresAt))
	stale, err := st.Sessions().GetSessionByTokenHash(ctx, "stale-3")
	require.NoError(t, err)
	require.True(t, stale.ExpiresAt.Before(now))

	n, err = st.Sessions().DeleteExpiredSessions(ctx, now.Add(time.Hour))
	require.NoError(t, err)
	require.EqualValues(t, 2, n)

	require.ErrorIs(t, st.Sessions().UpdateSessionExpiry(ctx, "live", later), store.ErrNotFound)
}

func TestNotificationsOwnership(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	alice := newAccount(t, st, "alice@example.com")
	bob := newAccount(t, st, "bob@example.com")
	base := time.Now().UTC().Truncate(time.Millisecond)

	var ids []string
	for i, sev := range []domain.Severity{domain.SeverityMedium, domain.SeverityHigh, domain.SeverityCritical} {
		n := domain.SecurityNotification{
			ID:             idx.New().String(),
			AccountID:      alice.ID,
			Type:           domain.NotificationFailedLogin,
			Title:          "Failed Login Attempt",
			Message:        fmt.Sprintf("attempt %d", i+1),
			Severity:       sev,
			Device:         domain.DeviceInfo{UserAgent: "ua", Fingerprint: "fp"},
			AttemptedEmail: alice.Email,
			FailedAttempts: i + 1,
			CreatedAt:      base.Add(time.Duration(i) * time.Second),
		}
		if i == 2 {
			loc := domain.UnknownLocation("203.0.113.7")
			n.Location = &loc
			n.Screenshot = []byte{0xff, 0xd8, 0xff}
		}
		require.NoError(t, st.Notifications().CreateNotification(ctx, n))
		ids = append(ids, n.ID)
	}

	list, err := st.Notifications().ListNotifications(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Equal(t, ids[2], list[0].ID, "newest first")
	require.Equal(t, domain.SeverityCritical, list[0].Severity)
	require.Equal(t, []byte{0xff, 0xd8, 0xff}, list[0].Screenshot)
	require.Equal(t, "203.0.113.7", list[0].Location.IP)
	require.Nil(t, list[1].Location)
	require.Empty(t, list[1].Screenshot)

	unread, err := st.Notifications().CountUnreadNotifications(ctx, alice.ID)
	require.NoError(t, err)
	require.Equal(t, 3, unread)

	// Bob cannot touch Alice's notifications
	require.ErrorIs(t, st.Notifications().MarkNotificationRead(ctx, bob.ID, ids[0]), store.ErrNotFound)
	require.ErrorIs(t, st.Notifications().DeleteNotification(ctx, bob.ID, ids[0]), store.ErrNotFound)

	require.NoError(t, st.Notifications().MarkNotificationRead(ctx, alice.ID, ids[0]))
	n, err := st.Notifications().MarkAllNotificationsRead(ctx, alice.ID)
	require.NoError(t, err)
	require.EqualValues(t, 2, n)

	unread, err = st.Notifications().CountUnreadNotifications(ctx, alice.ID)
	require.NoError(t, err)
	require.Zero(t, unread)

	require.NoError(t, st.Notifications().DeleteNotification(ctx, alice.ID, ids[1]))
	_, err = st.Notifications().GetNotification(ctx, alice.ID, ids[1])
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestSecurityEvents(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	now := time.Now().UTC()

	for i := range 3 {
		require.NoError(t, st.SecurityEvents().CreateSecurityEvent(ctx, domain.SecurityEvent{
			ID:             idx.New().String(),
			Type:           domain.NotificationFailedLogin,
			Title:          "Failed Login Attempt",
			Message:        "Someone tried to login with email: ghost@example.com",
			Severity:       domain.SeverityMedium,
			AttemptedEmail: "ghost@example.com",
			FailedAttempts: 1,
			CreatedAt:      now.Add(-time.Duration(i) * 24 * time.Hour),
		}))
	}

	events, err := st.SecurityEvents().ListSecurityEventsByEmail(ctx, "GHOST@example.com", 10)
	require.NoError(t, err)
	require.Len(t, events, 3)
	require.Equal(t, domain.SeverityMedium, events[0].Severity)

	n, err := st.SecurityEvents().DeleteSecurityEventsBefore(ctx, now.Add(-time.Hour))
	require.NoError(t, err)
	require.EqualValues(t, 2, n)
}

func TestConsents(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)

	c := domain.Consent{
		ID:             idx.New().String(),
		SessionID:      "6f1c1d8e-8f7a-4a43-9b1e-3f7e2d8f1a2b",
		Accepted:       true,
		Permissions:    domain.Permissions{Camera: true, Location: true, Storage: true},
		TimeToDecision: 2500 * time.Millisecond,
		IPAddress:      "203.0.113.1",
		UserAgent:      "ua",
		CreatedAt:      time.Now(),
	}
	require.NoError(t, st.Consents().CreateConsent(ctx, c))

	got, err := st.Consents().GetConsentBySessionID(ctx, c.SessionID)
	require.NoError(t, err)
	require.True(t, got.Accepted)
	require.True(t, got.Permissions.AllGranted())
	require.Equal(t, 2500*time.Millisecond, got.TimeToDecision)

	again := c
	again.ID = idx.New().String()
	require.ErrorIs(t, st.Consents().CreateConsent(ctx, again), store.ErrAlreadyExists)

	_, err = st.Consents().GetConsentBySessionID(ctx, "other")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestEntriesSearchAndPaging(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	a := newAccount(t, st, "owner@example.com")
	other := newAccount(t, st, "other@example.com")
	base := time.Now().UTC()

	for i := range 12 {
		desc := fmt.Sprintf("site %d", i)
		if i%3 == 0 {
			desc = "GitHub work 100%"
		}
		require.NoError(t, st.Entries().CreateEntry(ctx, domain.PasswordEntry{
			ID:             idx.New().String(),
			AccountID:      a.ID,
			Email:          fmt.Sprintf("login%d@mail.test", i),
			SealedPassword: []byte{byte(i)},
			Description:    desc,
			CreatedAt:      base.Add(time.Duration(i) * time.Second),
		}))
	}
	require.NoError(t, st.Entries().CreateEntry(ctx, domain.PasswordEntry{
		ID: idx.New().String(), AccountID: other.ID, Email: "github@x", SealedPassword: []byte{1},
		Description: "github", CreatedAt: base,
	}))

	page, total, err := st.Entries().ListEntries(ctx, store.EntryFilter{AccountID: a.ID, Limit: 5})
	require.NoError(t, err)
	require.Equal(t, 12, total)
	require.Len(t, page, 5)
	require.Equal(t, "login11@mail.test", page[0].Email, "newest first")

	last, _, err := st.Entries().ListEntries(ctx, store.EntryFilter{AccountID: a.ID, Limit: 5, Offset: 10})
	require.NoError(t, err)
	require.Len(t, last, 2)

	hits, total, err := st.Entries().ListEntries(ctx, store.EntryFilter{AccountID: a.ID, Query: "github"})
	require.NoError(t, err)
	require.Equal(t, 4, total)
	require.Len(t, hits, 4)

	// Wildcards in the query are literal
	hits, _, err = st.Entries().ListEntries(ctx, store.EntryFilter{AccountID: a.ID, Query: "100%"})
	require.NoError(t, err)
	require.Len(t, hits, 4)
	hits, _, err = st.Entries().ListEntries(ctx, store.EntryFilter{AccountID: a.ID, Query: "_"})
	require.NoError(t, err)
	require.Empty(t, hits)

	hits, _, err = st.Entries().ListEntries(ctx, store.EntryFilter{AccountID: a.ID, Query: "LOGIN7@"})
	require.NoError(t, err)
	require.Len(t, hits, 1)

	e := hits[0]
	e.Description = "updated"
	e.UpdatedAt = time.Now()
	require.NoError(t, st.Entries().UpdateEntry(ctx, e))
	got, err := st.Entries().GetEntry(ctx, a.ID, e.ID)
	require.NoError(t, err)
	require.Equal(t, "updated", got.Description)

	_, err = st.Entries().GetEntry(ctx, other.ID, e.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
	require.ErrorIs(t, st.Entries().DeleteEntry(ctx, other.ID, e.ID), store.ErrNotFound)
	require.NoError(t, st.Entries().DeleteEntry(ctx, a.ID, e.ID))
}

func TestWithTxRollsBack(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	a := newAccount(t, st, "tx@example.com")

	boom := errors.New("boom")
	err := st.WithTx(ctx, func(tx store.Tx) error {
		attempts := 2
		if err := tx.Accounts().UpdateAccount(ctx, a.ID, domain.AccountUpdate{FailedAttempts: &attempts}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := st.Accounts().GetAccountByID(ctx, a.ID)
	require.NoError(t, err)
	require.Zero(t, got.FailedAttempts)
}

func TestForeignKeysEnforced(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)

	err := st.Sessions().CreateSession(ctx, domain.Session{
		ID: idx.New().String(), AccountID: "no-such-account", TokenHash: "h",
		ExpiresAt: time.Now(), CreatedAt: time.Now(),
	})
	require.Error(t, err)
}
