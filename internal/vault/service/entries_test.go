package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aussiebroadwan/vault/internal/vault/domain"
	"github.com/stretchr/testify/require"
)

func TestEntries(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	owner := h.signup(t, "paul@example.com").Account.ID
	stranger := h.signup(t, "quinn@example.com").Account.ID

	t.Run("requires email and password", func(t *testing.T) {
		_, err := h.entries.Create(ctx, owner, EntryInput{Email: "x@site.com"})
		requireKind(t, err, KindValidation, "Email and password are required!")
	})

	var first domain.PasswordEntry
	t.Run("create seals the secret at rest", func(t *testing.T) {
		e, err := h.entries.Create(ctx, owner, EntryInput{Email: "me@github.com", Password: "gh-secret", Description: "GitHub"})
		require.NoError(t, err)
		first = e

		stored, err := h.store.Entries().GetEntry(ctx, owner, e.ID)
		require.NoError(t, err)
		require.NotContains(t, string(stored.SealedPassword), "gh-secret")

		got, err := h.entries.Get(ctx, owner, e.ID)
		require.NoError(t, err)
		require.Equal(t, "gh-secret", got.Password)
	})

	t.Run("search and paging", func(t *testing.T) {
		for i := range 11 {
			h.clock.Advance(time.Second)
			_, err := h.entries.Create(ctx, owner, EntryInput{
				Email:       fmt.Sprintf("user%d@bank.com", i),
				Password:    "pw",
				Description: "Bank login",
			})
			require.NoError(t, err)
		}

		page, err := h.entries.List(ctx, owner, ListQuery{Search: "BANK", Page: 2, PerPage: 5})
		require.NoError(t, err)
		require.Equal(t, 11, page.Total)
		require.Equal(t, 3, page.TotalPages())
		require.Len(t, page.Items, 5)
		require.Equal(t, "user5@bank.com", page.Items[0].Email)
		require.Equal(t, "pw", page.Items[0].Password)

		page, err = h.entries.List(ctx, owner, ListQuery{PerPage: 7})
		require.NoError(t, err)
		require.Equal(t, domain.DefaultPerPage, page.PerPage)
		require.Equal(t, 1, page.Page)
		require.Equal(t, 12, page.Total)

		page, err = h.entries.List(ctx, owner, ListQuery{Search: "github"})
		require.NoError(t, err)
		require.Equal(t, 1, page.Total)
	})

	t.Run("update and delete are owner scoped", func(t *testing.T) {
		pw := "new-secret"
		_, err := h.entries.Update(ctx, stranger, first.ID, domain.EntryUpdate{Password: &pw})
		requireKind(t, err, KindNotFound, "Password entry not found")

		e, err := h.entries.Update(ctx, owner, first.ID, domain.EntryUpdate{Password: &pw})
		require.NoError(t, err)
		require.Equal(t, "new-secret", e.Password)
		require.Equal(t, "me@github.com", e.Email)

		blank := " "
		_, err = h.entries.Update(ctx, owner, first.ID, domain.EntryUpdate{Email: &blank})
		requireKind(t, err, KindValidation, "")

		err = h.entries.Delete(ctx, stranger, first.ID)
		requireKind(t, err, KindNotFound, "")
		require.NoError(t, h.entries.Delete(ctx, owner, first.ID))
		_, err = h.entries.Get(ctx, owner, first.ID)
		requireKind(t, err, KindNotFound, "")
	})
}

func TestNotificationInbox(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	owner := h.signup(t, "rita@example.com").Account.ID
	stranger := h.signup(t, "sam@example.com").Account.ID

	for range 2 {
		_, _ = h.login(t, "rita@example.com", "wrong")
	}
	n, err := h.inbox.CountUnread(ctx, owner)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	ns, err := h.inbox.List(ctx, owner)
	require.NoError(t, err)

	err = h.inbox.MarkRead(ctx, stranger, ns[0].ID)
	requireKind(t, err, KindNotFound, "Notification not found")
	require.NoError(t, h.inbox.MarkRead(ctx, owner, ns[0].ID))

	got, err := h.inbox.Get(ctx, owner, ns[0].ID)
	require.NoError(t, err)
	require.True(t, got.Read)

	marked, err := h.inbox.MarkAllRead(ctx, owner)
	require.NoError(t, err)
	require.EqualValues(t, 1, marked)

	require.NoError(t, h.inbox.Delete(ctx, owner, ns[1].ID))
	ns, err = h.inbox.List(ctx, owner)
	require.NoError(t, err)
	require.Len(t, ns, 1)
}
