package service

import (
	"context"
	"errors"
	"strings"

	"github.com/aussiebroadwan/vault/internal/vault/domain"
	"github.com/aussiebroadwan/vault/internal/vault/store"
	"github.com/aussiebroadwan/vault/pkg/cryptox"
	"github.com/aussiebroadwan/vault/pkg/idx"
	"github.com/aussiebroadwan/vault/pkg/slogx"
)

// EntryService manages an account's stored credentials. Secrets are sealed
// before they reach the store and opened on the way out.
type EntryService struct {
	Store  store.Store
	Sealer *cryptox.Sealer
	Clock  Clock
}

// EntryInput is the create form.
type EntryInput struct {
	Email       string
	Password    string
	Description string
}

// ListQuery selects a page of entries.
type ListQuery struct {
	Search  string
	Page    int
	PerPage int
}

func (s *EntryService) Create(ctx context.Context, accountID string, in EntryInput) (domain.PasswordEntry, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || strings.TrimSpace(in.Password) == "" {
		return domain.PasswordEntry{}, validationError("Email and password are required!")
	}

	sealed, err := s.Sealer.Seal([]byte(in.Password))
	if err != nil {
		return domain.PasswordEntry{}, persistenceError("Failed to create password entry", err)
	}
	now := nowFrom(s.Clock)
	e := domain.PasswordEntry{
		ID:             idx.New().String(),
		AccountID:      accountID,
		Email:          email,
		Password:       in.Password,
		SealedPassword: sealed,
		Description:    strings.TrimSpace(in.Description),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.Store.Entries().CreateEntry(ctx, e); err != nil {
		return domain.PasswordEntry{}, persistenceError("Failed to create password entry", err)
	}
	slogx.FromContext(ctx).Info("password entry created", "entry_id", e.ID)
	return e, nil
}

// List returns one page, newest first. Out-of-range page sizes fall back to
// the default and pages start at 1.
func (s *EntryService) List(ctx context.Context, accountID string, q ListQuery) (domain.Page[domain.PasswordEntry], error) {
	perPage := q.PerPage
	if !domain.ValidPerPage(perPage) {
		perPage = domain.DefaultPerPage
	}
	page := max(q.Page, 1)

	items, total, err := s.Store.Entries().ListEntries(ctx, store.EntryFilter{
		AccountID: accountID,
		Query:     strings.TrimSpace(q.Search),
		Limit:     perPage,
		Offset:    (page - 1) * perPage,
	})
	if err != nil {
		return domain.Page[domain.PasswordEntry]{}, persistenceError("Failed to load password entries", err)
	}
	for i := range items {
		if err := s.open(&items[i]); err != nil {
			return domain.Page[domain.PasswordEntry]{}, persistenceError("Failed to load password entries", err)
		}
	}
	return domain.Page[domain.PasswordEntry]{Items: items, Page: page, PerPage: perPage, Total: total}, nil
}

func (s *EntryService) Get(ctx context.Context, accountID, id string) (domain.PasswordEntry, error) {
	e, err := s.Store.Entries().GetEntry(ctx, accountID, id)
	if err != nil {
		return domain.PasswordEntry{}, entryError("Failed to load password entry", err)
	}
	if err := s.open(&e); err != nil {
		return domain.PasswordEntry{}, persistenceError("Failed to load password entry", err)
	}
	return e, nil
}

// Update applies a partial edit. Email and password may not be blanked.
func (s *EntryService) Update(ctx context.Context, accountID, id string, u domain.EntryUpdate) (domain.PasswordEntry, error) {
	e, err := s.Store.Entries().GetEntry(ctx, accountID, id)
	if err != nil {
		return domain.PasswordEntry{}, entryError("Failed to update password entry", err)
	}

	if u.Email != nil {
		e.Email = strings.TrimSpace(*u.Email)
	}
	if u.Description != nil {
		e.Description = strings.TrimSpace(*u.Description)
	}
	if u.Password != nil {
		if strings.TrimSpace(*u.Password) == "" {
			return domain.PasswordEntry{}, validationError("Email and password are required!")
		}
		sealed, err := s.Sealer.Seal([]byte(*u.Password))
		if err != nil {
			return domain.PasswordEntry{}, persistenceError("Failed to update password entry", err)
		}
		e.SealedPassword = sealed
	}
	if e.Email == "" {
		return domain.PasswordEntry{}, validationError("Email and password are required!")
	}
	e.UpdatedAt = nowFrom(s.Clock)

	if err := s.Store.Entries().UpdateEntry(ctx, e); err != nil {
		return domain.PasswordEntry{}, entryError("Failed to update password entry", err)
	}
	if err := s.open(&e); err != nil {
		return domain.PasswordEntry{}, persistenceError("Failed to update password entry", err)
	}
	return e, nil
}

func (s *EntryService) Delete(ctx context.Context, accountID, id string) error {
	if err := s.Store.Entries().DeleteEntry(ctx, accountID, id); err != nil {
		return entryError("Failed to delete password entry", err)
	}
	slogx.FromContext(ctx).Info("password entry deleted", "entry_id", id)
	return nil
}

func (s *EntryService) open(e *domain.PasswordEntry) error {
	plain, err := s.Sealer.Open(e.SealedPassword)
	if err != nil {
		return err
	}
	e.Password = string(plain)
	return nil
}

func entryError(msg string, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return notFoundError("Password entry not found", err)
	}
	return persistenceError(msg, err)
}
