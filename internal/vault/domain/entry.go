package domain

import (
	"slices"
	"time"
)

// PerPageOptions are the page sizes the entry list accepts.
var PerPageOptions = []int{5, 10, 15, 20, 50, 100}

const DefaultPerPage = 10

// ValidPerPage reports whether n is an accepted page size.
func ValidPerPage(n int) bool {
	return slices.Contains(PerPageOptions, n)
}

// PasswordEntry is a stored credential. Password holds the plaintext only
// in memory; SealedPassword is what reaches the database.
type PasswordEntry struct {
	ID             string
	AccountID      string
	Email          string
	Password       string
	SealedPassword []byte
	Description    string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// EntryUpdate is a partial update of an entry.
type EntryUpdate struct {
	Email       *string
	Password    *string
	Description *string
}

// Page is one slice of an ordered listing.
type Page[T any] struct {
	Items   []T
	Page    int
	PerPage int
	Total   int
}

// TotalPages is at least 1 so an empty listing still has a page.
func (p Page[T]) TotalPages() int {
	if p.PerPage <= 0 || p.Total == 0 {
		return 1
	}
	return (p.Total + p.PerPage - 1) / p.PerPage
}
