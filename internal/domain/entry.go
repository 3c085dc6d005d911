// Package domain contains the core business entities and interfaces.
package domain

import (
	"context"
	"errors"
)

// ErrDuplicateEntry indicates that an entry already exists for the
// (user, entry date) pair. Storage adapters map their driver's uniqueness
// violation onto this error.
var ErrDuplicateEntry = errors.New("entry already exists for this date")

// ErrForbidden indicates that the caller does not own the entry it is trying
// to mutate.
var ErrForbidden = errors.New("entry belongs to another user")

// Entry represents one weight measurement for one user on one calendar day.
type Entry struct {
	ID     int64   `json:"id"`
	UserID int64   `json:"userId"`
	Date   string  `json:"date"` // YYYY-MM-DD
	Weight float64 `json:"weight"`
}

// EntryRepository is the port for entry persistence. All queries are scoped
// by user id; entries are never visible across users.
type EntryRepository interface {
	// InsertEntry adds a new entry and returns its id. Returns
	// ErrDuplicateEntry when an entry for (userID, date) already exists.
	InsertEntry(ctx context.Context, userID int64, date string, weight float64) (int64, error)
	// UpdateWeightByDate sets the weight of the entry matching (userID, date).
	UpdateWeightByDate(ctx context.Context, userID int64, date string, weight float64) error
	// UpdateWeightByID sets the weight of the entry with the given id.
	UpdateWeightByID(ctx context.Context, id int64, weight float64) error
	// GetEntry returns the entry with the given id, or nil when absent.
	GetEntry(ctx context.Context, id int64) (*Entry, error)
	// GetEntryByDate returns the user's entry for the given date, or nil.
	GetEntryByDate(ctx context.Context, userID int64, date string) (*Entry, error)
	// DeleteEntry removes the entry with the given id.
	DeleteEntry(ctx context.Context, id int64) error
	// ListEntries returns all of the user's entries, newest date first.
	ListEntries(ctx context.Context, userID int64) ([]Entry, error)
	// ListEntriesSince returns the user's entries with date >= cutoff,
	// ordered by date ascending. cutoff is a YYYY-MM-DD string.
	ListEntriesSince(ctx context.Context, userID int64, cutoff string) ([]Entry, error)
}
