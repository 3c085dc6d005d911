package app

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"weighttrack/internal/domain"
)

// ValidationError carries a user-visible message for bad form input. Handlers
// surface it as a flash message and complete the request without a data
// change.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

// Validation failures reported to the user.
const (
	ErrWeightRequired = ValidationError("Weight is required")
	ErrWeightInvalid  = ValidationError("Weight must be a number")
	ErrDateRequired   = ValidationError("Date is required")
	ErrDateInvalid    = ValidationError("Date must be a valid calendar date")
)

// EntryService encapsulates weight-entry use cases.
type EntryService struct {
	repo domain.EntryRepository
}

// NewEntryService creates an EntryService backed by the given repository.
func NewEntryService(repo domain.EntryRepository) *EntryService {
	return &EntryService{repo: repo}
}

// NormalizeWeight parses a raw weight string and rounds it to one fractional
// digit. The rounding is half away from zero.
func NormalizeWeight(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, ErrWeightRequired
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrWeightInvalid
	}
	return math.Round(v*10) / 10, nil
}

func validDate(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrDateRequired
	}
	if _, err := time.Parse("2006-01-02", raw); err != nil {
		return "", ErrDateInvalid
	}
	return raw, nil
}

// CreateOrUpdate records a weight for the given date. If the user already has
// an entry for that date, its weight is replaced instead; the uniqueness
// constraint on (user, date) makes the insert-then-update safe without a
// prior existence check. Returns the stored entry.
func (s *EntryService) CreateOrUpdate(ctx context.Context, userID int64, entryDate, rawWeight string) (*domain.Entry, error) {
	date, err := validDate(entryDate)
	if err != nil {
		return nil, err
	}
	weight, err := NormalizeWeight(rawWeight)
	if err != nil {
		return nil, err
	}

	id, err := s.repo.InsertEntry(ctx, userID, date, weight)
	if err == nil {
		return &domain.Entry{ID: id, UserID: userID, Date: date, Weight: weight}, nil
	}
	if !errors.Is(err, domain.ErrDuplicateEntry) {
		return nil, err
	}
	if err := s.repo.UpdateWeightByDate(ctx, userID, date, weight); err != nil {
		return nil, err
	}
	return s.repo.GetEntryByDate(ctx, userID, date)
}

// UpdateWeight replaces the weight of an existing entry. Updating an entry
// that does not exist is a no-op; updating another user's entry is
// ErrForbidden.
func (s *EntryService) UpdateWeight(ctx context.Context, userID, entryID int64, rawWeight string) error {
	weight, err := NormalizeWeight(rawWeight)
	if err != nil {
		return err
	}
	entry, err := s.repo.GetEntry(ctx, entryID)
	if err != nil {
		return err
	}
	if entry == nil {
		return nil
	}
	if entry.UserID != userID {
		return domain.ErrForbidden
	}
	return s.repo.UpdateWeightByID(ctx, entryID, weight)
}

// Delete removes an entry. Deleting an entry that does not exist is a no-op;
// deleting another user's entry is ErrForbidden.
func (s *EntryService) Delete(ctx context.Context, userID, entryID int64) error {
	entry, err := s.repo.GetEntry(ctx, entryID)
	if err != nil {
		return err
	}
	if entry == nil {
		return nil
	}
	if entry.UserID != userID {
		return domain.ErrForbidden
	}
	return s.repo.DeleteEntry(ctx, entryID)
}

// List returns all of the user's entries, newest date first.
func (s *EntryService) List(ctx context.Context, userID int64) ([]domain.Entry, error) {
	return s.repo.ListEntries(ctx, userID)
}

// Progress summarises a user's history for the dashboard.
type Progress struct {
	Latest *domain.Entry
	Change float64 // latest weight minus earliest, zero with one entry
}

// GetProgress returns the user's latest entry and total change, or nil when
// no entries exist.
func (s *EntryService) GetProgress(ctx context.Context, userID int64) (*Progress, error) {
	entries, err := s.repo.ListEntries(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	latest := entries[0]
	earliest := entries[len(entries)-1]
	change := math.Round((latest.Weight-earliest.Weight)*10) / 10
	return &Progress{Latest: &latest, Change: change}, nil
}
