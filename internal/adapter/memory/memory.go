// Package memory implements the domain repositories in memory for
// development and testing.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"weighttrack/internal/domain"
)

// DB implements all domain repositories with in-memory storage.
type DB struct {
	mu       sync.Mutex
	entries  []domain.Entry
	users    []*domain.User
	sessions map[string]*domain.Session
	goals    map[int64]*domain.Goal

	entryIDCounter int64
	userIDCounter  int64
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{
		sessions: make(map[string]*domain.Session),
		goals:    make(map[int64]*domain.Goal),
	}
}

// Ensure interfaces are met.
var _ domain.EntryRepository = (*DB)(nil)
var _ domain.UserRepository = (*DB)(nil)
var _ domain.SessionRepository = (*SessionRepo)(nil)
var _ domain.GoalRepository = (*DB)(nil)

// --- EntryRepository ---

// InsertEntry adds an entry, enforcing the (user, date) uniqueness invariant.
func (db *DB) InsertEntry(ctx context.Context, userID int64, date string, weight float64) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, e := range db.entries {
		if e.UserID == userID && e.Date == date {
			return 0, domain.ErrDuplicateEntry
		}
	}

	db.entryIDCounter++
	db.entries = append(db.entries, domain.Entry{
		ID:     db.entryIDCounter,
		UserID: userID,
		Date:   date,
		Weight: weight,
	})
	return db.entryIDCounter, nil
}

// UpdateWeightByDate sets the weight of the entry matching (userID, date).
func (db *DB) UpdateWeightByDate(ctx context.Context, userID int64, date string, weight float64) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.entries {
		if db.entries[i].UserID == userID && db.entries[i].Date == date {
			db.entries[i].Weight = weight
			return nil
		}
	}
	return nil
}

// UpdateWeightByID sets the weight of the entry with the given id.
func (db *DB) UpdateWeightByID(ctx context.Context, id int64, weight float64) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.entries {
		if db.entries[i].ID == id {
			db.entries[i].Weight = weight
			return nil
		}
	}
	return nil
}

// GetEntry returns the entry with the given id, or nil.
func (db *DB) GetEntry(ctx context.Context, id int64) (*domain.Entry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, e := range db.entries {
		if e.ID == id {
			ret := e
			return &ret, nil
		}
	}
	return nil, nil
}

// GetEntryByDate returns the user's entry for the given date, or nil.
func (db *DB) GetEntryByDate(ctx context.Context, userID int64, date string) (*domain.Entry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, e := range db.entries {
		if e.UserID == userID && e.Date == date {
			ret := e
			return &ret, nil
		}
	}
	return nil, nil
}

// DeleteEntry removes an entry by id.
func (db *DB) DeleteEntry(ctx context.Context, id int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i, e := range db.entries {
		if e.ID == id {
			db.entries = append(db.entries[:i], db.entries[i+1:]...)
			return nil
		}
	}
	return nil
}

// ListEntries returns the user's entries, newest date first.
func (db *DB) ListEntries(ctx context.Context, userID int64) ([]domain.Entry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := make([]domain.Entry, 0)
	for _, e := range db.entries {
		if e.UserID == userID {
			result = append(result, e)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date > result[j].Date
	})
	return result, nil
}

// ListEntriesSince returns the user's entries with date >= cutoff, ascending.
func (db *DB) ListEntriesSince(ctx context.Context, userID int64, cutoff string) ([]domain.Entry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := make([]domain.Entry, 0)
	for _, e := range db.entries {
		// Dates are ISO strings, so lexicographic order is date order.
		if e.UserID == userID && e.Date >= cutoff {
			result = append(result, e)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date < result[j].Date
	})
	return result, nil
}

// --- UserRepository ---

// GetByUsername retrieves a user by username.
func (db *DB) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

// GetByID retrieves a user by ID.
func (db *DB) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

// Create creates a new user.
func (db *DB) Create(ctx context.Context, username, displayName, passwordHash string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Username == username {
			return nil, errors.New("user already exists")
		}
	}

	db.userIDCounter++
	u := &domain.User{
		ID:           db.userIDCounter,
		Username:     username,
		DisplayName:  displayName,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	db.users = append(db.users, u)
	return u, nil
}

// Count returns the total number of users.
func (db *DB) Count(ctx context.Context) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.users), nil
}

// --- SessionRepository ---

// SessionRepo implements session persistence.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo creates a new session repository.
func (db *DB) NewSessionRepo() *SessionRepo {
	return &SessionRepo{db: db}
}

// Create creates a new session.
func (r *SessionRepo) Create(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.sessions[token] = &domain.Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
	return nil
}

// GetByToken retrieves a session by token.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if s, ok := r.db.sessions[token]; ok {
		return s, nil
	}
	return nil, nil
}

// Delete deletes a session.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.sessions, token)
	return nil
}

// DeleteExpired deletes all expired sessions.
func (r *SessionRepo) DeleteExpired(ctx context.Context) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	now := time.Now()
	for k, v := range r.db.sessions {
		if now.After(v.ExpiresAt) {
			delete(r.db.sessions, k)
		}
	}
	return nil
}

// --- GoalRepository ---

// UpsertGoal sets the user's target weight.
func (db *DB) UpsertGoal(ctx context.Context, userID int64, target float64) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	now := time.Now().UTC()
	if g, ok := db.goals[userID]; ok {
		g.TargetWeight = target
		g.UpdatedAt = now
		return nil
	}
	db.goals[userID] = &domain.Goal{
		UserID:       userID,
		TargetWeight: target,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return nil
}

// GetGoal returns the user's goal, or nil.
func (db *DB) GetGoal(ctx context.Context, userID int64) (*domain.Goal, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if g, ok := db.goals[userID]; ok {
		ret := *g
		return &ret, nil
	}
	return nil, nil
}

// DeleteGoal clears the user's goal.
func (db *DB) DeleteGoal(ctx context.Context, userID int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	delete(db.goals, userID)
	return nil
}
