package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"weighttrack/internal/domain"
)

// InsertEntry adds a new entry. A duplicate (user, date) pair maps to
// domain.ErrDuplicateEntry.
func (d *DB) InsertEntry(ctx context.Context, userID int64, date string, weight float64) (int64, error) {
	d.writeLock.Lock()
	defer d.writeLock.Unlock()

	res, err := d.sql.ExecContext(ctx,
		"INSERT INTO entries(user_id, entry_date, weight) VALUES(?, ?, ?);",
		userID, date, weight,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrDuplicateEntry
		}
		return 0, err
	}
	return res.LastInsertId()
}

// UpdateWeightByDate sets the weight of the entry matching (userID, date).
func (d *DB) UpdateWeightByDate(ctx context.Context, userID int64, date string, weight float64) error {
	d.writeLock.Lock()
	defer d.writeLock.Unlock()

	_, err := d.sql.ExecContext(ctx,
		"UPDATE entries SET weight = ? WHERE user_id = ? AND entry_date = ?;",
		weight, userID, date,
	)
	return err
}

// UpdateWeightByID sets the weight of the entry with the given id.
func (d *DB) UpdateWeightByID(ctx context.Context, id int64, weight float64) error {
	d.writeLock.Lock()
	defer d.writeLock.Unlock()

	_, err := d.sql.ExecContext(ctx, "UPDATE entries SET weight = ? WHERE id = ?;", weight, id)
	return err
}

// GetEntry returns the entry with the given id, or nil when absent.
func (d *DB) GetEntry(ctx context.Context, id int64) (*domain.Entry, error) {
	var e domain.Entry
	err := d.sql.QueryRowContext(ctx,
		"SELECT id, user_id, entry_date, weight FROM entries WHERE id = ?;", id,
	).Scan(&e.ID, &e.UserID, &e.Date, &e.Weight)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// GetEntryByDate returns the user's entry for the given date, or nil.
func (d *DB) GetEntryByDate(ctx context.Context, userID int64, date string) (*domain.Entry, error) {
	var e domain.Entry
	err := d.sql.QueryRowContext(ctx,
		"SELECT id, user_id, entry_date, weight FROM entries WHERE user_id = ? AND entry_date = ?;",
		userID, date,
	).Scan(&e.ID, &e.UserID, &e.Date, &e.Weight)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// DeleteEntry removes the entry with the given id.
func (d *DB) DeleteEntry(ctx context.Context, id int64) error {
	d.writeLock.Lock()
	defer d.writeLock.Unlock()

	_, err := d.sql.ExecContext(ctx, "DELETE FROM entries WHERE id = ?;", id)
	return err
}

// ListEntries returns the user's entries, newest date first.
func (d *DB) ListEntries(ctx context.Context, userID int64) ([]domain.Entry, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT id, user_id, entry_date, weight FROM entries WHERE user_id = ? ORDER BY entry_date DESC;",
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEntries(rows)
}

// ListEntriesSince returns the user's entries with date >= cutoff, ascending.
func (d *DB) ListEntriesSince(ctx context.Context, userID int64, cutoff string) ([]domain.Entry, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT id, user_id, entry_date, weight FROM entries WHERE user_id = ? AND entry_date >= ? ORDER BY entry_date ASC;",
		userID, cutoff,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]domain.Entry, error) {
	out := make([]domain.Entry, 0)
	for rows.Next() {
		var e domain.Entry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Date, &e.Weight); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
