package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"weighttrack/internal/domain"
)

// UpsertGoal sets the user's target weight, creating the goal if absent.
func (d *DB) UpsertGoal(ctx context.Context, userID int64, target float64) error {
	now := time.Now()
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO goals(user_id, target_weight, created_at, updated_at) VALUES($1, $2, $3, $3)
		 ON CONFLICT (user_id) DO UPDATE SET target_weight = EXCLUDED.target_weight, updated_at = EXCLUDED.updated_at;`,
		userID, target, now,
	)
	return err
}

// GetGoal returns the user's goal, or nil when none is set.
func (d *DB) GetGoal(ctx context.Context, userID int64) (*domain.Goal, error) {
	var g domain.Goal
	err := d.sql.QueryRowContext(ctx,
		"SELECT user_id, target_weight, created_at, updated_at FROM goals WHERE user_id = $1;",
		userID,
	).Scan(&g.UserID, &g.TargetWeight, &g.CreatedAt, &g.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// DeleteGoal clears the user's goal.
func (d *DB) DeleteGoal(ctx context.Context, userID int64) error {
	_, err := d.sql.ExecContext(ctx, "DELETE FROM goals WHERE user_id = $1;", userID)
	return err
}
