package domain

import (
	"context"
	"time"
)

// Goal is a user's target weight. At most one per user.
type Goal struct {
	UserID       int64     `json:"userId"`
	TargetWeight float64   `json:"targetWeight"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// GoalRepository is the port for goal persistence.
type GoalRepository interface {
	// UpsertGoal sets the user's target weight, creating the goal if absent.
	UpsertGoal(ctx context.Context, userID int64, target float64) error
	// GetGoal returns the user's goal, or nil when none is set.
	GetGoal(ctx context.Context, userID int64) (*Goal, error)
	// DeleteGoal clears the user's goal. Deleting an absent goal is a no-op.
	DeleteGoal(ctx context.Context, userID int64) error
}
