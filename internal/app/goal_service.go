package app

import (
	"context"
	"strings"

	"weighttrack/internal/domain"
)

// GoalService manages the user's target weight.
type GoalService struct {
	repo domain.GoalRepository
}

// NewGoalService creates a GoalService backed by the given repository.
func NewGoalService(repo domain.GoalRepository) *GoalService {
	return &GoalService{repo: repo}
}

// SetTarget sets or clears the user's target weight. An empty raw value
// clears the goal; otherwise the target goes through the same normalization
// as entry weights.
func (s *GoalService) SetTarget(ctx context.Context, userID int64, rawTarget string) error {
	if strings.TrimSpace(rawTarget) == "" {
		return s.repo.DeleteGoal(ctx, userID)
	}
	target, err := NormalizeWeight(rawTarget)
	if err != nil {
		return err
	}
	return s.repo.UpsertGoal(ctx, userID, target)
}

// Target returns the user's goal, or nil when none is set.
func (s *GoalService) Target(ctx context.Context, userID int64) (*domain.Goal, error) {
	return s.repo.GetGoal(ctx, userID)
}
