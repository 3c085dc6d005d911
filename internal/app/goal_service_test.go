package app_test

import (
	"context"
	"errors"
	"testing"

	"weighttrack/internal/adapter/memory"
	"weighttrack/internal/app"
)

func TestGoalService_SetAndGet(t *testing.T) {
	db := memory.New()
	svc := app.NewGoalService(db)

	if err := svc.SetTarget(context.Background(), 1, "68.25"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	goal, err := svc.Target(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if goal == nil {
		t.Fatal("expected a goal")
	}
	if goal.TargetWeight != 68.3 {
		t.Errorf("expected target 68.3, got %v", goal.TargetWeight)
	}
}

func TestGoalService_SetOverwrites(t *testing.T) {
	db := memory.New()
	svc := app.NewGoalService(db)

	if err := svc.SetTarget(context.Background(), 1, "70"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.SetTarget(context.Background(), 1, "65"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	goal, err := svc.Target(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if goal == nil || goal.TargetWeight != 65.0 {
		t.Errorf("expected target 65.0, got %+v", goal)
	}
}

func TestGoalService_EmptyClearsGoal(t *testing.T) {
	db := memory.New()
	svc := app.NewGoalService(db)

	if err := svc.SetTarget(context.Background(), 1, "70"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.SetTarget(context.Background(), 1, "  "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	goal, err := svc.Target(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if goal != nil {
		t.Errorf("expected goal to be cleared, got %+v", goal)
	}
}

func TestGoalService_InvalidTarget(t *testing.T) {
	db := memory.New()
	svc := app.NewGoalService(db)

	var verr app.ValidationError
	if err := svc.SetTarget(context.Background(), 1, "abc"); !errors.As(err, &verr) {
		t.Errorf("expected ValidationError, got %v", err)
	}
}

func TestGoalService_PerUser(t *testing.T) {
	db := memory.New()
	svc := app.NewGoalService(db)

	if err := svc.SetTarget(context.Background(), 1, "70"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	goal, err := svc.Target(context.Background(), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if goal != nil {
		t.Errorf("user 2 must not see user 1's goal, got %+v", goal)
	}
}
