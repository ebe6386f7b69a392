package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrPlanNotFound     = errors.New("workout plan not found")
	ErrPlanItemNotFound = errors.New("plan item not found")
)

// DateLayout is the wire and storage format for scheduled dates. Scheduled
// dates are calendar-date tokens, never instants; no timezone math applies.
const DateLayout = "2006-01-02"

// WorkoutPlan is a user's training plan. One active plan per user.
type WorkoutPlan struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	UserID     string    `json:"user_id" bson:"user_id"`
	Name       string    `json:"name" bson:"name"`
	TemplateID string    `json:"template_id,omitempty" bson:"template_id,omitempty"` // last imported template
	StartDate  string    `json:"start_date,omitempty" bson:"start_date,omitempty"`
	Active     bool      `json:"active" bson:"active"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" bson:"updated_at"`
}

// PlanItem is a single dated workout occurrence within a plan
type PlanItem struct {
	ID            string    `json:"id" bson:"_id,omitempty"`
	ClientID      string    `json:"client_id,omitempty" bson:"client_id,omitempty"` // ULID minted at insert time
	PlanID        string    `json:"plan_id" bson:"plan_id"`
	WorkoutID     string    `json:"workout_id" bson:"workout_id"`
	ScheduledDate string    `json:"scheduled_date" bson:"scheduled_date"` // DateLayout token
	Completed     bool      `json:"completed" bson:"completed"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" bson:"updated_at"`
}

type PlanRepository interface {
	Create(ctx context.Context, plan *WorkoutPlan) error
	GetByID(ctx context.Context, id string) (*WorkoutPlan, error)
	GetActiveByUser(ctx context.Context, userID string) (*WorkoutPlan, error)
	Update(ctx context.Context, plan *WorkoutPlan) error
	Delete(ctx context.Context, id string) error
}

type PlanItemRepository interface {
	// InsertForWorkout creates one dated item per entry in dates, all for the
	// same workout, in a single bulk write. This is the unit of concurrent
	// dispatch during template import.
	InsertForWorkout(ctx context.Context, planID, workoutID string, dates []string) ([]*PlanItem, error)
	DeleteByPlan(ctx context.Context, planID string) (int64, error)
	ListByPlan(ctx context.Context, planID string) ([]*PlanItem, error)
	ListByPlanAndRange(ctx context.Context, planID, from, to string) ([]*PlanItem, error)
	// SetCompleted toggles an item's completed flag. The item must belong to
	// planID; a mismatch returns ErrForbidden.
	SetCompleted(ctx context.Context, planID, id string, completed bool) error
}
