package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrTemplateNotFound = errors.New("workout template not found")
)

// PlanTemplate is an authoring-time definition of a multi-week training
// program. Templates are immutable inputs to the import engine; the
// week-by-week structure is the source of truth, DaysPerWeek is
// informational and need not match it.
type PlanTemplate struct {
	ID          string         `json:"id" bson:"_id,omitempty"`
	Name        string         `json:"name" bson:"name"`
	Description string         `json:"description,omitempty" bson:"description,omitempty"`
	NumWeeks    int            `json:"num_weeks" bson:"num_weeks"`
	DaysPerWeek int            `json:"days_per_week" bson:"days_per_week"`
	Weeks       []TemplateWeek `json:"weeks" bson:"weeks"`
	CreatedAt   time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at" bson:"updated_at"`
}

// TemplateWeek is an ordered list of day slots
type TemplateWeek struct {
	Days []TemplateDay `json:"days" bson:"days"`
}

// TemplateDay is one training day within a template week. WorkoutIDs may be
// empty and may contain duplicates.
type TemplateDay struct {
	Name       string   `json:"name" bson:"name"`
	WorkoutIDs []string `json:"workout_ids" bson:"workout_ids"`
}

type PlanTemplateRepository interface {
	Create(ctx context.Context, template *PlanTemplate) error
	GetByID(ctx context.Context, id string) (*PlanTemplate, error)
	List(ctx context.Context) ([]*PlanTemplate, error)
	Update(ctx context.Context, template *PlanTemplate) error
	Delete(ctx context.Context, id string) error
}
