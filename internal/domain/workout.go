package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrWorkoutNotFound  = errors.New("workout not found")
	ErrDuplicateWorkout = errors.New("workout name already exists")
)

// Workout represents an entry in the workout catalog
type Workout struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Name        string    `json:"name" bson:"name"` // Unique Index
	MuscleGroup string    `json:"muscle_group" bson:"muscle_group"`
	Equipment   string    `json:"equipment" bson:"equipment"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

type WorkoutRepository interface {
	Create(ctx context.Context, workout *Workout) error
	GetByID(ctx context.Context, id string) (*Workout, error)
	List(ctx context.Context, filter map[string]interface{}) ([]*Workout, error)
	Update(ctx context.Context, workout *Workout) error
	Delete(ctx context.Context, id string) error
}
