package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/repfit/repfit-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWorkoutRepo struct {
	mu       sync.Mutex
	workouts map[string]*domain.Workout
	fetches  int
}

func (f *fakeWorkoutRepo) GetByID(ctx context.Context, id string) (*domain.Workout, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches++
	if w, ok := f.workouts[id]; ok {
		return w, nil
	}
	return nil, domain.ErrWorkoutNotFound
}

func (f *fakeWorkoutRepo) Create(ctx context.Context, workout *domain.Workout) error { return nil }
func (f *fakeWorkoutRepo) List(ctx context.Context, filter map[string]interface{}) ([]*domain.Workout, error) {
	return nil, nil
}
func (f *fakeWorkoutRepo) Update(ctx context.Context, workout *domain.Workout) error { return nil }
func (f *fakeWorkoutRepo) Delete(ctx context.Context, id string) error               { return nil }

func TestPreviewTemplateResolvesTitles(t *testing.T) {
	repo := &fakeWorkoutRepo{workouts: map[string]*domain.Workout{
		"squat-id": {ID: "squat-id", Name: "Back Squat"},
		"bench-id": {ID: "bench-id", Name: "Bench Press"},
	}}
	svc := NewPreviewService(repo)

	tpl := &domain.PlanTemplate{
		Name:     "SBD",
		NumWeeks: 2,
		Weeks: []domain.TemplateWeek{
			{Days: []domain.TemplateDay{
				{Name: "A", WorkoutIDs: []string{"squat-id", "bench-id"}},
			}},
			{Days: []domain.TemplateDay{
				{Name: "A", WorkoutIDs: []string{"squat-id", "bench-id"}},
			}},
		},
	}

	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC) // Monday
	preview, err := svc.PreviewTemplate(context.Background(), tpl, start, domain.NewWeekdaySet(time.Monday))
	require.NoError(t, err)

	require.Len(t, preview, 4)
	assert.Equal(t, "2024-01-01", preview[0].ScheduledDate)
	assert.Equal(t, "Back Squat", preview[0].WorkoutName)
	assert.Equal(t, "Bench Press", preview[1].WorkoutName)
	assert.Equal(t, "2024-01-08", preview[2].ScheduledDate)

	// One catalog fetch per distinct workout, not per item
	assert.Equal(t, 2, repo.fetches)
}

func TestPreviewTemplateUnknownWorkoutKeepsEmptyName(t *testing.T) {
	repo := &fakeWorkoutRepo{workouts: map[string]*domain.Workout{}}
	svc := NewPreviewService(repo)

	tpl := &domain.PlanTemplate{
		Name:     "Ghost",
		NumWeeks: 1,
		Weeks: []domain.TemplateWeek{
			{Days: []domain.TemplateDay{{Name: "A", WorkoutIDs: []string{"missing"}}}},
		},
	}

	preview, err := svc.PreviewTemplate(context.Background(), tpl, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), domain.NewWeekdaySet())
	require.NoError(t, err)

	require.Len(t, preview, 1)
	assert.Equal(t, "missing", preview[0].WorkoutID)
	assert.Empty(t, preview[0].WorkoutName)
}
