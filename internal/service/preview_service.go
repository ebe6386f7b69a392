package service

import (
	"context"
	"time"

	"github.com/repfit/repfit-api/internal/domain"
	"golang.org/x/sync/errgroup"
)

// PreviewItem is one row of an import preview: a generated schedule entry
// with the workout's display name resolved for rendering
type PreviewItem struct {
	ScheduledDate string `json:"scheduled_date"`
	WorkoutID     string `json:"workout_id"`
	WorkoutName   string `json:"workout_name,omitempty"`
}

// PreviewService runs the date distribution without persisting anything so
// the client can show the resulting calendar before the user confirms
type PreviewService struct {
	workoutRepo domain.WorkoutRepository
}

// NewPreviewService creates a new preview service
func NewPreviewService(workoutRepo domain.WorkoutRepository) *PreviewService {
	return &PreviewService{
		workoutRepo: workoutRepo,
	}
}

// PreviewTemplate generates the schedule and resolves workout titles
// concurrently. Unknown workout references keep an empty name rather than
// failing the preview.
func (s *PreviewService) PreviewTemplate(ctx context.Context, tpl *domain.PlanTemplate, start time.Time, days domain.WeekdaySet) ([]PreviewItem, error) {
	items := domain.GenerateSchedule(tpl, start, days)

	// Distinct workout ids, one catalog fetch each
	seen := make(map[string]bool)
	var ids []string
	for _, item := range items {
		if !seen[item.WorkoutID] {
			seen[item.WorkoutID] = true
			ids = append(ids, item.WorkoutID)
		}
	}

	names := make([]string, len(ids))
	g, gCtx := errgroup.WithContext(ctx)
	for i, id := range ids {
		g.Go(func() error {
			workout, err := s.workoutRepo.GetByID(gCtx, id)
			if err != nil {
				return nil // graceful skip
			}
			names[i] = workout.Name
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	nameByID := make(map[string]string, len(ids))
	for i, id := range ids {
		nameByID[id] = names[i]
	}

	preview := make([]PreviewItem, 0, len(items))
	for _, item := range items {
		preview = append(preview, PreviewItem{
			ScheduledDate: item.Date.Format(domain.DateLayout),
			WorkoutID:     item.WorkoutID,
			WorkoutName:   nameByID[item.WorkoutID],
		})
	}
	return preview, nil
}
