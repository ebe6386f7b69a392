package service

import (
	"context"
	"fmt"
	"time"

	"github.com/repfit/repfit-api/internal/domain"
	"golang.org/x/sync/errgroup"
)

// SessionProvider resolves the acting identity and any locally remembered
// plan state. CurrentUserID may perform I/O; CachedPlanID is best-effort and
// a miss just means the plan is looked up through persistence.
type SessionProvider interface {
	CurrentUserID(ctx context.Context) (string, error)
	CachedPlanID(ctx context.Context) (string, bool)
}

// PlanCache invalidates cached plan reads. Fire-and-forget from the
// importer's perspective.
type PlanCache interface {
	InvalidateUserPlan(ctx context.Context, userID string) error
}

// ImportService converts a plan template into dated plan items and persists
// them through a bulk, partial-failure-tolerant protocol
type ImportService struct {
	session  SessionProvider
	planRepo domain.PlanRepository
	itemRepo domain.PlanItemRepository
	cache    PlanCache
}

// NewImportService creates a new import service
func NewImportService(
	session SessionProvider,
	planRepo domain.PlanRepository,
	itemRepo domain.PlanItemRepository,
	cache PlanCache,
) *ImportService {
	return &ImportService{
		session:  session,
		planRepo: planRepo,
		itemRepo: itemRepo,
		cache:    cache,
	}
}

// workoutGroup is the unit of concurrent dispatch: every generated date for
// one workout reference, persisted in a single bulk call
type workoutGroup struct {
	workoutID string
	dates     []string
}

// ImportTemplate schedules every workout in the template starting at start,
// distributed across the selected weekdays, into the acting user's plan.
// Failures never escape as errors: every outcome, including unexpected ones,
// is folded into the returned ImportResult.
func (s *ImportService) ImportTemplate(ctx context.Context, tpl *domain.PlanTemplate, start time.Time, days domain.WeekdaySet, clearExisting bool) domain.ImportResult {
	result, err := s.importTemplate(ctx, tpl, start, days, clearExisting)
	if err != nil {
		msg := err.Error()
		if msg == "" {
			msg = "Import failed"
		}
		return failedImport(msg)
	}
	return result
}

func (s *ImportService) importTemplate(ctx context.Context, tpl *domain.PlanTemplate, start time.Time, days domain.WeekdaySet, clearExisting bool) (domain.ImportResult, error) {
	if tpl == nil {
		return failedImport("No template provided"), nil
	}

	userID, err := s.session.CurrentUserID(ctx)
	if err != nil {
		return domain.ImportResult{}, err
	}
	if userID == "" {
		return failedImport("User not logged in"), nil
	}

	planID, ok := s.session.CachedPlanID(ctx)
	if !ok {
		plan, err := s.planRepo.GetActiveByUser(ctx, userID)
		if err != nil {
			return failedImport("Could not find workout plan"), nil
		}
		planID = plan.ID
	}

	items := domain.GenerateSchedule(tpl, start, days)
	if len(items) == 0 {
		return failedImport("Template generated no plan items"), nil
	}

	// Clear before any insert; a failure here aborts the whole operation
	if clearExisting {
		if _, err := s.itemRepo.DeleteByPlan(ctx, planID); err != nil {
			return domain.ImportResult{}, err
		}
	}

	groups := groupByWorkout(items)

	// Fan out one bulk insert per workout group and wait for every call to
	// settle. Outcomes are recorded per group and never returned from the
	// goroutines: one bad workout reference must not cancel or mask the rest.
	type groupOutcome struct {
		created int
		err     error
	}
	outcomes := make([]groupOutcome, len(groups))

	var g errgroup.Group
	for i, group := range groups {
		g.Go(func() error {
			created, err := s.itemRepo.InsertForWorkout(ctx, planID, group.workoutID, group.dates)
			if err != nil {
				outcomes[i] = groupOutcome{err: err}
				return nil
			}
			outcomes[i] = groupOutcome{created: len(created)}
			return nil
		})
	}
	_ = g.Wait()

	succeeded := 0
	itemsCreated := 0
	for _, outcome := range outcomes {
		if outcome.err == nil {
			succeeded++
			itemsCreated += outcome.created
		}
	}

	switch {
	case succeeded == len(groups):
		_ = s.cache.InvalidateUserPlan(ctx, userID)
		return domain.ImportResult{
			Status:       domain.ImportStatusComplete,
			ItemsCreated: itemsCreated,
		}, nil
	case succeeded > 0:
		// Partial state now exists and must not be served stale
		_ = s.cache.InvalidateUserPlan(ctx, userID)
		return domain.ImportResult{
			Status:       domain.ImportStatusPartial,
			ItemsCreated: itemsCreated,
			Error:        fmt.Sprintf("Added %d of %d workout groups", succeeded, len(groups)),
		}, nil
	default:
		if clearExisting {
			// The clear already mutated persisted state
			_ = s.cache.InvalidateUserPlan(ctx, userID)
		}
		return failedImport("Failed to add workouts to plan"), nil
	}
}

// groupByWorkout partitions generated items by workout reference, preserving
// first-appearance order of workouts and the generated order of dates within
// each group
func groupByWorkout(items []domain.GeneratedItem) []workoutGroup {
	index := make(map[string]int)
	groups := []workoutGroup{}
	for _, item := range items {
		i, ok := index[item.WorkoutID]
		if !ok {
			i = len(groups)
			index[item.WorkoutID] = i
			groups = append(groups, workoutGroup{workoutID: item.WorkoutID})
		}
		groups[i].dates = append(groups[i].dates, item.Date.Format(domain.DateLayout))
	}
	return groups
}

func failedImport(msg string) domain.ImportResult {
	return domain.ImportResult{
		Status: domain.ImportStatusFailed,
		Error:  msg,
	}
}
