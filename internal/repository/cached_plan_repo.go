package repository

import (
	"context"
	"fmt"

	"github.com/repfit/repfit-api/internal/domain"
)

// CachedPlanRepository wraps MongoPlanRepository with Redis caching of the
// active-plan read path, which the mobile client hits on every calendar
// render
type CachedPlanRepository struct {
	mongo *MongoPlanRepository
	cache *RedisCacheRepository
}

// NewCachedPlanRepository creates a new cached plan repository
func NewCachedPlanRepository(mongo *MongoPlanRepository, cache *RedisCacheRepository) *CachedPlanRepository {
	return &CachedPlanRepository{
		mongo: mongo,
		cache: cache,
	}
}

func activePlanKey(userID string) string {
	return fmt.Sprintf("%s%s:active", planByUserKeyPrefix, userID)
}

// GetActiveByUser retrieves the user's active plan with caching. A hit also
// refreshes the remembered active plan id used during import.
func (r *CachedPlanRepository) GetActiveByUser(ctx context.Context, userID string) (*domain.WorkoutPlan, error) {
	key := activePlanKey(userID)

	// Try cache first
	var plan domain.WorkoutPlan
	if err := r.cache.Get(ctx, key, &plan); err == nil {
		return &plan, nil
	}

	// Cache miss - fetch from MongoDB
	result, err := r.mongo.GetActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Store in cache (ignore cache errors)
	_ = r.cache.Set(ctx, key, result, planCacheTTL)
	_ = r.cache.SetActivePlanID(ctx, userID, result.ID)

	return result, nil
}

// Create creates a plan and invalidates the user's cached plan state
func (r *CachedPlanRepository) Create(ctx context.Context, plan *domain.WorkoutPlan) error {
	if err := r.mongo.Create(ctx, plan); err != nil {
		return err
	}

	_ = r.cache.InvalidateUserPlan(ctx, plan.UserID)
	return nil
}

// Update updates a plan and invalidates caches
func (r *CachedPlanRepository) Update(ctx context.Context, plan *domain.WorkoutPlan) error {
	if err := r.mongo.Update(ctx, plan); err != nil {
		return err
	}

	_ = r.cache.InvalidateUserPlan(ctx, plan.UserID)
	return nil
}

// Delete deletes a plan and invalidates caches
func (r *CachedPlanRepository) Delete(ctx context.Context, id string) error {
	// Get plan first to know the owner for cache invalidation
	plan, _ := r.mongo.GetByID(ctx, id)

	if err := r.mongo.Delete(ctx, id); err != nil {
		return err
	}

	if plan != nil {
		_ = r.cache.InvalidateUserPlan(ctx, plan.UserID)
	}
	return nil
}

// === Pass-through methods (no caching) ===

func (r *CachedPlanRepository) GetByID(ctx context.Context, id string) (*domain.WorkoutPlan, error) {
	return r.mongo.GetByID(ctx, id)
}
