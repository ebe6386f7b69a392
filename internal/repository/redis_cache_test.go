package repository

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/repfit/repfit-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCache(t *testing.T) (*RedisCacheRepository, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisCacheRepository(client), mr
}

func TestCacheSetGetRoundTrip(t *testing.T) {
	cache, _ := setupCache(t)
	ctx := context.Background()

	plan := &domain.WorkoutPlan{ID: "p1", UserID: "u1", Name: "Block A", Active: true}
	require.NoError(t, cache.Set(ctx, activePlanKey("u1"), plan, planCacheTTL))

	var got domain.WorkoutPlan
	require.NoError(t, cache.Get(ctx, activePlanKey("u1"), &got))
	assert.Equal(t, "p1", got.ID)
	assert.Equal(t, "Block A", got.Name)
	assert.True(t, got.Active)
}

func TestCacheGetMiss(t *testing.T) {
	cache, _ := setupCache(t)

	var got domain.WorkoutPlan
	err := cache.Get(context.Background(), activePlanKey("nobody"), &got)
	assert.Equal(t, ErrCacheMiss, err)
}

func TestActivePlanID(t *testing.T) {
	cache, _ := setupCache(t)
	ctx := context.Background()

	assert.Empty(t, cache.GetActivePlanID(ctx, "u1"))

	require.NoError(t, cache.SetActivePlanID(ctx, "u1", "p1"))
	assert.Equal(t, "p1", cache.GetActivePlanID(ctx, "u1"))
}

func TestInvalidateUserPlan(t *testing.T) {
	cache, mr := setupCache(t)
	ctx := context.Background()

	plan := &domain.WorkoutPlan{ID: "p1", UserID: "u1"}
	require.NoError(t, cache.Set(ctx, activePlanKey("u1"), plan, planCacheTTL))
	require.NoError(t, cache.SetActivePlanID(ctx, "u1", "p1"))

	// Another user's state must survive
	require.NoError(t, cache.SetActivePlanID(ctx, "u2", "p2"))

	require.NoError(t, cache.InvalidateUserPlan(ctx, "u1"))

	var got domain.WorkoutPlan
	assert.Equal(t, ErrCacheMiss, cache.Get(ctx, activePlanKey("u1"), &got))
	assert.Empty(t, cache.GetActivePlanID(ctx, "u1"))
	assert.Equal(t, "p2", cache.GetActivePlanID(ctx, "u2"))

	// Nothing left behind for u1
	for _, key := range mr.Keys() {
		assert.NotContains(t, key, "u1")
	}
}

func TestRedisSessionCurrentUserID(t *testing.T) {
	cache, _ := setupCache(t)
	session := NewRedisSession(cache)

	// No identity on the context
	userID, err := session.CurrentUserID(context.Background())
	require.NoError(t, err)
	assert.Empty(t, userID)

	ctx := domain.WithUserID(context.Background(), "u1")
	userID, err = session.CurrentUserID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)
}

func TestRedisSessionCachedPlanID(t *testing.T) {
	cache, _ := setupCache(t)
	session := NewRedisSession(cache)
	ctx := domain.WithUserID(context.Background(), "u1")

	// Miss without remembered state
	planID, ok := session.CachedPlanID(ctx)
	assert.False(t, ok)
	assert.Empty(t, planID)

	require.NoError(t, cache.SetActivePlanID(ctx, "u1", "p1"))
	planID, ok = session.CachedPlanID(ctx)
	assert.True(t, ok)
	assert.Equal(t, "p1", planID)

	// No identity, no lookup
	_, ok = session.CachedPlanID(context.Background())
	assert.False(t, ok)
}
