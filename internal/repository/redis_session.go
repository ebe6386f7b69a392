package repository

import (
	"context"

	"github.com/repfit/repfit-api/internal/domain"
)

// RedisSession resolves the acting identity and remembered plan state for a
// request. The user id comes from the request context (set by auth
// middleware); the active plan id is best-effort session state in Redis.
type RedisSession struct {
	cache *RedisCacheRepository
}

func NewRedisSession(cache *RedisCacheRepository) *RedisSession {
	return &RedisSession{cache: cache}
}

// CurrentUserID returns the authenticated user's id, or "" when the request
// carries no identity
func (s *RedisSession) CurrentUserID(ctx context.Context) (string, error) {
	userID, ok := domain.UserIDFromContext(ctx)
	if !ok {
		return "", nil
	}
	return userID, nil
}

// CachedPlanID returns the remembered active plan id for the request's user,
// or false on miss. Purely an optimization; callers fall back to the
// persistence lookup.
func (s *RedisSession) CachedPlanID(ctx context.Context) (string, bool) {
	userID, ok := domain.UserIDFromContext(ctx)
	if !ok {
		return "", false
	}
	planID := s.cache.GetActivePlanID(ctx, userID)
	return planID, planID != ""
}
