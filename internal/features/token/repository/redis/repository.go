package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ops-admin-backend/internal/common/cache"
	"ops-admin-backend/internal/common/logger"
	"ops-admin-backend/internal/features/token/models"
	"ops-admin-backend/internal/features/token/repository"
)

const KeyPrefix = "token:"

// cachedRepository is a read-through cache in front of the Token Store.
//
// Revocation overwrites the cache entry with an Inactive tombstone before the store is
// updated, and fills use SET NX. A lookup that read the store before a revocation can
// therefore never put the Active copy back, and a tombstone is served as "not found"
// without consulting the store. A failed tombstone write fails the revocation. Read
// failures fall back to the store.
type cachedRepository struct {
	next  repository.TokenRepository
	cache *cache.CacheService
	ttl   time.Duration
}

func NewCachedRepository(next repository.TokenRepository, c *cache.CacheService, ttl time.Duration) repository.TokenRepository {
	return &cachedRepository{next: next, cache: c, ttl: ttl}
}

func (r *cachedRepository) Create(ctx context.Context, t *models.Token) error {
	return r.next.Create(ctx, t)
}

func (r *cachedRepository) FindActive(ctx context.Context, value string) (*models.Token, error) {
	var cached models.Token
	err := r.cache.Get(ctx, value, &cached)
	switch {
	case err == nil && cached.IsActive():
		return &cached, nil
	case err == nil:
		return nil, repository.ErrTokenNotFound
	case !errors.Is(err, cache.ErrMiss):
		logger.Warn().Err(err).Msg("Token cache read failed")
	}

	t, err := r.next.FindActive(ctx, value)
	if err != nil {
		return nil, err
	}

	if _, err := r.cache.SetNX(ctx, value, t, r.ttl); err != nil {
		logger.Warn().Err(err).Msg("Token cache write failed")
	}
	return t, nil
}

func (r *cachedRepository) ListActiveByUser(ctx context.Context, userID string) ([]*models.Token, error) {
	return r.next.ListActiveByUser(ctx, userID)
}

func (r *cachedRepository) Revoke(ctx context.Context, value string) error {
	if err := r.tombstone(ctx, value); err != nil {
		return err
	}
	return r.next.Revoke(ctx, value)
}

// RevokeAllForUser tombstones the user's Active tokens, revokes them in the store and then
// tombstones any token the store revoked that was issued after the listing.
func (r *cachedRepository) RevokeAllForUser(ctx context.Context, userID string) ([]string, error) {
	active, err := r.next.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	done := make(map[string]struct{}, len(active))
	values := make([]string, 0, len(active))
	for _, t := range active {
		done[t.Token] = struct{}{}
		values = append(values, t.Token)
	}
	if err := r.tombstone(ctx, values...); err != nil {
		return nil, err
	}

	revoked, err := r.next.RevokeAllForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	var late []string
	for _, v := range revoked {
		if _, ok := done[v]; !ok {
			late = append(late, v)
		}
	}
	if err := r.tombstone(ctx, late...); err != nil {
		return revoked, err
	}
	return revoked, nil
}

func (r *cachedRepository) tombstone(ctx context.Context, values ...string) error {
	for _, v := range values {
		dead := models.Token{Token: v, Status: models.StatusInactive}
		if err := r.cache.Set(ctx, v, dead, r.ttl); err != nil {
			logger.Error().Err(err).Msg("Token cache tombstone write failed")
			return fmt.Errorf("failed to write token tombstone: %w", err)
		}
	}
	return nil
}
