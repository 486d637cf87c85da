package testutil

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"ops-admin-backend/internal/features/token/models"
	"ops-admin-backend/internal/features/token/repository"
)

// TokenRepository is an in-memory repository.TokenRepository keyed by token value.
type TokenRepository struct {
	mu     sync.Mutex
	tokens map[string]*models.Token

	// FailRevokeAll makes the next n RevokeAllForUser calls fail without revoking.
	FailRevokeAll int
}

var ErrStoreDown = errors.New("token store unavailable")

func NewTokenRepository(tokens ...*models.Token) *TokenRepository {
	r := &TokenRepository{tokens: map[string]*models.Token{}}
	for _, t := range tokens {
		r.tokens[t.Token] = t
	}
	return r
}

// ActiveToken builds an Active token for userID.
func ActiveToken(value, userID string) *models.Token {
	now := time.Now().UTC()
	return &models.Token{
		ID:        "id-" + value,
		Token:     value,
		UserID:    userID,
		Status:    models.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (r *TokenRepository) Create(_ context.Context, t *models.Token) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *t
	r.tokens[t.Token] = &cp
	return nil
}

func (r *TokenRepository) FindActive(_ context.Context, value string) (*models.Token, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tokens[value]
	if !ok || !t.IsActive() {
		return nil, repository.ErrTokenNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *TokenRepository) ListActiveByUser(_ context.Context, userID string) ([]*models.Token, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []*models.Token{}
	for _, t := range r.tokens {
		if t.UserID == userID && t.IsActive() {
			cp := *t
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Token < out[j].Token })
	return out, nil
}

func (r *TokenRepository) Revoke(_ context.Context, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tokens[value]
	if !ok || !t.IsActive() {
		return repository.ErrTokenNotFound
	}
	t.Status = models.StatusInactive
	t.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *TokenRepository) RevokeAllForUser(_ context.Context, userID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailRevokeAll > 0 {
		r.FailRevokeAll--
		return nil, ErrStoreDown
	}

	var revoked []string
	for _, t := range r.tokens {
		if t.UserID == userID && t.IsActive() {
			t.Status = models.StatusInactive
			revoked = append(revoked, t.Token)
		}
	}
	sort.Strings(revoked)
	return revoked, nil
}

// Status returns the stored status of value, or "" when unknown.
func (r *TokenRepository) Status(value string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t, ok := r.tokens[value]; ok {
		return t.Status
	}
	return ""
}
