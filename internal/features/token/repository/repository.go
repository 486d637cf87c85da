package repository

import (
	"context"
	"errors"

	"ops-admin-backend/internal/features/token/models"
)

var ErrTokenNotFound = errors.New("token not found")

// TokenRepository is the Token Store. Lookups only ever return Active tokens.
type TokenRepository interface {
	Create(ctx context.Context, token *models.Token) error
	FindActive(ctx context.Context, value string) (*models.Token, error)
	ListActiveByUser(ctx context.Context, userID string) ([]*models.Token, error)
	// Revoke flips an Active token to Inactive; ErrTokenNotFound when nothing was Active.
	Revoke(ctx context.Context, value string) error
	// RevokeAllForUser returns the values that were revoked.
	RevokeAllForUser(ctx context.Context, userID string) ([]string, error)
}
