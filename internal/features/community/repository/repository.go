package repository

import (
	"context"
	"errors"

	"ops-admin-backend/internal/common/response"
	"ops-admin-backend/internal/features/community/models"
)

var ErrCommunityNotFound = errors.New("community not found")

type CommunityRepository interface {
	// List returns one page ordered by created_at desc and the total match count.
	List(ctx context.Context, filter models.Filter, page response.PageParams) ([]*models.Community, int, error)
	SetCertification(ctx context.Context, handle string, certified bool) (*models.Community, error)
}
