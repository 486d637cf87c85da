package repository

import (
	"context"
	"errors"

	"ops-admin-backend/internal/common/response"
	"ops-admin-backend/internal/features/promotion/models"
)

var ErrPromotionNotFound = errors.New("promotion not found")

type PromotionRepository interface {
	Create(ctx context.Context, p *models.Promotion) error
	GetByID(ctx context.Context, id string) (*models.Promotion, error)
	// List orders by priority, then event index, then newest first.
	List(ctx context.Context, filter models.Filter, page response.PageParams) ([]*models.Promotion, int, error)
	Update(ctx context.Context, id string, req *models.UpdateRequest) (*models.Promotion, error)
	MarkDeleted(ctx context.Context, id string) error
}
