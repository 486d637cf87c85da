package repository

import (
	"context"

	"ops-admin-backend/internal/common/response"
	"ops-admin-backend/internal/features/reward/models"
)

// HistoryRepository stores distribution records. Records are never updated or deleted.
type HistoryRepository interface {
	Create(ctx context.Context, record *models.RewardDistributionRecord) error
	// List returns newest records first.
	List(ctx context.Context, filter models.HistoryFilter, page response.PageParams) ([]*models.RewardDistributionRecord, int, error)
}
