package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	apperrors "ops-admin-backend/internal/common/errors"
	"ops-admin-backend/internal/common/response"
	"ops-admin-backend/internal/features/reward/models"
	"ops-admin-backend/internal/features/reward/repository"
)

type HistoryService interface {
	List(ctx context.Context, filter models.HistoryFilter, page response.PageParams) (response.Page[*models.RewardDistributionRecord], error)
	Create(ctx context.Context, req *models.CreateRecordRequest) (*models.RewardDistributionRecord, error)
}

type historyService struct {
	repo repository.HistoryRepository
}

func NewHistoryService(repo repository.HistoryRepository) HistoryService {
	return &historyService{repo: repo}
}

func (s *historyService) List(ctx context.Context, filter models.HistoryFilter, page response.PageParams) (response.Page[*models.RewardDistributionRecord], error) {
	items, total, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return response.Page[*models.RewardDistributionRecord]{}, apperrors.NewDatabaseError("list reward history", err)
	}
	return response.NewPage(items, page, total), nil
}

func (s *historyService) Create(ctx context.Context, req *models.CreateRecordRequest) (*models.RewardDistributionRecord, error) {
	if !req.Amount.IsPositive() {
		return nil, apperrors.NewValidationError("amount", "must be greater than 0")
	}

	rec := &models.RewardDistributionRecord{
		ID:                  uuid.New().String(),
		UserID:              req.UserID,
		TgHandle:            req.TgHandle,
		AssetID:             req.AssetID,
		AssetType:           req.AssetType,
		Amount:              req.Amount,
		Status:              req.Status,
		Operator:            req.Operator,
		FlowName:            req.FlowName,
		FlowDescription:     req.FlowDescription,
		Note:                req.Note,
		ErrorMessage:        req.ErrorMessage,
		FoundUserHandles:    nonNil(req.FoundUserHandles),
		NotFoundUserHandles: nonNil(req.NotFoundUserHandles),
		SuccessHandles:      nonNil(req.SuccessHandles),
		Timestamp:           time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, apperrors.NewDatabaseError("create reward history", err)
	}
	return rec, nil
}
