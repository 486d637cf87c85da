package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	apperrors "ops-admin-backend/internal/common/errors"
	"ops-admin-backend/internal/common/logger"
	"ops-admin-backend/internal/common/response"
	"ops-admin-backend/internal/features/promotion/models"
	"ops-admin-backend/internal/features/promotion/repository"
)

type PromotionService interface {
	List(ctx context.Context, filter models.Filter, page response.PageParams) (response.Page[*models.Promotion], error)
	Create(ctx context.Context, req *models.CreateRequest) (*models.Promotion, error)
	Update(ctx context.Context, req *models.UpdateRequest) (*models.Promotion, error)
	Delete(ctx context.Context, id string) error
}

type promotionService struct {
	repo repository.PromotionRepository
}

func NewPromotionService(repo repository.PromotionRepository) PromotionService {
	return &promotionService{repo: repo}
}

func (s *promotionService) List(ctx context.Context, filter models.Filter, page response.PageParams) (response.Page[*models.Promotion], error) {
	items, total, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return response.Page[*models.Promotion]{}, apperrors.NewDatabaseError("list promotions", err)
	}
	return response.NewPage(items, page, total), nil
}

func (s *promotionService) Create(ctx context.Context, req *models.CreateRequest) (*models.Promotion, error) {
	now := time.Now().UTC()
	p := &models.Promotion{
		ID:         uuid.New().String(),
		Title:      req.Title,
		Img:        req.Img,
		URL:        req.URL,
		Tag:        req.Tag,
		Platform:   req.Platform,
		Page:       req.Page,
		Priority:   models.DefaultPriority,
		EventIndex: models.DefaultEventIndex,
		Status:     models.StatusActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if req.Priority != nil {
		p.Priority = *req.Priority
	}
	if req.EventIndex != nil {
		p.EventIndex = *req.EventIndex
	}
	if req.Status != "" {
		p.Status = req.Status
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, apperrors.NewDatabaseError("create promotion", err)
	}

	logger.Info().Str("promotion_id", p.ID).Str("platform", p.Platform).Msg("Promotion created")
	return p, nil
}

// Update rejects deleted promotions with a validation error.
func (s *promotionService) Update(ctx context.Context, req *models.UpdateRequest) (*models.Promotion, error) {
	if _, err := s.getLive(ctx, req.ID); err != nil {
		return nil, err
	}

	p, err := s.repo.Update(ctx, req.ID, req)
	if err != nil {
		if errors.Is(err, repository.ErrPromotionNotFound) {
			return nil, apperrors.NewNotFoundError("promotion", req.ID)
		}
		return nil, apperrors.NewDatabaseError("update promotion", err)
	}
	return p, nil
}

func (s *promotionService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.NewValidationError("id", "is required")
	}
	if _, err := s.getLive(ctx, id); err != nil {
		return err
	}

	if err := s.repo.MarkDeleted(ctx, id); err != nil {
		if errors.Is(err, repository.ErrPromotionNotFound) {
			return apperrors.NewNotFoundError("promotion", id)
		}
		return apperrors.NewDatabaseError("delete promotion", err)
	}

	logger.Info().Str("promotion_id", id).Msg("Promotion deleted")
	return nil
}

func (s *promotionService) getLive(ctx context.Context, id string) (*models.Promotion, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPromotionNotFound) {
			return nil, apperrors.NewNotFoundError("promotion", id)
		}
		return nil, apperrors.NewDatabaseError("get promotion", err)
	}
	if p.IsDeleted() {
		return nil, apperrors.NewValidationError("id", "promotion is deleted")
	}
	return p, nil
}
