package service

import (
	"context"
	"errors"

	apperrors "ops-admin-backend/internal/common/errors"
	"ops-admin-backend/internal/common/logger"
	"ops-admin-backend/internal/common/response"
	"ops-admin-backend/internal/features/community/models"
	"ops-admin-backend/internal/features/community/repository"
)

type CommunityService interface {
	List(ctx context.Context, filter models.Filter, page response.PageParams) (response.Page[*models.Community], error)
	SetCertification(ctx context.Context, handle string, certified bool) (*models.Community, error)
}

type communityService struct {
	repo repository.CommunityRepository
}

func NewCommunityService(repo repository.CommunityRepository) CommunityService {
	return &communityService{repo: repo}
}

func (s *communityService) List(ctx context.Context, filter models.Filter, page response.PageParams) (response.Page[*models.Community], error) {
	items, total, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return response.Page[*models.Community]{}, apperrors.NewDatabaseError("list communities", err)
	}
	return response.NewPage(items, page, total), nil
}

func (s *communityService) SetCertification(ctx context.Context, handle string, certified bool) (*models.Community, error) {
	c, err := s.repo.SetCertification(ctx, handle, certified)
	if err != nil {
		if errors.Is(err, repository.ErrCommunityNotFound) {
			return nil, apperrors.NewNotFoundError("community", handle)
		}
		return nil, apperrors.NewDatabaseError("update community", err)
	}

	logger.Info().Str("handle", handle).Bool("certification", certified).Msg("Community certification changed")
	return c, nil
}
