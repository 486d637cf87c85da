package service

import (
	"context"
	"errors"

	apperrors "ops-admin-backend/internal/common/errors"
	"ops-admin-backend/internal/common/logger"
	"ops-admin-backend/internal/features/auth"
	"ops-admin-backend/internal/features/user/mapper"
	"ops-admin-backend/internal/features/user/models"
	"ops-admin-backend/internal/features/user/repository"
)

// TokenRevoker revokes every Active token of a user.
type TokenRevoker interface {
	RevokeAllForUser(ctx context.Context, userID string) (int, error)
}

type UserService interface {
	GetUser(ctx context.Context, identity *auth.Identity) (*models.User, error)
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error)
	Update(ctx context.Context, identity *auth.Identity, req *models.UpdateRequest) (*models.User, error)
	LinkTelegram(ctx context.Context, identity *auth.Identity, telegramID int64) (*models.User, error)
	Delete(ctx context.Context, identity *auth.Identity, targetID string) error
}

type userService struct {
	repo       repository.UserRepository
	tokens     TokenRevoker
	authorizer *auth.Authorizer
}

func NewUserService(repo repository.UserRepository, tokens TokenRevoker, authorizer *auth.Authorizer) UserService {
	return &userService{
		repo:       repo,
		tokens:     tokens,
		authorizer: authorizer,
	}
}

func (s *userService) GetUser(ctx context.Context, identity *auth.Identity) (*models.User, error) {
	return s.getActive(ctx, identity.UserID)
}

func (s *userService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	if req.IsCertifiedAccount || req.HumanVerify {
		return nil, apperrors.NewForbiddenError("only admins can set is_certified_account or humanVerify")
	}

	user := mapper.FromRegisterRequest(req)

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrHandlerTaken) {
			return nil, apperrors.NewConflictError("user", "handler already exists").
				WithDetail("handler", req.Handler)
		}
		return nil, apperrors.NewDatabaseError("create user", err)
	}

	logger.Info().Str("user_id", user.ID).Str("handler", user.Handler).Msg("User registered")
	return user, nil
}

func (s *userService) Update(ctx context.Context, identity *auth.Identity, req *models.UpdateRequest) (*models.User, error) {
	targetID := identity.UserID
	if req.ID != nil && *req.ID != "" {
		targetID = *req.ID
	}
	if !s.authorizer.Authorize(identity, targetID) {
		return nil, apperrors.NewForbiddenError("cannot update another user")
	}
	if (req.IsCertifiedAccount != nil || req.HumanVerify != nil) && !s.authorizer.IsAdmin(identity) {
		return nil, apperrors.NewForbiddenError("only admins can set is_certified_account or humanVerify")
	}

	user, err := s.getActive(ctx, targetID)
	if err != nil {
		return nil, err
	}

	mapper.ApplyUpdate(user, req)

	if err := s.repo.Update(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrHandlerTaken):
			return nil, apperrors.NewConflictError("user", "handler already exists").
				WithDetail("handler", user.Handler)
		case errors.Is(err, repository.ErrUserNotFound):
			return nil, apperrors.NewUserNotFoundError(targetID)
		}
		return nil, apperrors.NewDatabaseError("update user", err)
	}

	return user, nil
}

// LinkTelegram binds the caller to a Telegram account proven by validated init data.
func (s *userService) LinkTelegram(ctx context.Context, identity *auth.Identity, telegramID int64) (*models.User, error) {
	if err := s.repo.LinkTelegram(ctx, identity.UserID, telegramID); err != nil {
		switch {
		case errors.Is(err, repository.ErrTelegramLinked):
			return nil, apperrors.NewConflictError("user", "telegram account already linked to another user")
		case errors.Is(err, repository.ErrUserNotFound):
			return nil, apperrors.NewUserNotFoundError(identity.UserID)
		}
		return nil, apperrors.NewDatabaseError("link telegram account", err)
	}

	logger.Info().Str("user_id", identity.UserID).Int64("telegram_id", telegramID).Msg("Telegram account linked")
	return s.getActive(ctx, identity.UserID)
}

// Delete revokes all tokens of the user, then marks it deleted. Deleting an already
// deleted user still revokes whatever tokens it has left before reporting not found.
func (s *userService) Delete(ctx context.Context, identity *auth.Identity, targetID string) error {
	if targetID == "" {
		targetID = identity.UserID
	}
	if !s.authorizer.Authorize(identity, targetID) {
		return apperrors.NewForbiddenError("cannot delete another user")
	}

	user, err := s.repo.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return apperrors.NewUserNotFoundError(targetID)
		}
		return apperrors.NewDatabaseError("get user", err)
	}

	revoked, err := s.tokens.RevokeAllForUser(ctx, targetID)
	if err != nil {
		return err
	}
	if user.IsDeleted() {
		return apperrors.NewUserNotFoundError(targetID)
	}

	if err := s.repo.MarkDeleted(ctx, targetID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return apperrors.NewUserNotFoundError(targetID)
		}
		return apperrors.NewDatabaseError("delete user", err)
	}

	logger.Info().Str("user_id", targetID).Int("revoked_tokens", revoked).Msg("User deleted")
	return nil
}

func (s *userService) getActive(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperrors.NewUserNotFoundError(id)
		}
		return nil, apperrors.NewDatabaseError("get user", err)
	}
	if user.IsDeleted() {
		return nil, apperrors.NewUserNotFoundError(id)
	}
	return user, nil
}
