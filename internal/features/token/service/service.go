package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"

	apperrors "ops-admin-backend/internal/common/errors"
	"ops-admin-backend/internal/common/logger"
	"ops-admin-backend/internal/features/auth"
	"ops-admin-backend/internal/features/token/models"
	"ops-admin-backend/internal/features/token/repository"
	usermodels "ops-admin-backend/internal/features/user/models"
	userrepo "ops-admin-backend/internal/features/user/repository"
)

// AppHandleTelegram marks tokens issued through Telegram Mini App init data.
const AppHandleTelegram = "telegram"

// UserReader resolves token owners.
type UserReader interface {
	GetByID(ctx context.Context, id string) (*usermodels.User, error)
	GetByTelegramID(ctx context.Context, telegramID int64) (*usermodels.User, error)
}

type TokenService interface {
	Issue(ctx context.Context, req *models.IssueRequest) (*models.Token, error)
	IssueForTelegram(ctx context.Context, telegramID int64) (*models.Token, error)
	Validate(ctx context.Context, value string) (*models.Token, error)
	VerifyWithProfile(ctx context.Context, value string) (*models.VerifyResponse, error)
	ListForUser(ctx context.Context, identity *auth.Identity, userID string) ([]*models.Token, error)
	Revoke(ctx context.Context, identity *auth.Identity, value string) error
	RevokeAllForUser(ctx context.Context, userID string) (int, error)
}

type tokenService struct {
	repo       repository.TokenRepository
	users      UserReader
	authorizer *auth.Authorizer
}

func NewTokenService(repo repository.TokenRepository, users UserReader, authorizer *auth.Authorizer) TokenService {
	return &tokenService{
		repo:       repo,
		users:      users,
		authorizer: authorizer,
	}
}

func (s *tokenService) Issue(ctx context.Context, req *models.IssueRequest) (*models.Token, error) {
	if _, err := s.activeUser(ctx, req.UserID); err != nil {
		return nil, err
	}
	return s.create(ctx, req.UserID, req.AppID, req.AppHandle, req.OpenID)
}

// IssueForTelegram issues a token for the user linked to the verified Telegram account.
// Handlers are self-chosen, so the Telegram username is never used for the lookup.
func (s *tokenService) IssueForTelegram(ctx context.Context, telegramID int64) (*models.Token, error) {
	openID := strconv.FormatInt(telegramID, 10)

	user, err := s.users.GetByTelegramID(ctx, telegramID)
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			return nil, apperrors.NewUserNotFoundError("telegram:" + openID)
		}
		return nil, apperrors.NewDatabaseError("get user", err)
	}
	if user.IsDeleted() {
		return nil, apperrors.NewUserNotFoundError("telegram:" + openID)
	}

	appHandle := AppHandleTelegram
	return s.create(ctx, user.ID, nil, &appHandle, &openID)
}

func (s *tokenService) create(ctx context.Context, userID string, appID, appHandle, openID *string) (*models.Token, error) {
	now := time.Now().UTC()
	t := &models.Token{
		ID:        uuid.New().String(),
		Token:     uuid.New().String(),
		UserID:    userID,
		AppID:     appID,
		AppHandle: appHandle,
		OpenID:    openID,
		Status:    models.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return nil, apperrors.NewDatabaseError("create token", err)
	}

	logger.Info().Str("user_id", userID).Str("token_id", t.ID).Msg("Token issued")
	return t, nil
}

// Validate returns the Active token with exactly this value or ErrInvalidToken.
func (s *tokenService) Validate(ctx context.Context, value string) (*models.Token, error) {
	if value == "" {
		return nil, apperrors.ErrMissingToken
	}
	t, err := s.repo.FindActive(ctx, value)
	if err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, apperrors.NewDatabaseError("find token", err)
	}
	return t, nil
}

func (s *tokenService) VerifyWithProfile(ctx context.Context, value string) (*models.VerifyResponse, error) {
	t, err := s.Validate(ctx, value)
	if err != nil {
		return nil, err
	}

	resp := &models.VerifyResponse{
		Token:     t.Token,
		AppID:     t.AppID,
		AppHandle: t.AppHandle,
		OpenID:    t.OpenID,
		CreatedAt: t.CreatedAt,
	}

	user, err := s.users.GetByID(ctx, t.UserID)
	switch {
	case err == nil:
		resp.User = &models.OwnerProfile{
			ID:                 user.ID,
			FirstName:          user.FirstName,
			LastName:           user.LastName,
			NickName:           user.NickName,
			Email:              user.Email,
			Handler:            user.Handler,
			IsCertifiedAccount: user.IsCertifiedAccount,
			CreatedAt:          user.CreatedAt,
		}
	case errors.Is(err, userrepo.ErrUserNotFound):
		logger.Warn().Str("user_id", t.UserID).Msg("Active token references a missing user")
	default:
		return nil, apperrors.NewDatabaseError("get user", err)
	}

	return resp, nil
}

// ListForUser returns the caller's Active tokens. userID may be empty or must equal the caller.
func (s *tokenService) ListForUser(ctx context.Context, identity *auth.Identity, userID string) ([]*models.Token, error) {
	if userID == "" {
		userID = identity.UserID
	}
	if !s.authorizer.Authorize(identity, userID) {
		return nil, apperrors.NewForbiddenError("cannot list tokens of another user")
	}

	tokens, err := s.repo.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list tokens", err)
	}
	return tokens, nil
}

func (s *tokenService) Revoke(ctx context.Context, identity *auth.Identity, value string) error {
	if value == "" {
		return apperrors.NewValidationError("token", "is required")
	}

	t, err := s.repo.FindActive(ctx, value)
	if err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) {
			return apperrors.ErrTokenNotFound
		}
		return apperrors.NewDatabaseError("find token", err)
	}

	if !s.authorizer.Authorize(identity, t.UserID) {
		return apperrors.NewForbiddenError("cannot revoke another user's token")
	}

	// the conditional update settles concurrent revocations
	if err := s.repo.Revoke(ctx, value); err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) {
			return apperrors.ErrTokenNotFound
		}
		return apperrors.NewDatabaseError("revoke token", err)
	}

	logger.Info().Str("user_id", t.UserID).Str("token_id", t.ID).Msg("Token revoked")
	return nil
}

func (s *tokenService) RevokeAllForUser(ctx context.Context, userID string) (int, error) {
	revoked, err := s.repo.RevokeAllForUser(ctx, userID)
	if err != nil {
		return 0, apperrors.NewDatabaseError("revoke user tokens", err)
	}
	return len(revoked), nil
}

func (s *tokenService) activeUser(ctx context.Context, id string) (*usermodels.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			return nil, apperrors.NewUserNotFoundError(id)
		}
		return nil, apperrors.NewDatabaseError("get user", err)
	}
	if user.IsDeleted() {
		return nil, apperrors.NewUserNotFoundError(id)
	}
	return user, nil
}
