package repository

import (
	"context"
	"errors"

	"ops-admin-backend/internal/features/user/models"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrHandlerTaken   = errors.New("handler already taken")
	ErrTelegramLinked = errors.New("telegram account already linked to another user")
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	// GetByID returns logically deleted users too; callers check Status.
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByTelegramID(ctx context.Context, telegramID int64) (*models.User, error)
	// Update persists every mutable column of user.
	Update(ctx context.Context, user *models.User) error
	// LinkTelegram binds a verified Telegram user id to an Active user.
	LinkTelegram(ctx context.Context, id string, telegramID int64) error
	MarkDeleted(ctx context.Context, id string) error
}
