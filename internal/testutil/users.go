package testutil

import (
	"context"
	"sync"
	"time"

	"ops-admin-backend/internal/features/user/models"
	"ops-admin-backend/internal/features/user/repository"
)

// UserRepository is an in-memory repository.UserRepository.
type UserRepository struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func NewUserRepository(users ...*models.User) *UserRepository {
	r := &UserRepository{users: map[string]*models.User{}}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

// ActiveUser builds a minimal Active user.
func ActiveUser(id, handler string) *models.User {
	now := time.Now().UTC()
	return &models.User{
		ID:               id,
		Handler:          handler,
		FirstName:        StrPtr(handler),
		InterestedTags:   []string{},
		BrowserLanguages: []string{},
		Status:           models.StatusActive,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

func (r *UserRepository) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Handler == user.Handler {
			return repository.ErrHandlerTaken
		}
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *UserRepository) GetByTelegramID(_ context.Context, telegramID int64) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.TelegramID != nil && *u.TelegramID == telegramID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (r *UserRepository) Update(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.users[user.ID]
	if !ok || existing.IsDeleted() {
		return repository.ErrUserNotFound
	}
	for id, u := range r.users {
		if id != user.ID && u.Handler == user.Handler {
			return repository.ErrHandlerTaken
		}
	}
	cp := *user
	cp.TelegramID = existing.TelegramID
	r.users[user.ID] = &cp
	return nil
}

func (r *UserRepository) LinkTelegram(_ context.Context, id string, telegramID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok || u.IsDeleted() {
		return repository.ErrUserNotFound
	}
	for otherID, other := range r.users {
		if otherID != id && other.TelegramID != nil && *other.TelegramID == telegramID {
			return repository.ErrTelegramLinked
		}
	}
	u.TelegramID = &telegramID
	u.UpdatedAt = time.Now().UTC()
	return nil
}

// TelegramUser builds an Active user already linked to a Telegram account.
func TelegramUser(id, handler string, telegramID int64) *models.User {
	u := ActiveUser(id, handler)
	u.TelegramID = &telegramID
	return u
}

func (r *UserRepository) MarkDeleted(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok || u.IsDeleted() {
		return repository.ErrUserNotFound
	}
	u.Status = models.StatusDeleted
	u.UpdatedAt = time.Now().UTC()
	return nil
}
