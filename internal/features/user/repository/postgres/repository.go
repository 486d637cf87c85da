package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"ops-admin-backend/internal/features/user/models"
	"ops-admin-backend/internal/features/user/repository"
	pg "ops-admin-backend/internal/platform/postgres"
)

const userColumns = `id, app_id, app_handle, from_channel, register_method, first_name, last_name,
	avatar, nick_name, email, description, interested_tags, ip, country_code, browser_languages,
	language, is_bot, handler, is_certified_account, human_verify, last_login_time, line_info,
	telegram_id, status, created_at, updated_at`

const (
	handlerConstraint    = "users_handler_key"
	telegramIDConstraint = "users_telegram_id_key"
)

type postgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) repository.UserRepository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18,
			$19, $20, $21, $22, $23, $24, $25, $26)
	`

	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.AppID, user.AppHandle, user.FromChannel, user.RegisterMethod,
		user.FirstName, user.LastName, user.Avatar, user.NickName, user.Email, user.Description,
		pq.Array(nonNil(user.InterestedTags)), user.IP, user.CountryCode,
		pq.Array(nonNil(user.BrowserLanguages)), user.Language, user.IsBot, user.Handler,
		user.IsCertifiedAccount, user.HumanVerify, user.LastLoginTime, jsonParam(user.LineInfo),
		user.TelegramID, user.Status, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		if pg.IsUniqueViolationOn(err, handlerConstraint) {
			return repository.ErrHandlerTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.getOne(ctx, "id", id)
}

func (r *postgresRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*models.User, error) {
	return r.getOne(ctx, "telegram_id", telegramID)
}

func (r *postgresRepository) getOne(ctx context.Context, column string, value interface{}) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE %s = $1`, userColumns, column)

	user, err := scanUser(r.db.QueryRowContext(ctx, query, value))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (r *postgresRepository) Update(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET app_handle = $2, first_name = $3, last_name = $4, avatar = $5, nick_name = $6,
			email = $7, description = $8, interested_tags = $9, ip = $10, country_code = $11,
			browser_languages = $12, language = $13, handler = $14, is_certified_account = $15,
			human_verify = $16, last_login_time = $17, line_info = $18, updated_at = NOW()
		WHERE id = $1 AND status <> 'deleted'
	`

	result, err := r.db.ExecContext(ctx, query,
		user.ID, user.AppHandle, user.FirstName, user.LastName, user.Avatar, user.NickName,
		user.Email, user.Description, pq.Array(nonNil(user.InterestedTags)), user.IP,
		user.CountryCode, pq.Array(nonNil(user.BrowserLanguages)), user.Language, user.Handler,
		user.IsCertifiedAccount, user.HumanVerify, user.LastLoginTime, jsonParam(user.LineInfo))
	if err != nil {
		if pg.IsUniqueViolationOn(err, handlerConstraint) {
			return repository.ErrHandlerTaken
		}
		return fmt.Errorf("failed to update user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

func (r *postgresRepository) LinkTelegram(ctx context.Context, id string, telegramID int64) error {
	query := `UPDATE users SET telegram_id = $2, updated_at = NOW() WHERE id = $1 AND status <> 'deleted'`

	result, err := r.db.ExecContext(ctx, query, id, telegramID)
	if err != nil {
		if pg.IsUniqueViolationOn(err, telegramIDConstraint) {
			return repository.ErrTelegramLinked
		}
		return fmt.Errorf("failed to link telegram account: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

func (r *postgresRepository) MarkDeleted(ctx context.Context, id string) error {
	query := `UPDATE users SET status = 'deleted', updated_at = NOW() WHERE id = $1 AND status <> 'deleted'`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	var lineInfo []byte
	err := row.Scan(
		&u.ID, &u.AppID, &u.AppHandle, &u.FromChannel, &u.RegisterMethod, &u.FirstName,
		&u.LastName, &u.Avatar, &u.NickName, &u.Email, &u.Description,
		pq.Array(&u.InterestedTags), &u.IP, &u.CountryCode, pq.Array(&u.BrowserLanguages),
		&u.Language, &u.IsBot, &u.Handler, &u.IsCertifiedAccount, &u.HumanVerify,
		&u.LastLoginTime, &lineInfo, &u.TelegramID, &u.Status, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(lineInfo) > 0 {
		u.LineInfo = append([]byte(nil), lineInfo...)
	}
	return &u, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// jsonb parameters go over the wire as text
func jsonParam(raw []byte) interface{} {
	if len(raw) == 0 {
		return nil
	}
	return string(raw)
}
