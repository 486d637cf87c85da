package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"ops-admin-backend/internal/features/token/models"
	"ops-admin-backend/internal/features/token/repository"
)

const tokenColumns = `id, token, user_id, app_id, app_handle, open_id, status, created_at, updated_at`

type postgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) repository.TokenRepository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Create(ctx context.Context, t *models.Token) error {
	query := `
		INSERT INTO tokens (` + tokenColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.Token, t.UserID, t.AppID, t.AppHandle, t.OpenID, t.Status, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create token: %w", err)
	}
	return nil
}

func (r *postgresRepository) FindActive(ctx context.Context, value string) (*models.Token, error) {
	query := `SELECT ` + tokenColumns + ` FROM tokens WHERE token = $1 AND status = $2`

	var t models.Token
	err := r.db.QueryRowContext(ctx, query, value, models.StatusActive).Scan(
		&t.ID, &t.Token, &t.UserID, &t.AppID, &t.AppHandle, &t.OpenID, &t.Status,
		&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to get token: %w", err)
	}
	return &t, nil
}

func (r *postgresRepository) ListActiveByUser(ctx context.Context, userID string) ([]*models.Token, error) {
	query := `
		SELECT ` + tokenColumns + `
		FROM tokens
		WHERE user_id = $1 AND status = $2
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID, models.StatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list tokens: %w", err)
	}
	defer rows.Close()

	tokens := []*models.Token{}
	for rows.Next() {
		var t models.Token
		if err := rows.Scan(
			&t.ID, &t.Token, &t.UserID, &t.AppID, &t.AppHandle, &t.OpenID, &t.Status,
			&t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan token: %w", err)
		}
		tokens = append(tokens, &t)
	}
	return tokens, rows.Err()
}

func (r *postgresRepository) Revoke(ctx context.Context, value string) error {
	query := `UPDATE tokens SET status = $3, updated_at = NOW() WHERE token = $1 AND status = $2`

	result, err := r.db.ExecContext(ctx, query, value, models.StatusActive, models.StatusInactive)
	if err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrTokenNotFound
	}
	return nil
}

func (r *postgresRepository) RevokeAllForUser(ctx context.Context, userID string) ([]string, error) {
	query := `
		UPDATE tokens SET status = $3, updated_at = NOW()
		WHERE user_id = $1 AND status = $2
		RETURNING token
	`

	rows, err := r.db.QueryContext(ctx, query, userID, models.StatusActive, models.StatusInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to revoke user tokens: %w", err)
	}
	defer rows.Close()

	var revoked []string
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, fmt.Errorf("failed to scan token: %w", err)
		}
		revoked = append(revoked, value)
	}
	return revoked, rows.Err()
}
