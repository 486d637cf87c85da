package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"ops-admin-backend/internal/common/response"
	"ops-admin-backend/internal/features/promotion/models"
	"ops-admin-backend/internal/features/promotion/repository"
	pg "ops-admin-backend/internal/platform/postgres"
)

const promotionColumns = `id, title, img, url, tag, platform, page, priority, event_index, status, created_at, updated_at`

type postgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) repository.PromotionRepository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Create(ctx context.Context, p *models.Promotion) error {
	query := `
		INSERT INTO promotions (` + promotionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.Title, p.Img, p.URL, p.Tag, p.Platform, p.Page, p.Priority, p.EventIndex,
		p.Status, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create promotion: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id string) (*models.Promotion, error) {
	p, err := scanPromotion(r.db.QueryRowContext(ctx,
		`SELECT `+promotionColumns+` FROM promotions WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrPromotionNotFound
		}
		return nil, fmt.Errorf("failed to get promotion: %w", err)
	}
	return p, nil
}

func (r *postgresRepository) List(ctx context.Context, filter models.Filter, page response.PageParams) ([]*models.Promotion, int, error) {
	q := &pg.Query{}
	where := pg.NewWhere(q)
	if filter.Status != "" {
		where.Add("status = " + where.Arg(filter.Status))
	} else {
		where.Add("status <> " + where.Arg(models.StatusDeleted))
	}
	if filter.Platform != "" {
		where.Add("platform = " + where.Arg(filter.Platform))
	}
	if filter.Page != "" {
		where.Add("page = " + where.Arg(filter.Page))
	}
	where.ILike(filter.Search, "title", "tag", "url")

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM promotions "+where.String(), q.Args()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count promotions: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM promotions %s
		ORDER BY priority ASC, event_index ASC, created_at DESC
		LIMIT %s OFFSET %s`,
		promotionColumns, where.String(), q.Arg(page.Limit), q.Arg(page.Offset()))

	rows, err := r.db.QueryContext(ctx, query, q.Args()...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list promotions: %w", err)
	}
	defer rows.Close()

	promotions := []*models.Promotion{}
	for rows.Next() {
		p, err := scanPromotion(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan promotion: %w", err)
		}
		promotions = append(promotions, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return promotions, total, nil
}

func (r *postgresRepository) Update(ctx context.Context, id string, req *models.UpdateRequest) (*models.Promotion, error) {
	q := &pg.Query{}
	set := pg.NewSet(q)
	if req.Title != nil {
		set.Add("title", *req.Title)
	}
	if req.Img != nil {
		set.Add("img", *req.Img)
	}
	if req.URL != nil {
		set.Add("url", *req.URL)
	}
	if req.Tag != nil {
		set.Add("tag", *req.Tag)
	}
	if req.Platform != nil {
		set.Add("platform", *req.Platform)
	}
	if req.Page != nil {
		set.Add("page", *req.Page)
	}
	if req.Priority != nil {
		set.Add("priority", *req.Priority)
	}
	if req.EventIndex != nil {
		set.Add("event_index", *req.EventIndex)
	}
	if req.Status != nil {
		set.Add("status", *req.Status)
	}

	query := fmt.Sprintf(`UPDATE promotions SET %s WHERE id = %s AND status <> %s RETURNING %s`,
		set.String(), q.Arg(id), q.Arg(models.StatusDeleted), promotionColumns)

	p, err := scanPromotion(r.db.QueryRowContext(ctx, query, q.Args()...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrPromotionNotFound
		}
		return nil, fmt.Errorf("failed to update promotion: %w", err)
	}
	return p, nil
}

func (r *postgresRepository) MarkDeleted(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE promotions SET status = $2, updated_at = NOW() WHERE id = $1 AND status <> $2`,
		id, models.StatusDeleted)
	if err != nil {
		return fmt.Errorf("failed to delete promotion: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrPromotionNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanPromotion(s scanner) (*models.Promotion, error) {
	var p models.Promotion
	var tag sql.NullString
	err := s.Scan(&p.ID, &p.Title, &p.Img, &p.URL, &tag, &p.Platform, &p.Page, &p.Priority,
		&p.EventIndex, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.Tag = tag.String
	return &p, nil
}
