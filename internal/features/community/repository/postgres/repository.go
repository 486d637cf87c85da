package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"ops-admin-backend/internal/common/response"
	"ops-admin-backend/internal/features/community/models"
	"ops-admin-backend/internal/features/community/repository"
	pg "ops-admin-backend/internal/platform/postgres"
)

const selectCommunity = `
	SELECT c.id, c.user_id, c.name, c.handle, c.logo, c.certification, c.status, c.category,
		c.region, c.app_handle, c.app_id, c.tg_bot, c.tg_channel, c.tg_group, c.tg_handle,
		c.twitter, c.description, c.created_at, c.updated_at,
		u.id, u.first_name, u.last_name, u.nick_name, u.avatar, u.email, u.handler,
		u.is_certified_account, u.created_at, u.updated_at
	FROM communities c
	LEFT JOIN users u ON u.id = c.user_id
`

type postgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) repository.CommunityRepository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) List(ctx context.Context, filter models.Filter, page response.PageParams) ([]*models.Community, int, error) {
	q := &pg.Query{}
	where := pg.NewWhere(q)
	if filter.Status != "" {
		where.Add("c.status = " + where.Arg(filter.Status))
	}
	if filter.Category != "" {
		where.Add(where.Arg(filter.Category) + " = ANY(c.category)")
	}
	where.ILike(filter.Search, "c.name", "c.handle", "c.description")

	var total int
	countQuery := "SELECT COUNT(*) FROM communities c " + where.String()
	if err := r.db.QueryRowContext(ctx, countQuery, q.Args()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count communities: %w", err)
	}

	listQuery := fmt.Sprintf("%s %s ORDER BY c.created_at DESC LIMIT %s OFFSET %s",
		selectCommunity, where.String(), q.Arg(page.Limit), q.Arg(page.Offset()))

	rows, err := r.db.QueryContext(ctx, listQuery, q.Args()...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list communities: %w", err)
	}
	defer rows.Close()

	communities := []*models.Community{}
	for rows.Next() {
		c, err := scanCommunity(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan community: %w", err)
		}
		communities = append(communities, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return communities, total, nil
}

func (r *postgresRepository) SetCertification(ctx context.Context, handle string, certified bool) (*models.Community, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE communities SET certification = $2, updated_at = NOW() WHERE handle = $1`,
		handle, certified)
	if err != nil {
		return nil, fmt.Errorf("failed to update community: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, repository.ErrCommunityNotFound
	}

	c, err := scanCommunity(r.db.QueryRowContext(ctx, selectCommunity+" WHERE c.handle = $1", handle))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrCommunityNotFound
		}
		return nil, fmt.Errorf("failed to get community: %w", err)
	}
	return c, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanCommunity(s scanner) (*models.Community, error) {
	var c models.Community
	var (
		creatorID        sql.NullString
		creatorHandler   sql.NullString
		creatorCertified sql.NullBool
		creatorCreatedAt sql.NullTime
		creatorUpdatedAt sql.NullTime
		creator          models.Creator
	)

	err := s.Scan(
		&c.ID, &c.UserID, &c.Name, &c.Handle, &c.Logo, &c.Certification, &c.Status,
		pq.Array(&c.Category), &c.Region, &c.AppHandle, &c.AppID, &c.TgBot, &c.TgChannel,
		&c.TgGroup, &c.TgHandle, &c.Twitter, &c.Description, &c.CreatedAt, &c.UpdatedAt,
		&creatorID, &creator.FirstName, &creator.LastName, &creator.NickName, &creator.Avatar,
		&creator.Email, &creatorHandler, &creatorCertified, &creatorCreatedAt, &creatorUpdatedAt)
	if err != nil {
		return nil, err
	}

	if c.Category == nil {
		c.Category = []string{}
	}
	if creatorID.Valid {
		creator.ID = creatorID.String
		creator.Handler = creatorHandler.String
		creator.IsCertifiedAccount = creatorCertified.Bool
		creator.CreatedAt = creatorCreatedAt.Time
		creator.UpdatedAt = creatorUpdatedAt.Time
		c.Creator = &creator
	}
	return &c, nil
}
