package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"ops-admin-backend/internal/common/response"
	"ops-admin-backend/internal/features/reward/models"
	"ops-admin-backend/internal/features/reward/repository"
	pg "ops-admin-backend/internal/platform/postgres"
)

const historyColumns = `id, user_id, tg_handle, asset_id, asset_type, amount, status, operator,
	flow_name, flow_description, note, error_message,
	found_user_handles, not_found_user_handles, success_handles, timestamp`

type postgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) repository.HistoryRepository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Create(ctx context.Context, rec *models.RewardDistributionRecord) error {
	query := `
		INSERT INTO reward_distribution_history (` + historyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err := r.db.ExecContext(ctx, query,
		rec.ID, rec.UserID, rec.TgHandle, rec.AssetID, rec.AssetType, rec.Amount, rec.Status,
		rec.Operator, rec.FlowName, rec.FlowDescription, rec.Note, rec.ErrorMessage,
		pq.Array(nonNil(rec.FoundUserHandles)),
		pq.Array(nonNil(rec.NotFoundUserHandles)),
		pq.Array(nonNil(rec.SuccessHandles)),
		rec.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to create reward history record: %w", err)
	}
	return nil
}

func (r *postgresRepository) List(ctx context.Context, filter models.HistoryFilter, page response.PageParams) ([]*models.RewardDistributionRecord, int, error) {
	q := &pg.Query{}
	where := pg.NewWhere(q)
	where.ILike(filter.UserIdentifier, "user_id", "tg_handle")
	if filter.AssetType != "" {
		where.Add("asset_type = " + where.Arg(filter.AssetType))
	}
	if filter.Status != "" {
		where.Add("status = " + where.Arg(filter.Status))
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM reward_distribution_history "+where.String(), q.Args()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count reward history: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM reward_distribution_history %s
		ORDER BY timestamp DESC
		LIMIT %s OFFSET %s`,
		historyColumns, where.String(), q.Arg(page.Limit), q.Arg(page.Offset()))

	rows, err := r.db.QueryContext(ctx, query, q.Args()...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reward history: %w", err)
	}
	defer rows.Close()

	records := []*models.RewardDistributionRecord{}
	for rows.Next() {
		var rec models.RewardDistributionRecord
		err := rows.Scan(
			&rec.ID, &rec.UserID, &rec.TgHandle, &rec.AssetID, &rec.AssetType, &rec.Amount,
			&rec.Status, &rec.Operator, &rec.FlowName, &rec.FlowDescription, &rec.Note,
			&rec.ErrorMessage,
			pq.Array(&rec.FoundUserHandles),
			pq.Array(&rec.NotFoundUserHandles),
			pq.Array(&rec.SuccessHandles),
			&rec.Timestamp,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan reward history: %w", err)
		}
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
