package postgres

import (
	"context"
	"fmt"

	"ops-admin-backend/internal/common/logger"
)

// schema is idempotent; it is applied at startup when DB_AUTO_MIGRATE is set.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id                   TEXT PRIMARY KEY,
		app_id               TEXT,
		app_handle           TEXT,
		from_channel         TEXT,
		register_method      TEXT,
		first_name           TEXT,
		last_name            TEXT,
		avatar               TEXT,
		nick_name            TEXT,
		email                TEXT,
		description          TEXT,
		interested_tags      TEXT[] NOT NULL DEFAULT '{}',
		ip                   TEXT,
		country_code         TEXT,
		browser_languages    TEXT[] NOT NULL DEFAULT '{}',
		language             TEXT,
		is_bot               BOOLEAN NOT NULL DEFAULT FALSE,
		handler              TEXT NOT NULL UNIQUE,
		is_certified_account BOOLEAN NOT NULL DEFAULT FALSE,
		human_verify         BOOLEAN NOT NULL DEFAULT FALSE,
		last_login_time      TIMESTAMPTZ,
		line_info            JSONB,
		telegram_id          BIGINT UNIQUE,
		status               TEXT NOT NULL DEFAULT 'active',
		created_at           TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at           TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`ALTER TABLE users ADD COLUMN IF NOT EXISTS telegram_id BIGINT UNIQUE`,
	`CREATE TABLE IF NOT EXISTS tokens (
		id         TEXT PRIMARY KEY,
		token      TEXT NOT NULL UNIQUE,
		user_id    TEXT NOT NULL REFERENCES users(id),
		app_id     TEXT,
		app_handle TEXT,
		open_id    TEXT,
		status     TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tokens_user_status ON tokens(user_id, status)`,
	`CREATE TABLE IF NOT EXISTS communities (
		id            TEXT PRIMARY KEY,
		user_id       TEXT,
		name          TEXT NOT NULL,
		handle        TEXT NOT NULL UNIQUE,
		logo          TEXT,
		certification BOOLEAN NOT NULL DEFAULT FALSE,
		status        TEXT NOT NULL DEFAULT 'active',
		category      TEXT[] NOT NULL DEFAULT '{}',
		region        TEXT,
		app_handle    TEXT,
		app_id        TEXT,
		tg_bot        TEXT,
		tg_channel    TEXT,
		tg_group      TEXT,
		tg_handle     TEXT,
		twitter       TEXT,
		description   TEXT,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS promotions (
		id          TEXT PRIMARY KEY,
		title       TEXT NOT NULL,
		img         TEXT NOT NULL,
		url         TEXT NOT NULL,
		tag         TEXT,
		platform    TEXT NOT NULL,
		page        TEXT NOT NULL,
		priority    INTEGER NOT NULL DEFAULT 1,
		event_index INTEGER NOT NULL DEFAULT 0,
		status      TEXT NOT NULL DEFAULT 'active',
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_promotions_listing ON promotions(status, priority, event_index)`,
	`CREATE TABLE IF NOT EXISTS reward_distribution_history (
		id                     TEXT PRIMARY KEY,
		user_id                TEXT,
		tg_handle              TEXT,
		asset_id               TEXT,
		asset_type             TEXT NOT NULL,
		amount                 NUMERIC(36, 18) NOT NULL,
		status                 TEXT NOT NULL,
		operator               TEXT NOT NULL,
		flow_name              TEXT NOT NULL,
		flow_description       TEXT NOT NULL,
		note                   TEXT,
		error_message          TEXT,
		found_user_handles     TEXT[] NOT NULL DEFAULT '{}',
		not_found_user_handles TEXT[] NOT NULL DEFAULT '{}',
		success_handles        TEXT[] NOT NULL DEFAULT '{}',
		timestamp              TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_reward_history_timestamp ON reward_distribution_history(timestamp DESC)`,
}

// Migrate applies the bootstrap schema.
func (c *Client) Migrate(ctx context.Context) error {
	for i, stmt := range schema {
		if _, err := c.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i, err)
		}
	}
	logger.Info().Int("statements", len(schema)).Msg("Database schema applied")
	return nil
}
