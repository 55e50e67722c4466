package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
)

const Schema = `
CREATE TABLE IF NOT EXISTS llm_raw_responses (
	id              UUID PRIMARY KEY,
	model_name      TEXT NOT NULL,
	content         TEXT NOT NULL,
	extraction_path TEXT NOT NULL,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS llm_raw_responses_model_idx ON llm_raw_responses (lower(model_name));

CREATE TABLE IF NOT EXISTS ac_specs (
	model_key        TEXT PRIMARY KEY,
	model_name       TEXT NOT NULL,
	consumption_kw   DOUBLE PRECISION,
	cooling_power_kw DOUBLE PRECISION,
	inverter         BOOLEAN,
	source           TEXT NOT NULL,
	updated_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

func New(url string) (*sql.DB, error) {
	return sql.Open("postgres", url)
}

func NewPool(ctx context.Context, url string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("pgxpool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pgxpool ping: %w", err)
	}
	return pool, nil
}

// EnsureSchema creates the audit and catalog tables when missing.
func EnsureSchema(ctx context.Context, conn *sql.DB) error {
	if _, err := conn.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
