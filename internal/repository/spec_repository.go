package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"acdata/internal/model"
)

// Querier is satisfied by *pgxpool.Pool and pgx.Tx.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// SpecRepository is the catalog of known technical data, one row per model.
type SpecRepository struct {
	DB Querier
}

// ModelKey normalizes a model name for lookups ("Daikin  FTXF35C" == "daikin ftxf35c").
func ModelKey(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// Upsert keeps known values already stored when the new entry leaves them nil.
func (r *SpecRepository) Upsert(ctx context.Context, e model.CatalogEntry) error {
	_, err := r.DB.Exec(ctx, `
		INSERT INTO ac_specs
		(model_key, model_name, consumption_kw, cooling_power_kw, inverter, source, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())
		ON CONFLICT (model_key) DO UPDATE SET
			model_name       = EXCLUDED.model_name,
			consumption_kw   = COALESCE(EXCLUDED.consumption_kw, ac_specs.consumption_kw),
			cooling_power_kw = COALESCE(EXCLUDED.cooling_power_kw, ac_specs.cooling_power_kw),
			inverter         = COALESCE(EXCLUDED.inverter, ac_specs.inverter),
			source           = EXCLUDED.source,
			updated_at       = now()
	`, ModelKey(e.ModelName), strings.TrimSpace(e.ModelName), e.ConsumptionKW, e.CoolingPowerKW, e.Inverter, e.Source)
	return err
}

// FindByModel returns nil, nil when the model is not in the catalog.
func (r *SpecRepository) FindByModel(ctx context.Context, modelName string) (*model.CatalogEntry, error) {
	var e model.CatalogEntry
	err := r.DB.QueryRow(ctx, `
		SELECT model_name, consumption_kw, cooling_power_kw, inverter, source, updated_at
		FROM ac_specs
		WHERE model_key = $1
	`, ModelKey(modelName)).Scan(&e.ModelName, &e.ConsumptionKW, &e.CoolingPowerKW, &e.Inverter, &e.Source, &e.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *SpecRepository) List(ctx context.Context, limit int) ([]model.CatalogEntry, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT model_name, consumption_kw, cooling_power_kw, inverter, source, updated_at
		FROM ac_specs
		ORDER BY updated_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []model.CatalogEntry
	for rows.Next() {
		var e model.CatalogEntry
		if err := rows.Scan(&e.ModelName, &e.ConsumptionKW, &e.CoolingPowerKW, &e.Inverter, &e.Source, &e.UpdatedAt); err != nil {
			continue // Pula linhas com erro de scan
		}
		res = append(res, e)
	}
	return res, rows.Err()
}
