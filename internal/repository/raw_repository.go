package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"acdata/internal/model"
)

// RawRepository keeps every raw provider answer for auditing the extractor.
type RawRepository struct {
	DB *sql.DB
}

func (r *RawRepository) Save(ctx context.Context, raw model.RawResponse) error {
	if raw.ID == "" {
		raw.ID = uuid.New().String()
	}

	// Remove sequências de bytes inválidas para evitar erro "invalid byte sequence for encoding UTF8"
	content := strings.ToValidUTF8(raw.Content, "")

	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO llm_raw_responses
		(id, model_name, content, extraction_path)
		VALUES ($1, $2, $3, $4)
	`, raw.ID, raw.ModelName, content, raw.ExtractionPath)
	return err
}

func (r *RawRepository) ListByModel(ctx context.Context, modelName string, limit int) ([]model.RawResponse, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, model_name, content, extraction_path, created_at
		FROM llm_raw_responses
		WHERE lower(model_name) = lower($1)
		ORDER BY created_at DESC
		LIMIT $2
	`, modelName, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []model.RawResponse
	for rows.Next() {
		var raw model.RawResponse
		if err := rows.Scan(&raw.ID, &raw.ModelName, &raw.Content, &raw.ExtractionPath, &raw.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, raw)
	}

	return list, rows.Err()
}
