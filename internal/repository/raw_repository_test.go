package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"acdata/internal/model"
)

func TestRawRepository_Save(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO llm_raw_responses")).
		WithArgs(sqlmock.AnyArg(), "LG S12EQ", "consumption: 1 kW", "fallback").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := &RawRepository{DB: conn}
	err = repo.Save(context.Background(), model.RawResponse{
		ModelName:      "LG S12EQ",
		Content:        "consumption: 1 kW\xff",
		ExtractionPath: "fallback",
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRawRepository_ListByModel(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	created := time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("FROM llm_raw_responses")).
		WithArgs("LG S12EQ", 5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "model_name", "content", "extraction_path", "created_at"}).
			AddRow("b7c9", "LG S12EQ", `{"inverter": true}`, "structured", created))

	repo := &RawRepository{DB: conn}
	list, err := repo.ListByModel(context.Background(), "LG S12EQ", 5)

	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "structured", list[0].ExtractionPath)
	assert.Equal(t, created, list[0].CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}
