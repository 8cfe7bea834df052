package repository

import (
	"context"
	"time"

	"jobmarket/internal/database"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type IngestionRun struct {
	ID              uuid.UUID
	Source          string
	StartedAt       time.Time
	FinishedAt      *time.Time
	Fetched         int
	Ingested        int
	Duplicates      int
	FuzzyDuplicates int
	Failed          int
	Error           string
}

type IngestionRunRepository interface {
	Start(ctx context.Context, source string) (uuid.UUID, error)
	Finish(ctx context.Context, run IngestionRun) error
	ListRecent(ctx context.Context, limit int) ([]IngestionRun, error)
}

type PostgresIngestionRunRepository struct {
	db database.DB
}

func NewPostgresIngestionRunRepository(db database.DB) *PostgresIngestionRunRepository {
	return &PostgresIngestionRunRepository{db: db}
}

func (r *PostgresIngestionRunRepository) Start(ctx context.Context, source string) (uuid.UUID, error) {
	var id uuid.UUID
	if err := r.db.QueryRow(ctx, `INSERT INTO ingestion_runs (source) VALUES ($1) RETURNING id`, source).Scan(&id); err != nil {
		return uuid.Nil, errors.Wrap(err, "start ingestion run")
	}
	return id, nil
}

func (r *PostgresIngestionRunRepository) Finish(ctx context.Context, run IngestionRun) error {
	_, err := r.db.Exec(ctx, `
UPDATE ingestion_runs SET finished_at = now(), fetched = $2, ingested = $3, duplicates = $4,
	fuzzy_duplicates = $5, failed = $6, error = $7
WHERE id = $1`,
		run.ID, run.Fetched, run.Ingested, run.Duplicates, run.FuzzyDuplicates, run.Failed, nullable(run.Error),
	)
	return errors.Wrap(err, "finish ingestion run")
}

func (r *PostgresIngestionRunRepository) ListRecent(ctx context.Context, limit int) ([]IngestionRun, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	rows, err := r.db.Query(ctx, `
SELECT id, source, started_at, finished_at, fetched, ingested, duplicates, fuzzy_duplicates, failed, COALESCE(error, '')
FROM ingestion_runs ORDER BY started_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "list ingestion runs")
	}
	defer rows.Close()

	out := make([]IngestionRun, 0)
	for rows.Next() {
		var run IngestionRun
		if err := rows.Scan(&run.ID, &run.Source, &run.StartedAt, &run.FinishedAt, &run.Fetched,
			&run.Ingested, &run.Duplicates, &run.FuzzyDuplicates, &run.Failed, &run.Error); err != nil {
			return nil, errors.Wrap(err, "scan ingestion run")
		}
		out = append(out, run)
	}
	return out, errors.Wrap(rows.Err(), "list ingestion runs")
}
