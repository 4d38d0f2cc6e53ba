package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"geomed/internal/prediction/models"
)

// Postgres persists prediction records in PostgreSQL via a pgx pool.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// EnsureSchema creates the predictions table when it does not exist yet.
// Called once at startup; real migrations can replace this later.
func (s *Postgres) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS predictions (
			id                 TEXT PRIMARY KEY,
			name               TEXT NOT NULL,
			email              TEXT NOT NULL,
			hospital           TEXT NOT NULL,
			pubmed_topic       TEXT NOT NULL,
			predicted_country  TEXT NOT NULL,
			city               TEXT,
			confidence_score   DOUBLE PRECISION NOT NULL,
			sources            TEXT[] NOT NULL,
			reasoning          TEXT NOT NULL,
			is_doctor          BOOLEAN NOT NULL,
			specialty          TEXT,
			public_profile_url TEXT,
			created_at         TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS predictions_created_at_idx
			ON predictions (created_at DESC)`,
	}
	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure predictions schema: %w", err)
		}
	}
	return nil
}

func (s *Postgres) Save(ctx context.Context, record models.Record) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO predictions (
			id, name, email, hospital, pubmed_topic, predicted_country, city,
			confidence_score, sources, reasoning, is_doctor, specialty,
			public_profile_url, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		record.ID, record.Name, record.Email, record.Hospital, record.Topic,
		record.Country, record.City, record.Confidence, record.Sources,
		record.Reasoning, record.IsDoctor, record.Specialty, record.ProfileURL,
		record.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("save prediction: %w", err)
	}
	return nil
}

func (s *Postgres) ListRecent(ctx context.Context, limit int) ([]models.Record, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, email, hospital, pubmed_topic, predicted_country,
		       city, confidence_score, sources, reasoning, is_doctor,
		       specialty, public_profile_url, created_at
		FROM predictions
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list predictions: %w", err)
	}
	defer rows.Close()

	var records []models.Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list predictions: %w", err)
	}
	return records, nil
}

func (s *Postgres) FindByID(ctx context.Context, id string) (models.Record, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, name, email, hospital, pubmed_topic, predicted_country,
		       city, confidence_score, sources, reasoning, is_doctor,
		       specialty, public_profile_url, created_at
		FROM predictions
		WHERE id = $1`, id)

	record, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Record{}, ErrNotFound
		}
		return models.Record{}, err
	}
	return record, nil
}

func scanRecord(row pgx.Row) (models.Record, error) {
	var record models.Record
	err := row.Scan(
		&record.ID, &record.Name, &record.Email, &record.Hospital,
		&record.Topic, &record.Country, &record.City, &record.Confidence,
		&record.Sources, &record.Reasoning, &record.IsDoctor,
		&record.Specialty, &record.ProfileURL, &record.Timestamp,
	)
	if err != nil {
		return models.Record{}, err
	}
	return record, nil
}
