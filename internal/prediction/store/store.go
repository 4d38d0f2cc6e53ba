// Package store persists prediction records. Implementations are
// interface-driven so the pipeline and handlers can run against in-memory
// storage in tests and PostgreSQL in production without rewiring.
package store

import (
	"context"

	"geomed/internal/prediction/models"
	"geomed/pkg/platform/sentinel"
)

// ErrNotFound keeps store-level 404s consistent across implementations.
var ErrNotFound = sentinel.ErrNotFound

// Store is the persistence contract for prediction records. Records are
// written once and never mutated.
type Store interface {
	Save(ctx context.Context, record models.Record) error
	// ListRecent returns up to limit records, newest first.
	ListRecent(ctx context.Context, limit int) ([]models.Record, error)
	FindByID(ctx context.Context, id string) (models.Record, error)
}
