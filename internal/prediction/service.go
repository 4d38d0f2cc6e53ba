// Package prediction implements the evidence-augmented attribute inference
// pipeline: bibliographic evidence, one generation call, deterministic
// parsing, provenance, persistence.
package prediction

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"geomed/internal/prediction/metrics"
	"geomed/internal/prediction/models"
	"geomed/internal/prediction/store"
	dErrors "geomed/pkg/domain-errors"
)

// EvidenceClient gathers best-effort bibliographic evidence. It reports
// degradation inside the result and never returns an error.
type EvidenceClient interface {
	Lookup(ctx context.Context, name, topic string) models.EvidenceResult
}

// InferenceClient performs one generation call and returns the raw labeled
// text.
type InferenceClient interface {
	Infer(ctx context.Context, query models.SubjectQuery, evidence models.EvidenceResult) (string, error)
}

// Service runs the pipeline for a single subject. It is safe for concurrent
// use: each run is independent, and the only shared collaborator is the
// store.
type Service struct {
	evidence  EvidenceClient
	inference InferenceClient
	store     store.Store
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

func New(evidence EvidenceClient, inference InferenceClient, st store.Store, logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{
		evidence:  evidence,
		inference: inference,
		store:     st,
		logger:    logger,
		metrics:   m,
	}
}

// Predict runs one prediction end to end and persists the record before
// returning it. Evidence and generation failures degrade into default
// attributes; only a persistence failure surfaces as an error.
func (s *Service) Predict(ctx context.Context, query models.SubjectQuery) (*models.Record, error) {
	start := time.Now()

	evidence := s.evidence.Lookup(ctx, query.Name, query.Topic)

	var attrs models.Attributes
	degraded := false
	raw, err := s.inference.Infer(ctx, query, evidence)
	if err != nil {
		attrs = DegradedAttributes(err)
		degraded = true
	} else {
		attrs = ParseAttributes(raw)
	}

	record := models.Record{
		ID:         uuid.NewString(),
		Name:       query.Name,
		Email:      query.Email,
		Hospital:   query.Hospital,
		Topic:      query.Topic,
		Country:    attrs.Country,
		City:       attrs.City,
		Confidence: attrs.Confidence,
		Sources:    BuildSources(evidence, query.Email),
		Reasoning:  attrs.Reasoning,
		IsDoctor:   attrs.IsDoctor,
		Specialty:  attrs.Specialty,
		ProfileURL: attrs.ProfileURL,
		Timestamp:  time.Now().UTC(),
	}

	if err := s.store.Save(ctx, record); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save prediction")
	}

	s.metrics.ObservePipeline(time.Since(start).Seconds(), degraded)
	s.logger.InfoContext(ctx, "prediction completed",
		"record_id", record.ID,
		"subject", query.Name,
		"country", record.Country,
		"confidence", record.Confidence,
		"evidence_found", evidence.Found,
		"degraded", degraded,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return &record, nil
}

// History returns up to limit records, newest first.
func (s *Service) History(ctx context.Context, limit int) ([]models.Record, error) {
	records, err := s.store.ListRecent(ctx, limit)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list predictions")
	}
	return records, nil
}

// Get returns one record by ID; a missing record is a distinct NotFound
// condition.
func (s *Service) Get(ctx context.Context, id string) (*models.Record, error) {
	record, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "prediction not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load prediction")
	}
	return &record, nil
}
