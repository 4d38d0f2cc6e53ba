package prediction

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"geomed/internal/prediction/models"
)

// headerRowOffset converts a zero-based data-row index into the row number
// an operator sees in their spreadsheet (1-based, plus the header row).
const headerRowOffset = 2

// BatchRunner applies the prediction pipeline independently to each
// uploaded row. Its defining guarantee is isolation: one row's failure
// never aborts or affects any other row.
type BatchRunner struct {
	service *Service
	// workers bounds concurrent rows; 1 processes rows strictly in order.
	workers int
}

func NewBatchRunner(service *Service, workers int) *BatchRunner {
	if workers < 1 {
		workers = 1
	}
	return &BatchRunner{service: service, workers: workers}
}

type rowOutcome struct {
	record *models.Record
	err    *models.RowError
}

// Run processes every row and aggregates the per-row outcomes. Results and
// errors keep spreadsheet order regardless of the worker bound.
func (b *BatchRunner) Run(ctx context.Context, rows []models.RawRow) models.BatchOutcome {
	outcomes := make([]rowOutcome, len(rows))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers)
	for i, row := range rows {
		g.Go(func() error {
			outcomes[i] = b.processRow(gctx, i, row)
			return nil
		})
	}
	// Workers never return errors; faults are captured per row.
	_ = g.Wait()

	outcome := models.BatchOutcome{
		TotalProcessed: len(rows),
		Results:        []models.Record{},
		Errors:         []models.RowError{},
	}
	for _, o := range outcomes {
		if o.record != nil {
			outcome.Results = append(outcome.Results, *o.record)
			outcome.Successful++
		} else {
			outcome.Errors = append(outcome.Errors, *o.err)
			outcome.Failed++
		}
	}
	return outcome
}

func (b *BatchRunner) processRow(ctx context.Context, index int, row models.RawRow) rowOutcome {
	rowNumber := index + headerRowOffset

	query := models.SubjectQuery{
		Name:     strings.TrimSpace(strings.TrimSpace(row.FirstName) + " " + strings.TrimSpace(row.LastName)),
		Email:    strings.TrimSpace(row.Email),
		Hospital: strings.TrimSpace(row.Hospital),
		Topic:    strings.TrimSpace(row.Topic),
	}

	// Pre-flight validation, distinct from pipeline failures: empty rows
	// never reach the pipeline.
	if query.Name == "" || query.Email == "" || query.Hospital == "" || query.Topic == "" {
		b.service.metrics.CountBatchRow("invalid")
		return rowOutcome{err: &models.RowError{Row: rowNumber, Error: "Empty fields detected"}}
	}

	record, err := b.service.Predict(ctx, query)
	if err != nil {
		b.service.logger.ErrorContext(ctx, "batch row failed",
			"row", rowNumber,
			"subject", query.Name,
			"error", err,
		)
		b.service.metrics.CountBatchRow("failed")
		return rowOutcome{err: &models.RowError{Row: rowNumber, Error: err.Error()}}
	}

	b.service.metrics.CountBatchRow("successful")
	return rowOutcome{record: record}
}
