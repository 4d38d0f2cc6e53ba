package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"geomed/internal/prediction/models"
	"geomed/internal/tabular"
	dErrors "geomed/pkg/domain-errors"
	"geomed/pkg/platform/httputil"
	"geomed/pkg/requestcontext"
)

const (
	historyLimit = 100
	exportLimit  = 1000
	// maxUploadBytes bounds batch workbook size.
	maxUploadBytes = 10 << 20
)

// Service defines the prediction operations the HTTP layer needs.
type Service interface {
	Predict(ctx context.Context, query models.SubjectQuery) (*models.Record, error)
	History(ctx context.Context, limit int) ([]models.Record, error)
	Get(ctx context.Context, id string) (*models.Record, error)
}

// BatchRunner runs the pipeline over uploaded rows.
type BatchRunner interface {
	Run(ctx context.Context, rows []models.RawRow) models.BatchOutcome
}

// Handler wires prediction endpoints to the prediction service.
type Handler struct {
	service Service
	batch   BatchRunner
	logger  *slog.Logger
}

func New(service Service, batch BatchRunner, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		batch:   batch,
		logger:  logger,
	}
}

// Register mounts the prediction endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/", h.handleRoot)
	r.Post("/predict-country", h.handlePredict)
	r.Get("/search-history", h.handleHistory)
	r.Get("/search-history/{id}", h.handleGetByID)
	r.Get("/export-history-excel", h.handleExport)
	r.Post("/batch-upload", h.handleBatchUpload)
}

func (h *Handler) handleRoot(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "GeoMed AI - Healthcare Professional Country Predictor",
	})
}

func (h *Handler) handlePredict(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[PredictRequest](w, r, h.logger, requestID)
	if !ok {
		return
	}

	record, err := h.service.Predict(ctx, req.Query())
	if err != nil {
		h.logger.ErrorContext(ctx, "prediction failed",
			"request_id", requestID,
			"subject", req.Name,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "prediction served",
		"request_id", requestID,
		"record_id", record.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, record)
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.History(r.Context(), historyLimit)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if records == nil {
		records = []models.Record{}
	}
	httputil.WriteJSON(w, http.StatusOK, records)
}

func (h *Handler) handleGetByID(w http.ResponseWriter, r *http.Request) {
	record, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, record)
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	records, err := h.service.History(ctx, exportLimit)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if len(records) == 0 {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "No search history found"))
		return
	}

	filename := fmt.Sprintf("geomed_hcp_history_%s.xlsx",
		requestcontext.Now(ctx).UTC().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))

	if err := tabular.WriteRecords(w, records); err != nil {
		// Headers are already out; log rather than write a second status.
		h.logger.ErrorContext(ctx, "history export failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
	}
}

func (h *Handler) handleBatchUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "file upload is required"))
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".xlsx" && ext != ".xls" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "Only Excel files (.xlsx, .xls) are supported"))
		return
	}

	rows, err := tabular.ReadRows(file)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	outcome := h.batch.Run(ctx, rows)

	h.logger.InfoContext(ctx, "batch upload processed",
		"request_id", requestID,
		"total", outcome.TotalProcessed,
		"successful", outcome.Successful,
		"failed", outcome.Failed,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, outcome)
}
