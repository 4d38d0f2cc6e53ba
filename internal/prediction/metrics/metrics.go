package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for the prediction pipeline.
type Metrics struct {
	PredictionsTotal    prometheus.Counter
	PredictionsDegraded prometheus.Counter
	PipelineDuration    prometheus.Histogram
	BatchRowsProcessed  *prometheus.CounterVec
}

// New creates and registers all prediction metrics.
func New() *Metrics {
	return &Metrics{
		PredictionsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "geomed_predictions_total",
			Help: "Total number of predictions produced",
		}),
		PredictionsDegraded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "geomed_predictions_degraded_total",
			Help: "Predictions that fell back to degraded attributes after a generation failure",
		}),
		PipelineDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "geomed_pipeline_duration_seconds",
			Help:    "Wall time of one prediction pipeline run",
			Buckets: prometheus.DefBuckets,
		}),
		BatchRowsProcessed: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "geomed_batch_rows_total",
			Help: "Batch rows by outcome",
		}, []string{"outcome"}),
	}
}

func (m *Metrics) ObservePipeline(seconds float64, degraded bool) {
	if m == nil {
		return
	}
	m.PredictionsTotal.Inc()
	m.PipelineDuration.Observe(seconds)
	if degraded {
		m.PredictionsDegraded.Inc()
	}
}

func (m *Metrics) CountBatchRow(outcome string) {
	if m == nil {
		return
	}
	m.BatchRowsProcessed.WithLabelValues(outcome).Inc()
}
