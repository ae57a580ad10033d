package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Query pipeline Prometheus metrics, labelled by catalog
// (documents, experiences, services, laws).
var (
	PipelineDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pipeline_duration_seconds",
			Help:      "Filter and sort pipeline run time",
			Buckets:   []float64{0.00005, 0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.05},
		},
		[]string{"catalog"},
	)

	PipelineResultSize = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pipeline_result_size",
			Help:      "Number of records returned by the pipeline",
			Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100, 500},
		},
		[]string{"catalog"},
	)

	PipelineDegradedSortTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pipeline_degraded_sort_total",
			Help:      "Queries whose sort key was unknown and fell back to input order",
		},
		[]string{"catalog"},
	)
)

var registerPipelineOnce sync.Once

// RegisterPipelineMetrics registers the pipeline collectors. Must be called from main.
func RegisterPipelineMetrics(reg prometheus.Registerer) {
	registerPipelineOnce.Do(func() {
		reg.MustRegister(PipelineDuration, PipelineResultSize, PipelineDegradedSortTotal)
	})
}

// ObservePipeline records one pipeline run.
func ObservePipeline(catalog string, start time.Time, results int, sortApplied bool) {
	PipelineDuration.WithLabelValues(catalog).Observe(time.Since(start).Seconds())
	PipelineResultSize.WithLabelValues(catalog).Observe(float64(results))
	if !sortApplied {
		PipelineDegradedSortTotal.WithLabelValues(catalog).Inc()
	}
}
