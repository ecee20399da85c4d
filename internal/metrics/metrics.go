// Package metrics exposes Prometheus collectors for the generation
// pipeline: one histogram per stage duration, and a counter for
// generation outcomes (success/error), as package-level promauto
// collectors with small record helpers.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	stageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "worldgen_stage_duration_seconds",
		Help:    "Wall-clock duration of each generation stage",
		Buckets: prometheus.DefBuckets,
	}, []string{"stage"})

	generationResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "worldgen_generation_results_total",
		Help: "Total number of generate/rivers invocations by outcome",
	}, []string{"outcome"})

	gridCells = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "worldgen_grid_cells",
		Help: "Cell count of the most recently generated grid, by resolution",
	}, []string{"resolution"})
)

// RecordStageDuration observes one stage's wall-clock duration.
func RecordStageDuration(stage string, d time.Duration) {
	stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// RecordGenerationResult increments the outcome counter for one
// Generate or GenerateRivers call. outcome is typically "success" or an
// orchestrator.ErrorKind's string form.
func RecordGenerationResult(outcome string) {
	generationResults.WithLabelValues(outcome).Inc()
}

// SetGridSize records the cell count of the named resolution ("base" or
// "hydrology") for the most recent run.
func SetGridSize(resolution string, cells int) {
	gridCells.WithLabelValues(resolution).Set(float64(cells))
}
