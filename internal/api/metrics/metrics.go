// Package metrics defines and registers all custom Prometheus metrics for the
// landed cost API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register themselves with the default Prometheus registry via
// promauto at package load; the /metrics route exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "landedcost"

// CalculationsTotal counts calculations that completed successfully.
// Labels:
//   - method: the shipping method (e.g. "sea_fcl")
//   - destination: the destination country code (e.g. "US")
var CalculationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "calculations_total",
		Help:      "Total number of landed cost calculations completed successfully.",
	},
	[]string{"method", "destination"},
)

// CalculationErrorsTotal counts calculations that were rejected.
// Label:
//   - reason: short description of the failure (e.g. "validation", "unsupported_method")
var CalculationErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "calculation_errors_total",
		Help:      "Total number of landed cost calculations rejected with an error.",
	},
	[]string{"reason"},
)

// CalculationDuration measures how long a single calculation takes end-to-end,
// including benchmark rate resolution for saved quotes.
// Label:
//   - operation: "calculate", "compare", or "save_quote"
var CalculationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "calculation_duration_seconds",
		Help:      "Duration of landed cost calculations from request decode to response.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"operation"},
)

// BenchmarkCacheTotal counts benchmark rate lookups by outcome.
// Label:
//   - result: "hit", "miss", or "error"
var BenchmarkCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "benchmark_cache_total",
		Help:      "Total number of benchmark rate cache lookups by outcome.",
	},
	[]string{"result"},
)

// QuotesSavedTotal counts quotes persisted to the history store.
// Label:
//   - destination: the destination country code
var QuotesSavedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "quotes_saved_total",
		Help:      "Total number of quotes calculated and persisted.",
	},
	[]string{"destination"},
)
