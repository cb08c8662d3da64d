package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CollectionsEnsured counts collection creation requests by result
	// ("created" or "existing").
	CollectionsEnsured = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "thinkify_bootstrap_collections_total",
		Help: "Total number of collections ensured, by result.",
	}, []string{"result"})

	// IndexesEnsured counts index declarations acknowledged by the server.
	IndexesEnsured = promauto.NewCounter(prometheus.CounterOpts{
		Name: "thinkify_bootstrap_indexes_total",
		Help: "Total number of index declarations ensured.",
	})

	// BootstrapFailures counts failed runs by the step that failed.
	BootstrapFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "thinkify_bootstrap_failures_total",
		Help: "Total number of failed bootstrap runs, by failing step.",
	}, []string{"step"})

	// LastSuccess is the unix time of the last successful run.
	LastSuccess = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "thinkify_bootstrap_last_success_timestamp_seconds",
		Help: "Unix timestamp of the last successful bootstrap run.",
	})

	// Duration records how long successful runs took.
	Duration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "thinkify_bootstrap_duration_seconds",
		Help:    "Duration of successful bootstrap runs.",
		Buckets: prometheus.DefBuckets,
	})

	// SchemaMismatches reports mismatches found by the last verification.
	SchemaMismatches = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "thinkify_schema_mismatches",
		Help: "Number of schema mismatches found by the last verification.",
	})
)

// WriteTextfile dumps the default registry in the node-exporter textfile
// format. One-shot runs have no scrape window, so this is how their
// metrics reach Prometheus. An empty path is a no-op.
func WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
