// Package metrics exports kinship query measurements to Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/BipinThapa/lineage-explorer-genesis/internal/domain/ports"
)

const namespace = "lineage"

// Recorder implements ports.KinshipRecorder on a Prometheus registry.
type Recorder struct {
	queries       *prometheus.CounterVec
	queryDuration *prometheus.HistogramVec
	builds        prometheus.Counter
	buildDuration prometheus.Histogram
	rosterSize    prometheus.Gauge
}

var _ ports.KinshipRecorder = (*Recorder)(nil)

// NewRecorder registers the kinship collectors on reg.
// Registering twice on the same registry panics, as promauto does.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		// queries counts resolved queries by the tier that answered them
		queries: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kinship_queries_total",
			Help:      "Total kinship queries by resolving tier",
		}, []string{"tier"}),

		queryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "kinship_query_duration_seconds",
			Help:      "Kinship query duration in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.000001, 4, 10), // 1µs to ~260ms
		}, []string{"tier"}),

		builds: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kinship_engine_builds_total",
			Help:      "Total kinship engine rebuilds",
		}),

		buildDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "kinship_engine_build_duration_seconds",
			Help:      "Kinship engine build duration in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}),

		// rosterSize is the member count of the most recent build
		rosterSize: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "roster_members",
			Help:      "Members in the most recently built roster",
		}),
	}
}

// ObserveQuery implements ports.KinshipRecorder.
func (r *Recorder) ObserveQuery(tier string, elapsed time.Duration) {
	r.queries.WithLabelValues(tier).Inc()
	r.queryDuration.WithLabelValues(tier).Observe(elapsed.Seconds())
}

// ObserveBuild implements ports.KinshipRecorder.
func (r *Recorder) ObserveBuild(members int, elapsed time.Duration) {
	r.builds.Inc()
	r.buildDuration.Observe(elapsed.Seconds())
	r.rosterSize.Set(float64(members))
}

// Handler serves the metrics gathered by g in the Prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
