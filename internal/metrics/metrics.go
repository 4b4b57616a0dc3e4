// Package metrics exposes per-operation counters and latency histograms for
// the GraphQL and JSON-RPC surfaces.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	TransportGraphQL = "graphql"
	TransportRPC     = "rpc"

	OutcomeOK    = "ok"
	OutcomeError = "error"

	// OperationUnknown replaces operation names a caller made up.
	OperationUnknown = "unknown"
)

type Recorder struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// New builds a Recorder on its own registry so tests can create as many as
// they like.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "crimelinker",
			Subsystem: "api",
			Name:      "operations_total",
			Help:      "API operations by transport, operation and outcome.",
		}, []string{"transport", "operation", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "crimelinker",
			Subsystem: "api",
			Name:      "operation_duration_seconds",
			Help:      "API operation latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"transport", "operation"}),
	}
	r.registry.MustRegister(
		r.operations,
		r.duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// Observe records one finished operation. A nil Recorder is a no-op.
func (r *Recorder) Observe(transport, operation string, started time.Time, err error) {
	if r == nil {
		return
	}
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	r.operations.WithLabelValues(transport, operation, outcome).Inc()
	r.duration.WithLabelValues(transport, operation).Observe(time.Since(started).Seconds())
}

func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

func (r *Recorder) Registry() *prometheus.Registry { return r.registry }
