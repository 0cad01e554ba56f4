package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the gateway. A nil *Metrics is
// valid and records nothing, which keeps unit tests free of registries.
type Metrics struct {
	GeofenceChecks  *prometheus.CounterVec
	ConfigFetches   *prometheus.CounterVec
	BackendRequests *prometheus.HistogramVec
}

// New creates and registers all metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		GeofenceChecks: f.NewCounterVec(prometheus.CounterOpts{
			Name: "attendance_geofence_checks_total",
			Help: "Geofence evaluations by action and outcome",
		}, []string{"action", "outcome"}),
		ConfigFetches: f.NewCounterVec(prometheus.CounterOpts{
			Name: "attendance_config_fetches_total",
			Help: "Configuration cache fetches by config name and outcome",
		}, []string{"config", "outcome"}),
		BackendRequests: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "attendance_backend_request_duration_seconds",
			Help:    "Latency of calls to the backend REST API",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
	}
}

func (m *Metrics) ObserveGeofence(action string, within bool) {
	if m == nil {
		return
	}
	outcome := "outside"
	if within {
		outcome = "within"
	}
	m.GeofenceChecks.WithLabelValues(action, outcome).Inc()
}

func (m *Metrics) ObserveConfigFetch(name string, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	m.ConfigFetches.WithLabelValues(name, outcome).Inc()
}

func (m *Metrics) ObserveBackend(method, path, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.BackendRequests.WithLabelValues(method, path, status).Observe(elapsed.Seconds())
}
