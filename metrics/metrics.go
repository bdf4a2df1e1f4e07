// Package metrics holds the Prometheus collectors for the widget backend.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics bundles the collectors on a private registry, so tests can build
// independent instances.
type Metrics struct {
	Registry *prometheus.Registry

	BuildsTotal       prometheus.Counter
	BuildFailures     prometheus.Counter
	OperationsSkipped prometheus.Counter
	WidgetsBuilt      prometheus.Gauge
	ManifestRequests  prometheus.Counter
}

// New creates the collectors and registers them.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		BuildsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "widget_builds_total",
			Help: "Manifest build attempts.",
		}),
		BuildFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "widget_build_failures_total",
			Help: "Manifest build attempts that failed.",
		}),
		OperationsSkipped: factory.NewCounter(prometheus.CounterOpts{
			Name: "widget_operations_skipped_total",
			Help: "Operations skipped with a warning during builds.",
		}),
		WidgetsBuilt: factory.NewGauge(prometheus.GaugeOpts{
			Name: "widget_manifest_widgets",
			Help: "Widgets in the currently published manifest.",
		}),
		ManifestRequests: factory.NewCounter(prometheus.CounterOpts{
			Name: "widget_manifest_requests_total",
			Help: "Requests served from the widgets endpoint.",
		}),
	}
}
