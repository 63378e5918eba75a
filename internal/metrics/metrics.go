// Package metrics exposes prometheus instrumentation for group creation
// and per-item resolution outcomes.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// OutcomeOK labels a successfully resolved item; failures are labelled by
// their error kind.
const OutcomeOK = "ok"

// Metrics holds the application's prometheus collectors
type Metrics struct {
	GroupsCreated prometheus.Counter
	ItemsResolved *prometheus.CounterVec

	registry *prometheus.Registry
}

// New creates the metrics set on its own registry
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		GroupsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "gallery_groups_created_total",
			Help: "Number of project groups created.",
		}),
		ItemsResolved: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "gallery_items_resolved_total",
			Help: "Number of group items resolved, labelled by outcome.",
		}, []string{"outcome"}),
		registry: registry,
	}
}

// Handler returns the HTTP handler serving the /metrics endpoint
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
