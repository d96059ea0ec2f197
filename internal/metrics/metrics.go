package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CostCalculationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aetherium_cost_calculations_total",
			Help: "Total number of power cost calculations by status.",
		},
		[]string{"status"},
	)

	DomainEventsDispatchedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aetherium_domain_events_dispatched_total",
			Help: "Total number of domain events dispatched to handlers by kind and status.",
		},
		[]string{"kind", "status"},
	)

	VisibilityCascadeTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aetherium_visibility_cascade_total",
			Help: "Total number of aggregates made public by the visibility cascade.",
		},
		[]string{"aggregate"},
	)

	CatalogCacheRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aetherium_catalog_cache_requests_total",
			Help: "Total number of catalog cache lookups by result.",
		},
		[]string{"catalog", "result"},
	)
)

// Значения меток status.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)
