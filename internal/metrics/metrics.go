// Package metrics holds the Prometheus collectors of the allocation engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ReservationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bloodbank_reservations_total",
			Help: "Inventory reservation batches by outcome",
		},
		[]string{"outcome"},
	)

	RequestTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bloodbank_request_transitions_total",
			Help: "Blood request status transitions by target status",
		},
		[]string{"to"},
	)

	SweepItemsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bloodbank_sweep_items_total",
			Help: "Rows processed by background sweeps",
		},
		[]string{"sweep", "outcome"},
	)

	OutboxEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bloodbank_outbox_events_total",
			Help: "Outbox events handled by the relay",
		},
		[]string{"sink", "outcome"},
	)

	JobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bloodbank_job_duration_seconds",
			Help:    "Duration of scheduled jobs in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"job"},
	)
)

func ObserveTransition(to string) {
	RequestTransitionsTotal.WithLabelValues(to).Inc()
}
