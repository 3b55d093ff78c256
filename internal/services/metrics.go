package services

import "github.com/prometheus/client_golang/prometheus"

var (
	// reservationsCreated counts reservations accepted by the engine.
	reservationsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "reservations_created_total",
			Help: "Total number of reservations created.",
		},
	)

	// reservationsCancelled counts reservations removed, singly or in bulk.
	reservationsCancelled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "reservations_cancelled_total",
			Help: "Total number of reservations cancelled or deleted.",
		},
	)

	// reservationConflicts counts writes rejected for double-booking.
	reservationConflicts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "reservation_conflicts_total",
			Help: "Total number of reservation writes rejected because the table was taken.",
		},
	)

	// layoutMutations counts applied layout changes by operation, undo included.
	layoutMutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "layout_mutations_total",
			Help: "Total number of applied layout mutations.",
		},
		[]string{"op"},
	)

	// persistFailures counts state writes that failed and were dropped.
	persistFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "state_persist_failures_total",
			Help: "Total number of failed state writes.",
		},
		[]string{"key"},
	)
)

func init() {
	prometheus.MustRegister(reservationsCreated, reservationsCancelled, reservationConflicts, layoutMutations, persistFailures)
}
