package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	// Scheduling metrics
	BookingsTotal      prometheus.Counter
	ConflictsTotal     prometheus.Counter
	TransitionsTotal   *prometheus.CounterVec
	ReassignmentsTotal *prometheus.CounterVec
	AppointmentsLive   prometheus.Gauge

	// Session metrics
	ForcedLogoutsTotal  prometheus.Counter
	IdleWarningsTotal   prometheus.Counter
	ActiveSessionsGauge prometheus.Gauge

	// Persistence metrics
	SnapshotSaves        prometheus.Counter
	SnapshotSaveFailures prometheus.Counter
	SnapshotLatency      prometheus.Histogram

	// Handoff queue metrics
	HandoffsEnqueued  prometheus.Counter
	HandoffsProcessed prometheus.Counter
	HandoffsFailed    prometheus.Counter
}

// NewMetrics creates and registers all application metrics
func NewMetrics(namespace, subsystem string) *Metrics {
	return &Metrics{
		BookingsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "bookings_total",
			Help:      "Total number of appointments booked",
		}),
		ConflictsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "conflicts_total",
			Help:      "Total number of writes rejected by slot conflict",
		}),
		TransitionsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "transitions_total",
			Help:      "Appointment lifecycle transitions by target status",
		}, []string{"status"}),
		ReassignmentsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "reassignments_total",
			Help:      "Appointment moves by result",
		}, []string{"result"}),
		AppointmentsLive: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "appointments_live",
			Help:      "Current number of appointments in the store",
		}),
		ForcedLogoutsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "forced_logouts_total",
			Help:      "Sessions terminated by the idle monitor",
		}),
		IdleWarningsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "idle_warnings_total",
			Help:      "Idle-expiry warnings emitted",
		}),
		ActiveSessionsGauge: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "active_sessions",
			Help:      "Currently authenticated staff sessions",
		}),
		SnapshotSaves: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "snapshot_saves_total",
			Help:      "Appointment snapshot saves attempted",
		}),
		SnapshotSaveFailures: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "snapshot_save_failures_total",
			Help:      "Appointment snapshot saves that failed",
		}),
		SnapshotLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "snapshot_save_duration_seconds",
			Help:      "Time spent saving appointment snapshots",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}),
		HandoffsEnqueued: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "handoffs_enqueued_total",
			Help:      "Checkout handoffs pushed to the queue",
		}),
		HandoffsProcessed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "handoffs_processed_total",
			Help:      "Checkout handoffs drained by the worker",
		}),
		HandoffsFailed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "handoffs_failed_total",
			Help:      "Checkout handoffs that failed to dispatch",
		}),
	}
}
