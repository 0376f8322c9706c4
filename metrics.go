package arrivalboard

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the board's Prometheus instruments. All components share
// one instance; a nil *Metrics disables collection entirely.
type Metrics struct {
	PollsTotal      *prometheus.CounterVec
	PollDuration    prometheus.Histogram
	WorkersRunning  prometheus.Gauge
	RotationsTotal  prometheus.Counter
	BroadcastsTotal prometheus.Counter
}

// NewMetrics creates the board's instruments, unregistered.
func NewMetrics() *Metrics {
	return &Metrics{
		PollsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "arrivalboard",
				Subsystem: "poller",
				Name:      "polls_total",
				Help:      "Feed polls by stop and outcome.",
			},
			[]string{"stop_id", "status"},
		),
		PollDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "arrivalboard",
				Subsystem: "poller",
				Name:      "poll_duration_seconds",
				Help:      "Feed fetch and decode duration in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
		),
		WorkersRunning: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "arrivalboard",
				Subsystem: "poller",
				Name:      "workers_running",
				Help:      "Number of polling workers currently running.",
			},
		),
		RotationsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "arrivalboard",
				Subsystem: "display",
				Name:      "rotations_total",
				Help:      "Stop frames rendered by the rotation loop.",
			},
		),
		BroadcastsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "arrivalboard",
				Subsystem: "display",
				Name:      "broadcasts_total",
				Help:      "Broadcast messages shown.",
			},
		),
	}
}

// Register registers all instruments on reg.
func (m *Metrics) Register(reg *prometheus.Registry) {
	reg.MustRegister(
		m.PollsTotal,
		m.PollDuration,
		m.WorkersRunning,
		m.RotationsTotal,
		m.BroadcastsTotal,
	)
}

func (m *Metrics) observePoll(stopID string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.PollsTotal.WithLabelValues(stopID, status).Inc()
	m.PollDuration.Observe(elapsed.Seconds())
}

func (m *Metrics) workerStarted() {
	if m != nil {
		m.WorkersRunning.Inc()
	}
}

func (m *Metrics) workerStopped() {
	if m != nil {
		m.WorkersRunning.Dec()
	}
}

func (m *Metrics) rotation() {
	if m != nil {
		m.RotationsTotal.Inc()
	}
}

func (m *Metrics) broadcastShown() {
	if m != nil {
		m.BroadcastsTotal.Inc()
	}
}
