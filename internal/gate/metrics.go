package gate

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	resultOK    = "ok"
	resultError = "error"
	resultStale = "stale"
)

type Metrics struct {
	polls   *prometheus.CounterVec
	skipped prometheus.Counter
	open    *prometheus.GaugeVec
	active  prometheus.Gauge
}

// NewMetrics registers the gate collectors on reg. A nil reg gives unregistered
// collectors, which is what tests use.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		polls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "poule_board",
			Subsystem: "gate",
			Name:      "polls_total",
			Help:      "Phase status polls by result.",
		}, []string{"result"}),
		skipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "poule_board",
			Subsystem: "gate",
			Name:      "ticks_skipped_total",
			Help:      "Scheduled polls skipped because a poll was still outstanding.",
		}),
		open: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "poule_board",
			Subsystem: "gate",
			Name:      "open",
			Help:      "1 when the gate of a tournament phase is open.",
		}, []string{"tournament", "phase"}),
		active: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "poule_board",
			Subsystem: "gate",
			Name:      "controllers_active",
			Help:      "Running phase gate controllers.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.polls, m.skipped, m.open, m.active)
	}
	return m
}

func (m *Metrics) observePoll(result string) {
	if m == nil {
		return
	}
	m.polls.WithLabelValues(result).Inc()
}

func (m *Metrics) observeSkip() {
	if m == nil {
		return
	}
	m.skipped.Inc()
}

func (m *Metrics) observeState(s State) {
	if m == nil {
		return
	}
	id := strconv.Itoa(s.TournamentID)
	m.open.WithLabelValues(id, "knockout").Set(boolGauge(s.KnockoutOpen))
	m.open.WithLabelValues(id, "final").Set(boolGauge(s.FinalOpen))
}

func (m *Metrics) forget(tournamentID int) {
	if m == nil {
		return
	}
	id := strconv.Itoa(tournamentID)
	m.open.DeleteLabelValues(id, "knockout")
	m.open.DeleteLabelValues(id, "final")
}

func (m *Metrics) controllerStarted() {
	if m != nil {
		m.active.Inc()
	}
}

func (m *Metrics) controllerStopped() {
	if m != nil {
		m.active.Dec()
	}
}

func boolGauge(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
