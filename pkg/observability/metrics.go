package observability

import (
	"context"

	"github.com/aretw0/vitrine/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Namespace prefixes every metric name.
const Namespace = "vitrine"

// Metrics holds the collectors fed by lifecycle hooks.
type Metrics struct {
	Runs          *prometheus.CounterVec
	RunDuration   *prometheus.HistogramVec
	Scheduled     prometheus.Counter
	Cancellations prometheus.Counter
	InFlight      prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "runs_total",
				Help:      "Total number of pipeline runs by outcome and trigger",
			},
			[]string{"kind", "trigger"},
		),
		RunDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "run_duration_seconds",
				Help:      "Duration of injection plus parse for one run",
				Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"kind"},
		),
		Scheduled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "debounce_scheduled_total",
			Help:      "Total number of debounce windows armed",
		}),
		Cancellations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "debounce_cancellations_total",
			Help:      "Total number of pending runs superseded before their window elapsed",
		}),
		InFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "runs_in_flight",
			Help:      "Pipeline runs currently executing",
		}),
	}

	if reg != nil {
		for _, c := range m.collectors() {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{m.Runs, m.RunDuration, m.Scheduled, m.Cancellations, m.InFlight}
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRunStart: func(context.Context, *domain.RunEvent) {
			m.InFlight.Inc()
		},
		OnRunComplete: func(_ context.Context, e *domain.RunEvent) {
			m.InFlight.Dec()
			m.Runs.WithLabelValues(string(e.Kind), string(e.Trigger)).Inc()
			m.RunDuration.WithLabelValues(string(e.Kind)).Observe(e.Duration.Seconds())
		},
		OnScheduled: func(context.Context, *domain.DebounceEvent) {
			m.Scheduled.Inc()
		},
		OnCancelled: func(context.Context, *domain.DebounceEvent) {
			m.Cancellations.Inc()
		},
	}
}
