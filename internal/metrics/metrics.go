package metrics

import (
	"context"
	"net/http"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/runner"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector groups the simulator metrics on its own registry.
type Collector struct {
	registry *prometheus.Registry

	transitions *prometheus.CounterVec
	rejections  *prometheus.CounterVec
	runs        *prometheus.CounterVec
	pathLength  *prometheus.HistogramVec
}

// New creates a Collector and registers its metrics plus the Go runtime collectors.
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "automata_transitions_total",
				Help: "Total number of accepted symbols",
			},
			[]string{"automaton"},
		),
		rejections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "automata_rejections_total",
				Help: "Total number of rejected symbols by reason",
			},
			[]string{"automaton", "kind"},
		),
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "automata_runs_total",
				Help: "Total number of completed runs by outcome",
			},
			[]string{"automaton", "outcome"},
		),
		pathLength: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "automata_search_path_length",
				Help:    "Number of transitions in paths returned by the search",
				Buckets: prometheus.LinearBuckets(0, 1, 10),
			},
			[]string{"automaton"},
		),
	}
	c.registry.MustRegister(
		c.transitions, c.rejections, c.runs, c.pathLength,
		collectors.NewGoCollector(),
	)
	return c
}

// Hooks returns lifecycle hooks that count the steps of machines running id.
func (c *Collector) Hooks(id string) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTransition: func(ctx context.Context, e *domain.TransitionEvent) {
			c.transitions.WithLabelValues(id).Inc()
		},
		OnReject: func(ctx context.Context, e *domain.RejectEvent) {
			c.rejections.WithLabelValues(id, string(e.Kind)).Inc()
		},
	}
}

// ObserveRun records the outcome of a finished run.
func (c *Collector) ObserveRun(id string, report *runner.Report) {
	c.runs.WithLabelValues(id, Outcome(report)).Inc()
	if report.Path != nil {
		c.pathLength.WithLabelValues(id).Observe(float64(report.Path.Len()))
	}
}

// ObservePath records a standalone search.
func (c *Collector) ObservePath(id string, path domain.Path) {
	c.pathLength.WithLabelValues(id).Observe(float64(path.Len()))
}

// Outcome labels a run: accepted, rejected (stopped on a symbol) or incomplete (word consumed, not final).
func Outcome(report *runner.Report) string {
	switch {
	case report.Accepted:
		return "accepted"
	case report.Rejection != nil:
		return "rejected"
	default:
		return "incomplete"
	}
}

// Handler exposes the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
