// Package metrics wires the search and low-level planner into Prometheus,
// following the promauto pattern in the trace service's HLD queries.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HighLevelExpansionsTotal counts ConflictNode pops, labeled by outcome.
	HighLevelExpansionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kdcbs_highlevel_expansions_total",
		Help: "Total ConflictNode pops by outcome",
	}, []string{"outcome"})

	// HighLevelQueueDepth is a histogram of the open-set size at each pop.
	HighLevelQueueDepth = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "kdcbs_highlevel_queue_depth",
		Help:    "Open-set size observed at each expansion",
		Buckets: []float64{1, 2, 5, 10, 20, 50, 100},
	})

	// LowLevelSamplesTotal counts RRT iterations across all invocations.
	LowLevelSamplesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kdcbs_lowlevel_samples_total",
		Help: "Total RRT sample iterations by outcome",
	}, []string{"outcome"})

	// LowLevelPlanDuration is the wall-clock time a single low-level
	// invocation spent before returning.
	LowLevelPlanDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "kdcbs_lowlevel_plan_duration_seconds",
		Help:    "Wall-clock duration of a single LowLevelPlanner invocation",
		Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 30},
	})

	// SolveDuration is the wall-clock time of a full orchestrator.Solve call.
	SolveDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "kdcbs_solve_duration_seconds",
		Help:    "Wall-clock duration of a full solve",
		Buckets: []float64{0.01, 0.1, 0.5, 1, 5, 30, 120},
	})
)
