// Package orchestrator assembles agents into a joint solve: it validates
// preconditions, builds the constraint-tree root, and drives
// internal/highlevel to a solution, per spec.md §4.6.
package orchestrator

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/ariaplan/kdcbs/internal/dynamics"
	"github.com/ariaplan/kdcbs/internal/highlevel"
	"github.com/ariaplan/kdcbs/internal/lowlevel"
	"github.com/ariaplan/kdcbs/internal/metrics"
	"github.com/ariaplan/kdcbs/internal/spacetime"
)

// ConfigError reports a fatal precondition failure, per spec.md §7's
// Configuration error kind: an empty agent list, an absent (nil) agent
// descriptor, inconsistent propagation step across agents, a missing goal
// region, or a goal that neither contains the start nor can be sampled. The
// start state itself is not checked.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string { return "kdcbs: configuration error: " + e.Reason }

// Config is the configuration surface of spec.md §6 applied to every
// low-level invocation the orchestrator makes.
type Config struct {
	PlanningBudget        time.Duration
	GoalBias              float64
	AddIntermediateStates bool
	Seed                  int64
	MaxIterations         int
}

func (c Config) lowLevelOptions() lowlevel.Options {
	return lowlevel.Options{
		Budget:                c.PlanningBudget,
		GoalBias:              c.GoalBias,
		AddIntermediateStates: c.AddIntermediateStates,
		Seed:                  c.Seed,
		MaxIterations:         c.MaxIterations,
	}
}

// Solve validates the agent set, builds the root ConflictNode, and delegates
// to the high-level search. It returns the plan, a solved flag, and a
// *ConfigError for a failed precondition; there is no approximate flag,
// because an approximate low-level result (root or child) is treated as a
// failure and never returned. On success, the plan is returned as one
// trajectory per agent, indexed by Agent.Index.
func Solve(agents []*dynamics.Agent, cfg Config, terminate TerminationCondition) (plan []*spacetime.Trajectory, solved bool, err error) {
	solveStart := time.Now()
	defer func() { metrics.SolveDuration.Observe(time.Since(solveStart).Seconds()) }()

	if err := checkPreconditions(agents); err != nil {
		return nil, false, err
	}

	logger := slog.With("component", "orchestrator", "agents", len(agents))
	opts := cfg.lowLevelOptions()

	root := &highlevel.Node{Plan: make([]*spacetime.Trajectory, len(agents))}
	for _, a := range agents {
		res := lowlevel.Plan(a, nil, opts, func() bool { return false })
		if !res.Solved || res.Approximate {
			logger.Warn("no exact start-to-goal plan within budget", "agent", a.Name)
			return nil, false, nil
		}
		root.Plan[a.Index] = res.Trajectory
	}

	if len(agents) == 1 {
		// A single agent can never conflict with itself: skip the
		// ConflictDetector and high-level search entirely, per spec.md §8 S6.
		logger.Info("solve succeeded", "cost", root.Plan[0].Duration())
		return root.Plan, true, nil
	}

	footprints := make([]dynamics.FootprintSpec, len(agents))
	for _, a := range agents {
		footprints[a.Index] = a.Footprint
	}

	solution, ok := highlevel.Search(agents, footprints, root, opts, terminate)
	if !ok {
		logger.Info("solve exhausted", "reason", "queue empty or terminated")
		return nil, false, nil
	}

	logger.Info("solve succeeded", "cost", solution.Cost)
	return solution.Plan, true, nil
}

// checkPreconditions enforces spec.md §4.6's fail-fast checks.
func checkPreconditions(agents []*dynamics.Agent) error {
	if len(agents) == 0 {
		return &ConfigError{Reason: "no agents supplied"}
	}

	for _, a := range agents {
		if a == nil {
			return &ConfigError{Reason: "absent agent descriptor"}
		}
	}

	delta := agents[0].Dynamics.StepSize()
	for _, a := range agents {
		if a.Dynamics.StepSize() != delta {
			return &ConfigError{Reason: fmt.Sprintf("agent %q propagation step %.6f differs from %.6f", a.Name, a.Dynamics.StepSize(), delta)}
		}
		if a.Goal == nil {
			return &ConfigError{Reason: fmt.Sprintf("agent %q has no goal region", a.Name)}
		}
		if ok, _ := a.Goal.IsSatisfied(a.Start); !ok {
			if !a.Goal.CanSample() {
				return &ConfigError{Reason: fmt.Sprintf("agent %q has an unsatisfiable goal", a.Name)}
			}
		}
	}
	return nil
}
