package highlevel

import (
	"testing"
	"time"

	"github.com/ariaplan/kdcbs/internal/conflict"
	"github.com/ariaplan/kdcbs/internal/dynamics"
	"github.com/ariaplan/kdcbs/internal/lowlevel"
	"github.com/ariaplan/kdcbs/internal/spacetime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildAgent(idx int, x0, y0, theta0, gx, gy float64, delta float64) *dynamics.Agent {
	prop := dynamics.NewEulerPropagator(delta)
	space := &dynamics.UniformStateSpace{MinX: -5, MaxX: 15, MinY: -5, MaxY: 15}
	goal := &dynamics.DiscGoalRegion{CX: gx, CY: gy, Radius: 0.5}
	sampler := dynamics.NewUnicycleControlSampler(prop, space)
	return &dynamics.Agent{
		Index:     idx,
		Name:      "agent",
		Footprint: dynamics.FootprintSpec{W: 1, L: 1},
		Start:     spacetime.State{X: x0, Y: y0, Theta: theta0, Aux: []float64{0}},
		Goal:      goal,
		Space:     space,
		Dynamics:  prop,
		Sampler:   sampler,
	}
}

func planRoot(t *testing.T, agents []*dynamics.Agent, opts lowlevel.Options) *Node {
	t.Helper()
	plan := make([]*spacetime.Trajectory, len(agents))
	for i, a := range agents {
		res := lowlevel.Plan(a, nil, opts, func() bool { return false })
		require.True(t, res.Solved)
		plan[i] = res.Trajectory
	}
	return &Node{Plan: plan}
}

func TestSearch_DisjointCorridorsNoExpansion(t *testing.T) {
	delta := 0.1
	opts := lowlevel.Options{Budget: 500 * time.Millisecond, GoalBias: 0.2, Seed: 1, MaxIterations: 20000}

	a0 := buildAgent(0, 0, 0, 0, 10, 0, delta)
	a1 := buildAgent(1, 0, 5, 0, 10, 5, delta)
	agents := []*dynamics.Agent{a0, a1}
	footprints := []dynamics.FootprintSpec{a0.Footprint, a1.Footprint}

	root := planRoot(t, agents, opts)

	props := []spacetime.Propagator{a0.Dynamics, a1.Dynamics}
	w := conflict.Detect(root.Plan, footprints, props)
	if w != nil {
		t.Skip("stochastic root plan happened to conflict; not a search-loop failure")
	}

	solution, ok := Search(agents, footprints, root, opts, func() bool { return false })
	require.True(t, ok)
	assert.Same(t, root, solution)
	assert.Nil(t, conflict.Detect(solution.Plan, footprints, props), "returned plan must be conflict-free per invariant 1")
}

// TestSearch_HeadOnConflictBranchesToConflictFreeSolution covers the S2
// scenario: two agents on a head-on collision course produce exactly one
// conflict window, Search spawns the two children of spec.md §4.5 step 2,
// and the search terminates with a conflict-free plan.
func TestSearch_HeadOnConflictBranchesToConflictFreeSolution(t *testing.T) {
	delta := 0.1
	opts := lowlevel.Options{Budget: 500 * time.Millisecond, GoalBias: 0.2, Seed: 7, MaxIterations: 20000}

	a0 := buildAgent(0, 0, 0, 0, 10, 0, delta)
	a1 := buildAgent(1, 10, 0, 3.14159265, 0, 0, delta)
	agents := []*dynamics.Agent{a0, a1}
	footprints := []dynamics.FootprintSpec{a0.Footprint, a1.Footprint}

	// Fabricate a head-on root plan: both agents cross the same corridor
	// point at the same tick, guaranteeing exactly one conflict window
	// regardless of how the RRT would have actually planned it.
	prop := dynamics.NewEulerPropagator(delta)
	buildStraight := func(x0, y0, theta float64, steps int) *spacetime.Trajectory {
		start := spacetime.State{X: x0, Y: y0, Theta: theta, Aux: []float64{1}}
		traj := spacetime.NewTrajectory(start)
		u := spacetime.Control{Values: []float64{0, 0}}
		for _, s := range prop.PropagateSteps(start, u, steps) {
			traj.Extend(u, delta, s)
		}
		return traj
	}
	trajA := buildStraight(0, 0, 0, 120)
	trajB := buildStraight(10, 0, 3.14159265, 120)
	root := &Node{Plan: []*spacetime.Trajectory{trajA, trajB}}

	props := []spacetime.Propagator{a0.Dynamics, a1.Dynamics}
	require.NotNil(t, conflict.Detect(root.Plan, footprints, props), "fabricated root plan must actually conflict")

	solution, ok := Search(agents, footprints, root, opts, func() bool { return false })
	require.True(t, ok)
	assert.NotSame(t, root, solution, "search must branch away from the conflicting root")
	assert.Nil(t, conflict.Detect(solution.Plan, footprints, props), "returned plan must be conflict-free per invariant 1")
}

func TestSearch_ReturnsFailureOnTermination(t *testing.T) {
	delta := 0.1
	opts := lowlevel.Options{Budget: 10 * time.Millisecond, GoalBias: 0.2, Seed: 1, MaxIterations: 5}

	a0 := buildAgent(0, 0, 0, 0, 10, 0, delta)
	a1 := buildAgent(1, 10, 0, 3.14159265, 0, 0, delta)
	agents := []*dynamics.Agent{a0, a1}
	footprints := []dynamics.FootprintSpec{a0.Footprint, a1.Footprint}

	root := planRoot(t, agents, opts)

	tripped := false
	terminate := func() bool {
		tripped = true
		return true
	}
	_, ok := Search(agents, footprints, root, opts, terminate)
	assert.False(t, ok)
	assert.True(t, tripped)
}
