// Package highlevel implements the best-first constraint-tree search of
// spec.md §4.5, grounded on the teacher's container/heap-based cbsHeap in
// internal/algo/cbs.go, generalized from grid vertex constraints to
// continuous footprint-window constraints and from single-branch abort to
// the two-child branching the REDESIGN FLAG in spec.md §9 calls for.
package highlevel

import (
	"container/heap"

	"github.com/ariaplan/kdcbs/internal/conflict"
	"github.com/ariaplan/kdcbs/internal/dynamics"
	"github.com/ariaplan/kdcbs/internal/geom"
	"github.com/ariaplan/kdcbs/internal/lowlevel"
	"github.com/ariaplan/kdcbs/internal/metrics"
	"github.com/ariaplan/kdcbs/internal/spacetime"
)

// Node is a ConflictNode of spec.md §3: a joint plan, the constraint list
// that produced it, and its cost (makespan sum).
type Node struct {
	Plan        []*spacetime.Trajectory
	Constraints []spacetime.Constraint
	Cost        float64
	seq         int // insertion sequence, breaks cost ties FIFO
}

func cost(plan []*spacetime.Trajectory) float64 {
	total := 0.0
	for _, t := range plan {
		total += t.Duration()
	}
	return total
}

// openSet is a container/heap min-heap over Node, ordered by cost with FIFO
// tie-break among equal costs, per spec.md §4.5.
type openSet []*Node

func (h openSet) Len() int { return len(h) }
func (h openSet) Less(i, j int) bool {
	if h[i].Cost != h[j].Cost {
		return h[i].Cost < h[j].Cost
	}
	return h[i].seq < h[j].seq
}
func (h openSet) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *openSet) Push(x any)   { *h = append(*h, x.(*Node)) }
func (h *openSet) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	*h = old[0 : n-1]
	return x
}

// Search runs the best-first constraint-tree search of spec.md §4.5. root
// must already hold an initial plan — one trajectory per agent, planned
// with an empty constraint list. terminate is polled once per pop as the
// external termination condition, and is also passed to each child's
// low-level re-plan, which polls it once per RRT iteration. On a trip at a
// pop, Search reports failure per spec §4.5's termination rule (the best
// node seen so far is never returned); a trip during a re-plan makes that
// re-plan approximate, so the child is dropped.
func Search(
	agents []*dynamics.Agent,
	footprints []dynamics.FootprintSpec,
	root *Node,
	lowOpts lowlevel.Options,
	terminate func() bool,
) (*Node, bool) {
	props := make([]spacetime.Propagator, len(agents))
	for i, a := range agents {
		props[i] = a.Dynamics
	}

	root.Cost = cost(root.Plan)
	root.seq = 0

	open := &openSet{root}
	heap.Init(open)
	nextSeq := 1

	for open.Len() > 0 {
		if terminate() {
			metrics.HighLevelExpansionsTotal.WithLabelValues("terminated").Inc()
			return nil, false
		}

		metrics.HighLevelQueueDepth.Observe(float64(open.Len()))
		node := heap.Pop(open).(*Node)

		w := conflict.Detect(node.Plan, footprints, props)
		if w == nil {
			metrics.HighLevelExpansionsTotal.WithLabelValues("solved").Inc()
			return node, true
		}
		metrics.HighLevelExpansionsTotal.WithLabelValues("branched").Inc()

		for _, branch := range []struct {
			agent    int
			opponent geom.Footprint
		}{
			{agent: w.AgentA, opponent: w.FootprintB},
			{agent: w.AgentB, opponent: w.FootprintA},
		} {
			child := branchChild(agents, node, branch.agent, branch.opponent, w.TStart, w.TEnd, lowOpts, terminate)
			if child == nil {
				continue
			}
			child.seq = nextSeq
			nextSeq++
			heap.Push(open, child)
		}
	}

	metrics.HighLevelExpansionsTotal.WithLabelValues("exhausted").Inc()
	return nil, false
}

// branchChild builds Child_affected of spec.md §4.5 step 2: the affected
// agent's constraint list gains a window forbidding the opponent's
// footprint, and only that agent is re-planned; unaffected agents'
// trajectories carry over unchanged. Returns nil if the low-level re-plan
// does not yield an exact solution, per step 3.
func branchChild(
	agents []*dynamics.Agent,
	parent *Node,
	affected int,
	opponentFootprint geom.Footprint,
	t0, t1 float64,
	lowOpts lowlevel.Options,
	terminate func() bool,
) *Node {
	newConstraint := spacetime.Constraint{
		Agent:    affected,
		Polygons: []geom.Footprint{opponentFootprint},
		T0:       t0,
		T1:       t1,
	}
	constraints := make([]spacetime.Constraint, len(parent.Constraints)+1)
	copy(constraints, parent.Constraints)
	constraints[len(parent.Constraints)] = newConstraint

	result := lowlevel.Plan(agents[affected], constraints, lowOpts, terminate)
	if !result.Solved || result.Approximate {
		return nil
	}

	plan := make([]*spacetime.Trajectory, len(parent.Plan))
	copy(plan, parent.Plan)
	plan[affected] = result.Trajectory

	child := &Node{
		Plan:        plan,
		Constraints: constraints,
		Cost:        cost(plan),
	}
	return child
}
