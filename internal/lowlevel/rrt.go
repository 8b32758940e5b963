// Package lowlevel implements the constraint-respecting, control-space RRT
// of spec.md §4.2: a single-agent planner that grows a tree of motions,
// rejecting any extension that would violate a time-windowed spatial
// constraint handed down by the high-level search.
package lowlevel

import (
	"math"
	"math/rand"
	"time"

	"github.com/ariaplan/kdcbs/internal/dynamics"
	"github.com/ariaplan/kdcbs/internal/geom"
	"github.com/ariaplan/kdcbs/internal/metrics"
	"github.com/ariaplan/kdcbs/internal/nn"
	"github.com/ariaplan/kdcbs/internal/spacetime"
)

// indexedState pairs an arena index with the state stored there, letting
// the nn.Index collaborator search the tree without knowing about motion or
// its arena representation.
type indexedState struct {
	idx   int
	state spacetime.State
}

// Options is the configuration surface of spec.md §6 that applies to a
// single low-level invocation.
type Options struct {
	Budget                 time.Duration // planning-time budget T (must be > 0)
	GoalBias               float64       // probability in [0, 1]
	AddIntermediateStates  bool
	Seed                   int64
	MaxIterations          int // secondary guard alongside the wall-clock budget
}

// Result is what a single low-level invocation returns.
type Result struct {
	Trajectory  *spacetime.Trajectory
	Solved      bool // a trajectory was returned, exact or approximate
	Approximate bool // Solved trajectory does not end in the goal region
}

// motion is one node of the RRT, stored in an arena indexed by integer id
// per the Design Note in spec.md §9 ("the low-level tree's parent links
// must be acyclic; use an arena with integer indices").
type motion struct {
	state    spacetime.State
	control  spacetime.Control // control applied from parent to reach this motion
	duration float64           // seconds from parent (0 for the root)
	time     float64           // absolute time tau(m) = Delta * cumulative steps
	parent   int               // index into the arena, -1 for the root
}

// Plan grows a control-space RRT for a single agent honoring constraints,
// per spec.md §4.2. stop is polled once per iteration as the external
// termination predicate (spec.md §5's sole cancellation point, layered on
// top of the per-call budget in opts).
func Plan(agent *dynamics.Agent, constraints []spacetime.Constraint, opts Options, stop func() bool) Result {
	planStart := time.Now()
	outcome := "exact"
	samples := 0
	defer func() {
		metrics.LowLevelPlanDuration.Observe(time.Since(planStart).Seconds())
		metrics.LowLevelSamplesTotal.WithLabelValues(outcome).Add(float64(samples))
	}()

	rng := rand.New(rand.NewSource(opts.Seed))

	arena := []motion{{state: agent.Start, parent: -1, time: 0}}
	fp0 := footprintOf(agent, agent.Start)
	if !spacetime.SatisfiesAll(constraints, agent.Index, fp0, 0) {
		outcome = "rejected_start"
		return Result{}
	}

	tree := nn.NewLinearScan[indexedState]()
	tree.Add(indexedState{idx: 0, state: agent.Start})
	distanceFn := func(a, b indexedState) float64 { return agent.Space.Distance(a.state, b.state) }

	bestIdx := 0
	startOK, bestDist := agent.Goal.IsSatisfied(agent.Start)
	if startOK {
		return Result{Trajectory: reconstruct(arena, 0), Solved: true}
	}

	deadline := time.Now().Add(opts.Budget)
	maxIter := opts.MaxIterations
	if maxIter <= 0 {
		maxIter = math.MaxInt32
	}

	for iter := 0; iter < maxIter && time.Now().Before(deadline) && !stop(); iter++ {
		samples++
		target := sampleTarget(agent, rng, opts.GoalBias)

		nearestIdx := tree.Nearest(indexedState{state: target}, distanceFn).idx
		nearestState := arena[nearestIdx].state

		u, ticks := agent.Sampler.SampleTo(rng, nearestState, target)
		if ticks < agent.Dynamics.MinControlDuration() {
			continue
		}

		substates := agent.Dynamics.PropagateSteps(nearestState, u, ticks)

		if opts.AddIntermediateStates {
			parent := nearestIdx
			t0 := arena[nearestIdx].time
			for j, s := range substates {
				t := t0 + float64(j+1)*agent.Dynamics.StepSize()
				fp := footprintOf(agent, s)
				if !spacetime.SatisfiesAll(constraints, agent.Index, fp, t) {
					break
				}
				arena = append(arena, motion{state: s, control: u, duration: agent.Dynamics.StepSize(), time: t, parent: parent})
				newIdx := len(arena) - 1
				tree.Add(indexedState{idx: newIdx, state: s})
				parent = newIdx

				if ok, dist := agent.Goal.IsSatisfied(s); ok {
					return Result{Trajectory: reconstruct(arena, newIdx), Solved: true}
				} else if dist < bestDist {
					bestDist = dist
					bestIdx = newIdx
				}
			}
			continue
		}

		end := substates[len(substates)-1]
		t := arena[nearestIdx].time + float64(ticks)*agent.Dynamics.StepSize()
		fp := footprintOf(agent, end)
		if !spacetime.SatisfiesAll(constraints, agent.Index, fp, t) {
			continue
		}

		duration := float64(ticks) * agent.Dynamics.StepSize()
		arena = append(arena, motion{state: end, control: u, duration: duration, time: t, parent: nearestIdx})
		newIdx := len(arena) - 1
		tree.Add(indexedState{idx: newIdx, state: end})

		if ok, dist := agent.Goal.IsSatisfied(end); ok {
			return Result{Trajectory: reconstruct(arena, newIdx), Solved: true}
		} else if dist < bestDist {
			bestDist = dist
			bestIdx = newIdx
		}
	}

	// Budget expired: return the best approximate solution, flagged
	// non-exact, per spec.md §4.2 step 3.
	outcome = "approximate"
	return Result{Trajectory: reconstruct(arena, bestIdx), Solved: true, Approximate: true}
}

func footprintOf(agent *dynamics.Agent, s spacetime.State) geom.Footprint {
	return geom.NewFootprint(s.X, s.Y, s.Theta, agent.Footprint.W, agent.Footprint.L)
}

func sampleTarget(agent *dynamics.Agent, rng *rand.Rand, goalBias float64) spacetime.State {
	if agent.Goal.CanSample() && rng.Float64() < goalBias {
		return agent.Goal.SampleGoal(rng)
	}
	return agent.Space.SampleUniform(rng)
}

// reconstruct walks parent links from idx back to the root and builds the
// resulting trajectory root-to-node.
func reconstruct(arena []motion, idx int) *spacetime.Trajectory {
	var chain []int
	for i := idx; i != -1; i = arena[i].parent {
		chain = append(chain, i)
	}
	// chain is leaf-to-root; reverse it.
	for l, r := 0, len(chain)-1; l < r; l, r = l+1, r-1 {
		chain[l], chain[r] = chain[r], chain[l]
	}

	traj := spacetime.NewTrajectory(arena[chain[0]].state)
	for _, i := range chain[1:] {
		m := arena[i]
		traj.Extend(m.control, m.duration, m.state)
	}
	return traj
}
