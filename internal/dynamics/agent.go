// Package dynamics supplies the "agent provider" collaborator named in
// spec.md §6: state space, propagator, directed control sampler, and goal
// region for a single agent, plus a concrete rigid-body unicycle
// implementation of all four.
package dynamics

import (
	"math/rand"

	"github.com/ariaplan/kdcbs/internal/spacetime"
)

// StateSpace supplies uniform sampling and a distance metric over
// spacetime.State, per spec.md §6.
type StateSpace interface {
	SampleUniform(rng *rand.Rand) spacetime.State
	Distance(a, b spacetime.State) float64
}

// GoalRegion supplies a uniform goal sampler plus a membership and
// signed-distance test, per spec.md §6.
type GoalRegion interface {
	CanSample() bool
	SampleGoal(rng *rand.Rand) spacetime.State
	IsSatisfied(s spacetime.State) (satisfied bool, distance float64)
}

// ControlSampler is the directed control sampler named in spec.md §4.2 step
// 2c: given the nearest tree node and a random target state, it returns a
// control and a duration in ticks that attempts to steer toward the target.
type ControlSampler interface {
	SampleTo(rng *rand.Rand, from, toward spacetime.State) (spacetime.Control, int)
}

// Propagator is the deterministic dynamics propagator of spec.md §6:
// propagate(state, control, steps) -> state, plus the shared step size and
// minimum control duration. It also satisfies spacetime.Propagator.
type Propagator interface {
	PropagateSteps(s spacetime.State, u spacetime.Control, steps int) []spacetime.State
	StepSize() float64
	MinControlDuration() int
}

// FootprintSpec is an agent's rigid rectangular footprint: width W (body
// x-axis... conventionally the short side) and length L, reference point at
// the geometric center.
type FootprintSpec struct {
	W, L float64
}

// Agent bundles the identity, footprint, and dynamics collaborators of one
// planning participant. Immutable for the duration of a solve.
type Agent struct {
	Index     int
	Name      string
	Footprint FootprintSpec
	Start     spacetime.State
	Goal      GoalRegion
	Space     StateSpace
	Dynamics  Propagator
	Sampler   ControlSampler
}
