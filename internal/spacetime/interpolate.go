package spacetime

import "math"

// Propagator is the subset of the dynamics collaborator's contract the
// interpolator needs: deterministic multi-step propagation and the shared
// time quantum. Defined here (rather than imported from package dynamics)
// so spacetime has no dependency on the dynamics package; any type
// implementing this interface — in particular dynamics.EulerPropagator —
// satisfies it structurally.
type Propagator interface {
	// PropagateSteps returns the state after each of the given number of
	// ticks, in order; the last entry is the state after all ticks.
	PropagateSteps(s State, u Control, steps int) []State
	// StepSize returns the shared propagation quantum Delta.
	StepSize() float64
}

// Interpolate resamples traj so every control duration equals the
// propagator's step size, per spec.md §4.4. For each original segment
// (s_i, u_i, d_i):
//
//   - steps = round(d_i / Delta)
//   - if steps <= 1, the segment is copied unchanged
//   - otherwise the segment is re-propagated tick by tick and u_i is
//     replicated across `steps` sub-segments, each of duration Delta
//
// The result preserves the start state and never shrinks the trajectory.
func Interpolate(traj *Trajectory, prop Propagator) *Trajectory {
	step := prop.StepSize()
	out := &Trajectory{States: []State{traj.States[0]}}

	for i, u := range traj.Controls {
		d := traj.Durations[i]
		steps := int(math.Round(d / step))

		if steps <= 1 {
			out.Controls = append(out.Controls, u)
			out.Durations = append(out.Durations, d)
			out.States = append(out.States, traj.States[i+1])
			continue
		}

		istates := prop.PropagateSteps(traj.States[i], u, steps)
		for j := 0; j < steps-1; j++ {
			out.States = append(out.States, istates[j])
		}
		// The endpoint of the segment is preserved exactly rather than
		// re-derived, since the caller's original s_{i+1} is authoritative.
		out.States = append(out.States, traj.States[i+1])

		for j := 0; j < steps; j++ {
			out.Controls = append(out.Controls, u.Clone())
			out.Durations = append(out.Durations, step)
		}
	}

	return out
}
