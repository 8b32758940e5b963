// Package conflict implements the ConflictDetector of spec.md §4.3: it
// interpolates a joint plan to a uniform step and reports the earliest
// pairwise footprint overlap, breaking ties the way the teacher's grid-based
// conflict search does (FindFirstConflict in the algo package), adapted from
// discrete vertex/edge equality to continuous footprint collision.
package conflict

import (
	"github.com/ariaplan/kdcbs/internal/dynamics"
	"github.com/ariaplan/kdcbs/internal/geom"
	"github.com/ariaplan/kdcbs/internal/spacetime"
)

// Window is the record (i, j, footprint_i, footprint_j, t_start, t_end) of
// spec.md §3.
type Window struct {
	AgentA, AgentB     int
	FootprintA, FootprintB geom.Footprint
	TStart, TEnd       float64
}

// track holds one agent's interpolated states, already resampled to Delta.
type track struct {
	agent      int
	footprint  dynamics.FootprintSpec
	states     []spacetime.State
}

// Detect scans a joint plan for the earliest conflict. trajectories,
// footprints, and props must all be indexed by agent. Each agent is
// interpolated under its own propagator, since agents may be dynamically
// heterogeneous; the orchestrator already validated that every propagator
// shares the same step size. Returns nil if the plan is conflict-free.
func Detect(trajectories []*spacetime.Trajectory, footprints []dynamics.FootprintSpec, props []spacetime.Propagator) *Window {
	tracks := make([]track, len(trajectories))
	maxLen := 0
	delta := props[0].StepSize()
	for i, traj := range trajectories {
		interp := spacetime.Interpolate(traj, props[i])
		tracks[i] = track{agent: i, footprint: footprints[i], states: interp.States}
		if len(interp.States) > maxLen {
			maxLen = len(interp.States)
		}
	}

	for k := 0; k < maxLen; k++ {
		for i := 0; i < len(tracks); i++ {
			if k >= len(tracks[i].states) {
				continue
			}
			for j := i + 1; j < len(tracks); j++ {
				if k >= len(tracks[j].states) {
					continue
				}
				fi := footprintAt(tracks[i], k)
				fj := footprintAt(tracks[j], k)
				if !geom.Collide(fi, fj) {
					continue
				}
				return closeWindow(tracks, i, j, k, fi, fj, delta)
			}
		}
	}
	return nil
}

// footprintAt builds the rigid-body footprint of t's agent at tick k.
func footprintAt(t track, k int) geom.Footprint {
	s := t.states[k]
	return geom.NewFootprint(s.X, s.Y, s.Theta, t.footprint.W, t.footprint.L)
}

// closeWindow advances k' forward while agents i and j remain in collision,
// then returns the maximal contiguous conflict window per spec.md §4.3 step
// 2b. The footprints recorded are those at the opening tick k, matching the
// constraint payload the high-level search attaches to a child node.
func closeWindow(tracks []track, i, j, k int, fi, fj geom.Footprint, delta float64) *Window {
	kEnd := k
	for k2 := k + 1; k2 < len(tracks[i].states) && k2 < len(tracks[j].states); k2++ {
		if !geom.Collide(footprintAt(tracks[i], k2), footprintAt(tracks[j], k2)) {
			break
		}
		kEnd = k2
	}
	return &Window{
		AgentA:     tracks[i].agent,
		AgentB:     tracks[j].agent,
		FootprintA: fi,
		FootprintB: fj,
		TStart:     float64(k) * delta,
		TEnd:       float64(kEnd) * delta,
	}
}
