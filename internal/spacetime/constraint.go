package spacetime

import "github.com/ariaplan/kdcbs/internal/geom"

// Constraint is a time-windowed forbidden polygon set for one agent, per
// spec.md §3: the footprint of agent Agent must be disjoint from every
// polygon in Polygons at every sample time t in [T0, T1].
type Constraint struct {
	Agent    int
	Polygons []geom.Footprint
	T0, T1   float64
}

// Active reports whether the constraint's time window contains t.
func (c Constraint) Active(t float64) bool {
	return t >= c.T0 && t <= c.T1
}

// Violates reports whether footprint fp at time t violates this constraint:
// the window contains t and fp collides with any forbidden polygon.
func (c Constraint) Violates(fp geom.Footprint, t float64) bool {
	if !c.Active(t) {
		return false
	}
	for _, p := range c.Polygons {
		if geom.Collide(fp, p) {
			return true
		}
	}
	return false
}

// SatisfiesAll reports whether fp at time t satisfies every constraint in cs
// that applies to agent. A single overlap rejects the candidate.
func SatisfiesAll(cs []Constraint, agent int, fp geom.Footprint, t float64) bool {
	for _, c := range cs {
		if c.Agent != agent {
			continue
		}
		if c.Violates(fp, t) {
			return false
		}
	}
	return true
}

// CountForAgent returns the number of constraints in cs bound to agent, a
// helper for checking invariant 3 of spec.md §8.
func CountForAgent(cs []Constraint, agent int) int {
	n := 0
	for _, c := range cs {
		if c.Agent == agent {
			n++
		}
	}
	return n
}
