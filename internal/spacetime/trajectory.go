package spacetime

import "fmt"

// Trajectory is an ordered sequence of states s0..sn and controls u0..u(n-1)
// with durations d_i >= 0. Invariant: len(States) == len(Controls) + 1. The
// i-th control drives States[i] to States[i+1] over Durations[i]. After
// interpolation the invariant strengthens: every duration equals the global
// propagation step.
type Trajectory struct {
	States    []State
	Controls  []Control
	Durations []float64
}

// NewTrajectory builds a single-state trajectory (no controls yet).
func NewTrajectory(start State) *Trajectory {
	return &Trajectory{States: []State{start}}
}

// Extend appends a control/duration/endpoint triple, preserving the
// state-count = control-count + 1 invariant.
func (t *Trajectory) Extend(u Control, duration float64, next State) {
	t.Controls = append(t.Controls, u)
	t.Durations = append(t.Durations, duration)
	t.States = append(t.States, next)
}

// Validate checks the structural invariant of §3.
func (t *Trajectory) Validate() error {
	if len(t.States) != len(t.Controls)+1 {
		return fmt.Errorf("trajectory invariant violated: %d states, %d controls", len(t.States), len(t.Controls))
	}
	if len(t.Controls) != len(t.Durations) {
		return fmt.Errorf("trajectory invariant violated: %d controls, %d durations", len(t.Controls), len(t.Durations))
	}
	for i, d := range t.Durations {
		if d < 0 {
			return fmt.Errorf("trajectory segment %d has negative duration %f", i, d)
		}
	}
	return nil
}

// Duration returns the total elapsed time of the trajectory.
func (t *Trajectory) Duration() float64 {
	total := 0.0
	for _, d := range t.Durations {
		total += d
	}
	return total
}

// Start returns the trajectory's initial state.
func (t *Trajectory) Start() State {
	return t.States[0]
}

// End returns the trajectory's final state.
func (t *Trajectory) End() State {
	return t.States[len(t.States)-1]
}

// Clone returns a deep copy.
func (t *Trajectory) Clone() *Trajectory {
	out := &Trajectory{
		States:    make([]State, len(t.States)),
		Controls:  make([]Control, len(t.Controls)),
		Durations: make([]float64, len(t.Durations)),
	}
	for i, s := range t.States {
		out.States[i] = s.Clone()
	}
	for i, c := range t.Controls {
		out.Controls[i] = c.Clone()
	}
	copy(out.Durations, t.Durations)
	return out
}
