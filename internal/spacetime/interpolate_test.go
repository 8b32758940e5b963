package spacetime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePropagator is a deterministic unicycle-ish stand-in used only to
// exercise the interpolator's segment-splitting logic.
type fakePropagator struct {
	step float64
}

func (p fakePropagator) StepSize() float64 { return p.step }

func (p fakePropagator) PropagateSteps(s State, u Control, steps int) []State {
	out := make([]State, steps)
	cur := s
	for i := 0; i < steps; i++ {
		cur = State{X: cur.X + u.Values[0]*p.step, Y: cur.Y, Theta: cur.Theta}
		out[i] = cur
	}
	return out
}

func TestInterpolate_CopiesUnitSegment(t *testing.T) {
	prop := fakePropagator{step: 0.1}
	traj := NewTrajectory(State{X: 0, Y: 0})
	traj.Extend(Control{Values: []float64{1}}, 0.1, State{X: 0.1, Y: 0})

	out := Interpolate(traj, prop)
	require.NoError(t, out.Validate())
	assert.Len(t, out.States, 2)
	assert.Len(t, out.Controls, 1)
	assert.InDelta(t, 0.1, out.Durations[0], 1e-9)
}

func TestInterpolate_SplitsMultiStepSegment(t *testing.T) {
	prop := fakePropagator{step: 0.1}
	traj := NewTrajectory(State{X: 0, Y: 0})
	traj.Extend(Control{Values: []float64{1}}, 0.5, State{X: 0.5, Y: 0})

	out := Interpolate(traj, prop)
	require.NoError(t, out.Validate())
	assert.Len(t, out.States, 6) // start + 5 sub-steps
	assert.Len(t, out.Controls, 5)
	for _, d := range out.Durations {
		assert.InDelta(t, 0.1, d, 1e-9)
	}
	assert.InDelta(t, 0.5, out.End().X, 1e-9)
}

func TestInterpolate_NeverShrinks(t *testing.T) {
	prop := fakePropagator{step: 0.1}
	traj := NewTrajectory(State{X: 0, Y: 0})
	traj.Extend(Control{Values: []float64{1}}, 0.3, State{X: 0.3, Y: 0})
	traj.Extend(Control{Values: []float64{1}}, 0.1, State{X: 0.4, Y: 0})

	out := Interpolate(traj, prop)
	assert.GreaterOrEqual(t, len(out.States), len(traj.States))
}

func TestInterpolate_Idempotent(t *testing.T) {
	// Invariant 4: interpolate(interpolate(T)) == interpolate(T).
	prop := fakePropagator{step: 0.1}
	traj := NewTrajectory(State{X: 0, Y: 0})
	traj.Extend(Control{Values: []float64{1}}, 0.4, State{X: 0.4, Y: 0})

	once := Interpolate(traj, prop)
	twice := Interpolate(once, prop)

	require.Equal(t, len(once.States), len(twice.States))
	for i := range once.States {
		assert.InDelta(t, once.States[i].X, twice.States[i].X, 1e-9)
		assert.InDelta(t, once.States[i].Y, twice.States[i].Y, 1e-9)
	}
	assert.Equal(t, once.Durations, twice.Durations)
}
