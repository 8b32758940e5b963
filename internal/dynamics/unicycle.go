package dynamics

import (
	"math"
	"math/rand"

	"github.com/ariaplan/kdcbs/internal/spacetime"
)

// wrapAngle normalizes theta to (-pi, pi], matching the heading convention
// of spec.md §3.
func wrapAngle(theta float64) float64 {
	theta = math.Mod(theta+math.Pi, 2*math.Pi)
	if theta <= 0 {
		theta += 2 * math.Pi
	}
	return theta - math.Pi
}

// EulerPropagator integrates a unicycle-with-speed model: state (x, y,
// theta, v), control (acceleration, turn rate). Deterministic fixed-step
// Euler integration, per the Propagator contract of spec.md §6.
type EulerPropagator struct {
	Delta       float64 // propagation step size (s)
	MinDuration int     // minimum control duration, in ticks
	MaxSpeed    float64
	MinSpeed    float64
}

// NewEulerPropagator returns a propagator with sane defaults for a small
// ground vehicle.
func NewEulerPropagator(delta float64) *EulerPropagator {
	return &EulerPropagator{
		Delta:       delta,
		MinDuration: 1,
		MaxSpeed:    2.0,
		MinSpeed:    -0.5,
	}
}

// StepSize returns Delta, the shared propagation quantum.
func (p *EulerPropagator) StepSize() float64 { return p.Delta }

// MinControlDuration returns the minimum number of ticks a control may be
// held for.
func (p *EulerPropagator) MinControlDuration() int { return p.MinDuration }

// PropagateSteps integrates the unicycle model tick by tick and returns the
// state after each tick, in order.
func (p *EulerPropagator) PropagateSteps(s spacetime.State, u spacetime.Control, steps int) []spacetime.State {
	accel, omega := u.Values[0], u.Values[1]
	v := 0.0
	if len(s.Aux) > 0 {
		v = s.Aux[0]
	}

	out := make([]spacetime.State, steps)
	x, y, theta := s.X, s.Y, s.Theta
	for i := 0; i < steps; i++ {
		x += v * math.Cos(theta) * p.Delta
		y += v * math.Sin(theta) * p.Delta
		theta = wrapAngle(theta + omega*p.Delta)
		v += accel * p.Delta
		if v > p.MaxSpeed {
			v = p.MaxSpeed
		}
		if v < p.MinSpeed {
			v = p.MinSpeed
		}
		out[i] = spacetime.State{X: x, Y: y, Theta: theta, Aux: []float64{v}}
	}
	return out
}

// UniformStateSpace samples uniformly within a rectangular bound and
// measures distance as Euclidean position distance plus a weighted heading
// difference, following the SE(2)-style compound metric used by the
// original OMPL state space this system replaces.
type UniformStateSpace struct {
	MinX, MaxX, MinY, MaxY float64
	HeadingWeight          float64
}

// SampleUniform draws a uniformly random configuration within the bounds.
func (s *UniformStateSpace) SampleUniform(rng *rand.Rand) spacetime.State {
	return spacetime.State{
		X:     s.MinX + rng.Float64()*(s.MaxX-s.MinX),
		Y:     s.MinY + rng.Float64()*(s.MaxY-s.MinY),
		Theta: wrapAngle(rng.Float64()*2*math.Pi - math.Pi),
		Aux:   []float64{0},
	}
}

// Distance implements the agent's state-space metric used by the low-level
// planner's nearest-neighbor search.
func (s *UniformStateSpace) Distance(a, b spacetime.State) float64 {
	dx, dy := a.X-b.X, a.Y-b.Y
	dTheta := wrapAngle(a.Theta - b.Theta)
	w := s.HeadingWeight
	if w == 0 {
		w = 0.5
	}
	return math.Hypot(dx, dy) + w*math.Abs(dTheta)
}

// DiscGoalRegion is a circular goal region in (x, y), any heading.
type DiscGoalRegion struct {
	CX, CY, Radius float64
}

// CanSample always reports true: a disc goal region can always be sampled.
func (g *DiscGoalRegion) CanSample() bool { return true }

// SampleGoal draws a uniformly random point within the disc.
func (g *DiscGoalRegion) SampleGoal(rng *rand.Rand) spacetime.State {
	r := g.Radius * math.Sqrt(rng.Float64())
	theta := rng.Float64() * 2 * math.Pi
	return spacetime.State{
		X:     g.CX + r*math.Cos(theta),
		Y:     g.CY + r*math.Sin(theta),
		Theta: wrapAngle(rng.Float64()*2*math.Pi - math.Pi),
		Aux:   []float64{0},
	}
}

// IsSatisfied reports whether s lies within the goal disc and returns the
// signed distance to the boundary (negative when inside).
func (g *DiscGoalRegion) IsSatisfied(s spacetime.State) (bool, float64) {
	d := math.Hypot(s.X-g.CX, s.Y-g.CY)
	signed := d - g.Radius
	return signed <= 0, signed
}

// UnicycleControlSampler is a directed control sampler in the style of
// OMPL's SimpleDirectedControlSampler: it draws a fixed number of candidate
// controls and picks whichever, propagated for a randomly chosen duration,
// lands closest to the target under the state space's distance function.
type UnicycleControlSampler struct {
	Prop           *EulerPropagator
	Space          *UniformStateSpace
	MaxAccel       float64
	MaxOmega       float64
	MaxDurationTck int
	Candidates     int
}

// NewUnicycleControlSampler returns a sampler with sane defaults.
func NewUnicycleControlSampler(prop *EulerPropagator, space *UniformStateSpace) *UnicycleControlSampler {
	return &UnicycleControlSampler{
		Prop:           prop,
		Space:          space,
		MaxAccel:       1.0,
		MaxOmega:       1.5,
		MaxDurationTck: 10,
		Candidates:     8,
	}
}

// SampleTo returns the best of Candidates random controls, and a duration
// in ticks, that attempts to steer from `from` toward `toward`.
func (c *UnicycleControlSampler) SampleTo(rng *rand.Rand, from, toward spacetime.State) (spacetime.Control, int) {
	duration := c.Prop.MinDuration + rng.Intn(c.MaxDurationTck)
	if duration < 1 {
		duration = 1
	}

	best := spacetime.Control{Values: []float64{0, 0}}
	bestDist := math.Inf(1)

	for i := 0; i < c.Candidates; i++ {
		u := spacetime.Control{Values: []float64{
			(rng.Float64()*2 - 1) * c.MaxAccel,
			(rng.Float64()*2 - 1) * c.MaxOmega,
		}}
		states := c.Prop.PropagateSteps(from, u, duration)
		end := states[len(states)-1]
		d := c.Space.Distance(end, toward)
		if d < bestDist {
			bestDist = d
			best = u
		}
	}

	return best, duration
}
