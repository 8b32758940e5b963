// Package geom implements the oriented-rectangle footprint geometry used to
// detect collisions between rigid-body agents.
package geom

import "math"

// Point is a 2D point in the workspace.
type Point struct {
	X, Y float64
}

// Footprint is the oriented rectangle occupied by an agent at a given
// configuration: center (x, y), body-frame half-extents (W/2, L/2), rotated
// by theta. Vertices are stored in winding order so edge-normal projection
// in Collide is well defined.
type Footprint struct {
	Vertices [4]Point
}

// NewFootprint builds the footprint of a rectangle of width w and length l
// centered at (x, y) and rotated by theta, per spec.md §4.1:
//
//	corner(±,±) = (x ± (w/2)cosθ ∓ (l/2)sinθ, y ± (w/2)sinθ ± (l/2)cosθ)
func NewFootprint(x, y, theta, w, l float64) Footprint {
	hw, hl := w/2, l/2
	cos, sin := math.Cos(theta), math.Sin(theta)

	corner := func(sw, sl float64) Point {
		return Point{
			X: x + sw*hw*cos - sl*hl*sin,
			Y: y + sw*hw*sin + sl*hl*cos,
		}
	}

	// Ordered so consecutive vertices share an edge (bottom-left, bottom-right,
	// top-right, top-left), matching the WKT ring built in
	// KD_CBS.cpp::validatePlan and constraintRRT.cpp::satisfiesConstraints.
	return Footprint{Vertices: [4]Point{
		corner(-1, -1),
		corner(1, -1),
		corner(1, 1),
		corner(-1, 1),
	}}
}

// Collide reports whether two footprints intersect as closed sets, i.e.
// touching counts as collision. It is symmetric and deterministic: a
// separating-axis test over the (up to four distinct) edge normals of both
// convex quadrilaterals.
func Collide(a, b Footprint) bool {
	if separatingAxisExists(a, b) {
		return false
	}
	if separatingAxisExists(b, a) {
		return false
	}
	return true
}

// separatingAxisExists checks the two edge normals contributed by poly p
// (a rectangle has only two distinct edge directions).
func separatingAxisExists(p, q Footprint) bool {
	for i := 0; i < 2; i++ {
		edge := Point{
			X: p.Vertices[i+1].X - p.Vertices[i].X,
			Y: p.Vertices[i+1].Y - p.Vertices[i].Y,
		}
		axis := Point{X: -edge.Y, Y: edge.X}

		minP, maxP := project(p, axis)
		minQ, maxQ := project(q, axis)

		// Closed-interval overlap test: touching (min == max) is NOT a
		// separating axis, so collisions on edge-touch are preserved.
		if maxP < minQ || maxQ < minP {
			return true
		}
	}
	return false
}

func project(f Footprint, axis Point) (min, max float64) {
	min = math.Inf(1)
	max = math.Inf(-1)
	for _, v := range f.Vertices {
		d := v.X*axis.X + v.Y*axis.Y
		if d < min {
			min = d
		}
		if d > max {
			max = d
		}
	}
	return min, max
}
