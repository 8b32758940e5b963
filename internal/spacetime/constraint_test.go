package spacetime

import (
	"testing"

	"github.com/ariaplan/kdcbs/internal/geom"
	"github.com/stretchr/testify/assert"
)

func TestConstraint_ViolatesOutsideWindow(t *testing.T) {
	blocker := geom.NewFootprint(0, 0, 0, 1, 1)
	c := Constraint{Agent: 0, Polygons: []geom.Footprint{blocker}, T0: 5, T1: 10}

	fp := geom.NewFootprint(0, 0, 0, 1, 1)
	assert.False(t, c.Violates(fp, 1))
	assert.True(t, c.Violates(fp, 7))
}

func TestSatisfiesAll_IgnoresOtherAgents(t *testing.T) {
	blocker := geom.NewFootprint(0, 0, 0, 1, 1)
	cs := []Constraint{{Agent: 1, Polygons: []geom.Footprint{blocker}, T0: 0, T1: 10}}

	fp := geom.NewFootprint(0, 0, 0, 1, 1)
	assert.True(t, SatisfiesAll(cs, 0, fp, 5))
	assert.False(t, SatisfiesAll(cs, 1, fp, 5))
}

func TestCountForAgent(t *testing.T) {
	cs := []Constraint{{Agent: 0}, {Agent: 1}, {Agent: 0}}
	assert.Equal(t, 2, CountForAgent(cs, 0))
	assert.Equal(t, 1, CountForAgent(cs, 1))
	assert.Equal(t, 0, CountForAgent(cs, 2))
}
