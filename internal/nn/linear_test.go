package nn

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func dist(a, b int) float64 { return math.Abs(float64(a - b)) }

func TestLinearScan_Nearest(t *testing.T) {
	idx := NewLinearScan[int]()
	for _, v := range []int{10, 3, 7, 20} {
		idx.Add(v)
	}
	assert.Equal(t, 7, idx.Nearest(8, dist))
	assert.Equal(t, 4, idx.Len())
}

func TestLinearScan_SingleItem(t *testing.T) {
	idx := NewLinearScan[int]()
	idx.Add(42)
	assert.Equal(t, 42, idx.Nearest(0, dist))
}
