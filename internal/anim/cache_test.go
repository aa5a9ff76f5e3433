package anim

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"starflow/internal/flowpath"
)

func wavePath(phase float64) func() []flowpath.PathPoint {
	return func() []flowpath.PathPoint {
		return flowpath.Generate(flowpath.Pt(0, 0), flowpath.Pt(200, 0), flowpath.StyleWave, phase)
	}
}

func TestPhaseBucket(t *testing.T) {
	assert.Equal(t, 0, PhaseBucket(0))
	assert.Equal(t, 0, PhaseBucket(0.04))
	assert.Equal(t, 1, PhaseBucket(0.06))
	assert.Equal(t, 2, PhaseBucket(0.20))
	assert.Equal(t, 2, PhaseBucket(0.21))
	assert.Equal(t, 3, PhaseBucket(0.26))
	assert.Equal(t, 62, PhaseBucket(6.21))
}

func TestPathCache_GetOrCompute(t *testing.T) {
	c := NewPathCache()
	calls := 0
	compute := func() []flowpath.PathPoint {
		calls++
		return wavePath(0.2)()
	}

	a := c.GetOrCompute("flow-1", 0.20, compute)
	b := c.GetOrCompute("flow-1", 0.21, compute) // same 0.1 rad bucket
	assert.Equal(t, 1, calls)
	assert.Equal(t, a, b)

	c.GetOrCompute("flow-1", 0.26, compute) // next bucket
	assert.Equal(t, 2, calls)

	c.GetOrCompute("flow-2", 0.20, compute) // same bucket, other flow
	assert.Equal(t, 3, calls)
	assert.Equal(t, 3, c.Len())
}

func TestPathCache_Invalidate(t *testing.T) {
	c := NewPathCache()
	c.GetOrCompute("a", 0.0, wavePath(0))
	c.GetOrCompute("a", 0.5, wavePath(0.5))
	c.GetOrCompute("b", 0.0, wavePath(0))

	c.Invalidate("a")
	assert.Equal(t, 1, c.Len())

	calls := 0
	c.GetOrCompute("b", 0.0, func() []flowpath.PathPoint {
		calls++
		return nil
	})
	assert.Zero(t, calls, "surviving entry should still hit")
}

func TestPathCache_Clear(t *testing.T) {
	c := NewPathCache()
	c.GetOrCompute("a", 0.0, wavePath(0))
	c.Clear()
	assert.Zero(t, c.Len())
}
