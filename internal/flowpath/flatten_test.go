package flowpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlatten(t *testing.T) {
	points := []PathPoint{
		{X: 1, Y: 2, Amplitude: 9, Phase: 3},
		{X: 4, Y: 5},
		{X: 6, Y: 7},
	}

	flat := Flatten(points)
	assert.Equal(t, []float64{1, 2, 4, 5, 6, 7}, flat)
}

func TestFlatten_Empty(t *testing.T) {
	assert.Empty(t, Flatten(nil))
}

func TestFlatten_MatchesGeneratedLength(t *testing.T) {
	points := Generate(Pt(0, 0), Pt(120, 80), StyleArc, 0)
	flat := Flatten(points)
	assert.Len(t, flat, len(points)*2)
	assert.Equal(t, points[0].X, flat[0])
	assert.Equal(t, points[len(points)-1].Y, flat[len(flat)-1])
}
