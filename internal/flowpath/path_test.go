package flowpath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_EndpointExactness(t *testing.T) {
	from := Pt(3.25, -7.5)
	to := Pt(212.75, 98.125)

	for _, style := range []Style{StyleLine, StyleArc, StyleWave} {
		t.Run(style.String(), func(t *testing.T) {
			points := Generate(from, to, style, 1.37)
			require.NotEmpty(t, points)

			first := points[0]
			last := points[len(points)-1]
			assert.Equal(t, from.X, first.X)
			assert.Equal(t, from.Y, first.Y)
			assert.Equal(t, to.X, last.X)
			assert.Equal(t, to.Y, last.Y)
		})
	}
}

func TestGenerate_SegmentCountScaling(t *testing.T) {
	t.Run("long flow scales with distance", func(t *testing.T) {
		points := Generate(Pt(0, 0), Pt(1000, 0), StyleLine, 0)
		assert.Len(t, points, 201)
	})

	t.Run("short flow hits the floor", func(t *testing.T) {
		points := Generate(Pt(0, 0), Pt(10, 0), StyleLine, 0)
		assert.Len(t, points, 21)
	})

	t.Run("Segments floor", func(t *testing.T) {
		assert.Equal(t, 20, Segments(0))
		assert.Equal(t, 20, Segments(99.9))
		assert.Equal(t, 20, Segments(100))
		assert.Equal(t, 21, Segments(105))
		assert.Equal(t, 200, Segments(1000))
	})
}

func TestGenerate_ArcMidpointDisplacement(t *testing.T) {
	from := Pt(0, 0)
	to := Pt(100, 0)

	points := Generate(from, to, StyleArc, 0)
	require.Len(t, points, 21)

	// t=0.5 sits at index segments/2; peak displacement is 15% of distance.
	mid := points[10]
	assert.InDelta(t, 50, mid.X, 1e-9)
	assert.InDelta(t, 15, math.Abs(mid.Y), 1e-9)

	assert.Zero(t, points[0].Y)
	assert.Zero(t, points[20].Y)
}

func TestGenerate_LineIsUniformLerp(t *testing.T) {
	from := Pt(10, 20)
	to := Pt(110, 120)

	points := Generate(from, to, StyleLine, 0)
	segments := len(points) - 1
	for i, p := range points {
		tt := float64(i) / float64(segments)
		assert.InDelta(t, from.X+(to.X-from.X)*tt, p.X, 1e-9)
		assert.InDelta(t, from.Y+(to.Y-from.Y)*tt, p.Y, 1e-9)
	}
}

func TestGenerate_WavePeriodicity(t *testing.T) {
	from := Pt(0, 0)
	to := Pt(300, 40)

	base := Generate(from, to, StyleWave, 0.7)
	shifted := Generate(from, to, StyleWave, 0.7+2*math.Pi)

	require.Len(t, shifted, len(base))
	for i := range base {
		assert.InDelta(t, base[i].X, shifted[i].X, 1e-9)
		assert.InDelta(t, base[i].Y, shifted[i].Y, 1e-9)
	}
}

func TestGenerate_WaveMetadata(t *testing.T) {
	from := Pt(0, 0)
	to := Pt(200, 0)

	points := Generate(from, to, StyleWave, 0.25)
	// amplitude = min(200/8, 10), wavelength = max(200/4, 20)
	interior := points[1 : len(points)-1]
	require.NotEmpty(t, interior)
	for _, p := range interior {
		assert.InDelta(t, 10, p.Amplitude, 1e-9)
	}

	// Instantaneous phase advances monotonically along the path.
	for i := 1; i < len(interior); i++ {
		assert.Greater(t, interior[i].Phase, interior[i-1].Phase)
	}
}

func TestGenerate_Determinism(t *testing.T) {
	from := Pt(-12.5, 31)
	to := Pt(87.5, -44)

	for _, style := range []Style{StyleLine, StyleArc, StyleWave} {
		t.Run(style.String(), func(t *testing.T) {
			a := Generate(from, to, style, 2.11)
			b := Generate(from, to, style, 2.11)
			assert.Equal(t, a, b)
		})
	}
}

func TestGenerate_ZeroDistance(t *testing.T) {
	p := Pt(42, 42)

	for _, style := range []Style{StyleLine, StyleArc, StyleWave} {
		t.Run(style.String(), func(t *testing.T) {
			points := Generate(p, p, style, 1.5)
			require.Len(t, points, 21)
			for _, pt := range points {
				require.False(t, math.IsNaN(pt.X))
				require.False(t, math.IsNaN(pt.Y))
				assert.Equal(t, p.X, pt.X)
				assert.Equal(t, p.Y, pt.Y)
			}
		})
	}
}

func TestGenerate_UnknownStyleFallsBackToLine(t *testing.T) {
	from := Pt(0, 0)
	to := Pt(50, 50)

	unknown := Generate(from, to, Style(99), 0)
	line := Generate(from, to, StyleLine, 0)
	assert.Equal(t, line, unknown)
}
