package flowpath

import "math"

const (
	// minSegments keeps short flows smooth; longer flows get one segment
	// per cellsPerSegment cells so stroke density stays roughly constant.
	minSegments     = 20
	cellsPerSegment = 5.0

	arcHeightRatio = 0.15

	waveLengthMin      = 20.0
	waveLengthDivisor  = 4.0
	waveAmplitudeRatio = 8.0
)

// MaxWaveAmplitude caps the perpendicular wave displacement, in cells.
const MaxWaveAmplitude = 10.0

// PathPoint is one sample along a generated path. Amplitude and Phase are
// populated only for wave paths; they carry the instantaneous wave state so
// callers can drive secondary effects (glow, pulse) in sync with the motion.
type PathPoint struct {
	X, Y      float64
	Amplitude float64
	Phase     float64
}

// Segments returns the number of linear sub-intervals used for a path
// spanning the given distance.
func Segments(distance float64) int {
	segments := int(math.Floor(distance / cellsPerSegment))
	if segments < minSegments {
		segments = minSegments
	}
	return segments
}

// Generate traces a path of Segments(distance)+1 points from one endpoint to
// the other. The first and last points are the endpoints verbatim for every
// style, so callers can rely on exact anchoring. phase only affects
// StyleWave; identical inputs always produce identical output, which lets
// renderers memoize paths safely.
func Generate(from, to Point, style Style, phase float64) []PathPoint {
	distance := from.Distance(to)
	segments := Segments(distance)
	// Normal() guards the zero vector, so coincident endpoints yield a
	// degenerate zero-displacement path instead of NaN.
	normal := to.Sub(from).Normal()

	points := make([]PathPoint, 0, segments+1)
	for i := 0; i <= segments; i++ {
		if i == 0 {
			points = append(points, PathPoint{X: from.X, Y: from.Y})
			continue
		}
		if i == segments {
			points = append(points, PathPoint{X: to.X, Y: to.Y})
			continue
		}

		t := float64(i) / float64(segments)
		base := from.Lerp(to, t)

		switch style {
		case StyleArc:
			// 4t(1-t) peaks at the midpoint and is zero at both ends,
			// so the arc bows outward while touching its endpoints.
			height := distance * arcHeightRatio * 4 * t * (1 - t)
			p := base.Add(normal.Mul(height))
			points = append(points, PathPoint{X: p.X, Y: p.Y})
		case StyleWave:
			wavelength := math.Max(distance/waveLengthDivisor, waveLengthMin)
			amplitude := math.Min(distance/waveAmplitudeRatio, MaxWaveAmplitude)
			wavePhase := distance*t/wavelength + phase
			p := base.Add(normal.Mul(amplitude * math.Sin(wavePhase)))
			points = append(points, PathPoint{
				X:         p.X,
				Y:         p.Y,
				Amplitude: amplitude,
				Phase:     wavePhase,
			})
		default:
			points = append(points, PathPoint{X: base.X, Y: base.Y})
		}
	}

	return points
}
