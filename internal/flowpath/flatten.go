package flowpath

// Flatten converts a path into the flat [x0,y0,x1,y1,...] form a 2D drawing
// surface consumes. Metadata fields are dropped.
func Flatten(points []PathPoint) []float64 {
	flat := make([]float64, 0, len(points)*2)
	for _, p := range points {
		flat = append(flat, p.X, p.Y)
	}
	return flat
}
