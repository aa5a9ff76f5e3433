package tui

import (
	"math"

	"starflow/internal/flowpath"
)

// cellGrid is one frame of the terminal canvas: a rune per cell plus the
// index of the flow (or node) that colored it. -1 means unstyled.
type cellGrid struct {
	width  int
	height int
	runes  [][]rune
	colors [][]int
}

func newCellGrid(width, height int) *cellGrid {
	g := &cellGrid{width: width, height: height}
	g.runes = make([][]rune, height)
	g.colors = make([][]int, height)
	for y := 0; y < height; y++ {
		g.runes[y] = make([]rune, width)
		g.colors[y] = make([]int, width)
		for x := 0; x < width; x++ {
			g.runes[y][x] = ' '
			g.colors[y][x] = -1
		}
	}
	return g
}

func (g *cellGrid) set(x, y int, r rune, color int) {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return
	}
	g.runes[y][x] = r
	g.colors[y][x] = color
}

// plotPath rasterizes a generated path onto the grid, picking a rune from
// the local direction of travel.
func (g *cellGrid) plotPath(points []flowpath.PathPoint, color int, panX, panY int) {
	for i, p := range points {
		x := int(math.Round(p.X)) - panX
		y := int(math.Round(p.Y)) - panY

		r := '·'
		if i+1 < len(points) {
			r = directionRune(points[i+1].X-p.X, points[i+1].Y-p.Y)
		}
		g.set(x, y, r, color)
	}
}

// directionRune maps a step direction to a box-drawing rune. Screen Y grows
// downward, so a rising step (dy < 0) slants like '╱'.
func directionRune(dx, dy float64) rune {
	if math.Abs(dx) < 1e-9 && math.Abs(dy) < 1e-9 {
		return '·'
	}
	angle := math.Abs(dy / (math.Abs(dx) + 1e-9))
	switch {
	case angle < 0.5:
		return '─'
	case angle > 2:
		return '│'
	case dx*dy < 0:
		return '╱'
	default:
		return '╲'
	}
}

// hitTest returns the index of the flow whose path passes within radius
// cells of the given screen cell, preferring the closest.
func hitTest(paths [][]flowpath.PathPoint, cellX, cellY, panX, panY int, radius float64) int {
	target := flowpath.Pt(float64(cellX+panX), float64(cellY+panY))
	best := -1
	bestDist := radius
	for i, points := range paths {
		for _, p := range points {
			if d := flowpath.Pt(p.X, p.Y).Distance(target); d <= bestDist {
				best = i
				bestDist = d
			}
		}
	}
	return best
}
