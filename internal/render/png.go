// Package render exports a scene to PNG through fogleman/gg.
package render

import (
	"fmt"
	"math"
	"strconv"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"starflow/internal/flowpath"
	"starflow/internal/scene"
)

// Cell-to-pixel scale for a 12pt monospace glyph.
const (
	charWidth  = 7.2
	charHeight = 14.4

	paddingCells = 4.0
	nodeRadius   = charHeight * 0.55
	fontSize     = 12.0
)

// WritePNG renders every flow and node of the scene at the given animation
// phase and saves the result to filename.
func WritePNG(sc *scene.Scene, phase float64, filename string) error {
	minPt, maxPt, ok := bounds(sc, phase)
	if !ok {
		return fmt.Errorf("nothing to export")
	}
	minPt = minPt.Sub(flowpath.Pt(paddingCells, paddingCells))
	maxPt = maxPt.Add(flowpath.Pt(paddingCells, paddingCells))

	imageWidth := int(math.Ceil((maxPt.X - minPt.X) * charWidth))
	imageHeight := int(math.Ceil((maxPt.Y - minPt.Y) * charHeight))
	if imageWidth < 1 {
		imageWidth = 1
	}
	if imageHeight < 1 {
		imageHeight = 1
	}

	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetRGB(0.04, 0.04, 0.10)
	dc.Clear()

	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return fmt.Errorf("failed to parse font: %v", err)
	}
	face := truetype.NewFace(ttfFont, &truetype.Options{
		Size:    fontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	dc.SetFontFace(face)

	// Flows first so nodes sit on top of the strokes.
	for _, f := range sc.Flows {
		drawFlow(dc, sc, f, phase, minPt)
	}
	for _, n := range sc.Nodes {
		drawNode(dc, n, minPt)
	}

	return dc.SavePNG(filename)
}

func drawFlow(dc *gg.Context, sc *scene.Scene, f scene.Flow, phase float64, minPt flowpath.Point) {
	from, to, ok := sc.Endpoints(f)
	if !ok {
		return
	}

	points := flowpath.Generate(from, to, f.Style, phase)
	flat := flowpath.Flatten(points)
	if len(flat) < 4 {
		return
	}

	r, g, b := hexRGB(f.Color)

	// Soft under-stroke for waves, scaled by the wave amplitude metadata.
	if f.Style == flowpath.StyleWave {
		glow := 1.0
		if len(points) > 2 {
			glow = 0.5 + points[1].Amplitude/flowpath.MaxWaveAmplitude
		}
		strokeFlat(dc, flat, minPt)
		dc.SetRGBA(r, g, b, 0.22)
		dc.SetLineWidth(float64(f.Strength)*2 + 2*glow)
		dc.Stroke()
	}

	strokeFlat(dc, flat, minPt)
	dc.SetRGBA(r, g, b, 0.95)
	dc.SetLineWidth(float64(f.Strength))
	dc.Stroke()

	last := points[len(points)-1]
	prev := points[len(points)-2]
	drawArrowhead(dc, toPixel(flowpath.Pt(prev.X, prev.Y), minPt), toPixel(flowpath.Pt(last.X, last.Y), minPt))
}

// strokeFlat walks the flat [x0,y0,x1,y1,...] array into the current path.
func strokeFlat(dc *gg.Context, flat []float64, minPt flowpath.Point) {
	for i := 0; i+1 < len(flat); i += 2 {
		p := toPixel(flowpath.Pt(flat[i], flat[i+1]), minPt)
		if i == 0 {
			dc.MoveTo(p.X, p.Y)
		} else {
			dc.LineTo(p.X, p.Y)
		}
	}
}

func drawArrowhead(dc *gg.Context, from, to flowpath.Point) {
	dir := to.Sub(from)
	length := dir.Length()
	if length < 0.1 {
		return
	}
	dx, dy := dir.X/length, dir.Y/length

	arrowSize := 6.0
	arrowAngle := 0.5 // radians

	baseX1 := to.X - arrowSize*dx + arrowSize*dy*arrowAngle
	baseY1 := to.Y - arrowSize*dy - arrowSize*dx*arrowAngle
	baseX2 := to.X - arrowSize*dx - arrowSize*dy*arrowAngle
	baseY2 := to.Y - arrowSize*dy + arrowSize*dx*arrowAngle

	dc.MoveTo(to.X, to.Y)
	dc.LineTo(baseX1, baseY1)
	dc.LineTo(baseX2, baseY2)
	dc.ClosePath()
	dc.Fill()
}

func drawNode(dc *gg.Context, n scene.Node, minPt flowpath.Point) {
	p := toPixel(n.Pos, minPt)
	r, g, b := hexRGB(scene.DefaultColor(n.Element))

	dc.SetRGBA(r, g, b, 0.35)
	dc.DrawCircle(p.X, p.Y, nodeRadius*1.6)
	dc.Fill()

	dc.SetRGB(r, g, b)
	dc.DrawCircle(p.X, p.Y, nodeRadius)
	dc.Fill()

	dc.SetRGB(0.92, 0.92, 0.96)
	dc.DrawString(n.Name, p.X+nodeRadius*2, p.Y+fontSize/3)
}

// bounds covers node positions and every generated flow path, so arcs and
// waves that bow outside the node box stay inside the image.
func bounds(sc *scene.Scene, phase float64) (min, max flowpath.Point, ok bool) {
	min, max, ok = sc.Bounds()

	for _, f := range sc.Flows {
		from, to, found := sc.Endpoints(f)
		if !found {
			continue
		}
		for _, p := range flowpath.Generate(from, to, f.Style, phase) {
			if !ok {
				min, max = flowpath.Pt(p.X, p.Y), flowpath.Pt(p.X, p.Y)
				ok = true
				continue
			}
			if p.X < min.X {
				min.X = p.X
			}
			if p.Y < min.Y {
				min.Y = p.Y
			}
			if p.X > max.X {
				max.X = p.X
			}
			if p.Y > max.Y {
				max.Y = p.Y
			}
		}
	}
	return min, max, ok
}

func toPixel(p, minPt flowpath.Point) flowpath.Point {
	return flowpath.Pt((p.X-minPt.X)*charWidth, (p.Y-minPt.Y)*charHeight)
}

// hexRGB parses #rrggbb, falling back to a neutral grey on junk input.
func hexRGB(s string) (r, g, b float64) {
	if len(s) != 7 || s[0] != '#' {
		return 0.75, 0.75, 0.85
	}
	rv, err1 := strconv.ParseUint(s[1:3], 16, 8)
	gv, err2 := strconv.ParseUint(s[3:5], 16, 8)
	bv, err3 := strconv.ParseUint(s[5:7], 16, 8)
	if err1 != nil || err2 != nil || err3 != nil {
		return 0.75, 0.75, 0.85
	}
	return float64(rv) / 255, float64(gv) / 255, float64(bv) / 255
}
