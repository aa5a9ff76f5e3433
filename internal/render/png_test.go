package render

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"starflow/internal/flowpath"
	"starflow/internal/scene"
)

func demoScene(t *testing.T) *scene.Scene {
	t.Helper()
	s := scene.New()
	s.AddNode("sun", "Sun", "fire", flowpath.Pt(5, 5))
	s.AddNode("moon", "Moon", "water", flowpath.Pt(80, 30))
	s.AddNode("venus", "Venus", "air", flowpath.Pt(40, 50))

	for i, style := range []flowpath.Style{flowpath.StyleLine, flowpath.StyleArc, flowpath.StyleWave} {
		_, err := s.AddFlow(scene.Flow{
			From:     s.Nodes[i%3].ID,
			To:       s.Nodes[(i+1)%3].ID,
			Style:    style,
			Strength: i + 1,
			Element:  s.Nodes[i%3].Element,
		})
		require.NoError(t, err)
	}
	return s
}

func TestWritePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")

	require.NoError(t, WritePNG(demoScene(t), 0.4, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestWritePNG_EmptyScene(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	err := WritePNG(scene.New(), 0, path)
	assert.Error(t, err)
	assert.NoFileExists(t, path)
}

func TestBounds_CoversArcBow(t *testing.T) {
	s := scene.New()
	s.AddNode("a", "A", "fire", flowpath.Pt(0, 0))
	s.AddNode("b", "B", "water", flowpath.Pt(100, 0))
	_, err := s.AddFlow(scene.Flow{From: "a", To: "b", Style: flowpath.StyleArc})
	require.NoError(t, err)

	min, max, ok := bounds(s, 0)
	require.True(t, ok)

	// The arc peaks 15 cells off the baseline; the bounds must include it.
	assert.InDelta(t, 0, min.X, 1e-9)
	assert.InDelta(t, 100, max.X, 1e-9)
	assert.InDelta(t, 15, max.Y-min.Y, 1e-6)
}

func TestHexRGB(t *testing.T) {
	r, g, b := hexRGB("#ff0080")
	assert.InDelta(t, 1.0, r, 1e-9)
	assert.InDelta(t, 0.0, g, 1e-9)
	assert.InDelta(t, 128.0/255, b, 1e-9)

	fr, fg, fb := hexRGB("purple")
	assert.Equal(t, 0.75, fr)
	assert.Equal(t, 0.75, fg)
	assert.Equal(t, 0.85, fb)
}
