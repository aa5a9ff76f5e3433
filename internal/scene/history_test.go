package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"starflow/internal/flowpath"
)

func flowedScene(t *testing.T) (*Scene, Flow) {
	t.Helper()
	s := starterScene(t)
	f, err := s.AddFlow(Flow{ID: "f1", From: "sun", To: "moon", Style: flowpath.StyleWave, Strength: 2, Element: "fire"})
	require.NoError(t, err)
	return s, f
}

func TestHistory_EmptyStacks(t *testing.T) {
	s := starterScene(t)
	h := &History{}
	assert.False(t, h.Undo(s))
	assert.False(t, h.Redo(s))
}

func TestHistory_AddNode(t *testing.T) {
	s := New()
	h := &History{}

	n := s.AddNode("venus", "Venus", "air", flowpath.Pt(1, 2))
	h.Record(Action{Type: ActionAddNode, Node: n})

	require.True(t, h.Undo(s))
	_, ok := s.NodeByID("venus")
	assert.False(t, ok, "undone node should be gone")

	require.True(t, h.Redo(s))
	got, ok := s.NodeByID("venus")
	require.True(t, ok)
	assert.Equal(t, "Venus", got.Name)
	assert.Equal(t, flowpath.Pt(1, 2), got.Pos)
}

func TestHistory_AddFlow(t *testing.T) {
	s, f := flowedScene(t)
	h := &History{}
	h.Record(Action{Type: ActionAddFlow, Flow: f})

	require.True(t, h.Undo(s))
	assert.Empty(t, s.Flows)

	require.True(t, h.Redo(s))
	got, ok := s.FlowByID("f1")
	require.True(t, ok)
	assert.Equal(t, 2, got.Strength, "redo restores the snapshot verbatim")
}

func TestHistory_DeleteFlow(t *testing.T) {
	s, f := flowedScene(t)
	h := &History{}

	require.True(t, s.DeleteFlow(f.ID))
	h.Record(Action{Type: ActionDeleteFlow, Flow: f})

	require.True(t, h.Undo(s))
	got, ok := s.FlowByID("f1")
	require.True(t, ok)
	assert.Equal(t, f, got)

	require.True(t, h.Redo(s))
	_, ok = s.FlowByID("f1")
	assert.False(t, ok)
}

func TestHistory_SetStyle(t *testing.T) {
	s, f := flowedScene(t)
	h := &History{}

	updated, ok := s.CycleStyle(f.ID)
	require.True(t, ok)
	h.Record(Action{Type: ActionSetStyle, FlowID: f.ID, OldStyle: f.Style, NewStyle: updated.Style})

	require.True(t, h.Undo(s))
	got, _ := s.FlowByID(f.ID)
	assert.Equal(t, flowpath.StyleWave, got.Style)

	require.True(t, h.Redo(s))
	got, _ = s.FlowByID(f.ID)
	assert.Equal(t, flowpath.StyleLine, got.Style)
}

func TestHistory_SetStrength(t *testing.T) {
	s, f := flowedScene(t)
	h := &History{}

	updated, ok := s.AdjustStrength(f.ID, 1)
	require.True(t, ok)
	h.Record(Action{Type: ActionSetStrength, FlowID: f.ID, OldStrength: f.Strength, NewStrength: updated.Strength})

	require.True(t, h.Undo(s))
	got, _ := s.FlowByID(f.ID)
	assert.Equal(t, 2, got.Strength)

	require.True(t, h.Redo(s))
	got, _ = s.FlowByID(f.ID)
	assert.Equal(t, 3, got.Strength)
}

func TestHistory_RecordClearsRedo(t *testing.T) {
	s, f := flowedScene(t)
	h := &History{}

	h.Record(Action{Type: ActionAddFlow, Flow: f})
	require.True(t, h.Undo(s))

	n := s.AddNode("mars", "Mars", "fire", flowpath.Pt(5, 5))
	h.Record(Action{Type: ActionAddNode, Node: n})

	assert.False(t, h.Redo(s), "recording a fresh action discards the redo stack")
}
