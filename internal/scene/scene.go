// Package scene holds the flow-canvas document: named nodes on a 2D canvas
// and the flows connecting them.
package scene

import (
	"fmt"

	"github.com/google/uuid"

	"starflow/internal/flowpath"
)

const (
	MinStrength = 1
	MaxStrength = 5
)

// elementColors is the default palette, keyed by element name.
var elementColors = map[string]string{
	"fire":   "#ff6b4a",
	"water":  "#4aa3ff",
	"earth":  "#6bce5a",
	"air":    "#e8e4c9",
	"spirit": "#b38bff",
}

// DefaultColor returns the palette color for an element, or a neutral
// fallback for unknown elements.
func DefaultColor(element string) string {
	if c, ok := elementColors[element]; ok {
		return c
	}
	return "#c0c0d8"
}

// Node is a positioned, named anchor on the canvas.
type Node struct {
	ID      string
	Name    string
	Element string
	Pos     flowpath.Point
}

// Flow describes one connection to render between two nodes.
type Flow struct {
	ID       string
	From     string
	To       string
	Style    flowpath.Style
	Strength int
	Element  string
	Color    string
}

// Scene owns the nodes and flows of one document plus the saved pan offset.
type Scene struct {
	Nodes []Node
	Flows []Flow
	PanX  int
	PanY  int
}

func New() *Scene {
	return &Scene{}
}

// AddNode appends a node and returns it. An empty id gets a fresh uuid.
func (s *Scene) AddNode(id, name, element string, pos flowpath.Point) Node {
	if id == "" {
		id = uuid.NewString()
	}
	node := Node{ID: id, Name: name, Element: element, Pos: pos}
	s.Nodes = append(s.Nodes, node)
	return node
}

// NodeByID returns the node with the given id.
func (s *Scene) NodeByID(id string) (Node, bool) {
	for _, n := range s.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// NodeAt returns the node closest to pos within radius, preferring the
// nearest when several are in range.
func (s *Scene) NodeAt(pos flowpath.Point, radius float64) (Node, bool) {
	best := -1
	bestDist := radius
	for i, n := range s.Nodes {
		if d := n.Pos.Distance(pos); d <= bestDist {
			best = i
			bestDist = d
		}
	}
	if best < 0 {
		return Node{}, false
	}
	return s.Nodes[best], true
}

// AddFlow connects two existing nodes. Strength is clamped to [MinStrength,
// MaxStrength]; an empty color falls back to the element palette; an empty
// id gets a fresh uuid.
func (s *Scene) AddFlow(f Flow) (Flow, error) {
	if _, ok := s.NodeByID(f.From); !ok {
		return Flow{}, fmt.Errorf("unknown from node %q", f.From)
	}
	if _, ok := s.NodeByID(f.To); !ok {
		return Flow{}, fmt.Errorf("unknown to node %q", f.To)
	}
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	f.Strength = clampStrength(f.Strength)
	if f.Color == "" {
		f.Color = DefaultColor(f.Element)
	}
	s.Flows = append(s.Flows, f)
	return f, nil
}

// DeleteNode removes the node with the given id.
func (s *Scene) DeleteNode(id string) bool {
	for i, n := range s.Nodes {
		if n.ID == id {
			s.Nodes = append(s.Nodes[:i], s.Nodes[i+1:]...)
			return true
		}
	}
	return false
}

// RestoreFlow re-appends a flow snapshot verbatim, bypassing the defaulting
// AddFlow applies. Used by undo/redo.
func (s *Scene) RestoreFlow(f Flow) {
	s.Flows = append(s.Flows, f)
}

// DeleteFlow removes the flow with the given id.
func (s *Scene) DeleteFlow(id string) bool {
	for i, f := range s.Flows {
		if f.ID == id {
			s.Flows = append(s.Flows[:i], s.Flows[i+1:]...)
			return true
		}
	}
	return false
}

// FlowByID returns the flow with the given id.
func (s *Scene) FlowByID(id string) (Flow, bool) {
	for _, f := range s.Flows {
		if f.ID == id {
			return f, true
		}
	}
	return Flow{}, false
}

// CycleStyle advances the flow's style line → arc → wave → line and returns
// the updated flow.
func (s *Scene) CycleStyle(id string) (Flow, bool) {
	for i := range s.Flows {
		if s.Flows[i].ID == id {
			s.Flows[i].Style = s.Flows[i].Style.Next()
			return s.Flows[i], true
		}
	}
	return Flow{}, false
}

// SetStyle sets a flow's style directly.
func (s *Scene) SetStyle(id string, style flowpath.Style) bool {
	for i := range s.Flows {
		if s.Flows[i].ID == id {
			s.Flows[i].Style = style
			return true
		}
	}
	return false
}

// SetStrength sets a flow's strength directly, clamped to the valid range.
func (s *Scene) SetStrength(id string, strength int) bool {
	for i := range s.Flows {
		if s.Flows[i].ID == id {
			s.Flows[i].Strength = clampStrength(strength)
			return true
		}
	}
	return false
}

// AdjustStrength adds delta to the flow's strength, clamped to the valid
// range, and returns the updated flow.
func (s *Scene) AdjustStrength(id string, delta int) (Flow, bool) {
	for i := range s.Flows {
		if s.Flows[i].ID == id {
			s.Flows[i].Strength = clampStrength(s.Flows[i].Strength + delta)
			return s.Flows[i], true
		}
	}
	return Flow{}, false
}

// Endpoints resolves a flow's node references to canvas positions.
func (s *Scene) Endpoints(f Flow) (from, to flowpath.Point, ok bool) {
	fromNode, okFrom := s.NodeByID(f.From)
	toNode, okTo := s.NodeByID(f.To)
	if !okFrom || !okTo {
		return flowpath.Point{}, flowpath.Point{}, false
	}
	return fromNode.Pos, toNode.Pos, true
}

// Bounds returns the bounding box of all node positions.
func (s *Scene) Bounds() (min, max flowpath.Point, ok bool) {
	for i, n := range s.Nodes {
		if i == 0 {
			min, max = n.Pos, n.Pos
			continue
		}
		if n.Pos.X < min.X {
			min.X = n.Pos.X
		}
		if n.Pos.Y < min.Y {
			min.Y = n.Pos.Y
		}
		if n.Pos.X > max.X {
			max.X = n.Pos.X
		}
		if n.Pos.Y > max.Y {
			max.Y = n.Pos.Y
		}
	}
	return min, max, len(s.Nodes) > 0
}

// Summary describes a flow in one line, for the status bar and clipboard.
func (s *Scene) Summary(f Flow) string {
	fromName, toName := f.From, f.To
	if n, ok := s.NodeByID(f.From); ok {
		fromName = n.Name
	}
	if n, ok := s.NodeByID(f.To); ok {
		toName = n.Name
	}
	return fmt.Sprintf("%s flow (%s): %s → %s, strength %d", f.Style, f.Element, fromName, toName, f.Strength)
}

func clampStrength(v int) int {
	if v < MinStrength {
		return MinStrength
	}
	if v > MaxStrength {
		return MaxStrength
	}
	return v
}
