package scene

import "starflow/internal/flowpath"

type ActionType int

const (
	ActionAddNode ActionType = iota
	ActionAddFlow
	ActionDeleteFlow
	ActionSetStyle
	ActionSetStrength
)

// Action records one editing step with enough state to replay it in either
// direction.
type Action struct {
	Type ActionType

	Node Node // snapshot for ActionAddNode
	Flow Flow // snapshot for ActionAddFlow / ActionDeleteFlow

	FlowID      string
	OldStyle    flowpath.Style
	NewStyle    flowpath.Style
	OldStrength int
	NewStrength int
}

// History is an undo/redo stack over scene edits. Recording a new action
// clears the redo stack.
type History struct {
	undoStack []Action
	redoStack []Action
}

func (h *History) Record(a Action) {
	h.undoStack = append(h.undoStack, a)
	h.redoStack = h.redoStack[:0]
}

// Undo reverts the most recent action against the scene. Returns false when
// there is nothing to undo.
func (h *History) Undo(s *Scene) bool {
	if len(h.undoStack) == 0 {
		return false
	}
	last := len(h.undoStack) - 1
	a := h.undoStack[last]
	h.undoStack = h.undoStack[:last]

	switch a.Type {
	case ActionAddNode:
		s.DeleteNode(a.Node.ID)
	case ActionAddFlow:
		s.DeleteFlow(a.Flow.ID)
	case ActionDeleteFlow:
		s.RestoreFlow(a.Flow)
	case ActionSetStyle:
		s.SetStyle(a.FlowID, a.OldStyle)
	case ActionSetStrength:
		s.SetStrength(a.FlowID, a.OldStrength)
	}

	h.redoStack = append(h.redoStack, a)
	return true
}

// Redo re-applies the most recently undone action.
func (h *History) Redo(s *Scene) bool {
	if len(h.redoStack) == 0 {
		return false
	}
	last := len(h.redoStack) - 1
	a := h.redoStack[last]
	h.redoStack = h.redoStack[:last]

	switch a.Type {
	case ActionAddNode:
		s.AddNode(a.Node.ID, a.Node.Name, a.Node.Element, a.Node.Pos)
	case ActionAddFlow:
		s.RestoreFlow(a.Flow)
	case ActionDeleteFlow:
		s.DeleteFlow(a.Flow.ID)
	case ActionSetStyle:
		s.SetStyle(a.FlowID, a.NewStyle)
	case ActionSetStrength:
		s.SetStrength(a.FlowID, a.NewStrength)
	}

	h.undoStack = append(h.undoStack, a)
	return true
}
