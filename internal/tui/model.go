// Package tui is the interactive flow canvas: a bubbletea program that
// renders the scene to the terminal and edits it in place.
package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"starflow/internal/anim"
	"starflow/internal/config"
	"starflow/internal/flowpath"
	"starflow/internal/render"
	"starflow/internal/scene"
)

type Mode int

const (
	ModeNormal Mode = iota
	ModeNameInput
	ModeConfirmDelete
)

// FrameMsg carries one animation tick from the driver into the program.
type FrameMsg struct {
	Offset float64
}

// nodePickRadius is how close, in cells, the cursor must be to grab a node.
const nodePickRadius = 3.0

var elementCycle = []string{"fire", "water", "earth", "air", "spirit"}

type Model struct {
	width   int
	height  int
	cursorX int
	cursorY int
	panX    int
	panY    int

	sc       *scene.Scene
	cfg      *config.Config
	logger   *zap.Logger
	filename string

	mode         Mode
	selectedFlow int
	flowFromNode string
	nameInput    string

	// Driver is attached by the caller before the program runs; the model
	// only toggles it and never outlives it.
	Driver *anim.Driver

	// OnActivate fires when the user activates a rendered flow with Enter
	// or a mouse click. Nil means "show the flow summary in the status bar".
	OnActivate func(scene.Flow)

	cache     *anim.PathCache
	history   *scene.History
	offset    float64
	animating bool

	help          bool
	statusMessage string
	errorMessage  string
}

func New(sc *scene.Scene, cfg *config.Config, logger *zap.Logger, filename string) Model {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if filename == "" {
		filename = "scene.txt"
	}
	return Model{
		sc:           sc,
		cfg:          cfg,
		logger:       logger,
		filename:     filename,
		selectedFlow: -1,
		panX:         sc.PanX,
		panY:         sc.PanY,
		cache:        anim.NewPathCache(),
		history:      &scene.History{},
		animating:    cfg.Animate,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case FrameMsg:
		m.offset = msg.Offset
		return m, nil

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m = m.clickAt(msg.X, msg.Y)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case ModeNameInput:
			return m.updateNameInput(msg)
		case ModeConfirmDelete:
			return m.updateConfirmDelete(msg)
		default:
			return m.updateNormal(msg)
		}
	}
	return m, nil
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.errorMessage = ""

	switch msg.String() {
	case "q", "ctrl+c":
		if m.Driver != nil {
			m.Driver.Stop()
		}
		return m, tea.Quit

	case "up", "k":
		m.cursorY = clamp(m.cursorY-1, 0, m.canvasHeight()-1)
	case "down", "j":
		m.cursorY = clamp(m.cursorY+1, 0, m.canvasHeight()-1)
	case "left", "h":
		m.cursorX = clamp(m.cursorX-1, 0, m.width-1)
	case "right", "l":
		m.cursorX = clamp(m.cursorX+1, 0, m.width-1)

	case "K":
		m.panY -= 5
	case "J":
		m.panY += 5
	case "H":
		m.panX -= 5
	case "L":
		m.panX += 5

	case "n":
		m.mode = ModeNameInput
		m.nameInput = ""

	case "f":
		m = m.handleFlowKey()

	case "tab":
		if len(m.sc.Flows) > 0 {
			m.selectedFlow = (m.selectedFlow + 1) % len(m.sc.Flows)
			m.statusMessage = m.sc.Summary(m.sc.Flows[m.selectedFlow])
		}

	case "s":
		if f, ok := m.selected(); ok {
			updated, _ := m.sc.CycleStyle(f.ID)
			m.history.Record(scene.Action{
				Type:     scene.ActionSetStyle,
				FlowID:   f.ID,
				OldStyle: f.Style,
				NewStyle: updated.Style,
			})
			m.cache.Invalidate(f.ID)
			m.statusMessage = m.sc.Summary(updated)
		}

	case "+", "=":
		m = m.adjustStrength(1)
	case "-":
		m = m.adjustStrength(-1)

	case "u":
		if m.history.Undo(m.sc) {
			m = m.afterHistoryStep("undone")
		} else {
			m.statusMessage = "nothing to undo"
		}
	case "ctrl+r":
		if m.history.Redo(m.sc) {
			m = m.afterHistoryStep("redone")
		} else {
			m.statusMessage = "nothing to redo"
		}

	case "d":
		if _, ok := m.selected(); ok {
			m.mode = ModeConfirmDelete
		}

	case "a":
		m = m.toggleAnimation()

	case "w":
		m = m.saveScene()

	case "e":
		m = m.exportPNG()

	case "y":
		m = m.yankFlow()

	case "enter":
		if f, ok := m.selected(); ok {
			m = m.activate(f)
		}

	case "?":
		m.help = !m.help

	case "esc":
		m.flowFromNode = ""
		m.help = false
		m.statusMessage = ""
	}

	return m, nil
}

func (m Model) updateNameInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.mode = ModeNormal
		m.nameInput = ""
	case tea.KeyEnter:
		name := strings.TrimSpace(m.nameInput)
		if name != "" {
			element := elementCycle[len(m.sc.Nodes)%len(elementCycle)]
			node := m.sc.AddNode("", name, element, m.worldPos())
			m.history.Record(scene.Action{Type: scene.ActionAddNode, Node: node})
			m.statusMessage = fmt.Sprintf("added node %s (%s)", node.Name, node.Element)
			m.logger.Debug("node added", zap.String("id", node.ID), zap.String("name", node.Name))
		}
		m.mode = ModeNormal
		m.nameInput = ""
	case tea.KeyBackspace:
		if len(m.nameInput) > 0 {
			runes := []rune(m.nameInput)
			m.nameInput = string(runes[:len(runes)-1])
		}
	case tea.KeySpace:
		m.nameInput += " "
	case tea.KeyRunes:
		m.nameInput += string(msg.Runes)
	}
	return m, nil
}

func (m Model) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		if f, ok := m.selected(); ok {
			m.sc.DeleteFlow(f.ID)
			m.history.Record(scene.Action{Type: scene.ActionDeleteFlow, Flow: f})
			m.cache.Invalidate(f.ID)
			m.statusMessage = "flow deleted"
		}
		m.selectedFlow = -1
		m.mode = ModeNormal
	case "n", "esc":
		m.mode = ModeNormal
	}
	return m, nil
}

// handleFlowKey runs the two-step flow creation: first press picks the
// source node under the cursor, second press connects it to the target.
func (m Model) handleFlowKey() Model {
	node, ok := m.sc.NodeAt(m.worldPos(), nodePickRadius)
	if !ok {
		m.errorMessage = "no node under cursor"
		return m
	}

	if m.flowFromNode == "" {
		m.flowFromNode = node.ID
		m.statusMessage = fmt.Sprintf("flow from %s — move to target and press f", node.Name)
		return m
	}

	if node.ID == m.flowFromNode {
		m.flowFromNode = ""
		m.statusMessage = "flow cancelled"
		return m
	}

	source, _ := m.sc.NodeByID(m.flowFromNode)
	f, err := m.sc.AddFlow(scene.Flow{
		From:     m.flowFromNode,
		To:       node.ID,
		Style:    flowpath.StyleWave,
		Strength: 2,
		Element:  source.Element,
	})
	m.flowFromNode = ""
	if err != nil {
		m.errorMessage = err.Error()
		return m
	}

	m.selectedFlow = len(m.sc.Flows) - 1
	m.history.Record(scene.Action{Type: scene.ActionAddFlow, Flow: f})
	m.statusMessage = m.sc.Summary(f)
	m.logger.Debug("flow added", zap.String("id", f.ID), zap.String("from", f.From), zap.String("to", f.To))
	return m
}

func (m Model) adjustStrength(delta int) Model {
	f, ok := m.selected()
	if !ok {
		return m
	}
	updated, _ := m.sc.AdjustStrength(f.ID, delta)
	if updated.Strength != f.Strength {
		m.history.Record(scene.Action{
			Type:        scene.ActionSetStrength,
			FlowID:      f.ID,
			OldStrength: f.Strength,
			NewStrength: updated.Strength,
		})
	}
	m.statusMessage = m.sc.Summary(updated)
	return m
}

// afterHistoryStep resyncs derived state once an undo or redo mutated the
// scene underneath it.
func (m Model) afterHistoryStep(what string) Model {
	m.cache.Clear()
	if m.selectedFlow >= len(m.sc.Flows) {
		m.selectedFlow = len(m.sc.Flows) - 1
	}
	m.statusMessage = what
	return m
}

func (m Model) toggleAnimation() Model {
	if m.Driver == nil {
		m.errorMessage = "no animation driver attached"
		return m
	}
	if m.animating {
		m.Driver.Stop()
		m.animating = false
		m.statusMessage = "animation paused"
	} else {
		m.Driver.Start()
		m.animating = true
		m.statusMessage = "animation running"
	}
	return m
}

func (m Model) saveScene() Model {
	m.sc.PanX, m.sc.PanY = m.panX, m.panY
	if err := m.sc.Save(m.filename); err != nil {
		m.errorMessage = fmt.Sprintf("save failed: %v", err)
		m.logger.Warn("scene save failed", zap.String("file", m.filename), zap.Error(err))
		return m
	}
	m.statusMessage = fmt.Sprintf("saved %s", m.filename)
	return m
}

func (m Model) exportPNG() Model {
	base := strings.TrimSuffix(filepath.Base(m.filename), filepath.Ext(m.filename))
	path := m.cfg.ExportPath(base + ".png")
	if err := render.WritePNG(m.sc, m.offset, path); err != nil {
		m.errorMessage = fmt.Sprintf("export failed: %v", err)
		m.logger.Warn("png export failed", zap.String("file", path), zap.Error(err))
		return m
	}
	m.statusMessage = fmt.Sprintf("exported %s", path)
	m.logger.Info("png exported", zap.String("file", path))
	return m
}

func (m Model) yankFlow() Model {
	f, ok := m.selected()
	if !ok {
		m.errorMessage = "no flow selected"
		return m
	}
	if err := clipboard.WriteAll(m.sc.Summary(f)); err != nil {
		m.errorMessage = fmt.Sprintf("clipboard unavailable: %v", err)
		return m
	}
	m.statusMessage = "flow summary copied"
	return m
}

func (m Model) activate(f scene.Flow) Model {
	if m.OnActivate != nil {
		m.OnActivate(f)
		return m
	}
	m.statusMessage = m.sc.Summary(f)
	return m
}

// clickAt selects and activates the flow rendered nearest to the clicked
// cell, if any is within reach.
func (m Model) clickAt(x, y int) Model {
	if y >= m.canvasHeight() {
		return m
	}
	m.cursorX, m.cursorY = x, y

	idx := hitTest(m.flowPaths(), x, y, m.panX, m.panY, 2.0)
	if idx < 0 {
		return m
	}
	m.selectedFlow = idx
	return m.activate(m.sc.Flows[idx])
}

// flowPaths generates (or fetches from the phase cache) the current path of
// every flow, in scene order. Only wave flows depend on the phase.
func (m Model) flowPaths() [][]flowpath.PathPoint {
	paths := make([][]flowpath.PathPoint, len(m.sc.Flows))
	for i, f := range m.sc.Flows {
		from, to, ok := m.sc.Endpoints(f)
		if !ok {
			continue
		}
		phase := 0.0
		if f.Style == flowpath.StyleWave {
			phase = m.offset
		}
		f := f
		paths[i] = m.cache.GetOrCompute(f.ID, phase, func() []flowpath.PathPoint {
			return flowpath.Generate(from, to, f.Style, phase)
		})
	}
	return paths
}

func (m Model) selected() (scene.Flow, bool) {
	if m.selectedFlow < 0 || m.selectedFlow >= len(m.sc.Flows) {
		return scene.Flow{}, false
	}
	return m.sc.Flows[m.selectedFlow], true
}

func (m Model) worldPos() flowpath.Point {
	return flowpath.Pt(float64(m.cursorX+m.panX), float64(m.cursorY+m.panY))
}

func (m Model) canvasHeight() int {
	h := m.height - 1
	if h < 1 {
		h = 1
	}
	return h
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
