package tui

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/npratt/bubble/internal/config"
	"github.com/npratt/bubble/internal/graph"
	"github.com/npratt/bubble/internal/sim"
	"github.com/npratt/bubble/internal/store"
)

// screen identifies which top-level view is active.
type screen int

const (
	// screenEntry is the first-run name prompt, shown when no bubble exists.
	screenEntry screen = iota
	// screenCanvas is the main graph canvas.
	screenCanvas
)

// promptKind identifies what the text input overlay is collecting.
type promptKind int

const (
	promptNone promptKind = iota
	// promptConnection collects the name for a new connection anchored at
	// the popup's node.
	promptConnection
	// promptGroupName collects the name for a new group seeded with the
	// popup's node.
	promptGroupName
)

// dragState tracks an in-progress mouse press on a node.
type dragState struct {
	nodeID string
	moved  bool
}

// popupState is the node action menu opened by clicking a node.
type popupState struct {
	nodeID string
	// groups the node can be toggled in, keyed 1-9 in open order.
	groupIDs []string
}

// frameMsg drives one simulation step. Messages from a superseded
// engine carry a stale generation and are dropped without rescheduling.
type frameMsg struct {
	gen int
	t   time.Time
}

// model is the bubbletea model for the canvas.
type model struct {
	cfg    *config.Config
	logger *slog.Logger
	store  *store.Store

	screen screen
	input  textinput.Model
	prompt promptKind

	bub       *graph.Bubble
	structKey uint64

	engine    *sim.Engine
	engineGen int
	bridge    *bridge
	cam       Camera

	mode        Mode
	frozen      bool
	groupSelect bool
	drag        *dragState
	popup       *popupState

	width  int
	height int
}

// newModel creates a model. If the store holds a saved bubble the
// canvas opens directly, otherwise the entry screen asks for a name.
func newModel(cfg *config.Config, st *store.Store, logger *slog.Logger) model {
	ti := textinput.New()
	ti.Placeholder = "your name"
	ti.CharLimit = 40
	ti.Focus()

	m := model{
		cfg:    cfg,
		logger: logger,
		store:  st,
		screen: screenEntry,
		input:  ti,
		mode:   defaultMode(),
		cam:    newCamera(),
	}

	if b := st.Load(); b != nil {
		m.bub = b
		m.structKey = b.StructuralKey()
		m.screen = screenCanvas
	}
	return m
}

// Init implements tea.Model. The engine is not built here because the
// terminal size is unknown until the first WindowSizeMsg.
func (m model) Init() tea.Cmd {
	if m.screen == screenEntry {
		return textinput.Blink
	}
	return nil
}

// canvasRows is the height of the drawable canvas area. The bottom row
// is reserved for the footer.
func (m model) canvasRows() int {
	r := m.height - 1
	if r < 1 {
		r = 1
	}
	return r
}

// logicalSize is the canvas extent in logical units at scale 1. The
// row aspect stretch means one row covers two logical units.
func (m model) logicalSize() (float64, float64) {
	return float64(m.width), float64(m.canvasRows()) / rowAspect
}

// frameInterval converts the configured FPS into a tick duration.
func (m model) frameInterval() time.Duration {
	fps := m.cfg.UI.FPS
	if fps <= 0 {
		fps = 30
	}
	return time.Second / time.Duration(fps)
}

// frameCmd schedules the next simulation frame for the given engine
// generation.
func (m model) frameCmd(gen int) tea.Cmd {
	return tea.Tick(m.frameInterval(), func(t time.Time) tea.Msg {
		return frameMsg{gen: gen, t: t}
	})
}

// rebuildEngine replaces the running engine with a fresh one built from
// the current graph. The old engine is stopped so any frame messages it
// still has in flight are dropped by their stale generation.
func (m *model) rebuildEngine() tea.Cmd {
	if m.engine != nil {
		m.engine.Stop()
	}
	fitEligible := !m.bub.AllPositioned()
	w, h := m.logicalSize()
	m.engine = sim.New(m.bub.Nodes, m.bub.Links, w, h)
	m.engineGen++
	m.bridge = newBridge(fitEligible)
	if m.frozen {
		m.engine.FreezeAll()
	}
	m.logger.Debug("engine rebuilt",
		"generation", m.engineGen,
		"nodes", len(m.bub.Nodes),
		"fit_eligible", fitEligible)
	return m.frameCmd(m.engineGen)
}

// flushPositions copies every body's position into the graph.
func (m *model) flushPositions() {
	for _, b := range m.engine.Bodies() {
		m.bub.SetPosition(b.ID, graph.Point{X: b.X, Y: b.Y})
	}
}

// fitBox returns the bounding box of all bodies, padded so node
// outlines and a margin fit inside the framed view.
func (m *model) fitBox() Box {
	const margin = 50
	first := true
	var box Box
	for _, b := range m.engine.Bodies() {
		pad := b.Radius + margin
		if first {
			box = Box{MinX: b.X - pad, MinY: b.Y - pad, MaxX: b.X + pad, MaxY: b.Y + pad}
			first = false
			continue
		}
		box.MinX = min(box.MinX, b.X-pad)
		box.MinY = min(box.MinY, b.Y-pad)
		box.MaxX = max(box.MaxX, b.X+pad)
		box.MaxY = max(box.MaxY, b.Y+pad)
	}
	return box
}

// fitFrames is the animation length in frames for the configured FPS,
// targeting roughly 400ms.
func (m model) fitFrames() int {
	n := int(400 * time.Millisecond / m.frameInterval())
	if n < 1 {
		n = 1
	}
	return n
}

// afterMutation persists the graph and, when the change was structural,
// swaps in a new engine. Position-only changes keep the current engine.
func (m *model) afterMutation() tea.Cmd {
	m.store.Save(m.bub)
	key := m.bub.StructuralKey()
	if key == m.structKey {
		return nil
	}
	m.structKey = key
	return m.rebuildEngine()
}

// openPopup builds the node action menu, listing existing groups so
// membership can be toggled by number.
func (m *model) openPopup(nodeID string) {
	ids := make([]string, 0, len(m.bub.Groups))
	for i, g := range m.bub.Groups {
		if i >= 9 {
			break
		}
		ids = append(ids, g.ID)
	}
	m.popup = &popupState{nodeID: nodeID, groupIDs: ids}
}

// closeOverlays dismisses the popup, any prompt, and the group picker.
func (m *model) closeOverlays() {
	m.popup = nil
	m.prompt = promptNone
	m.groupSelect = false
}
