package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/npratt/bubble/internal/graph"
)

// Update implements tea.Model. All mutation is serialized through this
// single message loop; the simulation, the camera and the graph have no
// other writers.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case frameMsg:
		return m.handleFrame(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}

	if m.screen == screenEntry || m.prompt != promptNone {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleResize records the new terminal size. The engine is built
// lazily on the first size report; later resizes only move the
// centering target and reheat, preserving positions.
func (m model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.input.Width = min(40, max(10, msg.Width-8))

	if m.screen != screenCanvas || m.bub == nil {
		return m, nil
	}
	if m.engine == nil {
		return m, m.rebuildEngine()
	}
	w, h := m.logicalSize()
	m.engine.SetCenter(w, h)
	return m, nil
}

// handleFrame advances the simulation by one step. Frames from a
// superseded engine generation are dropped without rescheduling, which
// is what terminates the old engine's tick loop.
func (m model) handleFrame(msg frameMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.engineGen || m.engine == nil || m.engine.Stopped() {
		return m, nil
	}
	m.engine.Tick()

	flush, fit := m.bridge.observe(m.engine)
	if flush {
		m.flushPositions()
		m.store.Save(m.bub)
		m.logger.Debug("settled positions flushed", "generation", m.engineGen)
	}
	if fit {
		m.cam.StartFit(m.fitBox(), m.width, m.canvasRows(), m.fitFrames())
	}
	m.cam.StepAnim()

	return m, m.frameCmd(msg.gen)
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// ctrl+c always quits, whatever overlay is open.
	if key == "ctrl+c" {
		return m.quit()
	}

	if m.screen == screenEntry {
		return m.handleEntryKey(msg)
	}
	if m.prompt != promptNone {
		return m.handlePromptKey(msg)
	}
	if m.popup != nil {
		return m.handlePopupKey(key)
	}
	if m.groupSelect {
		return m.handleGroupSelectKey(key)
	}

	switch key {
	case "q":
		return m.quit()

	case "esc":
		m.mode = defaultMode()
		m.closeOverlays()
		return m, nil

	case "f":
		m.frozen = !m.frozen
		if m.engine != nil {
			if m.frozen {
				m.engine.FreezeAll()
			} else {
				m.engine.UnfreezeAll()
			}
		}
		return m, nil

	case "g":
		if len(m.bub.Groups) > 0 {
			m.groupSelect = true
		}
		return m, nil

	case "+", "=":
		m.cam.ZoomAt(1.2, m.width/2, m.canvasRows()/2)
		return m, nil

	case "-", "_":
		m.cam.ZoomAt(1/1.2, m.width/2, m.canvasRows()/2)
		return m, nil

	case "up":
		m.cam.Pan(0, -2)
		return m, nil
	case "down":
		m.cam.Pan(0, 2)
		return m, nil
	case "left":
		m.cam.Pan(-4, 0)
		return m, nil
	case "right":
		m.cam.Pan(4, 0)
		return m, nil
	}
	return m, nil
}

// handleEntryKey runs the first-launch name prompt.
func (m model) handleEntryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		name := strings.TrimSpace(m.input.Value())
		if name == "" {
			return m, nil
		}
		m.bub = graph.New(name)
		m.structKey = m.bub.StructuralKey()
		m.store.Save(m.bub)
		m.screen = screenCanvas
		m.input.Reset()
		m.logger.Info("bubble created", "name", name)
		if m.width > 0 {
			return m, m.rebuildEngine()
		}
		return m, nil

	case "esc":
		return m.quit()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handlePromptKey runs the overlay text input for new connection and
// new group names.
func (m model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.prompt = promptNone
		m.input.Reset()
		return m, nil

	case "enter":
		name := strings.TrimSpace(m.input.Value())
		if name == "" {
			return m, nil
		}
		kind := m.prompt
		anchor := ""
		if m.popup != nil {
			anchor = m.popup.nodeID
		}
		m.closeOverlays()
		m.input.Reset()

		switch kind {
		case promptConnection:
			if anchor == "" {
				anchor = graph.UserNodeID
			}
			if n := m.bub.AddConnection(name, anchor); n != nil {
				m.logger.Info("connection added", "id", n.ID, "name", name, "anchor", anchor)
				return m, m.afterMutation()
			}

		case promptGroupName:
			g := m.bub.CreateGroup(name)
			if anchor != "" {
				m.bub.AddMember(g.ID, anchor)
			}
			m.mode = addToGroup(g.ID)
			m.logger.Info("group created", "id", g.ID, "name", name)
			return m, m.afterMutation()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handlePopupKey runs the node action menu.
func (m model) handlePopupKey(key string) (tea.Model, tea.Cmd) {
	p := m.popup

	switch key {
	case "esc":
		m.popup = nil
		return m, nil

	case "a":
		m.prompt = promptConnection
		m.input.Placeholder = "connection name"
		m.input.Reset()
		m.input.Focus()
		return m, textinput.Blink

	case "l":
		m.mode = linkFrom(p.nodeID)
		m.popup = nil
		return m, nil

	case "n":
		m.prompt = promptGroupName
		m.input.Placeholder = "group name"
		m.input.Reset()
		m.input.Focus()
		return m, textinput.Blink
	}

	// Digits toggle membership in the listed groups.
	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		idx := int(key[0] - '1')
		if idx < len(p.groupIDs) {
			m.bub.ToggleMember(p.groupIDs[idx], p.nodeID)
			m.popup = nil
			// Membership is not structural, so this only persists.
			return m, m.afterMutation()
		}
	}
	return m, nil
}

// handleGroupSelectKey runs the group picker banner opened with "g".
func (m model) handleGroupSelectKey(key string) (tea.Model, tea.Cmd) {
	if key == "esc" {
		m.groupSelect = false
		return m, nil
	}
	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		idx := int(key[0] - '1')
		if idx < len(m.bub.Groups) {
			m.mode = addToGroup(m.bub.Groups[idx].ID)
			m.groupSelect = false
		}
	}
	return m, nil
}

func (m model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.screen != screenCanvas || m.engine == nil {
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.cam.ZoomAt(1.1, msg.X, msg.Y)
		return m, nil
	case tea.MouseButtonWheelDown:
		m.cam.ZoomAt(1/1.1, msg.X, msg.Y)
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		return m.handlePress(msg.X, msg.Y)

	case tea.MouseActionMotion:
		return m.handleMotion(msg.X, msg.Y)

	case tea.MouseActionRelease:
		return m.handleRelease(msg.X, msg.Y)
	}
	return m, nil
}

// handlePress resolves a left press against the current mode.
func (m model) handlePress(col, row int) (tea.Model, tea.Cmd) {
	if m.popup != nil {
		// A click anywhere dismisses the menu.
		m.popup = nil
		return m, nil
	}
	id, hit := m.nodeAt(col, row)

	switch m.mode.Kind {
	case ModeLinkFrom:
		origin := m.mode.NodeID
		m.mode = defaultMode()
		if hit && id != origin && m.bub.AddLink(origin, id) {
			m.logger.Info("link added", "source", origin, "target", id)
			return m, m.afterMutation()
		}
		return m, nil

	case ModeAddToGroup:
		if !hit {
			m.mode = defaultMode()
			return m, nil
		}
		if m.bub.AddMember(m.mode.GroupID, id) {
			return m, m.afterMutation()
		}
		return m, nil
	}

	if !hit {
		return m, nil
	}
	m.drag = &dragState{nodeID: id}
	if !m.frozen {
		p := m.cam.ToCanvas(col, row)
		m.engine.Pin(id, p.X, p.Y)
		m.engine.Reheat()
	}
	return m, nil
}

// handleMotion updates an in-progress drag. Drags are ignored entirely
// while frozen.
func (m model) handleMotion(col, row int) (tea.Model, tea.Cmd) {
	if m.drag == nil || m.frozen {
		return m, nil
	}
	m.drag.moved = true
	p := m.cam.ToCanvas(col, row)
	m.engine.Pin(m.drag.nodeID, p.X, p.Y)
	m.engine.Reheat()
	return m, nil
}

// handleRelease ends a drag. A press without motion is a click, which
// opens the node menu in default mode.
func (m model) handleRelease(col, row int) (tea.Model, tea.Cmd) {
	d := m.drag
	if d == nil {
		return m, nil
	}
	m.drag = nil

	if !m.frozen {
		m.engine.Unpin(d.nodeID)
	}
	if d.moved {
		if pos, ok := m.engine.Position(d.nodeID); ok {
			m.bub.SetPosition(d.nodeID, pos)
			m.store.Save(m.bub)
		}
		return m, nil
	}
	if m.mode.Kind == ModeDefault {
		m.openPopup(d.nodeID)
	}
	return m, nil
}

// nodeAt hit-tests a screen cell against live node positions, returning
// the closest node whose outline covers the point.
func (m model) nodeAt(col, row int) (string, bool) {
	p := m.cam.ToCanvas(col, row)
	bestID := ""
	bestDist := math.MaxFloat64
	for _, b := range m.engine.Bodies() {
		dx, dy := b.X-p.X, b.Y-p.Y
		d := math.Hypot(dx, dy)
		if d <= b.Radius && d < bestDist {
			bestID = b.ID
			bestDist = d
		}
	}
	return bestID, bestID != ""
}

// quit stops the engine so no frame can fire after teardown.
func (m model) quit() (tea.Model, tea.Cmd) {
	if m.engine != nil {
		m.engine.Stop()
	}
	m.cam.CancelAnim()
	return m, tea.Quit
}
