package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/npratt/bubble/internal/graph"
	"github.com/npratt/bubble/internal/hull"
)

// Glyphs for canvas elements.
const (
	linkRune    = '·'
	hullRune    = '∘'
	outlineRune = '•'
	tinyRune    = '●'
)

// View implements tea.Model.
func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.width < m.cfg.UI.MinWidth || m.height < m.cfg.UI.MinHeight {
		return fmt.Sprintf("Terminal too small (%dx%d). Need at least %dx%d.",
			m.width, m.height, m.cfg.UI.MinWidth, m.cfg.UI.MinHeight)
	}
	if m.screen == screenEntry {
		return m.renderEntry()
	}
	return m.renderCanvas()
}

// renderEntry draws the first-launch name prompt.
func (m model) renderEntry() string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.Title.Render("bubble"),
		"",
		styles.Prompt.Render("What is your name?"),
		"",
		m.input.View(),
		"",
		styles.Footer.Render("enter to start · esc to quit"),
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// renderCanvas draws the graph: hulls beneath links beneath nodes, then
// overlays.
func (m model) renderCanvas() string {
	grid := newGrid(m.width, m.canvasRows())

	m.drawHulls(grid)
	m.drawLinks(grid)
	for _, n := range m.bub.Nodes {
		m.drawNode(grid, n)
	}
	if m.popup != nil {
		m.drawPopup(grid)
	}
	m.drawBanner(grid)
	if m.prompt != promptNone {
		m.drawPrompt(grid)
	}

	return grid.String() + "\n" + m.renderFooter()
}

// livePos returns a node's on-canvas position, preferring the engine's
// live body over the durable position.
func (m model) livePos(id string) (graph.Point, bool) {
	if m.engine != nil {
		if p, ok := m.engine.Position(id); ok {
			return p, true
		}
	}
	n := m.bub.Node(id)
	if n == nil || n.Pos == nil {
		return graph.Point{}, false
	}
	return *n.Pos, true
}

// drawHulls recomputes each group's outline from live positions and
// rasterizes it beneath everything else.
func (m model) drawHulls(g *cellGrid) {
	for _, grp := range m.bub.Groups {
		pts := make([]graph.Point, 0, len(grp.Members))
		for _, id := range grp.Members {
			if p, ok := m.livePos(id); ok {
				pts = append(pts, p)
			}
		}
		o := hull.Compute(pts)
		switch o.Kind {
		case hull.ShapeCircle:
			m.drawCircle(g, o.Center, o.Radius, hullRune, &styles.Hull)
		case hull.ShapeCapsule:
			m.drawCapsule(g, o)
		case hull.ShapePolygon:
			for i := range o.Points {
				a := o.Points[i]
				b := o.Points[(i+1)%len(o.Points)]
				ax, ay := m.cam.ToScreen(a)
				bx, by := m.cam.ToScreen(b)
				g.line(ax, ay, bx, by, hullRune, &styles.Hull)
			}
		}
		// Label near the outline's topmost extent.
		lx, ly := m.cam.ToScreen(labelAnchor(o))
		g.writeString(lx-len(grp.Name)/2, ly-1, grp.Name, &styles.Hull)
	}
}

// labelAnchor picks a logical point above the outline for its name.
func labelAnchor(o hull.Outline) graph.Point {
	switch o.Kind {
	case hull.ShapeCircle:
		return graph.Point{X: o.Center.X, Y: o.Center.Y - o.Radius}
	case hull.ShapeCapsule:
		top := o.A
		if o.B.Y < top.Y {
			top = o.B
		}
		return graph.Point{X: top.X, Y: top.Y - o.Radius}
	case hull.ShapePolygon:
		top := o.Points[0]
		for _, p := range o.Points[1:] {
			if p.Y < top.Y {
				top = p
			}
		}
		return top
	}
	return graph.Point{}
}

func (m model) drawLinks(g *cellGrid) {
	for _, l := range m.bub.Links {
		a, okA := m.livePos(l.Source)
		b, okB := m.livePos(l.Target)
		if !okA || !okB {
			continue
		}
		ax, ay := m.cam.ToScreen(a)
		bx, by := m.cam.ToScreen(b)
		g.line(ax, ay, bx, by, linkRune, &styles.Link)
	}
}

// drawCircle rasterizes a logical-space circle outline.
func (m model) drawCircle(g *cellGrid, c graph.Point, r float64, ru rune, st *lipgloss.Style) {
	steps := arcSteps(r * m.cam.Scale)
	for i := 0; i < steps; i++ {
		t := 2 * math.Pi * float64(i) / float64(steps)
		p := graph.Point{X: c.X + r*math.Cos(t), Y: c.Y + r*math.Sin(t)}
		x, y := m.cam.ToScreen(p)
		g.set(x, y, ru, st)
	}
}

// drawCapsule rasterizes a two-anchor capsule: a half circle around
// each anchor facing away from the other, joined by two offset lines.
func (m model) drawCapsule(g *cellGrid, o hull.Outline) {
	dx, dy := o.B.X-o.A.X, o.B.Y-o.A.Y
	d := math.Hypot(dx, dy)
	if d == 0 {
		m.drawCircle(g, o.A, o.Radius, hullRune, &styles.Hull)
		return
	}
	ux, uy := dx/d, dy/d
	// Perpendicular offset for the straight sides.
	px, py := -uy*o.Radius, ux*o.Radius

	a1x, a1y := m.cam.ToScreen(graph.Point{X: o.A.X + px, Y: o.A.Y + py})
	b1x, b1y := m.cam.ToScreen(graph.Point{X: o.B.X + px, Y: o.B.Y + py})
	a2x, a2y := m.cam.ToScreen(graph.Point{X: o.A.X - px, Y: o.A.Y - py})
	b2x, b2y := m.cam.ToScreen(graph.Point{X: o.B.X - px, Y: o.B.Y - py})
	g.line(a1x, a1y, b1x, b1y, hullRune, &styles.Hull)
	g.line(a2x, a2y, b2x, b2y, hullRune, &styles.Hull)

	base := math.Atan2(uy, ux)
	m.drawArc(g, o.A, o.Radius, base+math.Pi/2, base+3*math.Pi/2)
	m.drawArc(g, o.B, o.Radius, base-math.Pi/2, base+math.Pi/2)
}

// drawArc rasterizes a circular arc between two angles.
func (m model) drawArc(g *cellGrid, c graph.Point, r, from, to float64) {
	steps := arcSteps(r * m.cam.Scale)
	for i := 0; i <= steps; i++ {
		t := from + (to-from)*float64(i)/float64(steps)
		p := graph.Point{X: c.X + r*math.Cos(t), Y: c.Y + r*math.Sin(t)}
		x, y := m.cam.ToScreen(p)
		g.set(x, y, hullRune, &styles.Hull)
	}
}

// drawNode rasterizes a node's circle outline with its name centered
// inside. When the circle is too small on screen for a label, a single
// glyph marks the position.
func (m model) drawNode(g *cellGrid, n *graph.Node) {
	p, ok := m.livePos(n.ID)
	if !ok {
		return
	}
	st := &styles.Connection
	if n.Kind == graph.KindUser {
		st = &styles.User
	}
	if m.drag != nil && m.drag.nodeID == n.ID {
		st = &styles.Dragged
	}
	if m.mode.Kind == ModeLinkFrom && m.mode.NodeID == n.ID {
		st = &styles.Dragged
	}

	cx, cy := m.cam.ToScreen(p)
	r := n.Radius()
	screenR := r * m.cam.Scale
	if screenR < 2 {
		g.set(cx, cy, tinyRune, st)
		return
	}

	m.drawCircle(g, p, r, outlineRune, st)

	name := []rune(n.Name)
	maxLabel := int(screenR*2) - 2
	if maxLabel < 1 {
		maxLabel = 1
	}
	if len(name) > maxLabel {
		name = name[:maxLabel]
	}
	g.writeString(cx-len(name)/2, cy, string(name), st)
}

// drawPopup draws the node action menu near the top-left of the canvas.
func (m model) drawPopup(g *cellGrid) {
	p := m.popup
	n := m.bub.Node(p.nodeID)
	if n == nil {
		return
	}

	lines := []string{
		n.Name,
		"",
		"a  add connection",
		"l  link to...",
		"n  new group",
	}
	for i, gid := range p.groupIDs {
		grp := m.bub.Group(gid)
		if grp == nil {
			continue
		}
		mark := " "
		if grp.Has(p.nodeID) {
			mark = "*"
		}
		lines = append(lines, fmt.Sprintf("%d %s %s", i+1, mark, grp.Name))
	}
	lines = append(lines, "", "esc close")

	w := 0
	for _, l := range lines {
		if len(l) > w {
			w = len(l)
		}
	}
	w += 4
	h := len(lines) + 2

	x, y := 2, 1
	g.box(x, y, w, h, &styles.PopupBorder)
	for i, l := range lines {
		st := &styles.Prompt
		if i == 0 {
			st = &styles.PopupKey
		}
		g.writeString(x+2, y+1+i, l, st)
	}
}

// drawBanner shows the active mode or the group picker across the top.
func (m model) drawBanner(g *cellGrid) {
	var text string
	switch {
	case m.groupSelect:
		var parts []string
		for i, grp := range m.bub.Groups {
			if i >= 9 {
				break
			}
			parts = append(parts, fmt.Sprintf("%d:%s", i+1, grp.Name))
		}
		text = " add to group: " + strings.Join(parts, "  ") + " · esc cancel "

	case m.mode.Kind == ModeLinkFrom:
		if n := m.bub.Node(m.mode.NodeID); n != nil {
			text = " linking from " + n.Name + ": click a node · esc cancel "
		}

	case m.mode.Kind == ModeAddToGroup:
		if grp := m.bub.Group(m.mode.GroupID); grp != nil {
			text = " adding to " + grp.Name + ": click nodes · esc done "
		}
	}
	if text == "" {
		return
	}
	g.writeString((m.width-len(text))/2, 0, text, &styles.Banner)
}

// drawPrompt draws the text input overlay for new names.
func (m model) drawPrompt(g *cellGrid) {
	label := "name:"
	switch m.prompt {
	case promptConnection:
		label = "new connection:"
	case promptGroupName:
		label = "new group:"
	}
	view := label + " " + m.input.Value() + "█"

	w := max(len(view)+4, 30)
	h := 3
	x := (m.width - w) / 2
	y := m.canvasRows()/2 - 1
	g.box(x, y, w, h, &styles.PopupBorder)
	g.writeString(x+2, y+1, view, &styles.Prompt)
}

// renderFooter builds the bottom key hint row.
func (m model) renderFooter() string {
	hints := "click node: menu · drag: move · g: groups · f: freeze · +/-: zoom · arrows: pan · q: quit"
	line := styles.Footer.Render(hints)
	if m.frozen {
		line = styles.Frozen.Render("FROZEN ") + line
	}
	if m.engine != nil && !m.engine.Settled() {
		line += styles.Footer.Render(fmt.Sprintf("  ·  energy %.2f", m.engine.Energy()))
	}
	return line
}
