package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// cellGrid is a 2D character grid for rendering, one style per cell.
type cellGrid struct {
	width  int
	height int
	cells  [][]rune
	styles [][]*lipgloss.Style
}

// newGrid creates a new character grid filled with spaces.
func newGrid(width, height int) *cellGrid {
	cells := make([][]rune, height)
	styles := make([][]*lipgloss.Style, height)
	for y := 0; y < height; y++ {
		cells[y] = make([]rune, width)
		styles[y] = make([]*lipgloss.Style, width)
		for x := 0; x < width; x++ {
			cells[y][x] = ' '
		}
	}
	return &cellGrid{width: width, height: height, cells: cells, styles: styles}
}

// set writes a single rune at the given position. Out-of-bounds writes
// are dropped.
func (g *cellGrid) set(x, y int, r rune, st *lipgloss.Style) {
	if x >= 0 && x < g.width && y >= 0 && y < g.height {
		g.cells[y][x] = r
		g.styles[y][x] = st
	}
}

// writeString writes a string starting at the given position.
func (g *cellGrid) writeString(x, y int, s string, st *lipgloss.Style) {
	for i, r := range []rune(s) {
		g.set(x+i, y, r, st)
	}
}

// line draws a straight run of cells between two points (Bresenham).
func (g *cellGrid) line(x0, y0, x1, y1 int, r rune, st *lipgloss.Style) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		g.set(x0, y0, r, st)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// box draws a bordered rectangle with rounded corners.
func (g *cellGrid) box(x, y, w, h int, st *lipgloss.Style) {
	if w < 2 || h < 2 {
		return
	}
	for i := 1; i < w-1; i++ {
		g.set(x+i, y, '─', st)
		g.set(x+i, y+h-1, '─', st)
	}
	for j := 1; j < h-1; j++ {
		g.set(x, y+j, '│', st)
		g.set(x+w-1, y+j, '│', st)
		for i := 1; i < w-1; i++ {
			g.set(x+i, y+j, ' ', nil)
		}
	}
	g.set(x, y, '╭', st)
	g.set(x+w-1, y, '╮', st)
	g.set(x, y+h-1, '╰', st)
	g.set(x+w-1, y+h-1, '╯', st)
}

// String converts the grid to a styled string, grouping runs of
// identically-styled cells so escape sequences stay compact.
func (g *cellGrid) String() string {
	var sb strings.Builder
	for y, row := range g.cells {
		if y > 0 {
			sb.WriteByte('\n')
		}
		x := 0
		for x < g.width {
			st := g.styles[y][x]
			start := x
			for x < g.width && g.styles[y][x] == st {
				x++
			}
			run := string(row[start:x])
			if st != nil {
				run = st.Render(run)
			}
			sb.WriteString(run)
		}
	}
	return sb.String()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// arcSteps picks a sampling density for an arc of the given screen
// radius so the outline has no visible gaps.
func arcSteps(radius float64) int {
	n := int(math.Ceil(radius * 8))
	if n < 8 {
		n = 8
	}
	if n > 512 {
		n = 512
	}
	return n
}
