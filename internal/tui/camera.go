package tui

import (
	"math"

	"github.com/npratt/bubble/internal/graph"
)

// rowAspect compensates for terminal cells being roughly twice as tall
// as they are wide: one logical unit maps to scale columns but only
// scale*rowAspect rows, so circles render round.
const rowAspect = 0.5

// Zoom limits for user gestures. Auto-fit may go below MinZoom but its
// scale never exceeds 1.0 (no zooming in just to fit).
const (
	MinZoom     = 0.5
	MaxZoom     = 3.0
	maxFitScale = 1.0
)

// Camera maps logical canvas coordinates to screen cells. Simulation
// coordinates are always untransformed logical space; only rendering
// and hit testing pass through the camera.
type Camera struct {
	Scale float64
	X, Y  float64 // logical coordinates of the top-left screen cell

	anim *fitAnim
}

// fitAnim is an in-flight animated transition to a fit target.
type fitAnim struct {
	fromX, fromY, fromScale float64
	toX, toY, toScale       float64
	frame, total            int
}

func newCamera() Camera {
	return Camera{Scale: 1}
}

// ToScreen converts a logical point to (column, row).
func (c *Camera) ToScreen(p graph.Point) (int, int) {
	col := int(math.Round((p.X - c.X) * c.Scale))
	row := int(math.Round((p.Y - c.Y) * c.Scale * rowAspect))
	return col, row
}

// ToCanvas converts a screen cell back to logical coordinates.
func (c *Camera) ToCanvas(col, row int) graph.Point {
	return graph.Point{
		X: c.X + float64(col)/c.Scale,
		Y: c.Y + float64(row)/(c.Scale*rowAspect),
	}
}

// ZoomAt scales by the given factor keeping the logical point under
// the cursor fixed. The resulting scale is clamped to [MinZoom, MaxZoom].
func (c *Camera) ZoomAt(factor float64, col, row int) {
	c.anim = nil // a gesture cancels any fit in progress
	anchor := c.ToCanvas(col, row)
	c.Scale = clamp(c.Scale*factor, MinZoom, MaxZoom)
	c.X = anchor.X - float64(col)/c.Scale
	c.Y = anchor.Y - float64(row)/(c.Scale*rowAspect)
}

// Pan shifts the view by the given number of screen cells.
func (c *Camera) Pan(dCols, dRows int) {
	c.anim = nil
	c.X += float64(dCols) / c.Scale
	c.Y += float64(dRows) / (c.Scale * rowAspect)
}

// Box is an axis-aligned bounding box in logical coordinates.
type Box struct {
	MinX, MinY, MaxX, MaxY float64
}

// StartFit begins an animated transition that fits the box into a
// cols x rows viewport. The fit scale is capped at 1.0: the view never
// zooms in past 100% purely to fit.
func (c *Camera) StartFit(box Box, cols, rows, frames int) {
	w := math.Max(box.MaxX-box.MinX, 1)
	h := math.Max(box.MaxY-box.MinY, 1)

	scale := math.Min(maxFitScale, math.Min(float64(cols)/w, float64(rows)/(h*rowAspect)))
	toX := box.MinX + w/2 - float64(cols)/(2*scale)
	toY := box.MinY + h/2 - float64(rows)/(2*scale*rowAspect)

	if frames < 1 {
		frames = 1
	}
	c.anim = &fitAnim{
		fromX: c.X, fromY: c.Y, fromScale: c.Scale,
		toX: toX, toY: toY, toScale: scale,
		total: frames,
	}
}

// StepAnim advances the fit animation by one frame. Returns true while
// a transition is in flight.
func (c *Camera) StepAnim() bool {
	a := c.anim
	if a == nil {
		return false
	}
	a.frame++
	t := float64(a.frame) / float64(a.total)
	if t >= 1 {
		c.X, c.Y, c.Scale = a.toX, a.toY, a.toScale
		c.anim = nil
		return false
	}
	e := smoothstep(t)
	c.X = a.fromX + (a.toX-a.fromX)*e
	c.Y = a.fromY + (a.toY-a.fromY)*e
	c.Scale = a.fromScale + (a.toScale-a.fromScale)*e
	return true
}

// CancelAnim drops any in-flight transition, e.g. on view teardown.
func (c *Camera) CancelAnim() { c.anim = nil }

// Animating reports whether a fit transition is in flight.
func (c *Camera) Animating() bool { return c.anim != nil }

func smoothstep(t float64) float64 {
	return t * t * (3 - 2*t)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
