package tui

import (
	"math"
	"testing"

	"github.com/npratt/bubble/internal/graph"
)

func TestCamera_RoundTrip(t *testing.T) {
	c := newCamera()
	c.X, c.Y = 10, 20
	c.Scale = 2

	p := c.ToCanvas(15, 7)
	col, row := c.ToScreen(p)

	if col != 15 || row != 7 {
		t.Errorf("round trip = (%d, %d), want (15, 7)", col, row)
	}
}

func TestCamera_ZoomAtKeepsAnchorFixed(t *testing.T) {
	c := newCamera()
	c.X, c.Y = 5, 5

	before := c.ToCanvas(30, 10)
	c.ZoomAt(1.5, 30, 10)
	after := c.ToCanvas(30, 10)

	if math.Abs(before.X-after.X) > 1e-9 || math.Abs(before.Y-after.Y) > 1e-9 {
		t.Errorf("anchor moved from (%v, %v) to (%v, %v)", before.X, before.Y, after.X, after.Y)
	}
}

func TestCamera_ZoomClamped(t *testing.T) {
	c := newCamera()

	for i := 0; i < 20; i++ {
		c.ZoomAt(2, 0, 0)
	}
	if c.Scale != MaxZoom {
		t.Errorf("scale = %v, want clamped to %v", c.Scale, MaxZoom)
	}

	for i := 0; i < 20; i++ {
		c.ZoomAt(0.5, 0, 0)
	}
	if c.Scale != MinZoom {
		t.Errorf("scale = %v, want clamped to %v", c.Scale, MinZoom)
	}
}

func TestCamera_FitScaleCappedAtOne(t *testing.T) {
	c := newCamera()
	c.Scale = 2

	// A tiny box would need scale > 1 to fill the viewport.
	c.StartFit(Box{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}, 80, 24, 1)
	c.StepAnim()

	if c.Scale > 1 {
		t.Errorf("fit scale = %v, want <= 1", c.Scale)
	}
}

func TestCamera_FitMayGoBelowMinZoom(t *testing.T) {
	c := newCamera()

	// A huge box forces a very small fit scale; the gesture floor does
	// not apply to fits.
	c.StartFit(Box{MinX: 0, MinY: 0, MaxX: 10000, MaxY: 10000}, 80, 24, 1)
	c.StepAnim()

	if c.Scale >= MinZoom {
		t.Errorf("fit scale = %v, want below %v for oversized content", c.Scale, MinZoom)
	}
}

func TestCamera_FitCentersBox(t *testing.T) {
	c := newCamera()
	box := Box{MinX: 100, MinY: 100, MaxX: 140, MaxY: 140}

	c.StartFit(box, 80, 24, 1)
	c.StepAnim()

	// The box midpoint should land at the viewport midpoint.
	mid := graph.Point{X: 120, Y: 120}
	col, row := c.ToScreen(mid)
	if col < 38 || col > 42 || row < 10 || row > 14 {
		t.Errorf("box center at (%d, %d), want near (40, 12)", col, row)
	}
}

func TestCamera_AnimCompletesAndStops(t *testing.T) {
	c := newCamera()
	c.StartFit(Box{MinX: 0, MinY: 0, MaxX: 200, MaxY: 200}, 80, 24, 5)

	steps := 0
	for c.StepAnim() {
		steps++
		if steps > 10 {
			t.Fatal("animation never completed")
		}
	}
	if c.Animating() {
		t.Error("Animating() = true after completion")
	}

	// Steady state afterwards.
	if c.StepAnim() {
		t.Error("StepAnim() = true with no animation in flight")
	}
}

func TestCamera_GestureCancelsFit(t *testing.T) {
	c := newCamera()
	c.StartFit(Box{MinX: 0, MinY: 0, MaxX: 200, MaxY: 200}, 80, 24, 10)

	c.Pan(1, 0)

	if c.Animating() {
		t.Error("pan should cancel an in-flight fit")
	}
}
