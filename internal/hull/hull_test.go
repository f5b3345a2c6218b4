package hull

import (
	"math"
	"testing"

	"github.com/npratt/bubble/internal/graph"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestCompute_Empty(t *testing.T) {
	o := Compute(nil)
	if o.Kind != ShapeNone {
		t.Errorf("Kind = %v, want none", o.Kind)
	}
}

func TestCompute_Single(t *testing.T) {
	o := Compute([]graph.Point{{X: 10, Y: 20}})

	if o.Kind != ShapeCircle {
		t.Fatalf("Kind = %v, want circle", o.Kind)
	}
	if o.Center != (graph.Point{X: 10, Y: 20}) {
		t.Errorf("Center = %+v, want {10 20}", o.Center)
	}
	if o.Radius != SingleRadius {
		t.Errorf("Radius = %v, want %v", o.Radius, SingleRadius)
	}
}

func TestCompute_Pair(t *testing.T) {
	a := graph.Point{X: 0, Y: 0}
	b := graph.Point{X: 100, Y: 0}
	o := Compute([]graph.Point{a, b})

	if o.Kind != ShapeCapsule {
		t.Fatalf("Kind = %v, want capsule", o.Kind)
	}
	if o.Radius != 50+CapsulePad {
		t.Errorf("Radius = %v, want %v", o.Radius, 50+CapsulePad)
	}
	if !o.Contains(a) || !o.Contains(b) {
		t.Error("both members must lie inside the capsule")
	}
	// Midpoint and a point off-axis within the pad are inside too.
	if !o.Contains(graph.Point{X: 50, Y: 40}) {
		t.Error("point within capsule pad should be inside")
	}
	if o.Contains(graph.Point{X: 50, Y: 200}) {
		t.Error("far point should be outside")
	}
}

func TestCompute_Triangle(t *testing.T) {
	members := []graph.Point{
		{X: 0, Y: 0},
		{X: 100, Y: 0},
		{X: 50, Y: 80},
	}
	o := Compute(members)

	if o.Kind != ShapePolygon {
		t.Fatalf("Kind = %v, want polygon", o.Kind)
	}
	if len(o.Points) != 3 {
		t.Errorf("len(Points) = %d, want 3", len(o.Points))
	}
	for _, m := range members {
		if !o.Contains(m) {
			t.Errorf("member %+v not inside hull", m)
		}
	}
}

func TestCompute_InteriorPointDropped(t *testing.T) {
	members := []graph.Point{
		{X: 0, Y: 0},
		{X: 100, Y: 0},
		{X: 100, Y: 100},
		{X: 0, Y: 100},
		{X: 50, Y: 50}, // interior
	}
	o := Compute(members)

	if o.Kind != ShapePolygon {
		t.Fatalf("Kind = %v, want polygon", o.Kind)
	}
	if len(o.Points) != 4 {
		t.Errorf("len(Points) = %d, want 4", len(o.Points))
	}
	if !o.Contains(graph.Point{X: 50, Y: 50}) {
		t.Error("interior point must still be inside the hull")
	}
}

func TestCompute_CollinearFallsBackToCapsule(t *testing.T) {
	members := []graph.Point{
		{X: 0, Y: 0},
		{X: 50, Y: 0},
		{X: 100, Y: 0},
	}
	o := Compute(members)

	if o.Kind != ShapeCapsule {
		t.Fatalf("Kind = %v, want capsule for collinear members", o.Kind)
	}
	for _, m := range members {
		if !o.Contains(m) {
			t.Errorf("member %+v not inside fallback capsule", m)
		}
	}
}

func TestCompute_HullContainsAllMembers(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("every member is inside its hull", prop.ForAll(
		func(xs, ys []float64) bool {
			n := len(xs)
			if len(ys) < n {
				n = len(ys)
			}
			members := make([]graph.Point, n)
			for i := 0; i < n; i++ {
				members[i] = graph.Point{X: xs[i], Y: ys[i]}
			}
			o := Compute(members)
			if len(members) == 0 {
				return o.Kind == ShapeNone
			}
			for _, m := range members {
				if !containsLoose(o, m) {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.Float64Range(-1000, 1000)),
		gen.SliceOf(gen.Float64Range(-1000, 1000)),
	))

	properties.TestingRun(t)
}

// containsLoose allows a small epsilon on the polygon edge test so
// floating-point jitter on hull vertices does not fail the property.
func containsLoose(o Outline, p graph.Point) bool {
	if o.Contains(p) {
		return true
	}
	if o.Kind != ShapePolygon {
		return false
	}
	for i := range o.Points {
		a := o.Points[i]
		b := o.Points[(i+1)%len(o.Points)]
		if cross(a, b, p) < -1e-6*scaleOf(a, b) {
			return false
		}
	}
	return true
}

func scaleOf(a, b graph.Point) float64 {
	return math.Max(1, math.Hypot(b.X-a.X, b.Y-a.Y))
}
