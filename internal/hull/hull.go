// Package hull computes group boundary shapes from live member
// positions. The outline is recomputed every simulation tick so it
// always tracks the layout; the shape depends only on cardinality.
package hull

import (
	"math"
	"sort"

	"github.com/npratt/bubble/internal/graph"
)

// Shape identifies the outline kind for a member count.
type Shape int

const (
	// ShapeNone hides the hull (no live members).
	ShapeNone Shape = iota
	// ShapeCircle encloses a single member.
	ShapeCircle
	// ShapeCapsule encloses exactly two members: two semicircular arcs
	// joined so both members lie strictly inside.
	ShapeCapsule
	// ShapePolygon is the convex hull of three or more members. It
	// carries no extra padding; edges may touch node circles.
	ShapePolygon
)

// String returns a string representation of the Shape.
func (s Shape) String() string {
	switch s {
	case ShapeNone:
		return "none"
	case ShapeCircle:
		return "circle"
	case ShapeCapsule:
		return "capsule"
	case ShapePolygon:
		return "polygon"
	default:
		return "unknown"
	}
}

// Boundary radii in logical units.
const (
	// SingleRadius is the circle radius around a lone member.
	SingleRadius = 50.0
	// CapsulePad is added to half the inter-member distance for the
	// two-member capsule arcs.
	CapsulePad = 45.0
)

// Outline is a computed group boundary. Fields are populated according
// to Kind: Center/Radius for circles, A/B/Radius for capsules, Points
// for polygons.
type Outline struct {
	Kind   Shape
	Center graph.Point
	Radius float64
	A, B   graph.Point
	Points []graph.Point
}

// Compute derives the outline for the given live member positions.
func Compute(members []graph.Point) Outline {
	switch len(members) {
	case 0:
		return Outline{Kind: ShapeNone}
	case 1:
		return Outline{Kind: ShapeCircle, Center: members[0], Radius: SingleRadius}
	case 2:
		a, b := members[0], members[1]
		half := math.Hypot(b.X-a.X, b.Y-a.Y) / 2
		return Outline{Kind: ShapeCapsule, A: a, B: b, Radius: half + CapsulePad}
	default:
		pts := convexHull(members)
		if len(pts) == 2 {
			// Collinear members degenerate to a segment; enclose them
			// like the two-member case so the hull stays visible.
			half := math.Hypot(pts[1].X-pts[0].X, pts[1].Y-pts[0].Y) / 2
			return Outline{Kind: ShapeCapsule, A: pts[0], B: pts[1], Radius: half + CapsulePad}
		}
		return Outline{Kind: ShapePolygon, Points: pts}
	}
}

// Contains reports whether the outline encloses the point. Polygon
// edges count as inside.
func (o Outline) Contains(p graph.Point) bool {
	switch o.Kind {
	case ShapeCircle:
		return math.Hypot(p.X-o.Center.X, p.Y-o.Center.Y) <= o.Radius
	case ShapeCapsule:
		return distToSegment(p, o.A, o.B) <= o.Radius
	case ShapePolygon:
		return polygonContains(o.Points, p)
	default:
		return false
	}
}

// convexHull computes the convex hull with Andrew's monotone chain,
// returning vertices in counter-clockwise order. Duplicate and interior
// points are dropped; a fully collinear input yields the two extremes.
func convexHull(points []graph.Point) []graph.Point {
	pts := make([]graph.Point, len(points))
	copy(pts, points)
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].X != pts[j].X {
			return pts[i].X < pts[j].X
		}
		return pts[i].Y < pts[j].Y
	})

	// Dedup coincident points.
	uniq := pts[:0]
	for i, p := range pts {
		if i == 0 || p != pts[i-1] {
			uniq = append(uniq, p)
		}
	}
	pts = uniq
	if len(pts) <= 2 {
		return append([]graph.Point(nil), pts...)
	}

	var lower, upper []graph.Point
	for _, p := range pts {
		for len(lower) >= 2 && cross(lower[len(lower)-2], lower[len(lower)-1], p) <= 0 {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, p)
	}
	for i := len(pts) - 1; i >= 0; i-- {
		p := pts[i]
		for len(upper) >= 2 && cross(upper[len(upper)-2], upper[len(upper)-1], p) <= 0 {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, p)
	}

	hull := append(lower[:len(lower)-1], upper[:len(upper)-1]...)
	return hull
}

// cross returns the z component of (b-a) x (c-a): positive for a left
// turn, zero for collinear.
func cross(a, b, c graph.Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

func distToSegment(p, a, b graph.Point) float64 {
	abx, aby := b.X-a.X, b.Y-a.Y
	l2 := abx*abx + aby*aby
	if l2 == 0 {
		return math.Hypot(p.X-a.X, p.Y-a.Y)
	}
	t := ((p.X-a.X)*abx + (p.Y-a.Y)*aby) / l2
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(p.X-(a.X+t*abx), p.Y-(a.Y+t*aby))
}

// polygonContains tests a point against a convex polygon whose
// vertices are in counter-clockwise order.
func polygonContains(poly []graph.Point, p graph.Point) bool {
	if len(poly) < 3 {
		return false
	}
	for i := range poly {
		a := poly[i]
		b := poly[(i+1)%len(poly)]
		if cross(a, b, p) < 0 {
			return false
		}
	}
	return true
}
