// Package sim implements the force-directed layout engine. An Engine is
// built from a structural snapshot of the bubble and advanced one tick
// per animation frame by the owning view; it never runs on its own.
package sim

import (
	"hash/fnv"
	"math"

	"github.com/npratt/bubble/internal/graph"
)

// Tuning constants for the relaxation. Energy (alpha) decays
// geometrically each tick; below SettleThreshold the layout is settled.
const (
	// SettleThreshold is the energy below which the layout is settled.
	SettleThreshold = 0.1
	// ReheatEnergy is the energy restored by structural changes, drags,
	// and resizes so the layout re-settles.
	ReheatEnergy = 0.3

	initialEnergy   = 1.0
	energyDecay     = 0.03
	velocityDamping = 0.6

	repulsionStrength = -400.0
	linkDistance      = 180.0
	linkStrength      = 0.3
	centerStrength    = 0.02

	collidePadding  = 15.0
	collisionPasses = 2

	// seedOffset is how far a new unpositioned node spawns from its
	// anchor so repulsion can separate the pair.
	seedOffset = 30.0
)

// Body is a node's live physics state. Positions here are logical
// canvas coordinates, untouched by the view transform.
type Body struct {
	ID     string
	Radius float64
	X, Y   float64
	VX, VY float64

	pin *graph.Point
}

// Pinned reports whether the body has a pinned position override.
func (b *Body) Pinned() bool { return b.pin != nil }

type simLink struct {
	a, b *Body
}

// Engine iteratively relaxes node positions until the energy decays
// below the settle threshold. It is single-threaded: the owner calls
// Tick from its frame callback and nothing else mutates the bodies.
type Engine struct {
	bodies []*Body
	byID   map[string]*Body
	links  []simLink

	center  graph.Point
	energy  float64
	stopped bool
}

// New builds an engine from the bubble's nodes and links. Nodes with a
// durable position start there; new nodes spawn near a linked neighbor
// (or the canvas center) with a deterministic jitter.
func New(nodes []*graph.Node, links []graph.Link, width, height float64) *Engine {
	e := &Engine{
		byID:   make(map[string]*Body, len(nodes)),
		center: graph.Point{X: width / 2, Y: height / 2},
		energy: initialEnergy,
	}

	for _, n := range nodes {
		b := &Body{ID: n.ID, Radius: n.Radius()}
		if n.Pos != nil {
			b.X, b.Y = n.Pos.X, n.Pos.Y
		} else {
			b.X, b.Y = math.NaN(), math.NaN() // placed below once links are known
		}
		e.bodies = append(e.bodies, b)
		e.byID[n.ID] = b
	}

	for _, l := range links {
		a, b := e.byID[l.Source], e.byID[l.Target]
		if a == nil || b == nil {
			continue
		}
		e.links = append(e.links, simLink{a: a, b: b})
	}

	e.placeUnpositioned()
	return e
}

// placeUnpositioned seeds starting positions for bodies that had none:
// near the first positioned link neighbor when one exists, otherwise
// near the canvas center. The jitter angle is derived from the id so
// layouts are reproducible.
func (e *Engine) placeUnpositioned() {
	for _, b := range e.bodies {
		if !math.IsNaN(b.X) {
			continue
		}
		anchor := e.center
		for _, l := range e.links {
			other := (*Body)(nil)
			if l.a == b {
				other = l.b
			} else if l.b == b {
				other = l.a
			}
			if other != nil && !math.IsNaN(other.X) {
				anchor = graph.Point{X: other.X, Y: other.Y}
				break
			}
		}
		angle := seedAngle(b.ID)
		b.X = anchor.X + seedOffset*math.Cos(angle)
		b.Y = anchor.Y + seedOffset*math.Sin(angle)
	}
}

func seedAngle(id string) float64 {
	h := fnv.New32a()
	h.Write([]byte(id))
	return float64(h.Sum32()%360) * math.Pi / 180
}

// Tick advances the relaxation by one step. It is a no-op (returning
// false) once the engine is stopped or the energy has settled.
func (e *Engine) Tick() bool {
	if e.stopped || e.energy < SettleThreshold {
		return false
	}

	e.applyRepulsion()
	e.applyLinks()
	e.applyCentering()
	e.integrate()
	for i := 0; i < collisionPasses; i++ {
		e.resolveCollisions()
	}

	e.energy *= 1 - energyDecay
	return true
}

// Energy returns the current energy (alpha) of the simulation.
func (e *Engine) Energy() float64 { return e.energy }

// Settled reports whether the energy has decayed below the threshold.
func (e *Engine) Settled() bool { return e.energy < SettleThreshold }

// Reheat restores energy so the layout re-settles. Stopped engines
// stay stopped.
func (e *Engine) Reheat() {
	if e.stopped {
		return
	}
	if e.energy < ReheatEnergy {
		e.energy = ReheatEnergy
	}
}

// Stop permanently halts the engine. A stopped engine never moves a
// body again; the owner must discard it before starting a replacement.
func (e *Engine) Stop() { e.stopped = true }

// Stopped reports whether Stop has been called.
func (e *Engine) Stopped() bool { return e.stopped }

// SetCenter retargets the centering force after a canvas resize and
// reheats so nodes drift toward the new center. Positions are kept;
// resizes never rebuild the engine.
func (e *Engine) SetCenter(width, height float64) {
	e.center = graph.Point{X: width / 2, Y: height / 2}
	e.Reheat()
}

// Pin fixes a body at the given position. A pinned body is excluded
// from all position updates but still exerts forces on others.
func (e *Engine) Pin(id string, x, y float64) {
	b := e.byID[id]
	if b == nil {
		return
	}
	b.pin = &graph.Point{X: x, Y: y}
	b.X, b.Y = x, y
	b.VX, b.VY = 0, 0
}

// Unpin releases a body's pinned position.
func (e *Engine) Unpin(id string) {
	if b := e.byID[id]; b != nil {
		b.pin = nil
	}
}

// FreezeAll pins every body at its current position.
func (e *Engine) FreezeAll() {
	for _, b := range e.bodies {
		b.pin = &graph.Point{X: b.X, Y: b.Y}
		b.VX, b.VY = 0, 0
	}
}

// UnfreezeAll clears every pin. It deliberately does not reheat: nodes
// stay visually static until the next structural change or drag.
func (e *Engine) UnfreezeAll() {
	for _, b := range e.bodies {
		b.pin = nil
	}
}

// Position returns a body's live position.
func (e *Engine) Position(id string) (graph.Point, bool) {
	b := e.byID[id]
	if b == nil {
		return graph.Point{}, false
	}
	return graph.Point{X: b.X, Y: b.Y}, true
}

// Bodies returns the live bodies for rendering. Callers must not
// mutate them.
func (e *Engine) Bodies() []*Body { return e.bodies }

func (e *Engine) applyRepulsion() {
	for i := 0; i < len(e.bodies); i++ {
		for j := i + 1; j < len(e.bodies); j++ {
			bi, bj := e.bodies[i], e.bodies[j]
			dx := bj.X - bi.X
			dy := bj.Y - bi.Y
			d2 := dx*dx + dy*dy
			if d2 < 1 {
				d2 = 1
				dx, dy = jitterDelta(i, j)
			}
			w := repulsionStrength * e.energy / d2
			bi.VX += dx * w
			bi.VY += dy * w
			bj.VX -= dx * w
			bj.VY -= dy * w
		}
	}
}

func (e *Engine) applyLinks() {
	for _, l := range e.links {
		dx := l.b.X - l.a.X
		dy := l.b.Y - l.a.Y
		dist := math.Hypot(dx, dy)
		if dist == 0 {
			dist = 1e-6
		}
		f := (dist - linkDistance) / dist * linkStrength * e.energy
		hx, hy := dx*f*0.5, dy*f*0.5
		l.a.VX += hx
		l.a.VY += hy
		l.b.VX -= hx
		l.b.VY -= hy
	}
}

func (e *Engine) applyCentering() {
	for _, b := range e.bodies {
		b.VX += (e.center.X - b.X) * centerStrength * e.energy
		b.VY += (e.center.Y - b.Y) * centerStrength * e.energy
	}
}

func (e *Engine) integrate() {
	for _, b := range e.bodies {
		if b.pin != nil {
			b.X, b.Y = b.pin.X, b.pin.Y
			b.VX, b.VY = 0, 0
			continue
		}
		b.VX *= velocityDamping
		b.VY *= velocityDamping
		b.X += b.VX
		b.Y += b.VY
	}
}

// resolveCollisions separates overlapping circles so rendered nodes
// never overlap. Pinned bodies do not move; their partner absorbs the
// full displacement.
func (e *Engine) resolveCollisions() {
	for i := 0; i < len(e.bodies); i++ {
		for j := i + 1; j < len(e.bodies); j++ {
			bi, bj := e.bodies[i], e.bodies[j]
			minDist := bi.Radius + bj.Radius + 2*collidePadding
			dx := bj.X - bi.X
			dy := bj.Y - bi.Y
			dist := math.Hypot(dx, dy)
			if dist >= minDist {
				continue
			}
			if dist == 0 {
				dx, dy = jitterDelta(i, j)
				dist = 1
			}
			overlap := minDist - dist
			ux, uy := dx/dist, dy/dist

			switch {
			case bi.pin != nil && bj.pin != nil:
				// Both frozen: leave them.
			case bi.pin != nil:
				bj.X += ux * overlap
				bj.Y += uy * overlap
			case bj.pin != nil:
				bi.X -= ux * overlap
				bi.Y -= uy * overlap
			default:
				bi.X -= ux * overlap / 2
				bi.Y -= uy * overlap / 2
				bj.X += ux * overlap / 2
				bj.Y += uy * overlap / 2
			}
		}
	}
}

// jitterDelta breaks the tie for coincident bodies with a small
// deterministic offset.
func jitterDelta(i, j int) (float64, float64) {
	angle := float64((i*31+j*17)%360) * math.Pi / 180
	return math.Cos(angle), math.Sin(angle)
}
