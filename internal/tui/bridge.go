package tui

import "github.com/npratt/bubble/internal/sim"

// bridge observes one engine instance for convergence. It flushes the
// settled positions into the durable model exactly once per instance,
// and requests the auto-fit transition at most once — and only when
// the instance started with nodes that had no durable position yet
// (i.e. a structural change, not a pure re-render).
//
// A fresh bridge is created alongside every engine; its flags never
// reset, which is what makes the flush one-shot.
type bridge struct {
	flushed     bool
	fitEligible bool
	fitDone     bool
}

func newBridge(fitEligible bool) *bridge {
	return &bridge{fitEligible: fitEligible}
}

// observe inspects the engine after a tick. flush is true on the first
// settled observation only; fit is true at most once, on first settle
// of a fit-eligible instance.
func (b *bridge) observe(e *sim.Engine) (flush, fit bool) {
	if e == nil || !e.Settled() {
		return false, false
	}
	if !b.flushed {
		b.flushed = true
		flush = true
	}
	if b.fitEligible && !b.fitDone {
		b.fitDone = true
		fit = true
	}
	return flush, fit
}
