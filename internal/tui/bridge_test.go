package tui

import (
	"testing"

	"github.com/npratt/bubble/internal/graph"
	"github.com/npratt/bubble/internal/sim"
)

func settledEngine(t *testing.T) *sim.Engine {
	t.Helper()
	nodes := []*graph.Node{
		{ID: graph.UserNodeID, Name: "ada", Kind: graph.KindUser, Pos: &graph.Point{X: 400, Y: 300}},
		{ID: "conn-0", Name: "grace", Kind: graph.KindConnection, Pos: &graph.Point{X: 500, Y: 300}},
	}
	links := []graph.Link{{Source: graph.UserNodeID, Target: "conn-0"}}
	e := sim.New(nodes, links, 800, 600)
	for i := 0; i < 500 && !e.Settled(); i++ {
		e.Tick()
	}
	if !e.Settled() {
		t.Fatal("engine did not settle")
	}
	return e
}

func TestBridge_NothingBeforeSettle(t *testing.T) {
	nodes := []*graph.Node{
		{ID: graph.UserNodeID, Name: "ada", Kind: graph.KindUser},
	}
	e := sim.New(nodes, nil, 800, 600)
	b := newBridge(true)

	flush, fit := b.observe(e)
	if flush || fit {
		t.Errorf("observe before settle = (%v, %v), want (false, false)", flush, fit)
	}
}

func TestBridge_FlushExactlyOnce(t *testing.T) {
	e := settledEngine(t)
	b := newBridge(false)

	flush, _ := b.observe(e)
	if !flush {
		t.Fatal("first settled observation should flush")
	}
	for i := 0; i < 5; i++ {
		flush, _ = b.observe(e)
		if flush {
			t.Fatal("flush fired more than once for the same instance")
		}
	}
}

func TestBridge_FlushDoesNotRepeatAfterReheat(t *testing.T) {
	e := settledEngine(t)
	b := newBridge(false)
	b.observe(e)

	e.Reheat()
	for i := 0; i < 500 && !e.Settled(); i++ {
		e.Tick()
	}
	flush, _ := b.observe(e)
	if flush {
		t.Error("flush fired again after reheat; it is one-shot per instance")
	}
}

func TestBridge_FitOnlyWhenEligible(t *testing.T) {
	e := settledEngine(t)

	b := newBridge(false)
	if _, fit := b.observe(e); fit {
		t.Error("fit fired for an instance that started fully positioned")
	}

	b = newBridge(true)
	_, fit := b.observe(e)
	if !fit {
		t.Error("fit did not fire for an eligible instance")
	}
	if _, fit = b.observe(e); fit {
		t.Error("fit fired twice for the same instance")
	}
}
