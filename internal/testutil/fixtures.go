// Package testutil provides shared fixtures for tests.
package testutil

import (
	"io"
	"log/slog"

	"github.com/npratt/bubble/internal/graph"
)

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// SampleBubble builds a small positioned graph: the user "ada" with two
// connections, laid out to fit an 80x24 terminal at scale 1.
func SampleBubble() *graph.Bubble {
	b := graph.New("ada")
	b.AddConnection("grace", graph.UserNodeID)
	b.AddConnection("linus", graph.UserNodeID)
	b.SetPosition(graph.UserNodeID, graph.Point{X: 40, Y: 22})
	b.SetPosition("conn-0", graph.Point{X: 14, Y: 22})
	b.SetPosition("conn-1", graph.Point{X: 66, Y: 22})
	return b
}

// SampleBubbleWithGroup is SampleBubble plus a group holding both
// connections.
func SampleBubbleWithGroup() *graph.Bubble {
	b := SampleBubble()
	g := b.CreateGroup("friends")
	b.AddMember(g.ID, "conn-0")
	b.AddMember(g.ID, "conn-1")
	return b
}
