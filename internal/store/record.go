package store

import (
	"encoding/json"

	"github.com/npratt/bubble/internal/graph"
)

// Record is the durable bubble schema. Groups is omitted entirely when
// empty for compactness.
type Record struct {
	Name   string         `json:"name"`
	Nodes  []*graph.Node  `json:"nodes"`
	Links  []graph.Link   `json:"links"`
	Groups []*graph.Group `json:"groups,omitempty"`
}

// legacyGroupKind is the obsolete node kind that older records used
// before groups became a first-class collection. Such nodes and their
// incident links are dropped on load.
const legacyGroupKind graph.NodeKind = "group"

// Load reads and validates the saved bubble. Any failure — missing
// record, unparsable bytes, empty name, empty node list — yields nil,
// treated identically to "no saved bubble".
func (s *Store) Load() *graph.Bubble {
	data, ok := s.Raw()
	if !ok {
		return nil
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		s.logger.Warn("corrupt bubble record, starting fresh", "error", err)
		return nil
	}
	if rec.Name == "" || len(rec.Nodes) == 0 {
		s.logger.Warn("invalid bubble record, starting fresh",
			"name", rec.Name, "nodes", len(rec.Nodes))
		return nil
	}

	nodes, links := migrate(rec.Nodes, rec.Links)
	groups := rec.Groups
	if groups == nil {
		groups = []*graph.Group{}
	}
	return graph.Restore(rec.Name, nodes, links, groups)
}

// migrate filters out legacy group-kind nodes and every link that
// references a dropped (or otherwise unknown) node id.
func migrate(nodes []*graph.Node, links []graph.Link) ([]*graph.Node, []graph.Link) {
	kept := make([]*graph.Node, 0, len(nodes))
	keptIDs := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		if n.Kind == legacyGroupKind {
			continue
		}
		kept = append(kept, n)
		keptIDs[n.ID] = true
	}

	keptLinks := make([]graph.Link, 0, len(links))
	for _, l := range links {
		if keptIDs[l.Source] && keptIDs[l.Target] {
			keptLinks = append(keptLinks, l)
		}
	}
	return kept, keptLinks
}

// Save writes the bubble's current state. Write failures are logged
// and swallowed; the in-memory model remains the source of truth.
func (s *Store) Save(b *graph.Bubble) {
	rec := Record{
		Name:  b.Name,
		Nodes: b.Nodes,
		Links: b.Links,
	}
	if len(b.Groups) > 0 {
		rec.Groups = b.Groups
	}

	data, err := json.Marshal(rec)
	if err != nil {
		s.logger.Warn("encode bubble record", "error", err)
		return
	}
	if err := s.put(data); err != nil {
		s.logger.Warn("write bubble record", "error", err)
	}
}
