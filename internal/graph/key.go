package graph

import (
	"hash/fnv"
	"sort"
)

// StructuralKey returns an order-independent fingerprint of the graph's
// shape: the set of node ids, the set of unordered link pairs, and the
// set of group ids. It is the sole trigger for rebuilding the layout
// engine; position-only mutations must never change it.
func (b *Bubble) StructuralKey() uint64 {
	nodeIDs := make([]string, 0, len(b.Nodes))
	for _, n := range b.Nodes {
		nodeIDs = append(nodeIDs, n.ID)
	}
	sort.Strings(nodeIDs)

	pairs := make([]string, 0, len(b.Links))
	for _, l := range b.Links {
		a, c := l.Source, l.Target
		if a > c {
			a, c = c, a
		}
		pairs = append(pairs, a+"\x00"+c)
	}
	sort.Strings(pairs)

	groupIDs := make([]string, 0, len(b.Groups))
	for _, g := range b.Groups {
		groupIDs = append(groupIDs, g.ID)
	}
	sort.Strings(groupIDs)

	h := fnv.New64a()
	for _, s := range nodeIDs {
		h.Write([]byte(s))
		h.Write([]byte{'\x01'})
	}
	h.Write([]byte{'\x02'})
	for _, s := range pairs {
		h.Write([]byte(s))
		h.Write([]byte{'\x01'})
	}
	h.Write([]byte{'\x02'})
	for _, s := range groupIDs {
		h.Write([]byte(s))
		h.Write([]byte{'\x01'})
	}
	return h.Sum64()
}
