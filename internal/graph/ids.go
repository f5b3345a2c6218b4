package graph

import (
	"fmt"
	"strconv"
	"strings"
)

// Id prefixes for allocated entities. The user node has the fixed id
// "user" and is never allocated.
const (
	connIDPrefix  = "conn-"
	groupIDPrefix = "group-"
)

func (b *Bubble) allocConnID() string {
	id := fmt.Sprintf("%s%d", connIDPrefix, b.nextConn)
	b.nextConn++
	return id
}

func (b *Bubble) allocGroupID() string {
	id := fmt.Sprintf("%s%d", groupIDPrefix, b.nextGroup)
	b.nextGroup++
	return id
}

// reseedCounters advances each per-prefix counter to one past the
// maximum numeric suffix found among existing ids, so ids allocated
// after a load never collide with loaded ones.
func (b *Bubble) reseedCounters() {
	b.nextConn = 0
	b.nextGroup = 0
	for _, n := range b.Nodes {
		if seq, ok := idSuffix(n.ID, connIDPrefix); ok && seq+1 > b.nextConn {
			b.nextConn = seq + 1
		}
	}
	for _, g := range b.Groups {
		if seq, ok := idSuffix(g.ID, groupIDPrefix); ok && seq+1 > b.nextGroup {
			b.nextGroup = seq + 1
		}
	}
}

// idSuffix extracts the numeric suffix of an id with the given prefix.
func idSuffix(id, prefix string) (int, bool) {
	rest, ok := strings.CutPrefix(id, prefix)
	if !ok {
		return 0, false
	}
	seq, err := strconv.Atoi(rest)
	if err != nil || seq < 0 {
		return 0, false
	}
	return seq, true
}
