// Package graph holds the bubble data model: nodes, links, and groups.
// It is pure data plus invariant-preserving mutators; the simulation and
// UI layers live elsewhere.
package graph

// NodeKind distinguishes the single user node from connection nodes.
type NodeKind string

const (
	// KindUser is the owner of the bubble. Exactly one per graph,
	// created first, never removed.
	KindUser NodeKind = "user"
	// KindConnection is a person the user added.
	KindConnection NodeKind = "connection"
)

// Node radii in logical canvas units. Fixed by kind; used for both
// rendering and collision separation.
const (
	UserRadius       = 26.0
	ConnectionRadius = 16.0
)

// Point is a position in logical canvas coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node is a named entity in the bubble.
type Node struct {
	ID   string   `json:"id"`
	Name string   `json:"name"`
	Kind NodeKind `json:"kind"`
	Pos  *Point   `json:"pos,omitempty"` // settled position, absent until first flush
}

// Radius returns the node's circle radius, fixed by kind.
func (n *Node) Radius() float64 {
	if n.Kind == KindUser {
		return UserRadius
	}
	return ConnectionRadius
}

// Link is an undirected connection between two nodes.
type Link struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Group is a named cluster of nodes. Membership order is irrelevant.
type Group struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

// Has reports whether the node is a member of the group.
func (g *Group) Has(nodeID string) bool {
	for _, m := range g.Members {
		if m == nodeID {
			return true
		}
	}
	return false
}

// Add adds a node to the group. Adding an existing member is a no-op.
// Returns true if membership changed.
func (g *Group) Add(nodeID string) bool {
	if g.Has(nodeID) {
		return false
	}
	g.Members = append(g.Members, nodeID)
	return true
}

// Remove removes a node from the group. Returns true if membership changed.
func (g *Group) Remove(nodeID string) bool {
	for i, m := range g.Members {
		if m == nodeID {
			g.Members = append(g.Members[:i], g.Members[i+1:]...)
			return true
		}
	}
	return false
}

// Bubble is the user's personal graph: one user node, connections,
// links, and groups. Entities are append-only; nothing is ever deleted.
type Bubble struct {
	Name   string
	Nodes  []*Node
	Links  []Link
	Groups []*Group

	byID      map[string]*Node
	nextConn  int
	nextGroup int
}

// UserNodeID is the fixed id of the user node.
const UserNodeID = "user"

// New creates a bubble for the given user name with a single user node
// and empty link and group sets.
func New(name string) *Bubble {
	b := &Bubble{Name: name, byID: make(map[string]*Node)}
	user := &Node{ID: UserNodeID, Name: name, Kind: KindUser}
	b.Nodes = append(b.Nodes, user)
	b.byID[user.ID] = user
	return b
}

// Restore rebuilds a bubble from loaded entities. Id counters are
// reseeded so newly allocated ids never collide with loaded ones.
func Restore(name string, nodes []*Node, links []Link, groups []*Group) *Bubble {
	b := &Bubble{
		Name:   name,
		Nodes:  nodes,
		Links:  links,
		Groups: groups,
		byID:   make(map[string]*Node, len(nodes)),
	}
	for _, n := range nodes {
		b.byID[n.ID] = n
	}
	b.reseedCounters()
	return b
}

// Node returns the node with the given id, or nil.
func (b *Bubble) Node(id string) *Node {
	return b.byID[id]
}

// Group returns the group with the given id, or nil.
func (b *Bubble) Group(id string) *Group {
	for _, g := range b.Groups {
		if g.ID == id {
			return g
		}
	}
	return nil
}

// AddConnection creates a new connection node linked to the anchor node.
// Returns nil if the anchor does not exist.
func (b *Bubble) AddConnection(name, anchorID string) *Node {
	anchor := b.byID[anchorID]
	if anchor == nil {
		return nil
	}
	n := &Node{ID: b.allocConnID(), Name: name, Kind: KindConnection}
	b.Nodes = append(b.Nodes, n)
	b.byID[n.ID] = n
	b.Links = append(b.Links, Link{Source: anchorID, Target: n.ID})
	return n
}

// HasLink reports whether a link exists between the two nodes in either
// orientation.
func (b *Bubble) HasLink(a, c string) bool {
	for _, l := range b.Links {
		if (l.Source == a && l.Target == c) || (l.Source == c && l.Target == a) {
			return true
		}
	}
	return false
}

// AddLink creates an undirected link between two existing nodes.
// Self-links, duplicate pairs (either orientation), and unknown ids are
// silently rejected. Returns true if the link set changed.
func (b *Bubble) AddLink(a, c string) bool {
	if a == c {
		return false
	}
	if b.byID[a] == nil || b.byID[c] == nil {
		return false
	}
	if b.HasLink(a, c) {
		return false
	}
	b.Links = append(b.Links, Link{Source: a, Target: c})
	return true
}

// CreateGroup creates a new empty group with the given name.
func (b *Bubble) CreateGroup(name string) *Group {
	g := &Group{ID: b.allocGroupID(), Name: name}
	b.Groups = append(b.Groups, g)
	return g
}

// ToggleMember flips a node's membership in a group. Unknown group or
// node ids are no-ops. Returns true if membership changed.
func (b *Bubble) ToggleMember(groupID, nodeID string) bool {
	g := b.Group(groupID)
	if g == nil || b.byID[nodeID] == nil {
		return false
	}
	if g.Has(nodeID) {
		return g.Remove(nodeID)
	}
	return g.Add(nodeID)
}

// AddMember adds a node to a group, idempotently. Unknown ids are
// no-ops. Returns true if membership changed.
func (b *Bubble) AddMember(groupID, nodeID string) bool {
	g := b.Group(groupID)
	if g == nil || b.byID[nodeID] == nil {
		return false
	}
	return g.Add(nodeID)
}

// SetPosition writes a durable position for a node. Position writes are
// not structural: they never change the structural key.
func (b *Bubble) SetPosition(id string, p Point) {
	if n := b.byID[id]; n != nil {
		pos := p
		n.Pos = &pos
	}
}

// AllPositioned reports whether every node has a durable position.
// A bubble that loads fully positioned re-renders without auto-fit.
func (b *Bubble) AllPositioned() bool {
	for _, n := range b.Nodes {
		if n.Pos == nil {
			return false
		}
	}
	return true
}
