package graph

import "testing"

func TestNew(t *testing.T) {
	b := New("Ava")

	if b.Name != "Ava" {
		t.Errorf("Name = %q, want Ava", b.Name)
	}
	if len(b.Nodes) != 1 {
		t.Fatalf("len(Nodes) = %d, want 1", len(b.Nodes))
	}
	user := b.Nodes[0]
	if user.ID != UserNodeID {
		t.Errorf("user node ID = %q, want %q", user.ID, UserNodeID)
	}
	if user.Kind != KindUser {
		t.Errorf("user node Kind = %q, want %q", user.Kind, KindUser)
	}
	if user.Name != "Ava" {
		t.Errorf("user node Name = %q, want Ava", user.Name)
	}
	if len(b.Links) != 0 {
		t.Errorf("len(Links) = %d, want 0", len(b.Links))
	}
	if len(b.Groups) != 0 {
		t.Errorf("len(Groups) = %d, want 0", len(b.Groups))
	}
}

func TestAddConnection(t *testing.T) {
	b := New("Ava")

	n := b.AddConnection("Ben", UserNodeID)
	if n == nil {
		t.Fatal("AddConnection returned nil")
	}
	if n.ID != "conn-0" {
		t.Errorf("ID = %q, want conn-0", n.ID)
	}
	if n.Kind != KindConnection {
		t.Errorf("Kind = %q, want %q", n.Kind, KindConnection)
	}
	if !b.HasLink(UserNodeID, "conn-0") {
		t.Error("expected link user<->conn-0")
	}

	// Ids increment monotonically.
	n2 := b.AddConnection("Cam", UserNodeID)
	if n2.ID != "conn-1" {
		t.Errorf("second ID = %q, want conn-1", n2.ID)
	}
}

func TestAddConnection_UnknownAnchor(t *testing.T) {
	b := New("Ava")

	if n := b.AddConnection("Ben", "nope"); n != nil {
		t.Errorf("expected nil for unknown anchor, got %v", n)
	}
	if len(b.Nodes) != 1 {
		t.Errorf("len(Nodes) = %d, want 1", len(b.Nodes))
	}
}

func TestAddLink_SelfLink(t *testing.T) {
	b := New("Ava")
	b.AddConnection("Ben", UserNodeID)

	if b.AddLink("conn-0", "conn-0") {
		t.Error("self-link should be rejected")
	}
	if len(b.Links) != 1 {
		t.Errorf("len(Links) = %d, want 1", len(b.Links))
	}
}

func TestAddLink_DuplicateEitherOrientation(t *testing.T) {
	b := New("Ava")
	b.AddConnection("Ben", UserNodeID) // creates user<->conn-0

	if b.AddLink(UserNodeID, "conn-0") {
		t.Error("duplicate link should be rejected")
	}
	if b.AddLink("conn-0", UserNodeID) {
		t.Error("reversed duplicate link should be rejected")
	}
	if len(b.Links) != 1 {
		t.Errorf("len(Links) = %d, want 1", len(b.Links))
	}
}

func TestAddLink_UnknownNode(t *testing.T) {
	b := New("Ava")
	b.AddConnection("Ben", UserNodeID)

	if b.AddLink("conn-0", "ghost") {
		t.Error("link to unknown node should be rejected")
	}
	if len(b.Links) != 1 {
		t.Errorf("len(Links) = %d, want 1", len(b.Links))
	}
}

func TestAddLink_NewPair(t *testing.T) {
	b := New("Ava")
	b.AddConnection("Ben", UserNodeID)
	b.AddConnection("Cam", UserNodeID)

	if !b.AddLink("conn-0", "conn-1") {
		t.Error("expected link to be created")
	}
	if len(b.Links) != 3 {
		t.Errorf("len(Links) = %d, want 3", len(b.Links))
	}
}

func TestGroupMembership_Idempotent(t *testing.T) {
	b := New("Ava")
	b.AddConnection("Ben", UserNodeID)
	g := b.CreateGroup("Family")

	if g.ID != "group-0" {
		t.Errorf("group ID = %q, want group-0", g.ID)
	}
	if !b.AddMember(g.ID, UserNodeID) {
		t.Error("first add should change membership")
	}
	if b.AddMember(g.ID, UserNodeID) {
		t.Error("second add should be a no-op")
	}
	if len(g.Members) != 1 {
		t.Errorf("len(Members) = %d, want 1", len(g.Members))
	}
}

func TestToggleMember(t *testing.T) {
	b := New("Ava")
	g := b.CreateGroup("Family")

	if !b.ToggleMember(g.ID, UserNodeID) {
		t.Error("toggle on should change membership")
	}
	if !g.Has(UserNodeID) {
		t.Error("user should be a member")
	}
	if !b.ToggleMember(g.ID, UserNodeID) {
		t.Error("toggle off should change membership")
	}
	if g.Has(UserNodeID) {
		t.Error("user should no longer be a member")
	}

	if b.ToggleMember("group-99", UserNodeID) {
		t.Error("unknown group should be a no-op")
	}
	if b.ToggleMember(g.ID, "ghost") {
		t.Error("unknown node should be a no-op")
	}
}

func TestSetPosition(t *testing.T) {
	b := New("Ava")

	b.SetPosition(UserNodeID, Point{X: 10, Y: -4})
	n := b.Node(UserNodeID)
	if n.Pos == nil {
		t.Fatal("Pos not set")
	}
	if n.Pos.X != 10 || n.Pos.Y != -4 {
		t.Errorf("Pos = %+v, want {10 -4}", *n.Pos)
	}

	// Unknown id is a no-op, not a panic.
	b.SetPosition("ghost", Point{})
}

func TestAllPositioned(t *testing.T) {
	b := New("Ava")
	b.AddConnection("Ben", UserNodeID)

	if b.AllPositioned() {
		t.Error("fresh bubble should not be fully positioned")
	}
	b.SetPosition(UserNodeID, Point{X: 1, Y: 1})
	if b.AllPositioned() {
		t.Error("one unpositioned node remains")
	}
	b.SetPosition("conn-0", Point{X: 2, Y: 2})
	if !b.AllPositioned() {
		t.Error("all nodes positioned")
	}
}

func TestRestore_ReseedsCounters(t *testing.T) {
	nodes := []*Node{
		{ID: UserNodeID, Name: "Ava", Kind: KindUser},
		{ID: "conn-0", Name: "Ben", Kind: KindConnection},
		{ID: "conn-7", Name: "Cam", Kind: KindConnection},
	}
	groups := []*Group{{ID: "group-2", Name: "Family"}}

	b := Restore("Ava", nodes, nil, groups)

	n := b.AddConnection("Dee", UserNodeID)
	if n.ID != "conn-8" {
		t.Errorf("new connection ID = %q, want conn-8", n.ID)
	}
	g := b.CreateGroup("Work")
	if g.ID != "group-3" {
		t.Errorf("new group ID = %q, want group-3", g.ID)
	}
}

func TestRestore_IgnoresMalformedSuffixes(t *testing.T) {
	nodes := []*Node{
		{ID: UserNodeID, Name: "Ava", Kind: KindUser},
		{ID: "conn-abc", Name: "odd", Kind: KindConnection},
	}

	b := Restore("Ava", nodes, nil, nil)

	n := b.AddConnection("Ben", UserNodeID)
	if n.ID != "conn-0" {
		t.Errorf("new connection ID = %q, want conn-0", n.ID)
	}
}

func TestRadius(t *testing.T) {
	user := &Node{Kind: KindUser}
	conn := &Node{Kind: KindConnection}

	if user.Radius() <= conn.Radius() {
		t.Errorf("user radius %v should exceed connection radius %v",
			user.Radius(), conn.Radius())
	}
}
