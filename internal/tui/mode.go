package tui

// ModeKind identifies the interaction mode.
type ModeKind int

const (
	// ModeDefault is the idle mode: clicks open the node popup.
	ModeDefault ModeKind = iota
	// ModeLinkFrom awaits a second node to link with the origin node.
	ModeLinkFrom
	// ModeAddToGroup adds every clicked node to the target group until
	// the user ends the mode.
	ModeAddToGroup
)

// Mode is the interaction state. Exactly one variant is active at a
// time; NodeID is set for ModeLinkFrom and GroupID for ModeAddToGroup.
type Mode struct {
	Kind    ModeKind
	NodeID  string
	GroupID string
}

func defaultMode() Mode { return Mode{Kind: ModeDefault} }

func linkFrom(nodeID string) Mode {
	return Mode{Kind: ModeLinkFrom, NodeID: nodeID}
}

func addToGroup(groupID string) Mode {
	return Mode{Kind: ModeAddToGroup, GroupID: groupID}
}

// String returns a string representation of the mode kind.
func (m Mode) String() string {
	switch m.Kind {
	case ModeDefault:
		return "default"
	case ModeLinkFrom:
		return "link-from"
	case ModeAddToGroup:
		return "add-to-group"
	default:
		return "unknown"
	}
}
