package privilege

// ActionKind identifies which operation a rule governs. The set is closed:
// rules for any other kind fail compilation, and querying the engine with
// an unknown kind is a contract violation.
type ActionKind string

const (
	// ActionEditNode covers modifications of an existing node.
	ActionEditNode ActionKind = "edit_node"
	// ActionCreateNode covers creation of a new node under a reference node.
	ActionCreateNode ActionKind = "create_node"
	// ActionRemoveNode covers removal of an existing node.
	ActionRemoveNode ActionKind = "remove_node"
	// ActionReadNodeProperty covers reading a node property.
	ActionReadNodeProperty ActionKind = "read_node_property"
	// ActionEditNodeProperty covers writing a node property.
	ActionEditNodeProperty ActionKind = "edit_node_property"
)

// IsValid reports whether the action kind is one of the known values.
func (k ActionKind) IsValid() bool {
	switch k {
	case ActionEditNode, ActionCreateNode, ActionRemoveNode,
		ActionReadNodeProperty, ActionEditNodeProperty:
		return true
	}
	return false
}
