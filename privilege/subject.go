package privilege

// Subject is the action-specific bundle of data a rule is tested against.
// The implementations form a closed set, one per group of action kinds.
type Subject interface {
	subjectNode() *Node
}

// NodeSubject targets an existing node (edit_node, remove_node).
type NodeSubject struct {
	Node *Node
}

func (s NodeSubject) subjectNode() *Node { return s.Node }

// CreateNodeSubject targets creation of a child under a reference node.
// NodeType optionally names the type to be created; leave it empty for
// bulk queries, where the rule's governed list is resolved against the
// whole universe instead.
type CreateNodeSubject struct {
	ReferenceNode *Node
	NodeType      string
}

func (s CreateNodeSubject) subjectNode() *Node { return s.ReferenceNode }

// PropertySubject targets one property of a node. An empty Property is
// the bulk wildcard used by denied-set queries.
type PropertySubject struct {
	Node     *Node
	Property string
}

func (s PropertySubject) subjectNode() *Node { return s.Node }

func subjectNodeOf(subject Subject) *Node {
	if subject == nil {
		return nil
	}
	return subject.subjectNode()
}
