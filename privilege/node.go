package privilege

import "github.com/google/uuid"

// NodeAggregateID identifies a node aggregate. It is stable across every
// dimension variant of the node.
type NodeAggregateID uuid.UUID

// ParseNodeAggregateID parses the canonical UUID form of an aggregate
// identifier.
func ParseNodeAggregateID(s string) (NodeAggregateID, error) {
	id, err := uuid.Parse(s)
	return NodeAggregateID(id), err
}

// NewNodeAggregateID returns a random aggregate identifier.
func NewNodeAggregateID() NodeAggregateID {
	return NodeAggregateID(uuid.New())
}

// String returns the canonical UUID form.
func (id NodeAggregateID) String() string {
	return uuid.UUID(id).String()
}

// ContentStreamID identifies a content stream.
type ContentStreamID uuid.UUID

// NewContentStreamID returns a random content stream identifier.
func NewContentStreamID() ContentStreamID {
	return ContentStreamID(uuid.New())
}

// String returns the canonical UUID form.
func (id ContentStreamID) String() string {
	return uuid.UUID(id).String()
}

// DimensionSpacePoint maps a dimension identifier (e.g. "language") to the
// coordinate a subgraph is pinned to. Immutable once attached to a
// subgraph identity.
type DimensionSpacePoint map[string]string

// Coordinate returns the coordinate for the given dimension, if present.
func (p DimensionSpacePoint) Coordinate(dimension string) (string, bool) {
	coordinate, ok := p[dimension]
	return coordinate, ok
}

// SubgraphIdentity locates one dimension variant of a content repository's
// tree: the repository, the content stream, and the dimension space point.
type SubgraphIdentity struct {
	ContentRepository string
	ContentStream     ContentStreamID
	Dimensions        DimensionSpacePoint
}

// Node is the read-only view of a content node the engine evaluates
// against. Its absolute path is not stored here; it is resolved on demand
// through the subgraph's NodeAccessor.
type Node struct {
	AggregateID NodeAggregateID
	Type        string
	Subgraph    SubgraphIdentity
}

// Workspace is a named head pointing at a content stream. A node's
// workspace membership is derived from its subgraph's content stream, not
// stored on the node.
type Workspace struct {
	Name          string
	ContentStream ContentStreamID
}

// NodeAccessor reads nodes within a single subgraph identity.
type NodeAccessor interface {
	// NodeByID returns the node with the given aggregate identifier, or
	// false when the subgraph contains no such node.
	NodeByID(id NodeAggregateID) (*Node, bool)

	// PathOf returns the absolute "/"-delimited path of the node within
	// the subgraph, or false when the node is not part of it.
	PathOf(node *Node) (string, bool)
}

// NodeLocator scopes node access to a subgraph identity. The engine binds
// one accessor per evaluation, from the subject node's own subgraph.
type NodeLocator interface {
	Subgraph(identity SubgraphIdentity) NodeAccessor
}

// WorkspaceDirectory resolves the workspace owning a content stream.
type WorkspaceDirectory interface {
	WorkspaceByContentStream(id ContentStreamID) (*Workspace, bool)
}

// NodeTypeRegistry answers node-type hierarchy queries and enumerates the
// creation universe. Whether abstract types appear in AllTypeNames is the
// registry's policy, not the engine's.
type NodeTypeRegistry interface {
	// AllTypeNames lists every node type registered with the content
	// repository.
	AllTypeNames(contentRepository string) []string

	// IsSubtypeOf reports whether typeName is declared as a sub-type of
	// superTypeName. Equal names need not report true; the engine checks
	// equality itself.
	IsSubtypeOf(typeName, superTypeName string) bool
}

// RoleSource yields the role snapshot of the current actor. Ordering is
// irrelevant: the engine's results are role-order independent.
type RoleSource interface {
	Roles() []Role
}
