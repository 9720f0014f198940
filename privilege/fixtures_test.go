package privilege_test

import (
	"testing"

	"github.com/treegate/privilege-engine/privilege"
)

// tree is an in-memory content subgraph that serves as NodeLocator,
// NodeAccessor, WorkspaceDirectory and NodeTypeRegistry at once. It holds
// a single subgraph identity; the locator hands itself out for any
// requested identity.
type tree struct {
	identity   privilege.SubgraphIdentity
	nodes      map[privilege.NodeAggregateID]*privilege.Node
	paths      map[privilege.NodeAggregateID]string
	workspaces map[privilege.ContentStreamID]*privilege.Workspace
	typeNames  []string
	supertypes map[string][]string
}

// newTree builds a subgraph in content repository "default" on a fresh
// content stream owned by workspace "live", pinned to language "de".
func newTree(t *testing.T) *tree {
	t.Helper()

	stream := privilege.NewContentStreamID()
	tr := &tree{
		identity: privilege.SubgraphIdentity{
			ContentRepository: "default",
			ContentStream:     stream,
			Dimensions:        privilege.DimensionSpacePoint{"language": "de"},
		},
		nodes:      make(map[privilege.NodeAggregateID]*privilege.Node),
		paths:      make(map[privilege.NodeAggregateID]string),
		workspaces: make(map[privilege.ContentStreamID]*privilege.Workspace),
		supertypes: make(map[string][]string),
	}
	tr.workspaces[stream] = &privilege.Workspace{Name: "live", ContentStream: stream}
	return tr
}

// add registers a node at the given absolute path and returns it.
func (tr *tree) add(path, nodeType string) *privilege.Node {
	node := &privilege.Node{
		AggregateID: privilege.NewNodeAggregateID(),
		Type:        nodeType,
		Subgraph:    tr.identity,
	}
	tr.nodes[node.AggregateID] = node
	tr.paths[node.AggregateID] = path
	return node
}

func (tr *tree) Subgraph(privilege.SubgraphIdentity) privilege.NodeAccessor {
	return tr
}

func (tr *tree) NodeByID(id privilege.NodeAggregateID) (*privilege.Node, bool) {
	node, ok := tr.nodes[id]
	return node, ok
}

func (tr *tree) PathOf(node *privilege.Node) (string, bool) {
	path, ok := tr.paths[node.AggregateID]
	return path, ok
}

func (tr *tree) WorkspaceByContentStream(id privilege.ContentStreamID) (*privilege.Workspace, bool) {
	workspace, ok := tr.workspaces[id]
	return workspace, ok
}

func (tr *tree) AllTypeNames(string) []string {
	return tr.typeNames
}

func (tr *tree) IsSubtypeOf(typeName, superTypeName string) bool {
	for _, super := range tr.supertypes[typeName] {
		if super == superTypeName {
			return true
		}
	}
	return false
}

// compile builds an engine over the tree's collaborators, failing the test
// on compilation errors.
func compile(t *testing.T, tr *tree, roles ...privilege.Role) *privilege.Engine {
	t.Helper()

	engine, err := privilege.CompileRoles(roles,
		privilege.WithNodeLocator(tr),
		privilege.WithWorkspaceDirectory(tr),
		privilege.WithNodeTypeRegistry(tr),
	)
	if err != nil {
		t.Fatalf("compile roles: %v", err)
	}
	return engine
}

// grantRule is shorthand for a grant rule of the given action and selector.
func grantRule(id string, action privilege.ActionKind, selector privilege.Selector) privilege.Rule {
	return privilege.Rule{
		ID:       id,
		Action:   action,
		Polarity: privilege.PolarityGrant,
		Matches:  selector,
	}
}

// denyRule is shorthand for a deny rule of the given action and selector.
func denyRule(id string, action privilege.ActionKind, selector privilege.Selector) privilege.Rule {
	return privilege.Rule{
		ID:       id,
		Action:   action,
		Polarity: privilege.PolarityDeny,
		Matches:  selector,
	}
}
