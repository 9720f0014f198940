package privilege

import "context"

// PropertyWildcard is the sentinel item standing for every property name
// in bulk property queries. A role granting all properties keeps the
// wildcard out of the denied set; a caller seeing the wildcard in a result
// must treat every property not explicitly granted as denied.
const PropertyWildcard = "*"

// Authorizer is the query surface bound to one compiled engine. Each
// method pairs a high-level question with its action kind and query shape;
// it carries no logic beyond subject construction. Boolean queries never
// error: a missing subject node degrades to deny.
type Authorizer struct {
	engine *Engine
}

// NewAuthorizer binds an authorizer to a compiled engine.
func NewAuthorizer(engine *Engine) *Authorizer {
	return &Authorizer{engine: engine}
}

// IsGrantedToEditNode reports whether the compiled roles allow editing the
// node.
func (a *Authorizer) IsGrantedToEditNode(ctx context.Context, node *Node) bool {
	decision, err := a.engine.Decide(ctx, ActionEditNode, NodeSubject{Node: node})
	return err == nil && decision.Granted()
}

// IsGrantedToRemoveNode reports whether the compiled roles allow removing
// the node.
func (a *Authorizer) IsGrantedToRemoveNode(ctx context.Context, node *Node) bool {
	decision, err := a.engine.Decide(ctx, ActionRemoveNode, NodeSubject{Node: node})
	return err == nil && decision.Granted()
}

// IsGrantedToCreateNode reports whether a node of nodeType may be created
// under referenceNode. An empty nodeType asks whether creation of any type
// is permitted.
func (a *Authorizer) IsGrantedToCreateNode(ctx context.Context, referenceNode *Node, nodeType string) bool {
	subject := CreateNodeSubject{ReferenceNode: referenceNode, NodeType: nodeType}
	decision, err := a.engine.Decide(ctx, ActionCreateNode, subject)
	return err == nil && decision.Granted()
}

// DeniedNodeTypesForCreation lists the node types that may not be created
// under referenceNode. The candidate universe is every type the registry
// knows for the reference node's content repository.
func (a *Authorizer) DeniedNodeTypesForCreation(ctx context.Context, referenceNode *Node) ([]string, error) {
	var universe []string
	if a.engine.types != nil && referenceNode != nil {
		universe = a.engine.types.AllTypeNames(referenceNode.Subgraph.ContentRepository)
	}
	subject := CreateNodeSubject{ReferenceNode: referenceNode}
	return a.engine.DeniedItems(ctx, ActionCreateNode, subject, universe)
}

// IsGrantedToReadProperty reports whether the named property of the node
// may be read.
func (a *Authorizer) IsGrantedToReadProperty(ctx context.Context, node *Node, property string) bool {
	subject := PropertySubject{Node: node, Property: property}
	decision, err := a.engine.Decide(ctx, ActionReadNodeProperty, subject)
	return err == nil && decision.Granted()
}

// IsGrantedToEditProperty reports whether the named property of the node
// may be written.
func (a *Authorizer) IsGrantedToEditProperty(ctx context.Context, node *Node, property string) bool {
	subject := PropertySubject{Node: node, Property: property}
	decision, err := a.engine.Decide(ctx, ActionEditNodeProperty, subject)
	return err == nil && decision.Granted()
}

// DeniedPropertiesForEditing lists the property names that may not be
// edited on the node. The universe is the PropertyWildcard sentinel.
func (a *Authorizer) DeniedPropertiesForEditing(ctx context.Context, node *Node) ([]string, error) {
	subject := PropertySubject{Node: node}
	return a.engine.DeniedItems(ctx, ActionEditNodeProperty, subject, []string{PropertyWildcard})
}
