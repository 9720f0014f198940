package privilege

import (
	"strings"

	"github.com/google/uuid"
)

// compiledSelector is a Selector with its path operand pre-resolved into
// either a node aggregate identifier or a normalized literal path.
type compiledSelector struct {
	selector    Selector
	hasPath     bool
	relation    PathRelation
	operandID   *NodeAggregateID
	operandPath string // normalized, only set when operandID is nil
}

func compileSelector(s Selector) compiledSelector {
	cs := compiledSelector{selector: s}
	if s.Path == "" {
		return cs
	}
	cs.hasPath = true
	cs.relation = s.Relation
	if cs.relation == "" {
		cs.relation = RelationDescendant
	}
	if id, err := uuid.Parse(s.Path); err == nil {
		aggregateID := NodeAggregateID(id)
		cs.operandID = &aggregateID
	} else {
		// Not a valid identifier: the operand is a literal path. This
		// fallback also absorbs malformed identifier-looking strings.
		cs.operandPath = normalizePath(s.Path)
	}
	return cs
}

// normalizePath strips trailing slashes and appends exactly one, so that
// prefix comparison cannot match across segment boundaries ("/sites/a"
// must not match "/sites/ab").
func normalizePath(p string) string {
	return strings.TrimRight(p, "/") + "/"
}

// evaluation carries the lazily bound per-call state: the subgraph-scoped
// node accessor and the subject node's normalized path. One evaluation
// serves exactly one subject node and must not be shared across calls.
type evaluation struct {
	engine *Engine
	node   *Node

	accessor     NodeAccessor
	accessorInit bool

	subjectPath     string
	subjectPathOK   bool
	subjectPathInit bool
}

func newEvaluation(e *Engine, node *Node) *evaluation {
	return &evaluation{engine: e, node: node}
}

func (ev *evaluation) subgraphAccessor() NodeAccessor {
	if !ev.accessorInit {
		ev.accessorInit = true
		if ev.engine.locator != nil {
			ev.accessor = ev.engine.locator.Subgraph(ev.node.Subgraph)
		}
	}
	return ev.accessor
}

func (ev *evaluation) path() (string, bool) {
	if !ev.subjectPathInit {
		ev.subjectPathInit = true
		if accessor := ev.subgraphAccessor(); accessor != nil {
			if p, ok := accessor.PathOf(ev.node); ok {
				ev.subjectPath = normalizePath(p)
				ev.subjectPathOK = true
			}
		}
	}
	return ev.subjectPath, ev.subjectPathOK
}

// matches reports whether every predicate present on the selector holds
// for the evaluation's subject node. Absent predicates do not constrain.
// Matching never errors: unresolvable references, unknown workspaces and
// missing dimension coordinates all degrade to false.
func (cs *compiledSelector) matches(ev *evaluation) bool {
	if cs.hasPath && !cs.matchesPath(ev) {
		return false
	}
	if len(cs.selector.NodeTypes) > 0 && !cs.matchesNodeType(ev) {
		return false
	}
	if len(cs.selector.Workspaces) > 0 && !cs.matchesWorkspace(ev) {
		return false
	}
	if cs.selector.Dimension != "" && !cs.matchesDimension(ev) {
		return false
	}
	return true
}

func (cs *compiledSelector) matchesPath(ev *evaluation) bool {
	comparison := cs.operandPath
	if cs.operandID != nil {
		// An operand naming the subject itself matches immediately. This
		// keeps the predicate true even when the subject cannot be found
		// through the locator, and skips a redundant path lookup.
		if *cs.operandID == ev.node.AggregateID {
			return true
		}
		accessor := ev.subgraphAccessor()
		if accessor == nil {
			return false
		}
		other, ok := accessor.NodeByID(*cs.operandID)
		if !ok {
			return false
		}
		otherPath, ok := accessor.PathOf(other)
		if !ok {
			return false
		}
		comparison = normalizePath(otherPath)
	}

	subjectPath, ok := ev.path()
	if !ok {
		return false
	}

	// Both paths are normalized with a trailing slash, so a prefix match
	// is an ancestry match and equal paths satisfy both directions.
	switch cs.relation {
	case RelationAncestor:
		return strings.HasPrefix(comparison, subjectPath)
	case RelationDescendant:
		return strings.HasPrefix(subjectPath, comparison)
	case RelationAncestorOrDescendant:
		return strings.HasPrefix(comparison, subjectPath) ||
			strings.HasPrefix(subjectPath, comparison)
	default:
		return false
	}
}

func (cs *compiledSelector) matchesNodeType(ev *evaluation) bool {
	registry := ev.engine.types
	for _, name := range cs.selector.NodeTypes {
		if ev.node.Type == name {
			return true
		}
		if registry != nil && registry.IsSubtypeOf(ev.node.Type, name) {
			return true
		}
	}
	return false
}

func (cs *compiledSelector) matchesWorkspace(ev *evaluation) bool {
	directory := ev.engine.workspaces
	if directory == nil {
		return false
	}
	workspace, ok := directory.WorkspaceByContentStream(ev.node.Subgraph.ContentStream)
	if !ok {
		return false
	}
	for _, name := range cs.selector.Workspaces {
		if workspace.Name == name {
			return true
		}
	}
	return false
}

func (cs *compiledSelector) matchesDimension(ev *evaluation) bool {
	coordinate, ok := ev.node.Subgraph.Dimensions.Coordinate(cs.selector.Dimension)
	if !ok {
		return false
	}
	for _, preset := range cs.selector.Presets {
		if coordinate == preset {
			return true
		}
	}
	return false
}
