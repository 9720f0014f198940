// Package privilege evaluates access-control decisions over nodes in a
// hierarchical, multi-dimensional content tree.
//
// Rules attach to roles. Each rule pairs an action kind (editing, creating
// or removing a node, reading or editing a property) with a polarity
// (grant or deny) and a selector: an ANDed set of optional predicates over
// the subject node — path or identifier relation, node type, workspace
// membership, dimension preset. A role with no rule matching a subject
// abstains for that subject.
//
// Votes fold with fixed precedence: any matching deny wins, then any
// matching grant, then the configured default polarity (deny unless
// overridden). Bulk queries ("which node types may not be created here?")
// use set algebra over the candidate universe: the effective denied set is
// (ABSTAINED − GRANTED) ∪ DENIED, so an item nobody granted is implicitly
// denied as soon as one role abstained, and an explicit denial can never be
// lifted by a grant.
//
// The engine holds no state across calls. Node resolution, workspace
// lookup and node-type hierarchy queries go through injected collaborator
// interfaces (NodeLocator, WorkspaceDirectory, NodeTypeRegistry), which
// keeps evaluation deterministic and testable with in-memory fakes.
package privilege
