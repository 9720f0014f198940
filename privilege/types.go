package privilege

// Document describes a collection of roles that can be serialized as JSON
// or YAML.
type Document struct {
	Version         string    `json:"version,omitempty" yaml:"version,omitempty"`
	DefaultPolarity *Polarity `json:"default_polarity,omitempty" yaml:"default_polarity,omitempty"`
	Roles           []Role    `json:"roles" yaml:"roles"`
}

// Role groups the rules attached to one named role. A role with no rule
// matching a given subject abstains for that subject.
type Role struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Rules       []Rule `json:"rules,omitempty" yaml:"rules,omitempty"`
}

// Rule pairs one action kind with a polarity and a selector.
type Rule struct {
	ID          string     `json:"id,omitempty" yaml:"id,omitempty"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Action      ActionKind `json:"action" yaml:"action"`
	Polarity    Polarity   `json:"polarity" yaml:"polarity"`
	Matches     Selector   `json:"matches,omitempty" yaml:"matches,omitempty"`

	// NodeTypes restricts which node types a create_node rule governs.
	// Empty means the rule governs every type the registry knows.
	NodeTypes []string `json:"node_types,omitempty" yaml:"node_types,omitempty"`

	// Properties restricts which property names a read_node_property or
	// edit_node_property rule governs. Empty means every property.
	Properties []string `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// PathRelation states how the subject node must relate to the node named
// by a selector's path operand.
type PathRelation string

const (
	// RelationDescendant matches subjects at or below the operand.
	RelationDescendant PathRelation = "descendant"
	// RelationAncestor matches subjects at or above the operand.
	RelationAncestor PathRelation = "ancestor"
	// RelationAncestorOrDescendant matches subjects on the operand's axis,
	// in either direction.
	RelationAncestorOrDescendant PathRelation = "ancestor_or_descendant"
)

// IsValid reports whether the relation is one of the known values.
func (r PathRelation) IsValid() bool {
	switch r {
	case RelationDescendant, RelationAncestor, RelationAncestorOrDescendant:
		return true
	}
	return false
}

// Selector is the predicate set of a rule. Every field is optional; all
// present predicates must hold for the rule to apply (logical AND). An
// empty selector matches every subject.
type Selector struct {
	// Path is either a node aggregate identifier or an absolute node
	// path. A string that does not parse as an identifier is always
	// treated as a literal path.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`

	// Relation defaults to "descendant" when Path is set.
	Relation PathRelation `json:"relation,omitempty" yaml:"relation,omitempty"`

	// NodeTypes matches subjects whose type equals, or is a sub-type of,
	// any listed type.
	NodeTypes []string `json:"node_types,omitempty" yaml:"node_types,omitempty"`

	// Workspaces matches subjects whose content stream resolves to a
	// workspace with any of the listed names.
	Workspaces []string `json:"workspaces,omitempty" yaml:"workspaces,omitempty"`

	// Dimension and Presets match subjects whose coordinate for the named
	// dimension is one of the listed preset values.
	Dimension string   `json:"dimension,omitempty" yaml:"dimension,omitempty"`
	Presets   []string `json:"presets,omitempty" yaml:"presets,omitempty"`
}

// Decision captures the result of one boolean privilege query.
type Decision struct {
	Polarity  Polarity `json:"polarity"`
	Role      string   `json:"role,omitempty"`
	Rule      string   `json:"rule,omitempty"`
	Message   string   `json:"message,omitempty"`
	Matched   bool     `json:"matched"`
	Evaluated int      `json:"evaluated_rules"`
}

// Granted reports whether the decision allows the action.
func (d Decision) Granted() bool {
	return d.Polarity == PolarityGrant
}
