package privilege

import (
	"context"
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidAction reports a privilege query for an action kind the engine
// does not know. This is a programming error on the caller's side, never a
// policy outcome.
var ErrInvalidAction = errors.New("invalid action kind")

// Engine evaluates compiled privilege rules against subjects. It is
// immutable after compilation and safe for concurrent use as long as the
// injected collaborators reflect a consistent snapshot per call.
type Engine struct {
	defaultPolarity Polarity
	roles           []*compiledRole
	locator         NodeLocator
	workspaces      WorkspaceDirectory
	types           NodeTypeRegistry
}

// EngineOption configures compilation behaviour.
type EngineOption func(*engineConfig)

type engineConfig struct {
	defaultPolarity Polarity
	locator         NodeLocator
	workspaces      WorkspaceDirectory
	types           NodeTypeRegistry
}

// WithDefaultPolarity defines the fallback polarity used when no rule
// matches at all.
func WithDefaultPolarity(p Polarity) EngineOption {
	return func(cfg *engineConfig) {
		cfg.defaultPolarity = p
	}
}

// WithNodeLocator injects the locator used to resolve identifier operands
// and subject paths.
func WithNodeLocator(locator NodeLocator) EngineOption {
	return func(cfg *engineConfig) {
		cfg.locator = locator
	}
}

// WithWorkspaceDirectory injects the directory backing workspace
// predicates.
func WithWorkspaceDirectory(directory WorkspaceDirectory) EngineOption {
	return func(cfg *engineConfig) {
		cfg.workspaces = directory
	}
}

// WithNodeTypeRegistry injects the registry backing node-type predicates
// and the creation universe.
func WithNodeTypeRegistry(registry NodeTypeRegistry) EngineOption {
	return func(cfg *engineConfig) {
		cfg.types = registry
	}
}

// CompileDocument converts a privilege document into an executable engine.
func CompileDocument(doc Document, opts ...EngineOption) (*Engine, error) {
	cfg := engineConfig{
		defaultPolarity: PolarityDeny,
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	engine := &Engine{
		defaultPolarity: cfg.defaultPolarity,
		locator:         cfg.locator,
		workspaces:      cfg.workspaces,
		types:           cfg.types,
	}

	if doc.DefaultPolarity != nil {
		engine.defaultPolarity = *doc.DefaultPolarity
	}

	if !engine.defaultPolarity.IsValid() {
		return nil, fmt.Errorf("invalid default polarity %q", engine.defaultPolarity)
	}

	roles := make([]*compiledRole, 0, len(doc.Roles))
	for idx := range doc.Roles {
		role := doc.Roles[idx]
		cr, err := compileRole(role)
		if err != nil {
			return nil, fmt.Errorf("compile role %q: %w", role.Name, err)
		}
		roles = append(roles, cr)
	}

	engine.roles = roles

	return engine, nil
}

// CompileRoles is a convenience helper when you already materialised roles.
func CompileRoles(roles []Role, opts ...EngineOption) (*Engine, error) {
	doc := Document{Roles: roles}
	return CompileDocument(doc, opts...)
}

// CompileSource compiles the current role snapshot of an external role
// source.
func CompileSource(source RoleSource, opts ...EngineOption) (*Engine, error) {
	return CompileRoles(source.Roles(), opts...)
}

type compiledRole struct {
	role  Role
	rules map[ActionKind][]*compiledRule
}

type compiledRule struct {
	rule     Rule
	selector compiledSelector
}

func compileRole(r Role) (*compiledRole, error) {
	if r.Name == "" {
		return nil, errors.New("role name is required")
	}

	cr := &compiledRole{
		role:  r,
		rules: make(map[ActionKind][]*compiledRule),
	}

	for idx := range r.Rules {
		rule := r.Rules[idx]

		if rule.ID == "" {
			rule.ID = fmt.Sprintf("%s_rule_%d", r.Name, idx)
		}

		if !rule.Action.IsValid() {
			return nil, fmt.Errorf("rule %q has invalid action %q", rule.ID, rule.Action)
		}

		if !rule.Polarity.IsValid() {
			return nil, fmt.Errorf("rule %q has invalid polarity %q", rule.ID, rule.Polarity)
		}

		if rule.Matches.Relation != "" && !rule.Matches.Relation.IsValid() {
			return nil, fmt.Errorf("rule %q has invalid path relation %q", rule.ID, rule.Matches.Relation)
		}

		if len(rule.Matches.Presets) > 0 && rule.Matches.Dimension == "" {
			return nil, fmt.Errorf("rule %q lists dimension presets without a dimension", rule.ID)
		}

		if len(rule.NodeTypes) > 0 && rule.Action != ActionCreateNode {
			return nil, fmt.Errorf("rule %q governs node types but is not a %s rule", rule.ID, ActionCreateNode)
		}

		if len(rule.Properties) > 0 && !isPropertyAction(rule.Action) {
			return nil, fmt.Errorf("rule %q governs properties but is not a property rule", rule.ID)
		}

		compiled := &compiledRule{
			rule:     rule,
			selector: compileSelector(rule.Matches),
		}

		cr.rules[rule.Action] = append(cr.rules[rule.Action], compiled)
	}

	return cr, nil
}

func isPropertyAction(kind ActionKind) bool {
	return kind == ActionReadNodeProperty || kind == ActionEditNodeProperty
}

// governs reports whether the rule covers the concrete item carried by the
// subject (the created node type or the property name). Subjects without
// an item are bulk wildcards and are always covered. Governed lists match
// by exact name; sub-type expansion applies only to selector predicates.
func (r *compiledRule) governs(subject Subject) bool {
	switch s := subject.(type) {
	case CreateNodeSubject:
		return governsItem(r.rule.NodeTypes, s.NodeType)
	case PropertySubject:
		return governsItem(r.rule.Properties, s.Property)
	default:
		return true
	}
}

func governsItem(governed []string, item string) bool {
	if len(governed) == 0 || item == "" {
		return true
	}
	for _, candidate := range governed {
		if candidate == item {
			return true
		}
	}
	return false
}

// governedItems returns the item set a matching rule votes on: its
// explicit governed list, or the whole universe when the list is empty.
func (r *compiledRule) governedItems(universe []string) []string {
	var list []string
	switch r.rule.Action {
	case ActionCreateNode:
		list = r.rule.NodeTypes
	case ActionReadNodeProperty, ActionEditNodeProperty:
		list = r.rule.Properties
	}
	if len(list) == 0 {
		return universe
	}
	return list
}

// Decide computes the single boolean outcome for an action on a subject.
// Any matching DENY rule wins, then any matching GRANT rule, then the
// default polarity. The boolean result is independent of role order.
func (e *Engine) Decide(_ context.Context, kind ActionKind, subject Subject) (Decision, error) {
	if !kind.IsValid() {
		return Decision{}, fmt.Errorf("%w: %q", ErrInvalidAction, kind)
	}

	node := subjectNodeOf(subject)
	if node == nil {
		return Decision{
			Polarity: PolarityDeny,
			Message:  "no subject node; denying",
		}, nil
	}

	ev := newEvaluation(e, node)

	var grantDecision Decision
	var hasGrantDecision bool
	evaluated := 0

	for _, role := range e.roles {
		for _, rule := range role.rules[kind] {
			evaluated++

			if !rule.governs(subject) || !rule.selector.matches(ev) {
				continue
			}

			matchDecision := Decision{
				Polarity:  rule.rule.Polarity,
				Role:      role.role.Name,
				Rule:      rule.rule.ID,
				Message:   rule.rule.Description,
				Matched:   true,
				Evaluated: evaluated,
			}

			if rule.rule.Polarity == PolarityDeny {
				return matchDecision, nil
			}

			if !hasGrantDecision {
				grantDecision = matchDecision
				hasGrantDecision = true
			}
		}
	}

	if hasGrantDecision {
		grantDecision.Evaluated = evaluated
		return grantDecision, nil
	}

	return Decision{
		Polarity:  e.defaultPolarity,
		Message:   "no rule matched; returning default polarity",
		Evaluated: evaluated,
	}, nil
}

// DeniedItems computes the effective denied subset of a candidate universe
// for a bulk query. Matching rules vote their governed item set into
// GRANTED or DENIED by polarity; a role with no matching rule abstains on
// the whole universe. The effective denied set is
//
//	(ABSTAINED − GRANTED) ∪ DENIED
//
// so an item nobody granted is implicitly denied as soon as one role
// abstained, and an explicit denial can never be lifted by a grant. The
// result is sorted; callers must treat it as a set.
func (e *Engine) DeniedItems(_ context.Context, kind ActionKind, subject Subject, universe []string) ([]string, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAction, kind)
	}

	node := subjectNodeOf(subject)
	if node == nil {
		all := make(map[string]struct{}, len(universe))
		addAll(all, universe)
		return sortedSet(all), nil
	}

	ev := newEvaluation(e, node)

	granted := make(map[string]struct{})
	denied := make(map[string]struct{})
	abstained := make(map[string]struct{})

	for _, role := range e.roles {
		roleMatched := false

		for _, rule := range role.rules[kind] {
			if !rule.selector.matches(ev) {
				continue
			}
			roleMatched = true

			items := rule.governedItems(universe)
			if rule.rule.Polarity == PolarityDeny {
				addAll(denied, items)
			} else {
				addAll(granted, items)
			}
		}

		if !roleMatched {
			addAll(abstained, universe)
		}
	}

	result := make(map[string]struct{}, len(denied))
	for item := range abstained {
		if _, ok := granted[item]; !ok {
			result[item] = struct{}{}
		}
	}
	for item := range denied {
		result[item] = struct{}{}
	}

	return sortedSet(result), nil
}

func addAll(set map[string]struct{}, items []string) {
	for _, item := range items {
		set[item] = struct{}{}
	}
}

func sortedSet(set map[string]struct{}) []string {
	items := make([]string, 0, len(set))
	for item := range set {
		items = append(items, item)
	}
	sort.Strings(items)
	return items
}
