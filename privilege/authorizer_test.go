package privilege_test

import (
	"context"
	"reflect"
	"testing"

	"github.com/treegate/privilege-engine/privilege"
)

func TestAuthorizerNodeQueries(t *testing.T) {
	tr := newTree(t)
	node := tr.add("/sites/a/b", "Page")

	engine := compile(t, tr, privilege.Role{Name: "Editor", Rules: []privilege.Rule{
		grantRule("edit", privilege.ActionEditNode, privilege.Selector{Path: "/sites/a"}),
	}})
	authorizer := privilege.NewAuthorizer(engine)

	if !authorizer.IsGrantedToEditNode(context.Background(), node) {
		t.Errorf("editing should be granted")
	}
	// No remove rule exists anywhere: default deny.
	if authorizer.IsGrantedToRemoveNode(context.Background(), node) {
		t.Errorf("removal must fall through to default deny")
	}
}

func TestAuthorizerPropertyQueries(t *testing.T) {
	tr := newTree(t)
	node := tr.add("/sites/a/b", "Page")

	engine := compile(t, tr, privilege.Role{Name: "Editor", Rules: []privilege.Rule{
		{
			ID:         "edit_title",
			Action:     privilege.ActionEditNodeProperty,
			Polarity:   privilege.PolarityGrant,
			Matches:    privilege.Selector{Path: "/sites/a"},
			Properties: []string{"title"},
		},
		grantRule("read_all", privilege.ActionReadNodeProperty, privilege.Selector{Path: "/sites/a"}),
	}})
	authorizer := privilege.NewAuthorizer(engine)

	if !authorizer.IsGrantedToEditProperty(context.Background(), node, "title") {
		t.Errorf("governed property title should be editable")
	}
	if authorizer.IsGrantedToEditProperty(context.Background(), node, "locked") {
		t.Errorf("ungoverned property locked must be denied")
	}
	if !authorizer.IsGrantedToReadProperty(context.Background(), node, "locked") {
		t.Errorf("the read rule governs every property")
	}
}

func TestDeniedPropertiesForEditing(t *testing.T) {
	tr := newTree(t)
	node := tr.add("/sites/a/b", "Page")

	// Role A grants all properties on the subtree; role B denies one.
	roleA := privilege.Role{Name: "A", Rules: []privilege.Rule{
		grantRule("edit_all", privilege.ActionEditNodeProperty, privilege.Selector{Path: "/sites/a"}),
	}}
	roleB := privilege.Role{Name: "B", Rules: []privilege.Rule{{
		ID:         "deny_locked",
		Action:     privilege.ActionEditNodeProperty,
		Polarity:   privilege.PolarityDeny,
		Matches:    privilege.Selector{Path: "/sites/a"},
		Properties: []string{"locked"},
	}}}

	engine := compile(t, tr, roleA, roleB)
	authorizer := privilege.NewAuthorizer(engine)

	denied, err := authorizer.DeniedPropertiesForEditing(context.Background(), node)
	if err != nil {
		t.Fatalf("denied properties: %v", err)
	}
	if !reflect.DeepEqual(denied, []string{"locked"}) {
		t.Fatalf("expected [locked], got %v", denied)
	}

	// Deny dominance holds on the boolean shape too.
	if authorizer.IsGrantedToEditProperty(context.Background(), node, "locked") {
		t.Errorf("explicitly denied property must not be editable")
	}
	if !authorizer.IsGrantedToEditProperty(context.Background(), node, "title") {
		t.Errorf("property granted via the universe grant should be editable")
	}
}

func TestDeniedPropertiesWildcardOnAbstain(t *testing.T) {
	tr := newTree(t)
	node := tr.add("/sites/a/b", "Page")

	// The granting role covers only "title"; the silent role abstains on
	// the wildcard universe, so the wildcard itself ends up denied.
	granting := privilege.Role{Name: "Granting", Rules: []privilege.Rule{{
		ID:         "edit_title",
		Action:     privilege.ActionEditNodeProperty,
		Polarity:   privilege.PolarityGrant,
		Properties: []string{"title"},
	}}}
	silent := privilege.Role{Name: "Silent"}

	engine := compile(t, tr, granting, silent)
	authorizer := privilege.NewAuthorizer(engine)

	denied, err := authorizer.DeniedPropertiesForEditing(context.Background(), node)
	if err != nil {
		t.Fatalf("denied properties: %v", err)
	}
	if !reflect.DeepEqual(denied, []string{privilege.PropertyWildcard}) {
		t.Fatalf("expected the wildcard sentinel, got %v", denied)
	}
}

func TestAuthorizerNilNodeDenies(t *testing.T) {
	tr := newTree(t)
	engine := compile(t, tr, privilege.Role{Name: "Open", Rules: []privilege.Rule{
		grantRule("all", privilege.ActionEditNode, privilege.Selector{}),
	}})
	authorizer := privilege.NewAuthorizer(engine)

	if authorizer.IsGrantedToEditNode(context.Background(), nil) {
		t.Errorf("nil node must degrade to deny")
	}
	if authorizer.IsGrantedToCreateNode(context.Background(), nil, "Page") {
		t.Errorf("nil reference node must degrade to deny")
	}
}
