package memstore

import (
	"context"
	"testing"

	"github.com/cognicore/siamese/pkg/siamese/parse"
	"github.com/cognicore/siamese/pkg/siamese/term"
)

func TestReplaceAndLoad(t *testing.T) {
	ctx := context.Background()
	store := New()
	defer store.Close()

	fact, err := parse.Rule("parent(tom, john)", nil)
	if err != nil {
		t.Fatal(err)
	}
	rule, err := parse.Rule("child(?C, ?P)", []string{"parent(?P, ?C)"})
	if err != nil {
		t.Fatal(err)
	}

	if err := store.ReplaceRules(ctx, []term.Rule{fact, rule}); err != nil {
		t.Fatal(err)
	}
	if n, _ := store.RuleCount(ctx); n != 2 {
		t.Fatalf("RuleCount = %d, want 2", n)
	}

	base, err := store.LoadKnowledgeBase(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(base.Lookup("parent", 2)) != 1 || len(base.Lookup("child", 2)) != 1 {
		t.Errorf("loaded base incomplete: %v", base.Predicates())
	}
}

func TestAppendRule(t *testing.T) {
	ctx := context.Background()
	store := New()

	for _, src := range []string{"p(a)", "p(b)"} {
		r, err := parse.Rule(src, nil)
		if err != nil {
			t.Fatal(err)
		}
		if err := store.AppendRule(ctx, r); err != nil {
			t.Fatal(err)
		}
	}

	base, err := store.LoadKnowledgeBase(ctx)
	if err != nil {
		t.Fatal(err)
	}
	rules := base.Lookup("p", 1)
	if len(rules) != 2 || !term.Equal(rules[0].Head.Args[0], term.Atom("a")) {
		t.Errorf("append order lost: %v", rules)
	}
}

func TestReplaceRulesCopiesInput(t *testing.T) {
	ctx := context.Background()
	store := New()

	r, err := parse.Rule("p(a)", nil)
	if err != nil {
		t.Fatal(err)
	}
	rules := []term.Rule{r}
	if err := store.ReplaceRules(ctx, rules); err != nil {
		t.Fatal(err)
	}

	// Mutating the caller's slice must not affect the store.
	other, err := parse.Rule("p(changed)", nil)
	if err != nil {
		t.Fatal(err)
	}
	rules[0] = other

	base, err := store.LoadKnowledgeBase(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !term.Equal(base.Lookup("p", 1)[0].Head.Args[0], term.Atom("a")) {
		t.Error("store aliased the caller's slice")
	}
}
