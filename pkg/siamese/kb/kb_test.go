package kb

import (
	"testing"

	"github.com/cognicore/siamese/pkg/siamese/term"
)

func fact(functor string, args ...string) term.Rule {
	ts := make([]term.Term, len(args))
	for i, a := range args {
		ts[i] = term.Atom(a)
	}
	return term.Rule{Head: term.Goal{Functor: functor, Args: ts}}
}

func TestLookupPreservesDeclarationOrder(t *testing.T) {
	base := New()
	base.Add(fact("parent", "tom", "john"))
	base.Add(fact("parent", "tom", "mary"))
	base.Add(fact("parent", "tom", "john")) // duplicates are kept

	rules := base.Lookup("parent", 2)
	if len(rules) != 3 {
		t.Fatalf("expected 3 rules, got %d", len(rules))
	}
	wantSecond := term.Atom("mary")
	if !term.Equal(rules[1].Head.Args[1], wantSecond) {
		t.Errorf("declaration order lost: %v", rules)
	}
}

func TestLookupDistinguishesArity(t *testing.T) {
	base := New()
	base.Add(fact("p", "a"))
	base.Add(fact("p", "a", "b"))

	if got := len(base.Lookup("p", 1)); got != 1 {
		t.Errorf("p/1 rules = %d, want 1", got)
	}
	if got := len(base.Lookup("p", 2)); got != 1 {
		t.Errorf("p/2 rules = %d, want 1", got)
	}
	if rules := base.Lookup("p", 3); rules != nil {
		t.Errorf("p/3 should have no rules, got %v", rules)
	}
}

func TestLookupUnknownPredicate(t *testing.T) {
	base := New()
	if rules := base.Lookup("nothing", 1); len(rules) != 0 {
		t.Errorf("unknown predicate should yield no rules, got %v", rules)
	}
}

func TestPredicatesSorted(t *testing.T) {
	base := New()
	base.Add(fact("zebra", "a"))
	base.Add(fact("apple", "a", "b"))
	base.Add(fact("apple", "a"))

	preds := base.Predicates()
	want := []Indicator{
		{Functor: "apple", Arity: 1},
		{Functor: "apple", Arity: 2},
		{Functor: "zebra", Arity: 1},
	}
	if len(preds) != len(want) {
		t.Fatalf("got %v", preds)
	}
	for i := range want {
		if preds[i] != want[i] {
			t.Errorf("preds[%d] = %v, want %v", i, preds[i], want[i])
		}
	}
	if base.Len() != 3 {
		t.Errorf("Len = %d, want 3", base.Len())
	}
}
