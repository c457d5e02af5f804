// Package unify implements structural unification over terms.
package unify

import (
	"github.com/cognicore/siamese/pkg/siamese/term"
)

// Unify attempts to make a and b equal under an extension of b0.
// On success it returns the extended bindings and true; on failure the
// second result is false and the first is meaningless. The input
// bindings are never mutated.
//
// When two distinct unbound variables meet, the left term's variable is
// bound to the right one. Bindings that would make a variable contain
// itself are rejected (occurs check).
func Unify(a, b term.Term, b0 term.Bindings) (term.Bindings, bool) {
	a = b0.Walk(a)
	b = b0.Walk(b)

	if av, ok := a.(term.Variable); ok {
		if bv, ok := b.(term.Variable); ok && av == bv {
			return b0, true
		}
		return bindVar(av, b, b0)
	}
	if bv, ok := b.(term.Variable); ok {
		return bindVar(bv, a, b0)
	}

	switch x := a.(type) {
	case term.Atom, term.Number, term.Text, term.Structured:
		if term.Equal(a, b) {
			return b0, true
		}
		return term.Bindings{}, false
	case term.Compound:
		y, ok := b.(term.Compound)
		if !ok || x.Functor != y.Functor || len(x.Args) != len(y.Args) {
			return term.Bindings{}, false
		}
		out := b0
		for i := range x.Args {
			var ok bool
			out, ok = Unify(x.Args[i], y.Args[i], out)
			if !ok {
				return term.Bindings{}, false
			}
		}
		return out, true
	}
	return term.Bindings{}, false
}

func bindVar(v term.Variable, t term.Term, b term.Bindings) (term.Bindings, bool) {
	if occurs(v, t, b) {
		return term.Bindings{}, false
	}
	return b.Bind(v, t), true
}

// occurs reports whether v appears anywhere inside t under b. Binding v
// to such a term would create a cyclic substitution.
func occurs(v term.Variable, t term.Term, b term.Bindings) bool {
	t = b.Walk(t)
	switch x := t.(type) {
	case term.Variable:
		return x == v
	case term.Compound:
		for _, a := range x.Args {
			if occurs(v, a, b) {
				return true
			}
		}
	}
	return false
}
