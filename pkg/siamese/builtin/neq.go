package builtin

import (
	"context"
	"iter"

	"github.com/cognicore/siamese/pkg/siamese/term"
	"github.com/cognicore/siamese/pkg/siamese/unify"
)

// Neq implements neq/2: it succeeds, yielding the input bindings
// unchanged, iff its two dereferenced arguments do not unify against a
// throw-away bindings context. Wrong arity is zero solutions.
func Neq(_ context.Context, goal term.Goal, b term.Bindings) iter.Seq[term.Bindings] {
	if len(goal.Args) != 2 {
		return none()
	}
	left := b.Substitute(goal.Args[0])
	right := b.Substitute(goal.Args[1])
	if _, ok := unify.Unify(left, right, term.Bindings{}); ok {
		return none()
	}
	return one(b)
}
