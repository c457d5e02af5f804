// Package solve implements the depth-first backtracking resolver.
package solve

import (
	"context"
	"iter"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/cognicore/siamese/pkg/siamese/builtin"
	"github.com/cognicore/siamese/pkg/siamese/kb"
	"github.com/cognicore/siamese/pkg/siamese/term"
	"github.com/cognicore/siamese/pkg/siamese/unify"
)

// Resolver reduces goal sequences against a knowledge base and a
// builtin registry. Both are read-only during resolution, so one
// resolver serves concurrent queries; the epoch counter keeps their
// rule instantiations apart.
type Resolver struct {
	kb       *kb.KnowledgeBase
	builtins *builtin.Registry
	log      *zap.Logger
	epoch    atomic.Uint64
}

// New builds a resolver. A nil registry means no builtins; a nil logger
// disables tracing.
func New(base *kb.KnowledgeBase, reg *builtin.Registry, log *zap.Logger) *Resolver {
	if reg == nil {
		reg = builtin.NewRegistry()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{kb: base, builtins: reg, log: log}
}

// Solve lazily enumerates every bindings extension under which all
// goals hold, in depth-first declaration order. The sequence may be
// infinite for recursive knowledge bases; the consumer controls how far
// it is advanced and may stop at any element. Cancelling ctx ends
// enumeration between alternatives and reaches into suspended builtins.
func (r *Resolver) Solve(ctx context.Context, goals []term.Goal, b term.Bindings) iter.Seq[term.Bindings] {
	return func(yield func(term.Bindings) bool) {
		r.solve(ctx, goals, b, yield)
	}
}

// solve reports false when the consumer stopped pulling or ctx was
// cancelled, so callers unwind instead of trying further alternatives.
func (r *Resolver) solve(ctx context.Context, goals []term.Goal, b term.Bindings, yield func(term.Bindings) bool) bool {
	if ctx.Err() != nil {
		return false
	}
	if len(goals) == 0 {
		return yield(b)
	}

	first, rest := goals[0], goals[1:]

	// A registered builtin exclusively governs its functor; rules of
	// the same name are never consulted.
	if fn, ok := r.builtins.Lookup(first.Functor); ok {
		for nb := range fn(ctx, first, b) {
			if !r.solve(ctx, rest, nb, yield) {
				return false
			}
		}
		return ctx.Err() == nil
	}

	rules := r.kb.Lookup(first.Functor, len(first.Args))
	if len(rules) == 0 {
		// Closed world: an unknown predicate is false, not an error.
		r.log.Debug("no rules or builtin for goal", zap.String("goal", first.String()))
		return true
	}

	goalTerm := first.Term()
	for _, rule := range rules {
		if ctx.Err() != nil {
			return false
		}
		// Standardize apart: every attempt gets fresh variable
		// identities, and starts from the caller's bindings so failed
		// branches leak nothing into their siblings.
		fresh := rule.Fresh(r.epoch.Add(1))
		nb, ok := unify.Unify(goalTerm, fresh.Head.Term(), b)
		if !ok {
			continue
		}
		if !r.solve(ctx, append(fresh.Body, rest...), nb, yield) {
			return false
		}
	}
	return true
}
