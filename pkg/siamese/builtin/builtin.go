// Package builtin defines natively implemented predicates and the
// registry the resolver consults before touching the knowledge base.
package builtin

import (
	"context"
	"iter"

	"github.com/cognicore/siamese/pkg/siamese/term"
)

// Builtin is the extension contract: given a goal and the current
// bindings, produce a lazy sequence of extended bindings, one per
// solution. A builtin may suspend between elements to perform external
// work; ctx is the cancellation signal for that work and must be
// honored on every path. Failures of any kind are expressed as an
// empty or truncated sequence, never as a panic or error value.
type Builtin func(ctx context.Context, goal term.Goal, b term.Bindings) iter.Seq[term.Bindings]

// Registry maps functor names to builtins. Each engine owns its own
// registry; registration is not safe once queries are running.
type Registry struct {
	fns map[string]Builtin
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{fns: make(map[string]Builtin)}
}

// Register binds a functor name to fn, replacing any previous entry.
// A registered builtin exclusively governs goals with its functor:
// knowledge-base rules of the same name are never consulted.
func (r *Registry) Register(functor string, fn Builtin) {
	r.fns[functor] = fn
}

// Lookup returns the builtin for functor, if registered.
func (r *Registry) Lookup(functor string) (Builtin, bool) {
	fn, ok := r.fns[functor]
	return fn, ok
}

// Default returns a fresh registry carrying the reference builtins:
// neq/2 plus the suspending fetch predicates backed by client. Every
// call builds an independent registry so engines and tests stay
// isolated.
func Default(f *Fetcher) *Registry {
	r := NewRegistry()
	r.Register("neq", Neq)
	r.Register("http_get_json", f.GetJSON)
	r.Register("http_page_title", f.PageTitle)
	return r
}

// none is the empty solution sequence.
func none() iter.Seq[term.Bindings] {
	return func(func(term.Bindings) bool) {}
}

// one yields a single solution.
func one(b term.Bindings) iter.Seq[term.Bindings] {
	return func(yield func(term.Bindings) bool) {
		yield(b)
	}
}
