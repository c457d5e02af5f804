// Package siamese is a logic-programming runtime: queries are evaluated
// against a knowledge base of facts and rules by unification and
// backward-chaining resolution, and host code extends the predicate set
// with native builtins, some of which suspend for external work.
package siamese

import (
	"context"
	"iter"

	"go.uber.org/zap"

	"github.com/cognicore/siamese/pkg/siamese/builtin"
	"github.com/cognicore/siamese/pkg/siamese/kb"
	"github.com/cognicore/siamese/pkg/siamese/solve"
	"github.com/cognicore/siamese/pkg/siamese/term"
	"github.com/cognicore/siamese/pkg/siamese/trace"
)

// RuleEngine is the query facade. It owns one knowledge base and one
// builtin registry for its lifetime; both are read-only while queries
// run, so concurrent queries against the same engine are safe.
type RuleEngine struct {
	kb       *kb.KnowledgeBase
	builtins *builtin.Registry
	resolver *solve.Resolver
	log      *zap.Logger
}

// Options configures a RuleEngine.
type Options struct {
	KB       *kb.KnowledgeBase
	Builtins *builtin.Registry
	Logger   *zap.Logger
}

// New creates a RuleEngine. A nil KB is treated as empty; a nil
// registry gets the default builtins; a nil logger disables tracing.
func New(opts Options) *RuleEngine {
	if opts.KB == nil {
		opts.KB = kb.New()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Builtins == nil {
		opts.Builtins = builtin.Default(builtin.NewFetcher(nil, opts.Logger))
	}
	return &RuleEngine{
		kb:       opts.KB,
		builtins: opts.Builtins,
		resolver: solve.New(opts.KB, opts.Builtins, opts.Logger),
		log:      opts.Logger,
	}
}

// Builtins exposes the engine's registry so callers can add predicates
// before issuing queries. Registration during query execution is not
// safe.
func (e *RuleEngine) Builtins() *builtin.Registry { return e.builtins }

// KB exposes the engine's knowledge base.
func (e *RuleEngine) KB() *kb.KnowledgeBase { return e.kb }

// Solution maps a query-time variable placeholder (such as "?S") to its
// fully dereferenced value.
type Solution map[string]term.Term

// Query lazily enumerates the solutions of functor(args...). String
// arguments of the form "?Name" become query variables; other strings
// become atoms, Go numbers become Numbers, term.Term values pass
// through unchanged, and anything else is wrapped as Structured data.
//
// Each call uses an independent variable namespace and empty bindings.
// Stopping early cancels the underlying search, including any in-flight
// suspending builtin.
func (e *RuleEngine) Query(ctx context.Context, functor string, args ...any) iter.Seq[Solution] {
	goal, vars := buildGoal(functor, args)
	log := e.log.With(
		zap.String("query_id", trace.QueryID()),
		zap.String("goal", goal.String()))

	return func(yield func(Solution) bool) {
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		log.Debug("query start")
		count := 0
		for b := range e.resolver.Solve(ctx, []term.Goal{goal}, term.Bindings{}) {
			sol := make(Solution, len(vars))
			for _, v := range vars {
				sol["?"+v.Name] = b.Substitute(v)
			}
			count++
			if !yield(sol) {
				log.Debug("query stopped by consumer", zap.Int("solutions", count))
				return
			}
		}
		log.Debug("query exhausted", zap.Int("solutions", count))
	}
}

// QueryOne returns the first solution of Query, or false if there is
// none. The underlying search is cancelled as soon as the result is
// known.
func (e *RuleEngine) QueryOne(ctx context.Context, functor string, args ...any) (Solution, bool) {
	for sol := range e.Query(ctx, functor, args...) {
		return sol, true
	}
	return nil, false
}

// Exists reports whether the query has at least one solution.
func (e *RuleEngine) Exists(ctx context.Context, functor string, args ...any) bool {
	_, ok := e.QueryOne(ctx, functor, args...)
	return ok
}

// buildGoal converts caller arguments into terms, collecting the query
// variables in first-appearance order. Repeated placeholders share one
// variable identity.
func buildGoal(functor string, args []any) (term.Goal, []term.Variable) {
	terms := make([]term.Term, len(args))
	var vars []term.Variable
	seen := make(map[string]bool)

	for i, arg := range args {
		switch v := arg.(type) {
		case string:
			if len(v) > 1 && v[0] == '?' {
				qv := term.Variable{Name: v[1:]}
				terms[i] = qv
				if !seen[qv.Name] {
					seen[qv.Name] = true
					vars = append(vars, qv)
				}
				continue
			}
			terms[i] = term.Atom(v)
		case term.Term:
			terms[i] = v
		case int:
			terms[i] = term.Number(v)
		case int64:
			terms[i] = term.Number(v)
		case float64:
			terms[i] = term.Number(v)
		default:
			terms[i] = term.Structured{Value: v}
		}
	}
	return term.Goal{Functor: functor, Args: terms}, vars
}
