// Package kb holds the in-memory knowledge base: rules indexed by
// functor and arity, in declaration order.
package kb

import (
	"sort"

	"github.com/cognicore/siamese/pkg/siamese/term"
)

// Indicator identifies a predicate by functor name and arity.
type Indicator struct {
	Functor string
	Arity   int
}

// KnowledgeBase maps predicate indicators to their rules. It is built
// once by a loader and read-only during query execution, so concurrent
// queries may share one instance.
type KnowledgeBase struct {
	rules map[Indicator][]term.Rule
}

// New returns an empty knowledge base.
func New() *KnowledgeBase {
	return &KnowledgeBase{rules: make(map[Indicator][]term.Rule)}
}

// Add appends a rule to its predicate's alternatives. Declaration order
// is the order alternatives are tried during resolution.
func (kb *KnowledgeBase) Add(r term.Rule) {
	ind := Indicator{Functor: r.Head.Functor, Arity: len(r.Head.Args)}
	kb.rules[ind] = append(kb.rules[ind], r)
}

// Lookup returns the rules for (functor, arity) in declaration order,
// or nil if the predicate is unknown. Callers must not modify the
// returned slice.
func (kb *KnowledgeBase) Lookup(functor string, arity int) []term.Rule {
	return kb.rules[Indicator{Functor: functor, Arity: arity}]
}

// Predicates returns the known indicators sorted by functor then arity.
func (kb *KnowledgeBase) Predicates() []Indicator {
	out := make([]Indicator, 0, len(kb.rules))
	for ind := range kb.rules {
		out = append(out, ind)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Functor != out[j].Functor {
			return out[i].Functor < out[j].Functor
		}
		return out[i].Arity < out[j].Arity
	})
	return out
}

// Len returns the total number of rules.
func (kb *KnowledgeBase) Len() int {
	n := 0
	for _, rs := range kb.rules {
		n += len(rs)
	}
	return n
}
