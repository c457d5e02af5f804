// Package term defines the value model of the engine: the Term sum type,
// goals, rules, and the persistent Bindings substitution.
package term

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Term is the tagged value representation shared by the whole engine.
// Exactly six variants implement it: Atom, Number, Text, Variable,
// Compound and Structured. Terms are immutable values.
type Term interface {
	fmt.Stringer
	isTerm()
}

// Atom is a symbolic constant such as tom or parent.
type Atom string

// Number is a numeric constant. Integers and floats share one variant.
type Number float64

// Text is a string constant, distinct from Atom by type.
type Text string

// Variable is a named placeholder. Epoch distinguishes the variables of
// separate rule instantiations so that two uses of the same rule never
// share identities (standardizing apart). Source-level variables carry
// epoch zero.
type Variable struct {
	Name  string
	Epoch uint64
}

// Compound is a functor applied to an ordered sequence of arguments.
type Compound struct {
	Functor string
	Args    []Term
}

// Structured wraps opaque nested data produced by a builtin, typically
// decoded JSON (maps, slices, scalars).
type Structured struct {
	Value any
}

func (Atom) isTerm()       {}
func (Number) isTerm()     {}
func (Text) isTerm()       {}
func (Variable) isTerm()   {}
func (Compound) isTerm()   {}
func (Structured) isTerm() {}

func (a Atom) String() string { return string(a) }

func (n Number) String() string {
	return strconv.FormatFloat(float64(n), 'g', -1, 64)
}

func (t Text) String() string { return strconv.Quote(string(t)) }

func (v Variable) String() string { return "?" + v.Name }

func (c Compound) String() string {
	var sb strings.Builder
	sb.WriteString(c.Functor)
	sb.WriteByte('(')
	for i, arg := range c.Args {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(arg.String())
	}
	sb.WriteByte(')')
	return sb.String()
}

func (s Structured) String() string {
	data, err := json.Marshal(s.Value)
	if err != nil {
		return fmt.Sprintf("%v", s.Value)
	}
	return string(data)
}

// Equal reports structural equality of two terms. Atoms, Numbers and
// Texts compare by value and type, Variables by name and epoch,
// Compounds by functor, arity and pairwise argument equality.
func Equal(a, b Term) bool {
	switch x := a.(type) {
	case Atom:
		y, ok := b.(Atom)
		return ok && x == y
	case Number:
		y, ok := b.(Number)
		return ok && x == y
	case Text:
		y, ok := b.(Text)
		return ok && x == y
	case Variable:
		y, ok := b.(Variable)
		return ok && x == y
	case Compound:
		y, ok := b.(Compound)
		if !ok || x.Functor != y.Functor || len(x.Args) != len(y.Args) {
			return false
		}
		for i := range x.Args {
			if !Equal(x.Args[i], y.Args[i]) {
				return false
			}
		}
		return true
	case Structured:
		y, ok := b.(Structured)
		return ok && reflect.DeepEqual(x.Value, y.Value)
	}
	return false
}

// Goal is a predicate invocation: a functor applied to argument terms.
type Goal struct {
	Functor string
	Args    []Term
}

// Term returns the goal as a Compound so it can be unified against a
// rule head.
func (g Goal) Term() Compound {
	return Compound{Functor: g.Functor, Args: g.Args}
}

func (g Goal) String() string { return g.Term().String() }

// Rule is a head goal plus an ordered body. An empty body is a fact.
type Rule struct {
	Head Goal
	Body []Goal
}

func (r Rule) String() string {
	if len(r.Body) == 0 {
		return r.Head.String()
	}
	parts := make([]string, len(r.Body))
	for i, g := range r.Body {
		parts[i] = g.String()
	}
	return r.Head.String() + " :- " + strings.Join(parts, ", ")
}

// Fresh returns a copy of the rule with every variable stamped with the
// given epoch, so the copy shares no identities with any other
// instantiation of the same rule.
func (r Rule) Fresh(epoch uint64) Rule {
	out := Rule{Head: freshGoal(r.Head, epoch)}
	if len(r.Body) > 0 {
		out.Body = make([]Goal, len(r.Body))
		for i, g := range r.Body {
			out.Body[i] = freshGoal(g, epoch)
		}
	}
	return out
}

func freshGoal(g Goal, epoch uint64) Goal {
	args := make([]Term, len(g.Args))
	for i, a := range g.Args {
		args[i] = freshTerm(a, epoch)
	}
	return Goal{Functor: g.Functor, Args: args}
}

func freshTerm(t Term, epoch uint64) Term {
	switch x := t.(type) {
	case Variable:
		return Variable{Name: x.Name, Epoch: epoch}
	case Compound:
		args := make([]Term, len(x.Args))
		for i, a := range x.Args {
			args[i] = freshTerm(a, epoch)
		}
		return Compound{Functor: x.Functor, Args: args}
	default:
		return t
	}
}
