package term

// Bindings is an immutable variable-to-term substitution. Bind returns
// a new value sharing structure with the old one, which is what makes
// backtracking correct without manual undo: each search branch holds
// its own Bindings and sibling branches never observe its extensions.
//
// The zero value is the empty substitution.
type Bindings struct {
	top *frame
}

type frame struct {
	v    Variable
	t    Term
	next *frame
}

// Bind returns a new Bindings extended with v -> t. The receiver is
// left untouched.
func (b Bindings) Bind(v Variable, t Term) Bindings {
	return Bindings{top: &frame{v: v, t: t, next: b.top}}
}

// Lookup returns the term directly bound to v, if any. It does not
// follow chains; use Walk for dereferencing.
func (b Bindings) Lookup(v Variable) (Term, bool) {
	for f := b.top; f != nil; f = f.next {
		if f.v == v {
			return f.t, true
		}
	}
	return nil, false
}

// Len returns the number of bound variables.
func (b Bindings) Len() int {
	n := 0
	for f := b.top; f != nil; f = f.next {
		n++
	}
	return n
}

// Walk dereferences t one level deep: variables are followed through
// binding chains until an unbound variable or a non-variable term is
// reached. Arguments of a Compound are not walked.
func (b Bindings) Walk(t Term) Term {
	for {
		v, ok := t.(Variable)
		if !ok {
			return t
		}
		bound, ok := b.Lookup(v)
		if !ok {
			return v
		}
		t = bound
	}
}

// Substitute replaces every variable in t with its fully dereferenced
// value, leaving unbound variables in place. The result is ground or
// partially ground, and Substitute is idempotent: re-applying it with
// the same bindings changes nothing.
func (b Bindings) Substitute(t Term) Term {
	t = b.Walk(t)
	c, ok := t.(Compound)
	if !ok {
		return t
	}
	args := make([]Term, len(c.Args))
	for i, a := range c.Args {
		args[i] = b.Substitute(a)
	}
	return Compound{Functor: c.Functor, Args: args}
}

// SubstituteGoal applies Substitute to every argument of g.
func (b Bindings) SubstituteGoal(g Goal) Goal {
	args := make([]Term, len(g.Args))
	for i, a := range g.Args {
		args[i] = b.Substitute(a)
	}
	return Goal{Functor: g.Functor, Args: args}
}
