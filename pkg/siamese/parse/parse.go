// Package parse reads the textual form of terms and goals used by
// knowledge documents, the rule store and the CLI.
//
// Grammar:
//
//	goal     := name | name '(' term {',' term} ')'
//	term     := number | string | variable | name | compound
//	variable := '?' name
//	string   := double-quoted, Go escape rules
//	name     := letter { letter | digit | '_' | '-' }
//
// Bare names are atoms; quoted strings are text; numeric literals are
// numbers; nesting is allowed anywhere a term is.
package parse

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/cognicore/siamese/pkg/siamese/internalerr"
	"github.com/cognicore/siamese/pkg/siamese/term"
)

// Goal parses a predicate invocation such as "parent(tom, ?X)".
func Goal(s string) (term.Goal, error) {
	p := &parser{src: s}
	g, err := p.goal()
	if err != nil {
		return term.Goal{}, err
	}
	p.ws()
	if !p.eof() {
		return term.Goal{}, p.errf("unexpected trailing input")
	}
	return g, nil
}

// Term parses a single term such as `42`, `"hello"`, `?X` or
// `point(1, 2)`.
func Term(s string) (term.Term, error) {
	p := &parser{src: s}
	t, err := p.term()
	if err != nil {
		return nil, err
	}
	p.ws()
	if !p.eof() {
		return nil, p.errf("unexpected trailing input")
	}
	return t, nil
}

// Rule parses a head goal and its body goals into a rule. An empty body
// yields a fact.
func Rule(head string, body []string) (term.Rule, error) {
	h, err := Goal(head)
	if err != nil {
		return term.Rule{}, fmt.Errorf("head %q: %w", head, err)
	}
	r := term.Rule{Head: h}
	for _, src := range body {
		g, err := Goal(src)
		if err != nil {
			return term.Rule{}, fmt.Errorf("body goal %q: %w", src, err)
		}
		r.Body = append(r.Body, g)
	}
	return r, nil
}

type parser struct {
	src string
	pos int
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) ws() {
	for !p.eof() && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

func (p *parser) errf(format string, args ...any) error {
	return fmt.Errorf("%w: %s at offset %d in %q", internalerr.ErrSyntax, fmt.Sprintf(format, args...), p.pos, p.src)
}

func (p *parser) goal() (term.Goal, error) {
	p.ws()
	name, err := p.name()
	if err != nil {
		return term.Goal{}, err
	}
	g := term.Goal{Functor: name}
	p.ws()
	if p.peek() != '(' {
		return g, nil
	}
	args, err := p.args()
	if err != nil {
		return term.Goal{}, err
	}
	g.Args = args
	return g, nil
}

func (p *parser) term() (term.Term, error) {
	p.ws()
	switch c := p.peek(); {
	case c == '?':
		p.pos++
		name, err := p.name()
		if err != nil {
			return nil, err
		}
		return term.Variable{Name: name}, nil
	case c == '"':
		return p.text()
	case c == '-' || c == '+' || unicode.IsDigit(rune(c)):
		return p.number()
	case isNameStart(c):
		name, err := p.name()
		if err != nil {
			return nil, err
		}
		p.ws()
		if p.peek() != '(' {
			return term.Atom(name), nil
		}
		args, err := p.args()
		if err != nil {
			return nil, err
		}
		return term.Compound{Functor: name, Args: args}, nil
	default:
		return nil, p.errf("expected a term")
	}
}

// args consumes '(' term {',' term} ')'.
func (p *parser) args() ([]term.Term, error) {
	p.pos++ // '('
	p.ws()
	if p.peek() == ')' {
		p.pos++
		return nil, nil
	}
	var args []term.Term
	for {
		t, err := p.term()
		if err != nil {
			return nil, err
		}
		args = append(args, t)
		p.ws()
		switch p.peek() {
		case ',':
			p.pos++
		case ')':
			p.pos++
			return args, nil
		default:
			return nil, p.errf("expected ',' or ')'")
		}
	}
}

func (p *parser) text() (term.Term, error) {
	start := p.pos
	p.pos++ // opening quote
	for !p.eof() {
		switch p.src[p.pos] {
		case '\\':
			p.pos += 2
		case '"':
			p.pos++
			s, err := strconv.Unquote(p.src[start:p.pos])
			if err != nil {
				return nil, p.errf("bad string literal: %v", err)
			}
			return term.Text(s), nil
		default:
			p.pos++
		}
	}
	return nil, p.errf("unterminated string literal")
}

func (p *parser) number() (term.Term, error) {
	start := p.pos
	if c := p.peek(); c == '-' || c == '+' {
		p.pos++
	}
	for !p.eof() && strings.ContainsRune("0123456789.eE+-", rune(p.src[p.pos])) {
		// A sign is only part of the literal after an exponent marker.
		if c := p.src[p.pos]; (c == '+' || c == '-') && p.pos > start {
			prev := p.src[p.pos-1]
			if prev != 'e' && prev != 'E' {
				break
			}
		}
		p.pos++
	}
	f, err := strconv.ParseFloat(p.src[start:p.pos], 64)
	if err != nil {
		return nil, p.errf("bad number literal: %v", err)
	}
	return term.Number(f), nil
}

func (p *parser) name() (string, error) {
	start := p.pos
	if !isNameStart(p.peek()) {
		return "", p.errf("expected a name")
	}
	p.pos++
	for !p.eof() && isNameRune(p.src[p.pos]) {
		p.pos++
	}
	return p.src[start:p.pos], nil
}

func isNameStart(c byte) bool {
	return c == '_' || unicode.IsLetter(rune(c))
}

func isNameRune(c byte) bool {
	return c == '_' || c == '-' || unicode.IsLetter(rune(c)) || unicode.IsDigit(rune(c))
}
