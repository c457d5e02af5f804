// Package config loads declarative knowledge documents into a
// knowledge base. This is the only place where errors escape to the
// caller: a document that fails to load aborts engine setup rather
// than degrading silently.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/siamese/pkg/siamese/internalerr"
	"github.com/cognicore/siamese/pkg/siamese/kb"
	"github.com/cognicore/siamese/pkg/siamese/parse"
	"github.com/cognicore/siamese/pkg/siamese/term"
)

// Document is the YAML shape of a knowledge file:
//
//	facts:
//	  - parent(tom, john)
//	  - parent(tom, mary)
//	rules:
//	  - head: sibling(?X, ?Y)
//	    body:
//	      - parent(?P, ?X)
//	      - parent(?P, ?Y)
//	      - neq(?X, ?Y)
type Document struct {
	Facts []string   `yaml:"facts"`
	Rules []RuleSpec `yaml:"rules"`
}

// RuleSpec is one rule entry: a head goal and an ordered body.
type RuleSpec struct {
	Head string   `yaml:"head"`
	Body []string `yaml:"body"`
}

// LoadKnowledge reads a YAML knowledge document from path.
func LoadKnowledge(path string) (*kb.KnowledgeBase, error) {
	rules, err := LoadRules(path)
	if err != nil {
		return nil, err
	}
	return build(rules), nil
}

// LoadRules reads a YAML knowledge document and returns its rules in
// document order, facts first.
func LoadRules(path string) ([]term.Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read knowledge file: %w", err)
	}
	rules, err := ParseRules(data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return rules, nil
}

// ParseKnowledge builds a knowledge base from YAML bytes. Facts come
// first, then rules, each in document order; that order is the order
// resolution tries alternatives.
func ParseKnowledge(data []byte) (*kb.KnowledgeBase, error) {
	rules, err := ParseRules(data)
	if err != nil {
		return nil, err
	}
	return build(rules), nil
}

// ParseRules decodes YAML bytes into ordered rules.
func ParseRules(data []byte) ([]term.Rule, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrInvalidConfig, err)
	}

	var rules []term.Rule
	for i, src := range doc.Facts {
		goal, err := parse.Goal(src)
		if err != nil {
			return nil, fmt.Errorf("%w: fact %d: %v", internalerr.ErrInvalidConfig, i+1, err)
		}
		rules = append(rules, term.Rule{Head: goal})
	}
	for i, spec := range doc.Rules {
		rule, err := parse.Rule(spec.Head, spec.Body)
		if err != nil {
			return nil, fmt.Errorf("%w: rule %d: %v", internalerr.ErrInvalidConfig, i+1, err)
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

func build(rules []term.Rule) *kb.KnowledgeBase {
	base := kb.New()
	for _, r := range rules {
		base.Add(r)
	}
	return base
}
