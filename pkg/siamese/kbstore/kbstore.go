// Package kbstore persists rule sets between runs. A store is a source
// of knowledge bases, not a party to resolution: queries only ever see
// the immutable KnowledgeBase loaded from it.
package kbstore

import (
	"context"

	"github.com/cognicore/siamese/pkg/siamese/kb"
	"github.com/cognicore/siamese/pkg/siamese/term"
)

// Store is the persistence interface for rules.
type Store interface {
	Close() error

	// ReplaceRules atomically replaces the stored rule set, keeping the
	// given order as declaration order.
	ReplaceRules(ctx context.Context, rules []term.Rule) error

	// AppendRule adds one rule after all existing ones.
	AppendRule(ctx context.Context, r term.Rule) error

	// LoadKnowledgeBase materializes the stored rules, in order, into a
	// fresh knowledge base.
	LoadKnowledgeBase(ctx context.Context) (*kb.KnowledgeBase, error)

	// RuleCount returns the number of stored rules.
	RuleCount(ctx context.Context) (int, error)
}
