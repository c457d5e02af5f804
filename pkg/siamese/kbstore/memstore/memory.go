// Package memstore is an in-memory kbstore.Store for tests.
package memstore

import (
	"context"
	"sync"

	"github.com/cognicore/siamese/pkg/siamese/kb"
	"github.com/cognicore/siamese/pkg/siamese/kbstore"
	"github.com/cognicore/siamese/pkg/siamese/term"
)

// Store is an in-memory implementation of kbstore.Store.
type Store struct {
	mu    sync.RWMutex
	rules []term.Rule
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{}
}

var _ kbstore.Store = (*Store)(nil)

// Close implements kbstore.Store.
func (s *Store) Close() error { return nil }

// ReplaceRules swaps the stored rule set.
func (s *Store) ReplaceRules(ctx context.Context, rules []term.Rule) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rules = append([]term.Rule(nil), rules...)
	return nil
}

// AppendRule adds one rule after all existing ones.
func (s *Store) AppendRule(ctx context.Context, r term.Rule) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rules = append(s.rules, r)
	return nil
}

// LoadKnowledgeBase materializes the stored rules in order.
func (s *Store) LoadKnowledgeBase(ctx context.Context) (*kb.KnowledgeBase, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	base := kb.New()
	for _, r := range s.rules {
		base.Add(r)
	}
	return base, nil
}

// RuleCount returns the number of stored rules.
func (s *Store) RuleCount(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rules), nil
}
