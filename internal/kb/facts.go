package kb

import (
	"fmt"
	"sort"
)

// FactStore holds the set of currently known canonical facts. Storage
// is unordered; List returns a sorted copy for display. Like RuleStore,
// it is owned by the caller and not safe for concurrent mutation.
type FactStore struct {
	facts map[string]struct{}
}

// NewFactStore returns an empty FactStore.
func NewFactStore() *FactStore {
	return &FactStore{facts: make(map[string]struct{})}
}

// NewFactStoreFrom builds a FactStore from a loaded token sequence,
// re-validating every token on the way in.
func NewFactStoreFrom(facts []string) (*FactStore, error) {
	s := NewFactStore()
	for _, f := range facts {
		if err := s.Add(f); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Add normalizes and inserts a fact. Fails if the token is empty after
// normalization or already present.
func (s *FactStore) Add(fact string) error {
	token := Normalize(fact)
	if token == "" {
		return ErrEmptyFact
	}
	if _, ok := s.facts[token]; ok {
		return fmt.Errorf("fact %q: %w", token, ErrDuplicateFact)
	}
	s.facts[token] = struct{}{}
	return nil
}

// Remove deletes a fact. Fails if absent.
func (s *FactStore) Remove(fact string) error {
	token := Normalize(fact)
	if _, ok := s.facts[token]; !ok {
		return fmt.Errorf("fact %q: %w", token, ErrUnknownFact)
	}
	delete(s.facts, token)
	return nil
}

// Has reports whether the canonical form of fact is known.
func (s *FactStore) Has(fact string) bool {
	_, ok := s.facts[Normalize(fact)]
	return ok
}

// List returns all known facts sorted ascending.
func (s *FactStore) List() []string {
	out := make([]string, 0, len(s.facts))
	for f := range s.facts {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of known facts.
func (s *FactStore) Len() int {
	return len(s.facts)
}
