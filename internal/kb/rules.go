package kb

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Rule is one IF/THEN production: when every condition token is a known
// fact, the conclusion token becomes a fact. Higher priority rules are
// evaluated first; ties break on ascending id. The json/yaml field names
// match the rules.json wire shape ("if"/"then").
type Rule struct {
	ID          string   `json:"id" yaml:"id"`
	Conditions  []string `json:"if" yaml:"if"`
	Conclusion  string   `json:"then" yaml:"then"`
	Priority    int      `json:"priority" yaml:"priority"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
}

// RuleUpdate describes a partial update. Nil fields are left untouched.
// An update call is atomic: every touched field is validated before any
// mutation is applied.
type RuleUpdate struct {
	Conditions  []string // nil = unchanged; empty/blank = invalid
	Conclusion  *string
	Priority    *int
	Description *string
}

// RuleStore holds uniquely-identified rules. Not safe for concurrent
// mutation; an embedding application must treat mutations as a critical
// section while an inference run reads the store.
type RuleStore struct {
	rules map[string]Rule
}

// NewRuleStore returns an empty RuleStore.
func NewRuleStore() *RuleStore {
	return &RuleStore{rules: make(map[string]Rule)}
}

// Add validates and inserts a rule. The id must be unique and non-blank,
// conditions must normalize to a non-empty sequence, and the conclusion
// must normalize to a non-empty token. The stored rule holds canonical
// tokens regardless of the input's casing or spacing.
func (s *RuleStore) Add(r Rule) error {
	r.ID = strings.TrimSpace(r.ID)
	if r.ID == "" {
		return fmt.Errorf("rule: id must not be empty")
	}
	if _, ok := s.rules[r.ID]; ok {
		return fmt.Errorf("rule %s: %w", r.ID, ErrDuplicateID)
	}

	conds, err := canonicalConditions(r.Conditions)
	if err != nil {
		return fmt.Errorf("rule %s: %w", r.ID, err)
	}
	conclusion := Normalize(r.Conclusion)
	if conclusion == "" {
		return fmt.Errorf("rule %s: %w", r.ID, ErrInvalidConclusion)
	}

	r.Conditions = conds
	r.Conclusion = conclusion
	r.Description = strings.TrimSpace(r.Description)
	s.rules[r.ID] = r
	return nil
}

// NewRuleStoreFrom builds a RuleStore from a loaded rule sequence,
// re-validating every rule on the way in.
func NewRuleStoreFrom(rules []Rule) (*RuleStore, error) {
	s := NewRuleStore()
	for _, r := range rules {
		if err := s.Add(r); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Get returns the rule with the given id, or false if absent.
func (s *RuleStore) Get(id string) (Rule, bool) {
	r, ok := s.rules[id]
	return r, ok
}

// Update applies a partial update to an existing rule. All touched
// fields are validated first; on any validation failure the rule is
// left exactly as it was.
func (s *RuleStore) Update(id string, u RuleUpdate) error {
	r, ok := s.rules[id]
	if !ok {
		return fmt.Errorf("rule %s: %w", id, ErrUnknownID)
	}

	var conds []string
	if u.Conditions != nil {
		var err error
		conds, err = canonicalConditions(u.Conditions)
		if err != nil {
			return fmt.Errorf("rule %s: %w", id, err)
		}
	}
	var conclusion string
	if u.Conclusion != nil {
		conclusion = Normalize(*u.Conclusion)
		if conclusion == "" {
			return fmt.Errorf("rule %s: %w", id, ErrInvalidConclusion)
		}
	}

	// All touched fields validated — commit.
	if u.Conditions != nil {
		r.Conditions = conds
	}
	if u.Conclusion != nil {
		r.Conclusion = conclusion
	}
	if u.Priority != nil {
		r.Priority = *u.Priority
	}
	if u.Description != nil {
		r.Description = strings.TrimSpace(*u.Description)
	}
	s.rules[id] = r
	return nil
}

// Delete removes a rule by id.
func (s *RuleStore) Delete(id string) error {
	if _, ok := s.rules[id]; !ok {
		return fmt.Errorf("rule %s: %w", id, ErrUnknownID)
	}
	delete(s.rules, id)
	return nil
}

// List returns all rules ordered by priority descending, then id
// ascending. This ordering IS the engine's conflict-resolution policy.
func (s *RuleStore) List() []Rule {
	rules := make([]Rule, 0, len(s.rules))
	for _, r := range s.rules {
		rules = append(rules, r)
	}
	SortRules(rules)
	return rules
}

// Len returns the number of stored rules.
func (s *RuleStore) Len() int {
	return len(s.rules)
}

// NextID generates the next sequential rule id of the form R<n>, based
// on the highest numeric suffix already present.
func (s *RuleStore) NextID() string {
	max := 0
	for id := range s.rules {
		if !strings.HasPrefix(id, "R") {
			continue
		}
		n, err := strconv.Atoi(id[1:])
		if err != nil || n <= max {
			continue
		}
		max = n
	}
	return fmt.Sprintf("R%d", max+1)
}

// SortRules orders rules in place by (priority desc, id asc).
func SortRules(rules []Rule) {
	sort.Slice(rules, func(i, j int) bool {
		if rules[i].Priority != rules[j].Priority {
			return rules[i].Priority > rules[j].Priority
		}
		return rules[i].ID < rules[j].ID
	})
}

// ParsePriority parses a priority arriving as text at a CLI or HTTP
// boundary. Non-integer input maps to ErrInvalidPriority.
func ParsePriority(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPriority, s)
	}
	return n, nil
}

func canonicalConditions(raw []string) ([]string, error) {
	for _, c := range raw {
		if Normalize(c) == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidCondition, c)
		}
	}
	conds := NormalizeAll(raw)
	if len(conds) == 0 {
		return nil, ErrInvalidCondition
	}
	return conds, nil
}
