package kb

import (
	"errors"
	"reflect"
	"testing"
)

func TestRuleStoreAdd(t *testing.T) {
	s := NewRuleStore()

	err := s.Add(Rule{ID: "R1", Conditions: []string{" A ", "Daun Kering"}, Conclusion: " ORGANIK "})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	r, ok := s.Get("R1")
	if !ok {
		t.Fatal("Get(R1) = not found")
	}
	if !reflect.DeepEqual(r.Conditions, []string{"a", "daun_kering"}) {
		t.Errorf("Conditions = %v, want canonical tokens", r.Conditions)
	}
	if r.Conclusion != "organik" {
		t.Errorf("Conclusion = %q, want organik", r.Conclusion)
	}
}

func TestRuleStoreAddDuplicateID(t *testing.T) {
	s := NewRuleStore()
	if err := s.Add(Rule{ID: "R1", Conditions: []string{"a"}, Conclusion: "b"}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	err := s.Add(Rule{ID: "R1", Conditions: []string{"c"}, Conclusion: "d"})
	if !errors.Is(err, ErrDuplicateID) {
		t.Errorf("Add duplicate = %v, want ErrDuplicateID", err)
	}
}

func TestRuleStoreAddInvalid(t *testing.T) {
	s := NewRuleStore()

	if err := s.Add(Rule{ID: "R1", Conditions: nil, Conclusion: "x"}); !errors.Is(err, ErrInvalidCondition) {
		t.Errorf("Add with no conditions = %v, want ErrInvalidCondition", err)
	}
	if err := s.Add(Rule{ID: "R1", Conditions: []string{"a", "  "}, Conclusion: "x"}); !errors.Is(err, ErrInvalidCondition) {
		t.Errorf("Add with blank condition = %v, want ErrInvalidCondition", err)
	}
	if err := s.Add(Rule{ID: "R1", Conditions: []string{"a"}, Conclusion: "   "}); !errors.Is(err, ErrInvalidConclusion) {
		t.Errorf("Add with blank conclusion = %v, want ErrInvalidConclusion", err)
	}
	if err := s.Add(Rule{ID: "", Conditions: []string{"a"}, Conclusion: "x"}); err == nil {
		t.Error("Add with empty id should fail")
	}
	if s.Len() != 0 {
		t.Errorf("Len = %d after rejected adds, want 0", s.Len())
	}
}

func TestRuleStoreUpdate(t *testing.T) {
	s := NewRuleStore()
	s.Add(Rule{ID: "R1", Conditions: []string{"a"}, Conclusion: "b", Priority: 1, Description: "old"})

	then := "C"
	desc := "new"
	prio := 7
	err := s.Update("R1", RuleUpdate{
		Conditions:  []string{"X", "Y Z"},
		Conclusion:  &then,
		Priority:    &prio,
		Description: &desc,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	r, _ := s.Get("R1")
	if !reflect.DeepEqual(r.Conditions, []string{"x", "y_z"}) {
		t.Errorf("Conditions = %v, want [x y_z]", r.Conditions)
	}
	if r.Conclusion != "c" {
		t.Errorf("Conclusion = %q, want c", r.Conclusion)
	}
	if r.Priority != 7 {
		t.Errorf("Priority = %d, want 7", r.Priority)
	}
	if r.Description != "new" {
		t.Errorf("Description = %q, want new", r.Description)
	}
}

func TestRuleStoreUpdatePartial(t *testing.T) {
	s := NewRuleStore()
	s.Add(Rule{ID: "R1", Conditions: []string{"a"}, Conclusion: "b", Priority: 3, Description: "keep"})

	prio := 9
	if err := s.Update("R1", RuleUpdate{Priority: &prio}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	r, _ := s.Get("R1")
	if !reflect.DeepEqual(r.Conditions, []string{"a"}) || r.Conclusion != "b" || r.Description != "keep" {
		t.Errorf("untouched fields changed: %+v", r)
	}
	if r.Priority != 9 {
		t.Errorf("Priority = %d, want 9", r.Priority)
	}
}

func TestRuleStoreUpdateAtomic(t *testing.T) {
	s := NewRuleStore()
	s.Add(Rule{ID: "R1", Conditions: []string{"a"}, Conclusion: "b", Priority: 3})

	// Valid priority + invalid conclusion: nothing may change.
	prio := 9
	bad := "   "
	err := s.Update("R1", RuleUpdate{Priority: &prio, Conclusion: &bad})
	if !errors.Is(err, ErrInvalidConclusion) {
		t.Fatalf("Update = %v, want ErrInvalidConclusion", err)
	}

	r, _ := s.Get("R1")
	if r.Priority != 3 || r.Conclusion != "b" {
		t.Errorf("rule mutated by failed update: %+v", r)
	}
}

func TestRuleStoreUpdateUnknown(t *testing.T) {
	s := NewRuleStore()
	if err := s.Update("R9", RuleUpdate{}); !errors.Is(err, ErrUnknownID) {
		t.Errorf("Update unknown = %v, want ErrUnknownID", err)
	}
}

func TestRuleStoreDelete(t *testing.T) {
	s := NewRuleStore()
	s.Add(Rule{ID: "R1", Conditions: []string{"a"}, Conclusion: "b"})

	if err := s.Delete("R1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := s.Get("R1"); ok {
		t.Error("rule still present after delete")
	}
	if err := s.Delete("R1"); !errors.Is(err, ErrUnknownID) {
		t.Errorf("Delete again = %v, want ErrUnknownID", err)
	}
}

func TestRuleStoreListOrder(t *testing.T) {
	s := NewRuleStore()
	s.Add(Rule{ID: "R3", Conditions: []string{"a"}, Conclusion: "x", Priority: 0})
	s.Add(Rule{ID: "R1", Conditions: []string{"a"}, Conclusion: "y", Priority: 0})
	s.Add(Rule{ID: "R2", Conditions: []string{"a"}, Conclusion: "z", Priority: 5})

	var ids []string
	for _, r := range s.List() {
		ids = append(ids, r.ID)
	}
	want := []string{"R2", "R1", "R3"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("List order = %v, want %v (priority desc, id asc)", ids, want)
	}
}

func TestRuleStoreNextID(t *testing.T) {
	s := NewRuleStore()
	if got := s.NextID(); got != "R1" {
		t.Errorf("NextID on empty store = %q, want R1", got)
	}

	s.Add(Rule{ID: "R1", Conditions: []string{"a"}, Conclusion: "b"})
	s.Add(Rule{ID: "R7", Conditions: []string{"a"}, Conclusion: "c"})
	s.Add(Rule{ID: "custom", Conditions: []string{"a"}, Conclusion: "d"})

	if got := s.NextID(); got != "R8" {
		t.Errorf("NextID = %q, want R8", got)
	}
}

func TestNewRuleStoreFrom(t *testing.T) {
	rules := []Rule{
		{ID: "R1", Conditions: []string{"a"}, Conclusion: "b"},
		{ID: "R2", Conditions: []string{"b"}, Conclusion: "c"},
	}
	s, err := NewRuleStoreFrom(rules)
	if err != nil {
		t.Fatalf("NewRuleStoreFrom: %v", err)
	}
	if s.Len() != 2 {
		t.Errorf("Len = %d, want 2", s.Len())
	}

	rules = append(rules, Rule{ID: "R1", Conditions: []string{"x"}, Conclusion: "y"})
	if _, err := NewRuleStoreFrom(rules); !errors.Is(err, ErrDuplicateID) {
		t.Errorf("NewRuleStoreFrom with duplicate = %v, want ErrDuplicateID", err)
	}
}

func TestParsePriority(t *testing.T) {
	if n, err := ParsePriority(" 42 "); err != nil || n != 42 {
		t.Errorf("ParsePriority(42) = %d, %v", n, err)
	}
	if n, err := ParsePriority("-3"); err != nil || n != -3 {
		t.Errorf("ParsePriority(-3) = %d, %v", n, err)
	}
	if _, err := ParsePriority("high"); !errors.Is(err, ErrInvalidPriority) {
		t.Errorf("ParsePriority(high) = %v, want ErrInvalidPriority", err)
	}
	if _, err := ParsePriority("1.5"); !errors.Is(err, ErrInvalidPriority) {
		t.Errorf("ParsePriority(1.5) = %v, want ErrInvalidPriority", err)
	}
}
