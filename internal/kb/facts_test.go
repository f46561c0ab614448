package kb

import (
	"errors"
	"reflect"
	"testing"
)

func TestFactStoreAdd(t *testing.T) {
	s := NewFactStore()

	if err := s.Add(" Daun Kering "); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if !s.Has("daun_kering") {
		t.Error("canonical token not found after Add")
	}
	if !s.Has("DAUN   KERING") {
		t.Error("Has should normalize its argument")
	}
}

func TestFactStoreAddEmpty(t *testing.T) {
	s := NewFactStore()
	if err := s.Add("   "); !errors.Is(err, ErrEmptyFact) {
		t.Errorf("Add(blank) = %v, want ErrEmptyFact", err)
	}
}

func TestFactStoreAddDuplicate(t *testing.T) {
	s := NewFactStore()
	s.Add("a")
	if err := s.Add(" A "); !errors.Is(err, ErrDuplicateFact) {
		t.Errorf("Add duplicate = %v, want ErrDuplicateFact", err)
	}
}

func TestFactStoreRemove(t *testing.T) {
	s := NewFactStore()
	s.Add("a")

	if err := s.Remove("A"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if s.Has("a") {
		t.Error("fact still present after Remove")
	}
	if err := s.Remove("a"); !errors.Is(err, ErrUnknownFact) {
		t.Errorf("Remove absent = %v, want ErrUnknownFact", err)
	}
}

func TestFactStoreListSorted(t *testing.T) {
	s := NewFactStore()
	s.Add("c")
	s.Add("a")
	s.Add("b")

	got := s.List()
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("List = %v, want %v", got, want)
	}
}

func TestNewFactStoreFrom(t *testing.T) {
	s, err := NewFactStoreFrom([]string{"a", "b"})
	if err != nil {
		t.Fatalf("NewFactStoreFrom: %v", err)
	}
	if s.Len() != 2 {
		t.Errorf("Len = %d, want 2", s.Len())
	}

	if _, err := NewFactStoreFrom([]string{"a", "a"}); !errors.Is(err, ErrDuplicateFact) {
		t.Errorf("NewFactStoreFrom with duplicate = %v, want ErrDuplicateFact", err)
	}
}
