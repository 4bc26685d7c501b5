package ints

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func expectItems(t *testing.T, expected []int, s *Set) {
	t.Helper()
	if diff := cmp.Diff(expected, s.ToSlice()); diff != "" {
		t.Errorf("items mismatch (-expected +got):\n%s", diff)
	}
	if s.Len() != len(expected) {
		t.Errorf("expecting length %d, got %d", len(expected), s.Len())
	}
}

func TestEmpty(t *testing.T) {
	var s Set
	if !s.IsEmpty() || s.Contains(0) {
		t.Fatal("zero set must be empty")
	}
	expectItems(t, []int{}, &s)

	s.Add(1)
	if s.IsEmpty() {
		t.Fatal("set must not be empty")
	}
	s.Remove(1)
	if !s.IsEmpty() {
		t.Fatal("set must be empty again")
	}
}

func TestAddRemove(t *testing.T) {
	s := NewSet(200, 3, 64, 63, 3, -5)
	expectItems(t, []int{3, 63, 64, 200}, s)
	if !s.Contains(64) || s.Contains(65) || s.Contains(-5) || s.Contains(1000) {
		t.Fatal("wrong membership")
	}

	s.Remove(63, 1000, -1).Add(0)
	expectItems(t, []int{0, 3, 64, 200}, s)
}

func TestCopyUnion(t *testing.T) {
	s := NewSet(1, 2)
	c := s.Copy()
	c.Add(130)
	expectItems(t, []int{1, 2}, s)
	expectItems(t, []int{1, 2, 130}, c)

	s.Union(NewSet(2, 70))
	expectItems(t, []int{1, 2, 70}, s)
	c.Union(NewSet())
	expectItems(t, []int{1, 2, 130}, c)
}
