package nameset

import (
	"slices"
	"testing"
)

func TestInterner(t *testing.T) {
	in := NewInterner()

	red := in.Intern("red")
	blue := in.Intern("blue")

	if red == blue {
		t.Fatal("distinct names must get distinct ids")
	}

	// Interning again must return the same id.
	if in.Intern("red") != red {
		t.Fatal("Intern is not stable")
	}

	if in.Name(red) != "red" || in.Name(blue) != "blue" {
		t.Fatal("Name round-trip failed")
	}

	if in.Len() != 2 {
		t.Fatalf("Len should be 2, got %d", in.Len())
	}
}

func TestSetDiff(t *testing.T) {
	old := New()
	old.Add(1)
	old.Add(2)
	old.Add(3)

	cur := New()
	cur.Add(2)
	cur.Add(4)

	removed := slices.Collect(old.Diff(cur).All())
	if !slices.Equal(removed, []uint32{1, 3}) {
		t.Fatalf("Diff should yield [1 3], got %v", removed)
	}

	// Diff against nil treats the other side as empty.
	all := slices.Collect(old.Diff(nil).All())
	if !slices.Equal(all, []uint32{1, 2, 3}) {
		t.Fatalf("Diff(nil) should yield all ids, got %v", all)
	}
}

func TestSetEquals(t *testing.T) {
	a := New()
	b := New()

	if !a.Equals(b) {
		t.Fatal("two empty sets must be equal")
	}
	if !a.Equals(nil) {
		t.Fatal("empty set must equal nil")
	}

	a.Add(7)
	if a.Equals(b) {
		t.Fatal("sets with different contents must not be equal")
	}
	if a.Equals(nil) {
		t.Fatal("non-empty set must not equal nil")
	}

	b.Add(7)
	if !a.Equals(b) {
		t.Fatal("sets with identical contents must be equal")
	}

	if a.IsEmpty() || a.Cardinality() != 1 {
		t.Fatal("cardinality bookkeeping broken")
	}
}
