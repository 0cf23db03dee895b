// Package nameset provides interned partition-name sets backed by Roaring
// bitmaps. Partition names are interned to dense uint32 ids so that the
// old-vs-new membership diff on every mutation is a cheap bitmap operation
// instead of string-set bookkeeping.
package nameset

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
)

// Interner assigns stable dense ids to partition names. Ids are never
// recycled; a container resets the whole interner when its index is cleared.
type Interner struct {
	ids   map[string]uint32
	names []string
}

// NewInterner creates an empty interner.
func NewInterner() *Interner {
	return &Interner{
		ids: make(map[string]uint32),
	}
}

// Intern returns the id for name, assigning the next free id on first use.
func (in *Interner) Intern(name string) uint32 {
	if id, ok := in.ids[name]; ok {
		return id
	}
	id := uint32(len(in.names))
	in.ids[name] = id
	in.names = append(in.names, name)
	return id
}

// Name returns the name for a previously interned id.
func (in *Interner) Name(id uint32) string {
	return in.names[id]
}

// Len returns the number of interned names.
func (in *Interner) Len() int {
	return len(in.names)
}

// Set is a set of interned name ids over a 32-bit Roaring bitmap.
type Set struct {
	rb *roaring.Bitmap
}

// New creates an empty set.
func New() *Set {
	return &Set{rb: roaring.New()}
}

// Add adds an id to the set.
func (s *Set) Add(id uint32) {
	s.rb.Add(id)
}

// Contains checks if an id is in the set.
func (s *Set) Contains(id uint32) bool {
	return s.rb.Contains(id)
}

// IsEmpty returns true if the set has no ids.
func (s *Set) IsEmpty() bool {
	return s.rb.IsEmpty()
}

// Cardinality returns the number of ids in the set.
func (s *Set) Cardinality() uint64 {
	return s.rb.GetCardinality()
}

// Equals reports whether both sets contain exactly the same ids.
func (s *Set) Equals(other *Set) bool {
	if other == nil {
		return s.IsEmpty()
	}
	return s.rb.Equals(other.rb)
}

// Diff returns the ids present in s but not in other. A nil other is
// treated as the empty set.
func (s *Set) Diff(other *Set) *Set {
	if other == nil {
		return &Set{rb: s.rb.Clone()}
	}
	return &Set{rb: roaring.AndNot(s.rb, other.rb)}
}

// All returns an iterator over the ids in ascending order.
func (s *Set) All() iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		it := s.rb.Iterator()
		for it.HasNext() {
			if !yield(it.Next()) {
				return
			}
		}
	}
}
