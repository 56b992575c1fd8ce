// Package orderedset provides a sorted, deduplicated set of ordered
// elements backed by a slice. Elements are kept in ascending order, so
// iteration over a set is deterministic without extra sorting.
//
// Every mutation that changes the contents bumps a revision counter.
// Holders of a previously observed revision can compare it against Rev to
// detect structural changes, which is how iterator invalidation is
// implemented upstream.
package orderedset

import (
	"cmp"
	"slices"
)

// Set is a sorted, deduplicated collection of ordered elements.
// Not safe for concurrent use.
type Set[T cmp.Ordered] struct {
	items []T
	rev   uint64
}

// New creates an empty set. capacity is a preallocation hint; zero is fine.
func New[T cmp.Ordered](capacity int) *Set[T] {
	return &Set[T]{items: make([]T, 0, capacity)}
}

// Len returns the number of elements.
func (s *Set[T]) Len() int { return len(s.items) }

// Contains reports whether v is in the set.
func (s *Set[T]) Contains(v T) bool {
	_, ok := slices.BinarySearch(s.items, v)
	return ok
}

// Add inserts v, keeping the set sorted. It reports whether the set
// changed; adding an element that is already present is a no-op.
func (s *Set[T]) Add(v T) bool {
	i, ok := slices.BinarySearch(s.items, v)
	if ok {
		return false
	}
	s.items = slices.Insert(s.items, i, v)
	s.rev++
	return true
}

// Remove deletes v. It reports whether the set changed.
func (s *Set[T]) Remove(v T) bool {
	i, ok := slices.BinarySearch(s.items, v)
	if !ok {
		return false
	}
	s.items = slices.Delete(s.items, i, i+1)
	s.rev++
	return true
}

// At returns the i-th smallest element. It panics if i is out of range,
// like a slice index.
func (s *Set[T]) At(i int) T { return s.items[i] }

// Values returns the elements in ascending order. The returned slice is a
// copy; mutating it does not affect the set.
func (s *Set[T]) Values() []T {
	return slices.Clone(s.items)
}

// Clear removes all elements. Clearing an already empty set does not
// count as a change.
func (s *Set[T]) Clear() {
	if len(s.items) == 0 {
		return
	}
	s.items = s.items[:0]
	s.rev++
}

// Rev returns the current revision. The revision changes with every
// mutation that changes the contents.
func (s *Set[T]) Rev() uint64 { return s.rev }
