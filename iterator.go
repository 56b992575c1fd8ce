package strainz

import (
	"cmp"
	"fmt"
	"iter"

	"github.com/birdayz/strainz/internal/orderedset"
)

// ChildIterator is a bidirectional cursor over one entity's children,
// ordered by identifier ascending. The cursor starts before the first
// child; the first Next lands on the smallest identifier. ID and Payload
// are only valid after Next or Prev returned true.
//
// The iterator is bound to the child-set as it was when the iterator was
// created (or last Reset). Any store mutation that touches that child-set
// invalidates it: Next and Prev return false and Err reports
// ErrIteratorInvalidated. Mutations elsewhere in the store do not affect
// it. Reset rebinds the iterator to the set's current state, which is the
// re-derive step after a mutation.
//
// Like the store itself, a ChildIterator is not safe for concurrent use.
type ChildIterator[ID cmp.Ordered, P Payload[ID]] struct {
	g   *Genealogy[ID, P]
	set *orderedset.Set[ID]
	rev uint64
	pos int // -1 = before first, set.Len() = after last
	err error

	currentID      ID
	currentPayload P
}

// ChildrenIter returns a ChildIterator over the entity's children, or
// ErrNotFound if the identifier is absent.
func (g *Genealogy[ID, P]) ChildrenIter(id ID) (*ChildIterator[ID, P], error) {
	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, id)
	}
	return &ChildIterator[ID, P]{
		g:   g,
		set: n.children,
		rev: n.children.Rev(),
		pos: -1,
	}, nil
}

// Children returns a range-over-func view of the entity's children,
// ordered by identifier ascending, or ErrNotFound if the identifier is
// absent. The child-set is snapshotted each time the sequence is ranged
// over, so re-ranging after a mutation observes the current state.
func (g *Genealogy[ID, P]) Children(id ID) (iter.Seq2[ID, P], error) {
	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, id)
	}
	return func(yield func(ID, P) bool) {
		for _, childID := range n.children.Values() {
			child, ok := g.nodes[childID]
			if !ok {
				continue
			}
			if !yield(childID, child.payload) {
				return
			}
		}
	}, nil
}

// Next advances the cursor to the next child.
// Returns true if a child is available, false if iteration is complete or
// the iterator has been invalidated.
func (it *ChildIterator[ID, P]) Next() bool {
	if it.invalid() || it.pos >= it.set.Len() {
		return false
	}
	it.pos++
	if it.pos >= it.set.Len() {
		return false
	}
	return it.capture()
}

// Prev moves the cursor to the previous child.
// Returns true if a child is available, false if the cursor is before the
// first child or the iterator has been invalidated.
func (it *ChildIterator[ID, P]) Prev() bool {
	if it.invalid() || it.pos <= -1 {
		return false
	}
	it.pos--
	if it.pos <= -1 {
		return false
	}
	return it.capture()
}

// ID returns the identifier of the current child.
// Only valid after Next or Prev returned true.
func (it *ChildIterator[ID, P]) ID() ID {
	return it.currentID
}

// Payload returns a copy of the current child's payload.
// Only valid after Next or Prev returned true.
func (it *ChildIterator[ID, P]) Payload() P {
	return it.currentPayload
}

// Err returns ErrIteratorInvalidated once the bound child-set has been
// structurally mutated since the iterator was created or last Reset, and
// nil otherwise.
func (it *ChildIterator[ID, P]) Err() error {
	return it.err
}

// Pos returns the cursor position: -1 before the first child, Len() after
// the last.
func (it *ChildIterator[ID, P]) Pos() int {
	return it.pos
}

// Len returns the number of children in the bound child-set.
func (it *ChildIterator[ID, P]) Len() int {
	return it.set.Len()
}

// Equal reports whether both iterators are bound to the same entity's
// child-set and sit at the same position.
func (it *ChildIterator[ID, P]) Equal(other *ChildIterator[ID, P]) bool {
	return it.set == other.set && it.pos == other.pos
}

// Reset rewinds the cursor to before the first child and rebinds the
// iterator to the child-set's current state, clearing any invalidation.
func (it *ChildIterator[ID, P]) Reset() {
	it.rev = it.set.Rev()
	it.pos = -1
	it.err = nil
}

func (it *ChildIterator[ID, P]) invalid() bool {
	if it.err != nil {
		return true
	}
	if it.set.Rev() != it.rev {
		it.err = ErrIteratorInvalidated
		return true
	}
	return false
}

// capture loads the current child into the iterator. The child is present
// in the store whenever the iterator is valid: any removal involving it
// would have changed this child-set's revision.
func (it *ChildIterator[ID, P]) capture() bool {
	it.currentID = it.set.At(it.pos)
	it.currentPayload = it.g.nodes[it.currentID].payload
	return true
}
