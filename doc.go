// Package strainz provides an in-memory DAG store modeling an entity's
// mutation ancestry: one root ("stem") entity, descendants each possibly
// having multiple parents, and operations to create, connect, query, and
// remove entities while preserving graph integrity.
//
// # Overview
//
// A Genealogy is generic over the identifier type (any ordered,
// comparable key) and the payload type, which must expose its own
// identifier via GetID. The store owns every entity; reads hand out
// payload copies and identifier slices, never interior pointers.
//
// Edges always point parent to child and are stored redundantly in both
// directions. New entities attach only below existing entities, so the
// creation protocol keeps the graph acyclic without any cycle checking.
//
// # Basic Usage
//
//	type Strain struct {
//		ID   string
//		Note string
//	}
//
//	func (s Strain) GetID() string { return s.ID }
//
//	g := strainz.MustNew("stem", func(id string) Strain {
//		return Strain{ID: id}
//	})
//
//	_ = g.Create("alpha", "stem")
//	_ = g.Create("beta", "stem")
//	_ = g.Create("gamma", "alpha", "beta")
//
//	parents, _ := g.GetParents("gamma") // ["alpha", "beta"]
//
// # Removal
//
// Remove(id) deletes the entity and cascades: every descendant whose last
// surviving parent disappears is removed too, transitively. The decision
// uses a counted reachability pass (an entity goes exactly when all of
// its parents go), and all edge detachments are planned before any is
// applied, so a Remove either happens completely or not at all. The stem
// can never be removed.
//
// # Iteration
//
// Children of an entity are iterated ordered by identifier. Children
// returns a range-over-func view that re-reads the set each time it is
// ranged; ChildrenIter returns a bidirectional cursor pinned to the set's
// current state. Mutating an entity's child-set invalidates cursors bound
// to it: they stop advancing and report ErrIteratorInvalidated from Err.
// Reset rebinds a cursor to the current state.
//
// # Error Handling
//
// All failures are sentinel errors wrapped with context and checkable
// with errors.Is:
//
//	err := g.Create("alpha", "stem")
//	if errors.Is(err, strainz.ErrAlreadyExists) {
//	    // "alpha" is taken
//	}
//
// Every operation is all-or-nothing: a failed call leaves the store
// exactly as it was, even when only part of its input was invalid. The
// store never logs and never retries; failure handling belongs to the
// caller.
//
// # Cycles
//
// Connect adds edges between existing entities and does not check whether
// an edge closes a cycle, because only a Connect from an entity to one of
// its own descendants can create one. Callers that use Connect must keep
// edges pointing away from ancestors. Verify reports every other kind of
// structural damage but deliberately does not look for cycles.
//
// # Thread Safety
//
// A Genealogy and its iterators are NOT safe for concurrent use. Every
// operation runs synchronously to completion; use one store per
// goroutine, or add external locking.
package strainz
