package strainz

import (
	"cmp"
	"fmt"
	"iter"
	"slices"

	"golang.org/x/exp/maps"
)

// Genealogy is an in-memory DAG store over one entity's mutation
// ancestry. It holds exactly one parentless root (the stem, fixed at
// construction) and any number of descendants, each with at least one
// parent. Edges are stored redundantly in both directions so parent and
// child lookups are cheap.
//
// A Genealogy is NOT safe for concurrent use. All methods must be called
// from a single goroutine.
type Genealogy[ID cmp.Ordered, P Payload[ID]] struct {
	stemID     ID
	newPayload func(ID) P
	nodes      map[ID]*node[ID, P]

	validateID func(ID) error
}

// New creates a genealogy holding exactly one entity, the stem, with the
// given identifier and no parents. The stem is permanent: it can never be
// removed.
//
// newPayload constructs the payload for every entity the store creates,
// the stem included. The returned payload must report the identifier it
// was constructed for via GetID; a disagreement fails with ErrIDMismatch.
func New[ID cmp.Ordered, P Payload[ID]](stemID ID, newPayload func(ID) P, opts ...Option[ID]) (*Genealogy[ID, P], error) {
	if newPayload == nil {
		return nil, fmt.Errorf("strainz: newPayload must not be nil")
	}

	var cfg settings[ID]
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.validateID != nil {
		if err := cfg.validateID(stemID); err != nil {
			return nil, fmt.Errorf("%w: stem %v: %v", ErrInvalidID, stemID, err)
		}
	}

	stem := newPayload(stemID)
	if stem.GetID() != stemID {
		return nil, fmt.Errorf("%w: stem payload reports %v, stored under %v", ErrIDMismatch, stem.GetID(), stemID)
	}

	g := &Genealogy[ID, P]{
		stemID:     stemID,
		newPayload: newPayload,
		nodes:      make(map[ID]*node[ID, P], max(cfg.capacity, 1)),
		validateID: cfg.validateID,
	}
	g.nodes[stemID] = newNode[ID](stem)
	return g, nil
}

// MustNew is like New but panics on error.
func MustNew[ID cmp.Ordered, P Payload[ID]](stemID ID, newPayload func(ID) P, opts ...Option[ID]) *Genealogy[ID, P] {
	g, err := New(stemID, newPayload, opts...)
	if err != nil {
		panic(err)
	}
	return g
}

// StemID returns the identifier of the stem entity.
func (g *Genealogy[ID, P]) StemID() ID {
	return g.stemID
}

// Exists reports whether an entity with the given identifier is present.
func (g *Genealogy[ID, P]) Exists(id ID) bool {
	_, ok := g.nodes[id]
	return ok
}

// Len returns the number of entities in the store.
func (g *Genealogy[ID, P]) Len() int {
	return len(g.nodes)
}

// Get returns a copy of the entity's payload, or ErrNotFound if the
// identifier is absent.
func (g *Genealogy[ID, P]) Get(id ID) (P, error) {
	n, ok := g.nodes[id]
	if !ok {
		var zero P
		return zero, fmt.Errorf("%w: %v", ErrNotFound, id)
	}
	return n.payload, nil
}

// GetParents returns the identifiers of the entity's parents in ascending
// order, or ErrNotFound if the identifier is absent. The result is empty
// only for the stem. The returned slice is a copy.
func (g *Genealogy[ID, P]) GetParents(id ID) ([]ID, error) {
	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, id)
	}
	return n.parents.Values(), nil
}

// All returns an iterator over every entity, ordered by identifier
// ascending. The identifier set is snapshotted when All is called;
// entities removed between the call and the iteration are skipped.
func (g *Genealogy[ID, P]) All() iter.Seq2[ID, P] {
	ids := maps.Keys(g.nodes)
	slices.Sort(ids)
	return func(yield func(ID, P) bool) {
		for _, id := range ids {
			n, ok := g.nodes[id]
			if !ok {
				continue
			}
			if !yield(id, n.payload) {
				return
			}
		}
	}
}

// Create adds a new entity with an edge from every given parent to it.
// The payload is built by the store's newPayload function.
//
// An empty parent list is a silent no-op: nothing is created, nothing is
// checked, nil is returned. Otherwise Create fails with ErrInvalidID if
// the configured validator rejects id, ErrAlreadyExists if id is already
// present, ErrNotFound if any parent is absent, and ErrIDMismatch if the
// built payload reports a different identifier.
//
// Parents are resolved against the state of the store before the call, so
// an entity can never be created as its own parent. All checks precede
// any mutation: on failure the store is left exactly as it was, even if
// some parents in the list were valid.
func (g *Genealogy[ID, P]) Create(id ID, parentIDs ...ID) error {
	if len(parentIDs) == 0 {
		return nil
	}

	if g.validateID != nil {
		if err := g.validateID(id); err != nil {
			return fmt.Errorf("%w: %v: %v", ErrInvalidID, id, err)
		}
	}

	if _, exists := g.nodes[id]; exists {
		return fmt.Errorf("%w: %v", ErrAlreadyExists, id)
	}

	parents := make([]*node[ID, P], len(parentIDs))
	for i, parentID := range parentIDs {
		parent, ok := g.nodes[parentID]
		if !ok {
			return fmt.Errorf("%w: parent %v", ErrNotFound, parentID)
		}
		parents[i] = parent
	}

	payload := g.newPayload(id)
	if payload.GetID() != id {
		return fmt.Errorf("%w: payload reports %v, stored under %v", ErrIDMismatch, payload.GetID(), id)
	}

	// Everything is resolved; nothing below can fail. Duplicate parents
	// in the list collapse to one edge because the sets deduplicate.
	n := newNode[ID](payload)
	g.nodes[id] = n
	for i, parentID := range parentIDs {
		n.parents.Add(parentID)
		parents[i].children.Add(id)
	}
	return nil
}

// Connect adds an edge from every given parent to the existing child.
// Edges that already exist are skipped; connecting the same pair twice is
// not an error. All identifiers are resolved before any edge is written,
// so a missing child or parent (ErrNotFound) leaves the store untouched.
//
// Connect does not check whether a new edge closes a cycle. Entities only
// ever attach below existing entities at creation time, so a cycle can
// arise solely from a Connect that links an entity to one of its own
// descendants; avoiding that is the caller's responsibility.
func (g *Genealogy[ID, P]) Connect(childID ID, parentIDs ...ID) error {
	child, ok := g.nodes[childID]
	if !ok {
		return fmt.Errorf("%w: child %v", ErrNotFound, childID)
	}

	parents := make([]*node[ID, P], len(parentIDs))
	for i, parentID := range parentIDs {
		parent, ok := g.nodes[parentID]
		if !ok {
			return fmt.Errorf("%w: parent %v", ErrNotFound, parentID)
		}
		parents[i] = parent
	}

	for i, parentID := range parentIDs {
		if child.parents.Add(parentID) {
			parents[i].children.Add(childID)
		}
	}
	return nil
}
