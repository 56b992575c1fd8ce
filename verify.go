package strainz

import (
	"fmt"
	"slices"

	"go.uber.org/multierr"
	"golang.org/x/exp/maps"
)

// Verify checks the structural invariants of the store and returns every
// violation found, combined into one error. A nil result means the graph
// is intact.
//
// Checked invariants:
//   - the stem is present and has no parents
//   - every other entity has at least one parent
//   - every payload reports the identifier it is stored under
//   - adjacency is symmetric: A lists B as child iff B lists A as parent
//   - every adjacency reference names an entity present in the store
//
// Acyclicity is not checked; see the Connect contract. Verify never
// mutates the store and is not called by any mutating operation; it is a
// diagnostic for tests and debugging.
func (g *Genealogy[ID, P]) Verify() error {
	var err error

	stem, ok := g.nodes[g.stemID]
	if !ok {
		err = multierr.Append(err, fmt.Errorf("stem %v missing from store", g.stemID))
	} else if stem.parents.Len() != 0 {
		err = multierr.Append(err, fmt.Errorf("stem %v has parents %v", g.stemID, stem.parents.Values()))
	}

	ids := maps.Keys(g.nodes)
	slices.Sort(ids)

	for _, id := range ids {
		n := g.nodes[id]

		if id != g.stemID && n.parents.Len() == 0 {
			err = multierr.Append(err, fmt.Errorf("entity %v has no parents and is not the stem", id))
		}
		if got := n.payload.GetID(); got != id {
			err = multierr.Append(err, fmt.Errorf("entity %v payload reports %v", id, got))
		}

		for _, parentID := range n.parents.Values() {
			parent, ok := g.nodes[parentID]
			if !ok {
				err = multierr.Append(err, fmt.Errorf("entity %v lists missing parent %v", id, parentID))
				continue
			}
			if !parent.children.Contains(id) {
				err = multierr.Append(err, fmt.Errorf("entity %v lists parent %v, which does not list it back as child", id, parentID))
			}
		}

		for _, childID := range n.children.Values() {
			child, ok := g.nodes[childID]
			if !ok {
				err = multierr.Append(err, fmt.Errorf("entity %v lists missing child %v", id, childID))
				continue
			}
			if !child.parents.Contains(id) {
				err = multierr.Append(err, fmt.Errorf("entity %v lists child %v, which does not list it back as parent", id, childID))
			}
		}
	}

	return err
}
