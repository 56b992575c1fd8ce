package strainz

import (
	"cmp"
	"fmt"

	"github.com/birdayz/strainz/internal/orderedset"
)

// Remove deletes the entity named by id and cascades to every descendant
// that loses its last surviving parent as a result.
//
// Fails with ErrCannotRemoveStem if id is the stem (checked before any
// traversal) and ErrNotFound if id is absent. On success every removed
// entity's adjacency sets are cleared and the entity is erased; every
// surviving entity that referenced a removed one has that reference
// dropped from its own sets.
//
// The operation runs in three passes: a read-only reachability pass that
// decides which entities go, a read-only planning pass that records every
// edge crossing the boundary between doomed and surviving entities, and a
// commit pass that applies the plan. By the time anything is written,
// nothing can fail, so a Remove is atomic from the caller's view.
func (g *Genealogy[ID, P]) Remove(id ID) error {
	if id == g.stemID {
		return fmt.Errorf("%w: %v", ErrCannotRemoveStem, id)
	}
	if _, ok := g.nodes[id]; !ok {
		return fmt.Errorf("%w: %v", ErrNotFound, id)
	}

	doomed, order := g.collectDoomed(id)
	plan := g.planDetach(id, doomed, order)
	g.commitRemoval(order, plan)
	return nil
}

// collectDoomed runs a breadth-first pass from the removal root, counting
// per child how many of its parents are already doomed. A child is doomed
// the moment that counter reaches its live parent count, i.e. exactly
// when its last surviving parent is committed to removal. The counter
// comparison guarantees a single enqueue per entity with no tie-breaking,
// and no surviving entity can end up parentless.
//
// Returns the doomed membership and the discovery order. The pass only
// reads the graph.
func (g *Genealogy[ID, P]) collectDoomed(rootID ID) (map[ID]bool, []ID) {
	doomed := map[ID]bool{rootID: true}
	order := []ID{rootID}
	lostParents := make(map[ID]int)

	for i := 0; i < len(order); i++ {
		n := g.nodes[order[i]]
		for j := 0; j < n.children.Len(); j++ {
			childID := n.children.At(j)
			if doomed[childID] {
				continue
			}
			lostParents[childID]++
			if lostParents[childID] == g.nodes[childID].parents.Len() {
				doomed[childID] = true
				order = append(order, childID)
			}
		}
	}
	return doomed, order
}

// detachment is one planned edge removal: drop id from set.
type detachment[ID cmp.Ordered] struct {
	set *orderedset.Set[ID]
	id  ID
}

// planDetach records every edge crossing the doomed/surviving boundary.
// Two kinds of edge can cross it: an edge from a doomed entity to a
// surviving child, and an edge from a surviving parent of the removal
// root down to the root. The root is the only doomed entity that can have
// surviving parents; every other doomed entity is doomed precisely
// because all of its parents are.
//
// The plan is data built without touching the graph; applying it cannot
// fail.
func (g *Genealogy[ID, P]) planDetach(rootID ID, doomed map[ID]bool, order []ID) []detachment[ID] {
	var plan []detachment[ID]

	for _, id := range order {
		n := g.nodes[id]
		for j := 0; j < n.children.Len(); j++ {
			childID := n.children.At(j)
			if doomed[childID] {
				continue
			}
			plan = append(plan, detachment[ID]{set: g.nodes[childID].parents, id: id})
		}
	}

	root := g.nodes[rootID]
	for j := 0; j < root.parents.Len(); j++ {
		parentID := root.parents.At(j)
		plan = append(plan, detachment[ID]{set: g.nodes[parentID].children, id: rootID})
	}

	return plan
}

// commitRemoval applies the detachment plan, clears the adjacency sets of
// every doomed entity, and erases the doomed entities from the store.
func (g *Genealogy[ID, P]) commitRemoval(order []ID, plan []detachment[ID]) {
	for _, d := range plan {
		d.set.Remove(d.id)
	}
	for _, id := range order {
		n := g.nodes[id]
		n.parents.Clear()
		n.children.Clear()
	}
	for _, id := range order {
		delete(g.nodes, id)
	}
}
