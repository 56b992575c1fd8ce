package strainz

import (
	"cmp"

	"github.com/birdayz/strainz/internal/orderedset"
)

// Payload is implemented by the domain type stored per entity. GetID
// returns the identifier embedded in the payload; it must equal the
// identifier the entity is stored under, which New and Create verify.
type Payload[ID cmp.Ordered] interface {
	GetID() ID
}

// node is the in-store record for one entity: the payload plus both
// directions of adjacency. Adjacency sets hold identifiers, never
// pointers to other nodes; the store's identifier map is the single owner
// of every entity.
type node[ID cmp.Ordered, P Payload[ID]] struct {
	payload P

	// Incoming edges. Empty only for the stem.
	parents *orderedset.Set[ID]

	// Outgoing edges.
	children *orderedset.Set[ID]
}

func newNode[ID cmp.Ordered, P Payload[ID]](payload P) *node[ID, P] {
	return &node[ID, P]{
		payload:  payload,
		parents:  orderedset.New[ID](0),
		children: orderedset.New[ID](0),
	}
}
