package lineagefile

import (
	"fmt"
	"io"
	"slices"

	"github.com/birdayz/strainz"
)

// Build replays a parsed document into a fresh store. Entities are
// created in document order where possible; an entity whose parents do
// not all exist yet is deferred to a later pass, which is how forward
// references resolve. A pass that defers everything it looked at means
// the remaining entities reference parents that will never exist (or
// reference each other in a loop); that fails with ErrUnresolvable.
// Extra edges are connected once every entity exists.
func Build[P strainz.Payload[string]](doc *Document, newPayload func(string) P, opts ...strainz.Option[string]) (*strainz.Genealogy[string, P], error) {
	g, err := strainz.New(doc.Stem, newPayload, opts...)
	if err != nil {
		return nil, err
	}

	pending := slices.Clone(doc.Entities)
	for len(pending) > 0 {
		var deferred []Entity
		for _, e := range pending {
			if !parentsReady(g, e) {
				deferred = append(deferred, e)
				continue
			}
			if err := g.Create(e.ID, e.Parents...); err != nil {
				return nil, fmt.Errorf("lineagefile: create %q: %w", e.ID, err)
			}
		}
		if len(deferred) == len(pending) {
			ids := make([]string, len(deferred))
			for i, e := range deferred {
				ids[i] = e.ID
			}
			return nil, fmt.Errorf("%w: %v", ErrUnresolvable, ids)
		}
		pending = deferred
	}

	for _, e := range doc.Edges {
		if err := g.Connect(e.Child, e.Parent); err != nil {
			return nil, fmt.Errorf("lineagefile: connect %s -> %s: %w", e.Parent, e.Child, err)
		}
	}

	return g, nil
}

func parentsReady[P strainz.Payload[string]](g *strainz.Genealogy[string, P], e Entity) bool {
	for _, p := range e.Parents {
		if !g.Exists(p) {
			return false
		}
	}
	return true
}

// Load parses a document from r and builds a store from it.
func Load[P strainz.Payload[string]](r io.Reader, newPayload func(string) P, opts ...strainz.Option[string]) (*strainz.Genealogy[string, P], error) {
	doc, err := Parse(r)
	if err != nil {
		return nil, err
	}
	return Build(doc, newPayload, opts...)
}

// LoadFile parses a document from a file on disk and builds a store.
func LoadFile[P strainz.Payload[string]](path string, newPayload func(string) P, opts ...strainz.Option[string]) (*strainz.Genealogy[string, P], error) {
	doc, err := ParseFile(path)
	if err != nil {
		return nil, err
	}
	return Build(doc, newPayload, opts...)
}
