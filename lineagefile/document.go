// Package lineagefile loads genealogy definitions from YAML documents.
//
// A lineage document names a stem, declares the entities descending from
// it, and optionally adds extra edges. Build replays the document into a
// fresh strainz.Genealogy through the store's own Create and Connect, so
// every store invariant holds for the result. Entities may reference
// parents declared later in the document; Build resolves such forward
// references by deferring entities until their parents exist.
//
// Example document:
//
//	stem: S
//	entities:
//	  - id: C
//	    parents: [A, B]
//	  - id: A
//	    parents: [S]
//	  - id: B
//	    parents: [S]
//	edges:
//	  - child: C
//	    parent: S
//
// This package is a construction convenience only; it does not write a
// store back out.
package lineagefile

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Sentinel errors for document-level failures. Failures of the store
// itself (duplicate identifiers, missing edge endpoints) surface as the
// strainz sentinels, wrapped with document context.
var (
	ErrMalformedDocument = errors.New("lineagefile: malformed document")
	ErrUnresolvable      = errors.New("lineagefile: unresolvable parent references")
)

// Document is the on-disk shape of a lineage definition.
type Document struct {
	// Stem is the identifier of the root entity.
	Stem string `yaml:"stem"`

	// Entities declares every entity below the stem, in any order.
	Entities []Entity `yaml:"entities"`

	// Edges declares extra parent->child edges, added once every entity
	// exists.
	Edges []Edge `yaml:"edges,omitempty"`
}

// Entity declares one entity and the parents it is created under.
type Entity struct {
	ID      string   `yaml:"id"`
	Parents []string `yaml:"parents"`
}

// Edge declares one extra parent->child edge.
type Edge struct {
	Child  string `yaml:"child"`
	Parent string `yaml:"parent"`
}

// Parse reads and validates a lineage document. Unknown fields are
// rejected.
func Parse(r io.Reader) (*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty input", ErrMalformedDocument)
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// ParseFile is Parse on a file.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("lineagefile: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Validate checks the document's internal consistency: a stem is named,
// every entity has an identifier and at least one parent, and no
// identifier is declared more than once. A store would accept an entity
// without parents as a silent no-op; in a document that is almost
// certainly a typo, so it is rejected here. Whether parents actually
// resolve is decided at Build time.
func (d *Document) Validate() error {
	if d.Stem == "" {
		return fmt.Errorf("%w: no stem", ErrMalformedDocument)
	}

	seen := map[string]bool{d.Stem: true}
	for i, e := range d.Entities {
		if e.ID == "" {
			return fmt.Errorf("%w: entity %d has no id", ErrMalformedDocument, i)
		}
		if seen[e.ID] {
			return fmt.Errorf("%w: %q declared more than once", ErrMalformedDocument, e.ID)
		}
		seen[e.ID] = true

		if len(e.Parents) == 0 {
			return fmt.Errorf("%w: entity %q declares no parents", ErrMalformedDocument, e.ID)
		}
		for _, p := range e.Parents {
			if p == "" {
				return fmt.Errorf("%w: entity %q has an empty parent id", ErrMalformedDocument, e.ID)
			}
		}
	}

	for i, e := range d.Edges {
		if e.Child == "" || e.Parent == "" {
			return fmt.Errorf("%w: edge %d is incomplete", ErrMalformedDocument, i)
		}
	}

	return nil
}
