package lineagefile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/birdayz/strainz"
)

type sample struct {
	id string
}

func (s sample) GetID() string { return s.id }

func newSample(id string) sample { return sample{id: id} }

func TestParse(t *testing.T) {
	t.Run("reads a complete document", func(t *testing.T) {
		doc, err := Parse(strings.NewReader(`
stem: S
entities:
  - id: A
    parents: [S]
  - id: B
    parents: [S]
edges:
  - child: B
    parent: A
`))
		assert.NoError(t, err)
		assert.Equal(t, "S", doc.Stem)
		assert.Equal(t, 2, len(doc.Entities))
		assert.Equal(t, Entity{ID: "A", Parents: []string{"S"}}, doc.Entities[0])
		assert.Equal(t, []Edge{{Child: "B", Parent: "A"}}, doc.Edges)
	})

	t.Run("rejects empty input", func(t *testing.T) {
		_, err := Parse(strings.NewReader(""))
		assert.True(t, errors.Is(err, ErrMalformedDocument))
	})

	t.Run("rejects broken yaml", func(t *testing.T) {
		_, err := Parse(strings.NewReader("stem: [unclosed"))
		assert.True(t, errors.Is(err, ErrMalformedDocument))
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		_, err := Parse(strings.NewReader(`
stem: S
entites:
  - id: A
    parents: [S]
`))
		assert.True(t, errors.Is(err, ErrMalformedDocument))
	})

	t.Run("rejects a document without a stem", func(t *testing.T) {
		_, err := Parse(strings.NewReader(`
entities:
  - id: A
    parents: [S]
`))
		assert.True(t, errors.Is(err, ErrMalformedDocument))
	})

	t.Run("rejects an entity without an id", func(t *testing.T) {
		_, err := Parse(strings.NewReader(`
stem: S
entities:
  - parents: [S]
`))
		assert.True(t, errors.Is(err, ErrMalformedDocument))
	})

	t.Run("rejects an entity declared twice", func(t *testing.T) {
		_, err := Parse(strings.NewReader(`
stem: S
entities:
  - id: A
    parents: [S]
  - id: A
    parents: [S]
`))
		assert.True(t, errors.Is(err, ErrMalformedDocument))
	})

	t.Run("rejects an entity without parents", func(t *testing.T) {
		_, err := Parse(strings.NewReader(`
stem: S
entities:
  - id: A
    parents: []
`))
		assert.True(t, errors.Is(err, ErrMalformedDocument))
	})

	t.Run("rejects an incomplete edge", func(t *testing.T) {
		_, err := Parse(strings.NewReader(`
stem: S
entities:
  - id: A
    parents: [S]
edges:
  - child: A
`))
		assert.True(t, errors.Is(err, ErrMalformedDocument))
	})
}

func TestBuild(t *testing.T) {
	t.Run("builds the declared graph", func(t *testing.T) {
		g, err := Load(strings.NewReader(`
stem: S
entities:
  - id: A
    parents: [S]
  - id: B
    parents: [S]
  - id: C
    parents: [A, B]
`), newSample)
		assert.NoError(t, err)

		assert.Equal(t, 4, g.Len())
		parents, err := g.GetParents("C")
		assert.NoError(t, err)
		assert.Equal(t, []string{"A", "B"}, parents)
		assert.NoError(t, g.Verify())
	})

	t.Run("resolves forward references", func(t *testing.T) {
		g, err := Load(strings.NewReader(`
stem: S
entities:
  - id: C
    parents: [A, B]
  - id: B
    parents: [A]
  - id: A
    parents: [S]
`), newSample)
		assert.NoError(t, err)

		assert.True(t, g.Exists("C"))
		parents, err := g.GetParents("B")
		assert.NoError(t, err)
		assert.Equal(t, []string{"A"}, parents)
		assert.NoError(t, g.Verify())
	})

	t.Run("fails on parents that never resolve", func(t *testing.T) {
		_, err := Load(strings.NewReader(`
stem: S
entities:
  - id: A
    parents: [B]
  - id: B
    parents: [ghost]
`), newSample)
		assert.True(t, errors.Is(err, ErrUnresolvable))
		assert.Contains(t, err.Error(), "A")
		assert.Contains(t, err.Error(), "B")
	})

	t.Run("fails on entities that only reference each other", func(t *testing.T) {
		_, err := Load(strings.NewReader(`
stem: S
entities:
  - id: A
    parents: [B]
  - id: B
    parents: [A]
`), newSample)
		assert.True(t, errors.Is(err, ErrUnresolvable))
	})

	t.Run("applies extra edges", func(t *testing.T) {
		g, err := Load(strings.NewReader(`
stem: S
entities:
  - id: A
    parents: [S]
  - id: B
    parents: [A]
edges:
  - child: B
    parent: S
`), newSample)
		assert.NoError(t, err)

		parents, err := g.GetParents("B")
		assert.NoError(t, err)
		assert.Equal(t, []string{"A", "S"}, parents)
		assert.NoError(t, g.Verify())
	})

	t.Run("surfaces store errors from edges", func(t *testing.T) {
		_, err := Load(strings.NewReader(`
stem: S
entities:
  - id: A
    parents: [S]
edges:
  - child: A
    parent: ghost
`), newSample)
		assert.True(t, errors.Is(err, strainz.ErrNotFound))
	})

	t.Run("surfaces store errors from entities", func(t *testing.T) {
		// Bypass Parse so the duplicate reaches the store.
		doc := &Document{
			Stem: "S",
			Entities: []Entity{
				{ID: "S", Parents: []string{"S"}},
			},
		}
		_, err := Build(doc, newSample)
		assert.True(t, errors.Is(err, strainz.ErrAlreadyExists))
	})

	t.Run("passes options through to the store", func(t *testing.T) {
		_, err := Load(strings.NewReader(`
stem: S
entities:
  - id: "bad id"
    parents: [S]
`), newSample, strainz.WithIDValidator(func(id string) error {
			if strings.Contains(id, " ") {
				return errors.New("whitespace")
			}
			return nil
		}))
		assert.True(t, errors.Is(err, strainz.ErrInvalidID))
	})
}

func TestLoadFile(t *testing.T) {
	t.Run("loads a document from disk", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "lineage.yaml")
		assert.NoError(t, os.WriteFile(path, []byte(`
stem: S
entities:
  - id: A
    parents: [S]
`), 0o644))

		g, err := LoadFile(path, newSample)
		assert.NoError(t, err)
		assert.True(t, g.Exists("A"))
	})

	t.Run("fails on a missing file", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"), newSample)
		assert.Error(t, err)
	})
}
