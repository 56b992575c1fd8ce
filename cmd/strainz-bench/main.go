package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/birdayz/strainz"
)

// strainz-bench grows random genealogies and measures build and removal
// throughput. Each goroutine drives its own store: a Genealogy is
// single-threaded by contract, so concurrency here means independent
// stores, not shared ones.

var (
	stores   = flag.Int("stores", 4, "number of independent stores, one goroutine each")
	entities = flag.Int("entities", 50000, "entities created per store")
	links    = flag.Int("links", 5000, "extra edges connected per store")
	removals = flag.Int("removals", 1000, "random removals per store after the build phase")
	quiet    = flag.Bool("quiet", false, "only log the final summary")
)

type Sample struct {
	id string
}

func (s Sample) GetID() string { return s.id }

func main() {
	flag.Parse()

	handler := slog.NewTextHandler(os.Stderr, nil)
	log := slog.New(handler)
	perStore := log
	if *quiet {
		perStore = slog.New(slog.NewTextHandler(nullWriter{}, nil))
	}

	start := time.Now()
	var grp errgroup.Group
	for i := 0; i < *stores; i++ {
		grp.Go(func() error {
			return run(perStore.With("store", i))
		})
	}
	if err := grp.Wait(); err != nil {
		log.Error("bench failed", "error", err)
		os.Exit(1)
	}
	log.Info("bench complete", "stores", *stores, "entities_per_store", *entities, "took", time.Since(start))
}

func run(log *slog.Logger) error {
	stemID := uuid.NewString()
	g, err := strainz.New(stemID, func(id string) Sample {
		return Sample{id: id}
	}, strainz.WithCapacity[string](*entities+1))
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	// ids is in creation order, which is a topological order: every
	// entity attaches below entities created before it.
	ids := make([]string, 0, *entities+1)
	ids = append(ids, stemID)

	buildStart := time.Now()
	for i := 0; i < *entities; i++ {
		id := uuid.NewString()
		parent := ids[rng.Intn(len(ids))]
		if err := g.Create(id, parent); err != nil {
			return err
		}
		ids = append(ids, id)
	}
	log.Info("build phase done", "entities", g.Len(), "took", time.Since(buildStart))

	// Cross-link so removals exercise the multi-parent counting path. An
	// edge from an earlier entity to a later one can never close a cycle.
	linkStart := time.Now()
	for i := 0; i < *links; i++ {
		a, b := rng.Intn(len(ids)), rng.Intn(len(ids))
		if a == b {
			continue
		}
		if a > b {
			a, b = b, a
		}
		if err := g.Connect(ids[b], ids[a]); err != nil {
			return err
		}
	}
	log.Info("link phase done", "took", time.Since(linkStart))

	removeStart := time.Now()
	removed := 0
	for i := 0; i < *removals && g.Len() > 1; i++ {
		id := ids[1+rng.Intn(len(ids)-1)]
		err := g.Remove(id)
		if errors.Is(err, strainz.ErrNotFound) {
			continue // already gone via an earlier cascade
		}
		if err != nil {
			return err
		}
		removed++
	}
	log.Info("removal phase done", "removals", removed, "remaining", g.Len(), "took", time.Since(removeStart))

	if err := g.Verify(); err != nil {
		return fmt.Errorf("integrity check failed: %w", err)
	}
	return nil
}

type nullWriter struct{}

func (nullWriter) Write(p []byte) (int, error) { return len(p), nil }
