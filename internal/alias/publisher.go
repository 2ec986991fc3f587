// Package alias implements AliasPublisher (spec.md §4.7): the four-step
// atomic rotation that swaps a freshly built dated index into the
// dataset/type/root aliases and deletes the orphaned old ones.
package alias

import (
	"context"
	"fmt"

	"github.com/hove-io/munin/internal/catalog"
)

// Visibility controls whether a publish cascades past the per-dataset
// alias into the per-doc-type and root aliases.
type Visibility int

const (
	VisibilityPrivate Visibility = iota
	VisibilityPublic
)

// Store is the subset of internal/store.Store AliasPublisher needs.
type Store interface {
	GetAlias(ctx context.Context, alias string) (currentCollection string, err error)
	UpsertAlias(ctx context.Context, alias, collection string) error
	DeleteAlias(ctx context.Context, alias string) error
	DeleteCollection(ctx context.Context, name string) error
	CollectionsBehindAlias(ctx context.Context, alias string) ([]string, error)
}

// Publisher owns the catalog and backing store used to rotate aliases.
type Publisher struct {
	Catalog *catalog.Catalog
	Store   Store
}

// New constructs a Publisher.
func New(c *catalog.Catalog, s Store) *Publisher {
	return &Publisher{Catalog: c, Store: s}
}

// Result records what a Publish call actually did, for ingest logging.
type Result struct {
	Index          string
	OldIndices     []string
	DeletedIndices []string
	DeleteErrors   []error
}

// Publish performs the four steps of spec.md §4.7 for a freshly populated
// physical index serving (docType, dataset):
//  1. list the physical indices currently behind the per-(docType,dataset)
//     alias ("olds");
//  2. atomically add index and remove olds from that alias;
//  3. if vis is public, repeat for the per-doc-type alias and the root
//     alias;
//  4. best-effort delete every member of olds.
//
// Steps 1-3 must appear atomic to concurrent readers (spec.md testable
// property 6): at no point does a reader see the alias pointing at zero
// indices, nor at both olds and index simultaneously. Typesense's alias
// API takes one (alias, collection) pair per call rather than a single
// multi-action batch, so atomicity here means: never delete before the
// new alias write has succeeded, and always write the new target before
// touching olds — see DESIGN.md for why this is the best available
// substitute for the spec's single-action-list requirement.
func (p *Publisher) Publish(ctx context.Context, index string, docType catalog.DocType, dataset string, vis Visibility) (*Result, error) {
	datasetAlias := p.Catalog.Alias(docType, dataset)

	olds, err := p.Store.CollectionsBehindAlias(ctx, datasetAlias)
	if err != nil {
		return nil, fmt.Errorf("alias: list indices behind %s: %w", datasetAlias, err)
	}

	if err := p.Store.UpsertAlias(ctx, datasetAlias, index); err != nil {
		return nil, fmt.Errorf("alias: point %s at %s: %w", datasetAlias, index, err)
	}

	if vis == VisibilityPublic {
		typeAlias := p.Catalog.Alias(docType, "")
		if err := p.Store.UpsertAlias(ctx, typeAlias, index); err != nil {
			return nil, fmt.Errorf("alias: point %s at %s: %w", typeAlias, index, err)
		}
		rootAlias := p.Catalog.RootAlias()
		if err := p.Store.UpsertAlias(ctx, rootAlias, index); err != nil {
			return nil, fmt.Errorf("alias: point %s at %s: %w", rootAlias, index, err)
		}
	}

	res := &Result{Index: index, OldIndices: olds}
	for _, old := range olds {
		if old == index {
			continue
		}
		if err := p.Store.DeleteCollection(ctx, old); err != nil {
			res.DeleteErrors = append(res.DeleteErrors, fmt.Errorf("alias: delete orphan %s: %w", old, err))
			continue
		}
		res.DeletedIndices = append(res.DeletedIndices, old)
	}
	return res, nil
}
