package ingest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/hove-io/munin/internal/alias"
	"github.com/hove-io/munin/internal/catalog"
	"github.com/hove-io/munin/internal/geo"
	"github.com/hove-io/munin/internal/place"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBulkStore struct {
	created     []string
	imported    map[string][]interface{}
	docCounts   map[string]int
	failFirstN  int
	importCalls int
}

func newFakeBulkStore() *fakeBulkStore {
	return &fakeBulkStore{imported: map[string][]interface{}{}, docCounts: map[string]int{}}
}

func (f *fakeBulkStore) CreateCollection(_ context.Context, name string) error {
	f.created = append(f.created, name)
	return nil
}

func (f *fakeBulkStore) ImportDocuments(_ context.Context, collection string, documents []interface{}) ([]ImportOutcome, error) {
	f.importCalls++
	if f.importCalls <= f.failFirstN {
		return nil, fmt.Errorf("transient failure")
	}
	f.imported[collection] = append(f.imported[collection], documents...)
	f.docCounts[collection] += len(documents)
	outcomes := make([]ImportOutcome, len(documents))
	for i := range outcomes {
		outcomes[i] = ImportOutcome{Success: true}
	}
	return outcomes, nil
}

func (f *fakeBulkStore) Refresh(_ context.Context, _ string) error { return nil }

func (f *fakeBulkStore) ForceMerge(_ context.Context, _ string, _ bool) error { return nil }

func (f *fakeBulkStore) CollectionDocCount(_ context.Context, collection string) (int, error) {
	return f.docCounts[collection], nil
}

type fakeAliasStore struct {
	aliases map[string]string
}

func (f *fakeAliasStore) GetAlias(_ context.Context, aliasName string) (string, error) {
	c, ok := f.aliases[aliasName]
	if !ok {
		return "", assert.AnError
	}
	return c, nil
}

func (f *fakeAliasStore) UpsertAlias(_ context.Context, aliasName, collection string) error {
	if f.aliases == nil {
		f.aliases = map[string]string{}
	}
	f.aliases[aliasName] = collection
	return nil
}

func (f *fakeAliasStore) DeleteAlias(_ context.Context, aliasName string) error {
	delete(f.aliases, aliasName)
	return nil
}

func (f *fakeAliasStore) DeleteCollection(_ context.Context, _ string) error { return nil }

func (f *fakeAliasStore) CollectionsBehindAlias(_ context.Context, aliasName string) ([]string, error) {
	c, ok := f.aliases[aliasName]
	if !ok {
		return nil, nil
	}
	return []string{c}, nil
}

func samplePlaces(n int) []*place.Place {
	places := make([]*place.Place, n)
	for i := range places {
		p, err := place.NewStreet(fmt.Sprintf("street:%d", i), "Rue X", geo.Point{Lon: 1, Lat: 1}, time.Now())
		if err != nil {
			panic(err)
		}
		places[i] = p
	}
	return places
}

func TestRunChunksAndPublishes(t *testing.T) {
	bs := newFakeBulkStore()
	cat := catalog.New("munin")
	pub := alias.New(cat, &fakeAliasStore{})
	cfg := Config{ChunkSize: 3, Concurrency: 2, RetryCount: 1, RetryWait: time.Millisecond, Visibility: alias.VisibilityPrivate}
	orch := NewOrchestrator(bs, cat, pub, cfg, nil)

	result, err := orch.Run(context.Background(), catalog.DocTypeStreet, "osm", samplePlaces(10))
	require.NoError(t, err)
	assert.Equal(t, 10, result.TotalIndexed)
	assert.Equal(t, 0, result.TotalFailed)
	assert.Len(t, bs.created, 1)
	assert.NotNil(t, result.AliasResult)
}

func TestRunRetriesTransientImportFailures(t *testing.T) {
	bs := newFakeBulkStore()
	bs.failFirstN = 1
	cat := catalog.New("munin")
	pub := alias.New(cat, &fakeAliasStore{})
	cfg := Config{ChunkSize: 100, Concurrency: 1, RetryCount: 2, RetryWait: time.Millisecond, Visibility: alias.VisibilityPrivate}
	orch := NewOrchestrator(bs, cat, pub, cfg, nil)

	result, err := orch.Run(context.Background(), catalog.DocTypeStreet, "osm", samplePlaces(5))
	require.NoError(t, err)
	assert.Equal(t, 5, result.TotalIndexed)
	assert.Equal(t, 0, result.TotalFailed)
}
