package handlers

import (
	"context"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hove-io/munin/internal/catalog"
	"github.com/hove-io/munin/internal/search"
	"github.com/stretchr/testify/assert"
	"github.com/typesense/typesense-go/v2/typesense/api"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeStore is a minimal search.Store double shared by this package's tests.
type fakeStore struct {
	existing  map[string]bool
	results   map[string][]map[string]interface{}
	documents map[string]map[string]interface{}
	healthErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		existing:  map[string]bool{},
		results:   map[string][]map[string]interface{}{},
		documents: map[string]map[string]interface{}{},
	}
}

func (f *fakeStore) Exists(_ context.Context, name string) bool { return f.existing[name] }

func (f *fakeStore) GetDocument(_ context.Context, collection, id string) (map[string]interface{}, error) {
	doc, ok := f.documents[collection+"/"+id]
	if !ok {
		return nil, assert.AnError
	}
	return doc, nil
}

func (f *fakeStore) Search(_ context.Context, collection string, _ *api.SearchCollectionParams) (*api.SearchResult, error) {
	docs := f.results[collection]
	hits := make([]api.SearchResultHit, len(docs))
	for i, d := range docs {
		doc := d
		hits[i] = api.SearchResultHit{Document: &doc}
	}
	return &api.SearchResult{Hits: &hits}, nil
}

func (f *fakeStore) Health(_ context.Context) error { return f.healthErr }

// setupTestRouter wires a Handlers instance without a cache or metrics
// (both optional dependencies) against an in-memory fakeStore.
func setupTestRouter(store *fakeStore) (*gin.Engine, *Handlers) {
	coordinator := search.New(catalog.New("munin"), store, nil)
	h := New(coordinator, store, nil, nil, nil, "test")

	router := gin.New()
	router.Use(gin.Recovery())
	h.Register(router)
	return router, h
}

func TestHealthCheck(t *testing.T) {
	router := gin.New()
	router.GET("/health", HealthCheck)

	w := doRequest(router, "GET", "/health", nil)
	assert.Equal(t, 200, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
