// Package store wraps the Typesense client with the document-store
// contract spec.md treats as a black box: collections (indices), aliases,
// bulk import, and DSL search. It is the sole component that imports the
// typesense-go SDK; every other package speaks in terms of catalog names
// and place documents.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/typesense/typesense-go/v2/typesense"
	"github.com/typesense/typesense-go/v2/typesense/api"
)

// ptr mirrors search-service's internal/clients/typesense.go generic
// pointer helper, needed because the Typesense API structs take *T for
// every optional field.
func ptr[T any](v T) *T {
	return &v
}

// Store wraps a Typesense client with the operations munin needs.
type Store struct {
	client  *typesense.Client
	timeout time.Duration
}

// Config carries the connection parameters, mirroring the
// host/port/protocol/api-key fields search-service's internal/config.Config
// reads from the environment.
type Config struct {
	Host              string
	Port              int
	Protocol          string
	APIKey            string
	ConnectionTimeout time.Duration
}

// New builds a Store from Config.
func New(cfg Config) *Store {
	client := typesense.NewClient(
		typesense.WithServer(fmt.Sprintf("%s://%s:%d", cfg.Protocol, cfg.Host, cfg.Port)),
		typesense.WithAPIKey(cfg.APIKey),
		typesense.WithConnectionTimeout(cfg.ConnectionTimeout),
	)
	return &Store{client: client, timeout: cfg.ConnectionTimeout}
}

// Health checks store reachability.
func (s *Store) Health(ctx context.Context) error {
	_, err := s.client.Health(ctx, s.timeout)
	return err
}

// CreateCollection creates a physical index from a schema.
func (s *Store) CreateCollection(ctx context.Context, schema *api.CollectionSchema) (*api.CollectionResponse, error) {
	return s.client.Collections().Create(ctx, schema)
}

// DeleteCollection deletes a physical index by name.
func (s *Store) DeleteCollection(ctx context.Context, name string) (*api.CollectionResponse, error) {
	return s.client.Collection(name).Delete(ctx)
}

// GetCollection retrieves one collection's metadata.
func (s *Store) GetCollection(ctx context.Context, name string) (*api.CollectionResponse, error) {
	return s.client.Collection(name).Retrieve(ctx)
}

// ListCollections lists every physical index currently in the store.
func (s *Store) ListCollections(ctx context.Context) ([]*api.CollectionResponse, error) {
	return s.client.Collections().Retrieve(ctx)
}

// CollectionExists reports whether name is a physical collection. Errors
// (including not-found) are treated as non-existence, matching spec.md
// §4.2's "silently dropped" contract for missing indices.
func (s *Store) CollectionExists(ctx context.Context, name string) bool {
	_, err := s.GetCollection(ctx, name)
	return err == nil
}

// AliasExists reports whether name resolves as an alias.
func (s *Store) AliasExists(ctx context.Context, name string) bool {
	_, err := s.GetAlias(ctx, name)
	return err == nil
}

// Exists reports whether name resolves as either a physical collection or
// an alias — the catalog.Exists predicate SelectIndices needs.
func (s *Store) Exists(ctx context.Context, name string) bool {
	return s.CollectionExists(ctx, name) || s.AliasExists(ctx, name)
}

// UpsertAlias points alias at collection, creating or repointing it.
func (s *Store) UpsertAlias(ctx context.Context, alias, collection string) (*api.CollectionAlias, error) {
	return s.client.Aliases().Upsert(ctx, alias, &api.CollectionAliasSchema{CollectionName: collection})
}

// GetAlias retrieves the collection an alias currently points to.
func (s *Store) GetAlias(ctx context.Context, alias string) (*api.CollectionAlias, error) {
	return s.client.Alias(alias).Retrieve(ctx)
}

// DeleteAlias removes an alias (not the underlying collection).
func (s *Store) DeleteAlias(ctx context.Context, alias string) (*api.CollectionAlias, error) {
	return s.client.Alias(alias).Delete(ctx)
}

// ListAliases lists every alias currently defined.
func (s *Store) ListAliases(ctx context.Context) (*api.CollectionAliasesResponse, error) {
	return s.client.Aliases().Retrieve(ctx)
}

// ImportDocuments bulk-ships documents into collection using the given
// import action ("create", "upsert", or "update").
func (s *Store) ImportDocuments(ctx context.Context, collection string, documents []interface{}, action string) ([]*api.ImportDocumentResponse, error) {
	params := &api.ImportDocumentsParams{Action: ptr(action)}
	return s.client.Collection(collection).Documents().Import(ctx, documents, params)
}

// UpsertDocument writes a single document, creating or replacing it.
func (s *Store) UpsertDocument(ctx context.Context, collection string, document interface{}) (map[string]interface{}, error) {
	return s.client.Collection(collection).Documents().Upsert(ctx, document)
}

// GetDocument fetches one document by id.
func (s *Store) GetDocument(ctx context.Context, collection, id string) (map[string]interface{}, error) {
	return s.client.Collection(collection).Document(id).Retrieve(ctx)
}

// Search runs one DSL search against collection.
func (s *Store) Search(ctx context.Context, collection string, params *api.SearchCollectionParams) (*api.SearchResult, error) {
	return s.client.Collection(collection).Documents().Search(ctx, params)
}

// MultiSearch fans a batch of searches out in one round trip.
// SearchCoordinator does not call it: it queries the selected indices one
// at a time through Search.
func (s *Store) MultiSearch(ctx context.Context, searches api.MultiSearchSearchesParameter) (*api.MultiSearchResult, error) {
	return s.client.MultiSearch.Perform(ctx, &api.MultiSearchParams{}, searches)
}

// Refresh is a documented no-op: unlike the ES-style store spec.md §4.6
// step 4 assumes, Typesense documents are visible to search immediately
// on import, with no segment-refresh step to wait on. Kept as a method (not
// deleted from the ingest skeleton) so a future store swap that does need
// it has a seam to fill in.
func (s *Store) Refresh(ctx context.Context, collection string) error {
	return nil
}

// ForceMerge is a documented no-op for the same reason as Refresh:
// Typesense has no segment-merge concept to trigger. allowTimeout is
// accepted for signature parity with spec.md §4.6 step 5 but unused.
func (s *Store) ForceMerge(ctx context.Context, collection string, allowTimeout bool) error {
	return nil
}
