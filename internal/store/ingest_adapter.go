package store

import "context"

// IngestAdapter narrows Store to the surface internal/ingest's
// Orchestrator drives, keeping typesense-go's api types out of the ingest
// package the same way AliasAdapter keeps them out of internal/alias.
type IngestAdapter struct {
	*Store
}

// ImportOutcome mirrors internal/ingest.ImportOutcome; duplicated here
// (rather than imported) to keep internal/store free of a dependency on
// internal/ingest.
type ImportOutcome struct {
	Success bool
	Error   string
}

// CreateCollection creates a physical index from the uniform PlaceSchema.
func (a IngestAdapter) CreateCollection(ctx context.Context, name string) error {
	_, err := a.Store.CreateCollection(ctx, PlaceSchema(name))
	return err
}

// ImportDocuments bulk-ships documents with "upsert" semantics (spec.md
// §4.6 step 3: create/update/skip are all folded into one idempotent
// write so a retried chunk after a partial failure never double-counts).
func (a IngestAdapter) ImportDocuments(ctx context.Context, collection string, documents []interface{}) ([]ImportOutcome, error) {
	responses, err := a.Store.ImportDocuments(ctx, collection, documents, "upsert")
	if err != nil {
		return nil, err
	}
	outcomes := make([]ImportOutcome, len(responses))
	for i, r := range responses {
		if r == nil {
			continue
		}
		outcomes[i] = ImportOutcome{Success: r.Success, Error: r.Error}
	}
	return outcomes, nil
}

// CollectionDocCount reports a collection's current document count, used
// to log the old-vs-new index size comparison spec.md's original
// canonical-import-process test surfaces as an operator signal.
func (a IngestAdapter) CollectionDocCount(ctx context.Context, collection string) (int, error) {
	resp, err := a.Store.GetCollection(ctx, collection)
	if err != nil {
		return 0, err
	}
	if resp == nil || resp.NumDocuments == nil {
		return 0, nil
	}
	return int(*resp.NumDocuments), nil
}
