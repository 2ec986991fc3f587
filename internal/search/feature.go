package search

import (
	"context"

	"github.com/hove-io/munin/internal/apierr"
	"github.com/hove-io/munin/internal/catalog"
	"github.com/hove-io/munin/internal/place"
)

// FeatureRequest is the normalized input to GetFeature.
type FeatureRequest struct {
	ID         string
	PtDatasets []string
}

// GetFeature fetches one place by id with no ranking (spec.md §6
// `GET /api/v1/features/{id}`). Unlike Search, it does not go through
// QueryBuilder at all: it asks the store directly for the document by id
// in every index the id's doc-type family could live in, stopping at the
// first hit.
func (c *Coordinator) GetFeature(ctx context.Context, req FeatureRequest) (*place.Place, *apierr.Error) {
	if req.ID == "" {
		return nil, apierr.Validation("id must not be empty")
	}

	for _, idx := range c.featureIndices(ctx, req.PtDatasets) {
		doc, err := c.Store.GetDocument(ctx, idx, req.ID)
		if err != nil {
			continue // not-found in this index; try the next
		}
		p, decodeErr := decodeHit(doc)
		if decodeErr != nil {
			c.Logger.WithFields(map[string]interface{}{"error": decodeErr, "index": idx, "id": req.ID}).Warn("features: skipping document with unknown type")
			continue
		}
		return p, nil
	}

	return nil, apierr.NotFound("Unable to find object")
}

// featureIndices is every alias id could live behind, covering every
// default doc type and any requested transit-dataset scoping — GetFeature
// has no type[] filter to narrow the search, per spec.md §6.
func (c *Coordinator) featureIndices(ctx context.Context, ptDatasets []string) []string {
	types := append(append([]catalog.DocType{}, catalog.DefaultRequestTypes...), catalog.DocTypeStop)
	in := catalog.SelectionInput{
		Types:           types,
		TransitDatasets: ptDatasets,
	}
	return c.Catalog.SelectIndices(in, func(name string) bool { return c.Store.Exists(ctx, name) })
}
