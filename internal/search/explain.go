package search

import (
	"context"
	"fmt"

	"github.com/hove-io/munin/internal/apierr"
	"github.com/hove-io/munin/internal/catalog"
	"github.com/hove-io/munin/internal/querybuilder"
)

// ExplainRequest is the normalized input to Explain.
type ExplainRequest struct {
	DocID   string
	DocType catalog.RequestType
	Dataset string // dataset scoping for stop/poi doc types; optional

	Query Request // same query shape as Search, re-run against one document
}

// Explain runs the same query SearchCoordinator.Search would build,
// filtered to one document id, and returns the store's raw result for
// that single hit (spec.md §6 `/autocomplete-explain`: "returns the
// store's raw scoring-explanation JSON for one document against the same
// query"). Typesense has no separate explain endpoint the way
// Elasticsearch does; the closest equivalent is the same search request
// with an `id:=` filter added, whose response already carries Typesense's
// own per-field text-match scoring breakdown.
func (c *Coordinator) Explain(ctx context.Context, req ExplainRequest) (map[string]interface{}, *apierr.Error) {
	if req.DocID == "" {
		return nil, apierr.Validation("doc_id must not be empty")
	}
	docType, ok := catalog.ResolveRequestType(req.DocType)
	if !ok {
		return nil, apierr.Validation("unknown doc_type %q", req.DocType)
	}

	index := c.Catalog.Alias(docType, req.Dataset)
	if !c.Store.Exists(ctx, index) {
		return nil, apierr.NotFound("Unable to find object")
	}

	params := querybuilder.Build(querybuilder.Query{
		Text:      req.Query.Query,
		Pass:      querybuilder.PassFuzzy,
		Coord:     req.Query.Coord,
		ZoneTypes: req.Query.ZoneTypes,
		Limit:     1,
	})
	idFilter := fmt.Sprintf("id:=%s", req.DocID)
	if params.FilterBy == nil || *params.FilterBy == "" {
		params.FilterBy = &idFilter
	} else {
		joined := *params.FilterBy + " && " + idFilter
		params.FilterBy = &joined
	}

	result, err := c.Store.Search(ctx, index, params)
	if err != nil {
		return nil, apierr.BackingStore(fmt.Errorf("explain %s: %w", index, err))
	}
	if result == nil || result.Hits == nil || len(*result.Hits) == 0 {
		return nil, apierr.NotFound("Unable to find object")
	}

	hit := (*result.Hits)[0]
	explanation := map[string]interface{}{
		"document": hit.Document,
	}
	return explanation, nil
}
