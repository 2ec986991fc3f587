// Package search implements SearchCoordinator and ReverseGeocoder
// (spec.md §4.5): resolving indices, running the two-pass prefix/fuzzy
// search, decoding hits, and handing the result to ResponseFormatter.
package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hove-io/munin/internal/apierr"
	"github.com/hove-io/munin/internal/catalog"
	"github.com/hove-io/munin/internal/geo"
	"github.com/hove-io/munin/internal/place"
	"github.com/hove-io/munin/internal/querybuilder"
	"github.com/hove-io/munin/internal/response"
	"github.com/sirupsen/logrus"
	"github.com/typesense/typesense-go/v2/typesense/api"
)

// defaultShardTimeout and defaultMaxRequestTimeout mirror config.go's own
// SHARD_TIMEOUT/MAX_REQUEST_TIMEOUT defaults, so a Coordinator built
// without explicit overrides (as most tests do) still clamps sanely.
const (
	defaultShardTimeout      = 2 * time.Second
	defaultMaxRequestTimeout = 5 * time.Second
)

// Store is the subset of internal/store.Store SearchCoordinator needs.
type Store interface {
	Search(ctx context.Context, collection string, params *api.SearchCollectionParams) (*api.SearchResult, error)
	Exists(ctx context.Context, name string) bool
	GetDocument(ctx context.Context, collection, id string) (map[string]interface{}, error)
}

// Counters records the observable signals spec.md §8's testable
// properties reference (property 5: "observable via request counters").
type Counters struct {
	PrefixPassHits int64
	FuzzyPassRuns  int64
}

// Coordinator wires together catalog selection, query building, store
// search, and response formatting.
type Coordinator struct {
	Catalog  *catalog.Catalog
	Store    Store
	Counters *Counters
	Logger   *logrus.Logger

	// ShardTimeout is the per-shard budget used when a request carries no
	// explicit timeout; MaxRequestTimeout is the configured ceiling a
	// client-supplied timeout is clamped to (spec.md §5 "Cancellation &
	// timeouts"). Both default to config.go's own env-var defaults; a
	// caller wanting cfg-driven values sets them after New.
	ShardTimeout      time.Duration
	MaxRequestTimeout time.Duration
}

// New builds a Coordinator. logger may be nil (defaults to logrus.StandardLogger()).
func New(c *catalog.Catalog, s Store, logger *logrus.Logger) *Coordinator {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Coordinator{
		Catalog:           c,
		Store:             s,
		Counters:          &Counters{},
		Logger:            logger,
		ShardTimeout:      defaultShardTimeout,
		MaxRequestTimeout: defaultMaxRequestTimeout,
	}
}

// splitRequestTimeout applies spec.md §5's clamp rule to a request-supplied
// timeout, defaulting to c.ShardTimeout when the caller gave none.
func (c *Coordinator) splitRequestTimeout(requested time.Duration) (shard, wallClock time.Duration) {
	if requested <= 0 {
		requested = c.ShardTimeout
	}
	return SplitTimeout(requested, c.MaxRequestTimeout)
}

// Request is the normalized input to Search, already past §7 validation.
type Request struct {
	Query       string
	Lang        string
	Coord       *geo.Point
	Types       []catalog.RequestType
	ZoneTypes   []string
	PtDatasets  []string
	PoiDatasets []string
	AllData     bool

	// ShapePolygon scopes the search to a geo-polygon (spec.md §4.4 "Geo
	// filters"); ShapeScope, when non-empty, restricts which request types
	// the polygon applies to — doc-types outside it bypass the shape
	// filter entirely.
	ShapePolygon *geo.Polygon
	ShapeScope   []catalog.RequestType

	// Timeout is the client-supplied `timeout` param (0 means unset, so the
	// Coordinator's configured default applies).
	Timeout time.Duration

	Limit, Offset int
}

// Search runs the full eight-step SearchCoordinator algorithm.
func (c *Coordinator) Search(ctx context.Context, req Request) (response.FeatureCollection, *apierr.Error) {
	if req.Query == "" {
		return response.FeatureCollection{}, apierr.Validation("q must not be empty")
	}

	docTypes := make([]catalog.DocType, 0, len(req.Types))
	for _, t := range req.Types {
		dt, ok := catalog.ResolveRequestType(t)
		if !ok {
			return response.FeatureCollection{}, apierr.Validation("unknown type[] value %q", t)
		}
		docTypes = append(docTypes, dt)
	}

	indices := c.Catalog.SelectIndices(catalog.SelectionInput{
		AllData:         req.AllData,
		Types:           docTypes,
		TransitDatasets: req.PtDatasets,
		PoiDatasets:     req.PoiDatasets,
	}, func(name string) bool { return c.Store.Exists(ctx, name) })

	if len(indices) == 0 {
		// Testable property 4: empty index set => empty results, no store
		// round-trip at all.
		return response.BuildFeatureCollection(nil, req.Query, req.Lang, req.Coord), nil
	}

	shapeScope, verr := resolveShapeScope(req.ShapeScope)
	if verr != nil {
		return response.FeatureCollection{}, verr
	}

	shard, wallClock := c.splitRequestTimeout(req.Timeout)
	ctx, cancel := context.WithTimeout(ctx, wallClock)
	defer cancel()

	places, err := c.runPass(ctx, indices, req, querybuilder.PassPrefix, shapeScope, shard)
	if err != nil {
		return response.FeatureCollection{}, err
	}
	if len(places) > 0 {
		c.Counters.PrefixPassHits++
	} else {
		c.Counters.FuzzyPassRuns++
		places, err = c.runPass(ctx, indices, req, querybuilder.PassFuzzy, shapeScope, shard)
		if err != nil {
			return response.FeatureCollection{}, err
		}
	}

	if req.Coord != nil {
		for _, p := range places {
			d := geo.Haversine(*req.Coord, p.Coord)
			p.Distance = &d
		}
	}

	return response.BuildFeatureCollection(places, req.Query, req.Lang, req.Coord), nil
}

// resolveShapeScope turns the request-level shape_scope[] vocabulary into
// the set of DocTypes a shape filter applies to; a nil return (empty scope)
// means "applies to every doc type", per spec.md §4.4.
func resolveShapeScope(raw []catalog.RequestType) (map[catalog.DocType]bool, *apierr.Error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make(map[catalog.DocType]bool, len(raw))
	for _, t := range raw {
		dt, ok := catalog.ResolveRequestType(t)
		if !ok {
			return nil, apierr.Validation("unknown shape_scope[] value %q", t)
		}
		out[dt] = true
	}
	return out, nil
}

func (c *Coordinator) runPass(ctx context.Context, indices []string, req Request, pass querybuilder.Pass, shapeScope map[catalog.DocType]bool, shard time.Duration) ([]*place.Place, *apierr.Error) {
	var places []*place.Place
	for _, idx := range indices {
		q := querybuilder.Query{
			Text:      req.Query,
			Pass:      pass,
			Coord:     req.Coord,
			ZoneTypes: req.ZoneTypes,
			Limit:     req.Limit,
			Offset:    req.Offset,
		}

		// Shape applies to this index's doc type only if shape_scope[] was
		// left empty (applies to everything) or explicitly names it; a
		// split failure (a root/all_data alias spanning doc types) is
		// treated as "applies", matching the conservative wire-level bbox
		// filter which is itself refined below against the true polygon.
		shapeApplies := req.ShapePolygon != nil
		if shapeApplies && shapeScope != nil {
			docType, _, _, _, ok := c.Catalog.SplitIndexName(idx)
			shapeApplies = !ok || shapeScope[docType]
		}
		if shapeApplies {
			q.ShapePolygon = req.ShapePolygon
		}

		params := querybuilder.Build(q)

		shardCtx, cancel := context.WithTimeout(ctx, shard)
		result, err := c.Store.Search(shardCtx, idx, params)
		cancel()
		if err != nil {
			if errors.Is(shardCtx.Err(), context.DeadlineExceeded) {
				return nil, apierr.Timeout(fmt.Sprintf("search %s: shard timeout exceeded", idx))
			}
			// Per spec.md §7 propagation policy, only transport/deserialization
			// failures are errors; an unknown index never reaches here since
			// SelectIndices already dropped it.
			return nil, apierr.BackingStore(fmt.Errorf("search %s: %w", idx, err))
		}
		if result == nil || result.Hits == nil {
			continue
		}
		for _, hit := range *result.Hits {
			if hit.Document == nil {
				continue
			}
			p, decodeErr := decodeHit(*hit.Document)
			if decodeErr != nil {
				c.Logger.WithFields(logrus.Fields{"error": decodeErr, "index": idx}).Warn("search: skipping hit with unknown type")
				continue
			}
			// The wire-level shape filter is a bbox approximation (Typesense
			// has no native arbitrary-polygon filter); refine against the
			// true polygon here so the contract holds despite that.
			if shapeApplies && !req.ShapePolygon.Contains(p.Coord) {
				continue
			}
			places = append(places, p)
		}
	}
	return places, nil
}
