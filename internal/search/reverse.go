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
	"github.com/hove-io/munin/internal/response"
	"github.com/typesense/typesense-go/v2/typesense/api"
)

// ReverseRadiusMeters is the configured radius for reverse queries (spec.md
// §8 testable property 8: every returned place's distance must be <= it).
const ReverseRadiusMeters = 1000

// ReverseRequest is the normalized input to Reverse.
type ReverseRequest struct {
	Coord  geo.Point
	Limit  int
	Radius float64 // meters; 0 means ReverseRadiusMeters

	// Timeout is the client-supplied `timeout` param (0 means unset, so
	// the Coordinator's configured default applies).
	Timeout time.Duration
}

// Reverse finds the nearest address/street to coord, restricting results to
// within Radius meters (testable property 8) and ordering by proximity.
func (c *Coordinator) Reverse(ctx context.Context, req ReverseRequest) (response.FeatureCollection, *apierr.Error) {
	radius := req.Radius
	if radius <= 0 {
		radius = ReverseRadiusMeters
	}

	indices := c.Catalog.SelectIndices(catalog.SelectionInput{
		Types: []catalog.DocType{catalog.DocTypeAddr, catalog.DocTypeStreet},
	}, func(name string) bool { return c.Store.Exists(ctx, name) })
	if len(indices) == 0 {
		return response.BuildFeatureCollection(nil, "", "", &req.Coord), nil
	}

	shard, wallClock := c.splitRequestTimeout(req.Timeout)
	ctx, cancel := context.WithTimeout(ctx, wallClock)
	defer cancel()

	radiusKm := radius / 1000
	filter := fmt.Sprintf("approx_coord:(%f, %f, %g km)", req.Coord.Lat, req.Coord.Lon, radiusKm)
	sort := fmt.Sprintf("approx_coord(%f,%f):asc", req.Coord.Lat, req.Coord.Lon)
	params := &api.SearchCollectionParams{
		Q:        "*",
		QueryBy:  "label",
		FilterBy: &filter,
		SortBy:   &sort,
		PerPage:  intPtr(req.Limit),
	}

	var places []*place.Place
	for _, idx := range indices {
		shardCtx, shardCancel := context.WithTimeout(ctx, shard)
		result, err := c.Store.Search(shardCtx, idx, params)
		shardCancel()
		if err != nil {
			if errors.Is(shardCtx.Err(), context.DeadlineExceeded) {
				return response.FeatureCollection{}, apierr.Timeout(fmt.Sprintf("reverse %s: shard timeout exceeded", idx))
			}
			return response.FeatureCollection{}, apierr.BackingStore(fmt.Errorf("reverse %s: %w", idx, err))
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
				c.Logger.WithFields(map[string]interface{}{"error": decodeErr, "index": idx}).Warn("reverse: skipping hit with unknown type")
				continue
			}
			d := geo.Haversine(req.Coord, p.Coord)
			if d > radius {
				continue
			}
			p.Distance = &d
			places = append(places, p)
		}
	}

	return response.BuildFeatureCollection(places, "", "", &req.Coord), nil
}

func intPtr(v int) *int { return &v }
