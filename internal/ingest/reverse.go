package ingest

import (
	"context"
	"fmt"

	"github.com/hove-io/munin/internal/geo"
	"github.com/hove-io/munin/internal/place"
	"github.com/hove-io/munin/internal/store"
	"github.com/typesense/typesense-go/v2/typesense/api"
)

// reverseStore is the narrow store surface CurrentIndexReverseLookup
// needs: a single, already-known physical collection name rather than an
// alias resolved through internal/catalog, since the index being searched
// has not been published yet.
type reverseStore interface {
	Search(ctx context.Context, collection string, params *api.SearchCollectionParams) (*api.SearchResult, error)
}

// CurrentIndexReverseLookup implements ReverseAddrLookup by searching the
// addr/street physical index currently under construction, per spec.md
// §4.6's POI reverse-geocode corner case: the candidate addresses are
// being built in the very same run, so they are not yet behind any alias
// internal/search.Coordinator.Reverse could see.
type CurrentIndexReverseLookup struct {
	Store          reverseStore
	AddrCollection string
}

// NearestAddr searches AddrCollection for the closest address within
// maxDistanceMeters, mirroring internal/search.Reverse's geo-filter/sort
// query shape but against one named collection instead of catalog-selected
// aliases.
func (l CurrentIndexReverseLookup) NearestAddr(ctx context.Context, coord geo.Point, maxDistanceMeters float64) (*place.Place, bool, error) {
	if l.AddrCollection == "" {
		return nil, false, nil
	}
	radiusKm := maxDistanceMeters / 1000
	filter := fmt.Sprintf("coord:(%f, %f, %g km)", coord.Lat, coord.Lon, radiusKm)
	sort := fmt.Sprintf("coord(%f,%f):asc", coord.Lat, coord.Lon)
	one := 1
	params := &api.SearchCollectionParams{
		Q:        "*",
		QueryBy:  "label",
		FilterBy: &filter,
		SortBy:   &sort,
		PerPage:  &one,
	}

	result, err := l.Store.Search(ctx, l.AddrCollection, params)
	if err != nil {
		return nil, false, fmt.Errorf("reverse lookup %s: %w", l.AddrCollection, err)
	}
	if result == nil || result.Hits == nil || len(*result.Hits) == 0 {
		return nil, false, nil
	}
	hit := (*result.Hits)[0]
	if hit.Document == nil {
		return nil, false, nil
	}
	p, err := store.FromDocument(*hit.Document)
	if err != nil {
		return nil, false, fmt.Errorf("reverse lookup %s: %w", l.AddrCollection, err)
	}
	return p, true, nil
}
