package ingest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hove-io/munin/internal/admin"
	"github.com/hove-io/munin/internal/geo"
	"github.com/hove-io/munin/internal/place"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReverseLookup struct {
	addr  *place.Place
	found bool
	err   error
}

func (f fakeReverseLookup) NearestAddr(ctx context.Context, coord geo.Point, maxDist float64) (*place.Place, bool, error) {
	return f.addr, f.found, f.err
}

func TestBuildPoiRejectsDefaultCoord(t *testing.T) {
	h := admin.Build(nil)
	_, err := BuildPoi(context.Background(), PoiSource{ID: "poi:osm:node:1", Coord: geo.Point{}}, place.PoiTypeRef{ID: "poi_type:x", Name: "X"}, h, nil, 0, nil, time.Now())
	assert.Error(t, err)
}

func TestBuildPoiFallsBackToTypeNameWhenUntagged(t *testing.T) {
	h := admin.Build(nil)
	p, err := BuildPoi(context.Background(), PoiSource{ID: "poi:osm:node:1", Coord: geo.Point{Lon: 1, Lat: 1}}, place.PoiTypeRef{ID: "poi_type:x", Name: "X"}, h, nil, 0, nil, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "X", p.Name)
}

func TestBuildPoiAttachesNearestAddr(t *testing.T) {
	h := admin.Build(nil)
	addr, err := place.NewAddr("addr:1;1:1", geo.Point{Lon: 1, Lat: 1}, "1", nil, time.Now())
	require.NoError(t, err)
	lookup := fakeReverseLookup{addr: addr, found: true}

	p, err := BuildPoi(context.Background(), PoiSource{ID: "poi:osm:node:1", Coord: geo.Point{Lon: 1, Lat: 1}}, place.PoiTypeRef{ID: "poi_type:x", Name: "X"}, h, lookup, 50, nil, time.Now())
	require.NoError(t, err)
	assert.Same(t, addr, p.Poi.Address)
}

func TestBuildPoiSurvivesReverseLookupError(t *testing.T) {
	h := admin.Build(nil)
	lookup := fakeReverseLookup{err: errors.New("boom")}
	p, err := BuildPoi(context.Background(), PoiSource{ID: "poi:osm:node:1", Coord: geo.Point{Lon: 1, Lat: 1}}, place.PoiTypeRef{ID: "poi_type:x", Name: "X"}, h, lookup, 50, nil, time.Now())
	require.NoError(t, err)
	assert.Nil(t, p.Poi.Address)
}
