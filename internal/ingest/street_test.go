package ingest

import (
	"testing"
	"time"

	"github.com/hove-io/munin/internal/admin"
	"github.com/hove-io/munin/internal/geo"
	"github.com/hove-io/munin/internal/place"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square(minLon, minLat, maxLon, maxLat float64) geo.MultiPolygon {
	return geo.MultiPolygon{{Outer: []geo.Point{
		{Lon: minLon, Lat: minLat},
		{Lon: maxLon, Lat: minLat},
		{Lon: maxLon, Lat: maxLat},
		{Lon: minLon, Lat: maxLat},
	}}}
}

func mustCityAdmin(t *testing.T, id string, bounds geo.MultiPolygon) *place.Place {
	t.Helper()
	bbox := bounds.BBox()
	// The bbox corner, not its center: some test squares are centered on
	// (0,0), which NewAdmin rejects as the unknown-coord sentinel.
	coord := geo.Point{Lon: bbox.MaxLon, Lat: bbox.MaxLat}
	p, err := place.NewAdmin(id, id, coord, place.AdminAttrs{Level: 8, IsCity: true, Boundary: bounds, BBox: bbox}, time.Now())
	require.NoError(t, err)
	return p
}

func TestBuildStreetsExcludesInvalidHighway(t *testing.T) {
	city := mustCityAdmin(t, "cityA", square(-1, -1, 1, 1))
	h := admin.Build([]*place.Place{city})
	excl := StreetExclusion{Highway: []string{"service"}}

	ways := []StreetWay{
		{ID: 1, Tags: map[string]string{"name": "Rue de Paris", "highway": "service"}, Nodes: []geo.Point{{Lon: 0, Lat: 0}}},
	}
	streets, err := BuildStreets(ways, nil, excl, h, time.Now())
	require.NoError(t, err)
	assert.Empty(t, streets)
}

func TestBuildStreetsMergesSameNameCityByMinWayID(t *testing.T) {
	city := mustCityAdmin(t, "cityA", square(-1, -1, 1, 1))
	h := admin.Build([]*place.Place{city})
	excl := StreetExclusion{}

	ways := []StreetWay{
		{ID: 5, Tags: map[string]string{"name": "Rue de Paris", "highway": "residential"}, Nodes: []geo.Point{{Lon: 0, Lat: 0}}},
		{ID: 2, Tags: map[string]string{"name": "Rue de Paris", "highway": "residential"}, Nodes: []geo.Point{{Lon: 0.1, Lat: 0.1}}},
	}
	streets, err := BuildStreets(ways, nil, excl, h, time.Now())
	require.NoError(t, err)
	require.Len(t, streets, 1)
	assert.Equal(t, "street:osm:way:2", streets[0].ID)
}

func TestBuildStreetsDropsWaysWithoutCityAdmin(t *testing.T) {
	h := admin.Build(nil)
	excl := StreetExclusion{}
	ways := []StreetWay{
		{ID: 1, Tags: map[string]string{"name": "Rue Perdue", "highway": "residential"}, Nodes: []geo.Point{{Lon: 50, Lat: 50}}},
	}
	streets, err := BuildStreets(ways, nil, excl, h, time.Now())
	require.NoError(t, err)
	assert.Empty(t, streets)
}

func TestBuildStreetsCollapsesAssociatedStreetRelationAndBlocklistsMembers(t *testing.T) {
	city := mustCityAdmin(t, "cityA", square(-1, -1, 1, 1))
	h := admin.Build([]*place.Place{city})
	excl := StreetExclusion{}

	memberWay := StreetWay{ID: 9, Tags: map[string]string{"highway": "residential"}, Nodes: []geo.Point{{Lon: 0.5, Lat: 0.5}}}
	relations := []StreetRelation{
		{ID: 1, Tags: map[string]string{"name": "Rue Relation"}, Members: []StreetRelationMember{{Way: memberWay, Role: "street"}}},
	}
	ways := []StreetWay{memberWay}

	streets, err := BuildStreets(ways, relations, excl, h, time.Now())
	require.NoError(t, err)
	require.Len(t, streets, 1)
	assert.Equal(t, "street:osm:relation:1", streets[0].ID)
	assert.Equal(t, "Rue Relation", streets[0].Name)
}
