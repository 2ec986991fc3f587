package ingest

import (
	"testing"
	"time"

	"github.com/hove-io/munin/internal/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildAdminHierarchyDenormalizesParentChainRegardlessOfOrder(t *testing.T) {
	// Child listed before its parent in the source slice: the two-pass cache
	// must still resolve the chain correctly.
	sources := []AdminSource{
		{ID: "city:paris", Name: "Paris", ParentID: "region:idf", IsCity: true, Level: 8, Coord: geo.Point{Lon: 2, Lat: 48}, Boundary: square(1, 47, 3, 49)},
		{ID: "region:idf", Name: "Ile-de-France", Level: 4, Coord: geo.Point{Lon: 2, Lat: 48}, Boundary: square(0, 46, 4, 50)},
	}

	h, err := BuildAdminHierarchy(sources, 1000, time.Now())
	require.NoError(t, err)

	paris, ok := h.ByID("city:paris")
	require.True(t, ok)
	require.Len(t, paris.AdminRegions, 1)
	assert.Equal(t, "region:idf", paris.AdminRegions[0].ID)
}

func TestBuildAdminHierarchyLeavesRootsWithoutRegions(t *testing.T) {
	sources := []AdminSource{
		{ID: "country:fr", Name: "France", Level: 2, Coord: geo.Point{Lon: 2, Lat: 46}, Boundary: square(-5, 40, 9, 51)},
	}
	h, err := BuildAdminHierarchy(sources, 1, time.Now())
	require.NoError(t, err)
	fr, ok := h.ByID("country:fr")
	require.True(t, ok)
	assert.Empty(t, fr.AdminRegions)
}
