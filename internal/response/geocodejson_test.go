package response

import (
	"testing"
	"time"

	"github.com/hove-io/munin/internal/geo"
	"github.com/hove-io/munin/internal/place"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFeatureAddrS1Scenario(t *testing.T) {
	// spec.md §8 S1: BANO single record, feature id/label/type/postcode.
	street, err := place.NewStreet("street:1", "Rue Hector Malot", geo.Point{Lon: 2.376379, Lat: 48.846495}, time.Now())
	require.NoError(t, err)

	addr, err := place.NewAddr("addr:2.376379;48.846495:15", geo.Point{Lon: 2.376379, Lat: 48.846495}, "15", street, time.Now())
	require.NoError(t, err)
	addr.ZipCodes = []string{"75012"}

	paris, err := place.NewAdmin("admin:paris", "Paris", geo.Point{Lon: 2.35, Lat: 48.85}, place.AdminAttrs{IsCity: true}, time.Now())
	require.NoError(t, err)
	france, err := place.NewAdmin("admin:fr", "France", geo.Point{Lon: 2.35, Lat: 46.5}, place.AdminAttrs{Level: 2, ZoneType: place.ZoneTypeCountry}, time.Now())
	require.NoError(t, err)
	france.CountryCodes = []string{"fr"}
	require.NoError(t, addr.SetAdminRegions([]*place.Place{paris, france}))

	name, label := FormatAddrNameAndLabel("15", "Rue Hector Malot", addr.AdminRegions, addr.CountryCodes)
	addr.Name = name
	addr.Label = label

	feat := BuildFeature(addr, "", nil)
	assert.Equal(t, "addr:2.376379;48.846495:15", feat.Properties.Geocoding.ID)
	assert.Equal(t, "15 Rue Hector Malot (Paris)", feat.Properties.Geocoding.Label)
	assert.Equal(t, "house", feat.Properties.Geocoding.Type)
	assert.Equal(t, "75012", feat.Properties.Geocoding.Postcode)
}

func TestBuildFeatureAddsDistanceOnlyWithCoord(t *testing.T) {
	addr, err := place.NewAddr("a", geo.Point{Lon: 2.35, Lat: 48.85}, "1", nil, time.Now())
	require.NoError(t, err)

	noCoord := BuildFeature(addr, "", nil)
	assert.Nil(t, noCoord.Distance)

	withCoord := BuildFeature(addr, "", &geo.Point{Lon: 2.35, Lat: 48.85})
	require.NotNil(t, withCoord.Distance)
	assert.InDelta(t, 0, *withCoord.Distance, 1)
}

func TestBuildFeatureCityFieldsFromFirstCityAdmin(t *testing.T) {
	city, err := place.NewAdmin("admin:paris", "Paris", geo.Point{Lon: 2.35, Lat: 48.85}, place.AdminAttrs{IsCity: true, Insee: "75056"}, time.Now())
	require.NoError(t, err)

	street, err := place.NewStreet("s", "Rue X", geo.Point{Lon: 2.35, Lat: 48.85}, time.Now())
	require.NoError(t, err)
	require.NoError(t, street.SetAdminRegions([]*place.Place{city}))

	feat := BuildFeature(street, "", nil)
	require.NotNil(t, feat.Properties.Geocoding.City)
	assert.Equal(t, "Paris", *feat.Properties.Geocoding.City)
	require.NotNil(t, feat.Properties.Geocoding.Citycode)
	assert.Equal(t, "75056", *feat.Properties.Geocoding.Citycode)
}
