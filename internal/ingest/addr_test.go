package ingest

import (
	"strings"
	"testing"
	"time"

	"github.com/hove-io/munin/internal/admin"
	"github.com/hove-io/munin/internal/geo"
	"github.com/hove-io/munin/internal/place"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBanoCSVSingleRecord(t *testing.T) {
	r := strings.NewReader("15;2.376379;48.846495;Rue Hector Malot;75012;Paris\n")
	recs, err := ParseBanoCSV(r)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "15", recs[0].HouseNumber)
	assert.Equal(t, "Rue Hector Malot", recs[0].Street)
	assert.Equal(t, "75012", recs[0].Postcode)
	assert.Equal(t, "Paris", recs[0].City)
}

func TestBuildAddrMatchesS1Scenario(t *testing.T) {
	paris := mustCityAdmin(t, "admin:paris", square(2.2, 48.8, 2.5, 48.9))
	france, err := place.NewAdmin("admin:fr", "France", geo.Point{Lon: 2.35, Lat: 46.5}, place.AdminAttrs{Level: 2, ZoneType: place.ZoneTypeCountry, Boundary: square(-5, 41, 10, 51), BBox: square(-5, 41, 10, 51).BBox()}, time.Now())
	require.NoError(t, err)
	france.CountryCodes = []string{"fr"}
	h := admin.Build([]*place.Place{paris, france})

	rec := BanoRecord{HouseNumber: "15", Lon: 2.376379, Lat: 48.846495, Street: "Rue Hector Malot", Postcode: "75012", City: "Paris"}
	addr, err := BuildAddr(rec, h, time.Now())
	require.NoError(t, err)

	assert.Equal(t, "addr:2.376379;48.846495:15", addr.ID)
	assert.Equal(t, place.KindAddr, addr.Kind)
	assert.Equal(t, "15 Rue Hector Malot", addr.Name)
	assert.Contains(t, addr.Label, "15 Rue Hector Malot")
	assert.Equal(t, []string{"75012"}, addr.ZipCodes)
}

func TestBuildAddrRejectsMissingStreetName(t *testing.T) {
	h := admin.Build(nil)
	_, err := BuildAddr(BanoRecord{HouseNumber: "1", Lon: 2.3, Lat: 48.8}, h, time.Now())
	assert.Error(t, err)
}
