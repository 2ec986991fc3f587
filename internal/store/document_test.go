package store

import (
	"testing"
	"time"

	"github.com/hove-io/munin/internal/geo"
	"github.com/hove-io/munin/internal/place"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDocumentCarriesAddrFields(t *testing.T) {
	street, err := place.NewStreet("street:1", "Rue de Rivoli", geo.Point{Lon: 2.35, Lat: 48.85}, time.Now())
	require.NoError(t, err)

	addr, err := place.NewAddr("addr:1", geo.Point{Lon: 2.35, Lat: 48.85}, "15", street, time.Now())
	require.NoError(t, err)
	addr.Label = "15 Rue de Rivoli"
	addr.Weight = 0.7

	doc := ToDocument(addr, "")
	assert.Equal(t, "addr", doc["doc_type"])
	assert.Equal(t, "15", doc["house_number"])
	assert.Equal(t, "street:1", doc["street_id"])
	assert.Equal(t, []float64{48.85, 2.35}, doc["coord"])
	assert.Equal(t, []float64{48.85, 2.35}, doc["approx_coord"])
	assert.Equal(t, 0.7, doc["weight"])
}

func TestToDocumentCarriesStopFields(t *testing.T) {
	stop, err := place.NewStop("stop_area:1", "Châtelet", geo.Point{Lon: 2.34, Lat: 48.86}, time.Now())
	require.NoError(t, err)
	stop.Stop.PhysicalModes = []string{"metro", "bus"}
	stop.Stop.AutocompleteVisible = true

	doc := ToDocument(stop, "RATP")
	assert.Equal(t, "RATP", doc["dataset"])
	assert.Equal(t, []string{"metro", "bus"}, doc["physical_modes"])
	assert.Equal(t, true, doc["autocomplete_visible"])
}

func TestFromDocumentRejectsMissingID(t *testing.T) {
	_, err := FromDocument(map[string]interface{}{"doc_type": "addr"})
	assert.Error(t, err)
}

func TestFromDocumentRoundTripsCoord(t *testing.T) {
	p, err := FromDocument(map[string]interface{}{
		"id":       "addr:1",
		"doc_type": "addr",
		"label":    "15 Rue de Rivoli",
		"weight":   0.7,
		"coord":    []interface{}{48.85, 2.35},
	})
	require.NoError(t, err)
	assert.Equal(t, 48.85, p.Coord.Lat)
	assert.Equal(t, 2.35, p.Coord.Lon)
}
