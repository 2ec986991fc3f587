package handlers

import (
	"encoding/json"
	"testing"

	"github.com/hove-io/munin/internal/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutocompleteRejectsEmptyQuery(t *testing.T) {
	router, _ := setupTestRouter(newFakeStore())

	w := doRequest(router, "GET", "/api/v1/autocomplete?q=", nil)
	assert.Equal(t, 400, w.Code)
}

func TestAutocompleteReturnsFeatures(t *testing.T) {
	store := newFakeStore()
	store.existing["munin_addr"] = true
	store.results["munin_addr"] = []map[string]interface{}{
		{"id": "addr:1", "doc_type": "addr", "label": "15 Rue Hector Malot (Paris)", "weight": 0.5, "coord": []interface{}{48.85, 2.35}},
	}
	router, _ := setupTestRouter(store)

	w := doRequest(router, "GET", "/api/v1/autocomplete?q=hector+malot&type[]=house", nil)
	require.Equal(t, 200, w.Code)

	var fc response.FeatureCollection
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fc))
	assert.Len(t, fc.Features, 1)
}

func TestAutocompleteRejectsUnknownType(t *testing.T) {
	router, _ := setupTestRouter(newFakeStore())

	w := doRequest(router, "GET", "/api/v1/autocomplete?q=x&type[]=bogus", nil)
	assert.Equal(t, 400, w.Code)
}

func TestAutocompleteRejectsLoneLatitude(t *testing.T) {
	router, _ := setupTestRouter(newFakeStore())

	w := doRequest(router, "GET", "/api/v1/autocomplete?q=x&lat=48.8", nil)
	assert.Equal(t, 400, w.Code)
}

func TestAutocompleteWithShapeRejectsOversizedBody(t *testing.T) {
	router, _ := setupTestRouter(newFakeStore())

	big := make([]byte, 64*1024)
	for i := range big {
		big[i] = 'a'
	}
	w := doRequestBody(router, "POST", "/api/v1/autocomplete?q=x", big)
	assert.Equal(t, 400, w.Code)
}

func TestAutocompleteWithShapeRejectsNonPolygon(t *testing.T) {
	router, _ := setupTestRouter(newFakeStore())

	body := []byte(`{"shape":{"type":"Feature","geometry":{"type":"Point","coordinates":[]}}}`)
	w := doRequestBody(router, "POST", "/api/v1/autocomplete?q=x", body)
	assert.Equal(t, 400, w.Code)
}

func TestAutocompleteWithShapeAcceptsValidPolygon(t *testing.T) {
	store := newFakeStore()
	store.existing["munin_addr"] = true
	router, _ := setupTestRouter(store)

	body := []byte(`{"shape":{"type":"Feature","geometry":{"type":"Polygon","coordinates":[[[2.3,48.8],[2.4,48.8],[2.4,48.9],[2.3,48.9]]]}}}`)
	w := doRequestBody(router, "POST", "/api/v1/autocomplete?q=x&type[]=house", body)
	assert.Equal(t, 200, w.Code)
}

func TestAutocompleteExplainRequiresDocID(t *testing.T) {
	router, _ := setupTestRouter(newFakeStore())

	w := doRequest(router, "GET", "/api/v1/autocomplete-explain?q=x&doc_type=addr", nil)
	assert.Equal(t, 400, w.Code)
}

func TestAutocompleteExplainReturnsDocument(t *testing.T) {
	store := newFakeStore()
	store.existing["munin_addr"] = true
	store.results["munin_addr"] = []map[string]interface{}{
		{"id": "addr:1", "doc_type": "addr", "label": "15 Rue Hector Malot (Paris)", "weight": 0.5, "coord": []interface{}{48.85, 2.35}},
	}
	router, _ := setupTestRouter(store)

	w := doRequest(router, "GET", "/api/v1/autocomplete-explain?q=hector&doc_id=addr:1&doc_type=house", nil)
	assert.Equal(t, 200, w.Code)
}
