package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetFeatureNotFound(t *testing.T) {
	router, _ := setupTestRouter(newFakeStore())

	w := doRequest(router, "GET", "/api/v1/features/addr:unknown", nil)
	assert.Equal(t, 404, w.Code)
}

func TestGetFeatureFound(t *testing.T) {
	store := newFakeStore()
	store.existing["munin_addr"] = true
	store.documents["munin_addr/addr:1"] = map[string]interface{}{
		"id": "addr:1", "doc_type": "addr", "label": "15 Rue Hector Malot (Paris)", "weight": 0.5,
		"coord": []interface{}{48.85, 2.35},
	}
	router, _ := setupTestRouter(store)

	w := doRequest(router, "GET", "/api/v1/features/addr:1", nil)
	assert.Equal(t, 200, w.Code)
}
