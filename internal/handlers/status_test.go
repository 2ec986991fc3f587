package handlers

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusHealthy(t *testing.T) {
	router, _ := setupTestRouter(newFakeStore())

	w := doRequest(router, "GET", "/api/v1/status", nil)
	require.Equal(t, 200, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	backing := body["backing-store"].(map[string]interface{})
	assert.Equal(t, "ok", backing["health"])
}

func TestStatusReportsStoreFailure(t *testing.T) {
	store := newFakeStore()
	store.healthErr = assert.AnError
	router, _ := setupTestRouter(store)

	w := doRequest(router, "GET", "/api/v1/status", nil)
	require.Equal(t, 200, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	backing := body["backing-store"].(map[string]interface{})
	assert.Equal(t, "down", backing["health"])
}
