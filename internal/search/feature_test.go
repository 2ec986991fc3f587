package search

import (
	"context"
	"testing"

	"github.com/hove-io/munin/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetFeatureRejectsEmptyID(t *testing.T) {
	c := New(nil, newFakeStore(), nil)
	_, err := c.GetFeature(context.Background(), FeatureRequest{})
	require.NotNil(t, err)
	assert.Equal(t, "validation", string(err.Kind))
}

func TestGetFeatureNotFound(t *testing.T) {
	store := newFakeStore()
	store.existing["munin_addr"] = true
	store.existing["munin_street"] = true
	store.existing["munin_admin"] = true
	store.existing["munin_poi"] = true
	store.existing["munin_stop"] = true
	cat := catalog.New("munin")

	c := New(cat, store, nil)
	_, err := c.GetFeature(context.Background(), FeatureRequest{ID: "nope"})
	require.NotNil(t, err)
	assert.Equal(t, "not_found", string(err.Kind))
}

func TestGetFeatureFindsDocumentInMatchingIndex(t *testing.T) {
	store := newFakeStore()
	store.existing["munin_addr"] = true
	store.existing["munin_street"] = true
	store.existing["munin_admin"] = true
	store.existing["munin_poi"] = true
	store.existing["munin_stop"] = true
	store.documents["munin_street/street:osm:way:1"] = map[string]interface{}{
		"id":       "street:osm:way:1",
		"doc_type": "street",
		"label":    "Rue de Rivoli",
		"name":     "Rue de Rivoli",
		"coord":    []interface{}{48.85, 2.35},
		"weight":   1.0,
	}
	cat := catalog.New("munin")

	c := New(cat, store, nil)
	p, err := c.GetFeature(context.Background(), FeatureRequest{ID: "street:osm:way:1"})
	require.Nil(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "street:osm:way:1", p.ID)
}
