package search

import (
	"context"
	"testing"

	"github.com/hove-io/munin/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExplainRejectsEmptyDocID(t *testing.T) {
	c := New(catalog.New("munin"), newFakeStore(), nil)
	_, err := c.Explain(context.Background(), ExplainRequest{DocType: catalog.TypeStreet})
	require.NotNil(t, err)
	assert.Equal(t, "validation", string(err.Kind))
}

func TestExplainRejectsUnknownDocType(t *testing.T) {
	c := New(catalog.New("munin"), newFakeStore(), nil)
	_, err := c.Explain(context.Background(), ExplainRequest{DocID: "x", DocType: "bogus"})
	require.NotNil(t, err)
	assert.Equal(t, "validation", string(err.Kind))
}

func TestExplainNotFoundWhenIndexMissing(t *testing.T) {
	c := New(catalog.New("munin"), newFakeStore(), nil)
	_, err := c.Explain(context.Background(), ExplainRequest{DocID: "street:osm:way:1", DocType: catalog.TypeStreet})
	require.NotNil(t, err)
	assert.Equal(t, "not_found", string(err.Kind))
}

func TestExplainReturnsDocument(t *testing.T) {
	store := newFakeStore()
	store.existing["munin_street"] = true
	store.fuzzyResults["munin_street"] = []map[string]interface{}{
		{"id": "street:osm:way:1", "doc_type": "street", "label": "Rue de Rivoli"},
	}
	c := New(catalog.New("munin"), store, nil)

	result, err := c.Explain(context.Background(), ExplainRequest{
		DocID:   "street:osm:way:1",
		DocType: catalog.TypeStreet,
		Query:   Request{Query: "rivoli"},
	})
	require.Nil(t, err)
	require.NotNil(t, result["document"])
}
