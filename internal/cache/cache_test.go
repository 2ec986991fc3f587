package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	c, err := New("redis://"+mr.Addr()+"/0", Config{TTL: time.Minute})
	require.NoError(t, err)
	return c
}

type searchResponse struct {
	Query   string   `json:"query"`
	Results []string `json:"results"`
}

func TestSetThenGetRoundTrips(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()
	key := GenerateKey("autocomplete", "osm", map[string]string{"q": "rue"})

	require.NoError(t, c.Set(ctx, key, searchResponse{Query: "rue", Results: []string{"a", "b"}}))

	var got searchResponse
	hit, err := c.Get(ctx, key, &got)
	require.NoError(t, err)
	require.True(t, hit)
	require.Equal(t, "rue", got.Query)
	require.Equal(t, []string{"a", "b"}, got.Results)
}

func TestGetMiss(t *testing.T) {
	c := newTestCache(t)
	var got searchResponse
	hit, err := c.Get(context.Background(), "does-not-exist", &got)
	require.NoError(t, err)
	require.False(t, hit)
}

func TestDeleteRemovesEntry(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()
	key := GenerateKey("reverse", "osm", map[string]float64{"lat": 1, "lon": 2})
	require.NoError(t, c.Set(ctx, key, searchResponse{Query: "x"}))
	require.NoError(t, c.Delete(ctx, key))

	var got searchResponse
	hit, err := c.Get(ctx, key, &got)
	require.NoError(t, err)
	require.False(t, hit)
}

func TestGenerateKeyIsDeterministicAndParamSensitive(t *testing.T) {
	k1 := GenerateKey("autocomplete", "osm", map[string]string{"q": "rue"})
	k2 := GenerateKey("autocomplete", "osm", map[string]string{"q": "rue"})
	k3 := GenerateKey("autocomplete", "osm", map[string]string{"q": "avenue"})
	require.Equal(t, k1, k2)
	require.NotEqual(t, k1, k3)
}

func TestPing(t *testing.T) {
	c := newTestCache(t)
	require.NoError(t, c.Ping(context.Background()))
}
