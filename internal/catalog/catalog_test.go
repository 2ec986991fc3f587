package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAliasGrammar(t *testing.T) {
	c := New("munin")
	assert.Equal(t, "munin_addr", c.Alias(DocTypeAddr, ""))
	assert.Equal(t, "munin_stop_RATP", c.Alias(DocTypeStop, "RATP"))
	assert.Equal(t, "munin", c.RootAlias())
}

func TestPhysicalIndexNameAndSplitRoundTrip(t *testing.T) {
	c := New("munin")
	ts := time.Date(2026, 3, 4, 5, 6, 7, 890000000, time.UTC)

	name := c.PhysicalIndexName(DocTypeStop, "RATP", ts)
	assert.Equal(t, "munin_stop_RATP_20260304_050607_890000", name)

	docType, dataset, timestamp, isDated, ok := c.SplitIndexName(name)
	require.True(t, ok)
	assert.Equal(t, DocTypeStop, docType)
	assert.Equal(t, "RATP", dataset)
	assert.Equal(t, "20260304_050607_890000", timestamp)
	assert.True(t, isDated)
}

func TestSplitIndexNameUndatedAlias(t *testing.T) {
	c := New("munin")
	docType, dataset, _, isDated, ok := c.SplitIndexName("munin_addr")
	require.True(t, ok)
	assert.Equal(t, DocTypeAddr, docType)
	assert.Equal(t, "", dataset)
	assert.False(t, isDated)
}

func TestSplitIndexNameRejectsForeignRoot(t *testing.T) {
	c := New("munin")
	_, _, _, _, ok := c.SplitIndexName("other_addr")
	assert.False(t, ok)
}

func TestResolveRequestTypeCityMapsToAdmin(t *testing.T) {
	// Open Question 3: city resolves like zone, to the admin alias.
	dt, ok := ResolveRequestType(TypeCity)
	require.True(t, ok)
	assert.Equal(t, DocTypeAdmin, dt)

	dt2, ok2 := ResolveRequestType(TypeZone)
	require.True(t, ok2)
	assert.Equal(t, dt, dt2)
}

func TestSelectIndicesAllData(t *testing.T) {
	c := New("munin")
	got := c.SelectIndices(SelectionInput{AllData: true}, nil)
	assert.Equal(t, []string{"munin"}, got)
}

func TestSelectIndicesDefaultTypes(t *testing.T) {
	c := New("munin")
	got := c.SelectIndices(SelectionInput{}, nil)
	assert.ElementsMatch(t, []string{"munin_addr", "munin_street", "munin_admin", "munin_poi"}, got)
}

func TestSelectIndicesDefaultTypesIncludesDatasetQualifiedStops(t *testing.T) {
	c := New("munin")
	got := c.SelectIndices(SelectionInput{TransitDatasets: []string{"dataset1"}}, nil)
	assert.ElementsMatch(t, []string{"munin_addr", "munin_street", "munin_admin", "munin_poi", "munin_stop_dataset1"}, got)
}

func TestSelectIndicesStopFallsBackToGlobalAlias(t *testing.T) {
	c := New("munin")
	got := c.SelectIndices(SelectionInput{Types: []DocType{DocTypeStop}}, nil)
	assert.Equal(t, []string{"munin_stop"}, got)
}

func TestSelectIndicesStopWithDatasets(t *testing.T) {
	c := New("munin")
	got := c.SelectIndices(SelectionInput{
		Types:           []DocType{DocTypeStop},
		TransitDatasets: []string{"RATP", "SNCF"},
	}, nil)
	assert.Equal(t, []string{"munin_stop_RATP", "munin_stop_SNCF"}, got)
}

func TestSelectIndicesSilentlyDropsMissing(t *testing.T) {
	c := New("munin")
	existing := map[string]bool{"munin_addr": true}
	got := c.SelectIndices(SelectionInput{Types: []DocType{DocTypeAddr, DocTypePoi}}, func(name string) bool {
		return existing[name]
	})
	assert.Equal(t, []string{"munin_addr"}, got)
}

func TestSelectIndicesEmptyWhenNoneExist(t *testing.T) {
	c := New("munin")
	got := c.SelectIndices(SelectionInput{Types: []DocType{DocTypePoi}}, func(string) bool { return false })
	assert.Empty(t, got)
}
