package ingest

import (
	"testing"

	"github.com/hove-io/munin/internal/place"
)

func TestHumaneCompareOrdersNumericRunsNumerically(t *testing.T) {
	if humaneCompare("2", "10") >= 0 {
		t.Fatal("expected \"2\" before \"10\"")
	}
	if humaneCompare("Line 9", "Line 10") >= 0 {
		t.Fatal("expected \"Line 9\" before \"Line 10\"")
	}
	if humaneCompare("A", "A") != 0 {
		t.Fatal("expected equal strings to compare equal")
	}
}

func intPtr(v int) *int { return &v }

func TestSortLinesOrdersBySortOrderThenCode(t *testing.T) {
	lines := []place.LineRef{
		{ID: "3", Code: "3", Name: "Three", SortOrder: nil},
		{ID: "1", Code: "2", Name: "Two", SortOrder: intPtr(1)},
		{ID: "2", Code: "10", Name: "Ten", SortOrder: intPtr(2)},
	}
	SortLines(lines)

	want := []string{"1", "2", "3"}
	for i, id := range want {
		if lines[i].ID != id {
			t.Fatalf("position %d: want id %s, got %s", i, id, lines[i].ID)
		}
	}
}

func TestSortLinesHumaneSortsCodeWhenSortOrderTies(t *testing.T) {
	lines := []place.LineRef{
		{ID: "b", Code: "10", Name: "B"},
		{ID: "a", Code: "2", Name: "A"},
	}
	SortLines(lines)
	if lines[0].ID != "a" || lines[1].ID != "b" {
		t.Fatalf("expected humane-sort of code to put 2 before 10, got order %v", lines)
	}
}
