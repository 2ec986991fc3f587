package ingest

import (
	"sort"
	"strconv"
	"strings"

	"github.com/hove-io/munin/internal/place"
)

// humaneCompare orders strings the way a human expects line codes to sort
// ("2" before "10"): it splits each string into runs of digits and
// non-digits, comparing digit runs numerically and other runs
// lexicographically.
func humaneCompare(a, b string) int {
	ar, br := splitRuns(a), splitRuns(b)
	for i := 0; i < len(ar) && i < len(br); i++ {
		if c := compareRun(ar[i], br[i]); c != 0 {
			return c
		}
	}
	return len(ar) - len(br)
}

func splitRuns(s string) []string {
	var runs []string
	var cur strings.Builder
	isDigit := func(b byte) bool { return b >= '0' && b <= '9' }
	for i := 0; i < len(s); i++ {
		if i > 0 && isDigit(s[i]) != isDigit(s[i-1]) {
			runs = append(runs, cur.String())
			cur.Reset()
		}
		cur.WriteByte(s[i])
	}
	if cur.Len() > 0 {
		runs = append(runs, cur.String())
	}
	return runs
}

func compareRun(a, b string) int {
	an, aErr := strconv.Atoi(a)
	bn, bErr := strconv.Atoi(b)
	if aErr == nil && bErr == nil {
		switch {
		case an < bn:
			return -1
		case an > bn:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(a, b)
}

// SortLines orders a stop's lines per spec.md §4.6: sort_order ascending
// with none last, then humane-sort of code, then humane-sort of name.
func SortLines(lines []place.LineRef) {
	sort.SliceStable(lines, func(i, j int) bool {
		a, b := lines[i], lines[j]
		if (a.SortOrder == nil) != (b.SortOrder == nil) {
			return a.SortOrder != nil // non-nil (present) sorts before nil (none-last)
		}
		if a.SortOrder != nil && b.SortOrder != nil && *a.SortOrder != *b.SortOrder {
			return *a.SortOrder < *b.SortOrder
		}
		if c := humaneCompare(a.Code, b.Code); c != 0 {
			return c < 0
		}
		return humaneCompare(a.Name, b.Name) < 0
	})
}
