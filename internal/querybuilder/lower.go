package querybuilder

import (
	"fmt"
	"strings"

	"github.com/typesense/typesense-go/v2/typesense/api"
)

func ptr[T any](v T) *T {
	return &v
}

// Build lowers a Query into the native Typesense search params for one
// target collection/alias. Two of the must-clauses of spec.md §4.4 map onto
// Typesense's own primitives: the string clause to query_by (prefix vs
// ngram fields per Pass) and the importance clause to sort_by (a
// geo-distance term when Coord is set, else the weight field itself). The
// type clause's per-type boost table is rendered only by
// TypeBoostEvalSort; neither Build nor internal/search adds it to sort_by,
// so hits of different doc types are not ranked by type.
func Build(q Query) *api.SearchCollectionParams {
	var queryBy, queryByWeights string
	if q.Pass == PassPrefix {
		queryBy = "label,label.prefix,zip_codes"
		queryByWeights = "2,2,1"
	} else {
		queryBy = "label,label.ngram,zip_codes"
		queryByWeights = "1,1,1"
	}

	params := &api.SearchCollectionParams{
		Q:              q.Text,
		QueryBy:        queryBy,
		QueryByWeights: ptr(queryByWeights),
		PerPage:        ptr(q.Limit),
		Page:           ptr(q.Offset/max(q.Limit, 1) + 1),
	}

	if q.Pass == PassFuzzy {
		// Second filter clause, fuzzy pass: multi-match over
		// [label.ngram, zip_codes] with minimum_should_match=40%.
		params.MinimumShouldMatch = ptr("40%")
	} else {
		// Second filter clause, prefix pass: cross-fields AND multi-match
		// over [label.prefix, zip_codes]. Typesense has no per-subfield
		// match-group operator, so this is carried by forbidding
		// token-dropping on the query_by set above (which already spans
		// label.prefix and zip_codes): every query token must match
		// somewhere in query_by, the Typesense-native equivalent of an
		// AND multi-match.
		params.DropTokensThreshold = ptr(0)
	}

	var filters []string

	// House-number filter (spec.md §4.4): either the doc has no
	// house_number field, or it matches the raw query text.
	filters = append(filters, fmt.Sprintf("(house_number:null || house_number:=%s)", backtickFilterValue(q.Text)))

	if len(q.ZoneTypes) > 0 {
		filters = append(filters, fmt.Sprintf("zone_type:[%s]", strings.Join(q.ZoneTypes, ",")))
	}

	if q.ShapePolygon != nil {
		// Typesense has no native arbitrary-polygon filter, so the shape
		// is reduced to its bounding box at the wire layer here (expressed
		// as a 4-corner geo-polygon filter); internal/search refines hits
		// against the true polygon afterward, so the "geo-polygon on
		// approx_coord" contract holds despite the conservative wire filter.
		bbox := q.ShapePolygon.BBox()
		filters = append(filters, fmt.Sprintf(
			"approx_coord:(%f, %f, %f, %f, %f, %f, %f, %f)",
			bbox.MinLat, bbox.MinLon,
			bbox.MinLat, bbox.MaxLon,
			bbox.MaxLat, bbox.MaxLon,
			bbox.MaxLat, bbox.MinLon,
		))
	}

	if q.Coord != nil {
		// Importance clause: hits are sorted by distance to coord after
		// the text-match score. This is a sort, not a Gaussian decay, and
		// not a hard filter — the hard radius belongs to the reverse path
		// (internal/search/reverse.go), not forward autocomplete.
		params.SortBy = ptr(fmt.Sprintf("_text_match:desc,approx_coord(%f,%f):asc", q.Coord.Lat, q.Coord.Lon))
	} else {
		params.SortBy = ptr("_text_match:desc,weight:desc")
	}

	if len(filters) > 0 {
		joined := strings.Join(filters, " && ")
		params.FilterBy = &joined
	}

	return params
}

func backtickFilterValue(s string) string {
	return "`" + strings.ReplaceAll(s, "`", "") + "`"
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
