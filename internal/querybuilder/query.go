// Package querybuilder builds the structured query spec.md §4.4 describes
// — type/string/importance must-clauses plus a filter block — and lowers
// it to the backing store's native query shape (internal/store, wrapping
// Typesense's query_by/filter_by/sort_by DSL).
package querybuilder

import (
	"fmt"

	"github.com/hove-io/munin/internal/catalog"
	"github.com/hove-io/munin/internal/geo"
)

// Pass selects which of the two search passes (spec.md §4.5 steps 3-5) a
// Query targets; the string clause and second filter clause both differ
// between them.
type Pass int

const (
	PassPrefix Pass = iota
	PassFuzzy
)

// typeBoost is the fixed, load-bearing boost table from spec.md §4.4 —
// ordering streets below admins and addresses is what keeps a street named
// "Rue de Paris" from outranking the city "Paris".
var typeBoost = map[catalog.DocType]int{
	catalog.DocTypeAddr:   12,
	catalog.DocTypeAdmin:  11,
	catalog.DocTypeStop:   10,
	catalog.DocTypePoi:    2,
	catalog.DocTypeStreet: 1,
}

const typeClauseOuterBoost = 20
const importanceGeoOuterBoost = 100
const importanceWeightOuterBoost = 30
const importanceGeoScaleMeters = 50_000

// TypeBoostEvalSort renders the type clause's per-type boost table as a
// Typesense `_eval` sort expression, for use only when a search spans a
// mixed-type alias (the root alias, or a per-type alias with multiple
// datasets is not mixed-type and doesn't need this). Single-doc-type
// collections never need it since every hit already shares one boost.
func TypeBoostEvalSort() string {
	return fmt.Sprintf(
		"_eval([(doc_type:addr):%d,(doc_type:admin):%d,(doc_type:stop):%d,(doc_type:poi):%d,(doc_type:street):%d]):desc",
		typeBoost[catalog.DocTypeAddr]*typeClauseOuterBoost,
		typeBoost[catalog.DocTypeAdmin]*typeClauseOuterBoost,
		typeBoost[catalog.DocTypeStop]*typeClauseOuterBoost,
		typeBoost[catalog.DocTypePoi]*typeClauseOuterBoost,
		typeBoost[catalog.DocTypeStreet]*typeClauseOuterBoost,
	)
}

// Query is the structured request the coordinator assembles from HTTP
// params before handing it to Build.
type Query struct {
	Text string
	Pass Pass

	Coord *geo.Point // present => hits tied on text match are sorted by distance to it

	// ShapePolygon, when set, scopes results to a geo-polygon (spec.md
	// §4.4 "Geo filters"). Whether it applies to a given doc-type at all
	// (shape_scope[]) is decided by the caller before Build is invoked —
	// per-index inclusion/exclusion lives in internal/search, since Build
	// only ever sees one collection/alias at a time and has no doc-type
	// context of its own.
	ShapePolygon *geo.Polygon

	ZoneTypes []string // restricts admin results; validated by ValidateZoneTypeRequest

	Limit, Offset int
}

// ErrZoneTypeRequired is returned when type[]=zone is requested without a
// zone_type[] list, a validation error per spec.md §7.
var ErrZoneTypeRequired = fmt.Errorf("querybuilder: type=zone requires a non-empty zone_type[] list")

// ValidateZoneTypeRequest enforces spec.md §7's "type[] contains zone ⇒
// zone_type[] must be non-empty" rule. It must be called with the raw
// request type[] values (before catalog.ResolveRequestType collapses
// "zone" and the deprecated "city" alias onto the same DocType) since only
// an explicit "zone" request carries the requirement.
func ValidateZoneTypeRequest(types []catalog.RequestType, zoneTypes []string) error {
	for _, t := range types {
		if t == catalog.TypeZone && len(zoneTypes) == 0 {
			return ErrZoneTypeRequired
		}
	}
	return nil
}
