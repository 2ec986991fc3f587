// Package catalog implements IndexCatalog (spec.md §4.2): the naming,
// aliasing and dated-index conventions mapping (doc_type, dataset) to a
// physical index name, and the query-time index-selection algorithm.
package catalog

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// DocType is one of the five physical document families an index holds.
type DocType string

const (
	DocTypeAddr   DocType = "addr"
	DocTypeStreet DocType = "street"
	DocTypeAdmin  DocType = "admin"
	DocTypePoi    DocType = "poi"
	DocTypeStop   DocType = "stop"
)

// RequestType is an external `type[]` value accepted by the HTTP surface
// (spec.md §6). TypeCity is a deprecated alias resolved to zone+zone_type=city
// (spec.md §9 — the newer, authoritative behavior).
type RequestType string

const (
	TypeHouse    RequestType = "house"
	TypePoi      RequestType = "poi"
	TypeStreet   RequestType = "street"
	TypeZone     RequestType = "zone"
	TypeStopArea RequestType = "public_transport:stop_area"
	TypeCity     RequestType = "city" // deprecated; see ResolveRequestType
)

// ResolveRequestType maps an external request type to the DocType whose
// alias must be hit, per the §4.2 mapping table. TypeCity resolves to
// DocTypeAdmin: the newer build_es_indices_to_search behavior, which is
// authoritative per spec.md §9 Open Question 3 — selection is identical to
// TypeZone, and the distinction (zone_type=city) is enforced as a query
// filter by internal/querybuilder, not by index selection.
func ResolveRequestType(t RequestType) (DocType, bool) {
	switch t {
	case TypeHouse:
		return DocTypeAddr, true
	case TypePoi:
		return DocTypePoi, true
	case TypeStreet:
		return DocTypeStreet, true
	case TypeZone, TypeCity:
		return DocTypeAdmin, true
	case TypeStopArea:
		return DocTypeStop, true
	default:
		return "", false
	}
}

// DefaultRequestTypes is the type set used when a search request specifies
// no type[] filter at all (spec.md §4.2).
var DefaultRequestTypes = []DocType{DocTypeAddr, DocTypeStreet, DocTypeAdmin, DocTypePoi}

const timestampLayout = "20060102_150405.000000"

// Catalog owns the process-wide alias root and the naming grammar.
type Catalog struct {
	Root string
}

// New returns a Catalog rooted at root (conventionally "munin").
func New(root string) *Catalog {
	return &Catalog{Root: root}
}

// Alias returns the undated alias name for (docType, dataset). An empty
// dataset yields the per-doc-type alias `{root}_{docType}`; a non-empty one
// yields the per-(doc_type,dataset) alias `{root}_{docType}_{dataset}`.
func (c *Catalog) Alias(docType DocType, dataset string) string {
	if dataset == "" {
		return fmt.Sprintf("%s_%s", c.Root, docType)
	}
	return fmt.Sprintf("%s_%s_%s", c.Root, docType, dataset)
}

// RootAlias returns the alias aggregating every doc type and dataset.
func (c *Catalog) RootAlias() string {
	return c.Root
}

// PhysicalIndexName returns the dated physical-index name created at
// ingest time for (docType, dataset) at instant ts.
func (c *Catalog) PhysicalIndexName(docType DocType, dataset string, ts time.Time) string {
	stamp := formatTimestamp(ts)
	if dataset == "" {
		return fmt.Sprintf("%s_%s_%s", c.Root, docType, stamp)
	}
	return fmt.Sprintf("%s_%s_%s_%s", c.Root, docType, dataset, stamp)
}

func formatTimestamp(ts time.Time) string {
	// YYYYMMDD_HHMMSS_FFFFFF, microsecond precision, per spec.md "Index identity".
	return fmt.Sprintf("%s_%06d", ts.UTC().Format("20060102_150405"), ts.UTC().Nanosecond()/1000)
}

var timestampRe = regexp.MustCompile(`^\d{8}_\d{6}_\d{6}$`)

// SplitIndexName is the inverse of PhysicalIndexName/Alias: given a full
// index or alias name, it recovers (docType, dataset, timestamp, isDated).
// Returns ok=false if name does not start with the catalog's root.
func (c *Catalog) SplitIndexName(name string) (docType DocType, dataset string, timestamp string, isDated bool, ok bool) {
	prefix := c.Root + "_"
	if name == c.Root {
		return "", "", "", false, true
	}
	if !strings.HasPrefix(name, prefix) {
		return "", "", "", false, false
	}
	rest := strings.TrimPrefix(name, prefix)
	parts := strings.Split(rest, "_")
	if len(parts) == 0 {
		return "", "", "", false, false
	}

	// The last three segments may be the dated timestamp
	// (`YYYYMMDD_HHMMSS_FFFFFF`, three underscore-separated fields).
	if len(parts) >= 3 {
		candidate := strings.Join(parts[len(parts)-3:], "_")
		if timestampRe.MatchString(candidate) {
			timestamp = candidate
			isDated = true
			parts = parts[:len(parts)-3]
		}
	}

	if len(parts) == 0 {
		return "", "", "", false, false
	}
	docType = DocType(parts[0])
	if len(parts) > 1 {
		dataset = strings.Join(parts[1:], "_")
	}
	return docType, dataset, timestamp, isDated, true
}
