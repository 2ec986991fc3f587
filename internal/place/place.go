// Package place implements the canonical in-memory Place model: a closed
// tagged union over Admin, Street, Addr, Poi and Stop, as specified in
// spec.md §3. Downcasting by doc-type string happens once, at the store's
// hit-decoding boundary (internal/store); everywhere else code branches on
// Kind directly, per spec.md §9 "Variant dispatch".
package place

import (
	"errors"
	"time"

	"github.com/hove-io/munin/internal/geo"
)

// Kind discriminates the Place variants.
type Kind string

const (
	KindAdmin  Kind = "admin"
	KindStreet Kind = "street"
	KindAddr   Kind = "addr"
	KindPoi    Kind = "poi"
	KindStop   Kind = "stop"
)

// ZoneType enumerates the administrative zone classifications used by
// §4.4's zone_type filter and §4.2's `city` deprecated-alias resolution.
type ZoneType string

const (
	ZoneTypeCity          ZoneType = "city"
	ZoneTypeStateDistrict ZoneType = "state_district"
	ZoneTypeState         ZoneType = "state"
	ZoneTypeCountry       ZoneType = "country"
	ZoneTypeSuburb        ZoneType = "suburb"
	ZoneTypeCityDistrict  ZoneType = "city_district"
)

// Names and Labels are small locale maps; a map alias keeps call sites
// readable while still being a plain Go map under the hood.
type LocaleStrings map[string]string

// Get returns the value for lang, falling back to def when absent.
func (l LocaleStrings) Get(lang, def string) string {
	if l == nil {
		return def
	}
	if v, ok := l[lang]; ok && v != "" {
		return v
	}
	return def
}

// AdminAttrs carries the Admin-variant-specific attributes of spec.md §3.
type AdminAttrs struct {
	Insee     string
	Level     int
	ZoneType  ZoneType
	ParentID  string
	Boundary  geo.MultiPolygon // not indexed
	BBox      geo.BBox
	Names     LocaleStrings
	Labels    LocaleStrings
	IsCity    bool
	// Population feeds weight.AdminWeight; zero when the source carries none.
	Population float64
	// ZipCodes are the admin's own postcodes (read from source boundary tags),
	// aggregated onto non-admin places via zipCodesFromAdmins at ingest time.
	ZipCodes []string
}

// StreetAttrs carries the Street-variant attributes.
type StreetAttrs struct {
	// AdminRegions duplicated onto the common field; kept here too so a
	// Street can be reconstructed standalone from raw import data before
	// admin denormalization populates the common field.
}

// AddrAttrs carries the Addr-variant attributes.
type AddrAttrs struct {
	HouseNumber string
	Street      *Place // embedded Street, no house number
}

// PoiTypeRef names a POI's category (spec.md §3: `{id, name}`).
type PoiTypeRef struct {
	ID   string
	Name string
}

// PoiAttrs carries the Poi-variant attributes.
type PoiAttrs struct {
	PoiType    PoiTypeRef
	Properties map[string]string
	Address    *Place // embedded Street or Addr
	Names      LocaleStrings
	Labels     LocaleStrings
	Children   []*Place
}

// LineRef is one line serving a Stop.
type LineRef struct {
	ID           string
	Name         string
	Code         string
	SortOrder    *int // nil means "no sort_order", sorts last
	CommercialMode string
	PhysicalMode   string
}

// StopAttrs carries the Stop-variant attributes.
type StopAttrs struct {
	Lines             []LineRef
	CommercialModes   []string
	PhysicalModes     []string
	Codes             map[string]string
	FeedPublishers    []string
	Comments          []string
	Timezone          string
	Coverages         []string // datasets this stop belongs to
	AutocompleteVisible bool
}

// Place is the tagged-union document every ingest pipeline produces and
// every query result is decoded into. Exactly one of the *Attrs fields is
// non-nil, selected by Kind.
type Place struct {
	ID          string
	Kind        Kind
	Label       string
	Name        string
	Coord       geo.Point
	ApproxCoord geo.Point // duplicate of Coord, geo-shape-typed at index time
	Weight      float64
	ZipCodes    []string
	AdminRegions []*Place // ordered: city-admins first, then the rest
	CountryCodes []string
	Distance    *float64 // meters to query coord, response-time only
	Context     string   // explainability only, never indexed
	IndexedAt   time.Time

	Admin  *AdminAttrs
	Street *StreetAttrs
	Addr   *AddrAttrs
	Poi    *PoiAttrs
	Stop   *StopAttrs
}

var (
	// ErrDefaultCoord is returned by constructors when the coordinate is
	// the (0,0) "unknown" sentinel — spec.md §3: "rejected at ingest, not
	// indexed."
	ErrDefaultCoord = errors.New("place: coord is the (0,0) unknown sentinel")
	// ErrInvalidCoord is returned when the coordinate is out of WGS84 range.
	ErrInvalidCoord = errors.New("place: coord out of WGS84 range")
	// ErrAdminOrdering is returned when AdminRegions violates the
	// city-before-non-city ordering invariant.
	ErrAdminOrdering = errors.New("place: city admins must precede non-city admins")
)

// ValidateCoord enforces spec.md §3's coordinate invariant.
func ValidateCoord(c geo.Point) error {
	if c.IsDefault() {
		return ErrDefaultCoord
	}
	if !c.Valid() {
		return ErrInvalidCoord
	}
	return nil
}

// ValidateAdminOrdering enforces: if AdminRegions is non-empty, every
// is_city admin precedes every non-city admin.
func ValidateAdminOrdering(regions []*Place) error {
	seenNonCity := false
	for _, r := range regions {
		isCity := r.Admin != nil && r.Admin.IsCity
		if isCity && seenNonCity {
			return ErrAdminOrdering
		}
		if !isCity {
			seenNonCity = true
		}
	}
	return nil
}

// FirstCityAdmin returns the first admin in AdminRegions with IsCity set,
// or nil. Because of the ordering invariant this is always at index 0 when
// any city admin is present.
func (p *Place) FirstCityAdmin() *Place {
	for _, r := range p.AdminRegions {
		if r.Admin != nil && r.Admin.IsCity {
			return r
		}
	}
	return nil
}

// DeriveCountryCodes returns the country codes of the deepest (highest
// level) admin in regions that carries any, per spec.md §3 "derived from
// the deepest admin that carries one"; nil when none does.
func DeriveCountryCodes(regions []*Place) []string {
	var best *Place
	var codes []string
	for _, r := range regions {
		if r.Admin == nil {
			continue
		}
		c := countryCodesFromAdmin(r)
		if len(c) == 0 {
			continue
		}
		if best == nil || r.Admin.Level > best.Admin.Level {
			best, codes = r, c
		}
	}
	return codes
}

func countryCodesFromAdmin(a *Place) []string {
	if a.Admin == nil || a.Admin.ZoneType != ZoneTypeCountry {
		// Only a country-level admin contributes codes, and only those set
		// on its own CountryCodes field.
		return nil
	}
	if a.CountryCodes != nil {
		return a.CountryCodes
	}
	return nil
}
