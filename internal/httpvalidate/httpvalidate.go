// Package httpvalidate implements the §7 validation rules shared by the
// autocomplete and reverse HTTP handlers.
package httpvalidate

import (
	"github.com/hove-io/munin/internal/apierr"
	"github.com/hove-io/munin/internal/catalog"
	"github.com/hove-io/munin/internal/geo"
)

// MaxShapeBodyBytes is the POST body content-length cap spec.md §6 names.
const MaxShapeBodyBytes = 32 * 1024

// LatLon validates that lat/lon are both present or both absent, and that
// present values are within range. present must reflect whether the raw
// query string actually carried the param (a zero value is ambiguous with
// "absent").
func LatLon(lat, lon float64, latPresent, lonPresent bool) *apierr.Error {
	if latPresent != lonPresent {
		return apierr.Validation("the parameters lon AND lat should be provided together if you provide one of them")
	}
	if !latPresent {
		return nil
	}
	if lat < -90 || lat > 90 {
		return apierr.Validation("lat must be in [-90, 90], got %f", lat)
	}
	if lon < -180 || lon > 180 {
		return apierr.Validation("lon must be in [-180, 180], got %f", lon)
	}
	return nil
}

// NonEmptyQuery validates the `q` param for /autocomplete.
func NonEmptyQuery(q string) *apierr.Error {
	if q == "" {
		return apierr.Validation("q must not be empty")
	}
	return nil
}

// RequestTypes validates and resolves the raw type[] values, enforcing the
// closed vocabulary of spec.md §6/§7.
func RequestTypes(raw []string) ([]catalog.RequestType, *apierr.Error) {
	out := make([]catalog.RequestType, 0, len(raw))
	for _, r := range raw {
		rt := catalog.RequestType(r)
		if _, ok := catalog.ResolveRequestType(rt); !ok {
			return nil, apierr.Validation("unknown type[] value %q", r)
		}
		out = append(out, rt)
	}
	return out, nil
}

// ZoneTypeRequirement enforces "type[] contains zone => zone_type[] must be
// non-empty" (spec.md §7).
func ZoneTypeRequirement(types []catalog.RequestType, zoneTypes []string) *apierr.Error {
	for _, t := range types {
		if t == catalog.TypeZone && len(zoneTypes) == 0 {
			return apierr.Validation("type[]=zone requires a non-empty zone_type[] list")
		}
	}
	return nil
}

// ShapeBodySize enforces the POST body cap.
func ShapeBodySize(contentLength int64) *apierr.Error {
	if contentLength > MaxShapeBodyBytes {
		return apierr.Validation("request body exceeds %d bytes", MaxShapeBodyBytes)
	}
	return nil
}

// GeoJSONPolygon is the minimal shape of the POST body's `shape` field
// spec.md §6/§7 requires: a GeoJSON Feature with a Polygon geometry.
type GeoJSONPolygon struct {
	Type     string `json:"type"`
	Geometry struct {
		Type        string         `json:"type"`
		Coordinates [][][2]float64 `json:"coordinates"`
	} `json:"geometry"`
}

// ToPolygon converts the validated GeoJSON coordinates into a geo.Polygon.
// GeoJSON orders each position [lon, lat], matching geo.Point's field order,
// and nests the outer ring at index 0 followed by any holes.
func (f GeoJSONPolygon) ToPolygon() geo.Polygon {
	var poly geo.Polygon
	if len(f.Geometry.Coordinates) > 0 {
		poly.Outer = toPoints(f.Geometry.Coordinates[0])
	}
	for _, ring := range f.Geometry.Coordinates[1:] {
		poly.Holes = append(poly.Holes, toPoints(ring))
	}
	return poly
}

func toPoints(ring [][2]float64) []geo.Point {
	points := make([]geo.Point, len(ring))
	for i, c := range ring {
		points[i] = geo.Point{Lon: c[0], Lat: c[1]}
	}
	return points
}

// ValidateShapeFeature checks the decoded body is a Feature/Polygon pair.
func ValidateShapeFeature(f GeoJSONPolygon) *apierr.Error {
	if f.Type != "Feature" {
		return apierr.Validation("shape must be a GeoJSON Feature, got %q", f.Type)
	}
	if f.Geometry.Type != "Polygon" {
		return apierr.Validation("shape geometry must be a Polygon, got %q", f.Geometry.Type)
	}
	if len(f.Geometry.Coordinates) == 0 || len(f.Geometry.Coordinates[0]) < 4 {
		return apierr.Validation("shape polygon must have at least 4 coordinates in its outer ring")
	}
	return nil
}
