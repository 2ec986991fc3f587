// Package geo provides coordinate validation, distance and point-in-polygon
// helpers shared by the admin hierarchy, ingest pipelines and query builder.
package geo

import "math"

const earthRadiusMeters = 6371000.0

// Point is a WGS84 coordinate, (lon, lat) order to match GeoJSON.
type Point struct {
	Lon float64
	Lat float64
}

// IsDefault reports whether the point is the (0,0) sentinel mimirsbrunn
// treats as "unknown" (spec.md §3).
func (p Point) IsDefault() bool {
	return p.Lon == 0 && p.Lat == 0
}

// Valid reports whether the point is within WGS84 bounds and not the
// (0,0) sentinel.
func (p Point) Valid() bool {
	if p.Lon < -180 || p.Lon > 180 || p.Lat < -90 || p.Lat > 90 {
		return false
	}
	return !p.IsDefault()
}

// Haversine returns the great-circle distance in meters between a and b.
func Haversine(a, b Point) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusMeters * c
}

// BBox is an axis-aligned rectangle in (lon, lat) space.
type BBox struct {
	MinLon, MinLat, MaxLon, MaxLat float64
}

// Contains reports whether p falls within the bbox, inclusive.
func (b BBox) Contains(p Point) bool {
	return p.Lon >= b.MinLon && p.Lon <= b.MaxLon && p.Lat >= b.MinLat && p.Lat <= b.MaxLat
}

// Intersects reports whether two bboxes overlap.
func (b BBox) Intersects(o BBox) bool {
	return b.MinLon <= o.MaxLon && b.MaxLon >= o.MinLon &&
		b.MinLat <= o.MaxLat && b.MaxLat >= o.MinLat
}

// Union returns the smallest bbox containing both b and o.
func (b BBox) Union(o BBox) BBox {
	return BBox{
		MinLon: math.Min(b.MinLon, o.MinLon),
		MinLat: math.Min(b.MinLat, o.MinLat),
		MaxLon: math.Max(b.MaxLon, o.MaxLon),
		MaxLat: math.Max(b.MaxLat, o.MaxLat),
	}
}

// BBoxFromPoints computes the bounding rectangle of a point set. Returns
// the zero value when points is empty.
func BBoxFromPoints(points []Point) BBox {
	if len(points) == 0 {
		return BBox{}
	}
	b := BBox{MinLon: points[0].Lon, MaxLon: points[0].Lon, MinLat: points[0].Lat, MaxLat: points[0].Lat}
	for _, p := range points[1:] {
		b.MinLon = math.Min(b.MinLon, p.Lon)
		b.MaxLon = math.Max(b.MaxLon, p.Lon)
		b.MinLat = math.Min(b.MinLat, p.Lat)
		b.MaxLat = math.Max(b.MaxLat, p.Lat)
	}
	return b
}

// Polygon is an outer closed ring plus optional holes, matching GeoJSON
// Polygon coordinate nesting.
type Polygon struct {
	Outer []Point
	Holes [][]Point
}

// Contains reports whether p lies inside the polygon's outer ring and
// outside all of its holes, using the standard ray-casting algorithm.
func (poly Polygon) Contains(p Point) bool {
	if !ringContains(poly.Outer, p) {
		return false
	}
	for _, hole := range poly.Holes {
		if ringContains(hole, p) {
			return false
		}
	}
	return true
}

func ringContains(ring []Point, p Point) bool {
	if len(ring) < 3 {
		return false
	}
	inside := false
	j := len(ring) - 1
	for i := 0; i < len(ring); i++ {
		pi, pj := ring[i], ring[j]
		if (pi.Lat > p.Lat) != (pj.Lat > p.Lat) {
			slope := (pj.Lon-pi.Lon)*(p.Lat-pi.Lat)/(pj.Lat-pi.Lat) + pi.Lon
			if p.Lon < slope {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// BBox computes the bounding rectangle of the polygon's outer ring; holes
// never extend a polygon's extent so they don't factor in.
func (poly Polygon) BBox() BBox {
	return BBoxFromPoints(poly.Outer)
}

// MultiPolygon is an administrative boundary: a place's territory can be
// disjoint (islands, enclaves).
type MultiPolygon []Polygon

// Contains reports whether p falls inside any constituent polygon.
func (mp MultiPolygon) Contains(p Point) bool {
	for _, poly := range mp {
		if poly.Contains(p) {
			return true
		}
	}
	return false
}

// BBox computes the bounding rectangle across all constituent polygons.
func (mp MultiPolygon) BBox() BBox {
	var pts []Point
	for _, poly := range mp {
		pts = append(pts, poly.Outer...)
	}
	return BBoxFromPoints(pts)
}
