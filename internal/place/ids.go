package place

import "fmt"

// ID helpers implement the deterministic id grammar of spec.md §3.

// AdminID returns "admin:osm:relation:N".
func AdminID(osmRelationID int64) string {
	return fmt.Sprintf("admin:osm:relation:%d", osmRelationID)
}

// StreetID returns "street:osm:way:N", optionally disambiguated with a
// "-K" suffix when the same way yields multiple border-street documents
// (spec.md §4.1).
func StreetID(osmWayID int64, disambiguator int, hasDisambiguator bool) string {
	if hasDisambiguator {
		return fmt.Sprintf("street:osm:way:%d-%d", osmWayID, disambiguator)
	}
	return fmt.Sprintf("street:osm:way:%d", osmWayID)
}

// AddrID returns "addr:LON;LAT:HN".
func AddrID(lon, lat float64, houseNumber string) string {
	return fmt.Sprintf("addr:%s;%s:%s", trimFloat(lon), trimFloat(lat), houseNumber)
}

// PoiID returns "poi:osm:{node,way,relation}:N".
func PoiID(osmKind string, osmID int64) string {
	return fmt.Sprintf("poi:osm:%s:%d", osmKind, osmID)
}

// StopID returns "stop_area:{src_id}".
func StopID(sourceID string) string {
	return fmt.Sprintf("stop_area:%s", sourceID)
}

// trimFloat renders a coordinate the way the original source does: enough
// precision to round-trip typical OSM/BANO data (7 decimal places), with
// trailing zeros trimmed so ids stay stable across re-ingests of the same
// source value.
func trimFloat(f float64) string {
	s := fmt.Sprintf("%.7f", f)
	end := len(s)
	for end > 0 && s[end-1] == '0' {
		end--
	}
	if end > 0 && s[end-1] == '.' {
		end++ // keep one trailing zero after a bare decimal point
	}
	return s[:end]
}
