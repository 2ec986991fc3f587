package ingest

import (
	"fmt"
	"time"

	"github.com/hove-io/munin/internal/admin"
	"github.com/hove-io/munin/internal/geo"
	"github.com/hove-io/munin/internal/place"
	"github.com/hove-io/munin/internal/weight"
)

// AdminSource is one raw administrative zone (e.g. a cosmogony Zone),
// grounded on original_source's admin.go IntoAdmin/read_admin_in_cosmogony_file.
type AdminSource struct {
	ID         string
	Name       string
	ParentID   string // empty at the root
	Level      int
	ZoneType   place.ZoneType
	IsCity     bool
	Insee      string
	Population float64
	ZipCodes   []string
	Names      place.LocaleStrings
	Labels     place.LocaleStrings
	Boundary   geo.MultiPolygon
	Coord      geo.Point
}

// BuildAdminHierarchy implements the two-pass admin load of spec.md §9
// "AdminHierarchy construction avoids cycles": a first, boundary-less pass
// builds a parent-chain lookup cache (just the id/parent_id graph), then a
// second pass builds the real, boundary-carrying admin Places, denormalizing
// each one's full ParentChain (walked against the first pass's cache, hop-
// capped) into AdminRegions before inserting it into the final spatial
// Hierarchy.
func BuildAdminHierarchy(sources []AdminSource, maxPopulation float64, now time.Time) (*admin.Hierarchy, error) {
	cache := admin.NewHierarchy()
	for _, s := range sources {
		p, err := place.NewAdmin(s.ID, s.Name, s.Coord, place.AdminAttrs{
			Level:      s.Level,
			ZoneType:   s.ZoneType,
			ParentID:   s.ParentID,
			IsCity:     s.IsCity,
			Insee:      s.Insee,
			Population: s.Population,
			ZipCodes:   s.ZipCodes,
		}, now)
		if err != nil {
			// An admin with no usable coord is left out of the parent-chain
			// cache; the second pass below returns an error for it.
			continue
		}
		cache.Insert(p)
	}

	final := admin.NewHierarchy()
	built := make([]*place.Place, 0, len(sources))
	for _, s := range sources {
		p, err := place.NewAdmin(s.ID, s.Name, s.Coord, place.AdminAttrs{
			Level:      s.Level,
			ZoneType:   s.ZoneType,
			ParentID:   s.ParentID,
			IsCity:     s.IsCity,
			Insee:      s.Insee,
			Population: s.Population,
			ZipCodes:   s.ZipCodes,
			Names:      s.Names,
			Labels:     s.Labels,
			Boundary:   s.Boundary,
			BBox:       s.Boundary.BBox(),
		}, now)
		if err != nil {
			return nil, fmt.Errorf("admin %s: %w", s.ID, err)
		}
		p.Weight = weight.AdminWeight(s.Population, maxPopulation)
		built = append(built, p)
		final.Insert(p)
	}

	// Every final Place now exists in `final`'s byID map, so a chain walked
	// against the boundary-less `cache` can be resolved to the real,
	// boundary-carrying Places regardless of source ordering.
	for _, p := range built {
		cached, ok := cache.ByID(p.ID)
		if !ok {
			continue
		}
		chain := cache.ParentChain(cached)
		regions := make([]*place.Place, 0, len(chain))
		for _, c := range chain {
			if real, ok := final.ByID(c.ID); ok {
				regions = append(regions, real)
			}
		}
		if err := p.SetAdminRegions(regions); err != nil {
			return nil, fmt.Errorf("admin %s: %w", p.ID, err)
		}
	}

	return final, nil
}
