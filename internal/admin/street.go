package admin

import (
	"sort"

	"github.com/hove-io/munin/internal/geo"
	"github.com/hove-io/munin/internal/place"
)

// ForWayMidpoint resolves the admins a street belongs to by looking up the
// midpoint of its way geometry, per spec.md §4.1 ("street admin lookup is
// performed at the way's midpoint, not at each node"). nodes must be
// ordered along the way; an empty slice yields no admins.
func (h *Hierarchy) ForWayMidpoint(nodes []geo.Point, filter func(*place.AdminAttrs) bool) []*place.Place {
	if len(nodes) == 0 {
		return nil
	}
	mid := nodes[len(nodes)/2]
	return h.Containing(mid, filter)
}

// DisambiguateByCityHierarchy assigns a stable suffix to places that share
// a name and city but whose full admin chain differs, per spec.md §4.1's
// "per-distinct-city-hierarchy disambiguation" rule: places with an
// identical (name, city) pair but a different chain of admin ids beyond
// the city get " (2)", " (3)", ... appended to their label in ascending,
// lexicographic order of the chain signature. Places that are alone in
// their (name, city) group are left untouched.
func DisambiguateByCityHierarchy(places []*place.Place) {
	type group struct {
		key   string
		sigs  map[string][]*place.Place
		order []string
	}
	groups := map[string]*group{}

	for _, p := range places {
		city := p.FirstCityAdmin()
		cityName := ""
		if city != nil {
			cityName = city.Name
		}
		key := p.Name + "\x00" + cityName
		g, ok := groups[key]
		if !ok {
			g = &group{key: key, sigs: map[string][]*place.Place{}}
			groups[key] = g
		}
		sig := chainSignature(p)
		if _, seen := g.sigs[sig]; !seen {
			g.order = append(g.order, sig)
		}
		g.sigs[sig] = append(g.sigs[sig], p)
	}

	for _, g := range groups {
		if len(g.order) < 2 {
			continue
		}
		sort.Strings(g.order)
		for i, sig := range g.order {
			if i == 0 {
				continue
			}
			for _, p := range g.sigs[sig] {
				p.Label = p.Label + suffixFor(i + 1)
			}
		}
	}
}

func chainSignature(p *place.Place) string {
	sig := ""
	for _, a := range p.AdminRegions {
		sig += a.ID + "/"
	}
	return sig
}

func suffixFor(n int) string {
	digits := []byte{}
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return " (" + string(digits) + ")"
}
