package ingest

import (
	"fmt"
	"sort"
	"time"

	"github.com/hove-io/munin/internal/admin"
	"github.com/hove-io/munin/internal/geo"
	"github.com/hove-io/munin/internal/place"
	"github.com/hove-io/munin/internal/response"
	"github.com/hove-io/munin/internal/weight"
)

// StreetWay is one OSM way candidate, grounded on original_source's
// osm_reader/street.rs inner_streets: tags plus an ordered node geometry so
// admin lookup can use the way's midpoint (internal/admin.ForWayMidpoint).
type StreetWay struct {
	ID    int64
	Tags  map[string]string
	Nodes []geo.Point
}

func (w StreetWay) name() string { return w.Tags["name"] }

// StreetRelationMember is one member of an associatedStreet relation.
type StreetRelationMember struct {
	Way  StreetWay
	Role string
}

// StreetRelation models an OSM `type=associatedStreet` relation: its member
// ways are collapsed into one street and blocklisted from the way pass
// (spec.md §4.6 "Streets corner cases").
type StreetRelation struct {
	ID      int64
	Tags    map[string]string // rel.tags.get("name") lives here
	Members []StreetRelationMember
}

// StreetExclusion configures which highway/public_transport tag values
// disqualify an OSM way from being a street, per spec.md §4.6.
type StreetExclusion struct {
	Highway         []string
	PublicTransport []string
}

func (e StreetExclusion) excludes(list []string, v string) bool {
	for _, k := range list {
		if k == v {
			return true
		}
	}
	return false
}

// qualifies reports whether way is a valid street candidate: non-empty name,
// a highway tag not in the exclusion list, and no excluded public_transport
// tag (spec.md §4.6 "Streets corner cases").
func (e StreetExclusion) qualifies(w StreetWay) bool {
	name := w.Tags["name"]
	if name == "" {
		return false
	}
	highway, hasHighway := w.Tags["highway"]
	if !hasHighway || highway == "" || e.excludes(e.Highway, highway) {
		return false
	}
	if pt, ok := w.Tags["public_transport"]; ok && e.excludes(e.PublicTransport, pt) {
		return false
	}
	return true
}

type namedAdmins struct {
	name   string
	admins []*place.Place
}

// BuildStreets implements spec.md §4.6's street pipeline skeleton: merge all
// ways sharing (name, city) into one document keyed by the smallest OSM way
// id, collapse associatedStreet relations into one street per relation and
// blocklist their member ways, then disambiguate same-(name,city) streets
// whose full admin chain differs.
//
// Weight is 0 when each street is built; once admins are attached and
// disambiguation is done, a final pass sets it to weight.StreetWeight of
// the street's first city admin (0 when it has none).
func BuildStreets(ways []StreetWay, relations []StreetRelation, excl StreetExclusion, h *admin.Hierarchy, now time.Time) ([]*place.Place, error) {
	blocklist := map[int64]bool{}
	for _, rel := range relations {
		for _, m := range rel.Members {
			blocklist[m.Way.ID] = true
		}
	}

	var streets []*place.Place

	for _, rel := range relations {
		var streetMember *StreetRelationMember
		for i, m := range rel.Members {
			if m.Role == "street" {
				streetMember = &rel.Members[i]
				break
			}
		}
		if streetMember == nil {
			continue
		}
		name := rel.Tags["name"]
		if name == "" {
			name = streetMember.Way.name()
		}
		if name == "" {
			continue
		}
		admins := h.ForWayMidpoint(streetMember.Way.Nodes, nil)
		built, err := buildStreetsForAdmins(name, fmt.Sprintf("street:osm:relation:%d", rel.ID), groupByCity(admins), streetMember.Way.Nodes, now)
		if err != nil {
			return nil, err
		}
		streets = append(streets, built...)
	}

	// Merge ways by (name, city), keeping the smallest way id per pair.
	type merged struct {
		wayID  int64
		way    StreetWay
		admins []*place.Place
	}
	byNameCity := map[string]*merged{}
	var order []string

	for _, w := range ways {
		if blocklist[w.ID] {
			continue
		}
		if !excl.qualifies(w) {
			continue
		}
		name := w.name()
		for _, na := range groupByCity(h.ForWayMidpoint(w.Nodes, nil)) {
			city := na.name
			if city == "" {
				continue // per original: ways with no city admin are dropped
			}
			key := name + "\x00" + city
			cur, ok := byNameCity[key]
			if !ok {
				byNameCity[key] = &merged{wayID: w.ID, way: w, admins: na.admins}
				order = append(order, key)
				continue
			}
			if w.ID < cur.wayID {
				cur.wayID = w.ID
				cur.way = w
				cur.admins = na.admins
			}
		}
	}

	// Group surviving (name,city) entries by the winning way id: one way id
	// may serve more than one city-admin chain if the way itself straddles
	// several admin boundaries.
	byWayID := map[int64][]namedAdmins{}
	var wayIDOrder []int64
	wayByID := map[int64]StreetWay{}
	for _, key := range order {
		m := byNameCity[key]
		if _, seen := wayByID[m.wayID]; !seen {
			wayIDOrder = append(wayIDOrder, m.wayID)
		}
		wayByID[m.wayID] = m.way
		byWayID[m.wayID] = append(byWayID[m.wayID], namedAdmins{name: m.way.name(), admins: m.admins})
	}

	for _, id := range wayIDOrder {
		w := wayByID[id]
		built, err := buildStreetsForAdmins(w.name(), fmt.Sprintf("street:osm:way:%d", id), byWayID[id], w.Nodes, now)
		if err != nil {
			return nil, err
		}
		streets = append(streets, built...)
	}

	admin.DisambiguateByCityHierarchy(streets)
	for _, s := range streets {
		cityWeight := 0.0
		if city := s.FirstCityAdmin(); city != nil {
			cityWeight = city.Weight
		}
		s.Weight = weight.StreetWeight(cityWeight)
	}
	return streets, nil
}

// groupByCity partitions a flat admin chain into the (possibly several)
// distinct branches get_street_admin would have returned — here admins is
// already one branch per ForWayMidpoint call, so this wraps it as a
// single-element group keyed by the first city admin's name.
func groupByCity(admins []*place.Place) []namedAdmins {
	if len(admins) == 0 {
		return nil
	}
	city := ""
	for _, a := range admins {
		if a.Admin != nil && a.Admin.IsCity {
			city = a.Name
			break
		}
	}
	return []namedAdmins{{name: city, admins: admins}}
}

// buildStreetsForAdmins emits one street document per distinct admin chain
// sharing (name, wayIDPrefix), suffixing ids with "-i" only when more than
// one chain applies, per original_source's build_streets_for_admins.
func buildStreetsForAdmins(name, idPrefix string, groups []namedAdmins, nodes []geo.Point, now time.Time) ([]*place.Place, error) {
	if len(groups) == 0 || name == "" {
		return nil, nil
	}
	sort.Slice(groups, func(i, j int) bool { return adminChainKey(groups[i].admins) < adminChainKey(groups[j].admins) })

	var coord geo.Point
	if len(nodes) > 0 {
		coord = nodes[len(nodes)/2]
	}

	single := len(groups) == 1
	var out []*place.Place
	for i, g := range groups {
		id := idPrefix
		if !single {
			id = fmt.Sprintf("%s-%d", idPrefix, i)
		}
		p, err := place.NewStreet(id, name, coord, now)
		if err != nil {
			return nil, fmt.Errorf("street %s: %w", id, err)
		}
		if err := p.SetAdminRegions(g.admins); err != nil {
			return nil, fmt.Errorf("street %s: %w", id, err)
		}
		p.ZipCodes = zipCodesFromAdmins(g.admins)
		p.Label = response.FormatStreetLabel(name, g.admins)
		out = append(out, p)
	}
	return out, nil
}

func adminChainKey(admins []*place.Place) string {
	key := ""
	for _, a := range admins {
		key += a.ID + "/"
	}
	return key
}
