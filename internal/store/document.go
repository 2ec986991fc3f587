package store

import (
	"fmt"

	"github.com/hove-io/munin/internal/place"
)

// ToDocument flattens a Place into the map shape PlaceSchema describes,
// ready for ImportDocuments/UpsertDocument. dataset is the dataset the
// owning index was built for (empty for undated, non-partitioned types).
func ToDocument(p *place.Place, dataset string) map[string]interface{} {
	doc := map[string]interface{}{
		"id":           p.ID,
		"doc_type":     string(p.Kind),
		"label":        p.Label,
		"coord":        []float64{p.Coord.Lat, p.Coord.Lon},
		"approx_coord": []float64{p.Coord.Lat, p.Coord.Lon},
		"weight":       p.Weight,
		"indexed_at":   p.IndexedAt.UnixMicro(),
	}
	if dataset != "" {
		doc["dataset"] = dataset
	}
	if p.Name != "" {
		doc["name"] = p.Name
	}
	if len(p.ZipCodes) > 0 {
		doc["zip_codes"] = p.ZipCodes
	}
	if len(p.CountryCodes) > 0 {
		doc["country_codes"] = p.CountryCodes
	}
	if len(p.AdminRegions) > 0 {
		ids := make([]string, len(p.AdminRegions))
		for i, a := range p.AdminRegions {
			ids[i] = a.ID
		}
		doc["admin_region_ids"] = ids
	}

	switch p.Kind {
	case place.KindAdmin:
		a := p.Admin
		doc["zone_type"] = string(a.ZoneType)
		doc["insee"] = a.Insee
		doc["level"] = a.Level
		doc["is_city"] = a.IsCity
		doc["population"] = a.Population
	case place.KindAddr:
		doc["house_number"] = p.Addr.HouseNumber
		if p.Addr.Street != nil {
			doc["street_id"] = p.Addr.Street.ID
		}
	case place.KindPoi:
		doc["poi_type_id"] = p.Poi.PoiType.ID
		if dataset != "" {
			doc["poi_dataset"] = dataset
		}
	case place.KindStop:
		s := p.Stop
		doc["commercial_modes"] = s.CommercialModes
		doc["physical_modes"] = s.PhysicalModes
		doc["coverages"] = s.Coverages
		doc["autocomplete_visible"] = s.AutocompleteVisible
	}
	return doc
}

// FromDocument decodes hit source fields back into a minimal Place: the
// common id, kind, label, name, weight and coord, plus the variant attrs
// struct Kind selects, of which only an Addr's house number is filled in.
// It is lossy versus ToDocument: zip codes, admin regions and the other
// variant fields are not restored.
func FromDocument(doc map[string]interface{}) (*place.Place, error) {
	id, _ := doc["id"].(string)
	kind, _ := doc["doc_type"].(string)
	if id == "" || kind == "" {
		return nil, fmt.Errorf("store: document missing id/doc_type")
	}
	label, _ := doc["label"].(string)
	name, _ := doc["name"].(string)
	weight, _ := doc["weight"].(float64)

	p := &place.Place{
		ID:     id,
		Kind:   place.Kind(kind),
		Label:  label,
		Name:   name,
		Weight: weight,
	}
	if coord, ok := doc["coord"].([]interface{}); ok && len(coord) == 2 {
		lat, _ := coord[0].(float64)
		lon, _ := coord[1].(float64)
		p.Coord.Lat = lat
		p.Coord.Lon = lon
	}
	switch p.Kind {
	case place.KindAdmin:
		p.Admin = &place.AdminAttrs{}
	case place.KindStreet:
		p.Street = &place.StreetAttrs{}
	case place.KindAddr:
		houseNumber, _ := doc["house_number"].(string)
		p.Addr = &place.AddrAttrs{HouseNumber: houseNumber}
	case place.KindPoi:
		p.Poi = &place.PoiAttrs{}
	case place.KindStop:
		p.Stop = &place.StopAttrs{}
	}
	return p, nil
}
