package response

import (
	"github.com/hove-io/munin/internal/catalog"
	"github.com/hove-io/munin/internal/geo"
	"github.com/hove-io/munin/internal/place"
)

// FeatureCollection is the GeocodeJSON envelope ResponseFormatter produces.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Geocoding *Metadata `json:"geocoding,omitempty"`
	Features  []Feature `json:"features"`
}

// Metadata is the top-level `geocoding` block GeocodeJSON responses carry
// (query text and version, not to be confused with per-feature
// `properties.geocoding`).
type Metadata struct {
	Version string `json:"version"`
	Query   string `json:"query"`
}

// Feature is one GeocodeJSON feature.
type Feature struct {
	Type       string      `json:"type"`
	Geometry   Geometry    `json:"geometry"`
	Properties Properties  `json:"properties"`
	Distance   *float64    `json:"distance,omitempty"`
}

type Geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

type Properties struct {
	Geocoding Geocoding `json:"geocoding"`
}

// AdminRegionSummary is one entry of `administrative_regions`: a
// minimal, localized summary of an ancestor admin.
type AdminRegionSummary struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Label    string            `json:"label"`
	Level    int               `json:"level,omitempty"`
	ZoneType string            `json:"zone_type,omitempty"`
	Insee    string            `json:"insee,omitempty"`
	Names    map[string]string `json:"names,omitempty"`
}

// PropertyPair is the backward-compatible `[{key,value}]` re-keying of a
// POI's free-form properties map.
type PropertyPair struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// EmbeddedAddress is the `address` block embedded on Poi/Stop features
// that have one attached.
type EmbeddedAddress struct {
	ID           string `json:"id"`
	Label        string `json:"label"`
	Name         string `json:"name"`
	HouseNumber  string `json:"housenumber,omitempty"`
	Street       string `json:"street,omitempty"`
	Postcode     string `json:"postcode,omitempty"`
	City         string `json:"city,omitempty"`
}

// Geocoding is `properties.geocoding`: the flat, denormalized place record
// spec.md §4.8 describes.
type Geocoding struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Name      string `json:"name,omitempty"`
	Label     string `json:"label"`
	HouseNumber string `json:"housenumber,omitempty"`
	Street    string `json:"street,omitempty"`
	Postcode  string `json:"postcode,omitempty"`
	City      *string `json:"city"`
	Citycode  *string `json:"citycode"`
	Level     int    `json:"level,omitempty"`
	ZoneType  string `json:"zone_type,omitempty"`

	AdministrativeRegions []AdminRegionSummary `json:"administrative_regions,omitempty"`
	PoiTypes              []catalog.DocType    `json:"poi_types,omitempty"`
	Properties            []PropertyPair       `json:"properties,omitempty"`
	Address                *EmbeddedAddress    `json:"address,omitempty"`

	CommercialModes []string          `json:"commercial_modes,omitempty"`
	PhysicalModes   []string          `json:"physical_modes,omitempty"`
	Lines           []LineSummary     `json:"lines,omitempty"`
	Codes           map[string]string `json:"codes,omitempty"`
	Timezone        string            `json:"timezone,omitempty"`
	FeedPublishers  []string          `json:"feed_publishers,omitempty"`
	CountryCodes    []string          `json:"country_codes,omitempty"`
	Bbox            *[4]float64       `json:"bbox,omitempty"`
}

// LineSummary is one entry of the `lines` array.
type LineSummary struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Code           string `json:"code,omitempty"`
	CommercialMode string `json:"commercial_mode,omitempty"`
	PhysicalMode   string `json:"physical_mode,omitempty"`
}

// requestTypeForKind is the inverse of catalog.ResolveRequestType: the
// external `type` value a Place's Kind renders as in a response (spec.md
// §4.8: "house|street|zone|poi|public_transport:stop_area").
func requestTypeForKind(k place.Kind) string {
	switch k {
	case place.KindAddr:
		return string(catalog.TypeHouse)
	case place.KindStreet:
		return string(catalog.TypeStreet)
	case place.KindAdmin:
		return string(catalog.TypeZone)
	case place.KindPoi:
		return string(catalog.TypePoi)
	case place.KindStop:
		return string(catalog.TypeStopArea)
	default:
		return string(k)
	}
}

// BuildFeature renders one Place into a GeocodeJSON Feature. lang selects
// the localized name/label; coord, when non-nil, is used only for the
// haversine-derived distance field.
func BuildFeature(p *place.Place, lang string, coord *geo.Point) Feature {
	f := Feature{
		Type: "Feature",
		Geometry: Geometry{
			Type:        "Point",
			Coordinates: []float64{p.Coord.Lon, p.Coord.Lat},
		},
	}

	g := Geocoding{
		ID:    p.ID,
		Type:  requestTypeForKind(p.Kind),
		Name:  localizedName(p, lang),
		Label: localizedLabel(p, lang),
	}

	if len(p.ZipCodes) > 0 {
		g.Postcode = joinSemicolon(p.ZipCodes)
	}
	g.CountryCodes = p.CountryCodes

	if city := p.FirstCityAdmin(); city != nil {
		name := city.Name
		g.City = &name
		if city.Admin != nil {
			insee := city.Admin.Insee
			g.Citycode = &insee
		}
	}

	g.AdministrativeRegions = summarizeAdmins(p.AdminRegions, lang)

	switch p.Kind {
	case place.KindAdmin:
		g.Level = p.Admin.Level
		g.ZoneType = string(p.Admin.ZoneType)
		if p.Admin.BBox.MinLon != 0 || p.Admin.BBox.MaxLon != 0 {
			bbox := [4]float64{p.Admin.BBox.MinLon, p.Admin.BBox.MinLat, p.Admin.BBox.MaxLon, p.Admin.BBox.MaxLat}
			g.Bbox = &bbox
		}
	case place.KindAddr:
		g.HouseNumber = p.Addr.HouseNumber
		if p.Addr.Street != nil {
			g.Street = p.Addr.Street.Name
		}
	case place.KindStreet:
		// street has no house_number; label already reflects that.
	case place.KindPoi:
		g.PoiTypes = []catalog.DocType{catalog.DocType(p.Poi.PoiType.ID)}
		g.Properties = propertyPairs(p.Poi.Properties)
		if p.Poi.Address != nil {
			g.Address = embedAddress(p.Poi.Address, lang)
		}
	case place.KindStop:
		s := p.Stop
		g.CommercialModes = s.CommercialModes
		g.PhysicalModes = s.PhysicalModes
		g.Codes = s.Codes
		g.Timezone = s.Timezone
		g.FeedPublishers = s.FeedPublishers
		g.Lines = make([]LineSummary, len(s.Lines))
		for i, l := range s.Lines {
			g.Lines[i] = LineSummary{ID: l.ID, Name: l.Name, Code: l.Code, CommercialMode: l.CommercialMode, PhysicalMode: l.PhysicalMode}
		}
	}

	f.Properties = Properties{Geocoding: g}

	if coord != nil {
		d := geo.Haversine(*coord, p.Coord)
		f.Distance = &d
	}
	return f
}

func localizedName(p *place.Place, lang string) string {
	switch p.Kind {
	case place.KindAdmin:
		return p.Admin.Names.Get(lang, p.Name)
	case place.KindPoi:
		return p.Poi.Names.Get(lang, p.Name)
	default:
		return p.Name
	}
}

func localizedLabel(p *place.Place, lang string) string {
	switch p.Kind {
	case place.KindAdmin:
		return p.Admin.Labels.Get(lang, p.Label)
	case place.KindPoi:
		return p.Poi.Labels.Get(lang, p.Label)
	default:
		return p.Label
	}
}

func summarizeAdmins(admins []*place.Place, lang string) []AdminRegionSummary {
	if len(admins) == 0 {
		return nil
	}
	out := make([]AdminRegionSummary, len(admins))
	for i, a := range admins {
		s := AdminRegionSummary{ID: a.ID, Name: localizedName(a, lang), Label: localizedLabel(a, lang)}
		if a.Admin != nil {
			s.Level = a.Admin.Level
			s.ZoneType = string(a.Admin.ZoneType)
			s.Insee = a.Admin.Insee
		}
		out[i] = s
	}
	return out
}

func propertyPairs(props map[string]string) []PropertyPair {
	if len(props) == 0 {
		return nil
	}
	out := make([]PropertyPair, 0, len(props))
	for k, v := range props {
		out = append(out, PropertyPair{Key: k, Value: v})
	}
	return out
}

func embedAddress(addr *place.Place, lang string) *EmbeddedAddress {
	e := &EmbeddedAddress{
		ID:    addr.ID,
		Label: localizedLabel(addr, lang),
		Name:  localizedName(addr, lang),
	}
	if addr.Addr != nil {
		e.HouseNumber = addr.Addr.HouseNumber
		if addr.Addr.Street != nil {
			e.Street = addr.Addr.Street.Name
		}
	}
	if len(addr.ZipCodes) > 0 {
		e.Postcode = joinSemicolon(addr.ZipCodes)
	}
	if city := addr.FirstCityAdmin(); city != nil {
		e.City = city.Name
	}
	return e
}

func joinSemicolon(vals []string) string {
	out := ""
	for i, v := range vals {
		if i > 0 {
			out += ";"
		}
		out += v
	}
	return out
}

// BuildFeatureCollection renders a Place list into a FeatureCollection.
// coord, when non-nil, is the request's (lat, lon) used to annotate
// per-feature distance (spec.md §4.8's "distance: only if the query
// supplied (lat, lon)").
func BuildFeatureCollection(places []*place.Place, query, lang string, coord *geo.Point) FeatureCollection {
	features := make([]Feature, len(places))
	for i, p := range places {
		features[i] = BuildFeature(p, lang, coord)
	}
	return FeatureCollection{
		Type:      "FeatureCollection",
		Geocoding: &Metadata{Version: "0.1.0", Query: query},
		Features:  features,
	}
}
