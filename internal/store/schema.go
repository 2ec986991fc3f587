package store

import "github.com/typesense/typesense-go/v2/typesense/api"

// PlaceSchema returns the collection schema for a physical index named
// name, shared by every doc type: the place document shape is uniform
// (spec.md §3), with type-specific attributes carried as optional fields
// so one schema serves admin/street/addr/poi/stop alike.
func PlaceSchema(name string) *api.CollectionSchema {
	return &api.CollectionSchema{
		Name: name,
		Fields: []api.Field{
			{Name: "id", Type: "string"},
			{Name: "doc_type", Type: "string", Facet: ptr(true)},
			{Name: "dataset", Type: "string", Optional: ptr(true), Facet: ptr(true)},
			{Name: "label", Type: "string"},
			{Name: "name", Type: "string", Optional: ptr(true)},
			{Name: "coord", Type: "geopoint"},
			{Name: "approx_coord", Type: "geopoint"},
			{Name: "weight", Type: "float"},
			{Name: "zip_codes", Type: "string[]", Optional: ptr(true)},
			{Name: "admin_region_ids", Type: "string[]", Optional: ptr(true)},
			{Name: "country_codes", Type: "string[]", Optional: ptr(true)},

			{Name: "zone_type", Type: "string", Optional: ptr(true), Facet: ptr(true)},
			{Name: "insee", Type: "string", Optional: ptr(true)},
			{Name: "level", Type: "int32", Optional: ptr(true)},
			{Name: "is_city", Type: "bool", Optional: ptr(true), Facet: ptr(true)},
			{Name: "population", Type: "float", Optional: ptr(true)},

			{Name: "house_number", Type: "string", Optional: ptr(true)},
			{Name: "street_id", Type: "string", Optional: ptr(true)},

			{Name: "poi_type_id", Type: "string", Optional: ptr(true), Facet: ptr(true)},
			{Name: "poi_dataset", Type: "string", Optional: ptr(true), Facet: ptr(true)},

			{Name: "commercial_modes", Type: "string[]", Optional: ptr(true), Facet: ptr(true)},
			{Name: "physical_modes", Type: "string[]", Optional: ptr(true), Facet: ptr(true)},
			{Name: "coverages", Type: "string[]", Optional: ptr(true), Facet: ptr(true)},
			{Name: "autocomplete_visible", Type: "bool", Optional: ptr(true)},

			{Name: "indexed_at", Type: "int64"},
		},
		DefaultSortingField: ptr("weight"),
	}
}
