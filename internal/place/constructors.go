package place

import (
	"time"

	"github.com/hove-io/munin/internal/geo"
)

// NewAdmin constructs an Admin place, enforcing the coordinate invariant.
func NewAdmin(id, name string, coord geo.Point, attrs AdminAttrs, now time.Time) (*Place, error) {
	if err := ValidateCoord(coord); err != nil {
		return nil, err
	}
	return &Place{
		ID:          id,
		Kind:        KindAdmin,
		Name:        name,
		Coord:       coord,
		ApproxCoord: coord,
		Admin:       &attrs,
		IndexedAt:   now,
	}, nil
}

// NewStreet constructs a Street place.
func NewStreet(id, name string, coord geo.Point, now time.Time) (*Place, error) {
	if err := ValidateCoord(coord); err != nil {
		return nil, err
	}
	return &Place{
		ID:          id,
		Kind:        KindStreet,
		Name:        name,
		Coord:       coord,
		ApproxCoord: coord,
		Street:      &StreetAttrs{},
		IndexedAt:   now,
	}, nil
}

// NewAddr constructs an Addr place embedding its street.
func NewAddr(id string, coord geo.Point, houseNumber string, street *Place, now time.Time) (*Place, error) {
	if err := ValidateCoord(coord); err != nil {
		return nil, err
	}
	return &Place{
		ID:          id,
		Kind:        KindAddr,
		Coord:       coord,
		ApproxCoord: coord,
		Addr:        &AddrAttrs{HouseNumber: houseNumber, Street: street},
		IndexedAt:   now,
	}, nil
}

// NewPoi constructs a Poi place.
func NewPoi(id, name string, coord geo.Point, poiType PoiTypeRef, now time.Time) (*Place, error) {
	if err := ValidateCoord(coord); err != nil {
		return nil, err
	}
	return &Place{
		ID:          id,
		Kind:        KindPoi,
		Name:        name,
		Coord:       coord,
		ApproxCoord: coord,
		Poi:         &PoiAttrs{PoiType: poiType, Properties: map[string]string{}},
		IndexedAt:   now,
	}, nil
}

// NewStop constructs a Stop place.
func NewStop(id, name string, coord geo.Point, now time.Time) (*Place, error) {
	if err := ValidateCoord(coord); err != nil {
		return nil, err
	}
	return &Place{
		ID:          id,
		Kind:        KindStop,
		Name:        name,
		Coord:       coord,
		ApproxCoord: coord,
		Stop:        &StopAttrs{Codes: map[string]string{}},
		IndexedAt:   now,
	}, nil
}

// SetAdminRegions validates and assigns the denormalized admin hierarchy
// snapshot, deriving CountryCodes as a side effect (spec.md §3).
func (p *Place) SetAdminRegions(regions []*Place) error {
	if err := ValidateAdminOrdering(regions); err != nil {
		return err
	}
	p.AdminRegions = regions
	if codes := DeriveCountryCodes(regions); len(codes) > 0 {
		p.CountryCodes = codes
	}
	return nil
}
