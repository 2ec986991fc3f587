package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/hove-io/munin/internal/admin"
	"github.com/hove-io/munin/internal/geo"
	"github.com/hove-io/munin/internal/place"
	"github.com/hove-io/munin/internal/response"
	"github.com/hove-io/munin/internal/weight"
)

// BanoRecord is one decoded line of a BANO CSV export: house_number;lon;lat;street;postcode;city
// (spec.md §8 S1).
type BanoRecord struct {
	HouseNumber string
	Lon, Lat    float64
	Street      string
	Postcode    string
	City        string
}

// ParseBanoCSV reads BANO's semicolon-delimited, headerless format.
func ParseBanoCSV(r io.Reader) ([]BanoRecord, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse bano csv: %w", err)
	}

	out := make([]BanoRecord, 0, len(rows))
	for _, row := range rows {
		if len(row) < 6 {
			continue
		}
		lon, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			continue
		}
		lat, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			continue
		}
		out = append(out, BanoRecord{
			HouseNumber: row[0],
			Lon:         lon,
			Lat:         lat,
			Street:      row[3],
			Postcode:    row[4],
			City:        row[5],
		})
	}
	return out, nil
}

// BuildAddr enriches a BanoRecord into an Addr Place: admin attachment via
// AdminHierarchy, an embedded Street sharing the same admins, label/name via
// FormatAddrNameAndLabel (testable property 3), and weight derived from the
// first city admin's weight (spec.md §4.3).
func BuildAddr(rec BanoRecord, h *admin.Hierarchy, now time.Time) (*place.Place, error) {
	if rec.Street == "" {
		return nil, fmt.Errorf("addr %s %s: no street name", rec.HouseNumber, rec.City)
	}

	coord := geo.Point{Lon: rec.Lon, Lat: rec.Lat}
	admins := h.Containing(coord, nil)

	streetID := fmt.Sprintf("street:bano:%s:%s", formatCoordComponent(rec.Lon), formatCoordComponent(rec.Lat))
	street, err := place.NewStreet(streetID, rec.Street, coord, now)
	if err != nil {
		return nil, fmt.Errorf("addr %s street: %w", rec.HouseNumber, err)
	}
	if err := street.SetAdminRegions(admins); err != nil {
		return nil, fmt.Errorf("addr %s street: %w", rec.HouseNumber, err)
	}
	street.ZipCodes = zipCodesFromAdmins(admins)
	street.Label = response.FormatStreetLabel(rec.Street, admins)

	id := fmt.Sprintf("addr:%s;%s:%s", formatCoordComponent(rec.Lon), formatCoordComponent(rec.Lat), rec.HouseNumber)
	addr, err := place.NewAddr(id, coord, rec.HouseNumber, street, now)
	if err != nil {
		return nil, fmt.Errorf("addr %s: %w", id, err)
	}
	if err := addr.SetAdminRegions(admins); err != nil {
		return nil, fmt.Errorf("addr %s: %w", id, err)
	}

	if rec.Postcode != "" {
		addr.ZipCodes = []string{rec.Postcode}
	} else {
		addr.ZipCodes = zipCodesFromAdmins(admins)
	}

	name, label := response.FormatAddrNameAndLabel(rec.HouseNumber, rec.Street, admins, addr.CountryCodes)
	addr.Name = name
	addr.Label = label

	cityWeight := 0.0
	if city := addr.FirstCityAdmin(); city != nil {
		cityWeight = city.Weight
	}
	streetWeight := weight.StreetWeight(cityWeight)
	street.Weight = streetWeight
	addr.Weight = weight.AddrWeight(streetWeight)

	return addr, nil
}

// formatCoordComponent renders a coordinate the way BANO ids embed it:
// shortest round-tripping decimal, no scientific notation, per spec.md §8
// S1's literal id "addr:2.376379;48.846495:15".
func formatCoordComponent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
