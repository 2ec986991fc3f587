package ingest

import (
	"fmt"
	"time"

	"github.com/hove-io/munin/internal/admin"
	"github.com/hove-io/munin/internal/geo"
	"github.com/hove-io/munin/internal/place"
	"github.com/hove-io/munin/internal/response"
	"github.com/hove-io/munin/internal/weight"
)

// TransitStop is one stop_area read from a transit model (e.g. NTFS),
// grounded on original_source's stops.go places::stop::to_mimir.
type TransitStop struct {
	ID              string
	Name            string
	Coord           geo.Point
	PhysicalModes   []string
	CommercialModes []string
	Lines           []place.LineRef
	Codes           map[string]string
	FeedPublishers  []string
	Comments        []string
	Timezone        string
	Hidden          bool // true => autocomplete_visible is false
}

// BuildStop enriches a TransitStop into a Stop Place: admin attachment,
// line sort (SortLines), weight as the average of per-physical-mode weight
// sum and first-city-admin weight (spec.md §9 Open Question 1, resolved in
// internal/weight.StopWeight), and coverage tagging by dataset.
func BuildStop(src TransitStop, h *admin.Hierarchy, modeWeights map[string]float64, dataset string, now time.Time) (*place.Place, error) {
	p, err := place.NewStop(src.ID, src.Name, src.Coord, now)
	if err != nil {
		return nil, fmt.Errorf("stop %s: %w", src.ID, err)
	}

	admins := h.Containing(src.Coord, nil)
	if err := p.SetAdminRegions(admins); err != nil {
		return nil, fmt.Errorf("stop %s: %w", src.ID, err)
	}
	p.ZipCodes = zipCodesFromAdmins(admins)
	p.Label = response.FormatStopLabel(src.Name, admins)

	lines := make([]place.LineRef, len(src.Lines))
	copy(lines, src.Lines)
	SortLines(lines)

	p.Stop.Lines = lines
	p.Stop.PhysicalModes = src.PhysicalModes
	p.Stop.CommercialModes = src.CommercialModes
	p.Stop.Codes = src.Codes
	p.Stop.FeedPublishers = src.FeedPublishers
	p.Stop.Comments = src.Comments
	p.Stop.Timezone = src.Timezone
	p.Stop.Coverages = []string{dataset}
	p.Stop.AutocompleteVisible = !src.Hidden

	cityWeight := 0.0
	if city := p.FirstCityAdmin(); city != nil {
		cityWeight = city.Weight
	}
	p.Weight = weight.StopWeight(weight.SumModeWeights(src.PhysicalModes, modeWeights), cityWeight)

	return p, nil
}
