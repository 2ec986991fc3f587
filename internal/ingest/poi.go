package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/hove-io/munin/internal/admin"
	"github.com/hove-io/munin/internal/geo"
	"github.com/hove-io/munin/internal/place"
	"github.com/hove-io/munin/internal/response"
	"github.com/hove-io/munin/internal/weight"
	"github.com/sirupsen/logrus"
)

// PoiSource is one raw POI candidate (an OSM node/way/relation centroid that
// already passed PoiMatcher.IsPoi), grounded on original_source's
// osm_reader/poi.go parse_poi.
type PoiSource struct {
	ID         string // e.g. "poi:osm:node:123"
	Name       string // falls back to the poi type's display name when tags carry none
	Coord      geo.Point
	Tags       map[string]string
	SourcedFromTransit bool
}

// ReverseAddrLookup resolves the nearest addr/street to coord within
// maxDistanceMeters, searched against the index currently being built
// (spec.md §4.6: "reverse-geocode against the *current* index", distinct
// from internal/search.Coordinator.Reverse which queries committed aliases).
type ReverseAddrLookup interface {
	NearestAddr(ctx context.Context, coord geo.Point, maxDistanceMeters float64) (*place.Place, bool, error)
}

// BuildPoi enriches a PoiSource into a Poi Place: admin attachment, label,
// weight from the first city admin (0 when there is none, per
// original_source's compute_weight), and an optional reverse-geocoded
// address attach. A default (0,0) coord after centroid computation is
// rejected (spec.md §4.6).
func BuildPoi(ctx context.Context, src PoiSource, poiType place.PoiTypeRef, h *admin.Hierarchy, reverse ReverseAddrLookup, maxDistanceReverse float64, logger *logrus.Logger, now time.Time) (*place.Place, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if src.Coord.IsDefault() {
		return nil, fmt.Errorf("poi %s: rejected, default coord", src.ID)
	}

	name := src.Name
	if name == "" {
		name = poiType.Name
	}

	p, err := place.NewPoi(src.ID, name, src.Coord, poiType, now)
	if err != nil {
		return nil, fmt.Errorf("poi %s: %w", src.ID, err)
	}

	admins := h.Containing(src.Coord, nil)
	if err := p.SetAdminRegions(admins); err != nil {
		return nil, fmt.Errorf("poi %s: %w", src.ID, err)
	}
	if zip := src.Tags["addr:postcode"]; zip != "" {
		p.ZipCodes = []string{zip}
	} else {
		p.ZipCodes = zipCodesFromAdmins(admins)
	}
	p.Label = response.FormatPoiLabel(name, admins)
	for k, v := range src.Tags {
		p.Poi.Properties[k] = v
	}

	cityWeight := 0.0
	hasCity := false
	if city := p.FirstCityAdmin(); city != nil {
		cityWeight = city.Weight
		hasCity = true
	}
	p.Weight = weight.PoiWeight(cityWeight, src.SourcedFromTransit, hasCity)

	if reverse != nil && maxDistanceReverse > 0 {
		addr, found, err := reverse.NearestAddr(ctx, src.Coord, maxDistanceReverse)
		switch {
		case err != nil:
			// Per spec.md §7 "per-item bulk failures are logged and counted,
			// never abort the batch": a reverse-geocode miss never fails the POI.
			logger.WithFields(logrus.Fields{"error": err, "poi_id": src.ID}).Warn("ingest: cannot reverse-geocode poi")
		case found:
			p.Poi.Address = addr
		default:
			logger.WithFields(logrus.Fields{"poi_id": src.ID}).Warn("ingest: no address found for poi")
		}
	}

	return p, nil
}
