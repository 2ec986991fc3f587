// Package weight computes the [0,1] importance weights of spec.md §4.3
// that drive query-time boosting. The two historical ambiguities flagged
// in spec.md §9 are resolved here; see DESIGN.md for the rationale.
package weight

// AdminWeight is population normalized by the largest population seen
// across all admins in the current ingest run; 0 when population is
// absent or maxPopulation is 0.
func AdminWeight(population, maxPopulation float64) float64 {
	if maxPopulation <= 0 || population <= 0 {
		return 0
	}
	w := population / maxPopulation
	return clamp01(w)
}

// StreetWeight is the weight of the street's attached city admin. Per
// spec.md §9 Open Question 2, callers must compute this in a step distinct
// from street-document construction (which starts at weight 0) — see
// internal/ingest/street.go.
func StreetWeight(cityAdminWeight float64) float64 {
	return clamp01(cityAdminWeight)
}

// AddrWeight is the same as its street's weight.
func AddrWeight(streetWeight float64) float64 {
	return clamp01(streetWeight)
}

// PoiWeight is the city-admin weight; for transit-sourced POIs with no
// attached city admin, 0.
func PoiWeight(cityAdminWeight float64, sourcedFromTransit, hasCityAdmin bool) float64 {
	if sourcedFromTransit && !hasCityAdmin {
		return 0
	}
	return clamp01(cityAdminWeight)
}

// StopWeight is (Σ_mode config.weight[mode] + admin_weight) / 2, the
// formula spec.md §4.3 gives explicitly. modeWeights is the per-stop set
// of physical modes resolved against the configured per-mode weight table;
// an empty/missing table contributes 0 to the sum, which is a deliberate
// halving of the admin weight (see DESIGN.md Open Question 1) — this
// function must only be called for Stop places, never substituted for
// AdminWeight itself.
func StopWeight(modeWeightSum, adminWeight float64) float64 {
	return clamp01((modeWeightSum + adminWeight) / 2)
}

// SumModeWeights looks up each mode in config and adds up the configured
// weights, 0 for modes absent from the table.
func SumModeWeights(modes []string, config map[string]float64) float64 {
	var sum float64
	for _, m := range modes {
		sum += config[m]
	}
	return sum
}

func clamp01(w float64) float64 {
	if w < 0 {
		return 0
	}
	if w > 1 {
		return 1
	}
	return w
}
