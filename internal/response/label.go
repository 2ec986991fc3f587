// Package response implements ResponseFormatter: building GeocodeJSON
// FeatureCollections from Place lists, and the label/name formatting rules
// ported from mimirsbrunn's labels.rs (original_source/src/labels.rs) — the
// "{nice name} ({city})" convention and its country-aware address variant.
package response

import (
	"fmt"
	"strings"

	"github.com/hove-io/munin/internal/place"
)

// FormatLabel implements labels.rs's format_label: nice_name, then a
// parenthesized city-admin name suffix if a city admin is present.
func FormatLabel(niceName string, admins []*place.Place) string {
	for _, a := range admins {
		if a.Admin != nil && a.Admin.IsCity {
			return fmt.Sprintf("%s (%s)", niceName, a.Name)
		}
	}
	return niceName
}

// FormatI18nLabel implements format_i18n_label: like FormatLabel, but uses
// the city admin's localized name for lang, falling back to its default
// name when no translation exists.
func FormatI18nLabel(niceName string, admins []*place.Place, lang string) string {
	for _, a := range admins {
		if a.Admin != nil && a.Admin.IsCity {
			localName := a.Admin.Names.Get(lang, a.Name)
			return fmt.Sprintf("%s (%s)", niceName, localName)
		}
	}
	return niceName
}

// FormatStreetLabel, FormatPoiLabel, FormatStopLabel are format_label
// specialized per kind; labels.rs keeps them distinct "to make them easier
// to update" even though today they share one implementation.
func FormatStreetLabel(name string, admins []*place.Place) string { return FormatLabel(name, admins) }
func FormatPoiLabel(name string, admins []*place.Place) string    { return FormatLabel(name, admins) }
func FormatStopLabel(name string, admins []*place.Place) string   { return FormatLabel(name, admins) }

// defaultAddrName is default_name: "{street} {hn}", the most common
// international order — correct for the Netherlands, not for France.
func defaultAddrName(houseNumber, street string) string {
	return fmt.Sprintf("%s %s", street, houseNumber)
}

// frenchAddrName is the France-specific short form, "{hn} {street}"
// (testable property 3 in spec.md §8).
func frenchAddrName(houseNumber, street string) string {
	return fmt.Sprintf("%s %s", houseNumber, street)
}

// shortAddrCountryCodes lists the countries using the "{hn} {street}" order
// instead of the default "{street} {hn}"; supplements labels.rs's
// address_formatter dependency (not in the retrieval pack) with the
// handful of country rules spec.md's testable property 3 exercises.
var shortAddrCountryCodes = map[string]bool{
	"fr": true, "be": true, "es": true, "it": true, "pt": true, "gb": true, "ie": true,
}

// ShortAddrLabel is get_short_addr_label + its default_name fallback,
// generalized with shortAddrCountryCodes in place of the unavailable
// address_formatter crate (see DESIGN.md).
func ShortAddrLabel(houseNumber, street string, countryCodes []string) string {
	if len(countryCodes) > 0 && shortAddrCountryCodes[strings.ToLower(countryCodes[0])] {
		return frenchAddrName(houseNumber, street)
	}
	return defaultAddrName(houseNumber, street)
}

// FormatAddrNameAndLabel is format_addr_name_and_label: returns (name,
// label), where name is the country-ordered short form and label appends
// the city-admin suffix.
func FormatAddrNameAndLabel(houseNumber, street string, admins []*place.Place, countryCodes []string) (name, label string) {
	name = ShortAddrLabel(houseNumber, street, countryCodes)
	label = FormatLabel(name, admins)
	return name, label
}

// FormatInternationalPoiLabel is format_international_poi_label: for each
// requested lang, builds "{localized poi name} ({localized city name})",
// skipping any lang whose result is identical to defaultLabel (mirroring
// the Rust test `nl_poi_in_french`, where an untranslated name produces no
// entry at all).
func FormatInternationalPoiLabel(poiNames place.LocaleStrings, defaultName, defaultLabel string, admins []*place.Place, langs []string) place.LocaleStrings {
	out := place.LocaleStrings{}
	for _, lang := range langs {
		localName := poiNames.Get(lang, defaultName)
		i18nLabel := FormatI18nLabel(localName, admins, lang)
		if i18nLabel == defaultLabel {
			continue
		}
		out[lang] = i18nLabel
	}
	return out
}
