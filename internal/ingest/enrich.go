package ingest

import "github.com/hove-io/munin/internal/place"

// zipCodesFromAdmins aggregates the zip codes carried by the admins in a
// chain, deduplicated in first-seen order, mirroring the original's
// get_zip_codes_from_admins (src/admin.go equivalent: each admin contributes
// its own postcodes read from source boundary tags).
func zipCodesFromAdmins(admins []*place.Place) []string {
	seen := map[string]bool{}
	var out []string
	for _, a := range admins {
		if a.Admin == nil {
			continue
		}
		for _, z := range a.Admin.ZipCodes {
			if z == "" || seen[z] {
				continue
			}
			seen[z] = true
			out = append(out, z)
		}
	}
	return out
}
