package catalog

// SelectionInput bundles the three inputs to query-time index selection
// (spec.md §4.2): the all_data shortcut, the requested doc types, and the
// dataset scoping for the dataset-partitioned doc types (stop, poi).
type SelectionInput struct {
	AllData         bool
	Types           []DocType // empty means "use DefaultRequestTypes"
	TransitDatasets []string  // dataset scoping for DocTypeStop
	PoiDatasets     []string  // dataset scoping for DocTypePoi
}

// Exists reports whether a given index or alias name currently exists in
// the backing store. internal/store implements this against Typesense.
type Exists func(name string) bool

// SelectIndices resolves a SelectionInput to the concrete alias names a
// query must hit, silently dropping any that do not exist (spec.md §4.2:
// "never resolved to 'search all'"). A nil or always-true exists check can
// be passed by callers (e.g. tests) that don't need the existence filter.
func (c *Catalog) SelectIndices(in SelectionInput, exists Exists) []string {
	if in.AllData {
		return filterExisting([]string{c.RootAlias()}, exists)
	}

	types := in.Types
	usingDefaultTypes := len(types) == 0
	if usingDefaultTypes {
		types = DefaultRequestTypes
	}

	seen := map[string]bool{}
	var names []string
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}

	for _, t := range types {
		switch t {
		case DocTypeStop:
			if len(in.TransitDatasets) == 0 {
				add(c.Alias(DocTypeStop, ""))
				continue
			}
			for _, ds := range in.TransitDatasets {
				add(c.Alias(DocTypeStop, ds))
			}
		case DocTypePoi:
			if len(in.PoiDatasets) == 0 {
				add(c.Alias(DocTypePoi, ""))
				continue
			}
			for _, ds := range in.PoiDatasets {
				add(c.Alias(DocTypePoi, ds))
			}
		default:
			add(c.Alias(t, ""))
		}
	}

	// DefaultRequestTypes omits stop (it's never searched unless a
	// dataset scopes it), but a dataset-qualified stop request should
	// still be honored even when type[] itself was left empty (spec.md
	// §4.2: "plus any dataset-qualified stop indices").
	if usingDefaultTypes {
		for _, ds := range in.TransitDatasets {
			add(c.Alias(DocTypeStop, ds))
		}
	}

	return filterExisting(names, exists)
}

func filterExisting(names []string, exists Exists) []string {
	if exists == nil {
		return names
	}
	out := make([]string, 0, len(names))
	for _, n := range names {
		if exists(n) {
			out = append(out, n)
		}
	}
	return out
}
