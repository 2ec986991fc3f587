package ingest

import "fmt"

// TagFilter is one required (key, value) tag match.
type TagFilter struct {
	Key   string
	Value string
}

// PoiTypeDef names one POI category, keyed by ID.
type PoiTypeDef struct {
	ID   string
	Name string
}

// PoiRule matches a priority-ordered set of tag filters to a poi_type id,
// grounded on original_source's osm_reader/poi.go Rule/PoiConfig: the first
// rule all of whose filters match wins (spec.md §4.6 "POI qualification").
type PoiRule struct {
	Filters   []TagFilter
	PoiTypeID string
}

// PoiMatcher resolves a source object's tags to a PoiTypeDef via its
// priority-ordered Rules.
type PoiMatcher struct {
	Types []PoiTypeDef
	Rules []PoiRule

	byID map[string]PoiTypeDef
}

// NewPoiMatcher builds a matcher and validates it: every poi_type_id used by
// a rule must be declared in types, and type ids must be unique.
func NewPoiMatcher(types []PoiTypeDef, rules []PoiRule) (*PoiMatcher, error) {
	byID := make(map[string]PoiTypeDef, len(types))
	for _, t := range types {
		if _, dup := byID[t.ID]; dup {
			return nil, fmt.Errorf("poi type id %q present several times", t.ID)
		}
		byID[t.ID] = t
	}
	for _, r := range rules {
		if _, ok := byID[r.PoiTypeID]; !ok {
			return nil, fmt.Errorf("poi type id %q in a rule not declared", r.PoiTypeID)
		}
	}
	return &PoiMatcher{Types: types, Rules: rules, byID: byID}, nil
}

// Match returns the PoiTypeDef for the first rule whose filters all match
// tags, or ok=false if no rule matches.
func (m *PoiMatcher) Match(tags map[string]string) (PoiTypeDef, bool) {
	for _, rule := range m.Rules {
		if ruleMatches(rule, tags) {
			if t, ok := m.byID[rule.PoiTypeID]; ok {
				return t, true
			}
			return PoiTypeDef{}, false
		}
	}
	return PoiTypeDef{}, false
}

// IsPoi reports whether tags qualify as a POI under any rule.
func (m *PoiMatcher) IsPoi(tags map[string]string) bool {
	_, ok := m.Match(tags)
	return ok
}

func ruleMatches(rule PoiRule, tags map[string]string) bool {
	for _, f := range rule.Filters {
		if tags[f.Key] != f.Value {
			return false
		}
	}
	return true
}
