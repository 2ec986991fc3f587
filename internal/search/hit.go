package search

import (
	"fmt"

	"github.com/hove-io/munin/internal/place"
	"github.com/hove-io/munin/internal/store"
)

// decodeHit downcasts one store hit by its doc_type field into a Place
// variant. This is the single decode-by-string boundary spec.md §3
// ("Variant dispatch") requires — every other internal package branches on
// Place.Kind, never on a raw string.
func decodeHit(doc map[string]interface{}) (*place.Place, error) {
	p, err := store.FromDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("decode hit: %w", err)
	}
	switch p.Kind {
	case place.KindAdmin, place.KindStreet, place.KindAddr, place.KindPoi, place.KindStop:
		return p, nil
	default:
		return nil, fmt.Errorf("decode hit: unknown doc_type %q", p.Kind)
	}
}
