// Package admin implements AdminHierarchy (spec.md §4.1): an in-memory
// spatial index answering "which admins contain this point?" in
// insertion-order-stable fashion, with results ordered innermost-first.
//
// The structure is a bbox-indexed quadtree with polygon point-in-polygon
// refinement, the canonical implementation spec.md names explicitly. No
// example repo in the retrieval pack ships an R-tree/quadtree library, so
// this is hand-rolled (see DESIGN.md).
package admin

import (
	"sort"

	"github.com/hove-io/munin/internal/geo"
	"github.com/hove-io/munin/internal/place"
)

// MaxParentHops caps the parent_id walk used to build the denormalization
// cache, defending against cyclic or malformed source data (spec.md §9).
const MaxParentHops = 32

const maxEntriesPerNode = 8

type entry struct {
	admin *place.Place
	bbox  geo.BBox
}

type quadNode struct {
	bounds   geo.BBox
	entries  []entry
	children [4]*quadNode // nil until split
}

// Hierarchy is a read-only-after-build spatial index of Admin places.
type Hierarchy struct {
	root      *quadNode
	byID      map[string]*place.Place
	insertSeq map[string]int // insertion order, for stable tie-breaking
	nextSeq   int
}

// NewHierarchy creates an empty hierarchy bounded to the whole WGS84 plane.
func NewHierarchy() *Hierarchy {
	return &Hierarchy{
		root:      &quadNode{bounds: geo.BBox{MinLon: -180, MinLat: -90, MaxLon: 180, MaxLat: 90}},
		byID:      map[string]*place.Place{},
		insertSeq: map[string]int{},
	}
}

// Build constructs a Hierarchy from a stream of Admin places. Each place
// must have Kind == KindAdmin and a populated Admin.Boundary/BBox.
func Build(admins []*place.Place) *Hierarchy {
	h := NewHierarchy()
	for _, a := range admins {
		h.Insert(a)
	}
	return h
}

// Insert adds one admin place to the index.
func (h *Hierarchy) Insert(a *place.Place) {
	if a == nil || a.Admin == nil {
		return
	}
	h.byID[a.ID] = a
	h.insertSeq[a.ID] = h.nextSeq
	h.nextSeq++
	insert(h.root, entry{admin: a, bbox: a.Admin.BBox}, 0)
}

func insert(n *quadNode, e entry, depth int) {
	if n.children[0] == nil && (len(n.entries) < maxEntriesPerNode || depth > 16) {
		n.entries = append(n.entries, e)
		return
	}
	if n.children[0] == nil {
		split(n)
	}
	placed := false
	for _, child := range n.children {
		if child.bounds.Intersects(e.bbox) {
			insert(child, e, depth+1)
			placed = true
		}
	}
	if !placed {
		n.entries = append(n.entries, e)
	}
}

func split(n *quadNode) {
	midLon := (n.bounds.MinLon + n.bounds.MaxLon) / 2
	midLat := (n.bounds.MinLat + n.bounds.MaxLat) / 2
	n.children[0] = &quadNode{bounds: geo.BBox{MinLon: n.bounds.MinLon, MinLat: n.bounds.MinLat, MaxLon: midLon, MaxLat: midLat}}
	n.children[1] = &quadNode{bounds: geo.BBox{MinLon: midLon, MinLat: n.bounds.MinLat, MaxLon: n.bounds.MaxLon, MaxLat: midLat}}
	n.children[2] = &quadNode{bounds: geo.BBox{MinLon: n.bounds.MinLon, MinLat: midLat, MaxLon: midLon, MaxLat: n.bounds.MaxLat}}
	n.children[3] = &quadNode{bounds: geo.BBox{MinLon: midLon, MinLat: midLat, MaxLon: n.bounds.MaxLon, MaxLat: n.bounds.MaxLat}}

	old := n.entries
	n.entries = nil
	for _, e := range old {
		placed := false
		for _, child := range n.children {
			if child.bounds.Intersects(e.bbox) {
				insert(child, e, 1)
				placed = true
			}
		}
		if !placed {
			n.entries = append(n.entries, e)
		}
	}
}

// Containing returns the admins whose polygon contains p, ordered by
// level descending (innermost first), with insertion order as a stable
// tie-breaker for admins sharing a level. filter, when non-nil, restricts
// the result to admins whose attrs satisfy it (e.g. zone_type <= City).
func (h *Hierarchy) Containing(p geo.Point, filter func(*place.AdminAttrs) bool) []*place.Place {
	var hits []*place.Place
	collect(h.root, p, &hits)

	var result []*place.Place
	for _, a := range hits {
		if filter == nil || filter(a.Admin) {
			result = append(result, a)
		}
	}

	seq := h.insertSeq
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Admin.Level != result[j].Admin.Level {
			return result[i].Admin.Level > result[j].Admin.Level
		}
		return seq[result[i].ID] < seq[result[j].ID]
	})
	return dedupe(result)
}

func collect(n *quadNode, p geo.Point, out *[]*place.Place) {
	if n == nil || !n.bounds.Contains(p) {
		return
	}
	for _, e := range n.entries {
		if e.bbox.Contains(p) && e.admin.Admin.Boundary.Contains(p) {
			*out = append(*out, e.admin)
		}
	}
	for _, c := range n.children {
		if c != nil {
			collect(c, p, out)
		}
	}
}

func dedupe(in []*place.Place) []*place.Place {
	seen := map[string]bool{}
	out := make([]*place.Place, 0, len(in))
	for _, p := range in {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		out = append(out, p)
	}
	return out
}

// ByID returns the admin with the given id, if present.
func (h *Hierarchy) ByID(id string) (*place.Place, bool) {
	a, ok := h.byID[id]
	return a, ok
}

// All returns every admin currently in the hierarchy, in insertion order —
// the admin ingest pipeline's own source list, for bulk-shipping into the
// admin index alongside the hierarchy built from it.
func (h *Hierarchy) All() []*place.Place {
	out := make([]*place.Place, 0, len(h.byID))
	for id := range h.insertSeq {
		if a, ok := h.byID[id]; ok {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return h.insertSeq[out[i].ID] < h.insertSeq[out[j].ID]
	})
	return out
}

// ParentChain walks parent_id links up to MaxParentHops, returning the
// chain from a (exclusive) to the root. Used to build the two-pass
// denormalization cache described in spec.md §3 "Lifecycle".
func (h *Hierarchy) ParentChain(a *place.Place) []*place.Place {
	var chain []*place.Place
	cur := a
	for i := 0; i < MaxParentHops; i++ {
		if cur.Admin == nil || cur.Admin.ParentID == "" {
			break
		}
		parent, ok := h.byID[cur.Admin.ParentID]
		if !ok || parent.ID == cur.ID {
			break
		}
		chain = append(chain, parent)
		cur = parent
	}
	return chain
}
