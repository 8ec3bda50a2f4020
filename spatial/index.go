package spatial

import (
	"math"

	"github.com/tsawler/pagelayout/model"
)

// Axis selects the coordinate a scanline query is taken at
type Axis int

const (
	// AxisX queries a vertical slab [x, x+1) spanning the collection height
	AxisX Axis = iota
	// AxisY queries a horizontal slab [y, y+1) spanning the collection width
	AxisY
)

// Index is a set of positioned items with cached window queries.
type Index struct {
	items []model.Item

	bounds      model.Rectangle
	boundsValid bool

	scanX map[int][]model.Item
	scanY map[int][]model.Item
}

// New creates an index holding items.
func New(items ...model.Item) *Index {
	ix := &Index{}
	ix.Add(items...)
	return ix
}

// Add inserts items and invalidates all cached results.
func (ix *Index) Add(items ...model.Item) {
	if len(items) == 0 {
		return
	}
	ix.items = append(ix.items, items...)
	ix.invalidate()
}

// Remove deletes items (compared by identity) and invalidates all cached
// results. Items not present are ignored.
func (ix *Index) Remove(items ...model.Item) {
	if len(items) == 0 {
		return
	}
	drop := make(map[model.Item]struct{}, len(items))
	for _, it := range items {
		drop[it] = struct{}{}
	}
	kept := ix.items[:0]
	for _, it := range ix.items {
		if _, ok := drop[it]; !ok {
			kept = append(kept, it)
		}
	}
	// clear the tail so removed items can be collected
	for i := len(kept); i < len(ix.items); i++ {
		ix.items[i] = nil
	}
	ix.items = kept
	ix.invalidate()
}

// Invalidate drops cached results. Owners call it when an item they hold
// changed its bounds without going through Add or Remove.
func (ix *Index) Invalidate() {
	ix.invalidate()
}

func (ix *Index) invalidate() {
	ix.boundsValid = false
	ix.scanX = nil
	ix.scanY = nil
}

// Len returns the number of items.
func (ix *Index) Len() int { return len(ix.items) }

// Items returns the items in insertion order. The slice must not be modified.
func (ix *Index) Items() []model.Item { return ix.items }

// Contains reports whether it is in the index.
func (ix *Index) Contains(it model.Item) bool {
	for _, x := range ix.items {
		if x == it {
			return true
		}
	}
	return false
}

// Bounds returns the union of all item rectangles. The boolean is false for
// an empty index.
func (ix *Index) Bounds() (model.Rectangle, bool) {
	if len(ix.items) == 0 {
		return model.Rectangle{}, false
	}
	if !ix.boundsValid {
		minX, minY := math.Inf(1), math.Inf(1)
		maxX, maxY := math.Inf(-1), math.Inf(-1)
		for _, it := range ix.items {
			r := it.Bounds()
			minX = math.Min(minX, r.X)
			minY = math.Min(minY, r.Y)
			maxX = math.Max(maxX, r.EndX())
			maxY = math.Max(maxY, r.EndY())
		}
		ix.bounds = model.Rectangle{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
		ix.boundsValid = true
	}
	return ix.bounds, true
}

// Intersecting returns all items whose rectangle intersects r, in insertion
// order.
func (ix *Index) Intersecting(r model.Rectangle) []model.Item {
	var out []model.Item
	for _, it := range ix.items {
		if it.Bounds().Intersects(r) {
			out = append(out, it)
		}
	}
	return out
}

// Filter returns the items for which keep returns true.
func (ix *Index) Filter(keep func(model.Item) bool) []model.Item {
	var out []model.Item
	for _, it := range ix.items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

// AtScanline returns the items crossing the one-unit slab at coord along the
// given axis. Results are memoized per coordinate until the next mutation.
func (ix *Index) AtScanline(axis Axis, coord int) []model.Item {
	bounds, ok := ix.Bounds()
	if !ok {
		return nil
	}

	cache := ix.scanCache(axis)
	if hit, ok := cache[coord]; ok {
		return hit
	}

	var slab model.Rectangle
	if axis == AxisX {
		slab = model.Rectangle{X: float64(coord), Y: bounds.Y, Width: 1, Height: bounds.Height}
	} else {
		slab = model.Rectangle{X: bounds.X, Y: float64(coord), Width: bounds.Width, Height: 1}
	}
	// a zero-extent collection still has to match its own items
	if slab.Width <= 0 {
		slab.Width = model.MinDimension
	}
	if slab.Height <= 0 {
		slab.Height = model.MinDimension
	}

	hit := ix.Intersecting(slab)
	cache[coord] = hit
	return hit
}

func (ix *Index) scanCache(axis Axis) map[int][]model.Item {
	if axis == AxisX {
		if ix.scanX == nil {
			ix.scanX = make(map[int][]model.Item)
		}
		return ix.scanX
	}
	if ix.scanY == nil {
		ix.scanY = make(map[int][]model.Item)
	}
	return ix.scanY
}

// cached reports whether a scanline result is memoized; used by tests.
func (ix *Index) cached(axis Axis, coord int) bool {
	var m map[int][]model.Item
	if axis == AxisX {
		m = ix.scanX
	} else {
		m = ix.scanY
	}
	_, ok := m[coord]
	return ok
}
