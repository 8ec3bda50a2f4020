// Package spatial provides a mutable collection of positioned items with
// window and scanline queries.
//
// An [Index] answers two questions: which items intersect a rectangle, and
// which items cross a one-unit slab at an integer X or Y coordinate:
//
//	ix := spatial.New(items...)
//	hits := ix.Intersecting(window)
//	column := ix.AtScanline(spatial.AxisX, 300)
//
// Scanline results are memoized per coordinate. Every Add or Remove clears
// the memoized results and the cached bounding rectangle before returning,
// so a query never observes stale content. An Index is owned by a single
// region and is not safe for concurrent use.
package spatial
