// Package whitespace finds maximal empty rectangles ("whitespace cover")
// inside a region, given the rectangles of the obstacles in it.
//
// The search is a greedy best-first subdivision: the region bound is split
// around a pivot obstacle until a candidate is empty enough, and candidates
// are ranked by a pluggable [Quality]:
//
//	finder := whitespace.NewFinder(model.Vertical)
//	result := finder.Find(bound, obstacles, 10)
//	for _, ws := range result.Whitespace {
//	    fmt.Println(ws.Rect)
//	}
//
// Accepted rectangles must touch the region edge or an already accepted
// rectangle, which keeps them chained into column or row dividers. The queue
// is bounded by [Config.MaxQueueSize]; reaching it returns the rectangles
// found so far with [Result.Truncated] set.
package whitespace
