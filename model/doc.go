// Package model provides the geometric data model for page segmentation.
//
// This package defines the value types every other package works with:
// rectangles, interned styles, the positioned items found on a page and the
// word/line/paragraph composites built from them.
//
// # Geometry
//
// [Rectangle] is an immutable axis-aligned box with the origin at the top-left
// of the page. [NewRectangle] rejects non-positive sizes; [NormalizeRectangle]
// is the deliberate exception used for degenerate upstream glyphs:
//
//	r, err := model.NewRectangle(10, 20, 100, 50)
//	glyph := model.NormalizeRectangle(x, y, 0, h) // zero-width space glyph
//
// # Items
//
// Everything placed on a page implements [Item]. The variants form a closed
// set identified by [Kind]:
//
//   - [TextRun] - a run of glyphs with a contiguous sequence range
//   - [Graphic] - a vector primitive with its classified [GraphicRole]
//   - [WhitespaceRect] - an empty rectangle found by the whitespace search
//   - the Region type of the layout package
//
// # Styles
//
// A [StyleTable] interns font metrics so equal styles share one pointer:
//
//	styles := model.NewStyleTable()
//	s := styles.Intern("Times-Roman", 10, 10, 0, 0)
//
// # Text structure
//
// [Word], [Line] and [Paragraph] are composites over ordered children whose
// bounds are the cached union of their children.
package model
