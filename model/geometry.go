package model

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

// MinDimension is the smallest width or height a normalized rectangle may have.
const MinDimension = 0.01

// ErrInvalidRectangle is returned when a rectangle would have a non-positive
// width or height.
var ErrInvalidRectangle = errors.New("rectangle dimensions must be positive")

// Point represents a 2D point
type Point struct {
	X, Y float64
}

// Distance calculates the Euclidean distance to another point
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Rectangle is an immutable axis-aligned rectangle. The origin is the top-left
// corner of the page and Y grows downward.
type Rectangle struct {
	X      float64 // Left
	Y      float64 // Top
	Width  float64
	Height float64
}

// NewRectangle creates a rectangle, failing when width or height is not
// strictly positive.
func NewRectangle(x, y, width, height float64) (Rectangle, error) {
	if !(width > 0) || !(height > 0) {
		return Rectangle{}, errors.Wrapf(ErrInvalidRectangle, "width=%g height=%g", width, height)
	}
	return Rectangle{X: x, Y: y, Width: width, Height: height}, nil
}

// MustRectangle is like NewRectangle but panics on invalid dimensions.
func MustRectangle(x, y, width, height float64) Rectangle {
	r, err := NewRectangle(x, y, width, height)
	if err != nil {
		panic(err)
	}
	return r
}

// RectangleFromEdges creates a rectangle from its left, top, right and bottom edges.
func RectangleFromEdges(x0, y0, x1, y1 float64) (Rectangle, error) {
	return NewRectangle(x0, y0, x1-x0, y1-y0)
}

// NormalizeRectangle creates a rectangle from possibly degenerate input.
// Negative sizes are flipped and anything smaller than MinDimension is
// widened to MinDimension, so upstream glyphs without extent (spaces,
// hairlines) still take part in layout.
func NormalizeRectangle(x, y, width, height float64) Rectangle {
	if width < 0 {
		x += width
		width = -width
	}
	if height < 0 {
		y += height
		height = -height
	}
	if !(width >= MinDimension) {
		width = MinDimension
	}
	if !(height >= MinDimension) {
		height = MinDimension
	}
	return Rectangle{X: x, Y: y, Width: width, Height: height}
}

// EndX returns the right edge X coordinate
func (r Rectangle) EndX() float64 {
	return r.X + r.Width
}

// EndY returns the bottom edge Y coordinate
func (r Rectangle) EndY() float64 {
	return r.Y + r.Height
}

// CenterX returns the X coordinate of the centre
func (r Rectangle) CenterX() float64 {
	return r.X + r.Width/2
}

// CenterY returns the Y coordinate of the centre
func (r Rectangle) CenterY() float64 {
	return r.Y + r.Height/2
}

// Center returns the center point
func (r Rectangle) Center() Point {
	return Point{X: r.CenterX(), Y: r.CenterY()}
}

// Area returns the area of the rectangle
func (r Rectangle) Area() float64 {
	return r.Width * r.Height
}

// IsValid returns true if the rectangle has positive dimensions
func (r Rectangle) IsValid() bool {
	return r.Width > 0 && r.Height > 0
}

// Intersects reports whether the two rectangles share an area. Rectangles
// that merely touch along an edge do not intersect.
func (r Rectangle) Intersects(other Rectangle) bool {
	return r.X < other.EndX() && other.X < r.EndX() &&
		r.Y < other.EndY() && other.Y < r.EndY()
}

// IntersectsX reports whether the horizontal extents overlap.
func (r Rectangle) IntersectsX(other Rectangle) bool {
	return r.X < other.EndX() && other.X < r.EndX()
}

// IntersectsY reports whether the vertical extents overlap.
func (r Rectangle) IntersectsY(other Rectangle) bool {
	return r.Y < other.EndY() && other.Y < r.EndY()
}

// Intersection returns the overlapping area of two rectangles. The boolean
// is false when they do not intersect.
func (r Rectangle) Intersection(other Rectangle) (Rectangle, bool) {
	if !r.Intersects(other) {
		return Rectangle{}, false
	}

	x := math.Max(r.X, other.X)
	y := math.Max(r.Y, other.Y)
	endX := math.Min(r.EndX(), other.EndX())
	endY := math.Min(r.EndY(), other.EndY())

	return Rectangle{
		X:      x,
		Y:      y,
		Width:  span(x, endX, r.X, r.Width, other.X, other.Width),
		Height: span(y, endY, r.Y, r.Height, other.Y, other.Height),
	}, true
}

// Union returns the smallest rectangle containing both rectangles
func (r Rectangle) Union(other Rectangle) Rectangle {
	x := math.Min(r.X, other.X)
	y := math.Min(r.Y, other.Y)
	endX := math.Max(r.EndX(), other.EndX())
	endY := math.Max(r.EndY(), other.EndY())

	return Rectangle{
		X:      x,
		Y:      y,
		Width:  span(x, endX, r.X, r.Width, other.X, other.Width),
		Height: span(y, endY, r.Y, r.Height, other.Y, other.Height),
	}
}

// span is the extent from start to end. When both edges belong to one of
// the operands its stored extent is reused, since end-start can differ from
// it by a rounding error.
func span(start, end, aStart, aExtent, bStart, bExtent float64) float64 {
	switch {
	case start == aStart && end == aStart+aExtent:
		return aExtent
	case start == bStart && end == bStart+bExtent:
		return bExtent
	}
	return end - start
}

// Contains reports whether other lies entirely inside r (edges inclusive).
func (r Rectangle) Contains(other Rectangle) bool {
	return other.X >= r.X && other.Y >= r.Y &&
		other.EndX() <= r.EndX() && other.EndY() <= r.EndY()
}

// ContainsPoint reports whether p lies inside r (edges inclusive).
func (r Rectangle) ContainsPoint(p Point) bool {
	return p.X >= r.X && p.X <= r.EndX() && p.Y >= r.Y && p.Y <= r.EndY()
}

// Distance returns the shortest distance between the edges of two
// rectangles, or 0 if they touch or overlap.
func (r Rectangle) Distance(other Rectangle) float64 {
	dx := math.Max(0, math.Max(other.X-r.EndX(), r.X-other.EndX()))
	dy := math.Max(0, math.Max(other.Y-r.EndY(), r.Y-other.EndY()))
	return math.Sqrt(dx*dx + dy*dy)
}

// CenterDistance returns the Euclidean distance between the two centres.
func (r Rectangle) CenterDistance(other Rectangle) float64 {
	return r.Center().Distance(other.Center())
}

// Expand grows the rectangle by margin on all sides.
func (r Rectangle) Expand(margin float64) Rectangle {
	return Rectangle{
		X:      r.X - margin,
		Y:      r.Y - margin,
		Width:  r.Width + 2*margin,
		Height: r.Height + 2*margin,
	}
}

// Shrink reduces the rectangle by margin on all sides. A dimension that
// would collapse keeps its centre and becomes MinDimension wide.
func (r Rectangle) Shrink(margin float64) Rectangle {
	out := r.Expand(-margin)
	if out.Width < MinDimension {
		out.X = r.CenterX() - MinDimension/2
		out.Width = MinDimension
	}
	if out.Height < MinDimension {
		out.Y = r.CenterY() - MinDimension/2
		out.Height = MinDimension
	}
	return out
}

// OverlapRatio returns the intersection area divided by the smaller of the
// two areas, between 0 and 1.
func (r Rectangle) OverlapRatio(other Rectangle) float64 {
	in, ok := r.Intersection(other)
	if !ok {
		return 0
	}
	minArea := math.Min(r.Area(), other.Area())
	if minArea == 0 {
		return 0
	}
	return in.Area() / minArea
}

func (r Rectangle) String() string {
	return fmt.Sprintf("[%.2f,%.2f %.2fx%.2f]", r.X, r.Y, r.Width, r.Height)
}

// UnionAll returns the union of all rectangles. The boolean is false for an
// empty input.
func UnionAll(rects []Rectangle) (Rectangle, bool) {
	if len(rects) == 0 {
		return Rectangle{}, false
	}
	u := rects[0]
	for _, r := range rects[1:] {
		u = u.Union(r)
	}
	return u, true
}
