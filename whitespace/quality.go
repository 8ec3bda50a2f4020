package whitespace

import (
	"math"

	"github.com/tsawler/pagelayout/model"
)

// Quality ranks candidate rectangles. Higher scores are searched first. A
// score of negative infinity marks a rectangle that may never be selected.
type Quality interface {
	Score(r model.Rectangle) float64
}

// QualityFunc adapts a function to the Quality interface
type QualityFunc func(r model.Rectangle) float64

// Score calls f(r).
func (f QualityFunc) Score(r model.Rectangle) float64 { return f(r) }

// VerticalQuality favours large, tall and narrow rectangles, the shape of a
// gap between text columns.
type VerticalQuality struct {
	MinWidth  float64
	MinHeight float64
}

// Score implements Quality
func (q VerticalQuality) Score(r model.Rectangle) float64 {
	if r.Width < q.MinWidth || r.Height < q.MinHeight {
		return math.Inf(-1)
	}
	return r.Area() * math.Sqrt(r.Height/r.Width)
}

// HorizontalQuality favours large, wide and short rectangles, the shape of a
// gap between blocks stacked on top of each other.
type HorizontalQuality struct {
	MinWidth  float64
	MinHeight float64
}

// Score implements Quality
func (q HorizontalQuality) Score(r model.Rectangle) float64 {
	if r.Width < q.MinWidth || r.Height < q.MinHeight {
		return math.Inf(-1)
	}
	return r.Area() * math.Sqrt(r.Width/r.Height)
}

// Filter is a post-selection hook. It is called for every candidate that
// passed the emptiness and connectivity checks; returning false discards it.
type Filter func(candidate model.Rectangle, accepted []*model.WhitespaceRect) bool
