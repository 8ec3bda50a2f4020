package layout

import (
	"math"
	"sort"

	"github.com/tsawler/pagelayout/model"
	"github.com/tsawler/pagelayout/spatial"
)

// ColumnConfig holds configuration for column boundary extraction
type ColumnConfig struct {
	// MarginRatio is the share of the region width on each side where
	// whitespace is page margin rather than a column gap
	// Default: 0.1
	MarginRatio float64

	// MinAspectRatio is the smallest height/width ratio of a boundary
	// Default: 1.5
	MinAspectRatio float64

	// MinHeight is the shortest boundary kept after height adjustment
	// Default: 30 points
	MinHeight float64

	// AlignmentTolerance is how far a text edge may sit from a whitespace
	// edge and still count as aligned with it
	// Default: 5 points
	AlignmentTolerance float64

	// MinAlignedBothSides is the number of aligned runs required on each
	// side of a gap
	// Default: 3
	MinAlignedBothSides int

	// MinAlignedOneSide is the number of aligned runs required when the
	// other side of the gap holds no text at all
	// Default: 8
	MinAlignedOneSide int

	// BlockMidpointTolerance and BlockLookback decide when an item that
	// starts inside a strip continues a line from its left: another text
	// run must end within BlockLookback points left of the strip with a
	// vertical midpoint within BlockMidpointTolerance
	// Default: 6 and 10 points
	BlockMidpointTolerance float64
	BlockLookback          float64

	// MergeDistance is the largest left-edge distance at which two
	// neighbouring boundaries are merged
	// Default: 50 points
	MergeDistance float64

	// MergedWidth is the width of a merged boundary
	// Default: 2.0 points
	MergedWidth float64

	// SeparatorHeightRatio is the share of the region height a vertical
	// rule must span to become a boundary
	// Default: 0.5
	SeparatorHeightRatio float64
}

// DefaultColumnConfig returns sensible default configuration
func DefaultColumnConfig() ColumnConfig {
	return ColumnConfig{
		MarginRatio:            0.1,
		MinAspectRatio:         1.5,
		MinHeight:              30.0,
		AlignmentTolerance:     5.0,
		MinAlignedBothSides:    3,
		MinAlignedOneSide:      8,
		BlockMidpointTolerance: 6.0,
		BlockLookback:          10.0,
		MergeDistance:          50.0,
		MergedWidth:            2.0,
		SeparatorHeightRatio:   0.5,
	}
}

// ColumnExtractor turns whitespace rectangles into column boundaries
type ColumnExtractor struct {
	config ColumnConfig
}

// NewColumnExtractor creates a new column extractor with default configuration
func NewColumnExtractor() *ColumnExtractor {
	return &ColumnExtractor{config: DefaultColumnConfig()}
}

// NewColumnExtractorWithConfig creates a column extractor with custom configuration
func NewColumnExtractorWithConfig(config ColumnConfig) *ColumnExtractor {
	return &ColumnExtractor{config: config}
}

// Extract derives column boundaries for the region bound holding content,
// from the vertical whitespace found in it. Vertical separator rules are
// promoted to boundaries as well. The result is sorted by X.
func (e *ColumnExtractor) Extract(bound model.Rectangle, content *spatial.Index, whitespace []*model.WhitespaceRect) []model.Rectangle {
	var boundaries []model.Rectangle
	for _, ws := range e.Candidates(bound, content, whitespace) {
		adjusted, ok := e.AdjustHeight(bound, content, ws)
		if !ok || containsRect(boundaries, adjusted) {
			continue
		}
		boundaries = append(boundaries, adjusted)
	}

	for _, it := range content.Items() {
		g, ok := it.(*model.Graphic)
		if !ok || g.Role != model.RoleSeparator || !g.IsVertical() {
			continue
		}
		if g.Rect.Height < e.config.SeparatorHeightRatio*bound.Height || !bound.Contains(g.Rect) {
			continue
		}
		if !containsRect(boundaries, g.Rect) {
			boundaries = append(boundaries, g.Rect)
		}
	}

	return e.Merge(content, boundaries)
}

// Candidates keeps the whitespace rectangles that may separate columns:
// away from the side margins, tall and narrow, and corroborated by text
// aligned along their edges.
func (e *ColumnExtractor) Candidates(bound model.Rectangle, content *spatial.Index, whitespace []*model.WhitespaceRect) []model.Rectangle {
	margin := e.config.MarginRatio * bound.Width
	var out []model.Rectangle
	for _, ws := range whitespace {
		r := ws.Rect
		if r.X < bound.X+margin || r.EndX() > bound.EndX()-margin {
			continue
		}
		if r.Height/r.Width <= e.config.MinAspectRatio {
			continue
		}
		if !e.corroborated(bound, content, r) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func (e *ColumnExtractor) corroborated(bound model.Rectangle, content *spatial.Index, ws model.Rectangle) bool {
	tol := e.config.AlignmentTolerance
	band := model.Rectangle{X: bound.X, Y: ws.Y, Width: bound.Width, Height: ws.Height}

	var left, right, leftAligned, rightAligned int
	for _, it := range content.Intersecting(band) {
		if !model.IsText(it) {
			continue
		}
		b := it.Bounds()
		switch {
		case b.EndX() <= ws.X+tol:
			left++
			if math.Abs(b.EndX()-ws.X) <= tol {
				leftAligned++
			}
		case b.X >= ws.EndX()-tol:
			right++
			if math.Abs(b.X-ws.EndX()) <= tol {
				rightAligned++
			}
		}
	}

	if leftAligned >= e.config.MinAlignedBothSides && rightAligned >= e.config.MinAlignedBothSides {
		return true
	}
	if left == 0 && rightAligned >= e.config.MinAlignedOneSide {
		return true
	}
	return right == 0 && leftAligned >= e.config.MinAlignedOneSide
}

// AdjustHeight stretches or shrinks a candidate to the longest unblocked
// vertical run through it. Three strips are sampled (near the left edge,
// the middle and near the right edge) and the tallest qualifying result
// wins; the first strip wins ties.
func (e *ColumnExtractor) AdjustHeight(bound model.Rectangle, content *spatial.Index, ws model.Rectangle) (model.Rectangle, bool) {
	strips := []float64{ws.X + 1, ws.CenterX(), ws.EndX() - 1}
	if ws.Width <= 2 {
		strips = []float64{ws.CenterX()}
	}

	var best model.Rectangle
	found := false
	for _, sx := range strips {
		y0, y1, ok := e.freeRun(bound, content, ws, sx)
		if !ok {
			continue
		}
		cand := model.Rectangle{X: ws.X, Y: y0, Width: ws.Width, Height: y1 - y0}
		if cand.Height < e.config.MinHeight || cand.Height/cand.Width <= e.config.MinAspectRatio {
			continue
		}
		if !found || cand.Height > best.Height {
			best, found = cand, true
		}
	}
	return best, found
}

type interval struct{ lo, hi float64 }

// freeRun returns the unblocked vertical run of the strip at sx that holds
// the centre of ws, or failing that the longest run overlapping ws.
func (e *ColumnExtractor) freeRun(bound model.Rectangle, content *spatial.Index, ws model.Rectangle, sx float64) (float64, float64, bool) {
	slab := float64(floorInt(sx))

	var blocked []interval
	for _, it := range content.AtScanline(spatial.AxisX, floorInt(sx)) {
		if !blocksColumns(it) {
			continue
		}
		b := it.Bounds()
		if b.X < slab || e.continuesFromLeft(content, it, slab) {
			blocked = append(blocked, interval{b.Y, b.EndY()})
		}
	}
	sort.Slice(blocked, func(i, j int) bool { return blocked[i].lo < blocked[j].lo })

	var free []interval
	cur := bound.Y
	for _, iv := range blocked {
		if iv.lo > cur {
			free = append(free, interval{cur, iv.lo})
		}
		cur = math.Max(cur, iv.hi)
	}
	if bound.EndY() > cur {
		free = append(free, interval{cur, bound.EndY()})
	}

	mid := ws.CenterY()
	var best interval
	found := false
	for _, iv := range free {
		if iv.lo <= mid && mid <= iv.hi {
			return iv.lo, iv.hi, true
		}
		if iv.hi <= ws.Y || iv.lo >= ws.EndY() {
			continue
		}
		if !found || iv.hi-iv.lo > best.hi-best.lo {
			best, found = iv, true
		}
	}
	return best.lo, best.hi, found
}

// continuesFromLeft reports whether an item starting inside the strip
// carries on a line of text ending just left of it.
func (e *ColumnExtractor) continuesFromLeft(content *spatial.Index, it model.Item, slab float64) bool {
	b := it.Bounds()
	look := model.Rectangle{X: slab - e.config.BlockLookback, Y: b.Y - e.config.BlockMidpointTolerance,
		Width: e.config.BlockLookback, Height: b.Height + 2*e.config.BlockMidpointTolerance}
	for _, other := range content.Intersecting(look) {
		if other == it || !model.IsText(other) {
			continue
		}
		o := other.Bounds()
		if o.EndX() > b.X || o.EndX() < slab-e.config.BlockLookback {
			continue
		}
		if math.Abs(o.CenterY()-b.CenterY()) < e.config.BlockMidpointTolerance {
			return true
		}
	}
	return false
}

// blocksColumns reports whether an item interrupts a column gap
func blocksColumns(it model.Item) bool {
	switch v := it.(type) {
	case *model.TextRun, *Region:
		return true
	case *model.Graphic:
		return v.Role == model.RoleSeparator || v.Role == model.RoleContent
	}
	return false
}

// Merge joins neighbouring boundaries whose left edges lie closer than
// MergeDistance into one narrow boundary, placed at the rightmost edge or
// else the leftmost, provided no text or sub-region obstructs it. After a
// merge the scan resumes at the same index, so merges cascade rightward.
func (e *ColumnExtractor) Merge(content *spatial.Index, boundaries []model.Rectangle) []model.Rectangle {
	out := sortedByX(boundaries)
	for i := 0; i+1 < len(out); {
		a, b := out[i], out[i+1]
		if b.X-a.X >= e.config.MergeDistance {
			i++
			continue
		}
		merged, ok := e.mergePair(content, a, b)
		if !ok {
			i++
			continue
		}
		out = append(out[:i+1], out[i+2:]...)
		out[i] = merged
		// the merged boundary is rescanned against its new right neighbour
		out = sortedByX(out)
	}
	return out
}

func (e *ColumnExtractor) mergePair(content *spatial.Index, a, b model.Rectangle) (model.Rectangle, bool) {
	y0 := math.Min(a.Y, b.Y)
	y1 := math.Max(a.EndY(), b.EndY())
	w := e.config.MergedWidth

	for _, x := range []float64{math.Max(a.EndX(), b.EndX()) - w, math.Min(a.X, b.X)} {
		cand := model.Rectangle{X: x, Y: y0, Width: w, Height: y1 - y0}
		obstructed := false
		for _, it := range content.Intersecting(cand) {
			if k := it.Kind(); k == model.KindText || k == model.KindRegion {
				obstructed = true
				break
			}
		}
		if !obstructed {
			return cand, true
		}
	}
	return model.Rectangle{}, false
}

func containsRect(rects []model.Rectangle, r model.Rectangle) bool {
	for _, o := range rects {
		if o == r {
			return true
		}
	}
	return false
}
