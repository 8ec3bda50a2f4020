package layout

import (
	"log/slog"
	"math"
	"sort"

	"github.com/pkg/errors"

	"github.com/tsawler/pagelayout/model"
	"github.com/tsawler/pagelayout/spatial"
	"github.com/tsawler/pagelayout/whitespace"
)

// ErrUnsafeSplit is returned when a proposed region boundary would cut
// through more text than the tolerated jitter.
var ErrUnsafeSplit = errors.New("unsafe split")

// DecomposeConfig holds configuration for recursive region decomposition
type DecomposeConfig struct {
	// MaxDepth bounds the nesting of sub-regions
	// Default: 8
	MaxDepth int

	// MaxWhitespace is how many column-gap rectangles are searched per region
	// Default: 12
	MaxWhitespace int

	// MaxRowWhitespace is how many row-gap rectangles are searched per region
	// Default: 6
	MaxRowWhitespace int

	// MinWidthGlyphs skips the sweep on regions narrower than this many
	// average glyph widths
	// Default: 3.0
	MinWidthGlyphs float64

	// NarrowGapGlyphs rejects sweep breaks whose gap is narrower than this
	// many average glyph widths, unless both sides are dense
	// Default: 0.5
	NarrowGapGlyphs float64

	// DenseCount is the number of items on each side of a break that makes
	// a narrow gap acceptable
	// Default: 20
	DenseCount int

	// ContinuationFonts is how far, in average font sizes, a text run may be
	// from a break and still continue onto its other side
	// Default: 3.0
	ContinuationFonts float64

	// ExtractionShrink is the margin by which a boundary is shrunk for the
	// content query, so items touching its edge are not caught
	// Default: 0.5 points
	ExtractionShrink float64

	// MaxCrossingText is the number of text runs that may cross one side of
	// an extraction boundary
	// Default: 1
	MaxCrossingText int

	// RowGapFactor is the smallest row gap, in average glyph heights
	// Default: 1.5
	RowGapFactor float64

	// RowWidthRatio is the share of the region width a row gap must span
	// Default: 0.9
	RowWidthRatio float64

	// Vertical and Horizontal configure the whitespace searches
	Vertical   whitespace.Config
	Horizontal whitespace.Config

	// Columns configures boundary extraction
	Columns ColumnConfig

	// Logger receives skipped splits and truncated searches
	// Default: slog.Default()
	Logger *slog.Logger
}

// DefaultDecomposeConfig returns sensible default configuration
func DefaultDecomposeConfig() DecomposeConfig {
	return DecomposeConfig{
		MaxDepth:          8,
		MaxWhitespace:     12,
		MaxRowWhitespace:  6,
		MinWidthGlyphs:    3.0,
		NarrowGapGlyphs:   0.5,
		DenseCount:        20,
		ContinuationFonts: 3.0,
		ExtractionShrink:  0.5,
		MaxCrossingText:   1,
		RowGapFactor:      1.5,
		RowWidthRatio:     0.9,
		Vertical:          whitespace.DefaultConfig(model.Vertical),
		Horizontal:        whitespace.DefaultConfig(model.Horizontal),
		Columns:           DefaultColumnConfig(),
	}
}

// Decomposer recursively splits a page into regions
type Decomposer struct {
	config     DecomposeConfig
	columns    *ColumnExtractor
	vertical   *whitespace.Finder
	horizontal *whitespace.Finder
	logger     *slog.Logger
}

// NewDecomposer creates a decomposer with default configuration
func NewDecomposer() *Decomposer {
	return NewDecomposerWithConfig(DefaultDecomposeConfig())
}

// NewDecomposerWithConfig creates a decomposer with custom configuration
func NewDecomposerWithConfig(config DecomposeConfig) *Decomposer {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	vertical, horizontal := config.Vertical, config.Horizontal
	vertical.Logger, horizontal.Logger = logger, logger
	return &Decomposer{
		config:     config,
		columns:    NewColumnExtractorWithConfig(config.Columns),
		vertical:   whitespace.NewFinderWithConfig(vertical),
		horizontal: whitespace.NewFinderWithConfig(horizontal),
		logger:     logger,
	}
}

// Decompose splits the page's root region into a tree of sub-regions
func (d *Decomposer) Decompose(page *Page) {
	d.decompose(page.Root(), 0)
}

// decompose applies, in order, container extraction, whitespace column
// slicing and the column sweep, then falls back to row splitting when
// nothing was produced. Children holding strictly less content than r are
// decomposed in turn.
func (d *Decomposer) decompose(r *Region, depth int) {
	if depth >= d.config.MaxDepth {
		return
	}
	before := r.content.Len()

	var created []*Region
	created = append(created, d.extractContainers(r)...)
	created = append(created, d.splitColumns(r)...)
	created = append(created, d.sweep(r)...)
	if len(created) == 0 {
		created = d.splitRows(r)
	}

	for _, child := range created {
		if child.content.Len() < before {
			d.decompose(child, depth+1)
		}
	}
}

// ExtractBounded collects the items of r that belong inside boundary. The
// query is shrunk slightly so content touching the edge stays outside. Text
// that crosses a side is tolerated up to MaxCrossingText runs per side and
// is assigned by its centre; more crossings make the split unsafe.
func (d *Decomposer) ExtractBounded(r *Region, boundary model.Rectangle) ([]model.Item, error) {
	m := d.config.ExtractionShrink
	query := boundary.Shrink(m)
	outer := boundary.Expand(m)

	var items []model.Item
	var crossing [4]int // left, top, right, bottom
	for _, it := range r.content.Intersecting(query) {
		b := it.Bounds()
		switch it.Kind() {
		case model.KindText:
			if outer.Contains(b) {
				items = append(items, it)
				continue
			}
			if b.X < outer.X {
				crossing[0]++
			}
			if b.Y < outer.Y {
				crossing[1]++
			}
			if b.EndX() > outer.EndX() {
				crossing[2]++
			}
			if b.EndY() > outer.EndY() {
				crossing[3]++
			}
			if boundary.ContainsPoint(b.Center()) {
				items = append(items, it)
			}
		case model.KindRegion:
			if outer.Contains(b) {
				items = append(items, it)
			}
		case model.KindGraphic:
			if boundary.ContainsPoint(b.Center()) {
				items = append(items, it)
			}
		}
	}

	sides := [4]string{"left", "top", "right", "bottom"}
	for i, n := range crossing {
		if n > d.config.MaxCrossingText {
			return nil, errors.Wrapf(ErrUnsafeSplit, "%d text runs cross the %s side of %s", n, sides[i], boundary)
		}
	}
	return items, nil
}

func (d *Decomposer) skip(r *Region, step string, err error) {
	r.page.SkippedSplits++
	d.logger.Debug("skipped split",
		"page", r.page.Number,
		"region", int(r.id),
		"step", step,
		"error", err)
}

// carveBounded extracts boundary from r into a new sub-region. Unsafe and
// empty extractions produce nothing.
func (d *Decomposer) carveBounded(r *Region, boundary model.Rectangle, step string) *Region {
	if boundary.Width <= model.MinDimension || boundary.Height <= model.MinDimension {
		return nil
	}
	items, err := d.ExtractBounded(r, boundary)
	if err != nil {
		d.skip(r, step, err)
		return nil
	}
	if !holdsContent(items) || len(items) == r.content.Len() {
		return nil
	}
	return r.carve(items)
}

// holdsContent reports whether items include text or a sub-region
func holdsContent(items []model.Item) bool {
	for _, it := range items {
		if k := it.Kind(); k == model.KindText || k == model.KindRegion {
			return true
		}
	}
	return false
}

// extractContainers carves every boxed area of r into its own sub-region,
// largest first so nested boxes end up inside their parents.
func (d *Decomposer) extractContainers(r *Region) []*Region {
	bound := r.Bounds()
	var boxes []*model.Graphic
	for _, it := range r.content.Items() {
		if g, ok := it.(*model.Graphic); ok && g.Role == model.RoleContainer && !isBackground(g, bound) {
			boxes = append(boxes, g)
		}
	}
	sort.SliceStable(boxes, func(i, j int) bool { return boxes[i].Rect.Area() > boxes[j].Rect.Area() })

	var created []*Region
	for _, g := range boxes {
		if !r.content.Contains(g) {
			continue
		}
		if child := d.carveBounded(r, g.Rect, "container"); child != nil {
			created = append(created, child)
		}
	}
	return created
}

// splitColumns searches r for column gaps, derives boundaries and carves
// the slices between them into sub-regions.
func (d *Decomposer) splitColumns(r *Region) []*Region {
	if r.Stats().TextCount == 0 {
		return nil
	}
	bound := r.Bounds()
	res := d.vertical.Find(bound, r.obstacles(), d.config.MaxWhitespace)
	if res.Truncated {
		r.page.Truncated = true
	}
	r.whitespace = append(r.whitespace, res.Whitespace...)
	r.boundaries = d.columns.Extract(bound, r.content, res.Whitespace)

	var created []*Region
	for _, slice := range ColumnSlices(bound, r.boundaries) {
		if child := d.carveBounded(r, slice, "column"); child != nil {
			created = append(created, child)
		}
	}
	return created
}

// ColumnSlices returns the rectangles between consecutive boundaries, each
// limited to the vertical extent of the boundary on its right. The last
// boundary of a run also yields the slice up to the right edge of bound.
func ColumnSlices(bound model.Rectangle, boundaries []model.Rectangle) []model.Rectangle {
	sorted := sortedByX(boundaries)
	var out []model.Rectangle
	for i, b := range sorted {
		left := bound.X
		for _, prev := range sorted[:i] {
			if prev.IntersectsY(b) && prev.EndX() <= b.X && prev.EndX() > left {
				left = prev.EndX()
			}
		}
		out = append(out, model.Rectangle{X: left, Y: b.Y, Width: b.X - left, Height: b.Height})

		hasRight := false
		for _, next := range sorted[i+1:] {
			if next.IntersectsY(b) && next.X >= b.EndX() {
				hasRight = true
				break
			}
		}
		if !hasRight {
			out = append(out, model.Rectangle{X: b.EndX(), Y: b.Y, Width: bound.EndX() - b.EndX(), Height: b.Height})
		}
	}
	return out
}

// blocksSweep reports whether an item stops a sweep scanline from being a
// break: text and sub-regions do, graphics do not.
func blocksSweep(it model.Item) bool {
	k := it.Kind()
	return k == model.KindText || k == model.KindRegion
}

// sweep scans r left to right one unit at a time, accumulating the items it
// crosses. A scanline free of text is a candidate break; accepted breaks
// carve the accumulated items into a sub-region. When any break was
// accepted the remainder becomes the last sub-region.
func (d *Decomposer) sweep(r *Region) []*Region {
	stats := r.Stats()
	if stats.TextCount == 0 {
		return nil
	}
	bound := r.Bounds()
	if bound.Width < d.config.MinWidthGlyphs*stats.AvgGlyphWidth {
		return nil
	}

	bySeq := make(map[int]*model.TextRun)
	for _, t := range r.TextRuns() {
		bySeq[t.FirstSeq] = t
	}

	sw := &sweepState{
		d:       d,
		r:       r,
		stats:   stats,
		bySeq:   bySeq,
		created: make(map[model.Item]bool),
		inSet:   make(map[model.Item]bool),
	}
	var created []*Region

	end := ceilInt(bound.EndX())
	for x := floorInt(bound.X); x < end; x++ {
		scan := r.content.AtScanline(spatial.AxisX, x)
		blocked := false
		for _, it := range scan {
			if sw.created[it] {
				continue
			}
			if !sw.inSet[it] {
				sw.inSet[it] = true
				sw.working = append(sw.working, it)
			}
			if blocksSweep(it) {
				blocked = true
			}
		}
		if blocked || !holdsContent(sw.working) {
			continue
		}

		breakAt, next, ok := sw.breakAt(x, scan)
		if !ok {
			continue
		}

		var left []model.Item
		for _, it := range sw.working {
			if it.Bounds().CenterX() < breakAt {
				left = append(left, it)
			}
		}
		if child := r.carve(left); child != nil {
			sw.created[child] = true
			created = append(created, child)
		}
		sw.reset()
		if next-1 > x {
			x = next - 1
		}
	}

	if len(created) > 0 {
		rest := r.content.Filter(func(it model.Item) bool { return !sw.created[it] })
		if holdsContent(rest) {
			if child := r.carve(rest); child != nil {
				created = append(created, child)
			}
		}
	}
	return created
}

// sweepState is the bookkeeping of one sweep
type sweepState struct {
	d       *Decomposer
	r       *Region
	stats   Stats
	bySeq   map[int]*model.TextRun
	created map[model.Item]bool
	working []model.Item
	inSet   map[model.Item]bool
}

func (s *sweepState) reset() {
	s.working = nil
	s.inSet = make(map[model.Item]bool)
}

// breakAt decides whether the text-free scanline x may split the region.
// It returns the break position, midway across the gap, and the first
// scanline after the gap.
func (s *sweepState) breakAt(x int, scan []model.Item) (float64, int, bool) {
	sx := float64(x)

	right := s.r.content.Filter(func(it model.Item) bool {
		return blocksSweep(it) && !s.created[it] && !s.inSet[it] && it.Bounds().X >= sx+1
	})
	if len(right) == 0 {
		return 0, 0, false
	}

	ws, _ := model.UnionAll(model.Rects(s.working))
	textEnd := math.Inf(-1)
	for _, it := range s.working {
		if blocksSweep(it) {
			textEnd = math.Max(textEnd, it.Bounds().EndX())
		}
	}

	// a rule or box crossing the scanline over the full height of the
	// working set ties both sides together
	for _, it := range scan {
		g, ok := it.(*model.Graphic)
		if !ok || g.Role == model.RoleMathBar {
			continue
		}
		if g.Rect.X < sx && g.Rect.EndX() > sx+1 && g.Rect.Y <= ws.Y && g.Rect.EndY() >= ws.EndY() {
			return 0, 0, false
		}
	}

	nextStart := right[0].Bounds().X
	for _, it := range right[1:] {
		nextStart = math.Min(nextStart, it.Bounds().X)
	}

	cfg := s.d.config
	gap := nextStart - textEnd
	dense := len(s.working) >= cfg.DenseCount && len(right) >= cfg.DenseCount
	if gap < cfg.NarrowGapGlyphs*s.stats.AvgGlyphWidth && !dense {
		return 0, 0, false
	}

	if s.continues(sx, right) {
		return 0, 0, false
	}

	return (textEnd + nextStart) / 2, floorInt(nextStart), true
}

// continues reports whether a run near the break on the left is directly
// followed, in upstream order, by a run near the break on the right.
func (s *sweepState) continues(sx float64, right []model.Item) bool {
	reach := s.d.config.ContinuationFonts * s.stats.AvgFontSize
	onRight := make(map[model.Item]bool, len(right))
	for _, it := range right {
		onRight[it] = true
	}
	for _, it := range s.working {
		t, ok := it.(*model.TextRun)
		if !ok || sx-t.Rect.EndX() > reach {
			continue
		}
		next := s.bySeq[t.LastSeq+1]
		if next != nil && onRight[next] && next.Rect.X-sx <= reach {
			return true
		}
	}
	return false
}

// splitRows divides r into horizontal bands at wide row gaps. It is used
// when no other step produced a sub-region.
func (d *Decomposer) splitRows(r *Region) []*Region {
	stats := r.Stats()
	if stats.TextCount == 0 {
		return nil
	}
	bound := r.Bounds()
	res := d.horizontal.Find(bound, r.obstacles(), d.config.MaxRowWhitespace)
	if res.Truncated {
		r.page.Truncated = true
	}
	r.whitespace = append(r.whitespace, res.Whitespace...)

	var gaps []model.Rectangle
	for _, ws := range res.Whitespace {
		g := ws.Rect
		if g.Width < d.config.RowWidthRatio*bound.Width || g.Height < d.config.RowGapFactor*stats.AvgGlyphHeight {
			continue
		}
		// gaps along the top or bottom edge are margins
		if g.Y <= bound.Y+model.MinDimension || g.EndY() >= bound.EndY()-model.MinDimension {
			continue
		}
		gaps = append(gaps, g)
	}
	if len(gaps) == 0 {
		return nil
	}
	sort.Slice(gaps, func(i, j int) bool { return gaps[i].Y < gaps[j].Y })

	var bands []model.Rectangle
	prev := bound.Y
	for _, g := range gaps {
		bands = append(bands, model.Rectangle{X: bound.X, Y: prev, Width: bound.Width, Height: g.Y - prev})
		prev = g.EndY()
	}
	bands = append(bands, model.Rectangle{X: bound.X, Y: prev, Width: bound.Width, Height: bound.EndY() - prev})

	var created []*Region
	for _, band := range bands {
		if child := d.carveBounded(r, band, "row"); child != nil {
			created = append(created, child)
		}
	}
	return created
}
