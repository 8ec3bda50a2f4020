package layout

import (
	"math"
	"sort"

	"github.com/tsawler/pagelayout/model"
	"github.com/tsawler/pagelayout/spatial"
)

// RegionID identifies a region inside its page's arena
type RegionID int

// NoRegion is the parent handle of a root region
const NoRegion RegionID = -1

// Page is the result of analysing one page. It owns every region of the
// page in an arena; regions refer to each other by RegionID.
type Page struct {
	// Number is the 1-indexed page number
	Number int

	// Bounds is the page rectangle
	Bounds model.Rectangle

	// Graphics are the classified graphic primitives of the page
	Graphics []*model.Graphic

	// Truncated is set when a whitespace search on this page hit its
	// queue ceiling
	Truncated bool

	// SkippedSplits counts candidate splits rejected as unsafe
	SkippedSplits int

	regions []*Region
}

// NewPage creates a page whose root region covers bounds and holds items
func NewPage(number int, bounds model.Rectangle, items ...model.Item) *Page {
	p := &Page{Number: number, Bounds: bounds}
	root := p.newRegion(NoRegion, items)
	root.frame = bounds
	root.hasFrame = true
	return p
}

// Root returns the root region covering the whole page
func (p *Page) Root() *Region { return p.regions[0] }

// Region returns the region with the given id, or nil
func (p *Page) Region(id RegionID) *Region {
	if id < 0 || int(id) >= len(p.regions) {
		return nil
	}
	return p.regions[id]
}

// Regions returns all regions in creation order, the root first
func (p *Page) Regions() []*Region { return p.regions }

// Leaves returns the regions without sub-regions
func (p *Page) Leaves() []*Region {
	var out []*Region
	for _, r := range p.regions {
		if len(r.children) == 0 {
			out = append(out, r)
		}
	}
	return out
}

func (p *Page) newRegion(parent RegionID, items []model.Item) *Region {
	r := &Region{
		id:      RegionID(len(p.regions)),
		parent:  parent,
		page:    p,
		content: spatial.New(items...),
	}
	if parent != NoRegion {
		r.depth = p.regions[parent].depth + 1
	}
	p.regions = append(p.regions, r)
	return r
}

// Stats are font statistics over the text runs directly held by a region
type Stats struct {
	TextCount      int
	AvgGlyphWidth  float64
	AvgGlyphHeight float64
	AvgFontSize    float64
	DominantStyle  *model.Style
}

// Region is a rectangular subset of a page with its own content,
// sub-regions and discovered whitespace.
type Region struct {
	id     RegionID
	parent RegionID
	page   *Page // owning page, not owned by the region
	depth  int

	content  *spatial.Index
	children []RegionID

	// root regions have a fixed frame; the others span their content
	frame    model.Rectangle
	hasFrame bool

	whitespace []*model.WhitespaceRect
	boundaries []model.Rectangle
	paragraphs []*model.Paragraph

	stats      Stats
	statsValid bool
}

func (r *Region) Kind() model.Kind { return model.KindRegion }

// Bounds returns the region frame for a root region, and the union of the
// content for every other region.
func (r *Region) Bounds() model.Rectangle {
	if r.hasFrame {
		return r.frame
	}
	b, ok := r.content.Bounds()
	if !ok {
		return model.Rectangle{}
	}
	return b
}

// ID returns the arena handle of the region
func (r *Region) ID() RegionID { return r.id }

// Depth returns the nesting depth, 0 for the root
func (r *Region) Depth() int { return r.depth }

// PageNumber returns the number of the owning page
func (r *Region) PageNumber() int { return r.page.Number }

// Parent returns the enclosing region, or nil for the root
func (r *Region) Parent() *Region {
	if r.parent == NoRegion {
		return nil
	}
	return r.page.regions[r.parent]
}

// Children returns the sub-regions carved out of this region
func (r *Region) Children() []*Region {
	out := make([]*Region, len(r.children))
	for i, id := range r.children {
		out[i] = r.page.regions[id]
	}
	return out
}

// Content returns the spatial index of the items held directly by r
func (r *Region) Content() *spatial.Index { return r.content }

// Items returns the items held directly by r
func (r *Region) Items() []model.Item { return r.content.Items() }

// TextRuns returns the text runs held directly by r
func (r *Region) TextRuns() []*model.TextRun {
	var out []*model.TextRun
	for _, it := range r.content.Items() {
		if t, ok := it.(*model.TextRun); ok {
			out = append(out, t)
		}
	}
	return out
}

// Whitespace returns the whitespace rectangles found in r
func (r *Region) Whitespace() []*model.WhitespaceRect { return r.whitespace }

// Boundaries returns the column boundaries derived for r
func (r *Region) Boundaries() []model.Rectangle { return r.boundaries }

// Paragraphs returns the paragraphs built from the text held directly by r
func (r *Region) Paragraphs() []*model.Paragraph { return r.paragraphs }

// Add inserts items and invalidates the caches of r and its ancestors
func (r *Region) Add(items ...model.Item) {
	r.content.Add(items...)
	r.invalidate()
}

// Remove deletes items and invalidates the caches of r and its ancestors
func (r *Region) Remove(items ...model.Item) {
	r.content.Remove(items...)
	r.invalidate()
}

// invalidate drops the cached statistics of r and, because r's bounds may
// have moved, the cached geometry of every ancestor holding it.
func (r *Region) invalidate() {
	r.statsValid = false
	for p := r.Parent(); p != nil; p = p.Parent() {
		p.content.Invalidate()
		p.statsValid = false
	}
}

// carve moves items out of r into a new sub-region, which takes their place
// in r's content. Nothing is created for an empty item list.
func (r *Region) carve(items []model.Item) *Region {
	if len(items) == 0 {
		return nil
	}
	r.content.Remove(items...)
	child := r.page.newRegion(r.id, items)
	r.children = append(r.children, child.id)
	r.content.Add(child)
	r.invalidate()
	return child
}

// Stats returns the font statistics of the text held directly by r
func (r *Region) Stats() Stats {
	if r.statsValid {
		return r.stats
	}

	var s Stats
	var widthSum, heightSum, sizeSum float64
	counts := make(map[*model.Style]int)
	var order []*model.Style
	for _, t := range r.TextRuns() {
		if t.IsSpace() {
			continue
		}
		s.TextCount++
		widthSum += t.GlyphWidth()
		heightSum += t.Rect.Height
		sizeSum += t.FontSize()
		if _, seen := counts[t.Style]; !seen {
			order = append(order, t.Style)
		}
		counts[t.Style] += len([]rune(t.Text))
	}
	if s.TextCount > 0 {
		n := float64(s.TextCount)
		s.AvgGlyphWidth = widthSum / n
		s.AvgGlyphHeight = heightSum / n
		s.AvgFontSize = sizeSum / n
		best := -1
		for _, st := range order {
			if counts[st] > best {
				s.DominantStyle, best = st, counts[st]
			}
		}
	}

	r.stats = s
	r.statsValid = true
	return s
}

// statsOrInherited returns r's statistics, falling back to the nearest
// ancestor with text when r holds none directly.
func (r *Region) statsOrInherited() Stats {
	for cur := r; cur != nil; cur = cur.Parent() {
		if s := cur.Stats(); s.TextCount > 0 {
			return s
		}
	}
	return Stats{}
}

// Text returns the text of r and its sub-regions in reading order
func (r *Region) Text() string {
	var paras []string
	for _, p := range ReadingOrder(r) {
		paras = append(paras, p.Text())
	}
	return joinNonEmpty(paras, "\n\n")
}

// obstacles returns the rectangles that block whitespace inside r: text,
// sub-regions, and graphics other than math bars and background containers.
func (r *Region) obstacles() []model.Rectangle {
	var out []model.Rectangle
	bound := r.Bounds()
	for _, it := range r.content.Items() {
		switch v := it.(type) {
		case *model.TextRun:
			out = append(out, v.Rect)
		case *Region:
			out = append(out, v.Bounds())
		case *model.Graphic:
			switch v.Role {
			case model.RoleMathBar:
			case model.RoleContainer:
				if !isBackground(v, bound) {
					out = append(out, v.Rect)
				}
			default:
				out = append(out, v.Rect)
			}
		case *model.WhitespaceRect:
		}
	}
	return out
}

// isBackground reports whether a container covers (nearly) the whole region
func isBackground(g *model.Graphic, bound model.Rectangle) bool {
	in, ok := g.Rect.Intersection(bound)
	return ok && in.Area() >= 0.9*bound.Area()
}

// sortedByX returns the rectangles ordered by left edge
func sortedByX(rects []model.Rectangle) []model.Rectangle {
	out := append([]model.Rectangle(nil), rects...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].X < out[j].X })
	return out
}

func floorInt(v float64) int { return int(math.Floor(v)) }

func ceilInt(v float64) int { return int(math.Ceil(v)) }
