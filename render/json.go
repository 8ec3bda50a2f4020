package render

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"

	"github.com/tsawler/pagelayout/layout"
	"github.com/tsawler/pagelayout/model"
)

// Box is a rectangle in page units.
type Box struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func boxOf(r model.Rectangle) Box {
	return Box{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}

// ParagraphSummary describes one paragraph.
type ParagraphSummary struct {
	Bounds Box    `json:"bounds"`
	Lines  int    `json:"lines"`
	Words  int    `json:"words"`
	Style  string `json:"style,omitempty"`
	Text   string `json:"text"`
}

// RegionSummary describes one region of the tree.
type RegionSummary struct {
	ID         int                `json:"id"`
	Parent     int                `json:"parent"`
	Depth      int                `json:"depth"`
	Bounds     Box                `json:"bounds"`
	Children   []int              `json:"children,omitempty"`
	Whitespace int                `json:"whitespace"`
	Boundaries []Box              `json:"boundaries,omitempty"`
	Paragraphs []ParagraphSummary `json:"paragraphs,omitempty"`
}

// GraphicSummary describes one classified graphic.
type GraphicSummary struct {
	Bounds Box    `json:"bounds"`
	Role   string `json:"role"`
}

// PageSummary is the serialisable form of an analysed page.
type PageSummary struct {
	Number        int              `json:"number"`
	Width         float64          `json:"width"`
	Height        float64          `json:"height"`
	Truncated     bool             `json:"truncated,omitempty"`
	SkippedSplits int              `json:"skipped_splits,omitempty"`
	Regions       []RegionSummary  `json:"regions"`
	Graphics      []GraphicSummary `json:"graphics,omitempty"`
}

// Summarize flattens a page's region tree. Regions are listed in creation
// order, so the root comes first and parents precede their children.
func Summarize(p *layout.Page) PageSummary {
	out := PageSummary{
		Number:        p.Number,
		Width:         p.Bounds.Width,
		Height:        p.Bounds.Height,
		Truncated:     p.Truncated,
		SkippedSplits: p.SkippedSplits,
	}
	for _, r := range p.Regions() {
		rs := RegionSummary{
			ID:         int(r.ID()),
			Parent:     int(layout.NoRegion),
			Depth:      r.Depth(),
			Bounds:     boxOf(r.Bounds()),
			Whitespace: len(r.Whitespace()),
		}
		if parent := r.Parent(); parent != nil {
			rs.Parent = int(parent.ID())
		}
		for _, c := range r.Children() {
			rs.Children = append(rs.Children, int(c.ID()))
		}
		for _, b := range r.Boundaries() {
			rs.Boundaries = append(rs.Boundaries, boxOf(b))
		}
		for _, para := range r.Paragraphs() {
			ps := ParagraphSummary{
				Bounds: boxOf(para.Bounds()),
				Lines:  len(para.Lines()),
				Words:  para.WordCount(),
				Text:   para.Text(),
			}
			if st := para.Style(); st != nil {
				ps.Style = st.String()
			}
			rs.Paragraphs = append(rs.Paragraphs, ps)
		}
		out.Regions = append(out.Regions, rs)
	}
	for _, g := range p.Graphics {
		out.Graphics = append(out.Graphics, GraphicSummary{Bounds: boxOf(g.Rect), Role: g.Role.String()})
	}
	return out
}

// WriteJSON writes one indented JSON array with a summary per page.
func WriteJSON(w io.Writer, pages []*layout.Page) error {
	summaries := make([]PageSummary, 0, len(pages))
	for _, p := range pages {
		summaries = append(summaries, Summarize(p))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(summaries), "encode json")
}
