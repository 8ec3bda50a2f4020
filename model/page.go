package model

import (
	"github.com/pkg/errors"
)

// ErrDuplicateSequence is returned when two glyph runs on a page share a
// sequence number.
var ErrDuplicateSequence = errors.New("duplicate glyph run sequence number")

// GlyphRun is one positioned run of glyphs as delivered by the upstream
// extractor, before styles are interned.
type GlyphRun struct {
	Text        string
	X, Y        float64 // top-left corner
	Width       float64
	Height      float64
	FontName    string
	XSize       float64
	YSize       float64
	WordSpacing float64
	CharSpacing float64
	Seq         int // unique, increasing in content-stream order
	Rotation    int // degrees
}

// GraphicPrimitive is the bounding box of a drawn path.
type GraphicPrimitive struct {
	X, Y          float64
	Width, Height float64
	Filled        bool
	Stroked       bool
	Color         Color
}

// PageInput is the upstream description of a single page.
type PageInput struct {
	Number   int // 1-indexed page number
	Width    float64
	Height   float64
	Runs     []GlyphRun
	Graphics []GraphicPrimitive
}

// Bounds returns the page rectangle.
func (p PageInput) Bounds() (Rectangle, error) {
	r, err := NewRectangle(0, 0, p.Width, p.Height)
	if err != nil {
		return Rectangle{}, errors.Wrapf(err, "page %d", p.Number)
	}
	return r, nil
}

// Validate checks the page dimensions and that sequence numbers are unique.
func (p PageInput) Validate() error {
	if _, err := p.Bounds(); err != nil {
		return err
	}
	seen := make(map[int]struct{}, len(p.Runs))
	for _, r := range p.Runs {
		if _, dup := seen[r.Seq]; dup {
			return errors.Wrapf(ErrDuplicateSequence, "page %d seq %d", p.Number, r.Seq)
		}
		seen[r.Seq] = struct{}{}
	}
	return nil
}

// TextRuns converts the glyph runs into text runs with interned styles.
// Degenerate run rectangles are normalized rather than rejected.
func (p PageInput) TextRuns(styles *StyleTable) []*TextRun {
	out := make([]*TextRun, 0, len(p.Runs))
	for _, g := range p.Runs {
		out = append(out, &TextRun{
			Text:     g.Text,
			Rect:     NormalizeRectangle(g.X, g.Y, g.Width, g.Height),
			Style:    styles.Intern(g.FontName, g.XSize, g.YSize, g.WordSpacing, g.CharSpacing),
			FirstSeq: g.Seq,
			LastSeq:  g.Seq,
			Rotation: g.Rotation,
		})
	}
	return out
}

// GraphicItems converts the graphic primitives into unclassified graphics.
func (p PageInput) GraphicItems() []*Graphic {
	out := make([]*Graphic, 0, len(p.Graphics))
	for _, g := range p.Graphics {
		out = append(out, &Graphic{
			Rect:    NormalizeRectangle(g.X, g.Y, g.Width, g.Height),
			Filled:  g.Filled,
			Stroked: g.Stroked,
			Color:   g.Color,
		})
	}
	return out
}
