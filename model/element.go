package model

import (
	"strings"

	"github.com/pkg/errors"
)

// Kind identifies the variant of a positioned item
type Kind int

const (
	KindText Kind = iota
	KindGraphic
	KindWhitespace
	KindRegion
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "Text"
	case KindGraphic:
		return "Graphic"
	case KindWhitespace:
		return "Whitespace"
	case KindRegion:
		return "Region"
	default:
		return "Unknown"
	}
}

// Item is anything with a position on the page. The set of variants is
// closed: *TextRun, *Graphic, *WhitespaceRect, and the region type of the
// layout package. Switch on Kind to tell them apart.
type Item interface {
	Kind() Kind
	Bounds() Rectangle
}

// IsText reports whether the item is a text run
func IsText(it Item) bool { return it.Kind() == KindText }

// TextRun is a contiguous sequence of glyphs sharing position and style, as
// produced by the upstream extractor. FirstSeq and LastSeq delimit the
// (contiguous) range of upstream sequence numbers the run covers.
type TextRun struct {
	Text     string
	Rect     Rectangle
	Style    *Style
	FirstSeq int
	LastSeq  int
	Rotation int
}

func (t *TextRun) Kind() Kind        { return KindText }
func (t *TextRun) Bounds() Rectangle { return t.Rect }

// IsSpace reports whether the run holds only whitespace characters.
func (t *TextRun) IsSpace() bool {
	return strings.TrimSpace(t.Text) == ""
}

// FontSize returns the run's vertical font size, falling back to the height
// of its rectangle when no style is attached.
func (t *TextRun) FontSize() float64 {
	if t.Style != nil && t.Style.YSize > 0 {
		return t.Style.YSize
	}
	return t.Rect.Height
}

// GlyphWidth returns the average width of one character in the run.
func (t *TextRun) GlyphWidth() float64 {
	n := len([]rune(t.Text))
	if n == 0 {
		return t.Rect.Width
	}
	return t.Rect.Width / float64(n)
}

// Follows reports whether t directly continues prev in reading order.
func (t *TextRun) Follows(prev *TextRun) bool {
	return t.FirstSeq == prev.LastSeq+1
}

// ErrNonContiguousRuns is returned when merging runs whose sequence ranges
// are not adjacent.
var ErrNonContiguousRuns = errors.New("text runs are not contiguous")

// MergeRuns joins b onto the end of a. The runs must share a style and b must
// directly follow a, so the merged sequence range stays contiguous.
func MergeRuns(a, b *TextRun) (*TextRun, error) {
	if !b.Follows(a) {
		return nil, errors.Wrapf(ErrNonContiguousRuns, "seq %d-%d then %d-%d", a.FirstSeq, a.LastSeq, b.FirstSeq, b.LastSeq)
	}
	if a.Style != b.Style || a.Rotation != b.Rotation {
		return nil, errors.New("cannot merge runs with different styles")
	}
	return &TextRun{
		Text:     a.Text + b.Text,
		Rect:     a.Rect.Union(b.Rect),
		Style:    a.Style,
		FirstSeq: a.FirstSeq,
		LastSeq:  b.LastSeq,
		Rotation: a.Rotation,
	}, nil
}

// Color represents an RGB color
type Color struct {
	R, G, B uint8
}

// GraphicRole is the layout meaning assigned to a graphic primitive
type GraphicRole int

const (
	RoleUnclassified GraphicRole = iota
	RoleSeparator                // thin rule dividing content
	RoleContainer                // box enclosing a block of text
	RoleMathBar                  // fraction bar inside a formula
	RoleContent                  // figure or decoration
)

func (r GraphicRole) String() string {
	switch r {
	case RoleSeparator:
		return "separator"
	case RoleContainer:
		return "container"
	case RoleMathBar:
		return "math-bar"
	case RoleContent:
		return "content"
	default:
		return "unclassified"
	}
}

// Graphic is a vector primitive (path bounding box) drawn on the page
type Graphic struct {
	Rect    Rectangle
	Filled  bool
	Stroked bool
	Color   Color
	Role    GraphicRole
}

func (g *Graphic) Kind() Kind        { return KindGraphic }
func (g *Graphic) Bounds() Rectangle { return g.Rect }

// IsVertical reports whether the graphic is taller than it is wide.
func (g *Graphic) IsVertical() bool {
	return g.Rect.Height > g.Rect.Width
}

// Direction tells which way a whitespace search ran
type Direction int

const (
	Vertical   Direction = iota // column gaps
	Horizontal                  // row gaps
)

func (d Direction) String() string {
	if d == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// WhitespaceRect is a maximal empty rectangle found by the whitespace search.
type WhitespaceRect struct {
	Rect      Rectangle
	Score     float64
	Direction Direction
}

func (w *WhitespaceRect) Kind() Kind        { return KindWhitespace }
func (w *WhitespaceRect) Bounds() Rectangle { return w.Rect }

// Rects returns the rectangles of the given items.
func Rects[T Item](items []T) []Rectangle {
	out := make([]Rectangle, len(items))
	for i, it := range items {
		out[i] = it.Bounds()
	}
	return out
}
