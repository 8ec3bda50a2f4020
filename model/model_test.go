package model

import (
	"math"
	"testing"

	"github.com/pkg/errors"
)

// ============================================================================
// Point Tests
// ============================================================================

func TestPointDistance(t *testing.T) {
	tests := []struct {
		name     string
		p1, p2   Point
		expected float64
	}{
		{"same point", Point{0, 0}, Point{0, 0}, 0},
		{"horizontal", Point{0, 0}, Point{3, 0}, 3},
		{"vertical", Point{0, 0}, Point{0, 4}, 4},
		{"diagonal 3-4-5", Point{0, 0}, Point{3, 4}, 5},
		{"negative coords", Point{-1, -1}, Point{2, 3}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.p1.Distance(tt.p2)
			if math.Abs(result-tt.expected) > 0.0001 {
				t.Errorf("Distance() = %v, want %v", result, tt.expected)
			}
		})
	}
}

// ============================================================================
// Rectangle Tests
// ============================================================================

func TestNewRectangle(t *testing.T) {
	r, err := NewRectangle(10, 20, 100, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.X != 10 || r.Y != 20 || r.Width != 100 || r.Height != 50 {
		t.Errorf("NewRectangle() = %+v, want {10, 20, 100, 50}", r)
	}
}

func TestNewRectangleRejectsNonPositive(t *testing.T) {
	tests := []struct {
		name          string
		width, height float64
	}{
		{"zero width", 0, 10},
		{"zero height", 10, 0},
		{"negative width", -5, 10},
		{"negative height", 10, -1},
		{"NaN", math.NaN(), 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRectangle(0, 0, tt.width, tt.height)
			if !errors.Is(err, ErrInvalidRectangle) {
				t.Errorf("expected ErrInvalidRectangle, got %v", err)
			}
		})
	}
}

func TestMustRectanglePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for zero-sized rectangle")
		}
	}()
	MustRectangle(0, 0, 0, 0)
}

func TestNormalizeRectangle(t *testing.T) {
	r := NormalizeRectangle(5, 5, 0, -2)
	if r.Width != MinDimension {
		t.Errorf("Width = %v, want %v", r.Width, MinDimension)
	}
	if r.Height != 2 || r.Y != 3 {
		t.Errorf("negative height should flip, got %+v", r)
	}
	if !r.IsValid() {
		t.Error("normalized rectangle should be valid")
	}
}

func TestRectangleEdgesExact(t *testing.T) {
	tests := []struct{ x, y, w, h float64 }{
		{0, 0, 1, 1},
		{0.1, 0.2, 0.3, 0.7},
		{612.5, 791.25, 33.333, 12.1},
		{-10, -20, 1e-3, 1e6},
	}

	for _, tt := range tests {
		r := MustRectangle(tt.x, tt.y, tt.w, tt.h)
		if r.EndX() != tt.x+tt.w {
			t.Errorf("EndX() = %v, want %v", r.EndX(), tt.x+tt.w)
		}
		if r.EndY() != tt.y+tt.h {
			t.Errorf("EndY() = %v, want %v", r.EndY(), tt.y+tt.h)
		}
	}
}

func TestRectangleSelfProperties(t *testing.T) {
	rects := []Rectangle{
		MustRectangle(0, 0, 1, 1),
		MustRectangle(10, 20, 100, 50),
		MustRectangle(-3.5, 7.25, 0.01, 900),
	}

	for _, r := range rects {
		if r.Union(r) != r {
			t.Errorf("%v.Union(self) = %v", r, r.Union(r))
		}
		if !r.Intersects(r) {
			t.Errorf("%v should intersect itself", r)
		}
		if in, ok := r.Intersection(r); !ok || in != r {
			t.Errorf("%v.Intersection(self) = %v, %v", r, in, ok)
		}
	}
}

func TestRectangleContainedOperandIsExact(t *testing.T) {
	outer := MustRectangle(-100, -100, 1000, 2000)
	inner := MustRectangle(-3.5, 7.25, 0.01, 900)

	if got := outer.Union(inner); got != outer {
		t.Errorf("Union() = %v, want %v", got, outer)
	}
	if got, ok := outer.Intersection(inner); !ok || got != inner {
		t.Errorf("Intersection() = %v, %v, want %v", got, ok, inner)
	}
	if got, ok := inner.Intersection(outer); !ok || got != inner {
		t.Errorf("Intersection() = %v, %v, want %v", got, ok, inner)
	}
}

func TestRectangleIntersects(t *testing.T) {
	base := MustRectangle(0, 0, 10, 10)
	tests := []struct {
		name  string
		other Rectangle
		want  bool
	}{
		{"overlap", MustRectangle(5, 5, 10, 10), true},
		{"inside", MustRectangle(2, 2, 2, 2), true},
		{"touching edge", MustRectangle(10, 0, 5, 5), false},
		{"disjoint", MustRectangle(20, 20, 5, 5), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Intersects(tt.other); got != tt.want {
				t.Errorf("Intersects() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRectangleUnionAndIntersection(t *testing.T) {
	a := MustRectangle(0, 0, 10, 10)
	b := MustRectangle(5, 5, 10, 10)

	if got := a.Union(b); got != MustRectangle(0, 0, 15, 15) {
		t.Errorf("Union() = %v", got)
	}
	in, ok := a.Intersection(b)
	if !ok || in != MustRectangle(5, 5, 5, 5) {
		t.Errorf("Intersection() = %v, %v", in, ok)
	}
	if _, ok := a.Intersection(MustRectangle(50, 50, 1, 1)); ok {
		t.Error("disjoint rectangles should not intersect")
	}
}

func TestRectangleDistance(t *testing.T) {
	a := MustRectangle(0, 0, 10, 10)
	tests := []struct {
		name  string
		other Rectangle
		want  float64
	}{
		{"touching", MustRectangle(10, 0, 5, 5), 0},
		{"overlapping", MustRectangle(5, 5, 5, 5), 0},
		{"right", MustRectangle(13, 0, 5, 5), 3},
		{"below", MustRectangle(0, 14, 5, 5), 4},
		{"diagonal", MustRectangle(13, 14, 5, 5), 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Distance(tt.other); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Distance() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRectangleContainsAndShrink(t *testing.T) {
	outer := MustRectangle(0, 0, 100, 100)
	if !outer.Contains(MustRectangle(10, 10, 10, 10)) {
		t.Error("expected containment")
	}
	if outer.Contains(MustRectangle(95, 95, 10, 10)) {
		t.Error("partially outside rectangle should not be contained")
	}

	s := outer.Shrink(1)
	if s != MustRectangle(1, 1, 98, 98) {
		t.Errorf("Shrink(1) = %v", s)
	}
	tiny := MustRectangle(0, 0, 1, 1).Shrink(5)
	if !tiny.IsValid() || math.Abs(tiny.CenterX()-0.5) > 1e-9 {
		t.Errorf("collapsed shrink should stay valid around centre, got %v", tiny)
	}
}

// ============================================================================
// Style Tests
// ============================================================================

func TestStyleInterning(t *testing.T) {
	table := NewStyleTable()

	a := table.Intern("Times", 10, 10, 0, 0)
	b := table.Intern("Times", 10.02, 9.98, 0, 0)
	c := table.Intern("Times", 12, 12, 0, 0)
	d := table.Intern("Helvetica", 10, 10, 0, 0)

	if a != b {
		t.Error("metrics equal after rounding should share one instance")
	}
	if a == c || a == d {
		t.Error("different metrics should produce different styles")
	}
	if table.Len() != 3 {
		t.Errorf("Len() = %d, want 3", table.Len())
	}
	if a.FontSize() != 10 {
		t.Errorf("FontSize() = %v, want 10", a.FontSize())
	}
}

// ============================================================================
// Item Tests
// ============================================================================

func TestItemKinds(t *testing.T) {
	items := []Item{
		&TextRun{Rect: MustRectangle(0, 0, 1, 1)},
		&Graphic{Rect: MustRectangle(0, 0, 1, 1)},
		&WhitespaceRect{Rect: MustRectangle(0, 0, 1, 1)},
	}
	want := []Kind{KindText, KindGraphic, KindWhitespace}

	for i, it := range items {
		if it.Kind() != want[i] {
			t.Errorf("item %d: Kind() = %v, want %v", i, it.Kind(), want[i])
		}
	}
}

func TestMergeRuns(t *testing.T) {
	style := NewStyleTable().Intern("Times", 10, 10, 0, 0)
	a := &TextRun{Text: "He", Rect: MustRectangle(0, 0, 10, 10), Style: style, FirstSeq: 3, LastSeq: 4}
	b := &TextRun{Text: "llo", Rect: MustRectangle(10, 0, 15, 10), Style: style, FirstSeq: 5, LastSeq: 7}

	merged, err := MergeRuns(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if merged.Text != "Hello" || merged.FirstSeq != 3 || merged.LastSeq != 7 {
		t.Errorf("merged = %+v", merged)
	}
	if merged.Rect != MustRectangle(0, 0, 25, 10) {
		t.Errorf("merged rect = %v", merged.Rect)
	}

	if _, err := MergeRuns(b, a); !errors.Is(err, ErrNonContiguousRuns) {
		t.Errorf("expected ErrNonContiguousRuns, got %v", err)
	}
}

// ============================================================================
// Text Structure Tests
// ============================================================================

func run(text string, x, y, w, h float64, seq int, style *Style) *TextRun {
	return &TextRun{Text: text, Rect: MustRectangle(x, y, w, h), Style: style, FirstSeq: seq, LastSeq: seq}
}

func TestWordOrderingAndText(t *testing.T) {
	style := NewStyleTable().Intern("Times", 10, 10, 0, 0)
	w := NewWord(
		run("c", 20, 0, 5, 10, 3, style),
		run("a", 10, 0, 5, 10, 1, style),
		run("b", 15, 0, 5, 10, 2, style),
	)

	if w.Text() != "abc" {
		t.Errorf("Text() = %q, want %q", w.Text(), "abc")
	}
	if w.Bounds() != MustRectangle(10, 0, 15, 10) {
		t.Errorf("Bounds() = %v", w.Bounds())
	}

	w.Add(run("d", 25, 0, 5, 10, 4, style))
	if w.Bounds().EndX() != 30 {
		t.Error("bounds should be recomputed after Add")
	}
}

func TestWordTextIsNFC(t *testing.T) {
	// "e" followed by a combining acute accent
	w := NewWord(&TextRun{Text: "é", Rect: MustRectangle(0, 0, 5, 10)})
	if w.Text() != "é" {
		t.Errorf("Text() = %q, want composed é", w.Text())
	}
}

func TestParagraphMerge(t *testing.T) {
	style := NewStyleTable().Intern("Times", 10, 10, 0, 0)
	line := func(text string, y float64, seq int) *Line {
		return NewLine(NewWord(run(text, 0, y, 50, 10, seq, style)))
	}

	p1 := NewParagraph(line("first", 0, 1), line("third", 40, 3))
	p2 := NewParagraph(line("second", 20, 2))

	p1.Merge(p2)

	if len(p1.Lines()) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(p1.Lines()))
	}
	if p1.Text() != "first\nsecond\nthird" {
		t.Errorf("Text() = %q", p1.Text())
	}
	if len(p2.Lines()) != 0 {
		t.Error("merged paragraph should be emptied")
	}
	if p1.Style() != style {
		t.Error("dominant style mismatch")
	}
}

// ============================================================================
// Page Input Tests
// ============================================================================

func TestPageInputValidate(t *testing.T) {
	page := PageInput{
		Number: 2,
		Width:  600,
		Height: 800,
		Runs: []GlyphRun{
			{Text: "a", X: 0, Y: 0, Width: 5, Height: 10, Seq: 1},
			{Text: "b", X: 5, Y: 0, Width: 5, Height: 10, Seq: 1},
		},
	}
	if err := page.Validate(); !errors.Is(err, ErrDuplicateSequence) {
		t.Errorf("expected ErrDuplicateSequence, got %v", err)
	}

	page.Runs[1].Seq = 2
	if err := page.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	page.Width = 0
	if err := page.Validate(); !errors.Is(err, ErrInvalidRectangle) {
		t.Errorf("expected ErrInvalidRectangle, got %v", err)
	}
}

func TestPageInputTextRunsNormalizesAndInterns(t *testing.T) {
	styles := NewStyleTable()
	page := PageInput{
		Width: 100, Height: 100,
		Runs: []GlyphRun{
			{Text: " ", X: 10, Y: 10, Width: 0, Height: 10, FontName: "F1", YSize: 10, Seq: 1},
			{Text: "x", X: 10, Y: 10, Width: 5, Height: 10, FontName: "F1", YSize: 10, Seq: 2},
		},
	}

	runs := page.TextRuns(styles)
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if !runs[0].Rect.IsValid() {
		t.Error("zero-width glyph should be normalized")
	}
	if runs[0].Style != runs[1].Style {
		t.Error("equal metrics should share a style")
	}
	if !runs[0].IsSpace() || runs[1].IsSpace() {
		t.Error("IsSpace mismatch")
	}
}
