package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/pagelayout/model"
)

// lineAt builds a one-word line covering the given rectangle
func lineAt(f *fixture, text string, x, y, w, h float64) *model.Line {
	return model.NewLine(model.NewWord(f.run(text, x, y, w, h)))
}

// stackedLines builds full-width lines starting at the given tops
func stackedLines(f *fixture, tops ...float64) []*model.Line {
	var out []*model.Line
	for _, y := range tops {
		out = append(out, lineAt(f, columnLine, 0, y, 300, 10))
	}
	return out
}

// ============================================================================
// Line spacing
// ============================================================================

func TestLineSpacing(t *testing.T) {
	f := newFixture()
	bound := rect(0, 0, 300, 800)

	tests := []struct {
		name string
		tops []float64
		want float64
	}{
		{"uniform", []float64{0, 14, 28, 42}, 4},
		{"modal gap wins", []float64{0, 14, 28, 42, 70}, 4},
		{"tie goes to the smaller gap", []float64{0, 14, 30}, 4},
		{"clamped to the minimum", []float64{0, 11, 22}, 2},
		{"clamped to three font sizes", []float64{0, 60, 120}, 30},
		{"single line falls back", []float64{0}, 5},
	}

	d := NewParagraphDetector()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, d.LineSpacing(stackedLines(f, tt.tops...), bound, 10))
		})
	}
}

// ============================================================================
// Grouping
// ============================================================================

func TestGroupParagraphs(t *testing.T) {
	f := newFixture()
	lines := stackedLines(f, 0, 14, 28, 100, 114)

	paras := NewParagraphDetector().Group(lines, 4)
	require.Len(t, paras, 2)
	assert.Len(t, paras[0].Lines(), 3)
	assert.Len(t, paras[1].Lines(), 2)
}

func TestGroupParagraphsNeedsHorizontalOverlap(t *testing.T) {
	f := newFixture()
	lines := []*model.Line{
		lineAt(f, "left", 0, 0, 100, 10),
		lineAt(f, "right", 200, 14, 100, 10),
	}

	paras := NewParagraphDetector().Group(lines, 4)
	assert.Len(t, paras, 2)
}

// ============================================================================
// Combination
// ============================================================================

func TestCombineNestedParagraphs(t *testing.T) {
	f := newFixture()
	outer := model.NewParagraph(stackedLines(f, 0, 14, 28, 42)...)
	inner := model.NewParagraph(lineAt(f, "inset", 50, 20, 50, 5))
	apart := model.NewParagraph(stackedLines(f, 200)...)

	in := []*model.Paragraph{outer, inner, apart}
	out := NewParagraphDetector().Combine(in)

	require.Len(t, out, len(in)-1)
	assert.Same(t, outer, out[0])
	assert.Len(t, outer.Lines(), 5)
	assert.Empty(t, inner.Lines())
	assert.Same(t, apart, out[1])
}

func TestCombineOverlappingParagraphs(t *testing.T) {
	f := newFixture()
	a := model.NewParagraph(lineAt(f, "a", 0, 0, 100, 40))
	b := model.NewParagraph(lineAt(f, "b", 10, 10, 100, 40))
	c := model.NewParagraph(lineAt(f, "c", 40, 15, 100, 40))

	out := NewParagraphDetector().Combine([]*model.Paragraph{a, b, c})
	assert.Len(t, out, 1, "merging cascades through the grown rectangle")
}

func TestCombineDisjointParagraphs(t *testing.T) {
	f := newFixture()
	a := model.NewParagraph(lineAt(f, "a", 0, 0, 100, 10))
	b := model.NewParagraph(lineAt(f, "b", 0, 50, 100, 10))

	out := NewParagraphDetector().Combine([]*model.Paragraph{b, a})
	require.Len(t, out, 2)
	assert.Same(t, a, out[0], "the result is in reading order")
}
