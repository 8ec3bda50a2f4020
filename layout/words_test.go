package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/pagelayout/model"
)

// ============================================================================
// Character spacing
// ============================================================================

func TestInferCharSpacing(t *testing.T) {
	tests := []struct {
		name     string
		gaps     []float64
		fontSize float64
		want     float64
	}{
		{"no gaps falls back to the floor", nil, 10, 5},
		{"uniform gaps", []float64{6, 6, 6}, 4, 6},
		{"gaps within ten percent are uniform", []float64{20, 20, 22}, 10, 22},
		{"small spread relative to the gap", []float64{10, 10, 10.8}, 10, 10.8},
		{"spread just over ten percent is scored", []float64{10, 10, 12}, 2, 10},
		{"glyph gaps beat word gaps", []float64{4, 4, 4, 4, 20}, 2, 4},
		{"floor from font size", []float64{1, 1, 1, 1, 8}, 10, 5},
		{"floor never below minimum", []float64{0, 0, 0}, 1, 3},
		{"negative gaps count as zero", []float64{-2, -2}, 2, 3},
	}

	s := NewWordSegmenter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, s.InferCharSpacing(tt.gaps, tt.fontSize), 1e-9)
		})
	}
}

func TestGaps(t *testing.T) {
	f := newFixture()
	line := []*model.TextRun{
		f.run("b", 20, 0, 10, 10),
		f.run("a", 0, 0, 10, 10),
		f.run(" ", 30, 0, 5, 10),
		f.run("c", 40, 0, 10, 10),
		f.run("d", 48, 0, 10, 10),
	}
	assert.Equal(t, []float64{10, 10, 0}, Gaps(line))
}

// ============================================================================
// Word segmentation
// ============================================================================

func TestSegmentLineGlyphRuns(t *testing.T) {
	f := newFixture()
	runs := f.glyphs("Hello", 0, 0, 6, 10, 0)

	words := NewWordSegmenter().SegmentLine(runs)
	require.Len(t, words, 1)
	assert.Equal(t, runs, words[0].Runs())
	assert.Equal(t, "Hello", words[0].Text())
}

func TestSegmentSpacingBoundary(t *testing.T) {
	f := newFixture()
	a := f.run("ab", 0, 0, 20, 10)
	b := f.run("cd", 24, 0, 20, 10)

	s := NewWordSegmenter()
	assert.Len(t, s.Segment([]*model.TextRun{a, b}, 4), 1, "a gap equal to the spacing joins")
	assert.Len(t, s.Segment([]*model.TextRun{a, b}, 3), 2, "a gap one unit wider than the spacing splits")
}

func TestSegmentStyleChangeSplits(t *testing.T) {
	f := newFixture()
	plain := f.run("ab", 0, 0, 20, 10)
	bold := f.styled("cd", "Helvetica-Bold", 10, 20, 0, 20, 10)

	words := NewWordSegmenter().Segment([]*model.TextRun{plain, bold}, 5)
	assert.Len(t, words, 2)
}

func TestSegmentWhitespaceRunsBreakWords(t *testing.T) {
	f := newFixture()
	runs := []*model.TextRun{
		f.run("to", 0, 0, 20, 10),
		f.run(" ", 20, 0, 1, 10),
		f.run("be", 21, 0, 20, 10),
	}

	words := NewWordSegmenter().Segment(runs, 5)
	require.Len(t, words, 2)
	assert.Equal(t, "to", words[0].Text())
	assert.Equal(t, "be", words[1].Text())
}

func TestSegmentLineTwoWords(t *testing.T) {
	f := newFixture()
	runs := append(f.glyphs("page", 0, 0, 6, 10, 0.5), f.glyphs("layout", 40, 0, 6, 10, 0.5)...)

	words := NewWordSegmenter().SegmentLine(runs)
	require.Len(t, words, 2)
	assert.Equal(t, "page", words[0].Text())
	assert.Equal(t, "layout", words[1].Text())
}
