package layout

import (
	"math"
	"sort"

	"github.com/tsawler/pagelayout/model"
)

// WordConfig holds configuration for word segmentation
type WordConfig struct {
	// MinSpacing is the smallest character spacing ever inferred
	// Default: 3.0 points
	MinSpacing float64

	// FontSizeFloor raises the inferred spacing to at least this share of
	// the average font size
	// Default: 0.5
	FontSizeFloor float64

	// UniformRatio is how far apart the smallest and largest gaps of a line
	// may be, as a share of the largest, for its spacing to count as uniform
	// Default: 0.1
	UniformRatio float64
}

// DefaultWordConfig returns sensible defaults for word segmentation
func DefaultWordConfig() WordConfig {
	return WordConfig{
		MinSpacing:    3.0,
		FontSizeFloor: 0.5,
		UniformRatio:  0.1,
	}
}

// WordSegmenter groups the runs of a line into words
type WordSegmenter struct {
	config WordConfig
}

// NewWordSegmenter creates a word segmenter with default configuration
func NewWordSegmenter() *WordSegmenter {
	return &WordSegmenter{config: DefaultWordConfig()}
}

// NewWordSegmenterWithConfig creates a word segmenter with custom configuration
func NewWordSegmenterWithConfig(config WordConfig) *WordSegmenter {
	return &WordSegmenter{config: config}
}

// InferCharSpacing estimates the largest gap between two glyphs of the
// same word from the gaps observed on a line.
//
// Gaps within UniformRatio of the largest are all character spacing. Otherwise every distinct gap is
// scored by how much smaller the next gap down is, how close it is to the
// average gap, and how large it is; the best scoring gap wins. The result
// never drops below the configured floor.
func (s *WordSegmenter) InferCharSpacing(gaps []float64, avgFontSize float64) float64 {
	floor := math.Max(s.config.MinSpacing, s.config.FontSizeFloor*avgFontSize)
	if len(gaps) == 0 {
		return floor
	}

	distinct := make([]float64, 0, len(gaps))
	sum := 0.0
	for _, g := range gaps {
		g = math.Max(g, 0)
		sum += g
		distinct = append(distinct, g)
	}
	avg := sum / float64(len(gaps))

	sort.Float64s(distinct)
	distinct = dedupSorted(distinct)
	largest := distinct[len(distinct)-1]

	if largest-distinct[0] <= s.config.UniformRatio*largest {
		return math.Max(largest, floor)
	}

	best := distinct[0]
	bestScore := math.Inf(-1)
	for i := len(distinct) - 1; i >= 0; i-- {
		c := distinct[i]

		// relative drop from the next larger gap; the largest gap has none
		shrink := 0.0
		if i < len(distinct)-1 {
			prev := distinct[i+1]
			shrink = (prev - c) / prev
		}
		closeness := 1 / (1 + math.Abs(math.Log((c+1)/(avg+1))))
		size := 0.0
		if largest > 0 {
			size = c / largest
		}

		score := shrink + closeness + size
		if score > bestScore {
			best, bestScore = c, score
		}
	}

	return math.Max(best, floor)
}

func dedupSorted(v []float64) []float64 {
	out := v[:0]
	for i, x := range v {
		if i == 0 || x != out[len(out)-1] {
			out = append(out, x)
		}
	}
	return out
}

// Gaps returns the horizontal gaps between consecutive non-space runs of a
// line, in left-to-right order. Overlapping runs give a gap of zero.
func Gaps(line []*model.TextRun) []float64 {
	runs := sortedRuns(line)
	var gaps []float64
	var prev *model.TextRun
	for _, r := range runs {
		if r.IsSpace() {
			continue
		}
		if prev != nil {
			gaps = append(gaps, math.Max(0, r.Rect.X-prev.Rect.EndX()))
		}
		prev = r
	}
	return gaps
}

// Segment groups the runs of one line into words. Neighbouring runs join
// the same word when the gap between them is at most spacing and they share
// a style. Whitespace runs end the current word and are dropped.
func (s *WordSegmenter) Segment(line []*model.TextRun, spacing float64) []*model.Word {
	var words []*model.Word
	var cur *model.Word
	var prev *model.TextRun

	for _, r := range sortedRuns(line) {
		if r.IsSpace() {
			cur, prev = nil, nil
			continue
		}
		if cur != nil && r.Rect.X-prev.Rect.EndX() <= spacing && r.Style == prev.Style {
			cur.Add(r)
		} else {
			cur = model.NewWord(r)
			words = append(words, cur)
		}
		prev = r
	}
	return words
}

// SegmentLine infers the character spacing of the line and segments it
func (s *WordSegmenter) SegmentLine(line []*model.TextRun) []*model.Word {
	return s.Segment(line, s.InferCharSpacing(Gaps(line), averageFontSize(line)))
}

func sortedRuns(runs []*model.TextRun) []*model.TextRun {
	out := append([]*model.TextRun(nil), runs...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Rect.X != out[j].Rect.X {
			return out[i].Rect.X < out[j].Rect.X
		}
		return out[i].FirstSeq < out[j].FirstSeq
	})
	return out
}

func averageFontSize(runs []*model.TextRun) float64 {
	if len(runs) == 0 {
		return 0
	}
	sum := 0.0
	for _, r := range runs {
		sum += r.FontSize()
	}
	return sum / float64(len(runs))
}
