package layout

import (
	"math"
	"sort"

	"github.com/tsawler/pagelayout/model"
)

// ParagraphConfig holds configuration for paragraph detection
type ParagraphConfig struct {
	// MinLineSpacing is the smallest line spacing ever inferred
	// Default: 2.0 points
	MinLineSpacing float64

	// MaxLineSpacingFonts caps the line spacing at this many average font sizes
	// Default: 3.0
	MaxLineSpacingFonts float64

	// FallbackLineSpacingFonts is used, in average font sizes, when no two
	// lines share a sampling strip
	// Default: 0.5
	FallbackLineSpacingFonts float64

	// GapTolerance is added to the line spacing before comparing a gap
	// Default: 0.5 points
	GapTolerance float64

	// CombineOverlap is the overlap ratio above which two paragraphs are
	// combined into one
	// Default: 0.5
	CombineOverlap float64
}

// DefaultParagraphConfig returns sensible default configuration
func DefaultParagraphConfig() ParagraphConfig {
	return ParagraphConfig{
		MinLineSpacing:           2.0,
		MaxLineSpacingFonts:      3.0,
		FallbackLineSpacingFonts: 0.5,
		GapTolerance:             0.5,
		CombineOverlap:           0.5,
	}
}

// ParagraphDetector groups lines into paragraphs
type ParagraphDetector struct {
	config ParagraphConfig
}

// NewParagraphDetector creates a new paragraph detector with default configuration
func NewParagraphDetector() *ParagraphDetector {
	return &ParagraphDetector{config: DefaultParagraphConfig()}
}

// NewParagraphDetectorWithConfig creates a paragraph detector with custom configuration
func NewParagraphDetectorWithConfig(config ParagraphConfig) *ParagraphDetector {
	return &ParagraphDetector{config: config}
}

// LineSpacing infers the usual gap between consecutive lines of a region.
// Lines crossing three vertical strips (at a quarter, half and three
// quarters of the region width) are sampled; the most frequent rounded gap
// wins, the smaller gap on a tie. The result is clamped to
// [MinLineSpacing, MaxLineSpacingFonts x avgFontSize].
func (d *ParagraphDetector) LineSpacing(lines []*model.Line, bound model.Rectangle, avgFontSize float64) float64 {
	counts := make(map[float64]int)
	for _, frac := range []float64{0.25, 0.5, 0.75} {
		x := bound.X + frac*bound.Width

		var strip []model.Rectangle
		for _, l := range lines {
			b := l.Bounds()
			if b.X <= x && x <= b.EndX() {
				strip = append(strip, b)
			}
		}
		sort.Slice(strip, func(i, j int) bool { return strip[i].Y < strip[j].Y })

		for i := 1; i < len(strip); i++ {
			gap := strip[i].Y - strip[i-1].EndY()
			if gap < 0 {
				continue
			}
			counts[math.Round(gap)]++
		}
	}

	spacing := d.config.FallbackLineSpacingFonts * avgFontSize
	best := -1
	for gap, n := range counts {
		if n > best || (n == best && gap < spacing) {
			spacing, best = gap, n
		}
	}

	hi := math.Max(d.config.MinLineSpacing, d.config.MaxLineSpacingFonts*avgFontSize)
	return math.Min(math.Max(spacing, d.config.MinLineSpacing), hi)
}

// Group joins consecutive lines into paragraphs while the gap between them
// stays within spacing and they share horizontal extent.
func (d *ParagraphDetector) Group(lines []*model.Line, spacing float64) []*model.Paragraph {
	var paras []*model.Paragraph
	var cur *model.Paragraph
	var prev model.Rectangle

	for _, l := range lines {
		b := l.Bounds()
		if cur != nil && b.Y-prev.EndY() <= spacing+d.config.GapTolerance && b.IntersectsX(cur.Bounds()) {
			cur.Add(l)
		} else {
			cur = model.NewParagraph(l)
			paras = append(paras, cur)
		}
		prev = b
	}
	return paras
}

// Combine merges paragraphs whose rectangles nest or overlap by at least
// CombineOverlap, until no such pair remains. The result is in reading
// order.
func (d *ParagraphDetector) Combine(paras []*model.Paragraph) []*model.Paragraph {
	out := append([]*model.Paragraph(nil), paras...)
	for merged := true; merged; {
		merged = false
	scan:
		for i := 0; i < len(out); i++ {
			for j := i + 1; j < len(out); j++ {
				a, b := out[i].Bounds(), out[j].Bounds()
				if a.Contains(b) || b.Contains(a) || a.OverlapRatio(b) >= d.config.CombineOverlap {
					out[i].Merge(out[j])
					out = append(out[:j], out[j+1:]...)
					merged = true
					break scan
				}
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return model.ReadingLess(out[i].Bounds(), out[j].Bounds())
	})
	return out
}
