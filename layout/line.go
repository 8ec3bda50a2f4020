package layout

import (
	"math"
	"sort"

	"github.com/tsawler/pagelayout/model"
)

// LineConfig holds configuration for line detection
type LineConfig struct {
	// BaselineTolerance is the largest baseline difference for two runs on
	// the same line, as a fraction of the taller run's height
	// Default: 0.5
	BaselineTolerance float64

	// Words configures segmentation of each line into words
	Words WordConfig
}

// DefaultLineConfig returns sensible default configuration
func DefaultLineConfig() LineConfig {
	return LineConfig{
		BaselineTolerance: 0.5,
		Words:             DefaultWordConfig(),
	}
}

// LineDetector groups text runs into lines of words
type LineDetector struct {
	config LineConfig
	words  *WordSegmenter
}

// NewLineDetector creates a new line detector with default configuration
func NewLineDetector() *LineDetector {
	return NewLineDetectorWithConfig(DefaultLineConfig())
}

// NewLineDetectorWithConfig creates a line detector with custom configuration
func NewLineDetectorWithConfig(config LineConfig) *LineDetector {
	return &LineDetector{
		config: config,
		words:  NewWordSegmenterWithConfig(config.Words),
	}
}

// lineGroup is a line under construction
type lineGroup struct {
	runs     []*model.TextRun
	baseline float64
	height   float64
	rotation int
}

// GroupRuns partitions runs into lines, top to bottom. Runs join a line when
// their baselines agree within tolerance and they share a rotation.
func (d *LineDetector) GroupRuns(runs []*model.TextRun) [][]*model.TextRun {
	sorted := append([]*model.TextRun(nil), runs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].Rect, sorted[j].Rect
		if a.EndY() != b.EndY() {
			return a.EndY() < b.EndY()
		}
		return a.X < b.X
	})

	var groups []*lineGroup
	for _, r := range sorted {
		var best *lineGroup
		bestDiff := math.Inf(1)
		for _, g := range groups {
			if g.rotation != r.Rotation {
				continue
			}
			diff := math.Abs(g.baseline - r.Rect.EndY())
			if diff > d.config.BaselineTolerance*math.Max(g.height, r.Rect.Height) {
				continue
			}
			if diff < bestDiff {
				best, bestDiff = g, diff
			}
		}
		if best == nil {
			best = &lineGroup{baseline: r.Rect.EndY(), rotation: r.Rotation}
			groups = append(groups, best)
		}
		best.runs = append(best.runs, r)
		best.height = math.Max(best.height, r.Rect.Height)
	}

	out := make([][]*model.TextRun, len(groups))
	for i, g := range groups {
		out[i] = g.runs
	}
	return out
}

// Detect groups runs into lines and segments each line into words. Lines
// holding only whitespace are dropped.
func (d *LineDetector) Detect(runs []*model.TextRun) []*model.Line {
	var lines []*model.Line
	for _, group := range d.GroupRuns(runs) {
		words := d.words.SegmentLine(group)
		if len(words) == 0 {
			continue
		}
		lines = append(lines, model.NewLine(words...))
	}
	sort.SliceStable(lines, func(i, j int) bool {
		return model.ReadingLess(lines[i].Bounds(), lines[j].Bounds())
	})
	return lines
}
