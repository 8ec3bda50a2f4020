package layout

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/pkg/errors"

	"github.com/tsawler/pagelayout/model"
	"github.com/tsawler/pagelayout/spatial"
)

// AnalyzerConfig holds configuration options for the page analyzer. Each
// stage has its own sub-configuration.
type AnalyzerConfig struct {
	// Graphic classification configuration
	GraphicConfig GraphicConfig

	// Region decomposition configuration, including the whitespace searches
	// and column boundary extraction
	DecomposeConfig DecomposeConfig

	// Line and word configuration
	LineConfig LineConfig

	// Paragraph configuration
	ParagraphConfig ParagraphConfig

	// MergeAdjacentRuns joins runs that continue each other in upstream
	// order, share a style and touch on the same baseline, before any
	// analysis. Word segmentation then sees fewer, longer runs.
	MergeAdjacentRuns bool

	// MergeGap is the largest horizontal gap, as a fraction of the font
	// size, between two runs joined by MergeAdjacentRuns
	// Default: 0.1
	MergeGap float64

	// Logger receives anomalies from every stage
	// Default: slog.Default()
	Logger *slog.Logger
}

// DefaultAnalyzerConfig returns a configuration with sensible defaults
func DefaultAnalyzerConfig() AnalyzerConfig {
	return AnalyzerConfig{
		GraphicConfig:   DefaultGraphicConfig(),
		DecomposeConfig: DefaultDecomposeConfig(),
		LineConfig:      DefaultLineConfig(),
		ParagraphConfig: DefaultParagraphConfig(),
		MergeGap:        0.1,
	}
}

// Analyzer turns page inputs into analysed pages. An Analyzer holds the
// style table of the document it analyses, so use one per document.
type Analyzer struct {
	config     AnalyzerConfig
	styles     *model.StyleTable
	classifier *GraphicClassifier
	decomposer *Decomposer
	lines      *LineDetector
	paragraphs *ParagraphDetector
	logger     *slog.Logger
}

// NewAnalyzer creates a new analyzer with default configuration
func NewAnalyzer() *Analyzer {
	return NewAnalyzerWithConfig(DefaultAnalyzerConfig())
}

// NewAnalyzerWithConfig creates an analyzer with custom configuration
func NewAnalyzerWithConfig(config AnalyzerConfig) *Analyzer {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	dc := config.DecomposeConfig
	dc.Logger = logger
	return &Analyzer{
		config:     config,
		styles:     model.NewStyleTable(),
		classifier: NewGraphicClassifierWithConfig(config.GraphicConfig),
		decomposer: NewDecomposerWithConfig(dc),
		lines:      NewLineDetectorWithConfig(config.LineConfig),
		paragraphs: NewParagraphDetectorWithConfig(config.ParagraphConfig),
		logger:     logger,
	}
}

// Styles returns the style table shared by every page analysed so far
func (a *Analyzer) Styles() *model.StyleTable { return a.styles }

// AnalyzePage decomposes one page into regions and segments the text of
// every region into lines, words and paragraphs.
func (a *Analyzer) AnalyzePage(input model.PageInput) (*Page, error) {
	if err := input.Validate(); err != nil {
		return nil, errors.Wrapf(err, "page %d", input.Number)
	}
	bounds, err := input.Bounds()
	if err != nil {
		return nil, errors.Wrapf(err, "page %d", input.Number)
	}

	runs := input.TextRuns(a.styles)
	if a.config.MergeAdjacentRuns {
		runs = MergeAdjacentRuns(runs, a.config.MergeGap)
	}
	graphics := input.GraphicItems()

	text := spatial.New()
	for _, r := range runs {
		text.Add(r)
	}
	page := NewPage(input.Number, bounds)
	root := page.Root()
	root.Add(text.Items()...)
	a.classifier.Classify(graphics, text, root.Stats())
	for _, g := range graphics {
		root.Add(g)
	}
	page.Graphics = graphics

	a.decomposer.Decompose(page)

	for _, r := range page.Regions() {
		a.segment(r)
	}

	if page.Truncated {
		a.logger.Warn("whitespace search truncated", "page", page.Number)
	}
	return page, nil
}

// segment builds the paragraphs of the text held directly by r
func (a *Analyzer) segment(r *Region) {
	runs := r.TextRuns()
	if len(runs) == 0 {
		r.paragraphs = nil
		return
	}
	stats := r.Stats()
	lines := a.lines.Detect(runs)
	spacing := a.paragraphs.LineSpacing(lines, r.Bounds(), stats.AvgFontSize)
	r.paragraphs = a.paragraphs.Combine(a.paragraphs.Group(lines, spacing))
}

// PageError records a page that could not be analysed
type PageError struct {
	Page int
	Err  error
}

func (e *PageError) Error() string {
	return fmt.Sprintf("page %d: %v", e.Page, e.Err)
}

func (e *PageError) Unwrap() error { return e.Err }

// AnalyzeDocument analyses every page. A page that fails is reported in the
// returned errors and the remaining pages are still analysed; its slot in
// the returned pages is nil.
func (a *Analyzer) AnalyzeDocument(inputs []model.PageInput) ([]*Page, []*PageError) {
	pages := make([]*Page, len(inputs))
	var failed []*PageError
	for i, in := range inputs {
		p, err := a.analyzeSafely(in)
		if err != nil {
			a.logger.Warn("page analysis failed", "page", in.Number, "error", err)
			failed = append(failed, &PageError{Page: in.Number, Err: err})
			continue
		}
		pages[i] = p
	}
	return pages, failed
}

// analyzeSafely turns a panic raised while analysing one page into an error
// for that page.
func (a *Analyzer) analyzeSafely(in model.PageInput) (p *Page, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			p, err = nil, errors.Errorf("page %d: analysis panicked: %v", in.Number, rec)
		}
	}()
	return a.AnalyzePage(in)
}

// MergeAdjacentRuns joins each run onto its predecessor when it directly
// follows it in upstream order, shares its style and rotation, sits on the
// same baseline and starts within maxGap font sizes of its end. The result
// is in upstream order.
func MergeAdjacentRuns(runs []*model.TextRun, maxGap float64) []*model.TextRun {
	sorted := append([]*model.TextRun(nil), runs...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].FirstSeq < sorted[j].FirstSeq })

	var out []*model.TextRun
	for _, r := range sorted {
		if n := len(out); n > 0 {
			prev := out[n-1]
			gap := r.Rect.X - prev.Rect.EndX()
			sameLine := prev.Rect.EndY() == r.Rect.EndY()
			if sameLine && !prev.IsSpace() && !r.IsSpace() && gap >= 0 && gap <= maxGap*prev.FontSize() {
				if merged, err := model.MergeRuns(prev, r); err == nil {
					out[n-1] = merged
					continue
				}
			}
		}
		out = append(out, r)
	}
	return out
}
