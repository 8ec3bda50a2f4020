package pagelayout

import (
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/tsawler/pagelayout/layout"
	"github.com/tsawler/pagelayout/model"
	"github.com/tsawler/pagelayout/reader"
)

// pageSource delivers page inputs by 1-indexed page number.
type pageSource interface {
	PageCount() int
	Page(number int) (model.PageInput, error)
}

// inputSource serves pages that are already in memory, by position.
type inputSource []model.PageInput

func (s inputSource) PageCount() int { return len(s) }

func (s inputSource) Page(number int) (model.PageInput, error) {
	if number < 1 || number > len(s) {
		return model.PageInput{}, errors.Wrapf(reader.ErrPageOutOfRange, "page %d of %d", number, len(s))
	}
	return s[number-1], nil
}

// Extractor provides a fluent interface for analysing the layout of PDF
// pages. Each configuration method returns a new Extractor instance,
// making it safe for concurrent use and allowing method chaining.
type Extractor struct {
	// Source
	filename string
	source   pageSource

	// Lifecycle
	ownsReader   bool // true if we opened the reader and should close it
	readerOpened bool // true if reader has been opened

	// Configuration
	options ExtractOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Extractor with a deep copy of options.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename:     e.filename,
		source:       e.source,
		ownsReader:   e.ownsReader,
		readerOpened: e.readerOpened,
		options:      e.options.clone(),
		err:          e.err,
	}
}

// ensureReader opens the reader if not already open.
func (e *Extractor) ensureReader() error {
	if e.readerOpened {
		return nil
	}
	if e.filename == "" {
		return errors.New("no filename specified")
	}

	cfg := reader.DefaultConfig()
	cfg.Logger = e.options.logger
	r, err := reader.OpenWithConfig(e.filename, cfg)
	if err != nil {
		return errors.Wrap(err, "failed to open PDF")
	}
	e.source = r
	e.ownsReader = true
	e.readerOpened = true
	return nil
}

// Close releases resources associated with the Extractor.
// It is safe to call Close multiple times.
func (e *Extractor) Close() error {
	if !e.ownsReader {
		return nil
	}
	e.ownsReader = false
	e.readerOpened = false
	c, ok := e.source.(io.Closer)
	e.source = nil
	if ok {
		return c.Close()
	}
	return nil
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// Pages specifies which pages to analyse (1-indexed).
// Multiple calls are cumulative.
//
// Example:
//
//	doc, _, err := pagelayout.Open("doc.pdf").Pages(1, 3, 5).Document()
func (e *Extractor) Pages(pages ...int) *Extractor {
	newExt := e.clone()
	newExt.options.pages = append(newExt.options.pages, pages...)
	return newExt
}

// PageRange specifies a range of pages to analyse (1-indexed, inclusive).
//
// Example:
//
//	text, _, err := pagelayout.Open("doc.pdf").PageRange(5, 10).Text()
func (e *Extractor) PageRange(start, end int) *Extractor {
	newExt := e.clone()
	if start > end {
		newExt.err = errors.Errorf("invalid page range %d-%d", start, end)
		return newExt
	}
	for i := start; i <= end; i++ {
		newExt.options.pages = append(newExt.options.pages, i)
	}
	return newExt
}

// WithConfig replaces the analyzer configuration.
//
// Example:
//
//	cfg := layout.DefaultAnalyzerConfig()
//	cfg.DecomposeConfig.MaxDepth = 4
//	doc, _, err := pagelayout.Open("doc.pdf").WithConfig(cfg).Document()
func (e *Extractor) WithConfig(config layout.AnalyzerConfig) *Extractor {
	newExt := e.clone()
	newExt.options.analyzer = config
	return newExt
}

// WithLogger sets the logger used by the reader and every analysis stage.
func (e *Extractor) WithLogger(logger *slog.Logger) *Extractor {
	newExt := e.clone()
	newExt.options.logger = logger
	return newExt
}

// MergeRuns joins adjacent same-style runs before analysis. This helps
// with producers that emit one glyph per run.
func (e *Extractor) MergeRuns() *Extractor {
	newExt := e.clone()
	newExt.options.analyzer.MergeAdjacentRuns = true
	return newExt
}

// JoinParagraphs configures Text() to join the lines of a paragraph with
// spaces instead of newlines. Paragraph breaks are preserved.
//
// Example:
//
//	text, _, err := pagelayout.Open("doc.pdf").JoinParagraphs().Text()
func (e *Extractor) JoinParagraphs() *Extractor {
	newExt := e.clone()
	newExt.options.joinParagraphs = true
	return newExt
}

// ============================================================================
// Terminal Operations
// ============================================================================

// PageCount returns the number of pages in the source.
// This does NOT close the reader, allowing further operations.
//
// Example:
//
//	ext := pagelayout.Open("document.pdf")
//	defer ext.Close()
//	count, err := ext.PageCount()
func (e *Extractor) PageCount() (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	if err := e.ensureReader(); err != nil {
		return 0, err
	}
	return e.source.PageCount(), nil
}

// Document analyses the selected pages and returns them together with any
// warnings. A page that cannot be read or analysed is left out of the
// document and reported as a warning; the error return is reserved for
// problems that stop the whole run. This is a terminal operation that
// closes the underlying reader.
//
// Example:
//
//	doc, warnings, err := pagelayout.Open("document.pdf").Document()
//	for _, page := range doc.Pages {
//	    fmt.Printf("page %d: %d regions\n", page.Number, len(page.Regions()))
//	}
func (e *Extractor) Document() (*Document, []Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}
	if err := e.ensureReader(); err != nil {
		return nil, nil, err
	}
	defer e.Close()

	numbers, err := e.resolvePages()
	if err != nil {
		return nil, nil, err
	}

	var warnings []Warning
	inputs := make([]model.PageInput, 0, len(numbers))
	for _, n := range numbers {
		in, err := e.source.Page(n)
		if err != nil {
			warnings = append(warnings, Warning{Page: n, Kind: WarningPageFailed, Message: err.Error()})
			continue
		}
		inputs = append(inputs, in)
	}

	analyzer := layout.NewAnalyzerWithConfig(e.options.analyzerConfig())
	pages, failed := analyzer.AnalyzeDocument(inputs)
	for _, f := range failed {
		warnings = append(warnings, Warning{Page: f.Page, Kind: WarningPageFailed, Message: f.Err.Error()})
	}

	doc := &Document{Styles: analyzer.Styles()}
	for _, p := range pages {
		if p == nil {
			continue
		}
		doc.Pages = append(doc.Pages, p)
		warnings = append(warnings, pageWarnings(p)...)
	}

	sort.SliceStable(warnings, func(i, j int) bool {
		return warnings[i].Page < warnings[j].Page
	})
	return doc, warnings, nil
}

// Text analyses the selected pages and returns their text in reading
// order. Paragraphs are separated by a blank line, as are pages.
// This is a terminal operation that closes the underlying reader.
//
// Example:
//
//	text, warnings, err := pagelayout.Open("document.pdf").Text()
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", pagelayout.FormatWarnings(warnings))
//	}
func (e *Extractor) Text() (string, []Warning, error) {
	doc, warnings, err := e.Document()
	if err != nil {
		return "", warnings, err
	}

	var pageTexts []string
	for _, p := range doc.Pages {
		var paras []string
		for _, para := range p.Paragraphs() {
			paras = append(paras, paragraphText(para, e.options.joinParagraphs))
		}
		pageTexts = append(pageTexts, strings.Join(paras, "\n\n"))
	}
	return joinNonEmpty(pageTexts, "\n\n"), warnings, nil
}

// Paragraphs analyses the selected pages and returns every paragraph in
// reading order, page by page.
// This is a terminal operation that closes the underlying reader.
func (e *Extractor) Paragraphs() ([]*model.Paragraph, []Warning, error) {
	doc, warnings, err := e.Document()
	if err != nil {
		return nil, warnings, err
	}
	return doc.Paragraphs(), warnings, nil
}

// resolvePages returns the selected page numbers, sorted and de-duplicated.
func (e *Extractor) resolvePages() ([]int, error) {
	pageCount := e.source.PageCount()

	// If no pages specified, use all pages
	if len(e.options.pages) == 0 {
		numbers := make([]int, pageCount)
		for i := range numbers {
			numbers[i] = i + 1
		}
		return numbers, nil
	}

	seen := make(map[int]bool)
	var numbers []int
	for _, p := range e.options.pages {
		if p < 1 || p > pageCount {
			return nil, errors.Wrapf(reader.ErrPageOutOfRange, "page %d (1-%d)", p, pageCount)
		}
		if !seen[p] {
			seen[p] = true
			numbers = append(numbers, p)
		}
	}

	sort.Ints(numbers)
	return numbers, nil
}

// paragraphText returns the paragraph's text, with soft line breaks
// replaced by spaces when join is set.
func paragraphText(p *model.Paragraph, join bool) string {
	if !join {
		return p.Text()
	}
	parts := make([]string, 0, len(p.Lines()))
	for _, l := range p.Lines() {
		parts = append(parts, l.Text())
	}
	return strings.Join(parts, " ")
}

func joinNonEmpty(parts []string, sep string) string {
	var kept []string
	for _, s := range parts {
		if s != "" {
			kept = append(kept, s)
		}
	}
	return strings.Join(kept, sep)
}
