package reader

import (
	"log/slog"
	"math"
	"os"

	"github.com/ledongthuc/pdf"
	"github.com/pkg/errors"

	"github.com/tsawler/pagelayout/model"
)

// ErrPageOutOfRange is returned when a page number is outside the document.
var ErrPageOutOfRange = errors.New("page number out of range")

// Config holds the settings used to turn PDF page content into page inputs.
type Config struct {
	// Ascent is the fraction of the font size that sits above the baseline.
	// Glyph boxes span from Ascent-1 to Ascent font sizes around the baseline.
	// Default: 0.8
	Ascent float64

	// DefaultWidth and DefaultHeight size pages that carry no usable MediaBox.
	// Default: 612 x 792 (US Letter)
	DefaultWidth  float64
	DefaultHeight float64

	// Logger receives diagnostics. Default: slog.Default()
	Logger *slog.Logger
}

// DefaultConfig returns sensible default settings.
func DefaultConfig() Config {
	return Config{
		Ascent:        0.8,
		DefaultWidth:  612,
		DefaultHeight: 792,
	}
}

// Reader represents an open PDF file.
type Reader struct {
	file   *os.File
	pdf    *pdf.Reader
	config Config
	logger *slog.Logger
}

// Open opens a PDF file and returns a Reader using the default settings.
func Open(filename string) (*Reader, error) {
	return OpenWithConfig(filename, DefaultConfig())
}

// OpenWithConfig opens a PDF file with custom settings.
func OpenWithConfig(filename string, config Config) (*Reader, error) {
	f, r, err := pdf.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", filename)
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Reader{file: f, pdf: r, config: config, logger: logger}, nil
}

// Close closes the PDF file
func (r *Reader) Close() error {
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}

// PageCount returns the number of pages in the document.
func (r *Reader) PageCount() int {
	return r.pdf.NumPage()
}

// Page returns the layout input for a 1-indexed page.
func (r *Reader) Page(number int) (in model.PageInput, err error) {
	if number < 1 || number > r.PageCount() {
		return model.PageInput{}, errors.Wrapf(ErrPageOutOfRange, "page %d of %d", number, r.PageCount())
	}
	p := r.pdf.Page(number)
	if p.V.IsNull() {
		return model.PageInput{}, errors.Errorf("page %d: missing page object", number)
	}

	// The content decoder panics on some malformed streams.
	defer func() {
		if rec := recover(); rec != nil {
			err = errors.Errorf("page %d: content stream: %v", number, rec)
		}
	}()

	box, ok := mediaBox(p.V)
	if !ok {
		r.logger.Debug("page has no usable MediaBox, using default size", "page", number)
		box = model.MustRectangle(0, 0, r.config.DefaultWidth, r.config.DefaultHeight)
	}
	return ConvertPage(number, box, p.Content(), r.config), nil
}

// Pages returns the layout inputs for the given page numbers, or for every
// page when none are given. Pages that fail to load are reported in the
// returned map and left out of the slice.
func (r *Reader) Pages(numbers ...int) ([]model.PageInput, map[int]error) {
	if len(numbers) == 0 {
		for i := 1; i <= r.PageCount(); i++ {
			numbers = append(numbers, i)
		}
	}
	var out []model.PageInput
	failed := make(map[int]error)
	for _, n := range numbers {
		in, err := r.Page(n)
		if err != nil {
			r.logger.Warn("skipping page", "page", n, "error", err)
			failed[n] = err
			continue
		}
		out = append(out, in)
	}
	return out, failed
}

// mediaBox finds the page's MediaBox, following inheritance through the
// page tree.
func mediaBox(v pdf.Value) (model.Rectangle, bool) {
	for depth := 0; !v.IsNull() && depth < 32; depth++ {
		if b := v.Key("MediaBox"); b.Len() == 4 {
			x0, y0 := b.Index(0).Float64(), b.Index(1).Float64()
			x1, y1 := b.Index(2).Float64(), b.Index(3).Float64()
			r, err := model.RectangleFromEdges(math.Min(x0, x1), math.Min(y0, y1), math.Max(x0, x1), math.Max(y0, y1))
			if err != nil {
				return model.Rectangle{}, false
			}
			return r, true
		}
		v = v.Key("Parent")
	}
	return model.Rectangle{}, false
}
