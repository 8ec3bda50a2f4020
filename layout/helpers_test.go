package layout

import (
	"io"
	"log/slog"

	"github.com/tsawler/pagelayout/model"
)

// fixture builds text runs with interned styles and increasing sequence
// numbers.
type fixture struct {
	styles *model.StyleTable
	seq    int
}

func newFixture() *fixture {
	return &fixture{styles: model.NewStyleTable()}
}

// run creates a run in the default body style (font size 10)
func (f *fixture) run(text string, x, y, w, h float64) *model.TextRun {
	return f.styled(text, "Helvetica", 10, x, y, w, h)
}

func (f *fixture) styled(text, font string, size, x, y, w, h float64) *model.TextRun {
	r := &model.TextRun{
		Text:     text,
		Rect:     model.MustRectangle(x, y, w, h),
		Style:    f.styles.Intern(font, size, size, 0, 0),
		FirstSeq: f.seq,
		LastSeq:  f.seq,
	}
	f.seq++
	return r
}

// glyphs splits text into one run per character, each w wide, starting at x
// with the given gap between characters.
func (f *fixture) glyphs(text string, x, y, w, h, gap float64) []*model.TextRun {
	var out []*model.TextRun
	for _, c := range text {
		out = append(out, f.run(string(c), x, y, w, h))
		x += w + gap
	}
	return out
}

func rect(x, y, w, h float64) model.Rectangle {
	return model.MustRectangle(x, y, w, h)
}

func items[T model.Item](in []T) []model.Item {
	out := make([]model.Item, len(in))
	for i, it := range in {
		out[i] = it
	}
	return out
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func quietDecomposer() *Decomposer {
	cfg := DefaultDecomposeConfig()
	cfg.Logger = quietLogger()
	return NewDecomposerWithConfig(cfg)
}

func quietAnalyzer() *Analyzer {
	cfg := DefaultAnalyzerConfig()
	cfg.Logger = quietLogger()
	return NewAnalyzerWithConfig(cfg)
}

const columnLine = "lorem ipsum dolor sit amet"

// twoColumnRuns lays out 40 lines in x∈[0,280] and 40 in x∈[320,600] on a
// 600x800 page, in reading order: the whole left column first.
func twoColumnRuns(f *fixture) (left, right []*model.TextRun) {
	for y := 0.0; y+10 <= 800; y += 20 {
		left = append(left, f.run(columnLine, 0, y, 280, 10))
	}
	for y := 0.0; y+10 <= 800; y += 20 {
		right = append(right, f.run(columnLine, 320, y, 280, 10))
	}
	return left, right
}

// twoColumnInput is the same layout as twoColumnRuns as a page input
func twoColumnInput(number int) model.PageInput {
	in := model.PageInput{Number: number, Width: 600, Height: 800}
	seq := 0
	for _, x := range []float64{0, 320} {
		for y := 0.0; y+10 <= 800; y += 20 {
			in.Runs = append(in.Runs, model.GlyphRun{
				Text: columnLine, X: x, Y: y, Width: 280, Height: 10,
				FontName: "Helvetica", XSize: 10, YSize: 10, Seq: seq,
			})
			seq++
		}
	}
	return in
}
