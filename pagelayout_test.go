package pagelayout

import (
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/pagelayout/layout"
	"github.com/tsawler/pagelayout/model"
	"github.com/tsawler/pagelayout/reader"
)

const columnLine = "lorem ipsum dolor sit amet"

// twoColumns lays out 40 lines in each of two columns on a 600x800 page
func twoColumns(number int) model.PageInput {
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

func quiet(e *Extractor) *Extractor {
	return e.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestOpen(t *testing.T) {
	_, _, err := Open(filepath.Join(t.TempDir(), "nonexistent.pdf")).Text()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open PDF")
}

func TestOpenWithoutFilename(t *testing.T) {
	_, err := Open("").PageCount()
	assert.Error(t, err)
}

func TestText(t *testing.T) {
	text, warnings, err := quiet(FromInputs(twoColumns(1))).Text()
	require.NoError(t, err)
	assert.Empty(t, warnings)

	paras := strings.Split(text, "\n\n")
	require.Len(t, paras, 2, "one paragraph per column")
	assert.Len(t, strings.Split(paras[0], "\n"), 40)
	assert.True(t, strings.HasPrefix(text, columnLine))
}

func TestJoinParagraphs(t *testing.T) {
	text, _, err := quiet(FromInputs(twoColumns(1))).JoinParagraphs().Text()
	require.NoError(t, err)

	paras := strings.Split(text, "\n\n")
	require.Len(t, paras, 2)
	assert.NotContains(t, paras[0], "\n")
	assert.Equal(t, 40, strings.Count(paras[0], columnLine))
}

func TestPageSelection(t *testing.T) {
	src := quiet(FromInputs(twoColumns(1), twoColumns(2), twoColumns(3)))

	doc, _, err := src.Pages(3, 2, 3).Document()
	require.NoError(t, err)
	require.Len(t, doc.Pages, 2)
	assert.Equal(t, 2, doc.Pages[0].Number)
	assert.Equal(t, 3, doc.Pages[1].Number)
	assert.NotNil(t, doc.Page(3))
	assert.Nil(t, doc.Page(1))

	doc, _, err = src.PageRange(1, 2).Document()
	require.NoError(t, err)
	assert.Len(t, doc.Pages, 2)
}

func TestPageOutOfRange(t *testing.T) {
	_, _, err := FromInputs(twoColumns(1)).Pages(2).Document()
	require.Error(t, err)
	assert.True(t, errors.Is(err, reader.ErrPageOutOfRange))
}

func TestInvalidPageRange(t *testing.T) {
	_, _, err := FromInputs(twoColumns(1)).PageRange(3, 1).Document()
	assert.Error(t, err)
}

func TestExtractorIsImmutable(t *testing.T) {
	base := FromInputs(twoColumns(1), twoColumns(2))
	_ = base.Pages(1).JoinParagraphs().MergeRuns()

	assert.Empty(t, base.options.pages)
	assert.False(t, base.options.joinParagraphs)
	assert.False(t, base.options.analyzer.MergeAdjacentRuns)
}

func TestDocumentIsolatesFailedPages(t *testing.T) {
	bad := model.PageInput{Number: 2, Width: -1, Height: 800}

	doc, warnings, err := quiet(FromInputs(twoColumns(1), bad, twoColumns(3))).Document()
	require.NoError(t, err)
	require.Len(t, doc.Pages, 2)
	assert.Equal(t, []int{1, 3}, []int{doc.Pages[0].Number, doc.Pages[1].Number})

	require.Len(t, warnings, 1)
	assert.Equal(t, 2, warnings[0].Page)
	assert.Equal(t, WarningPageFailed, warnings[0].Kind)
	assert.NotEmpty(t, doc.Text())
	assert.Len(t, doc.Paragraphs(), 4)
}

func TestWithConfig(t *testing.T) {
	cfg := layout.DefaultAnalyzerConfig()
	cfg.DecomposeConfig.MaxDepth = 0

	doc, _, err := quiet(FromInputs(twoColumns(1))).WithConfig(cfg).Document()
	require.NoError(t, err)
	require.Len(t, doc.Pages, 1)
	assert.Empty(t, doc.Pages[0].Root().Children(), "depth 0 leaves the page undivided")
}

func TestPageCount(t *testing.T) {
	n, err := FromInputs(twoColumns(1), twoColumns(2)).PageCount()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

// ============================================================================
// Warnings
// ============================================================================

func TestPageWarnings(t *testing.T) {
	p := layout.NewPage(4, model.MustRectangle(0, 0, 100, 100))
	assert.Empty(t, pageWarnings(p))

	p.Truncated = true
	p.SkippedSplits = 2
	ws := pageWarnings(p)
	require.Len(t, ws, 2)
	assert.Equal(t, WarningTruncated, ws[0].Kind)
	assert.Equal(t, WarningSkippedSplits, ws[1].Kind)
	assert.Contains(t, ws[1].Message, "2 region splits")
}

func TestFormatWarnings(t *testing.T) {
	ws := []Warning{
		{Page: 1, Kind: WarningTruncated, Message: "a"},
		{Page: 3, Kind: WarningPageFailed, Message: "b"},
	}
	assert.Equal(t, "page 1: truncated: a; page 3: page failed: b", FormatWarnings(ws))
	assert.Empty(t, FormatWarnings(nil))
}

func TestMust(t *testing.T) {
	assert.Equal(t, 2, Must(2, nil))
	assert.Panics(t, func() { Must(0, errors.New("boom")) })
	assert.Panics(t, func() { MustText("", nil, errors.New("boom")) })
}
