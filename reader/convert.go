package reader

import (
	"strings"

	"github.com/ledongthuc/pdf"
	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/pagelayout/model"
)

// ConvertPage turns decoded PDF content into a layout page input.
//
// box is the page's MediaBox in PDF user space, where Y grows upward from
// the bottom edge. The result uses layout coordinates: the origin is the
// top-left corner of the MediaBox and Y grows downward. Every text element
// becomes one glyph run whose sequence number is its position in the
// content stream.
func ConvertPage(number int, box model.Rectangle, content pdf.Content, config Config) model.PageInput {
	in := model.PageInput{
		Number: number,
		Width:  box.Width,
		Height: box.Height,
	}
	top := box.EndY()

	for i, t := range content.Text {
		if t.S == "" {
			continue
		}
		size := t.FontSize
		in.Runs = append(in.Runs, model.GlyphRun{
			Text:     norm.NFC.String(t.S),
			X:        t.X - box.X,
			Y:        top - t.Y - config.Ascent*size,
			Width:    t.W,
			Height:   size,
			FontName: fontName(t.Font),
			XSize:    size,
			YSize:    size,
			Seq:      i,
		})
	}

	for _, r := range content.Rect {
		in.Graphics = append(in.Graphics, model.GraphicPrimitive{
			X:       r.Min.X - box.X,
			Y:       top - r.Max.Y,
			Width:   r.Max.X - r.Min.X,
			Height:  r.Max.Y - r.Min.Y,
			Stroked: true,
		})
	}
	return in
}

// fontName strips the six-letter subset tag (ABCDEF+Name) from embedded
// font names so subsets of one face intern to the same style.
func fontName(name string) string {
	if i := strings.IndexByte(name, '+'); i == 6 {
		for _, c := range name[:6] {
			if c < 'A' || c > 'Z' {
				return name
			}
		}
		return name[7:]
	}
	return name
}
