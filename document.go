package pagelayout

import (
	"github.com/tsawler/pagelayout/layout"
	"github.com/tsawler/pagelayout/model"
)

// Document holds the analysed pages of one extraction run.
type Document struct {
	Pages []*layout.Page

	// Styles is the style table shared by every page
	Styles *model.StyleTable
}

// Page returns the page with the given number, or nil if it was not
// analysed.
func (d *Document) Page(number int) *layout.Page {
	for _, p := range d.Pages {
		if p.Number == number {
			return p
		}
	}
	return nil
}

// Paragraphs returns every paragraph in reading order, page by page.
func (d *Document) Paragraphs() []*model.Paragraph {
	var out []*model.Paragraph
	for _, p := range d.Pages {
		out = append(out, p.Paragraphs()...)
	}
	return out
}

// Text returns the text of every page in reading order.
func (d *Document) Text() string {
	parts := make([]string, 0, len(d.Pages))
	for _, p := range d.Pages {
		parts = append(parts, p.Text())
	}
	return joinNonEmpty(parts, "\n\n")
}
