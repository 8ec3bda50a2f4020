package layout

import (
	"sort"
	"strings"

	"github.com/tsawler/pagelayout/model"
)

// block is a unit of reading order inside a region: one of its own
// paragraphs or one of its sub-regions
type block struct {
	rect      model.Rectangle
	paragraph *model.Paragraph
	region    *Region
}

// ReadingOrder returns the paragraphs of r and all its sub-regions in
// reading order. Paragraphs and sub-regions of one region are ordered top
// to bottom, and left to right when they sit side by side; a sub-region is
// read completely before moving on.
func ReadingOrder(r *Region) []*model.Paragraph {
	var blocks []block
	for _, p := range r.paragraphs {
		blocks = append(blocks, block{rect: p.Bounds(), paragraph: p})
	}
	for _, c := range r.Children() {
		blocks = append(blocks, block{rect: c.Bounds(), region: c})
	}
	sort.SliceStable(blocks, func(i, j int) bool {
		return model.ReadingLess(blocks[i].rect, blocks[j].rect)
	})

	var out []*model.Paragraph
	for _, b := range blocks {
		if b.paragraph != nil {
			out = append(out, b.paragraph)
			continue
		}
		out = append(out, ReadingOrder(b.region)...)
	}
	return out
}

// Paragraphs returns every paragraph of the page in reading order
func (p *Page) Paragraphs() []*model.Paragraph {
	return ReadingOrder(p.Root())
}

// Text returns the text of the page in reading order, paragraphs separated
// by a blank line
func (p *Page) Text() string {
	return p.Root().Text()
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
