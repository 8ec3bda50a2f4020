package render

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/pagelayout/layout"
	"github.com/tsawler/pagelayout/model"
)

const stylesheet = `
body { background: #ddd; font-family: sans-serif; }
.page { position: relative; background: #fff; margin: 16px auto; overflow: hidden; }
.page > * { position: absolute; box-sizing: border-box; margin: 0; }
.region { border: 1px solid rgba(0, 90, 200, 0.7); }
.whitespace { background: rgba(0, 200, 90, 0.15); }
.boundary { background: rgba(220, 0, 0, 0.6); }
.graphic { outline: 1px dashed #888; }
.graphic.separator { outline-color: #c60; }
.graphic.container { outline-color: #06c; }
.paragraph { font-size: 8px; line-height: 1; color: #222; overflow: hidden; white-space: pre-wrap; }
`

// WriteHTML writes pages as a standalone HTML document.
func WriteHTML(w io.Writer, pages []*layout.Page, config Config) error {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := element(atom.Html, "")
	doc.AppendChild(root)

	head := element(atom.Head, "")
	root.AppendChild(head)
	meta := element(atom.Meta, "")
	meta.Attr = append(meta.Attr, html.Attribute{Key: "charset", Val: "utf-8"})
	head.AppendChild(meta)
	title := element(atom.Title, "")
	title.AppendChild(text("Page layout"))
	head.AppendChild(title)
	style := element(atom.Style, "")
	style.AppendChild(text(stylesheet))
	head.AppendChild(style)

	body := element(atom.Body, "")
	root.AppendChild(body)
	for _, p := range pages {
		body.AppendChild(pageNode(p, config))
	}

	return errors.Wrap(html.Render(w, doc), "render html")
}

func pageNode(p *layout.Page, config Config) *html.Node {
	s := config.scale()
	section := element(atom.Section, "page")
	section.Attr = append(section.Attr,
		html.Attribute{Key: "id", Val: fmt.Sprintf("page-%d", p.Number)},
		html.Attribute{Key: "style", Val: fmt.Sprintf("width:%.2fpx;height:%.2fpx", p.Bounds.Width*s, p.Bounds.Height*s)},
	)

	for _, r := range p.Regions() {
		if config.Whitespace {
			for _, ws := range r.Whitespace() {
				section.AppendChild(placed(atom.Div, "whitespace", ws.Rect, s))
			}
		}
		if config.Boundaries {
			for _, b := range r.Boundaries() {
				section.AppendChild(placed(atom.Div, "boundary", b, s))
			}
		}
	}

	if config.Graphics {
		for _, g := range p.Graphics {
			section.AppendChild(placed(atom.Div, "graphic "+g.Role.String(), g.Rect, s))
		}
	}

	for _, r := range p.Regions() {
		if r.Parent() == nil {
			continue
		}
		n := placed(atom.Div, fmt.Sprintf("region depth-%d", r.Depth()), r.Bounds(), s)
		n.Attr = append(n.Attr, html.Attribute{Key: "data-region", Val: fmt.Sprint(r.ID())})
		section.AppendChild(n)
	}

	if config.Text {
		for _, para := range p.Paragraphs() {
			n := placed(atom.P, "paragraph", para.Bounds(), s)
			for i, l := range para.Lines() {
				if i > 0 {
					n.AppendChild(element(atom.Br, ""))
				}
				n.AppendChild(text(l.Text()))
			}
			section.AppendChild(n)
		}
	}
	return section
}

func element(a atom.Atom, class string) *html.Node {
	n := &html.Node{Type: html.ElementNode, Data: a.String(), DataAtom: a}
	if class != "" {
		n.Attr = append(n.Attr, html.Attribute{Key: "class", Val: class})
	}
	return n
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// placed returns an element positioned over rect
func placed(a atom.Atom, class string, rect model.Rectangle, scale float64) *html.Node {
	n := element(a, class)
	n.Attr = append(n.Attr, html.Attribute{
		Key: "style",
		Val: fmt.Sprintf("left:%.2fpx;top:%.2fpx;width:%.2fpx;height:%.2fpx",
			rect.X*scale, rect.Y*scale, rect.Width*scale, rect.Height*scale),
	})
	return n
}
