package model

import (
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ReadingLess orders rectangles top to bottom, then left to right. Two
// rectangles whose vertical extents overlap by at least half of the smaller
// height are treated as being on the same line and ordered by X.
func ReadingLess(a, b Rectangle) bool {
	overlap := minFloat(a.EndY(), b.EndY()) - maxFloat(a.Y, b.Y)
	if overlap >= minFloat(a.Height, b.Height)/2 {
		if a.X != b.X {
			return a.X < b.X
		}
		return a.Y < b.Y
	}
	return a.Y < b.Y
}

// boundsCache holds a lazily computed union of child rectangles.
type boundsCache struct {
	rect  Rectangle
	valid bool
}

func (c *boundsCache) get(compute func() Rectangle) Rectangle {
	if !c.valid {
		c.rect = compute()
		c.valid = true
	}
	return c.rect
}

func (c *boundsCache) invalidate() { c.valid = false }

// Word is a group of text runs separated by no more than the line's
// character spacing and sharing one style.
type Word struct {
	runs   []*TextRun
	bounds boundsCache
}

// NewWord creates a word from runs, ordered left to right.
func NewWord(runs ...*TextRun) *Word {
	w := &Word{}
	w.Add(runs...)
	return w
}

// Add appends runs to the word and keeps them in reading order.
func (w *Word) Add(runs ...*TextRun) {
	w.runs = append(w.runs, runs...)
	sort.SliceStable(w.runs, func(i, j int) bool {
		if w.runs[i].Rect.X != w.runs[j].Rect.X {
			return w.runs[i].Rect.X < w.runs[j].Rect.X
		}
		return w.runs[i].FirstSeq < w.runs[j].FirstSeq
	})
	w.bounds.invalidate()
}

// Runs returns the runs of the word in order.
func (w *Word) Runs() []*TextRun { return w.runs }

// Bounds returns the union of the runs' rectangles.
func (w *Word) Bounds() Rectangle {
	return w.bounds.get(func() Rectangle {
		u, _ := UnionAll(Rects(w.runs))
		return u
	})
}

// Text returns the NFC-normalized concatenation of the runs.
func (w *Word) Text() string {
	var sb strings.Builder
	for _, r := range w.runs {
		sb.WriteString(r.Text)
	}
	return norm.NFC.String(sb.String())
}

// Style returns the style of the first run.
func (w *Word) Style() *Style {
	if len(w.runs) == 0 {
		return nil
	}
	return w.runs[0].Style
}

// Line is a horizontal sequence of words at one baseline.
type Line struct {
	words  []*Word
	bounds boundsCache
}

// NewLine creates a line from words, ordered left to right.
func NewLine(words ...*Word) *Line {
	l := &Line{}
	l.Add(words...)
	return l
}

// Add appends words and keeps them ordered left to right.
func (l *Line) Add(words ...*Word) {
	l.words = append(l.words, words...)
	sort.SliceStable(l.words, func(i, j int) bool {
		return ReadingLess(l.words[i].Bounds(), l.words[j].Bounds())
	})
	l.bounds.invalidate()
}

// Words returns the words of the line.
func (l *Line) Words() []*Word { return l.words }

// Bounds returns the union of the words' rectangles.
func (l *Line) Bounds() Rectangle {
	return l.bounds.get(func() Rectangle {
		rects := make([]Rectangle, len(l.words))
		for i, w := range l.words {
			rects[i] = w.Bounds()
		}
		u, _ := UnionAll(rects)
		return u
	})
}

// Text returns the words joined by single spaces.
func (l *Line) Text() string {
	parts := make([]string, len(l.words))
	for i, w := range l.words {
		parts[i] = w.Text()
	}
	return strings.Join(parts, " ")
}

// Style returns the style covering the most characters in the line.
func (l *Line) Style() *Style {
	counts := make(map[*Style]int)
	var order []*Style
	for _, w := range l.words {
		for _, r := range w.runs {
			if _, seen := counts[r.Style]; !seen {
				order = append(order, r.Style)
			}
			counts[r.Style] += len([]rune(r.Text))
		}
	}
	return dominant(order, counts)
}

// Paragraph is a vertical group of lines separated by no more than the
// region's line spacing. Paragraphs can be merged but never split.
type Paragraph struct {
	lines  []*Line
	bounds boundsCache
}

// NewParagraph creates a paragraph from lines, ordered top to bottom.
func NewParagraph(lines ...*Line) *Paragraph {
	p := &Paragraph{}
	p.Add(lines...)
	return p
}

// Add appends lines and keeps them ordered top to bottom, left to right.
func (p *Paragraph) Add(lines ...*Line) {
	p.lines = append(p.lines, lines...)
	sort.SliceStable(p.lines, func(i, j int) bool {
		return ReadingLess(p.lines[i].Bounds(), p.lines[j].Bounds())
	})
	p.bounds.invalidate()
}

// Merge moves all lines of other into p.
func (p *Paragraph) Merge(other *Paragraph) {
	p.Add(other.lines...)
	other.lines = nil
	other.bounds.invalidate()
}

// Lines returns the lines of the paragraph.
func (p *Paragraph) Lines() []*Line { return p.lines }

// Bounds returns the union of the lines' rectangles.
func (p *Paragraph) Bounds() Rectangle {
	return p.bounds.get(func() Rectangle {
		rects := make([]Rectangle, len(p.lines))
		for i, l := range p.lines {
			rects[i] = l.Bounds()
		}
		u, _ := UnionAll(rects)
		return u
	})
}

// Text returns the lines joined by newlines.
func (p *Paragraph) Text() string {
	parts := make([]string, len(p.lines))
	for i, l := range p.lines {
		parts[i] = l.Text()
	}
	return strings.Join(parts, "\n")
}

// Style returns the style covering the most characters in the paragraph.
func (p *Paragraph) Style() *Style {
	counts := make(map[*Style]int)
	var order []*Style
	for _, l := range p.lines {
		for _, w := range l.words {
			for _, r := range w.runs {
				if _, seen := counts[r.Style]; !seen {
					order = append(order, r.Style)
				}
				counts[r.Style] += len([]rune(r.Text))
			}
		}
	}
	return dominant(order, counts)
}

// WordCount returns the number of words in the paragraph.
func (p *Paragraph) WordCount() int {
	n := 0
	for _, l := range p.lines {
		n += len(l.words)
	}
	return n
}

func dominant(order []*Style, counts map[*Style]int) *Style {
	var best *Style
	bestCount := -1
	for _, s := range order {
		if counts[s] > bestCount {
			best, bestCount = s, counts[s]
		}
	}
	return best
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
