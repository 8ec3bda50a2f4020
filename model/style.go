package model

import (
	"fmt"
	"math"
	"sync"
)

// Style describes the font metrics shared by a set of glyph runs. Styles are
// interned through a StyleTable, so two runs have the same style exactly when
// their *Style pointers are equal.
type Style struct {
	FontName    string
	XSize       float64 // horizontal font size
	YSize       float64 // vertical font size
	WordSpacing float64
	CharSpacing float64
}

// FontSize returns the vertical font size, which is what line and paragraph
// heuristics scale by.
func (s *Style) FontSize() float64 {
	if s == nil {
		return 0
	}
	return s.YSize
}

func (s *Style) String() string {
	if s == nil {
		return "<nil style>"
	}
	return fmt.Sprintf("%s %.1f/%.1f", s.FontName, s.XSize, s.YSize)
}

// styleKey is the value identity of a style: font name plus metrics rounded
// to a tenth of a unit.
type styleKey struct {
	font                 string
	x, y, word, charSize int64
}

func roundMetric(v float64) int64 {
	return int64(math.Round(v * 10))
}

// StyleTable interns styles so equal metrics share a single instance.
// It is safe for concurrent use.
type StyleTable struct {
	mu     sync.Mutex
	styles map[styleKey]*Style
}

// NewStyleTable creates an empty style table
func NewStyleTable() *StyleTable {
	return &StyleTable{styles: make(map[styleKey]*Style)}
}

// Intern returns the canonical style for the given metrics. Metrics are
// rounded before lookup, and the returned instance carries the rounded values.
func (t *StyleTable) Intern(fontName string, xSize, ySize, wordSpacing, charSpacing float64) *Style {
	key := styleKey{
		font:     fontName,
		x:        roundMetric(xSize),
		y:        roundMetric(ySize),
		word:     roundMetric(wordSpacing),
		charSize: roundMetric(charSpacing),
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if s, ok := t.styles[key]; ok {
		return s
	}
	s := &Style{
		FontName:    fontName,
		XSize:       float64(key.x) / 10,
		YSize:       float64(key.y) / 10,
		WordSpacing: float64(key.word) / 10,
		CharSpacing: float64(key.charSize) / 10,
	}
	t.styles[key] = s
	return s
}

// Len returns the number of distinct styles interned so far.
func (t *StyleTable) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.styles)
}
