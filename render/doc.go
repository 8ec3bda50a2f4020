// Package render draws analysed pages for inspection.
//
// Three outputs are available:
//
//   - [WriteHTML] writes a standalone HTML document with every region,
//     whitespace rectangle, column boundary, graphic and paragraph placed
//     absolutely at its page position.
//   - [WritePNG] rasterises the same overlay for one page.
//   - [WriteJSON] writes a [PageSummary] per page: the region tree with its
//     boundaries and paragraph text.
//
// All three take a [Config] that scales page units and selects which
// layers are drawn.
package render

import "math"

// Config selects what is drawn and at which scale.
type Config struct {
	// Scale converts page units to pixels
	// Default: 1.0
	Scale float64

	// Whitespace draws the whitespace rectangles found in each region
	// Default: true
	Whitespace bool

	// Boundaries draws column boundaries
	// Default: true
	Boundaries bool

	// Text draws text run boxes (PNG) or paragraph text (HTML)
	// Default: true
	Text bool

	// Graphics draws classified graphic primitives
	// Default: true
	Graphics bool
}

// DefaultConfig returns a configuration that draws every layer at 1:1.
func DefaultConfig() Config {
	return Config{
		Scale:      1.0,
		Whitespace: true,
		Boundaries: true,
		Text:       true,
		Graphics:   true,
	}
}

func (c Config) scale() float64 {
	if !(c.Scale > 0) || math.IsInf(c.Scale, 0) {
		return 1
	}
	return c.Scale
}
